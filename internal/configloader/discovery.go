package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config file names. Project files are searched upward from the working
// directory; the system and user config directories hold config.yaml.
//
//nolint:gochecknoglobals // Read-only lookup tables.
var (
	projectConfigNames = []string{".richview.yml", ".richview.yaml", "richview.yml", "richview.yaml"}
	dirConfigNames     = []string{"config.yaml", "config.yml"}
	vcsRootMarkers     = []string{".git", ".hg", ".svn"}
)

// ConfigPaths holds the config files found for one load. Missing files
// are empty strings.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// configSource is one config file in merge order.
type configSource struct {
	name string
	path string
}

// sources lists the files to merge, lowest precedence first, without
// missing files and the layers opts ignores.
func (p *ConfigPaths) sources(opts LoadOptions) []configSource {
	candidates := []struct {
		configSource
		ignored bool
	}{
		{configSource{"system", p.System}, opts.IgnoreSystemConfig},
		{configSource{"user", p.User}, opts.IgnoreUserConfig},
		{configSource{"project", p.Project}, opts.IgnoreProjectConfig},
		{configSource{"explicit", p.Explicit}, false},
	}

	out := make([]configSource, 0, len(candidates))
	for _, c := range candidates {
		if !c.ignored && c.path != "" {
			out = append(out, c.configSource)
		}
	}
	return out
}

// DiscoverPaths finds the system, user and project config files for a
// document opened from workDir. System config lives in /etc/richview (or
// %ProgramData%\richview), user config in $XDG_CONFIG_HOME/richview.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), dirConfigNames),
		User:    firstFile(userConfigDir(), dirConfigNames),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, "richview")
	}
	return "/etc/richview"
}

func userConfigDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "richview")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "richview")
}

// FindProjectConfig returns the nearest project config file at or above
// startDir, or "" when there is none. The search stops after a VCS root,
// the home directory or the filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	home, _ := os.UserHomeDir()
	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if path := firstFile(dir, projectConfigNames); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || hasDir(dir, vcsRootMarkers) {
			return "", nil
		}
		dir = parent
	}
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

// hasDir reports whether any of names is a directory in dir.
func hasDir(dir string, names []string) bool {
	for _, name := range names {
		if info, err := os.Stat(filepath.Join(dir, name)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
