package cli

import (
	"errors"

	"github.com/yaklabco/richview/internal/configloader"
	"github.com/yaklabco/richview/pkg/fsutil"
)

// ErrNoMatch is returned when a command ran cleanly but found nothing:
// a link no recognizer accepted, or a point with no interactive span.
var ErrNoMatch = errors.New("no match")

// Exit codes for richview.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitNoMatch indicates the command found nothing to report.
	ExitNoMatch = 1

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrNoMatch):
		return ExitNoMatch
	case errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrSourceChanged):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
