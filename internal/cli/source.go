package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/yaklabco/richview/internal/logging"
	"github.com/yaklabco/richview/pkg/config"
	"github.com/yaklabco/richview/pkg/content"
	"github.com/yaklabco/richview/pkg/document"
	"github.com/yaklabco/richview/pkg/fsutil"
	"github.com/yaklabco/richview/pkg/markup/html"
	"github.com/yaklabco/richview/pkg/markup/markdown"
	"github.com/yaklabco/richview/pkg/span"
	"github.com/yaklabco/richview/pkg/view"
)

// BundleExtension marks span bundles written by the export command.
const BundleExtension = ".rvsb"

// source is a document read from disk.
type source struct {
	content document.Content
	info    *fsutil.FileInfo
}

// readSource reads path and converts it to document content. The parser
// is chosen by extension: HTML, span bundle, or Markdown for anything else.
func readSource(ctx context.Context, cfg *config.Config, path string) (*source, error) {
	logger := logging.FromContext(ctx)

	data, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	logger.Debug("reading source", logging.FieldPath, path, logging.FieldLength, len(data), "ext", ext)

	var nodes []content.Node
	switch ext {
	case BundleExtension:
		c, err := document.UnmarshalBundle(data, span.Builtin())
		if err != nil {
			return nil, fmt.Errorf("decode bundle %s: %w", path, err)
		}
		return &source{content: c, info: info}, nil

	case ".html", ".htm":
		nodes, err = html.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}

	default:
		parser := markdown.New(string(cfg.Flavor), markdown.WithClassifier(cfg.Classifier()))
		nodes, err = parser.Parse(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	c := document.Ingest(nodes, cfg.IngestOptions())
	logger.Debug("ingested source", logging.FieldLength, len(c.Text), logging.FieldSpans, len(c.Entries))
	return &source{content: c, info: info}, nil
}

// openView reads path into a view controller, attaches it and lays it out
// at the width of w.
func openView(
	ctx context.Context,
	cfg *config.Config,
	path string,
	w io.Writer,
	opts ...view.Option,
) (*view.Controller, error) {
	logger := logging.FromContext(ctx)

	src, err := readSource(ctx, cfg, path)
	if err != nil {
		return nil, err
	}

	base := []view.Option{
		view.WithLogger(logger),
		view.WithStyle(cfg.Layout.Style()),
	}
	ctrl := view.New(append(base, opts...)...)
	ctrl.SetContent(src.content)
	ctrl.Attach()

	width, height := ctrl.Measure(viewWidth(cfg, w))
	logger.Debug("laid out document",
		logging.FieldPath, path,
		logging.FieldWidth, width,
		logging.FieldHeight, height,
		logging.FieldLines, ctrl.Layout().LineCount(),
	)
	return ctrl, nil
}
