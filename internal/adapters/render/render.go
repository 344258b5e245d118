// Package render draws a layout.Figure with one of several chart libraries
// and writes it to disk.
package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/okian/scoreplot/internal/domain/layout"
)

// Renderer draws a figure in a given format.
type Renderer interface {
	// Render encodes fig as format (a lower-case extension without the dot).
	Render(ctx context.Context, fig *layout.Figure, w io.Writer, format string) error
	// Formats lists the formats Render accepts.
	Formats() []string
}

// outputPerm is the mode of written figures.
const outputPerm os.FileMode = 0o644

// Options holds settings shared by every backend.
type Options struct {
	// Title names the whole figure. Backends with a document title use it.
	Title string
}

// Option applies a setting to Options.
type Option func(*Options)

// WithTitle sets the figure title.
func WithTitle(title string) Option {
	return func(o *Options) {
		if title != "" {
			o.Title = title
		}
	}
}

func newOptions(opts []Option) Options {
	o := Options{Title: defaultTitle}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Kind names a renderer backend.
type Kind string

// Renderer kinds.
const (
	KindAuto  Kind = "auto"
	KindPlot  Kind = "plot"
	KindChart Kind = "chart"
	KindHTML  Kind = "html"
)

// ParseKind validates a renderer name. Empty means KindAuto.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case "":
		return KindAuto, nil
	case KindAuto, KindPlot, KindChart, KindHTML:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRenderer, s)
	}
}

// New returns the backend for k. KindAuto is resolved per path by Select.
func New(k Kind, opts ...Option) (Renderer, error) {
	switch k {
	case KindPlot:
		return NewPlotRenderer(), nil
	case KindChart:
		return NewChartRenderer(), nil
	case KindHTML:
		return NewHTMLRenderer(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, k)
	}
}

// FormatOf returns the lower-case extension of path without the dot.
func FormatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Select picks the backend for kind and output path and checks that it can
// produce the path's format.
func Select(kind Kind, path string, opts ...Option) (Renderer, string, error) {
	format := FormatOf(path)
	if format == "" {
		return nil, "", fmt.Errorf("%w: %q has no extension", ErrUnsupportedFormat, path)
	}
	if kind == KindAuto || kind == "" {
		kind = KindPlot
		if slices.Contains(htmlFormats, format) {
			kind = KindHTML
		}
	}
	r, err := New(kind, opts...)
	if err != nil {
		return nil, "", err
	}
	if !slices.Contains(r.Formats(), format) {
		return nil, "", fmt.Errorf("%w: %s renderer cannot write %q", ErrUnsupportedFormat, kind, format)
	}
	return r, format, nil
}

// WriteFile renders fig to path. The image is encoded into a temporary file
// next to path and renamed into place only when encoding succeeded, so path
// either holds a complete image or is left untouched. The result is
// world-readable.
func WriteFile(ctx context.Context, r Renderer, fig *layout.Figure, path, format string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if err := r.Render(ctx, fig, tmp, format); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("render %s: %w", format, err)
	}
	if err := tmp.Chmod(outputPerm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("move into place: %w", err)
	}
	committed = true
	return nil
}
