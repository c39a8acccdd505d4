// Package report writes standings reports.
package report

import (
	"context"
	"io"
	"os"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
)

// ErrWriteReport marks failures to encode or persist a report.
var ErrWriteReport = errors.New("write report failed")

// Stdout is the path that selects standard output.
const Stdout = "-"

// Writer encodes reports as indented JSON.
type Writer struct {
	path string
	out  io.Writer
}

// Option configures a Writer.
type Option func(*Writer)

// WithOutput sends reports to w instead of a file.
func WithOutput(w io.Writer) Option {
	return func(r *Writer) {
		if w != nil {
			r.out = w
		}
	}
}

// New returns a Writer for path. An empty path or "-" writes to stdout.
func New(path string, opts ...Option) *Writer {
	w := &Writer{path: path}
	for _, opt := range opts {
		opt(w)
	}
	if w.out == nil && (path == "" || path == Stdout) {
		w.out = os.Stdout
	}
	return w
}

// Write encodes v. Files are replaced atomically via a sibling temp file.
func (w *Writer) Write(ctx context.Context, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Mark(errors.Wrap(err, "encode report"), ErrWriteReport)
	}
	raw = append(raw, '\n')

	if w.out != nil {
		if _, err := w.out.Write(raw); err != nil {
			return errors.Mark(errors.Wrap(err, "write report"), ErrWriteReport)
		}
		return nil
	}

	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return errors.Mark(errors.Wrapf(err, "write %s", tmp), ErrWriteReport)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		_ = os.Remove(tmp)
		return errors.Mark(errors.Wrapf(err, "rename %s", tmp), ErrWriteReport)
	}
	return nil
}
