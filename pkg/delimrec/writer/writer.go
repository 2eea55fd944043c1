// Package writer renders strongly-typed records as delimited text files,
// the inverse of the reader: an optional comment preface, one fieldname row,
// then one row per record with every field in its canonical string form.
package writer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/delimrec/delimrec/pkg/delimrec/header"
	"github.com/delimrec/delimrec/pkg/delimrec/schema"
	"github.com/delimrec/delimrec/pkg/delimrec/storage"
)

// ErrClosed is returned by Write after Close.
var ErrClosed = errors.New("delimrec: writer is closed")

// Writer renders records of type T as delimited rows. It owns the underlying
// sink for its lifetime; the caller pairs Create or Append with a deferred
// Close. A Writer is not safe for concurrent use.
type Writer[T any] struct {
	sink   *storage.Sink
	desc   *schema.Descriptor
	rows   *csv.Writer
	closed bool
}

// Create opens path for writing and emits the preface and header row. The
// field selection defaults to T's full schema; WithIncludeFields and
// WithExcludeFields subset it as in the reader's strict bind, include order
// being the written column order.
func Create[T any](path string, opts ...Option) (*Writer[T], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	desc, err := descriptorFor[T](cfg)
	if err != nil {
		return nil, err
	}

	sink, err := storage.CreateSink(path, cfg.overwrite)
	if err != nil {
		return nil, err
	}

	for _, line := range cfg.preface {
		if _, err := fmt.Fprintf(sink, "%s\n", commentLine(line, cfg.commentChar)); err != nil {
			sink.Close()
			return nil, fmt.Errorf("writing preface of %s: %w", path, err)
		}
	}

	rows := csv.NewWriter(sink)
	rows.Comma = cfg.delimiter
	if err := rows.Write(desc.Fieldnames()); err != nil {
		sink.Close()
		return nil, fmt.Errorf("writing header of %s: %w", path, err)
	}
	rows.Flush()
	if err := rows.Error(); err != nil {
		sink.Close()
		return nil, fmt.Errorf("writing header of %s: %w", path, err)
	}

	cfg.log.Debug("created %s with %d columns", path, len(desc.Fieldnames()))

	return &Writer[T]{sink: sink, desc: desc, rows: rows}, nil
}

// Append opens an existing file, checks that its header matches T's schema
// (with any field selection applied), and positions the writer after the
// last row. The preface option does not apply: the file already has one.
func Append[T any](path string, opts ...Option) (*Writer[T], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(cfg.preface) > 0 {
		return nil, fmt.Errorf("cannot write a preface when appending to %s", path)
	}

	desc, err := descriptorFor[T](cfg)
	if err != nil {
		return nil, err
	}

	src, err := storage.OpenSource(path)
	if err != nil {
		return nil, err
	}
	hdr, err := header.Parse(bufio.NewReader(src), cfg.delimiter, cfg.commentChar)
	src.Close()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	if hdr == nil {
		return nil, fmt.Errorf("%w: %s", header.ErrMissing, path)
	}
	if err := desc.Bind(hdr.Fieldnames, path); err != nil {
		return nil, err
	}

	sink, err := storage.AppendSink(path)
	if err != nil {
		return nil, err
	}

	rows := csv.NewWriter(sink)
	rows.Comma = cfg.delimiter

	cfg.log.Debug("appending to %s with %d columns", path, len(hdr.Fieldnames))

	return &Writer[T]{sink: sink, desc: desc, rows: rows}, nil
}

// Write renders one record as a row.
func (w *Writer[T]) Write(rec T) error {
	if w.closed {
		return ErrClosed
	}
	cells, err := w.desc.Encode(reflect.ValueOf(rec))
	if err != nil {
		return err
	}
	return w.rows.Write(cells)
}

// WriteAll renders the given records in order.
func (w *Writer[T]) WriteAll(recs []T) error {
	for _, rec := range recs {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes buffered rows and releases the sink. It is safe to call more
// than once.
func (w *Writer[T]) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.rows.Flush()
	if err := w.rows.Error(); err != nil {
		w.sink.Close()
		return err
	}
	return w.sink.Close()
}

func descriptorFor[T any](cfg config) (*schema.Descriptor, error) {
	var zero T
	desc, err := schema.ForType(reflect.TypeOf(zero))
	if err != nil {
		return nil, err
	}
	if cfg.include != nil && cfg.exclude != nil {
		return nil, fmt.Errorf("only one of include and exclude fields may be set, not both")
	}
	if cfg.include != nil {
		return desc.Include(cfg.include)
	}
	if cfg.exclude != nil {
		return desc.Exclude(cfg.exclude)
	}
	return desc, nil
}

// commentLine marks a preface line as a comment unless it is blank or
// already marked, so a written preface parses back as one.
func commentLine(line string, commentChar byte) string {
	if strings.TrimSpace(line) == "" {
		return line
	}
	if line[0] == commentChar {
		return line
	}
	return fmt.Sprintf("%c %s", commentChar, line)
}
