// Package reader decodes delimited text files into strongly-typed records.
//
// A file consists of an optional preface (blank or comment lines), a single
// fieldname row, and zero or more data rows. Open binds the fieldname row
// against the record type's field schema before any data row is read; the
// bind is strict, requiring the same names in the same order. Rows are then
// decoded lazily, one per Next call, each cell coerced to its field's type.
package reader

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/delimrec/delimrec/pkg/delimrec/header"
	"github.com/delimrec/delimrec/pkg/delimrec/schema"
	"github.com/delimrec/delimrec/pkg/delimrec/storage"
	"github.com/delimrec/delimrec/pkg/delimrec/types"
)

// ErrClosed is returned by Next after Close.
var ErrClosed = errors.New("delimrec: reader is closed")

// Reader is a single-pass, forward-only iterator over decoded records of
// type T. It owns the underlying stream for its lifetime; the caller pairs
// Open with a deferred Close. A Reader is not safe for concurrent use.
type Reader[T any] struct {
	src    *storage.Source
	hdr    types.FileHeader
	desc   *schema.Descriptor
	rows   *csv.Reader
	closed bool
}

// Open validates the record type and the source, parses the header, and
// binds the file's columns to T's fields. Any failure aborts construction
// with the stream released; no rows are read before the schema is confirmed.
func Open[T any](path string, opts ...Option) (*Reader[T], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	var zero T
	desc, err := schema.ForType(reflect.TypeOf(zero))
	if err != nil {
		return nil, err
	}

	src, err := storage.OpenSource(path)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(src)
	hdr, err := header.Parse(br, cfg.delimiter, cfg.commentChar)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	if hdr == nil {
		src.Close()
		return nil, fmt.Errorf("%w: %s", header.ErrMissing, path)
	}
	if err := desc.Bind(hdr.Fieldnames, path); err != nil {
		src.Close()
		return nil, err
	}

	rows := csv.NewReader(br)
	rows.Comma = cfg.delimiter
	rows.LazyQuotes = true
	rows.FieldsPerRecord = len(hdr.Fieldnames)

	cfg.log.Debug("opened %s: %d columns bound to %s", path, len(hdr.Fieldnames), desc.TypeName())

	return &Reader[T]{src: src, hdr: *hdr, desc: desc, rows: rows}, nil
}

// Next decodes the next data row. io.EOF signals normal exhaustion. A row
// with the wrong number of cells or an uncoercible cell is fatal to the
// iteration: the error surfaces as the row parser's or the coercion's own
// failure, and nothing is skipped or retried.
func (r *Reader[T]) Next() (T, error) {
	var zero T
	if r.closed {
		return zero, ErrClosed
	}
	cells, err := r.rows.Read()
	if err != nil {
		return zero, err
	}
	v, err := r.desc.Decode(cells)
	if err != nil {
		return zero, err
	}
	return v.Interface().(T), nil
}

// ReadAll drains the remaining rows into a slice.
func (r *Reader[T]) ReadAll() ([]T, error) {
	var out []T
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

// Header returns the header parsed at open time.
func (r *Reader[T]) Header() types.FileHeader {
	return r.hdr
}

// Close releases the underlying stream. It is safe to call more than once.
func (r *Reader[T]) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.src.Close()
}
