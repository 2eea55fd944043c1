package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4/v4"

	"github.com/delimrec/delimrec/pkg/delimrec/types"
)

// Sink is an exclusively-owned writable stream. Compressed sinks buffer into
// an lz4 frame that Close flushes before releasing the file.
type Sink struct {
	file *os.File
	w    io.Writer
	lw   *lz4.Writer
}

// CreateSink opens path for writing, truncating any existing file when
// overwrite is set. An existing file without overwrite wraps fs.ErrExist; the
// parent must be an existing directory.
func CreateSink(path string, overwrite bool) (*Sink, error) {
	if err := assertWritable(path, overwrite); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("cannot write %s: %w", path, err)
	}
	return newSink(path, f), nil
}

// AppendSink opens an existing file for appending. Compressed paths are
// rejected: appending a second frame would not survive the transparent
// decompression on the read side.
func AppendSink(path string) (*Sink, error) {
	if strings.HasSuffix(path, types.CompressedExt) {
		return nil, fmt.Errorf("cannot append to compressed file %s", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot append to %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("cannot append to %s: %w", path, ErrIsDirectory)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot append to %s: %w", path, err)
	}
	return newSink(path, f), nil
}

func newSink(path string, f *os.File) *Sink {
	s := &Sink{file: f, w: f}
	if strings.HasSuffix(path, types.CompressedExt) {
		s.lw = lz4.NewWriter(f)
		s.w = s.lw
	}
	return s
}

func (s *Sink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

func (s *Sink) Close() error {
	if s.lw != nil {
		if err := s.lw.Close(); err != nil {
			s.file.Close()
			return err
		}
	}
	return s.file.Close()
}

func assertWritable(path string, overwrite bool) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("cannot write %s: %w", path, ErrIsDirectory)
		}
		if !overwrite {
			return fmt.Errorf("cannot write %s without overwrite: %w", path, fs.ErrExist)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot write %s: parent %s is not a directory", path, dir)
	}
	return nil
}
