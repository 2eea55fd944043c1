package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pierrec/lz4/v4"

	"github.com/delimrec/delimrec/pkg/delimrec/types"
)

// ErrIsDirectory reports a path that names a directory instead of a file.
var ErrIsDirectory = errors.New("path is a directory")

// Source is an exclusively-owned readable stream over a delimited file.
// Paths ending in the compressed suffix are decompressed transparently, so
// the layers above never see compression.
type Source struct {
	file *os.File
	r    io.Reader
}

// OpenSource checks that path names an existing, readable regular file and
// opens it. The access errors are the standard kinds: a missing path wraps
// fs.ErrNotExist, a directory wraps ErrIsDirectory, an unreadable file wraps
// fs.ErrPermission.
func OpenSource(path string) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("cannot read %s: %w", path, ErrIsDirectory)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	s := &Source{file: f, r: f}
	if strings.HasSuffix(path, types.CompressedExt) {
		s.r = lz4.NewReader(f)
	}
	return s, nil
}

func (s *Source) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

func (s *Source) Close() error {
	return s.file.Close()
}
