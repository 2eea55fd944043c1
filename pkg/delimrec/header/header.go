package header

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/delimrec/delimrec/pkg/delimrec/types"
)

// ErrMissing reports a stream with no fieldname row. Parse itself returns
// (nil, nil) in that case because it has no source identity to report; the
// caller wraps ErrMissing with the path.
var ErrMissing = errors.New("delimrec: no header found")

// Parse reads the header from an open, positioned-at-start stream.
//
// Lines that are blank or start with commentChar form the preface, stored
// stripped of their line terminators. The first other line is the fieldname
// row; it goes through the same quoting-aware splitter the data rows use, so
// quoted fieldnames bind against unquoted record field names. The stream
// cursor is left immediately after the fieldname row.
//
// A stream exhausted before any fieldname row yields (nil, nil).
func Parse(br *bufio.Reader, delimiter rune, commentChar byte) (*types.FileHeader, error) {
	var preface []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			stripped := strings.TrimRight(line, "\r\n")
			if isPreface(stripped, commentChar) {
				preface = append(preface, stripped)
			} else {
				fieldnames, serr := splitRow(stripped, delimiter)
				if serr != nil {
					return nil, serr
				}
				return &types.FileHeader{Preface: preface, Fieldnames: fieldnames}, nil
			}
		}
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func isPreface(stripped string, commentChar byte) bool {
	if strings.TrimSpace(stripped) == "" {
		return true
	}
	return stripped[0] == commentChar
}

// splitRow applies the row parser's quoting rules to a single line.
func splitRow(line string, delimiter rune) ([]string, error) {
	cr := csv.NewReader(strings.NewReader(line))
	cr.Comma = delimiter
	cr.LazyQuotes = true
	return cr.Read()
}
