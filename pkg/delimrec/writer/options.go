package writer

import (
	"github.com/delimrec/delimrec/pkg/delimrec/types"
	"github.com/delimrec/delimrec/pkg/delimrec/utils"
)

type config struct {
	delimiter   rune
	commentChar byte
	overwrite   bool
	preface     []string
	include     []string
	exclude     []string
	log         utils.Logger
}

func defaultConfig() config {
	return config{
		delimiter:   types.DefaultDelimiter,
		commentChar: types.DefaultCommentChar,
		overwrite:   true,
		log:         utils.NopLogger{},
	}
}

// Option adjusts how a Writer is created.
type Option func(*config)

// WithDelimiter sets the cell separator. Default is tab.
func WithDelimiter(d rune) Option {
	return func(c *config) { c.delimiter = d }
}

// WithCommentChar sets the preface-line marker. Default is '#'.
func WithCommentChar(ch byte) Option {
	return func(c *config) { c.commentChar = ch }
}

// WithOverwrite controls whether Create may replace an existing file.
// Default is true.
func WithOverwrite(overwrite bool) Option {
	return func(c *config) { c.overwrite = overwrite }
}

// WithPreface writes the given lines before the header row, each marked as a
// comment unless blank or already marked.
func WithPreface(lines []string) Option {
	return func(c *config) { c.preface = lines }
}

// WithIncludeFields restricts the written columns to the named fields, in
// the order given. Mutually exclusive with WithExcludeFields.
func WithIncludeFields(names ...string) Option {
	return func(c *config) { c.include = names }
}

// WithExcludeFields drops the named fields from the written columns.
// Mutually exclusive with WithIncludeFields.
func WithExcludeFields(names ...string) Option {
	return func(c *config) { c.exclude = names }
}

// WithLogger routes diagnostic output to l.
func WithLogger(l utils.Logger) Option {
	return func(c *config) { c.log = l }
}
