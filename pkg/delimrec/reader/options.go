package reader

import (
	"github.com/delimrec/delimrec/pkg/delimrec/types"
	"github.com/delimrec/delimrec/pkg/delimrec/utils"
)

type config struct {
	delimiter   rune
	commentChar byte
	log         utils.Logger
}

func defaultConfig() config {
	return config{
		delimiter:   types.DefaultDelimiter,
		commentChar: types.DefaultCommentChar,
		log:         utils.NopLogger{},
	}
}

// Option adjusts how a Reader is opened.
type Option func(*config)

// WithDelimiter sets the cell separator. Default is tab.
func WithDelimiter(d rune) Option {
	return func(c *config) { c.delimiter = d }
}

// WithCommentChar sets the preface-line marker. Default is '#'.
func WithCommentChar(ch byte) Option {
	return func(c *config) { c.commentChar = ch }
}

// WithLogger routes diagnostic output to l.
func WithLogger(l utils.Logger) Option {
	return func(c *config) { c.log = l }
}
