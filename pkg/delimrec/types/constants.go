package types

const (
	// DefaultDelimiter separates cells within a row.
	DefaultDelimiter rune = '\t'

	// DefaultCommentChar marks a preface line.
	DefaultCommentChar byte = '#'

	// CompressedExt is the filename suffix that triggers transparent lz4
	// compression of sources and sinks.
	CompressedExt = ".lz4"
)
