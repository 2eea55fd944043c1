package types

// FileHeader is the header of a delimited file: an optional preface of blank
// or comment lines followed by the row of fieldnames. It is immutable once
// parsed; Fieldnames is never empty when a header exists at all.
type FileHeader struct {
	Preface    []string
	Fieldnames []string
}
