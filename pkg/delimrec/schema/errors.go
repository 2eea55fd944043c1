package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// InvalidTypeError reports a record type that cannot describe a file schema:
// it is not a struct, or one of its fields has a type with no string coercion.
type InvalidTypeError struct {
	Type   reflect.Type
	Reason string
}

func (e *InvalidTypeError) Error() string {
	name := "<nil>"
	if e.Type != nil {
		name = e.Type.String()
	}
	return fmt.Sprintf("delimrec: invalid record type %s: %s", name, e.Reason)
}

// MismatchError reports file columns that differ from the record schema in
// name, order, or count. Both sequences are carried for diagnosis.
type MismatchError struct {
	RecordType   string
	Source       string
	RecordFields []string
	FileFields   []string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf(
		"delimrec: %s does not have the same field names as record type %s:\n\trecord fields: %s\n\tfile fields: %s",
		e.Source, e.RecordType,
		strings.Join(e.RecordFields, ", "),
		strings.Join(e.FileFields, ", "))
}
