package codec

import (
	"errors"
	"fmt"

	"github.com/idilsaglam/catalogue/internal/model"
)

var (
	ErrMissingField    = errors.New("missing field")
	ErrNotObject       = errors.New("document is not an object")
	ErrNotArray        = errors.New("field is not an array")
	ErrSchema          = errors.New("schema violation")
	ErrDetailsMismatch = errors.New("details do not match kind")
)

// SerializationError reports an item that cannot be encoded. Index is the
// item's position in the input catalogue.
type SerializationError struct {
	Kind  model.Kind
	Index int
	Err   error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialize %s item %d: %v", e.Kind, e.Index, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// DeserializationError reports a document that cannot be decoded. Field is the
// top-level key (empty for the document itself) and Index the array position,
// or -1 when the error concerns the whole field.
type DeserializationError struct {
	Field string
	Index int
	Err   error
}

func (e *DeserializationError) Error() string {
	switch {
	case e.Field == "":
		return fmt.Sprintf("deserialize document: %v", e.Err)
	case e.Index < 0:
		return fmt.Sprintf("deserialize %q: %v", e.Field, e.Err)
	default:
		return fmt.Sprintf("deserialize %q[%d]: %v", e.Field, e.Index, e.Err)
	}
}

func (e *DeserializationError) Unwrap() error { return e.Err }
