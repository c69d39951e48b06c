package codec

import "fmt"

// InvalidTypeError is returned when a value cannot be encoded by the codec
// it was handed to
type InvalidTypeError struct {
	Codec string
	Value interface{}
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("%s codec: unsupported value %v (%T)", e.Codec, e.Value, e.Value)
}

// NewInvalidTypeError creates a new invalid type error
func NewInvalidTypeError(codec string, value interface{}) *InvalidTypeError {
	return &InvalidTypeError{
		Codec: codec,
		Value: value,
	}
}
