package layer

import "errors"

// ErrIndexOutOfRange is returned when a layer position does not exist.
var ErrIndexOutOfRange = errors.New("layer index out of range")
