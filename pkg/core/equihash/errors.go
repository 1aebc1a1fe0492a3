package equihash

import "errors"

// Input-shape errors. An invalid but well-formed solution is reported as a
// false verdict, never as one of these.
var (
	ErrUnsupportedParameters  = errors.New("equihash: unsupported parameters")
	ErrMalformedHeader        = errors.New("equihash: malformed header")
	ErrMalformedSolution      = errors.New("equihash: malformed solution")
	ErrInvalidPersonalization = errors.New("equihash: invalid personalization")
)
