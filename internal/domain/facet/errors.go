package facet

import "errors"

// Sentinel kinds for facet lookup and input decoding.
var (
	ErrUnknownFacet = errors.New("unknown facet")
	ErrDecodeInput  = errors.New("cannot decode facet input")
)
