package graph

import "errors"

// Sentinel errors returned by the value codec and the node/edge model,
// following the teacher's package-level errors.New + %w wrapping style
// (pkg/storage/types.go).
var (
	ErrTruncated      = errors.New("graph: truncated value encoding")
	ErrUnknownVariant = errors.New("graph: unknown value variant")
)
