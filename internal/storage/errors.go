package storage

import "errors"

// Sentinel errors for the storage engine, following the teacher's
// package-level errors.New + fmt.Errorf("...: %w", err) style
// (pkg/storage/types.go's ErrNotFound/ErrAlreadyExists family).
var (
	ErrNodeNotFound    = errors.New("storage: node not found")
	ErrEdgeNotFound    = errors.New("storage: edge not found")
	ErrStorageClosed   = errors.New("storage: engine is closed")
	ErrTransactionBusy = errors.New("storage: transaction already committed or rolled back")
	ErrPathNotFound    = errors.New("storage: no path between nodes")
)
