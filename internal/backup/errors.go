// Package backup saves the whole cinema graph to a single XML document and
// loads it back, rebuilding every association in one linking pass.
package backup

import "errors"

var (
	// ErrInvalidDocument indicates the document is malformed or references
	// entities it does not contain.
	ErrInvalidDocument = errors.New("invalid graph document")

	// ErrVersionMismatch indicates the document format version is not supported.
	ErrVersionMismatch = errors.New("graph document version not supported")

	// ErrCorruptedDocument indicates the document failed integrity checks.
	ErrCorruptedDocument = errors.New("graph document integrity check failed")

	// ErrUnregisteredReference indicates a registered entity points at one the
	// catalog does not hold, so the graph cannot be saved.
	ErrUnregisteredReference = errors.New("reference to unregistered entity")
)
