package store

import (
	domainerrors "github.com/marczakjulia/BYT-PROJECT/internal/errors"
)

// Sentinel errors. They carry domain codes so callers can branch on either
// these values or the domainerrors sentinels.
var (
	ErrNotFound = domainerrors.NotFound("resource not found")

	ErrAlreadyExists = domainerrors.InvalidOperation("resource already exists")

	ErrChecksumMismatch = domainerrors.Internal("snapshot checksum mismatch")
)
