package domain

import "errors"

var (
	ErrDocumentNotFound       = errors.New("document not found")
	ErrDocumentExists         = errors.New("document already exists")
	ErrConcurrentModification = errors.New("document was modified concurrently")
	ErrStaleSnapshot          = errors.New("ledger was not decoded from this document snapshot")
	ErrCollectionExpired      = errors.New("selection window expired")
	ErrCollectionDismissed    = errors.New("selection dismissed")
	ErrInvalidSelection       = errors.New("invalid selection")
	ErrInvalidActor           = errors.New("invalid actor id")
	ErrInvalidEvent           = errors.New("invalid event")
	ErrInvalidSettings        = errors.New("invalid settings")
)
