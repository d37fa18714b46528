package model

import "errors"

// ExtractionErrorKind classifies why metadata extraction failed.
type ExtractionErrorKind string

const (
	// ExtractionAgeRestricted means the engine refused because the media
	// requires an age-verified account.
	ExtractionAgeRestricted ExtractionErrorKind = "AgeRestricted"

	// ExtractionRegionBlocked means the media is unavailable in the
	// engine's region.
	ExtractionRegionBlocked ExtractionErrorKind = "RegionBlocked"

	// ExtractionCopyrightBlocked means the media was taken down on
	// copyright grounds.
	ExtractionCopyrightBlocked ExtractionErrorKind = "CopyrightBlocked"

	// ExtractionUnknown is any engine failure that matched no known
	// pattern. The original engine message is preserved for logging.
	ExtractionUnknown ExtractionErrorKind = "Unknown"
)

// ExtractionError is a classified metadata extraction failure.
type ExtractionError struct {
	Kind    ExtractionErrorKind
	Message string // original engine message
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	return "extraction failed (" + string(e.Kind) + "): " + e.Message
}

// DownloadError is an engine-level failure during an active transfer. No
// partial-file retry is attempted; the caller is responsible for cleanup.
type DownloadError struct {
	Err error
}

// Error implements the error interface.
func (e *DownloadError) Error() string {
	return "download failed: " + e.Err.Error()
}

// Unwrap exposes the underlying engine error.
func (e *DownloadError) Unwrap() error {
	return e.Err
}

// ErrSessionNotFound is returned when a callback references a session key
// that expired or never existed.
var ErrSessionNotFound = errors.New("session not found")
