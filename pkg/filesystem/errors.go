package filesystem

import "errors"

// Sentinel errors returned by file system operations. Callers should match
// with errors.Is since operations wrap these with filename context.
var (
	// ErrInvalidFilename indicates a filename that does not match the
	// allowed pattern (alphanumeric, underscore, hyphen plus a supported
	// extension).
	ErrInvalidFilename = errors.New("invalid filename format, must be alphanumeric with a supported extension")

	// ErrUnsupportedExtension indicates a file extension outside the
	// supported set (.txt, .md, .json, .csv, .pdf).
	ErrUnsupportedExtension = errors.New("unsupported file extension")

	// ErrFileNotFound indicates the named file does not exist in the
	// file system.
	ErrFileNotFound = errors.New("file not found")

	// ErrEmptySearchString indicates a replace operation was called with
	// an empty search string.
	ErrEmptySearchString = errors.New("search string cannot be empty")

	// ErrStringNotFound indicates a replace operation found no occurrences
	// of the search string.
	ErrStringNotFound = errors.New("search string not found in file")
)
