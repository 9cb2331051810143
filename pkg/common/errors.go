package common

import (
	"errors"
	"fmt"
)

// SizeExceededError is returned when an upload is larger than the configured
// maximum. It is a rejection: no work has been performed when it is raised.
type SizeExceededError struct {
	Size  int64
	Limit int64
}

func (e *SizeExceededError) Error() string {
	return fmt.Sprintf("file size %d exceeds limit of %d bytes", e.Size, e.Limit)
}

// UnsupportedTypeError is returned when an upload's extension is not an
// accepted image format.
type UnsupportedTypeError struct {
	Filename string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.Filename)
}

// StorageError is returned when the original cannot be written to durable
// storage. It is fatal for the ingestion it occurred in.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage write failed for %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewSizeExceededError(size, limit int64) error {
	return &SizeExceededError{Size: size, Limit: limit}
}

func NewUnsupportedTypeError(filename string) error {
	return &UnsupportedTypeError{Filename: filename}
}

func NewStorageError(path string, err error) error {
	return &StorageError{Path: path, Err: err}
}

// IsRejection reports whether err is a pre-ingest policy rejection
// (size or type), as opposed to a storage failure.
func IsRejection(err error) bool {
	var sizeErr *SizeExceededError
	var typeErr *UnsupportedTypeError
	return errors.As(err, &sizeErr) || errors.As(err, &typeErr)
}

// IsStorageFailure reports whether err is a fatal storage write failure.
func IsStorageFailure(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}
