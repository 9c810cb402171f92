package errors

import "errors"

var (
	ErrNotFound = errors.New("profile not found")

	ErrInvalidID = errors.New("invalid profile ID format")

	ErrDuplicateHandle = errors.New("handle is already taken")

	ErrAttachmentNotFound = errors.New("attachment not found")
)
