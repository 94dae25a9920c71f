package entity

import "errors"

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUpdateFailed       = errors.New("update affected no rows")
	ErrNothingToExport    = errors.New("nothing to export")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidTaskData    = errors.New("invalid task data")
	ErrTooManyFiles       = errors.New("too many files")
	ErrFileTooLarge       = errors.New("file too large")
	ErrFileType           = errors.New("only images and PDFs are allowed")
)
