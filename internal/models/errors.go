package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFileTooLarge     = errors.New("file exceeds maximum allowed size")
	ErrFileType         = errors.New("file type not allowed")
	ErrPlatformMismatch = errors.New("tables belong to different platforms")
)

// DecodeError reports a payload that is not validly framed or not JSON.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode: %s: %v", e.Reason, e.Err)
	}
	return "decode: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// NoDataError reports a successful parse whose selected sections held no records.
type NoDataError struct {
	Platform Platform
	Sections []string
}

func (e *NoDataError) Error() string {
	if len(e.Sections) == 0 {
		return fmt.Sprintf("%s: no relevant data found in the selected sections", e.Platform)
	}
	return fmt.Sprintf("%s: no relevant data found in the selected sections (%s)", e.Platform, strings.Join(e.Sections, ", "))
}

type MissingColumnError struct {
	Platform Platform
	Column   string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s table has no %q column", e.Platform, e.Column)
}

type UnsupportedPlatformError struct {
	Platform string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform %q", e.Platform)
}

// FileError ties a failure to the uploaded file that caused it.
type FileError struct {
	File string
	Err  error
}

func (e *FileError) Error() string {
	return e.File + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error { return e.Err }

func IsNoData(err error) bool {
	var target *NoDataError
	return errors.As(err, &target)
}

func IsDecode(err error) bool {
	var target *DecodeError
	return errors.As(err, &target)
}
