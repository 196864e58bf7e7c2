package errors

import "errors"

// ErrFileNotFound is returned when a file is not found.
var ErrFileNotFound = errors.New("file not found")

// ErrIncorrectInput is returned when the user input is incorrect.
var ErrIncorrectInput = errors.New("incorrect input")

// ErrMalformedRequest is returned when a configuration request cannot be processed at all.
var ErrMalformedRequest = errors.New("malformed configuration request")

// ErrTemplateNotFound is returned when a named template does not exist in the store.
var ErrTemplateNotFound = errors.New("template not found")

// ErrNoPort is returned when a serial operation is requested without a port.
var ErrNoPort = errors.New("no serial port selected")
