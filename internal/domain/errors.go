package domain

import "errors"

// Domain errors
var (
	ErrNoDeviceSelected = errors.New("no device selected")
	ErrADBNotFound      = errors.New("adb executable not found")
	ErrCommandFailed    = errors.New("adb command failed")
	ErrInvalidPattern   = errors.New("invalid filter pattern")
	ErrConfigNotFound   = errors.New("config file not found")
	ErrInvalidConfig    = errors.New("invalid configuration")
)
