package checklist

import "errors"

var (
	ErrInvalidPattern = errors.New("invalid extraction pattern")
	ErrNoCaptureGroup = errors.New("extraction pattern has no capture group")
)
