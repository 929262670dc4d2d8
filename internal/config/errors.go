package config

import "errors"

// ErrNegativeTimeout indicates that tts.timeout_seconds is below zero.
var ErrNegativeTimeout = errors.New("timeout_seconds must be >= 0")
