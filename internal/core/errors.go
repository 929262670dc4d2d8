package core

import "errors"

// Error kinds surfaced by the pipeline. Every failure wraps exactly one of them.
var (
	// ErrInvalidVoice indicates that the requested voice is not in the catalog.
	ErrInvalidVoice = errors.New("invalid voice")
	// ErrInput indicates that the text to synthesize could not be read.
	ErrInput = errors.New("input error")
	// ErrNetwork indicates a transport failure talking to the synthesis endpoint.
	ErrNetwork = errors.New("network error")
	// ErrDecode indicates that the response body was not the expected JSON
	// shape or that its payload was not valid base64.
	ErrDecode = errors.New("decode error")
	// ErrOutput indicates a failure writing the audio to its destination.
	ErrOutput = errors.New("output error")
)
