// Package core defines the interfaces and error kinds shared by the tts-cli pipeline.
package core

import "context"

// ObjectStore defines the interface for interacting with a key-value blob store.
type ObjectStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
	Upload(ctx context.Context, key string, data []byte) error
}

// Synthesizer turns text into decoded audio bytes using the given voice.
type Synthesizer interface {
	Synthesize(ctx context.Context, voice, text string) ([]byte, error)
}

// AudioSink receives the fully decoded audio payload exactly once.
type AudioSink interface {
	Write(ctx context.Context, audio []byte) error
}

// EventPublisher announces audio that has been stored under key.
type EventPublisher interface {
	PublishAudioCreated(ctx context.Context, key string) error
}

// Logger is the subset of the book-expert logger used by the pipeline.
type Logger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}
