// Package output delivers decoded audio to its destination.
package output

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/book-expert/tts-cli/internal/core"
)

const (
	filePermissions = 0o644
	audioKeySuffix  = ".mp3"
)

// FileSink writes the audio to a file, creating or truncating it.
type FileSink struct {
	Path string
}

// Write implements core.AudioSink.
func (s FileSink) Write(_ context.Context, audio []byte) error {
	err := os.WriteFile(s.Path, audio, filePermissions)
	if err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", core.ErrOutput, s.Path, err)
	}

	return nil
}

// StreamSink writes the audio to a stream such as standard output.
type StreamSink struct {
	W io.Writer
}

// Write implements core.AudioSink with a single buffered write and flush.
func (s StreamSink) Write(_ context.Context, audio []byte) error {
	buffered := bufio.NewWriter(s.W)

	_, err := buffered.Write(audio)
	if err != nil {
		return fmt.Errorf("%w: failed to write audio: %w", core.ErrOutput, err)
	}

	err = buffered.Flush()
	if err != nil {
		return fmt.Errorf("%w: failed to flush audio: %w", core.ErrOutput, err)
	}

	return nil
}

// StoreSink uploads the audio to an object store and, when a publisher is
// set, announces the stored key.
type StoreSink struct {
	store     core.ObjectStore
	publisher core.EventPublisher
	key       string
	log       core.Logger
}

// NewStoreSink creates a StoreSink. An empty key is replaced by a random
// UUID-based key at write time; publisher may be nil.
func NewStoreSink(store core.ObjectStore, publisher core.EventPublisher, key string, log core.Logger) *StoreSink {
	return &StoreSink{
		store:     store,
		publisher: publisher,
		key:       key,
		log:       log,
	}
}

// Key returns the key the audio was (or will be) stored under.
func (s *StoreSink) Key() string {
	return s.key
}

// Write implements core.AudioSink.
func (s *StoreSink) Write(ctx context.Context, audio []byte) error {
	if s.key == "" {
		s.key = uuid.NewString() + audioKeySuffix
	}

	err := s.store.Upload(ctx, s.key, audio)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrOutput, err)
	}

	s.log.Info("Uploaded %d bytes of audio as %s", len(audio), s.key)

	if s.publisher == nil {
		return nil
	}

	err = s.publisher.PublishAudioCreated(ctx, s.key)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrOutput, err)
	}

	return nil
}
