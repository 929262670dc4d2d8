// Package pipeline resolves the synthesis request from process inputs and
// runs it through synthesis and output.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/book-expert/tts-cli/internal/core"
	"github.com/book-expert/tts-cli/internal/voice"
)

// SynthesisRequest is the text and validated voice for one run.
type SynthesisRequest struct {
	Text  string
	Voice string
}

// ResolveText returns explicit verbatim when it is set, leaving stdin unread.
// Otherwise stdin is read to EOF and must be valid UTF-8.
func ResolveText(explicit *string, stdin io.Reader) (string, error) {
	if explicit != nil {
		return *explicit, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read standard input: %w", core.ErrInput, err)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: standard input is not valid UTF-8", core.ErrInput)
	}

	return string(data), nil
}

// ResolveVoice returns explicit verbatim when it is set, otherwise voice.Default.
func ResolveVoice(explicit *string) string {
	if explicit != nil {
		return *explicit
	}

	return voice.Default
}

// Resolve builds the request for one run. The voice is validated locally so
// an unknown voice never costs a network round trip.
func Resolve(text, voiceID *string, stdin io.Reader) (SynthesisRequest, error) {
	resolvedText, err := ResolveText(text, stdin)
	if err != nil {
		return SynthesisRequest{}, err
	}

	validVoice, err := voice.Validate(ResolveVoice(voiceID))
	if err != nil {
		return SynthesisRequest{}, err
	}

	return SynthesisRequest{Text: resolvedText, Voice: validVoice}, nil
}

// Run synthesizes req and hands the audio to sink. The sink is only called
// once the whole payload has been decoded.
func Run(ctx context.Context, req SynthesisRequest, synthesizer core.Synthesizer, sink core.AudioSink) error {
	audio, err := synthesizer.Synthesize(ctx, req.Voice, req.Text)
	if err != nil {
		return err
	}

	return sink.Write(ctx, audio)
}
