package tts

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/book-expert/tts-cli/internal/core"
)

// Response keys. They are matched exactly, unlike struct field tags.
const (
	keyData    = "data"
	keyPayload = "v_str"
)

var (
	errMissingPayload = errors.New("response has no data.v_str field")
	errLineBreak      = errors.New("payload contains a line break")
)

// DecodeResponse extracts and decodes the base64 audio from a response body
// shaped as {"data": {"v_str": "<base64>"}}. Other fields are ignored.
func DecodeResponse(body []byte) ([]byte, error) {
	payload, err := extractPayload(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrDecode, err)
	}

	audio, err := decodeBase64(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 payload: %w", core.ErrDecode, err)
	}

	return audio, nil
}

func extractPayload(body []byte) (string, error) {
	dataRaw, err := lookupKey(body, keyData)
	if err != nil {
		return "", err
	}

	payloadRaw, err := lookupKey(dataRaw, keyPayload)
	if err != nil {
		return "", err
	}

	var payload string

	err = json.Unmarshal(payloadRaw, &payload)
	if err != nil {
		return "", fmt.Errorf("failed to unmarshal %s: %w", keyPayload, err)
	}

	return payload, nil
}

// lookupKey returns the raw value stored under key in the JSON object raw.
// An absent key, a null value and a null object all count as missing.
func lookupKey(raw json.RawMessage, key string) (json.RawMessage, error) {
	var object map[string]json.RawMessage

	err := json.Unmarshal(raw, &object)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	value, ok := object[key]
	if !ok || string(value) == "null" {
		return nil, errMissingPayload
	}

	return value, nil
}

// decodeBase64 accepts only canonical, padded standard base64. StdEncoding on
// its own skips line breaks and tolerates non-zero trailing bits.
func decodeBase64(payload string) ([]byte, error) {
	if strings.ContainsAny(payload, "\r\n") {
		return nil, errLineBreak
	}

	return base64.StdEncoding.Strict().DecodeString(payload)
}
