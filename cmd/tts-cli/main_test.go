package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/book-expert/tts-cli/internal/core"
	"github.com/book-expert/tts-cli/internal/objectstore"
	"github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEndpoint serves a fixed body and records the voice and text it received.
type stubEndpoint struct {
	server *httptest.Server
	hits   atomic.Int32
	voice  atomic.Value
	text   atomic.Value
}

func newStubEndpoint(t *testing.T, body string) *stubEndpoint {
	t.Helper()

	stub := &stubEndpoint{}
	stub.server = httptest.NewServer(http.HandlerFunc(
		func(responseWriter http.ResponseWriter, request *http.Request) {
			stub.hits.Add(1)
			stub.voice.Store(request.URL.Query().Get("text_speaker"))
			stub.text.Store(request.URL.Query().Get("req_text"))
			_, _ = responseWriter.Write([]byte(body))
		},
	))
	t.Cleanup(stub.server.Close)

	return stub
}

func audioBody(audio string) string {
	return `{"data":{"v_str":"` + base64.StdEncoding.EncodeToString([]byte(audio)) + `"}}`
}

// writeTestConfig points the CLI at the stub endpoint.
func writeTestConfig(t *testing.T, stub *stubEndpoint, extra string) string {
	t.Helper()

	content := fmt.Sprintf("[tts]\nendpoint = %q\n%s", stub.server.URL+"/invoke/?speaker_map_type=0", extra)
	path := filepath.Join(t.TempDir(), "tts-cli.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var stdout bytes.Buffer

	cmd := newRootCmd(strings.NewReader(stdin), &stdout)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())

	return stdout.String(), err
}

func TestRoot_RoundTripToStdout(t *testing.T) {
	t.Parallel()

	stub := newStubEndpoint(t, audioBody("ABC"))

	out, err := execute(t, "", "--config", writeTestConfig(t, stub, ""), "-t", "hello")
	require.NoError(t, err)

	assert.Equal(t, "ABC", out)
	assert.Equal(t, "hello", stub.text.Load())
	assert.Equal(t, "en_us_002", stub.voice.Load())
}

func TestRoot_RoundTripToFileTruncates(t *testing.T) {
	t.Parallel()

	stub := newStubEndpoint(t, audioBody("ABC"))
	path := filepath.Join(t.TempDir(), "speech.mp3")
	require.NoError(t, os.WriteFile(path, []byte("previous content"), 0o600))

	out, err := execute(t, "", "--config", writeTestConfig(t, stub, ""), "--text", "hello", "--out", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("ABC"), data)
}

func TestRoot_TextFromStdin(t *testing.T) {
	t.Parallel()

	stub := newStubEndpoint(t, audioBody("ABC"))

	_, err := execute(t, "piped text\n", "--config", writeTestConfig(t, stub, ""), "-v", "br_001")
	require.NoError(t, err)

	assert.Equal(t, "piped text\n", stub.text.Load())
	assert.Equal(t, "br_001", stub.voice.Load())
}

func TestRoot_ExplicitTextIgnoresStdin(t *testing.T) {
	t.Parallel()

	stub := newStubEndpoint(t, audioBody("ABC"))

	_, err := execute(t, "piped text", "--config", writeTestConfig(t, stub, ""), "-t", "flag text")
	require.NoError(t, err)
	assert.Equal(t, "flag text", stub.text.Load())
}

func TestRoot_DefaultVoiceMatchesExplicit(t *testing.T) {
	t.Parallel()

	stub := newStubEndpoint(t, audioBody("ABC"))
	cfgPath := writeTestConfig(t, stub, "")

	implicitOut, err := execute(t, "", "--config", cfgPath, "-t", "x")
	require.NoError(t, err)

	implicitVoice := stub.voice.Load()

	explicitOut, err := execute(t, "", "--config", cfgPath, "-t", "x", "-v", "en_us_002")
	require.NoError(t, err)

	assert.Equal(t, implicitOut, explicitOut)
	assert.Equal(t, implicitVoice, stub.voice.Load())
}

func TestRoot_InvalidVoiceMakesNoRequest(t *testing.T) {
	t.Parallel()

	stub := newStubEndpoint(t, audioBody("ABC"))

	_, err := execute(t, "", "--config", writeTestConfig(t, stub, ""), "-t", "x", "-v", "EN_US_002")
	require.ErrorIs(t, err, core.ErrInvalidVoice)
	assert.Contains(t, err.Error(), "EN_US_002")
	assert.Zero(t, stub.hits.Load())
}

func TestRoot_DecodeFailuresLeaveNoFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed base64", body: `{"data":{"v_str":"not-base64!!"}}`},
		{name: "missing field", body: `{}`},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			stub := newStubEndpoint(t, testCase.body)
			path := filepath.Join(t.TempDir(), "speech.mp3")

			_, err := execute(t, "", "--config", writeTestConfig(t, stub, ""), "-t", "x", "-o", path)
			require.ErrorIs(t, err, core.ErrDecode)
			assert.NoFileExists(t, path)
		})
	}
}

func TestRoot_DecodeFailureKeepsExistingFile(t *testing.T) {
	t.Parallel()

	stub := newStubEndpoint(t, `{"data":{"v_str":"not-base64!!"}}`)
	path := filepath.Join(t.TempDir(), "speech.mp3")
	require.NoError(t, os.WriteFile(path, []byte("keep me"), 0o600))

	_, err := execute(t, "", "--config", writeTestConfig(t, stub, ""), "-t", "x", "-o", path)
	require.ErrorIs(t, err, core.ErrDecode)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("keep me"), data)
}

func TestRoot_ListVoices(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "--list-voices")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 34)
	assert.True(t, strings.HasPrefix(lines[0], "en_us_ghostface"))
	assert.Contains(t, out, "English US - Female (Int. 2)")
}

func TestRoot_FlagConflicts(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "-t", "x", "--out", "a.mp3", "--upload")
	require.Error(t, err)

	_, err = execute(t, "", "-t", "x", "--key", "a.mp3")
	require.ErrorIs(t, err, errKeyWithoutUpload)

	_, err = execute(t, "", "-t", "x", "extra-arg")
	require.Error(t, err)
}

func TestRoot_UploadToObjectStore(t *testing.T) {
	t.Parallel()

	opts := test.DefaultTestOptions
	opts.Port = -1 // Use a random port
	opts.JetStream = true
	opts.StoreDir = t.TempDir()
	natsServer := test.RunServer(&opts)
	t.Cleanup(natsServer.Shutdown)

	stub := newStubEndpoint(t, audioBody("ABC"))
	extra := fmt.Sprintf("[nats]\nurl = %q\naudio_object_store_bucket = \"SPEECH\"\n", natsServer.ClientURL())

	out, err := execute(t, "", "--config", writeTestConfig(t, stub, extra), "-t", "x", "--upload", "--key", "greeting.mp3")
	require.NoError(t, err)
	assert.Equal(t, "greeting.mp3\n", out)

	natsConnection, err := nats.Connect(natsServer.ClientURL())
	require.NoError(t, err)
	t.Cleanup(natsConnection.Close)

	jetstreamContext, err := natsConnection.JetStream()
	require.NoError(t, err)

	store, err := objectstore.New(jetstreamContext, "SPEECH")
	require.NoError(t, err)

	data, err := store.Download(context.Background(), "greeting.mp3")
	require.NoError(t, err)
	assert.Equal(t, []byte("ABC"), data)
}
