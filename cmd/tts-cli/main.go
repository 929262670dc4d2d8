// Command tts-cli converts text to speech with the TikTok voice endpoint.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/book-expert/tts-cli/internal/config"
	"github.com/book-expert/tts-cli/internal/core"
	"github.com/book-expert/tts-cli/internal/logging"
	"github.com/book-expert/tts-cli/internal/notify"
	"github.com/book-expert/tts-cli/internal/objectstore"
	"github.com/book-expert/tts-cli/internal/output"
	"github.com/book-expert/tts-cli/internal/pipeline"
	"github.com/book-expert/tts-cli/internal/tts"
	"github.com/book-expert/tts-cli/internal/voice"
)

var version = "dev"

// Flag names.
const (
	flagOut        = "out"
	flagText       = "text"
	flagVoice      = "voice"
	flagConfig     = "config"
	flagListVoices = "list-voices"
	flagUpload     = "upload"
	flagKey        = "key"
)

var errKeyWithoutUpload = errors.New("--key can only be used with --upload")

// appFlags holds the parsed command-line flag values.
type appFlags struct {
	out        string
	text       string
	voice      string
	config     string
	key        string
	listVoices bool
	upload     bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)

	err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx)

	cancel()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	var flags appFlags

	cmd := &cobra.Command{
		Use:           "tts-cli",
		Short:         "Convert text to speech with TikTok voices",
		Long:          "Reads text from --text or standard input and writes the synthesized MP3 to --out or standard output.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.listVoices {
				return listVoices(stdout)
			}

			var text, voiceID *string
			if cmd.Flags().Changed(flagText) {
				text = &flags.text
			}

			if cmd.Flags().Changed(flagVoice) {
				voiceID = &flags.voice
			}

			return run(cmd.Context(), flags, text, voiceID, stdin, stdout)
		},
	}

	cmd.SetIn(stdin)
	cmd.SetOut(stdout)

	cmd.Flags().StringVarP(&flags.out, flagOut, "o", "", "output file path (default: standard output)")
	cmd.Flags().StringVarP(&flags.text, flagText, "t", "", "text to synthesize (default: read standard input)")
	cmd.Flags().StringVarP(&flags.voice, flagVoice, "v", voice.Default, "voice identifier")
	cmd.Flags().StringVar(&flags.config, flagConfig, "", "path to a TOML configuration file")
	cmd.Flags().BoolVar(&flags.listVoices, flagListVoices, false, "print the available voices and exit")
	cmd.Flags().BoolVar(&flags.upload, flagUpload, false, "upload the audio to the configured NATS object store")
	cmd.Flags().StringVar(&flags.key, flagKey, "", "object key for --upload (default: random UUID)")
	cmd.MarkFlagsMutuallyExclusive(flagOut, flagUpload)

	return cmd
}

func listVoices(stdout io.Writer) error {
	for _, id := range voice.IDs() {
		label, _ := voice.Describe(id)

		_, err := fmt.Fprintf(stdout, "%-20s %s\n", id, label)
		if err != nil {
			return fmt.Errorf("%w: %w", core.ErrOutput, err)
		}
	}

	return nil
}

// run resolves the request, builds the sink and executes the pipeline.
func run(
	ctx context.Context,
	flags appFlags,
	text, voiceID *string,
	stdin io.Reader,
	stdout io.Writer,
) error {
	if flags.key != "" && !flags.upload {
		return errKeyWithoutUpload
	}

	cfg, err := config.Load(flags.config)
	if err != nil {
		return err
	}

	log, closeLog, err := logging.Open(cfg.Logging.LogDir)
	if err != nil {
		return err
	}

	defer func() {
		closeErr := closeLog()
		if closeErr != nil {
			fmt.Fprintf(os.Stderr, "error closing logger: %v\n", closeErr)
		}
	}()

	req, err := pipeline.Resolve(text, voiceID, stdin)
	if err != nil {
		log.Error("Failed to resolve request: %v", err)

		return err
	}

	client := tts.NewHTTPClient(cfg.TTS.Endpoint, cfg.TTS.Timeout(), tts.WithLogger(log))

	if flags.upload {
		return runUpload(ctx, cfg, flags.key, req, client, log, stdout)
	}

	var sink core.AudioSink = output.StreamSink{W: stdout}
	if flags.out != "" {
		sink = output.FileSink{Path: flags.out}
	}

	err = pipeline.Run(ctx, req, client, sink)
	if err != nil {
		log.Error("Synthesis failed: %v", err)

		return err
	}

	return nil
}

// runUpload sends the audio to the NATS object store and prints its key.
func runUpload(
	ctx context.Context,
	cfg *config.Config,
	key string,
	req pipeline.SynthesisRequest,
	synthesizer core.Synthesizer,
	log core.Logger,
	stdout io.Writer,
) error {
	natsConnection, err := nats.Connect(cfg.NATS.URL)
	if err != nil {
		return fmt.Errorf("%w: failed to connect to NATS at %s: %w", core.ErrOutput, cfg.NATS.URL, err)
	}
	defer natsConnection.Close()

	jetstreamContext, err := natsConnection.JetStream()
	if err != nil {
		return fmt.Errorf("%w: failed to get JetStream context: %w", core.ErrOutput, err)
	}

	store, err := objectstore.New(jetstreamContext, cfg.NATS.AudioObjectStoreBucket)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrOutput, err)
	}

	var publisher core.EventPublisher
	if cfg.NATS.AudioCreatedSubject != "" {
		publisher = notify.NewNatsPublisher(natsConnection, cfg.NATS.AudioCreatedSubject)
	}

	sink := output.NewStoreSink(store, publisher, key, log)

	err = pipeline.Run(ctx, req, synthesizer, sink)
	if err != nil {
		log.Error("Synthesis failed: %v", err)

		return err
	}

	_, err = fmt.Fprintln(stdout, sink.Key())
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrOutput, err)
	}

	return nil
}
