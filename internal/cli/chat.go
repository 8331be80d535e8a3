package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"agentview/config"
	"agentview/internal/credentials"
	"agentview/internal/display"
	"agentview/internal/eventlog"
	"agentview/internal/source"
	"agentview/internal/stream"
	"agentview/internal/transcript"
)

// ChatOptions carries the root command's flags.
type ChatOptions struct {
	// SourceURL overrides the configured gateway URL. Empty falls back to
	// the config, and an empty config runs the built-in scripted agents.
	SourceURL string
	// Record appends raw events to a JSON-lines file replayable with the
	// replay command.
	Record string
	// Debug appends raw events and finalized panels to the event log.
	Debug bool
	// NoTranscript disables transcript persistence for this run.
	NoTranscript bool
}

// RunChat drives the interactive console loop: read a prompt, stream one
// turn, repeat until the quit word.
func RunChat(opts ChatOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	url := opts.SourceURL
	if url == "" {
		url = cfg.Source.URL
	}

	token := ""
	if url != "" {
		token, err = credentials.GetGatewayToken()
		if err != nil && !errors.Is(err, credentials.ErrNotFound) {
			return fmt.Errorf("read gateway token: %w", err)
		}
	}

	console := display.NewConsoleSink(cfg.UI.Markdown)
	sinks := []display.Sink{console}

	var store *transcript.Store
	if cfg.Transcript && !opts.NoTranscript {
		dbPath, err := config.GetDatabasePath()
		if err != nil {
			return err
		}
		store, err = transcript.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open transcript: %w", err)
		}
		defer store.Close()
		sinks = append(sinks, store)
	}

	var logger *eventlog.Logger
	if opts.Debug {
		logPath, err := config.GetEventLogPath()
		if err != nil {
			return err
		}
		logger = eventlog.New(logPath)
		sinks = append(sinks, logger.Sink())
	}

	var recorder *eventlog.Recorder
	if opts.Record != "" {
		recorder, err = eventlog.NewRecorder(opts.Record)
		if err != nil {
			return err
		}
		defer recorder.Close()
	}

	sink := display.NewTee(sinks...)

	fmt.Println("agentview interactive chat")
	fmt.Printf("Type your message, or %q to exit.\n\n", cfg.QuitWord)

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			// EOF on stdin ends the session like the quit word.
			fmt.Println()
			return nil
		}
		prompt := strings.TrimSpace(line)
		if prompt == "" {
			continue
		}
		if strings.EqualFold(prompt, cfg.QuitWord) {
			fmt.Println("Goodbye!")
			return nil
		}

		if store != nil {
			store.BeginTurn(prompt)
		}

		machine := display.NewMachine(sink)
		machine.User(prompt)

		if err := runTurn(url, token, prompt, machine, logger, recorder); err != nil {
			if errors.Is(err, context.Canceled) {
				fmt.Fprintln(os.Stderr, "\nTurn cancelled.")
				continue
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}

// runTurn streams one prompt to completion. Ctrl+C cancels between events
// and the turn's partial state is discarded.
func runTurn(url, token, prompt string, machine *display.Machine, logger *eventlog.Logger, recorder *eventlog.Recorder) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var src source.Source
	if url != "" {
		src = source.NewWebSocketSource(url, token, prompt)
	} else {
		src = source.NewScriptSource(prompt)
	}

	var session source.Session = stream.NewSession(machine)
	session = eventlog.WrapSession(session, logger)
	session = eventlog.WrapRecording(session, recorder)

	return source.Consume(ctx, src, session)
}
