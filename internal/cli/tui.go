package cli

import (
	"errors"
	"fmt"

	"agentview/config"
	"agentview/internal/credentials"
	"agentview/internal/source"
	"agentview/internal/transcript"
	"agentview/internal/tui"
)

// RunTUI starts the full-screen chat wired to the same sources and
// transcript store as the console loop.
func RunTUI(opts ChatOptions) error {
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

	tuiOpts := tui.Options{
		Markdown: cfg.UI.Markdown,
		NewSource: func(prompt string) source.Source {
			if url != "" {
				return source.NewWebSocketSource(url, token, prompt)
			}
			return source.NewScriptSource(prompt)
		},
	}

	if cfg.Transcript && !opts.NoTranscript {
		dbPath, err := config.GetDatabasePath()
		if err != nil {
			return err
		}
		store, err := transcript.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open transcript: %w", err)
		}
		defer store.Close()
		tuiOpts.Extra = store
		tuiOpts.OnPrompt = func(prompt string) { store.BeginTurn(prompt) }
	}

	return tui.Start(tuiOpts)
}
