package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"agentview/config"
	"agentview/internal/display"
	"agentview/internal/source"
	"agentview/internal/stream"
)

// RunReplay renders a recorded JSON-lines event log through the normal
// display pipeline. With follow enabled it keeps tailing the file until
// interrupted.
func RunReplay(path string, follow bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	machine := display.NewMachine(display.NewConsoleSink(cfg.UI.Markdown))
	session := stream.NewSession(machine)
	src := source.NewFileSource(path, follow)

	if err := source.Consume(ctx, src, session); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	return nil
}
