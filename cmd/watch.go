package cmd

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dosirrah/mdx/internal/document"
	"github.com/dosirrah/mdx/internal/log"
	"github.com/dosirrah/mdx/internal/presentation"
	"github.com/dosirrah/mdx/internal/pubsub"
	"github.com/dosirrah/mdx/internal/watcher"
)

// runWatch processes the input once, then reprocesses it on every change
// until SIGINT or SIGTERM.
func runWatch(cmd *cobra.Command, pl *document.Pipeline, format document.Format, input, output string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return watchLoop(ctx, cmd.OutOrStdout(), pl, format, input, output, cfg.Watch.Debounce())
}

// watchLoop drives the watcher, the per-run pipeline, and the status
// subscriber. It returns when ctx is cancelled; failed runs keep the
// loop alive.
func watchLoop(ctx context.Context, out io.Writer, pl *document.Pipeline, format document.Format, input, output string, debounce time.Duration) error {
	broker := pubsub.NewBroker[pubsub.RunEvent]()
	defer broker.Close()

	events := broker.Subscribe(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range events {
			fmt.Fprintln(out, presentation.FormatRunStatus(event))
		}
	}()

	w, err := watcher.New(watcher.Config{Path: input, DebounceDur: debounce})
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", input)
	log.Info(log.CatWatch, "watch started", "path", input, "debounce", debounce)

	// Process once up front so the output exists before the first edit
	runOnce(ctx, pl, broker, format, input, output)

	for {
		select {
		case <-ctx.Done():
			broker.Close()
			<-done
			log.Info(log.CatWatch, "watch stopped", "path", input)
			return nil
		case <-onChange:
			runOnce(ctx, pl, broker, format, input, output)
		}
	}
}

func runOnce(ctx context.Context, pl *document.Pipeline, broker *pubsub.Broker[pubsub.RunEvent], format document.Format, input, output string) {
	start := time.Now()
	err := pl.Run(ctx, format, input, output)
	event := pubsub.RunEvent{Path: input, Err: err, Duration: time.Since(start)}

	if err != nil {
		log.Warn(log.CatWatch, "run failed", "path", input, "error", err)
		broker.Publish(pubsub.RunFailedEvent, event)
		return
	}
	broker.Publish(pubsub.RunSucceededEvent, event)
}
