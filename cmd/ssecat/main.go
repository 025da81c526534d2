// Command ssecat streams Server-Sent Events from a URL to standard
// output, reconnecting on failure like a browser EventSource would.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	sseclient "github.com/solen-io/go-sseclient"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		lastEventID string
		retry       time.Duration
		chunkSize   int
		headers     []string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "ssecat [url]",
		Short: "Stream Server-Sent Events to standard output",
		Long: `Stream Server-Sent Events to standard output.

The URL may be given as an argument or through the SSECAT_URL
environment variable; a .env file in the working directory is loaded
first. SSECAT_AUTHORIZATION, when set, is sent as the Authorization
header.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			url := os.Getenv("SSECAT_URL")
			if len(args) > 0 {
				url = args[0]
			}
			if url == "" {
				return errors.New("no URL given: pass an argument or set SSECAT_URL")
			}

			h := http.Header{}
			if auth := os.Getenv("SSECAT_AUTHORIZATION"); auth != "" {
				h.Set("Authorization", auth)
			}
			for _, kv := range headers {
				name, value, ok := strings.Cut(kv, ":")
				if !ok {
					return fmt.Errorf("malformed header %q, want name:value", kv)
				}
				h.Add(strings.TrimSpace(name), strings.TrimSpace(value))
			}

			opts := charmlog.Options{ReportTimestamp: true}
			if verbose {
				opts.Level = charmlog.DebugLevel
			}
			logger := slog.New(charmlog.NewWithOptions(os.Stderr, opts))

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			r, err := sseclient.NewStreamReader(ctx, url, sseclient.Config{
				Headers:       h,
				LastEventID:   lastEventID,
				RetryInterval: retry,
				ChunkSize:     chunkSize,
				Logger:        logger,
			})
			if err != nil {
				return err
			}
			defer r.Close()

			for ev, err := range r.Events() {
				if err != nil {
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return err
				}
				if ev.Type != sseclient.DefaultEventType {
					fmt.Printf("[%s] %s\n", ev.Type, ev.Data)
				} else {
					fmt.Println(ev.Data)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&lastEventID, "last-event-id", "", "resume the stream from this event ID")
	cmd.Flags().DurationVar(&retry, "retry", sseclient.DefaultRetryInterval, "initial reconnection delay")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", sseclient.DefaultChunkSize, "read size in bytes for non-chunked responses")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "extra request header, name:value (repeatable)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}
