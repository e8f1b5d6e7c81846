package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"pv-intake/internal/app"
	"pv-intake/internal/domain"
	"pv-intake/internal/gateway"
)

// NewLeaderboardCmd shows reporter rankings: one-shot by default, --watch
// polls on the configured interval, --stream consumes live websocket pushes.
func NewLeaderboardCmd(configPath, apiFlag *string) *cobra.Command {
	var (
		watch  bool
		stream bool
	)
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the reporter leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLeaderboard(cmd.Context(), *configPath, *apiFlag, watch, stream, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "refresh on the configured poll interval")
	cmd.Flags().BoolVar(&stream, "stream", false, "subscribe to live updates over websocket")
	return cmd
}

func runLeaderboard(ctx context.Context, configPath, apiFlag string, watch, stream bool, out io.Writer) error {
	client, cfg, err := buildClient(configPath, apiFlag)
	if err != nil {
		return err
	}

	if stream {
		baseURL := cfg.API.BaseURL
		if apiFlag != "" {
			baseURL = apiFlag
		}
		return streamLeaderboard(ctx, baseURL, out)
	}

	if !watch {
		entries, err := client.Leaderboard(ctx)
		if err != nil {
			return err
		}
		renderLeaderboard(out, entries)
		return nil
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var mu sync.Mutex
	poller := app.NewPoller(pollInterval(cfg), client.Leaderboard, func(entries []domain.LeaderboardEntry) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(out)
		renderLeaderboard(out, entries)
	})
	poller.Run(ctx)
	return nil
}

func streamLeaderboard(ctx context.Context, baseURL string, out io.Writer) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	conn, err := gateway.DialStream(ctx, baseURL, gateway.EventLeaderboard)
	if err != nil {
		return err
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		event, err := conn.Next()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if event.Type != gateway.EventLeaderboard {
			continue
		}
		fmt.Fprintln(out)
		renderLeaderboard(out, event.Leaderboard)
	}
}
