package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP/WebSocket API",
	Long: `Serve snake sessions over HTTP. Each session ticks on its own timer;
clients steer it with POST requests and watch it over a WebSocket.

Endpoints:
  POST   /api/sessions                   {preset?, difficulty?, seed?}
  GET    /api/sessions/:id
  POST   /api/sessions/:id/direction     {direction}
  POST   /api/sessions/:id/acceleration  {on}
  POST   /api/sessions/:id/pointer       {x, y, down}
  POST   /api/sessions/:id/restart
  DELETE /api/sessions/:id
  GET    /api/sessions/:id/frame.png?size=N
  GET    /ws/sessions/:id
  GET    /api/scores/:game

Examples:
  snake web
  snake web --addr :9000 --difficulty hard`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address")
}

func runWeb(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger("snake-web", false)
	defer closeLog()

	store := openStore(logger)
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	manager := web.NewManager(store, logger, flagConfig, flagDifficulty)
	server := web.NewServer(manager, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting snake web API on %s\n", flagWebAddr)
	if err := server.ListenAndServe(ctx, flagWebAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
