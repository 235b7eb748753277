package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "cogcompanion",
		Usage: "Cognitive health companion backed by a curated evidence base",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Usage: "path to a .env file; missing files are ignored",
				Value: ".env",
			},
			&cli.BoolFlag{
				Name:  "reindex",
				Usage: "re-embed the knowledge base even when the collection is populated",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serveAction,
			},
			{
				Name:  "search",
				Usage: "Query the knowledge base and print the hits",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "query", Usage: "search text", Required: true},
					&cli.IntFlag{Name: "k", Usage: "maximum number of hits", Value: 5},
					&cli.FloatFlag{Name: "threshold", Usage: "minimum similarity; defaults to SEARCH_THRESHOLD", Value: -1},
				},
				Action: searchAction,
			},
			{
				Name:  "summarize",
				Usage: "Process a file the way an upload is processed and print the result",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "path of the file to process", Required: true},
				},
				Action: summarizeAction,
			},
			{
				Name:   "mcp",
				Usage:  "Expose knowledge search as MCP tools over stdio",
				Action: mcpAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
