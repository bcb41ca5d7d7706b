package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/server"

	"github.com/KoBe1628/ai-fitness-tracker/internal/mcp"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "fittrack server URL (e.g. https://fittrack.tail1234.ts.net)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("fittrack-mcp", Version)
		return
	}

	// MCP runs over stdio; logs must go to stderr to keep the protocol
	// stream clean.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: fittrack-mcp -server <URL>\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	*serverURL = strings.TrimRight(*serverURL, "/")

	ds := mcp.NewHTTPClient(*serverURL)
	srv := mcp.New(ds, Version, log)

	log.Info("fittrack-mcp starting", "version", Version, "server", *serverURL)
	if err := server.ServeStdio(srv); err != nil {
		log.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}
