package main

import (
	"context"
	"io"

	scraper "github.com/Sharathchenna/web-scraper-sub000"
)

// Dependencies holds the services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Discoverer scraper.Discoverer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Discover DiscoverCmd `cmd:"" help:"Discover content URLs reachable from a root page"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	URL      string  `arg:"" help:"Root page URL"`
	Want     int     `short:"w" default:"10" help:"Target number of URLs before escalation stops"`
	JSON     bool    `help:"Emit the result as JSON"`
	Trace    bool    `short:"t" help:"Print the interaction trace"`
	Username string  `help:"Login username for sites behind a soft login wall"`
	Password string  `help:"Login password"`
	RPS      float64 `default:"2" help:"Per-domain request rate limit"`
	Verbose  bool    `short:"v" help:"Enable debug logging"`
}
