package main

import (
	"encoding/json"
	"fmt"
	"time"

	scraper "github.com/Sharathchenna/web-scraper-sub000"
)

const timeRound = 10 * time.Millisecond

// discoveryReport is the JSON shape of a discovery result.
type discoveryReport struct {
	URLs         []string `json:"urls"`
	Success      bool     `json:"success"`
	JSHeavy      bool     `json:"jsHeavy"`
	Score        int      `json:"score"`
	DurationMs   int64    `json:"durationMs"`
	Interactions []string `json:"interactions,omitempty"`
}

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	res := deps.Discoverer.Discover(deps.Ctx, c.URL, c.Want)

	if c.JSON {
		return json.NewEncoder(deps.Stdout).Encode(reportFrom(res, c.Trace))
	}

	if c.Trace {
		for _, entry := range res.Interactions {
			fmt.Fprintf(deps.Stderr, "  %s\n", entry)
		}
	}

	for _, u := range res.URLs {
		fmt.Fprintln(deps.Stdout, u)
	}

	if !res.Success {
		return fmt.Errorf("discovery failed: found %d urls after all strategies (score %d)", len(res.URLs), res.Score)
	}

	fmt.Fprintf(deps.Stderr, "found %d urls in %s\n", len(res.URLs), res.Duration.Round(timeRound))
	return nil
}

func reportFrom(res *scraper.DiscoveryResult, trace bool) discoveryReport {
	r := discoveryReport{
		URLs:       res.URLs,
		Success:    res.Success,
		JSHeavy:    res.JSHeavy,
		Score:      res.Score,
		DurationMs: res.Duration.Milliseconds(),
	}
	if trace {
		r.Interactions = res.Interactions
	}
	return r
}
