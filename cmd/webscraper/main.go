package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	scraper "github.com/Sharathchenna/web-scraper-sub000"
	"github.com/Sharathchenna/web-scraper-sub000/crawl"
	"github.com/Sharathchenna/web-scraper-sub000/goquery"
	scraperhttp "github.com/Sharathchenna/web-scraper-sub000/http"
	"github.com/Sharathchenna/web-scraper-sub000/rod"
	scraperslog "github.com/Sharathchenna/web-scraper-sub000/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Discoverer overrides the default engine wiring. Set before calling
	// Run() for end-to-end testing.
	Discoverer scraper.Discoverer

	factory *rod.Factory
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.factory != nil {
		return m.factory.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webscraper"),
		kong.Description("Adaptive multi-strategy content link discovery"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webscraper --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if m.Discoverer != nil {
		deps.Discoverer = m.Discoverer
	} else {
		deps.Discoverer = m.buildDiscoverer(cli, stderr)
		defer m.Close()
	}

	return kongCtx.Run(deps)
}

// buildDiscoverer wires the production engine: HTTP fetcher, feed probe,
// heuristics prober, browser session factory, and per-domain rate limiting,
// with logging decorators around the service boundaries.
func (m *Main) buildDiscoverer(cli *CLI, stderr io.Writer) scraper.Discoverer {
	level := slog.LevelInfo
	if cli.Discover.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	classifier := scraper.NewClassifier(scraper.ClassifierConfig{})
	extractor := goquery.NewExtractor()
	analyzer := goquery.NewHeuristics(goquery.HeuristicsConfig{})

	fetcher := scraperslog.NewLoggingFetcher(scraperhttp.NewFetcher(), logger)
	feeds := scraperslog.NewLoggingFeedService(scraperhttp.NewFeedService(nil), logger)

	m.factory = rod.NewFactory(extractor, classifier,
		rod.WithAuthConfig(scraper.AuthConfig{
			Username: cli.Discover.Username,
			Password: cli.Discover.Password,
		}),
	)

	engine := &crawl.Engine{
		Prober: scraperslog.NewLoggingProber(&crawl.Prober{
			Fetcher:  fetcher,
			Analyzer: analyzer,
		}, logger),
		Cheap: &crawl.Harvester{
			Fetcher:    fetcher,
			Extractor:  extractor,
			Classifier: classifier,
			Feeds:      feeds,
		},
		Sessions: m.factory,
		Limiter:  crawl.NewDomainLimiter(cli.Discover.RPS),
	}

	return scraperslog.NewLoggingDiscoverer(engine, logger)
}
