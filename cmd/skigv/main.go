package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/dkashin/skigv"
	"github.com/dkashin/skigv/crawl"
	"github.com/dkashin/skigv/goquery"
	skihttp "github.com/dkashin/skigv/http"
	skislog "github.com/dkashin/skigv/slog"
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
	// Fetcher overrides the wired HTTP fetcher. Set for end-to-end testing.
	Fetcher skigv.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
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
		kong.Name("skigv"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'skigv --help' to see available commands")
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

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.BaseURL = cli.BaseURL
	deps.Season = skigv.Season(cli.Season)
	deps.Limiter = crawl.NewPacer(time.Duration(cli.Delay * float64(time.Second)))

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = skihttp.NewFetcher(skihttp.WithSeason(cli.BaseURL, deps.Season))
	}
	if cli.Verbose {
		fetcher = skislog.NewLoggingFetcher(fetcher, deps.Logger)
	}
	deps.Fetcher = fetcher
	defer deps.Fetcher.Close()

	deps.Sitemaps = skislog.NewLoggingSitemapService(skihttp.NewSitemapService(nil), deps.Logger)

	deps.Tracks = goquery.NewTrackExtractor(goquery.TrackConfig{
		Color:      true,
		LiftParams: deps.Season == skigv.SeasonSummer,
		DetailURL:  true,
	})
	deps.Lifts = goquery.NewLiftExtractor(goquery.DefaultScheduleOverrides())
	deps.Weather = goquery.NewWeatherExtractor()
	deps.Restaurants = goquery.NewRestaurantExtractor()
	deps.Trails = goquery.NewTrailExtractor(goquery.DefaultMapOverrides())
	deps.Prices = goquery.NewPriceExtractor()
	deps.Scheme = goquery.NewSchemeExtractor()

	return kongCtx.Run(deps)
}
