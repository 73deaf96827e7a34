package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/url"

	"github.com/dkashin/skigv"
	"github.com/dkashin/skigv/crawl"
)

// Dependencies holds the wired services for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Fetcher  skigv.Fetcher
	Sitemaps skigv.SitemapService
	Limiter  skigv.PacingLimiter

	Tracks      skigv.TrackExtractor
	Lifts       skigv.LiftExtractor
	Weather     skigv.WeatherExtractor
	Restaurants skigv.RestaurantExtractor
	Trails      skigv.TrailExtractor
	Prices      skigv.PriceExtractor
	Scheme      skigv.SchemeExtractor

	BaseURL string
	Season  skigv.Season
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Season  string  `help:"Season variant to request (winter or summer)" enum:"winter,summer" default:"winter"`
	BaseURL string  `name:"base-url" help:"Site root URL" default:"https://ski-gv.ru"`
	Delay   float64 `help:"Minimum seconds between requests" default:"1"`
	Verbose bool    `short:"v" help:"Log requests to stderr"`

	Zones       ZonesCmd       `cmd:"" help:"Crawl all zones and their tracks"`
	Lifts       LiftsCmd       `cmd:"" help:"Extract lift schedules"`
	Weather     WeatherCmd     `cmd:"" help:"Extract the current weather snapshot"`
	Restaurants RestaurantsCmd `cmd:"" help:"Crawl restaurant profiles"`
	Trails      TrailsCmd      `cmd:"" help:"Extract eco-trail descriptions"`
	Prices      PricesCmd      `cmd:"" help:"Extract ski pass price plans"`
	Scheme      SchemeCmd      `cmd:"" help:"Extract the slope scheme of a zone page"`
	Snapshot    SnapshotCmd    `cmd:"" help:"Take a concurrent snapshot of all single-page domains"`
}

// ZonesCmd is the "zones" subcommand.
type ZonesCmd struct {
	HillsPath string `name:"hills-path" help:"Hills index path; empty scans the home page" default:"/hills/1/1/"`
}

// LiftsCmd is the "lifts" subcommand.
type LiftsCmd struct{}

// WeatherCmd is the "weather" subcommand.
type WeatherCmd struct{}

// RestaurantsCmd is the "restaurants" subcommand.
type RestaurantsCmd struct {
	IDs []int `help:"Company page IDs used when sitemap discovery yields nothing"`
}

// TrailsCmd is the "trails" subcommand.
type TrailsCmd struct{}

// PricesCmd is the "prices" subcommand.
type PricesCmd struct{}

// SchemeCmd is the "scheme" subcommand.
type SchemeCmd struct {
	URL string `arg:"" help:"Zone page URL"`
}

// SnapshotCmd is the "snapshot" subcommand.
type SnapshotCmd struct{}

// writeJSON emits v to stdout as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// fetchPage retrieves a single page with pacing.
func fetchPage(deps *Dependencies, rawURL string) (string, error) {
	if deps.Limiter != nil {
		host := rawURL
		if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
			host = u.Host
		}
		if err := deps.Limiter.Wait(deps.Ctx, host); err != nil {
			return "", err
		}
	}
	return deps.Fetcher.Fetch(deps.Ctx, rawURL)
}

// Run executes the zones command.
func (c *ZonesCmd) Run(deps *Dependencies) error {
	crawler := &crawl.ZoneCrawler{
		Fetcher:   deps.Fetcher,
		Tracks:    deps.Tracks,
		Limiter:   deps.Limiter,
		BaseURL:   deps.BaseURL,
		HillsPath: c.HillsPath,
		Season:    deps.Season,
		Logger:    deps.Logger,
	}

	result, err := crawler.CrawlZones(deps.Ctx)
	if err != nil {
		return err
	}
	return writeJSON(deps.Stdout, result)
}

// Run executes the lifts command.
func (c *LiftsCmd) Run(deps *Dependencies) error {
	html, err := fetchPage(deps, deps.BaseURL+crawl.DefaultSchedulePath)
	if err != nil {
		return err
	}
	lifts, err := deps.Lifts.ExtractLifts(html)
	if err != nil {
		return err
	}
	return writeJSON(deps.Stdout, lifts)
}

// Run executes the weather command.
func (c *WeatherCmd) Run(deps *Dependencies) error {
	html, err := fetchPage(deps, deps.BaseURL+crawl.DefaultWeatherPath)
	if err != nil {
		return err
	}
	weather, err := deps.Weather.ExtractWeather(html, deps.BaseURL)
	if err != nil {
		return err
	}
	return writeJSON(deps.Stdout, weather)
}

// Run executes the restaurants command.
func (c *RestaurantsCmd) Run(deps *Dependencies) error {
	crawler := &crawl.RestaurantCrawler{
		Fetcher:     deps.Fetcher,
		Profiles:    deps.Restaurants,
		Sitemaps:    deps.Sitemaps,
		Limiter:     deps.Limiter,
		BaseURL:     deps.BaseURL,
		FallbackIDs: c.IDs,
		Logger:      deps.Logger,
	}

	result, err := crawler.CrawlRestaurants(deps.Ctx)
	if err != nil {
		return err
	}
	return writeJSON(deps.Stdout, result)
}

// Run executes the trails command.
func (c *TrailsCmd) Run(deps *Dependencies) error {
	html, err := fetchPage(deps, deps.BaseURL+crawl.DefaultTrailsPath)
	if err != nil {
		return err
	}
	trails, err := deps.Trails.ExtractTrails(html)
	if err != nil {
		return err
	}
	return writeJSON(deps.Stdout, trails)
}

// Run executes the prices command.
func (c *PricesCmd) Run(deps *Dependencies) error {
	html, err := fetchPage(deps, deps.BaseURL+crawl.DefaultPricesPath)
	if err != nil {
		return err
	}
	prices, err := deps.Prices.ExtractPrices(html)
	if err != nil {
		return err
	}
	return writeJSON(deps.Stdout, prices)
}

// Run executes the scheme command.
func (c *SchemeCmd) Run(deps *Dependencies) error {
	html, err := fetchPage(deps, c.URL)
	if err != nil {
		return err
	}
	scheme, err := deps.Scheme.ExtractScheme(html, deps.BaseURL)
	if err != nil {
		return err
	}
	return writeJSON(deps.Stdout, scheme)
}

// Run executes the snapshot command.
func (c *SnapshotCmd) Run(deps *Dependencies) error {
	crawler := &crawl.SnapshotCrawler{
		Fetcher: deps.Fetcher,
		Limiter: deps.Limiter,
		Weather: deps.Weather,
		Lifts:   deps.Lifts,
		Trails:  deps.Trails,
		Prices:  deps.Prices,
		BaseURL: deps.BaseURL,
		Logger:  deps.Logger,
	}

	snap, err := crawler.TakeSnapshot(deps.Ctx)
	if err != nil {
		return err
	}
	return writeJSON(deps.Stdout, snap)
}
