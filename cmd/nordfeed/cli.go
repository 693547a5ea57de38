package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pevans/nordfeed"
	"github.com/pevans/nordfeed/config"
	"github.com/pevans/nordfeed/newsfeed"
	"github.com/pevans/nordfeed/server"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	File     *config.FileConfig
	Settings *config.SettingsStore
	Lister   server.ArticleLister
	Now      func() time.Time
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose     bool   `short:"v" help:"Log debug output to stderr"`
	SettingsDSN string `name:"settings-dsn" env:"NORDFEED_SETTINGS_DSN" help:"Path to the settings database (default: ~/.nordfeed/settings.db)"`

	List    ListCmd    `cmd:"" help:"Print the feed of a region"`
	Sync    SyncCmd    `cmd:"" help:"Store new articles of a region in the feed directory"`
	Serve   ServeCmd   `cmd:"" help:"Serve region feeds over HTTP"`
	Regions RegionsCmd `cmd:"" help:"List known regions"`
	Config  ConfigCmd  `cmd:"" help:"Show or change saved default options"`
}

// FilterFlags select the region and article filters. Flags left out fall
// back to saved settings, then the config file, then built-in defaults.
type FilterFlags struct {
	Region          string `short:"r" help:"Region slug (see 'nordfeed regions')"`
	PoliceReports   bool   `name:"police-reports" xor:"police" help:"Include police reports"`
	NoPoliceReports bool   `name:"no-police-reports" xor:"police" help:"Exclude police reports"`
	HideNNPlus      bool   `name:"hide-nn-plus" xor:"nnplus" help:"Hide paywalled NN+ articles"`
	ShowNNPlus      bool   `name:"show-nn-plus" xor:"nnplus" help:"Show paywalled NN+ articles"`
	HideDPA         bool   `name:"hide-dpa" xor:"dpa" help:"Hide dpa articles"`
	ShowDPA         bool   `name:"show-dpa" xor:"dpa" help:"Show dpa articles"`
}

// defaultFeedDir is used when neither the flag nor the config file name one.
const defaultFeedDir = ".news"

// FeedFlags locate the stored news feed.
type FeedFlags struct {
	FeedDir string `name:"feed-dir" env:"NORDFEED_FEED_DIR" help:"News feed storage directory (default: .news)"`
}

// Feed opens the news feed named by flags or the config file.
func (d *Dependencies) Feed(flags FeedFlags) (*newsfeed.NewsFeed, error) {
	feedDir := flags.FeedDir
	if feedDir == "" && d.File != nil {
		feedDir = d.File.Storage.FeedDir
	}
	if feedDir == "" {
		feedDir = defaultFeedDir
	}

	feed, err := newsfeed.NewNewsFeed(feedDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open news feed: %w", err)
	}
	return feed, nil
}

// Options resolves the effective listing options for flags.
func (d *Dependencies) Options(flags FilterFlags) (nordfeed.Options, error) {
	opts := d.File.Apply(nordfeed.DefaultOptions())

	if d.Settings != nil {
		var err error
		opts, err = d.Settings.Apply(opts)
		if err != nil {
			return opts, err
		}
	}

	if flags.Region != "" {
		region, err := nordfeed.ParseRegion(flags.Region)
		if err != nil {
			return opts, err
		}
		opts.Region = region
	}

	switch {
	case flags.PoliceReports:
		opts.IncludePoliceReports = true
	case flags.NoPoliceReports:
		opts.IncludePoliceReports = false
	}
	switch {
	case flags.HideNNPlus:
		opts.HideNNPlus = true
	case flags.ShowNNPlus:
		opts.HideNNPlus = false
	}
	switch {
	case flags.HideDPA:
		opts.HideDPA = true
	case flags.ShowDPA:
		opts.HideDPA = false
	}

	return opts, nil
}
