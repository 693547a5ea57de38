package main

import (
	"github.com/pevans/nordfeed/newsfeed"
)

// ListCmd is the "list" subcommand.
type ListCmd struct {
	FilterFlags `embed:""`

	Format string `short:"f" default:"rss" enum:"rss,atom,json" help:"Output format (rss, atom, json)"`
}

// Run scrapes the region and writes its feed to stdout.
func (c *ListCmd) Run(deps *Dependencies) error {
	opts, err := deps.Options(c.FilterFlags)
	if err != nil {
		return err
	}
	format, err := newsfeed.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	records, err := deps.Lister.ListArticles(deps.Ctx, opts)
	if err != nil {
		return err
	}

	now := deps.Now()
	items := newsfeed.FromRecords(records, now)
	return newsfeed.Render(deps.Stdout, format, newsfeed.RegionChannel(opts.Region, now), items)
}
