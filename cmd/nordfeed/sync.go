package main

import (
	"fmt"

	"github.com/pevans/nordfeed/newsfeed"
)

// SyncCmd is the "sync" subcommand.
type SyncCmd struct {
	FilterFlags `embed:""`
	FeedFlags   `embed:""`
}

// Run scrapes the region and stores articles not seen before.
func (c *SyncCmd) Run(deps *Dependencies) error {
	opts, err := deps.Options(c.FilterFlags)
	if err != nil {
		return err
	}

	feed, err := deps.Feed(c.FeedFlags)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Syncing region: %s\n", opts.Region.Name())

	records, err := deps.Lister.ListArticles(deps.Ctx, opts)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	added, err := feed.AddNew(newsfeed.FromRecords(records, deps.Now()))
	if err != nil {
		return fmt.Errorf("failed to store items: %w", err)
	}

	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, "Sync completed:")
	fmt.Fprintf(deps.Stdout, "  Articles accepted: %d\n", len(records))
	fmt.Fprintf(deps.Stdout, "  Items added: %d\n", added)

	return nil
}
