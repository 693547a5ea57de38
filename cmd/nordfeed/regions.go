package main

import (
	"fmt"

	"github.com/pevans/nordfeed"
)

// RegionsCmd is the "regions" subcommand.
type RegionsCmd struct{}

// Run prints every known region.
func (c *RegionsCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "%-30s %s\n", "SLUG", "NAME")
	for _, r := range nordfeed.Regions() {
		fmt.Fprintf(deps.Stdout, "%-30s %s\n", r.Slug, r.Name)
	}
	return nil
}
