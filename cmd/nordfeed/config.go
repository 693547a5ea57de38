package main

import (
	"fmt"

	"github.com/pevans/nordfeed/config"
)

// ConfigCmd is the "config" subcommand.
type ConfigCmd struct {
	Show  ConfigShowCmd  `cmd:"" default:"1" help:"Show effective options and saved settings"`
	Set   ConfigSetCmd   `cmd:"" help:"Save a default option"`
	Unset ConfigUnsetCmd `cmd:"" help:"Remove a saved default option"`
}

// ConfigShowCmd is the "config show" subcommand.
type ConfigShowCmd struct{}

// Run prints the effective options and where they come from.
func (c *ConfigShowCmd) Run(deps *Dependencies) error {
	opts, err := deps.Options(FilterFlags{})
	if err != nil {
		return err
	}
	saved, err := deps.Settings.All()
	if err != nil {
		return err
	}

	values := map[string]string{
		config.KeyRegion:        string(opts.Region),
		config.KeyPoliceReports: fmt.Sprint(opts.IncludePoliceReports),
		config.KeyHideNNPlus:    fmt.Sprint(opts.HideNNPlus),
		config.KeyHideDPA:       fmt.Sprint(opts.HideDPA),
	}
	for _, key := range config.Keys() {
		source := ""
		if _, ok := saved[key]; ok {
			source = " (saved)"
		}
		fmt.Fprintf(deps.Stdout, "%-16s %s%s\n", key, values[key], source)
	}
	return nil
}

// ConfigSetCmd is the "config set" subcommand.
type ConfigSetCmd struct {
	Key   string `arg:"" help:"Setting key (region, police_reports, hide_nn_plus, hide_dpa)"`
	Value string `arg:"" help:"Setting value"`
}

// Run saves the setting.
func (c *ConfigSetCmd) Run(deps *Dependencies) error {
	if err := deps.Settings.Set(c.Key, c.Value); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "✓ Saved %s\n", c.Key)
	return nil
}

// ConfigUnsetCmd is the "config unset" subcommand.
type ConfigUnsetCmd struct {
	Key string `arg:"" help:"Setting key"`
}

// Run removes the setting.
func (c *ConfigUnsetCmd) Run(deps *Dependencies) error {
	if err := deps.Settings.Unset(c.Key); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "✓ Removed %s\n", c.Key)
	return nil
}
