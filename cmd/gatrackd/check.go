package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"gatrack/internal/tracking"
)

func newCheckCmd() *cobra.Command {
	var production bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Resolve every route and print the config command its tracker would send",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, production)
		},
	}
	cmd.Flags().BoolVar(&production, "production", false, "Resolve in production mode")
	return cmd
}

func runCheck(cmd *cobra.Command, production bool) error {
	cfg, path, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if path == "" {
		return fmt.Errorf("no config file found")
	}
	if !cmd.Flags().Changed("production") {
		production = cfg.Production
	}
	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	failed := 0
	for _, p := range reg.Paths() {
		chain, _ := reg.Chain(p)
		c, err := tracking.ConfigCommand(chain, production)
		if tracking.IsNotConfigurable(err) {
			fmt.Fprintf(out, "%s\tnot tracked: %v\n", p, err)
			continue
		}
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s\terror: %v\n", p, err)
			continue
		}
		b, err := json.Marshal(c.Wire())
		if err != nil {
			return fmt.Errorf("encode %s: %w", p, err)
		}
		fmt.Fprintf(out, "%s\t%s\n", p, b)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d routes cannot initialize a tracker", failed, len(reg.Paths()))
	}
	return nil
}
