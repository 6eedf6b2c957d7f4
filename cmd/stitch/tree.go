package main

import (
	"fmt"

	stitch "github.com/alnah/go-stitch"
)

// runTree prints the files a merge would use, as a tree per path.
func runTree(args []string, env *Environment) error {
	flags, paths, err := parseTreeFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		printTreeUsage(env.Stderr)
		return ErrNoInput
	}

	cfg, err := loadConfig(flags.common.config, env)
	if err != nil {
		return withHints(err)
	}
	applyDiscoveryFlags(flags.discovery, cfg)
	if flags.common.quiet {
		cfg.Quiet = true
	}
	if err := cfg.Validate(); err != nil {
		return withHints(err)
	}

	found, err := collect(paths, cfg.MergeConfig().CatalogOptions(), env.Stderr, cfg.Quiet)
	if err != nil {
		return err
	}
	if err := stitch.RenderTree(env.Stdout, found.Trees); err != nil {
		return err
	}
	if !cfg.Quiet {
		fmt.Fprintf(env.Stdout, "\n%d file(s)\n", len(found.Entries))
	}
	return nil
}
