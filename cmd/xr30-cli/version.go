package main

import (
	"fmt"

	"github.com/carlmjohnson/versioninfo"
	"github.com/spf13/cobra"

	xr30256 "github.com/BackendStack21/xr30256-go"
	"github.com/BackendStack21/xr30256-go/core"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Skip config and logging setup.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			p := core.XR30256Params
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s version %s (build %s)\n", appName, xr30256.Version, versioninfo.Short())
			fmt.Fprintf(w, "%s: rule %d, %d rounds x %d steps, %d generations\n",
				p.Variant, p.Rule, p.Rounds, p.StepsPerRound, p.Generations)
		},
	}
}
