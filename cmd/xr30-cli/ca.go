package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/BackendStack21/xr30256-go/ca"
	"github.com/BackendStack21/xr30256-go/core"
)

func newCACmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ca",
		Short: "Render an elementary cellular automaton",
		Long: `Print successive generations of an elementary cellular automaton on the
256-cell circular register used by the cipher. With no --fill the register
starts from a single live centre cell.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, _ := cmd.Flags().GetUint8("rule")
			generations, _ := cmd.Flags().GetInt("generations")
			fillHex, _ := cmd.Flags().GetString("fill")
			on, _ := cmd.Flags().GetString("on")
			off, _ := cmd.Flags().GetString("off")
			if on == "" {
				on = a.cfg.Output.On
			}
			if off == "" {
				off = a.cfg.Output.Off
			}

			if generations < 0 || generations > core.MaxGenerations {
				return fmt.Errorf("invalid argument --generations: must be in [0, %d]", core.MaxGenerations)
			}
			onRunes, offRunes := []rune(on), []rune(off)
			if len(onRunes) != 1 || len(offRunes) != 1 {
				return errors.New("invalid argument: --on and --off must be single characters")
			}

			var fill uint64
			if fillHex != "" {
				v, err := strconv.ParseUint(fillHex, 16, 64)
				if err != nil {
					return fmt.Errorf("invalid argument --fill: %v", err)
				}
				fill = v
			}

			a.log.Debugf("rendering rule %d for %d generations", rule, generations)
			return ca.Render(cmd.OutOrStdout(), ca.Seed(fill), ca.RuleFromNumber(rule), generations, onRunes[0], offRunes[0])
		},
	}
	cmd.Flags().Uint8("rule", 30, "Wolfram rule number")
	cmd.Flags().Int("generations", 32, "number of generations after the initial one")
	cmd.Flags().String("fill", "", "64-bit hex word repeated across the initial register")
	cmd.Flags().String("on", "", "character for live cells (default from config)")
	cmd.Flags().String("off", "", "character for dead cells (default from config)")
	return cmd
}
