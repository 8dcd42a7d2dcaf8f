// Command xr30-cli is the command line interface to the XR30256 block cipher.
//
// Usage:
//
//	xr30-cli keygen [--passphrase P] [--format json|cbor] [--output FILE]
//	xr30-cli schedule --key FILE
//	xr30-cli encrypt --key FILE (--block HEX | --input FILE) [--output FILE]
//	xr30-cli decrypt --key FILE (--block HEX | --input FILE) [--output FILE]
//	xr30-cli ca [--rule N] [--generations G] [--fill HEX]
//	xr30-cli benchmark [--duration D] [--workers N]
//	xr30-cli version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/op/go-logging.v1"

	"github.com/BackendStack21/xr30256-go/config"
	"github.com/BackendStack21/xr30256-go/log"
)

const appName = "xr30-cli"

// Flag names shared by several commands.
const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
	flagKey      = "key"
	flagOutput   = "output"
	flagInput    = "input"
	flagBlock    = "block"
	flagWorkers  = "workers"
)

// app carries the state shared by all commands once the configuration and
// logging have been set up.
type app struct {
	cfg     *config.Config
	backend *log.Backend
	log     *logging.Logger
}

func (a *app) setup(cmd *cobra.Command) error {
	cfgFile, _ := cmd.Flags().GetString(flagConfig)
	if cfgFile == "" {
		a.cfg = config.Default()
	} else {
		cfg, err := config.LoadFile(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config file '%s': %v", cfgFile, err)
		}
		a.cfg = cfg
	}

	level := a.cfg.Logging.Level
	if cmd.Flags().Changed(flagLogLevel) {
		level, _ = cmd.Flags().GetString(flagLogLevel)
	}
	backend, err := log.New(a.cfg.Logging.File, level, a.cfg.Logging.Disable)
	if err != nil {
		return err
	}
	a.backend = backend
	a.log = backend.GetLogger(appName)
	return nil
}

func (a *app) teardown() {
	if a.backend != nil {
		_ = a.backend.Close()
	}
}

// execute runs the command tree with args and releases the log backend
// whether or not the command succeeded.
func (a *app) execute(root *cobra.Command, args []string) error {
	defer a.teardown()
	root.SetArgs(args)
	return root.Execute()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "XR30256 rule 30 block cipher tool",
		Long:          "A CLI tool for the XR30256 experimental 256-bit block cipher built on a rule 30 cellular automaton.\nXR30256 is a research curiosity: do not use it to protect real data.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().String(flagConfig, "", "path to TOML config file")
	root.PersistentFlags().String(flagLogLevel, "NOTICE", "log level (ERROR, WARNING, NOTICE, INFO, DEBUG)")

	root.AddCommand(
		newKeygenCmd(a),
		newScheduleCmd(a),
		newCryptCmd(a, true),
		newCryptCmd(a, false),
		newCACmd(a),
		newBenchmarkCmd(a),
		newVersionCmd(),
	)
	return root
}

func main() {
	a := new(app)
	if err := a.execute(newRootCmd(a), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
