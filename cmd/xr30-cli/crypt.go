package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BackendStack21/xr30256-go/batch"
)

func newCryptCmd(a *app, encrypt bool) *cobra.Command {
	use, verb := "decrypt", "Decrypt"
	if encrypt {
		use, verb = "encrypt", "Encrypt"
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: verb + " one block or a block-aligned file",
		Long: verb + ` a single 32-byte block given as hex with --block, or every 32-byte block
of a file given with --input. Blocks are processed independently: there is no
padding and no chaining mode.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			blockHex, _ := cmd.Flags().GetString(flagBlock)
			input, _ := cmd.Flags().GetString(flagInput)
			output, _ := cmd.Flags().GetString(flagOutput)
			workers, _ := cmd.Flags().GetInt(flagWorkers)
			if (blockHex == "") == (input == "") {
				return errors.New("exactly one of --block or --input must be given")
			}
			if !cmd.Flags().Changed(flagWorkers) {
				workers = a.cfg.Workers()
			}

			kf, err := loadKey(cmd)
			if err != nil {
				return err
			}
			defer kf.Wipe()
			c, err := kf.Cipher()
			if err != nil {
				return err
			}

			if blockHex != "" {
				src, err := hex.DecodeString(strings.TrimSpace(blockHex))
				if err != nil {
					return fmt.Errorf("invalid argument --block: %v", err)
				}
				var dst []byte
				if encrypt {
					dst, err = c.EncryptBlock(src)
				} else {
					dst, err = c.DecryptBlock(src)
				}
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), []byte(hex.EncodeToString(dst)+"\n"), output)
			}

			data, err := readInput(input)
			if err != nil {
				return err
			}
			engine := batch.New(c,
				batch.WithWorkers(workers),
				batch.WithMaxBlocks(a.cfg.Batch.MaxBlocks),
				batch.WithLogger(a.log),
			)
			var out []byte
			if encrypt {
				out, err = engine.EncryptBlocks(cmd.Context(), data)
			} else {
				out, err = engine.DecryptBlocks(cmd.Context(), data)
			}
			if err != nil {
				return err
			}
			a.log.Infof("%s: %d blocks", use, engine.Stats().Blocks)
			if output == "" {
				return writeOutput(cmd.OutOrStdout(), []byte(hex.EncodeToString(out)+"\n"), "")
			}
			return writeOutput(cmd.OutOrStdout(), out, output)
		},
	}
	cmd.Flags().StringP(flagKey, "k", "", "key file")
	cmd.Flags().StringP(flagBlock, "b", "", "single 32-byte block as hex")
	cmd.Flags().StringP(flagInput, "i", "", "input file, a whole number of 32-byte blocks")
	cmd.Flags().StringP(flagOutput, "o", "", "output file (default: hex on stdout)")
	cmd.Flags().Int(flagWorkers, 0, "batch workers (default from config)")
	return cmd
}
