package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/BackendStack21/xr30256-go/batch"
	"github.com/BackendStack21/xr30256-go/cipher"
	"github.com/BackendStack21/xr30256-go/utils"
)

// benchBatchBlocks is the number of blocks per batch call.
const benchBatchBlocks = 1024

func newBenchmarkCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Measure key schedule and encryption throughput",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			duration, _ := cmd.Flags().GetDuration("duration")
			workers, _ := cmd.Flags().GetInt(flagWorkers)
			if !cmd.Flags().Changed(flagWorkers) {
				workers = a.cfg.Workers()
			}
			if duration <= 0 {
				return fmt.Errorf("invalid argument --duration: must be positive")
			}

			key := utils.Shake256WithDomain("xr30-benchmark-key", nil, cipher.KeySize)
			data := utils.Shake256WithDomain("xr30-benchmark-data", nil, benchBatchBlocks*cipher.BlockSize)
			w := cmd.OutOrStdout()

			fmt.Fprintf(w, "XR30256 Benchmark Results\n")
			fmt.Fprintf(w, "=========================\n")
			fmt.Fprintf(w, "Duration: %v per test\n", duration)
			fmt.Fprintf(w, "Workers:  %d\n\n", workers)

			// Key schedule
			var c *cipher.Cipher
			n, elapsed := 0, time.Duration(0)
			for elapsed < duration || n == 0 {
				start := time.Now()
				var err error
				c, err = cipher.NewCipher(key)
				elapsed += time.Since(start)
				if err != nil {
					return err
				}
				n++
			}
			fmt.Fprintf(w, "  KeySchedule: %v (avg)\n", elapsed/time.Duration(n))

			// Single block, single thread
			block := make([]byte, cipher.BlockSize)
			copy(block, data)
			n = 0
			start := time.Now()
			for elapsed = 0; elapsed < duration || n == 0; elapsed = time.Since(start) {
				c.Encrypt(block, block)
				n++
			}
			fmt.Fprintf(w, "  Encrypt:     %v (avg), %.0f blocks/s\n",
				elapsed/time.Duration(n), float64(n)/elapsed.Seconds())

			// Batch
			engine := batch.New(c, batch.WithWorkers(workers), batch.WithLogger(a.log))
			start = time.Now()
			for elapsed = 0; elapsed < duration || engine.Stats().Calls == 0; elapsed = time.Since(start) {
				if _, err := engine.EncryptBlocks(cmd.Context(), data); err != nil {
					return err
				}
			}
			stats := engine.Stats()
			fmt.Fprintf(w, "  Batch:       %.0f blocks/s, %.2f MB/s\n",
				float64(stats.Blocks)/elapsed.Seconds(), float64(stats.Bytes)/elapsed.Seconds()/1e6)

			fmt.Fprintln(w)
			fmt.Fprintln(w, "Benchmark complete!")
			return nil
		},
	}
	cmd.Flags().Duration("duration", time.Second, "time spent on each measurement")
	cmd.Flags().Int(flagWorkers, 0, "batch workers (default from config)")
	return cmd
}
