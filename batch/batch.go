// Package batch encrypts and decrypts buffers of many XR30256 blocks in
// parallel.
//
// Every block is transformed independently under the same key, exactly as
// if each were passed to cipher.EncryptBlock on its own. There is no
// chaining and no padding: the input must be a whole number of blocks.
package batch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"gopkg.in/op/go-logging.v1"

	"github.com/BackendStack21/xr30256-go/cipher"
	"github.com/BackendStack21/xr30256-go/utils"
)

// minSpanBlocks is the smallest number of blocks handed to one worker.
const minSpanBlocks = 4

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets the number of concurrent workers. Values below 1 select
// runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		e.workers = n
	}
}

// WithMaxBlocks sets the largest number of blocks accepted in one call.
func WithMaxBlocks(n int) Option {
	return func(e *Engine) { e.maxBlocks = n }
}

// WithLogger sets the logger used for per-call debug output.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// Stats is a snapshot of the work done by an Engine.
type Stats struct {
	Calls  uint64
	Blocks uint64
	Bytes  uint64
}

// Engine runs block transforms on a bounded set of goroutines.
// It is safe for concurrent use.
type Engine struct {
	c         *cipher.Cipher
	workers   int
	maxBlocks int
	log       *logging.Logger

	calls  atomic.Uint64
	blocks atomic.Uint64
}

// New returns an Engine bound to c.
func New(c *cipher.Cipher, opts ...Option) *Engine {
	e := &Engine{
		c:         c,
		workers:   runtime.GOMAXPROCS(0),
		maxBlocks: utils.MaxBatchBlocks,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Workers returns the configured worker count.
func (e *Engine) Workers() int { return e.workers }

// EncryptBlocks encrypts every block of data and returns the ciphertext.
func (e *Engine) EncryptBlocks(ctx context.Context, data []byte) ([]byte, error) {
	return e.run(ctx, "encrypt", data, e.c.Encrypt)
}

// DecryptBlocks decrypts every block of data and returns the plaintext.
func (e *Engine) DecryptBlocks(ctx context.Context, data []byte) ([]byte, error) {
	return e.run(ctx, "decrypt", data, e.c.Decrypt)
}

// Stats returns the cumulative totals of successful calls.
func (e *Engine) Stats() Stats {
	blocks := e.blocks.Load()
	return Stats{
		Calls:  e.calls.Load(),
		Blocks: blocks,
		Bytes:  blocks * cipher.BlockSize,
	}
}

func (e *Engine) run(ctx context.Context, op string, data []byte, fn func(dst, src []byte)) ([]byte, error) {
	n, err := utils.BlockCount(len(data), cipher.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of %d-byte blocks",
			cipher.ErrInvalidLength, len(data), cipher.BlockSize)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := e.alloc(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %d blocks with a limit of %d: %v",
			cipher.ErrAllocationFailure, n, e.maxBlocks, err)
	}

	span := spanSize(n, e.workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for start := 0; start < n; start += span {
		lo, hi := start, min(start+span, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				off := i * cipher.BlockSize
				fn(out[off:off+cipher.BlockSize], data[off:off+cipher.BlockSize])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// No partial output, even if cancellation raced the last span.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.calls.Add(1)
	e.blocks.Add(uint64(n))
	if e.log != nil {
		e.log.Debugf("%s: %d blocks on %d workers", op, n, e.workers)
	}
	return out, nil
}

// alloc returns the output buffer for n blocks, refusing sizes beyond the
// engine's block limit.
func (e *Engine) alloc(n int) ([]byte, error) {
	size, err := utils.SafeMultiply(n, cipher.BlockSize)
	if err != nil {
		return nil, err
	}
	limit, err := utils.SafeMultiply(e.maxBlocks, cipher.BlockSize)
	if errors.Is(err, utils.ErrOverflow) {
		limit = math.MaxInt
	} else if err != nil {
		return nil, err
	}
	return utils.SafeMakeByteSlice(size, limit)
}

// spanSize splits n blocks into contiguous spans, a few per worker so that
// uneven scheduling still balances.
func spanSize(n, workers int) int {
	span := n / (workers * 4)
	if span < minSpanBlocks {
		span = minSpanBlocks
	}
	return span
}
