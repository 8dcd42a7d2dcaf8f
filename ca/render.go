package ca

import (
	"bufio"
	"io"

	xr30256 "github.com/BackendStack21/xr30256-go"
)

// CenterCell is the position set by Seed for an empty fill.
const CenterCell = xr30256.RegisterBits / 2

// Seed returns an initial configuration for rendering. A zero fill gives a
// single live cell at CenterCell; any other fill is repeated in every limb.
func Seed(fill uint64) xr30256.Register {
	if fill == 0 {
		return SetBit(xr30256.Register{}, CenterCell, 1)
	}
	return xr30256.Register{fill, fill, fill, fill}
}

// Render writes r and the following generations of the rule to w, one line
// per generation, drawing live cells as on and dead cells as off. It writes
// generations+1 lines in total.
func Render(w io.Writer, r xr30256.Register, t xr30256.RuleTable, generations int, on, off rune) error {
	bw := bufio.NewWriter(w)
	for g := 0; ; g++ {
		for p := 0; p < xr30256.RegisterBits; p++ {
			c := off
			if Bit(r, p) == 1 {
				c = on
			}
			if _, err := bw.WriteRune(c); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		if g >= generations {
			break
		}
		r = Step(r, t)
	}
	return bw.Flush()
}
