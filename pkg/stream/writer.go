// Package stream writes formatted floats to an io.Writer. A Writer carries a
// current policy and locale rule; Chain applies a policy to the floats written
// through it without disturbing that state.
package stream

import (
	"fmt"
	"io"

	"github.com/rpgo/prprint/pkg/prprint"
)

// Writer is not safe for concurrent use. The first write error is sticky:
// later writes are skipped and Err reports it.
type Writer struct {
	w        io.Writer
	policy   prprint.Policy
	grouping prprint.Grouping
	n        int
	err      error
}

// NewWriter wraps w with an initial policy and locale rule.
func NewWriter(w io.Writer, p prprint.Policy, g prprint.Grouping) *Writer {
	return &Writer{w: w, policy: p, grouping: g}
}

func (w *Writer) Policy() prprint.Policy     { return w.policy }
func (w *Writer) Grouping() prprint.Grouping { return w.grouping }

func (w *Writer) SetPolicy(p prprint.Policy)     { w.policy = p }
func (w *Writer) SetGrouping(g prprint.Grouping) { w.grouping = g }

// Err returns the first write error.
func (w *Writer) Err() error { return w.err }

// Written returns the number of bytes written so far.
func (w *Writer) Written() int { return w.n }

// Apply makes p the current policy and returns a function restoring the
// previous policy and locale rule. Use it as
//
//	defer w.Apply(p)()
func (w *Writer) Apply(p prprint.Policy) (restore func()) {
	prevPolicy, prevGrouping := w.policy, w.grouping
	w.policy = p
	return func() {
		w.policy, w.grouping = prevPolicy, prevGrouping
	}
}

// Float writes v with the current policy and locale rule.
func (w *Writer) Float(v float64) *Writer {
	w.writeString(prprint.Format(v, w.policy, w.grouping))
	return w
}

// Float32 writes v with the current policy and locale rule.
func (w *Writer) Float32(v float32) *Writer {
	w.writeString(prprint.Format(v, w.policy, w.grouping))
	return w
}

// Print writes each operand with fmt's default format, floats included.
func (w *Writer) Print(a ...any) *Writer {
	if w.err != nil {
		return w
	}
	for _, v := range a {
		n, err := fmt.Fprint(w.w, v)
		w.n += n
		if err != nil {
			w.err = err
			break
		}
	}
	return w
}

// With starts a chain that formats floats with p.
func (w *Writer) With(p prprint.Policy) *Chain {
	return &Chain{w: w, policy: p}
}

func (w *Writer) writeString(s string) {
	if w.err != nil {
		return
	}
	n, err := io.WriteString(w.w, s)
	w.n += n
	if err != nil {
		w.err = err
	}
}

// Chain holds a pending policy. Floats written through it use that policy;
// every other operand is passed to fmt unchanged.
//
//	w.With(p).Print("total=", 1234.5, " items=", 3, "\n")
type Chain struct {
	w      *Writer
	policy prprint.Policy
}

// Policy replaces the pending policy for the floats that follow.
func (c *Chain) Policy(p prprint.Policy) *Chain {
	c.policy = p
	return c
}

// Float writes v with the pending policy; the writer's own policy is restored afterwards.
func (c *Chain) Float(v float64) *Chain {
	defer c.w.Apply(c.policy)()
	c.w.Float(v)
	return c
}

// Float32 is Float for float32 values.
func (c *Chain) Float32(v float32) *Chain {
	defer c.w.Apply(c.policy)()
	c.w.Float32(v)
	return c
}

// Print writes operands in order, formatting float64 and float32 operands
// with the pending policy.
func (c *Chain) Print(a ...any) *Chain {
	for _, v := range a {
		switch x := v.(type) {
		case float64:
			c.Float(x)
		case float32:
			c.Float32(x)
		default:
			c.w.Print(x)
		}
	}
	return c
}

// Err reports the underlying writer's first error.
func (c *Chain) Err() error { return c.w.Err() }

// Fprint formats v and writes it to w in one call.
func Fprint(w io.Writer, p prprint.Policy, g prprint.Grouping, v float64) (int, error) {
	return io.WriteString(w, prprint.Format(v, p, g))
}
