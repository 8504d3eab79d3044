// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipeline

// Sentinel is the literal end-of-stream marker. A worker that dequeues
// this exact string forwards it downstream at most once and then exits.
const Sentinel = "<END>"

type resultKind uint8

const (
	kindPassthrough resultKind = iota
	kindOwned
	kindFailed
)

// Result is a transform's tagged return value. Go strings carry no usable
// pointer identity for the original plugin ABI's out==in ownership check
// (see the Transform Contract), so Result replaces that check with an
// explicit tag: Passthrough means "no new allocation, same logical item",
// Owned means "freshly computed string", Failed means the transform could
// not process the input.
type Result struct {
	kind resultKind
	s    string
}

// Passthrough returns a Result carrying s unchanged, signalling that the
// worker should treat this as a no-op (empty input, single-character
// input, or the sentinel) rather than a fresh allocation.
func Passthrough(s string) Result {
	return Result{kind: kindPassthrough, s: s}
}

// Owned returns a Result wrapping a freshly computed string.
func Owned(s string) Result {
	return Result{kind: kindOwned, s: s}
}

// Failed returns a Result signalling that the transform could not produce
// an output. The worker logs this and drops the item; the pipeline is not
// stopped.
func Failed() Result {
	return Result{kind: kindFailed}
}

// Ok reports whether the transform produced usable output (Passthrough or
// Owned).
func (r Result) Ok() bool {
	return r.kind != kindFailed
}

// String returns the transform's output. Only meaningful when Ok is true.
func (r Result) String() string {
	return r.s
}

// IsPassthrough reports whether this Result is a no-allocation passthrough
// of the original input.
func (r Result) IsPassthrough() bool {
	return r.kind == kindPassthrough
}

// Transform is a pure function from an input string to a [Result].
//
// Contract (unchanged from the original plugin ABI):
//   - Called with [Sentinel]: must return Passthrough(Sentinel) and must
//     not perform any observable side effect.
//   - No-op cases (empty input, or any other case the transform defines
//     as idempotent, e.g. single-character input for a pairwise
//     transform): return Passthrough(input).
//   - Transformation cases: return Owned(newString).
//   - On failure (e.g. simulated allocation failure): return Failed().
//
// A Transform must not retain or mutate the input string's backing array
// (strings are immutable in Go, so this is automatic) and must be safe
// for concurrent use only in the sense that a single stage invokes it
// from exactly one goroutine at a time — per-stage in-order processing
// means a Transform never needs its own internal locking for sequencing.
type Transform func(input string) Result
