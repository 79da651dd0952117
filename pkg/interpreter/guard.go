package interpreter

import (
	"strconv"
	"time"
)

// Guard tracks the resource limits a single Evaluate call enforces:
// wall-clock timeout, call-depth, an external abort flag, and whether
// `while` statements are disabled outright. Shaped after the
// Budget/BudgetTracker split other sandboxed evaluators in the pack use
// (limits vs. live counters), collapsed into one struct since a single
// evaluation only ever needs one tracker.
type Guard struct {
	start    time.Time
	timeout  time.Duration // zero means unlimited
	maxDepth int           // zero means unlimited
	depth    int

	Aborted          *bool
	DisableWhileLoop bool
}

// NewGuard builds a Guard for one Evaluate call. timeoutMs <= 0 means no
// wall-clock limit; maxDepth <= 0 means no call-depth limit.
func NewGuard(timeoutMs int, maxDepth int, aborted *bool, disableWhile bool) *Guard {
	g := &Guard{
		start:            time.Now(),
		maxDepth:         maxDepth,
		Aborted:          aborted,
		DisableWhileLoop: disableWhile,
	}
	if timeoutMs > 0 {
		g.timeout = time.Duration(timeoutMs) * time.Millisecond
	}
	return g
}

// CheckLiveness is consulted at function-call entry and at each while-loop
// iteration (§5: "budget checks happen at those two points, never
// mid-expression"). It reports a ResourceError EvalError for timeout or
// abort.
func (g *Guard) CheckLiveness() *EvalError {
	if g.Aborted != nil && *g.Aborted {
		return resourceExceeded("Execution aborted")
	}
	if g.timeout > 0 && time.Since(g.start) > g.timeout {
		return resourceExceeded("Execution timed out")
	}
	return nil
}

// EnterCall increments the call-depth counter, returning a ResourceError
// error if it would exceed maxDepth. Callers must call ExitCall on every
// return path, including error paths, to keep the counter accurate.
func (g *Guard) EnterCall() *EvalError {
	if err := g.CheckLiveness(); err != nil {
		return err
	}
	g.depth++
	if g.maxDepth > 0 && g.depth > g.maxDepth {
		g.depth--
		return resourceExceeded(resourceMessageStackSize(g.maxDepth))
	}
	return nil
}

// ExitCall decrements the call-depth counter, never below zero. A failed
// EnterCall has already restored the counter, so an ExitCall after it
// releases the depth held by an enclosing call.
func (g *Guard) ExitCall() {
	if g.depth > 0 {
		g.depth--
	}
}

func resourceMessageStackSize(max int) string {
	return "Maximum stack size exceeded: " + strconv.Itoa(max)
}
