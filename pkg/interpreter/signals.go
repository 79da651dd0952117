package interpreter

import "able/evalscript/pkg/runtime"

// returnSignal carries a `return` value up to the enclosing function call
// boundary without being visible to the host as an error — the same
// signal-as-error pattern the teacher's interpreter uses for break,
// continue, and raise. Short-circuited `?.` access (§4.E) is carried by a
// plain bool return value instead (evalChainable's shortCircuited result),
// not by a second signal type, since the chain evaluator already threads
// extra state (thisVal) alongside the value on every return path.
type returnSignal struct {
	value runtime.Value
}

func (r returnSignal) Error() string { return "return" }
