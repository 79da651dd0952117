package runtime

import "fmt"

// cell is a single binding: its current value and whether it can be
// reassigned (§3 "own bindings map a name to a cell {value, writable}").
type cell struct {
	value    Value
	writable bool
}

// Frame is one level of lexical scope: own bindings plus an optional
// parent. The chain of frames is the scope chain (§3 "Environment").
type Frame struct {
	own    map[string]*cell
	parent *Frame
}

// NewFrame creates a frame, optionally nested under parent. parent is nil
// for the top-level frame seeded from the host context dictionary.
func NewFrame(parent *Frame) *Frame {
	return &Frame{own: make(map[string]*cell), parent: parent}
}

// Parent exposes the lexical parent (nil at the top level).
func (f *Frame) Parent() *Frame { return f.parent }

// Lookup resolves name to the nearest frame owning it (§3 "A name
// resolves to the nearest frame owning it; outer frames are shadowed").
func (f *Frame) Lookup(name string) (Value, bool) {
	for cur := f; cur != nil; cur = cur.parent {
		if c, ok := cur.own[name]; ok {
			return c.value, true
		}
	}
	return nil, false
}

// HasAny reports whether name is bound anywhere on the chain.
func (f *Frame) HasAny(name string) bool {
	_, ok := f.Lookup(name)
	return ok
}

// Declare creates name in this frame only. It is an error if this frame
// (not an ancestor) already owns the name (§3 "Declaration creates the
// binding in the innermost frame and fails if that frame already owns the
// name").
func (f *Frame) Declare(name string, value Value, writable bool) error {
	if _, exists := f.own[name]; exists {
		return fmt.Errorf("%s is already declared", name)
	}
	f.own[name] = &cell{value: value, writable: writable}
	return nil
}

// Assign ascends the chain to the owning frame and mutates its cell. It
// fails if no frame owns the name, or if the owning cell is immutable
// (§3 "Assignment to an identifier must find an existing binding
// somewhere on the chain; it is an error otherwise").
func (f *Frame) Assign(name string, value Value) error {
	for cur := f; cur != nil; cur = cur.parent {
		if c, ok := cur.own[name]; ok {
			if !c.writable {
				return fmt.Errorf("Cannot redefine property: %s", name)
			}
			c.value = value
			return nil
		}
	}
	return fmt.Errorf("Unknown variable %s", name)
}

// RedefineOwnerCell locates the owning frame and replaces the cell's
// value in place, preserving its immutability flag — the primitive
// compound assignment (§4.B) and pre/post increment/decrement (§4.C)
// build on. It returns the same "Cannot redefine property" error Assign
// does when the owning cell is const.
func (f *Frame) RedefineOwnerCell(name string, newValue Value) error {
	for cur := f; cur != nil; cur = cur.parent {
		if c, ok := cur.own[name]; ok {
			if !c.writable {
				return fmt.Errorf("Cannot redefine property: %s", name)
			}
			c.value = newValue
			return nil
		}
	}
	return fmt.Errorf("Unknown variable %s", name)
}

// Extend creates a child frame, the pattern every block/function-call
// entry uses to open a new lexical scope.
func (f *Frame) Extend() *Frame {
	return NewFrame(f)
}
