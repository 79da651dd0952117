package runtime

import "testing"

func TestFrameDeclareAndLookup(t *testing.T) {
	frame := NewFrame(nil)
	if err := frame.Declare("x", NewNumber(1), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	val, ok := frame.Lookup("x")
	if !ok {
		t.Fatalf("expected x to be found")
	}
	if n, ok := val.(NumberValue); !ok || n.Val != 1 {
		t.Fatalf("expected NumberValue{1}, got %#v", val)
	}
}

func TestFrameDeclareDuplicateFails(t *testing.T) {
	frame := NewFrame(nil)
	_ = frame.Declare("x", NewNumber(1), true)
	err := frame.Declare("x", NewNumber(2), true)
	if err == nil {
		t.Fatalf("expected error declaring x twice")
	}
	if err.Error() != "x is already declared" {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestFrameAssignUnknownFails(t *testing.T) {
	frame := NewFrame(nil)
	err := frame.Assign("missing", NewNumber(1))
	if err == nil || err.Error() != "Unknown variable missing" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFrameAssignConstFails(t *testing.T) {
	frame := NewFrame(nil)
	_ = frame.Declare("x", NewNumber(1), false)
	err := frame.Assign("x", NewNumber(2))
	if err == nil || err.Error() != "Cannot redefine property: x" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFrameChildShadowsParent(t *testing.T) {
	parent := NewFrame(nil)
	_ = parent.Declare("x", NewString("outer"), true)

	child := parent.Extend()
	_ = child.Declare("x", NewString("inner"), true)

	val, _ := child.Lookup("x")
	if s := val.(StringValue).Val; s != "inner" {
		t.Fatalf("expected inner shadow, got %q", s)
	}
	outer, _ := parent.Lookup("x")
	if s := outer.(StringValue).Val; s != "outer" {
		t.Fatalf("expected parent untouched, got %q", s)
	}
}

func TestFrameAssignFindsOwningAncestor(t *testing.T) {
	parent := NewFrame(nil)
	_ = parent.Declare("x", NewNumber(1), true)
	child := parent.Extend()

	if err := child.Assign("x", NewNumber(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	val, _ := parent.Lookup("x")
	if n := val.(NumberValue).Val; n != 2 {
		t.Fatalf("expected parent's cell updated to 2, got %v", n)
	}
}

func TestObjectPrototypeChainLookup(t *testing.T) {
	proto := NewObject()
	proto.Set("greeting", NewString("hello"))

	child := NewObject()
	child.Proto = proto

	val, owner, ok := child.Get("greeting")
	if !ok {
		t.Fatalf("expected inherited key to be found")
	}
	if owner != proto {
		t.Fatalf("expected owner to be proto")
	}
	if val.(StringValue).Val != "hello" {
		t.Fatalf("unexpected value: %#v", val)
	}
}

func TestObjectRootHolderForNewKeys(t *testing.T) {
	root := NewObject()
	mid := NewObject()
	mid.Proto = root
	leaf := NewObject()
	leaf.Proto = mid

	if leaf.Root() != root {
		t.Fatalf("expected Root() to reach the outermost prototype")
	}
}

func TestArraySetExtendsWithHoles(t *testing.T) {
	arr := NewArray(nil)
	arr.Set(2, NewNumber(5))

	if len(arr.Elements) != 3 {
		t.Fatalf("expected length 3, got %d", len(arr.Elements))
	}
	if arr.Get(0) != Undefined {
		t.Fatalf("expected hole at index 0 to read as Undefined")
	}
	if n := arr.Get(2).(NumberValue).Val; n != 5 {
		t.Fatalf("expected 5 at index 2, got %v", n)
	}
}

func TestArrayDeleteLeavesHole(t *testing.T) {
	arr := NewArray([]Value{NewNumber(1), NewNumber(2)})
	arr.Delete(0)
	if arr.Get(0) != Undefined {
		t.Fatalf("expected deleted index to read as Undefined")
	}
	if len(arr.Elements) != 2 {
		t.Fatalf("expected delete to leave a hole, not shrink the array")
	}
}
