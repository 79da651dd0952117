package interpreter

import (
	"testing"

	"able/evalscript/pkg/runtime"
)

type sampleHost struct {
	Name string
}

func (s *sampleHost) Greet(suffix string) string {
	return "hello " + s.Name + suffix
}

func TestToValuePrimitives(t *testing.T) {
	if _, ok := ToValue(nil).(runtime.UndefinedValue); !ok {
		t.Fatalf("expected nil to convert to Undefined")
	}
	if v, ok := ToValue(true).(runtime.BoolValue); !ok || !v.Val {
		t.Fatalf("expected bool to convert to BoolValue{true}")
	}
	if v, ok := ToValue("hi").(runtime.StringValue); !ok || v.Val != "hi" {
		t.Fatalf("expected string to convert to StringValue")
	}
	if v, ok := ToValue(3.5).(runtime.NumberValue); !ok || v.Val != 3.5 {
		t.Fatalf("expected float64 to convert to NumberValue")
	}
}

func TestToValueSliceAndMap(t *testing.T) {
	arr := ToValue([]interface{}{1.0, "a"}).(*runtime.ArrayValue)
	if len(arr.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(arr.Elements))
	}
	obj := ToValue(map[string]interface{}{"k": 1.0}).(*runtime.ObjectValue)
	val, _, ok := obj.Get("k")
	if !ok || val.(runtime.NumberValue).Val != 1 {
		t.Fatalf("expected key k to be 1, got %#v", val)
	}
}

func TestFromValueRoundTrip(t *testing.T) {
	original := map[string]interface{}{"a": 1.0, "b": []interface{}{1.0, 2.0}}
	back := FromValue(ToValue(original), nil)
	asMap, ok := back.(map[string]interface{})
	if !ok {
		t.Fatalf("expected map[string]interface{}, got %#v", back)
	}
	if asMap["a"] != 1.0 {
		t.Fatalf("unexpected value for a: %#v", asMap["a"])
	}
}

func TestHostHandleFieldAndMethod(t *testing.T) {
	host := &sampleHost{Name: "Ada"}
	handle := ToValue(host).(*runtime.HostHandle)

	name, err := hostGet(handle, "name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, ok := name.(runtime.StringValue); !ok || s.Val != "Ada" {
		t.Fatalf("expected field Name to read as 'Ada', got %#v", name)
	}

	greetVal, err := hostGet(handle, "greet")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	greet, ok := greetVal.(*runtime.NativeFunctionValue)
	if !ok {
		t.Fatalf("expected a callable bound method, got %#v", greetVal)
	}
	result, callErr := greet.Fn(runtime.Undefined, []runtime.Value{runtime.NewString("!")})
	if callErr != nil {
		t.Fatalf("unexpected call error: %v", callErr)
	}
	if s, ok := result.(runtime.StringValue); !ok || s.Val != "hello Ada!" {
		t.Fatalf("unexpected greeting: %#v", result)
	}
}
