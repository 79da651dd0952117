package interpreter

import (
	"reflect"

	"able/evalscript/pkg/runtime"
)

// ToValue converts a host Go value into a runtime.Value (§3.1): nil to
// Undefined, bool/string/float32/float64/int/int32/int64 to their
// primitive wrappers (other numeric kinds become HostHandles), []any and
// map[string]any recursively to Array/Object values, a Go func to a
// NativeFunctionValue, and anything else to a HostHandle wrapping its
// reflect.Value so script code can read its fields and call its methods.
func ToValue(v interface{}) runtime.Value {
	if v == nil {
		return runtime.Undefined
	}
	switch val := v.(type) {
	case runtime.Value:
		return val
	case bool:
		return runtime.NewBool(val)
	case string:
		return runtime.NewString(val)
	case float64:
		return runtime.NewNumber(val)
	case float32:
		return runtime.NewNumber(float64(val))
	case int:
		return runtime.NewNumber(float64(val))
	case int32:
		return runtime.NewNumber(float64(val))
	case int64:
		return runtime.NewNumber(float64(val))
	case []interface{}:
		elements := make([]runtime.Value, len(val))
		for i, e := range val {
			elements[i] = ToValue(e)
		}
		return runtime.NewArray(elements)
	case map[string]interface{}:
		obj := runtime.NewObject()
		for k, e := range val {
			obj.Set(k, ToValue(e))
		}
		return obj
	case func(runtime.Value, []runtime.Value) (runtime.Value, error):
		return runtime.NewNativeFunction("", val)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Func {
		return runtime.NewNativeFunction("", wrapHostFunc(rv))
	}
	return runtime.NewHostHandle(rv)
}

// wrapHostFunc adapts an arbitrary host Go function value into a
// NativeCallable so it can be invoked from script code.
func wrapHostFunc(fn reflect.Value) runtime.NativeCallable {
	return func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		fnType := fn.Type()
		in := make([]reflect.Value, 0, len(args))
		for i, arg := range args {
			var paramType reflect.Type
			switch {
			case fnType.IsVariadic() && i >= fnType.NumIn()-1:
				paramType = fnType.In(fnType.NumIn() - 1).Elem()
			case i < fnType.NumIn():
				paramType = fnType.In(i)
			default:
				paramType = reflect.TypeOf((*interface{})(nil)).Elem()
			}
			in = append(in, reflect.ValueOf(FromValue(arg, paramType)))
		}
		out := fn.Call(in)
		if len(out) == 0 {
			return runtime.Undefined, nil
		}
		last := out[len(out)-1]
		if last.Type().Implements(errorInterface) && !last.IsNil() {
			return nil, last.Interface().(error)
		}
		return ToValue(out[0].Interface()), nil
	}
}

// FromValue converts a runtime.Value back to a plain Go value suitable
// for reflect.ValueOf/assignment into target, the inverse of ToValue used
// when marshaling arguments out to host functions and methods.
func FromValue(v runtime.Value, target reflect.Type) interface{} {
	plain := fromValuePlain(v)
	if target == nil {
		return plain
	}
	pv := reflect.ValueOf(plain)
	if !pv.IsValid() {
		return reflect.Zero(target).Interface()
	}
	if pv.Type().AssignableTo(target) {
		return plain
	}
	if pv.Type().ConvertibleTo(target) {
		return pv.Convert(target).Interface()
	}
	return plain
}

func fromValuePlain(v runtime.Value) interface{} {
	switch val := v.(type) {
	case nil, runtime.UndefinedValue, runtime.NullValue:
		return nil
	case runtime.BoolValue:
		return val.Val
	case runtime.NumberValue:
		return val.Val
	case runtime.StringValue:
		return val.Val
	case *runtime.ArrayValue:
		out := make([]interface{}, len(val.Elements))
		for i, e := range val.Elements {
			out[i] = fromValuePlain(e)
		}
		return out
	case *runtime.ObjectValue:
		out := make(map[string]interface{})
		for _, k := range val.Keys() {
			value, _, _ := val.Get(k)
			out[k] = fromValuePlain(value)
		}
		return out
	case *runtime.HostHandle:
		return val.Value.Interface()
	default:
		return val
	}
}
