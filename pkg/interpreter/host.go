package interpreter

import (
	"reflect"
	"strings"

	"able/evalscript/pkg/runtime"
)

// hostGet reads key off a reflected host value: an exported struct field
// first, then an exported method of any arity (bound, so it can be
// called later without the handle), matching spec.md §4.G's "host-object
// reflection" behaviour.
func hostGet(h *runtime.HostHandle, key string) (runtime.Value, *EvalError) {
	rv := reflect.Indirect(h.Value)
	name := exportedName(key)

	if rv.Kind() == reflect.Struct {
		if field := rv.FieldByName(name); field.IsValid() && field.CanInterface() {
			return ToValue(field.Interface()), nil
		}
	}

	method := h.Value.MethodByName(name)
	if !method.IsValid() {
		method = rv.MethodByName(name)
	}
	if method.IsValid() {
		return runtime.NewNativeFunction(key, boundHostMethod(method)), nil
	}

	return runtime.Undefined, nil
}

func hostSet(h *runtime.HostHandle, key string, value runtime.Value) *EvalError {
	rv := reflect.Indirect(h.Value)
	if rv.Kind() != reflect.Struct {
		return typeErrorf("cannot set '%s' on a non-struct host value", key)
	}
	field := rv.FieldByName(exportedName(key))
	if !field.IsValid() || !field.CanSet() {
		return typeErrorf("cannot set unknown or unexported field '%s'", key)
	}
	field.Set(reflect.ValueOf(FromValue(value, field.Type())))
	return nil
}

// boundHostMethod adapts a bound reflect.Value method into the
// NativeCallable signature every callable value shares.
func boundHostMethod(method reflect.Value) runtime.NativeCallable {
	return func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		methodType := method.Type()
		in := make([]reflect.Value, 0, len(args))
		for i, arg := range args {
			var paramType reflect.Type
			switch {
			case methodType.IsVariadic() && i >= methodType.NumIn()-1:
				paramType = methodType.In(methodType.NumIn() - 1).Elem()
			case i < methodType.NumIn():
				paramType = methodType.In(i)
			default:
				paramType = reflect.TypeOf((*interface{})(nil)).Elem()
			}
			in = append(in, reflect.ValueOf(FromValue(arg, paramType)))
		}
		out := method.Call(in)
		if len(out) == 0 {
			return runtime.Undefined, nil
		}
		last := out[len(out)-1]
		if last.Type().Implements(errorInterface) && !last.IsNil() {
			return nil, last.Interface().(error)
		}
		if len(out) == 1 {
			return ToValue(out[0].Interface()), nil
		}
		return ToValue(out[0].Interface()), nil
	}
}

var errorInterface = reflect.TypeOf((*error)(nil)).Elem()

// exportedName capitalizes key's first rune, matching a lowerCamel
// script-side property name against Go's exported-field convention.
func exportedName(key string) string {
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
