package interpreter

import (
	"able/evalscript/pkg/ast"
	"able/evalscript/pkg/runtime"
)

func nullishName(v runtime.Value) string {
	if v == nil {
		return "undefined"
	}
	if v.Kind() == runtime.KindNull {
		return "null"
	}
	return "undefined"
}

// memberKey resolves a MemberExpression's property to the string key
// used for array/object/host lookups, evaluating computed ([expr])
// access against frame.
func (in *Interpreter) memberKey(m *ast.MemberExpression, frame *runtime.Frame) (string, *EvalError) {
	if !m.Computed {
		id, ok := m.Property.(*ast.Identifier)
		if !ok {
			return "", typeErrorf("invalid property access")
		}
		return id.Name, nil
	}
	keyVal, err := in.evalExpression(m.Property, frame)
	if err != nil {
		return "", err
	}
	return valueToKey(keyVal), nil
}

func valueToKey(v runtime.Value) string {
	switch val := v.(type) {
	case runtime.StringValue:
		return val.Val
	default:
		return stringifyValue(v)
	}
}

// memberGet reads key off obj: array index/length, object proto-chain
// lookup, host-object reflection, or Undefined for anything else (§4.G).
func (in *Interpreter) memberGet(obj runtime.Value, key string) (runtime.Value, *EvalError) {
	switch o := obj.(type) {
	case *runtime.ArrayValue:
		if key == "length" {
			return runtime.NewNumber(float64(len(o.Elements))), nil
		}
		if idx, ok := parseIndex(key); ok {
			return o.Get(idx), nil
		}
		return runtime.Undefined, nil
	case *runtime.ObjectValue:
		value, _, ok := o.Get(key)
		if !ok {
			return runtime.Undefined, nil
		}
		return value, nil
	case runtime.StringValue:
		if key == "length" {
			return runtime.NewNumber(float64(len([]rune(o.Val)))), nil
		}
		return runtime.Undefined, nil
	case *runtime.HostHandle:
		return hostGet(o, key)
	default:
		return runtime.Undefined, nil
	}
}

// memberSet writes key on obj. Array writes extend the backing slice;
// object writes land on the nearest owner in the prototype chain, or on
// the root holder if no ancestor already defines the key (§3).
func (in *Interpreter) memberSet(obj runtime.Value, key string, value runtime.Value) *EvalError {
	switch o := obj.(type) {
	case *runtime.ArrayValue:
		idx, ok := parseIndex(key)
		if !ok {
			return typeErrorf("invalid array index '%s'", key)
		}
		o.Set(idx, value)
		return nil
	case *runtime.ObjectValue:
		if _, owner, ok := o.Get(key); ok {
			owner.Set(key, value)
			return nil
		}
		o.Root().Set(key, value)
		return nil
	case *runtime.HostHandle:
		return hostSet(o, key, value)
	default:
		return typeErrorf("Cannot set properties of %s (setting '%s')", nullishName(obj), key)
	}
}

func (in *Interpreter) memberDelete(obj runtime.Value, key string) bool {
	switch o := obj.(type) {
	case *runtime.ArrayValue:
		if idx, ok := parseIndex(key); ok {
			o.Delete(idx)
			return true
		}
		return false
	case *runtime.ObjectValue:
		return o.Delete(key)
	default:
		return false
	}
}

func parseIndex(key string) (int, bool) {
	if key == "" {
		return 0, false
	}
	n := 0
	for _, r := range key {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

func calleeDisplayName(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.Identifier:
		return e.Name
	case *ast.MemberExpression:
		if id, ok := e.Property.(*ast.Identifier); ok && !e.Computed {
			return id.Name
		}
		return "expression"
	default:
		return "expression"
	}
}
