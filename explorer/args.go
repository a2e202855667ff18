package explorer

import (
	"fmt"
	"math"
	"reflect"

	"github.com/godbus/dbus/v5"
	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"

	"github.com/AndreasHFA/dbus-tools/signature"
)

// EvalArgs evaluates each command-line expression with CEL and coerces the
// results to the types listed by sig, a method's input signature. The
// expression count must match the signature's type count exactly.
func EvalArgs(sig string, exprs []string) ([]interface{}, error) {
	parts, err := signature.Split(sig)
	if err != nil {
		return nil, err
	}
	if len(parts) != len(exprs) {
		return nil, fmt.Errorf("method takes %d argument(s), got %d", len(parts), len(exprs))
	}
	env, err := cel.NewEnv()
	if err != nil {
		return nil, fmt.Errorf("expression environment: %w", err)
	}
	out := make([]interface{}, len(exprs))
	for i, expr := range exprs {
		v, err := evalExpr(env, expr)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		if out[i], err = toDBus(parts[i], v); err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
	}
	return out, nil
}

func evalExpr(env *cel.Env, expr string) (interface{}, error) {
	ast, iss := env.Compile(expr)
	if iss.Err() != nil {
		return nil, fmt.Errorf("parse %q: %w", expr, iss.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, err
	}
	val, _, err := prg.Eval(cel.NoVars())
	if err != nil {
		return nil, fmt.Errorf("evaluate %q: %w", expr, err)
	}
	return nativeValue(val)
}

// nativeValue lowers a CEL value to plain Go: scalars stay as int64,
// uint64, float64, bool or string; lists become []interface{}; maps become
// map[interface{}]interface{}.
func nativeValue(v ref.Val) (interface{}, error) {
	switch val := v.(type) {
	case traits.Lister:
		var out []interface{}
		it := val.Iterator()
		for it.HasNext() == types.True {
			elem, err := nativeValue(it.Next())
			if err != nil {
				return nil, err
			}
			out = append(out, elem)
		}
		return out, nil
	case traits.Mapper:
		out := make(map[interface{}]interface{})
		it := val.Iterator()
		for it.HasNext() == types.True {
			key := it.Next()
			elem, found := val.Find(key)
			if !found {
				continue
			}
			nk, err := nativeValue(key)
			if err != nil {
				return nil, err
			}
			nv, err := nativeValue(elem)
			if err != nil {
				return nil, err
			}
			out[nk] = nv
		}
		return out, nil
	default:
		return v.Value(), nil
	}
}

var atomicTypes = map[byte]reflect.Type{
	'y': reflect.TypeOf(uint8(0)),
	'b': reflect.TypeOf(false),
	'n': reflect.TypeOf(int16(0)),
	'q': reflect.TypeOf(uint16(0)),
	'i': reflect.TypeOf(int32(0)),
	'u': reflect.TypeOf(uint32(0)),
	'x': reflect.TypeOf(int64(0)),
	't': reflect.TypeOf(uint64(0)),
	'd': reflect.TypeOf(float64(0)),
	's': reflect.TypeOf(""),
	'o': reflect.TypeOf(dbus.ObjectPath("")),
	'g': reflect.TypeOf(dbus.Signature{}),
	'v': reflect.TypeOf(dbus.Variant{}),
	'h': reflect.TypeOf(dbus.UnixFD(0)),
}

// typeFor maps a single complete type to the Go type godbus marshals it
// from: typed slices for arrays, typed maps for dictionaries, and an
// anonymous struct for struct signatures.
func typeFor(sig string) (reflect.Type, error) {
	switch sig[0] {
	case 'a':
		elem := sig[1:]
		if elem[0] == '{' {
			key, value, err := dictEntry(elem)
			if err != nil {
				return nil, err
			}
			kt, err := typeFor(key)
			if err != nil {
				return nil, err
			}
			vt, err := typeFor(value)
			if err != nil {
				return nil, err
			}
			return reflect.MapOf(kt, vt), nil
		}
		et, err := typeFor(elem)
		if err != nil {
			return nil, err
		}
		return reflect.SliceOf(et), nil
	case '(':
		members, err := signature.Split(sig[1 : len(sig)-1])
		if err != nil {
			return nil, err
		}
		fields := make([]reflect.StructField, len(members))
		for i, member := range members {
			ft, err := typeFor(member)
			if err != nil {
				return nil, err
			}
			fields[i] = reflect.StructField{
				Name: fmt.Sprintf("Field%d", i),
				Type: ft,
			}
		}
		return reflect.StructOf(fields), nil
	default:
		t, ok := atomicTypes[sig[0]]
		if !ok {
			return nil, fmt.Errorf("unknown type code %q", string(sig[0]))
		}
		return t, nil
	}
}

// dictEntry splits "{KV}" into its key and value types.
func dictEntry(entry string) (key, value string, err error) {
	members, err := signature.Split(entry[1 : len(entry)-1])
	if err != nil {
		return "", "", err
	}
	if len(members) != 2 {
		return "", "", fmt.Errorf("dict entry %q needs exactly a key and a value", entry)
	}
	return members[0], members[1], nil
}

// toDBus coerces a lowered CEL value to the Go value godbus marshals as sig.
func toDBus(sig string, v interface{}) (interface{}, error) {
	switch sig[0] {
	case 'b':
		b, ok := v.(bool)
		if !ok {
			return nil, typeError(sig, v)
		}
		return b, nil
	case 'y', 'n', 'q', 'i', 'u', 'x', 't':
		return toInteger(sig[0], v)
	case 'd':
		switch n := v.(type) {
		case float64:
			return n, nil
		case int64:
			return float64(n), nil
		case uint64:
			return float64(n), nil
		}
		return nil, typeError(sig, v)
	case 's':
		s, ok := v.(string)
		if !ok {
			return nil, typeError(sig, v)
		}
		return s, nil
	case 'o':
		s, ok := v.(string)
		if !ok {
			return nil, typeError(sig, v)
		}
		return dbus.ObjectPath(s), nil
	case 'g':
		s, ok := v.(string)
		if !ok {
			return nil, typeError(sig, v)
		}
		parsed, err := dbus.ParseSignature(s)
		if err != nil {
			return nil, err
		}
		return parsed, nil
	case 'h':
		n, err := toInteger('i', v)
		if err != nil {
			return nil, err
		}
		return dbus.UnixFD(n.(int32)), nil
	case 'v':
		return guessVariant(v)
	case 'a':
		elem := sig[1:]
		if elem[0] == '{' {
			return toDict(elem, v)
		}
		return toArray(elem, v)
	case '(':
		return toStruct(sig, v)
	}
	return nil, fmt.Errorf("cannot build a value of type %q", sig)
}

func toInteger(code byte, v interface{}) (interface{}, error) {
	var n int64
	switch t := v.(type) {
	case int64:
		n = t
	case uint64:
		if t > math.MaxInt64 {
			if code == 't' {
				return t, nil
			}
			return nil, fmt.Errorf("%d overflows type %q", t, string(code))
		}
		n = int64(t)
	default:
		return nil, typeError(string(code), v)
	}
	switch code {
	case 'y':
		if n < 0 || n > math.MaxUint8 {
			return nil, rangeError(n, code)
		}
		return uint8(n), nil
	case 'n':
		if n < math.MinInt16 || n > math.MaxInt16 {
			return nil, rangeError(n, code)
		}
		return int16(n), nil
	case 'q':
		if n < 0 || n > math.MaxUint16 {
			return nil, rangeError(n, code)
		}
		return uint16(n), nil
	case 'i':
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, rangeError(n, code)
		}
		return int32(n), nil
	case 'u':
		if n < 0 || n > math.MaxUint32 {
			return nil, rangeError(n, code)
		}
		return uint32(n), nil
	case 'x':
		return n, nil
	case 't':
		if n < 0 {
			return nil, rangeError(n, code)
		}
		return uint64(n), nil
	}
	return nil, fmt.Errorf("unknown integer type %q", string(code))
}

func toArray(elem string, v interface{}) (interface{}, error) {
	items, ok := v.([]interface{})
	if !ok && v != nil {
		return nil, fmt.Errorf("array of %q needs a list, got %T", elem, v)
	}
	et, err := typeFor(elem)
	if err != nil {
		return nil, err
	}
	slice := reflect.MakeSlice(reflect.SliceOf(et), 0, len(items))
	for _, item := range items {
		conv, err := toDBus(elem, item)
		if err != nil {
			return nil, err
		}
		slice = reflect.Append(slice, reflect.ValueOf(conv))
	}
	return slice.Interface(), nil
}

func toDict(entry string, v interface{}) (interface{}, error) {
	m, ok := v.(map[interface{}]interface{})
	if !ok {
		return nil, fmt.Errorf("dictionary needs a map, got %T", v)
	}
	key, value, err := dictEntry(entry)
	if err != nil {
		return nil, err
	}
	kt, err := typeFor(key)
	if err != nil {
		return nil, err
	}
	vt, err := typeFor(value)
	if err != nil {
		return nil, err
	}
	out := reflect.MakeMapWithSize(reflect.MapOf(kt, vt), len(m))
	for k, item := range m {
		ck, err := toDBus(key, k)
		if err != nil {
			return nil, err
		}
		cv, err := toDBus(value, item)
		if err != nil {
			return nil, err
		}
		out.SetMapIndex(reflect.ValueOf(ck), reflect.ValueOf(cv))
	}
	return out.Interface(), nil
}

func toStruct(sig string, v interface{}) (interface{}, error) {
	members, err := signature.Split(sig[1 : len(sig)-1])
	if err != nil {
		return nil, err
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("struct %q needs a list of members, got %T", sig, v)
	}
	if len(items) != len(members) {
		return nil, fmt.Errorf("struct %q needs %d member(s), got %d", sig, len(members), len(items))
	}
	st, err := typeFor(sig)
	if err != nil {
		return nil, err
	}
	value := reflect.New(st).Elem()
	for i, item := range items {
		conv, err := toDBus(members[i], item)
		if err != nil {
			return nil, err
		}
		value.Field(i).Set(reflect.ValueOf(conv))
	}
	return value.Interface(), nil
}

// guessVariant wraps a value whose type is not pinned by the signature.
// Integers stay at their native 64-bit width; lists and maps become arrays
// of variants and string-keyed variant dictionaries.
func guessVariant(v interface{}) (dbus.Variant, error) {
	switch t := v.(type) {
	case bool, string, int64, uint64, float64:
		return dbus.MakeVariant(t), nil
	case []interface{}:
		elems := make([]dbus.Variant, len(t))
		for i, e := range t {
			ev, err := guessVariant(e)
			if err != nil {
				return dbus.Variant{}, err
			}
			elems[i] = ev
		}
		return dbus.MakeVariant(elems), nil
	case map[interface{}]interface{}:
		out := make(map[string]dbus.Variant, len(t))
		for k, item := range t {
			ks, ok := k.(string)
			if !ok {
				return dbus.Variant{}, fmt.Errorf("variant dictionaries need string keys, got %T", k)
			}
			ev, err := guessVariant(item)
			if err != nil {
				return dbus.Variant{}, err
			}
			out[ks] = ev
		}
		return dbus.MakeVariant(out), nil
	}
	return dbus.Variant{}, fmt.Errorf("cannot infer a variant type for %T", v)
}

func typeError(sig string, v interface{}) error {
	return fmt.Errorf("cannot use %T as type %q", v, sig)
}

func rangeError(n int64, code byte) error {
	return fmt.Errorf("%d out of range for type %q", n, string(code))
}
