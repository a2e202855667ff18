package explorer

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/godbus/dbus/v5"
)

// Render converts a reply or signal-body value to its display form.
// Structs (decoded by godbus as ordered member lists) render as "(a, b)",
// arrays as "[a, b]", dictionaries as "{k: v}" with keys sorted for stable
// output, and variants as their contained value.
func Render(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case dbus.Variant:
		return Render(t.Value())
	case dbus.ObjectPath:
		return string(t)
	case dbus.Signature:
		return t.String()
	case string:
		return strconv.Quote(t)
	case []interface{}:
		parts := make([]string, len(t))
		for i, member := range t {
			parts[i] = Render(member)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = Render(rv.Index(i).Interface())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case reflect.Map:
		parts := make([]string, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			parts = append(parts, Render(iter.Key().Interface())+": "+Render(iter.Value().Interface()))
		}
		sort.Strings(parts)
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprintf("%v", v)
}
