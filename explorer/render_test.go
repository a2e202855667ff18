package explorer

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"string", "hi", `"hi"`},
		{"int", int32(5), "5"},
		{"bool", true, "true"},
		{"double", 2.5, "2.5"},
		{"null", nil, "null"},
		{"object path", dbus.ObjectPath("/org/example"), "/org/example"},
		{"array", []string{"a", "b"}, `["a", "b"]`},
		{"byte array", []byte{1, 2}, "[1, 2]"},
		{"empty array", []uint32{}, "[]"},
		{"variant", dbus.MakeVariant("x"), `"x"`},
		{"nested variant", dbus.MakeVariant(dbus.MakeVariant(int32(7))), "7"},
		{"struct", []interface{}{int32(1), "x"}, `(1, "x")`},
		{"struct in array", [][]interface{}{{int32(1)}, {int32(2)}}, "[(1), (2)]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.in))
		})
	}
}

func TestRenderMapSortsKeys(t *testing.T) {
	got := Render(map[string]int32{"b": 2, "a": 1, "c": 3})
	assert.Equal(t, `{"a": 1, "b": 2, "c": 3}`, got)
}

func TestRenderVariantMap(t *testing.T) {
	got := Render(map[string]dbus.Variant{"k": dbus.MakeVariant("v")})
	assert.Equal(t, `{"k": "v"}`, got)
}

func TestRenderTupleOutputStaysSingle(t *testing.T) {
	// A sole struct-typed output is one value: one rendered tuple, not a
	// spread of members.
	body := []interface{}{[]interface{}{int32(1), int32(2)}}
	assert.Len(t, body, 1)
	assert.Equal(t, "(1, 2)", Render(body[0]))
}
