package explorer

import (
	"reflect"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalArgsScalars(t *testing.T) {
	got, err := EvalArgs("ibds", []string{"41 + 1", "true", "2.5", `"hi"`})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int32(42), true, 2.5, "hi"}, got)
}

func TestEvalArgsWideIntegers(t *testing.T) {
	got, err := EvalArgs("yxt", []string{"255", "-5", "5"})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{uint8(255), int64(-5), uint64(5)}, got)
}

func TestEvalArgsObjectPathAndSignature(t *testing.T) {
	got, err := EvalArgs("og", []string{`"/org/example"`, `"a{sv}"`})
	require.NoError(t, err)
	assert.Equal(t, dbus.ObjectPath("/org/example"), got[0])
	sig, ok := got[1].(dbus.Signature)
	require.True(t, ok)
	assert.Equal(t, "a{sv}", sig.String())
}

func TestEvalArgsArray(t *testing.T) {
	got, err := EvalArgs("ai", []string{"[1, 2, 3]"})
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3}, got[0])
}

func TestEvalArgsEmptyArray(t *testing.T) {
	got, err := EvalArgs("as", []string{"[]"})
	require.NoError(t, err)
	assert.Equal(t, []string{}, got[0])
}

func TestEvalArgsDictionary(t *testing.T) {
	got, err := EvalArgs("a{ss}", []string{`{"a": "b", "c": "d"}`})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "b", "c": "d"}, got[0])
}

func TestEvalArgsStruct(t *testing.T) {
	got, err := EvalArgs("(is)", []string{`[1, "x"]`})
	require.NoError(t, err)
	v := reflect.ValueOf(got[0])
	require.Equal(t, reflect.Struct, v.Kind())
	assert.Equal(t, int32(1), v.Field(0).Interface())
	assert.Equal(t, "x", v.Field(1).Interface())
}

func TestEvalArgsNestedContainer(t *testing.T) {
	got, err := EvalArgs("aas", []string{`[["a"], ["b", "c"]]`})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a"}, {"b", "c"}}, got[0])
}

func TestEvalArgsVariant(t *testing.T) {
	got, err := EvalArgs("v", []string{"42"})
	require.NoError(t, err)
	assert.Equal(t, dbus.MakeVariant(int64(42)), got[0])

	got, err = EvalArgs("v", []string{`{"k": 1}`})
	require.NoError(t, err)
	assert.Equal(t, dbus.MakeVariant(map[string]dbus.Variant{
		"k": dbus.MakeVariant(int64(1)),
	}), got[0])
}

func TestEvalArgsUnixFD(t *testing.T) {
	got, err := EvalArgs("h", []string{"3"})
	require.NoError(t, err)
	assert.Equal(t, dbus.UnixFD(3), got[0])

	_, err = EvalArgs("h", []string{`"3"`})
	assert.Error(t, err)
}

func TestEvalArgsNoArguments(t *testing.T) {
	got, err := EvalArgs("", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEvalArgsCountMismatch(t *testing.T) {
	_, err := EvalArgs("is", []string{"1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 argument(s)")
}

func TestEvalArgsRangeError(t *testing.T) {
	_, err := EvalArgs("y", []string{"300"})
	assert.Error(t, err)

	_, err = EvalArgs("u", []string{"-1"})
	assert.Error(t, err)
}

func TestEvalArgsTypeError(t *testing.T) {
	_, err := EvalArgs("i", []string{`"text"`})
	assert.Error(t, err)
}

func TestEvalArgsBadExpression(t *testing.T) {
	_, err := EvalArgs("i", []string{"1 +"})
	assert.Error(t, err)
}
