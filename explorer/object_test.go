package explorer

import (
	"encoding/xml"
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// xmlSource serves introspection documents from a path-keyed map, counting
// fetches per path. Paths without a document return an error, like a bus
// object that does not implement Introspectable.
type xmlSource struct {
	docs    map[dbus.ObjectPath]string
	fetches map[dbus.ObjectPath]int
}

func newXMLSource(docs map[dbus.ObjectPath]string) *xmlSource {
	return &xmlSource{docs: docs, fetches: make(map[dbus.ObjectPath]int)}
}

func (s *xmlSource) introspect(service string, path dbus.ObjectPath) (*introspect.Node, error) {
	s.fetches[path]++
	doc, ok := s.docs[path]
	if !ok {
		return nil, errors.New("org.freedesktop.DBus.Error.UnknownObject")
	}
	var node introspect.Node
	if err := xml.Unmarshal([]byte(doc), &node); err != nil {
		return nil, err
	}
	return &node, nil
}

const rootDoc = `<node>
  <node name="org"/>
  <interface name="org.freedesktop.DBus.Peer">
    <method name="Ping"/>
    <method name="GetMachineId">
      <arg name="machine_uuid" type="s" direction="out"/>
    </method>
  </interface>
</node>`

const playerDoc = `<node>
  <interface name="org.example.Player">
    <method name="Seek">
      <arg name="offset" type="x" direction="in"/>
    </method>
    <signal name="Seeked">
      <arg name="position" type="x"/>
    </signal>
    <property name="Volume" type="d" access="readwrite"/>
  </interface>
</node>`

func TestInterfacesAndChildren(t *testing.T) {
	src := newXMLSource(map[dbus.ObjectPath]string{"/": rootDoc})
	obj := NewObjectWithSource("org.example", "/", src.introspect)

	ifaces := obj.Interfaces()
	require.Len(t, ifaces, 1)
	assert.Equal(t, "org.freedesktop.DBus.Peer", ifaces[0].Name)
	require.Len(t, ifaces[0].Methods, 2)
	assert.Equal(t, "Ping", ifaces[0].Methods[0].Name)

	children := obj.Children()
	require.Len(t, children, 1)
	assert.Equal(t, dbus.ObjectPath("/org"), children[0].Path())
	assert.Equal(t, "org.example", children[0].Service())
}

func TestIntrospectionIsMemoized(t *testing.T) {
	src := newXMLSource(map[dbus.ObjectPath]string{"/": rootDoc})
	obj := NewObjectWithSource("org.example", "/", src.introspect)

	obj.Interfaces()
	obj.Interfaces()
	obj.Children()
	assert.Equal(t, 1, src.fetches["/"])
}

func TestIntrospectionIsLazy(t *testing.T) {
	src := newXMLSource(map[dbus.ObjectPath]string{"/": rootDoc})
	obj := NewObjectWithSource("org.example", "/", src.introspect)

	// Construction is pure bookkeeping; the first access fetches.
	assert.Equal(t, 0, src.fetches["/"])
	obj.Interfaces()
	assert.Equal(t, 1, src.fetches["/"])
}

func TestFailedIntrospectionDegradesToEmpty(t *testing.T) {
	src := newXMLSource(nil)
	obj := NewObjectWithSource("org.example", "/", src.introspect)
	assert.Empty(t, obj.Interfaces())
	assert.Empty(t, obj.Children())
	// The failed fetch is memoized too.
	obj.Interfaces()
	assert.Equal(t, 1, src.fetches["/"])
}

func TestMalformedDocumentDegradesToEmpty(t *testing.T) {
	src := newXMLSource(map[dbus.ObjectPath]string{"/": "<node><interface"})
	obj := NewObjectWithSource("org.example", "/", src.introspect)
	assert.Empty(t, obj.Interfaces())
	assert.Empty(t, obj.Children())
}

func TestChildPathJoining(t *testing.T) {
	docs := map[dbus.ObjectPath]string{
		"/":            `<node><node name="org"/></node>`,
		"/org":         `<node><node name="example"/></node>`,
		"/org/example": playerDoc,
	}
	src := newXMLSource(docs)
	obj := NewObjectWithSource("org.example", "/", src.introspect)

	children := obj.Children()
	require.Len(t, children, 1)
	grandchildren := children[0].Children()
	require.Len(t, grandchildren, 1)
	assert.Equal(t, dbus.ObjectPath("/org/example"), grandchildren[0].Path())
	require.Len(t, grandchildren[0].Interfaces(), 1)
}

func TestSignalArgumentsDefaultToOutputs(t *testing.T) {
	src := newXMLSource(map[dbus.ObjectPath]string{"/": playerDoc})
	obj := NewObjectWithSource("org.example", "/", src.introspect)

	ifaces := obj.Interfaces()
	require.Len(t, ifaces, 1)
	require.Len(t, ifaces[0].Signals, 1)
	sig := ifaces[0].Signals[0]
	assert.Empty(t, sig.In)
	require.Len(t, sig.Out, 1)
	assert.Equal(t, Arg{Name: "position", Type: "x"}, sig.Out[0])

	require.Len(t, ifaces[0].Properties, 1)
	assert.Equal(t, Property{Name: "Volume", Type: "d", Access: "readwrite"}, ifaces[0].Properties[0])
}

func TestResolveQualified(t *testing.T) {
	doc := `<node>
  <interface name="org.example.A">
    <method name="Do"/>
  </interface>
  <interface name="org.example.B">
    <method name="Do"/>
    <method name="Other"/>
  </interface>
</node>`
	src := newXMLSource(map[dbus.ObjectPath]string{"/": doc})
	obj := NewObjectWithSource("org.example", "/", src.introspect)

	iface, method := obj.Resolve("org.example.B.Do")
	require.NotNil(t, method)
	assert.Equal(t, "org.example.B", iface.Name)
	assert.Equal(t, "Do", method.Name)

	// A bare name matches the first interface in listing order.
	iface, method = obj.Resolve("Do")
	require.NotNil(t, method)
	assert.Equal(t, "org.example.A", iface.Name)

	iface, method = obj.Resolve("org.example.A.Other")
	assert.Nil(t, iface)
	assert.Nil(t, method)

	iface, method = obj.Resolve("Missing")
	assert.Nil(t, iface)
	assert.Nil(t, method)
}
