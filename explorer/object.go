// Package explorer models introspected D-Bus objects: the interfaces,
// methods, signals and child objects a service exposes at an object path.
// Introspection documents are fetched lazily and memoized per object.
package explorer

import (
	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/sirupsen/logrus"
)

// IntrospectFunc fetches the introspection document for one object of a
// service. The default implementation calls the bus; tests substitute an
// in-memory document source.
type IntrospectFunc func(service string, path dbus.ObjectPath) (*introspect.Node, error)

// Object is an introspectable object at (service, path). Its interfaces and
// children are fetched on first access; the introspection round-trip happens
// at most once per Object. An object that fails to introspect degrades to
// "no interfaces, no children" instead of aborting the walk.
type Object struct {
	conn    *dbus.Conn
	service string
	path    dbus.ObjectPath

	introspectFn IntrospectFunc

	fetched  bool
	ifaces   []Interface
	children []*Object
}

// NewObject returns an object backed by the given bus connection. No bus
// traffic happens until interfaces or children are first accessed.
func NewObject(conn *dbus.Conn, service string, path dbus.ObjectPath) *Object {
	return &Object{
		conn:    conn,
		service: service,
		path:    path,
		introspectFn: func(service string, path dbus.ObjectPath) (*introspect.Node, error) {
			return introspect.Call(conn.Object(service, path))
		},
	}
}

// NewObjectWithSource returns an object whose introspection documents come
// from fn instead of a live bus. Such objects cannot invoke methods.
func NewObjectWithSource(service string, path dbus.ObjectPath, fn IntrospectFunc) *Object {
	return &Object{service: service, path: path, introspectFn: fn}
}

// Service returns the bus name the object belongs to.
func (o *Object) Service() string { return o.service }

// Path returns the object path.
func (o *Object) Path() dbus.ObjectPath { return o.path }

// Interfaces returns the object's interfaces, fetching them if needed.
func (o *Object) Interfaces() []Interface {
	o.fetch()
	return o.ifaces
}

// Children returns the object's direct children, fetching them if needed.
func (o *Object) Children() []*Object {
	o.fetch()
	return o.children
}

func (o *Object) fetch() {
	if o.fetched {
		return
	}
	o.fetched = true
	node, err := o.introspectFn(o.service, o.path)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"service": o.service,
			"path":    o.path,
		}).WithError(err).Debug("introspection failed, treating object as empty")
		return
	}
	for _, xi := range node.Interfaces {
		o.ifaces = append(o.ifaces, newInterface(xi))
	}
	for _, child := range node.Children {
		if child.Name == "" {
			continue
		}
		o.children = append(o.children, o.child(child.Name))
	}
}

// child constructs the object for a direct child path segment.
func (o *Object) child(name string) *Object {
	parent := string(o.path)
	if parent == "/" {
		parent = ""
	}
	return &Object{
		conn:         o.conn,
		service:      o.service,
		path:         dbus.ObjectPath(parent + "/" + name),
		introspectFn: o.introspectFn,
	}
}
