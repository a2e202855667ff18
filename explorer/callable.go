package explorer

import (
	"strings"

	"github.com/godbus/dbus/v5/introspect"

	"github.com/AndreasHFA/dbus-tools/signature"
)

// Arg is a named (possibly anonymously) typed argument of a callable.
type Arg struct {
	Name string
	Type string
}

// Callable is a method or signal. For a signal every declared argument is
// an output unless the document says otherwise; for a method the direction
// defaults to "in".
type Callable struct {
	Name   string
	In     []Arg
	Out    []Arg
	Signal bool
}

// Property is a readable and/or writable attribute of an interface.
type Property struct {
	Name   string
	Type   string
	Access string
}

// Interface is a named group of methods, signals and properties.
type Interface struct {
	Name       string
	Methods    []Callable
	Signals    []Callable
	Properties []Property
}

func newInterface(xi introspect.Interface) Interface {
	iface := Interface{Name: xi.Name}
	for _, m := range xi.Methods {
		c := Callable{Name: m.Name}
		for _, a := range m.Args {
			if a.Direction == "out" {
				c.Out = append(c.Out, Arg{Name: a.Name, Type: a.Type})
			} else {
				c.In = append(c.In, Arg{Name: a.Name, Type: a.Type})
			}
		}
		iface.Methods = append(iface.Methods, c)
	}
	for _, s := range xi.Signals {
		c := Callable{Name: s.Name, Signal: true}
		for _, a := range s.Args {
			if a.Direction == "in" {
				c.In = append(c.In, Arg{Name: a.Name, Type: a.Type})
			} else {
				c.Out = append(c.Out, Arg{Name: a.Name, Type: a.Type})
			}
		}
		iface.Signals = append(iface.Signals, c)
	}
	for _, p := range xi.Properties {
		iface.Properties = append(iface.Properties, Property{
			Name:   p.Name,
			Type:   p.Type,
			Access: p.Access,
		})
	}
	return iface
}

// PPrint renders the callable as a single declaration line, e.g.
// "void Notify(String summary, Int32 timeout)" or
// "signal NameOwnerChanged(String name, String old, String new)".
func (c *Callable) PPrint() (string, error) {
	if c.Signal {
		params, err := argList(c.Out)
		if err != nil {
			return "", err
		}
		return "signal " + c.Name + "(" + params + ")", nil
	}
	ret, err := returnPart(c.Out)
	if err != nil {
		return "", err
	}
	params, err := argList(c.In)
	if err != nil {
		return "", err
	}
	return ret + " " + c.Name + "(" + params + ")", nil
}

func argList(args []Arg) (string, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		s, err := signature.PPrint(a.Type, a.Name)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ", "), nil
}

// returnPart renders a method's output arguments: "void" when there are
// none, the bare type for a sole unnamed output, and a parenthesized
// argument list otherwise.
func returnPart(out []Arg) (string, error) {
	switch {
	case len(out) == 0:
		return "void", nil
	case len(out) == 1 && out[0].Name == "":
		return signature.Format(out[0].Type)
	default:
		list, err := argList(out)
		if err != nil {
			return "", err
		}
		return "(" + list + ")", nil
	}
}
