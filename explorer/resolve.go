package explorer

import "strings"

// Resolve finds a method by bare name or by interface-qualified name
// ("org.freedesktop.DBus.GetId"). A qualified name, split on its last dot,
// only matches inside the named interface; a bare name matches the first
// interface, in listing order, that carries it. A miss returns (nil, nil);
// callers must check before dereferencing.
func (o *Object) Resolve(name string) (*Interface, *Callable) {
	wantIface := ""
	method := name
	if i := strings.LastIndex(name, "."); i >= 0 {
		wantIface, method = name[:i], name[i+1:]
	}
	ifaces := o.Interfaces()
	for i := range ifaces {
		if wantIface != "" && ifaces[i].Name != wantIface {
			continue
		}
		for j := range ifaces[i].Methods {
			if ifaces[i].Methods[j].Name == method {
				return &ifaces[i], &ifaces[i].Methods[j]
			}
		}
	}
	return nil, nil
}
