package explorer

import (
	"fmt"
	"strings"
)

// Call invokes a resolved method with textual arguments, one expression per
// declared input. The reply body is returned as-is: one entry per declared
// output, a sole tuple-typed output staying a single entry. Bus errors are
// returned to the caller, not recovered.
func (o *Object) Call(iface *Interface, method *Callable, argv []string) ([]interface{}, error) {
	if o.conn == nil {
		return nil, fmt.Errorf("object %s %s has no bus connection", o.service, o.path)
	}
	var insig strings.Builder
	for _, a := range method.In {
		insig.WriteString(a.Type)
	}
	args, err := EvalArgs(insig.String(), argv)
	if err != nil {
		return nil, err
	}
	call := o.conn.Object(o.service, o.path).Call(iface.Name+"."+method.Name, 0, args...)
	if call.Err != nil {
		return nil, fmt.Errorf("call %s.%s on %s %s: %w",
			iface.Name, method.Name, o.service, o.path, call.Err)
	}
	return call.Body, nil
}
