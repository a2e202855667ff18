package explorer

// emptyInterface reports whether an interface exposes no callable surface.
// Properties never count: an interface with only properties is empty.
func emptyInterface(iface Interface, includeSignals bool) bool {
	if len(iface.Methods) > 0 {
		return false
	}
	if includeSignals && len(iface.Signals) > 0 {
		return false
	}
	return true
}

// Empty reports whether the object itself exposes no callable surface.
func (o *Object) Empty(includeSignals bool) bool {
	for _, iface := range o.Interfaces() {
		if !emptyInterface(iface, includeSignals) {
			return false
		}
	}
	return true
}

// EmptyRecursive reports whether the object's entire subtree exposes no
// callable surface. Scanning stops at the first non-empty descendant.
func (o *Object) EmptyRecursive(includeSignals bool) bool {
	if !o.Empty(includeSignals) {
		return false
	}
	for _, child := range o.Children() {
		if !child.EmptyRecursive(includeSignals) {
			return false
		}
	}
	return true
}

// ListObjects returns the objects to display, depth-first with parents
// before children. With hideEmpty, a subtree with nothing callable anywhere
// is pruned entirely, and an object that only routes to callable
// descendants is skipped while its children are still walked.
func ListObjects(root *Object, hideEmpty, includeSignals bool) []*Object {
	var out []*Object
	listObjects(root, hideEmpty, includeSignals, &out)
	return out
}

func listObjects(o *Object, hideEmpty, includeSignals bool, out *[]*Object) {
	if hideEmpty && o.EmptyRecursive(includeSignals) {
		return
	}
	if !hideEmpty || !o.Empty(includeSignals) {
		*out = append(*out, o)
	}
	for _, child := range o.Children() {
		listObjects(child, hideEmpty, includeSignals, out)
	}
}
