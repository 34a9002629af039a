package navtree

// Entry is the flat back-stack view of one active-stack element, kept
// for renderers that predate the tree model. Tree node keys carry the
// entry-identity role the flat model's IDs used to.
type Entry struct {
	ID          string
	Destination Destination
	SavedState  map[string]any
	Transition  string
	IsPopping   bool
}

// Entries projects the active stack into the legacy flat back-stack
// form. Non-screen children (nested containers) appear with a nil
// destination; their identity is still meaningful for diffing.
func Entries(root Node) []Entry {
	stack := ActiveStack(root)
	if stack == nil {
		return nil
	}

	out := make([]Entry, 0, stack.Len())
	for i := 0; i < stack.Len(); i++ {
		child := stack.ChildAt(i)
		entry := Entry{ID: child.Key()}
		if screen, ok := child.(*Screen); ok {
			entry.Destination = screen.Destination()
			entry.SavedState = screen.SavedState()
			entry.Transition = screen.Transition()
		}
		out = append(out, entry)
	}
	return out
}
