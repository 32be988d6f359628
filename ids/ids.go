package ids

// ID identifies an OS window, tab or pane for the lifetime of the process.
// Zero is reserved for "no entity".
type ID uint64

// Kind selects one of the independent id sequences
type Kind int

const (
	OSWindow Kind = iota
	Tab
	Pane
	numKinds
)

func (k Kind) String() string {
	switch k {
	case OSWindow:
		return "os_window"
	case Tab:
		return "tab"
	case Pane:
		return "pane"
	default:
		return "unknown"
	}
}

// Allocator issues strictly increasing ids per kind. Ids are never reused.
type Allocator struct {
	counters [numKinds]ID
}

// Next returns a fresh id of the given kind
func (a *Allocator) Next(kind Kind) ID {
	a.counters[kind]++
	return a.counters[kind]
}

// Peek returns the id the next call to Next would issue without consuming it
func (a *Allocator) Peek(kind Kind) ID {
	return a.counters[kind] + 1
}
