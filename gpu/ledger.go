package gpu

import "fmt"

// Ledger is an Allocator that only keeps books. It backs headless runs and
// lets tests check that every create is paired with exactly one release.
type Ledger struct {
	next           Handle
	live           map[Handle]Layout
	created        map[Layout]int
	released       map[Layout]int
	doubleReleases []Handle

	// OnCreate, when set, is called after every allocation
	OnCreate func(h Handle, l Layout)
}

// NewLedger returns an empty ledger
func NewLedger() *Ledger {
	return &Ledger{
		live:     make(map[Handle]Layout),
		created:  make(map[Layout]int),
		released: make(map[Layout]int),
	}
}

func (l *Ledger) create(layout Layout) Handle {
	h := l.next
	l.next++
	l.live[h] = layout
	l.created[layout]++
	if l.OnCreate != nil {
		l.OnCreate(h, layout)
	}
	return h
}

// CreateCellVAO records a cell-geometry allocation
func (l *Ledger) CreateCellVAO() Handle { return l.create(CellLayout) }

// CreateBorderVAO records a border-geometry allocation
func (l *Ledger) CreateBorderVAO() Handle { return l.create(BorderLayout) }

// RemoveVAO records a release. Releasing an unknown or already released
// handle is remembered as a double release.
func (l *Ledger) RemoveVAO(h Handle) {
	layout, ok := l.live[h]
	if !ok {
		l.doubleReleases = append(l.doubleReleases, h)
		return
	}
	delete(l.live, h)
	l.released[layout]++
}

// Created returns how many handles of the layout were allocated
func (l *Ledger) Created(layout Layout) int { return l.created[layout] }

// Released returns how many handles of the layout were released
func (l *Ledger) Released(layout Layout) int { return l.released[layout] }

// Live returns the number of handles not yet released
func (l *Ledger) Live() int { return len(l.live) }

// IsLive reports whether h is currently allocated
func (l *Ledger) IsLive(h Handle) bool {
	_, ok := l.live[h]
	return ok
}

// DoubleReleases returns handles that were released when not live
func (l *Ledger) DoubleReleases() []Handle {
	out := make([]Handle, len(l.doubleReleases))
	copy(out, l.doubleReleases)
	return out
}

// Check returns an error describing leaks or double releases
func (l *Ledger) Check() error {
	if len(l.doubleReleases) > 0 {
		return fmt.Errorf("gpu: %d double releases (first handle %d)", len(l.doubleReleases), l.doubleReleases[0])
	}
	if n := len(l.live); n > 0 {
		return fmt.Errorf("gpu: %d handles leaked", n)
	}
	return nil
}

// String summarizes the books
func (l *Ledger) String() string {
	return fmt.Sprintf("cell %d/%d border %d/%d live %d",
		l.created[CellLayout], l.released[CellLayout],
		l.created[BorderLayout], l.released[BorderLayout], len(l.live))
}
