package state

import (
	"math/rand"
	"testing"

	"github.com/javanhut/ravenstate/ids"
	"github.com/javanhut/ravenstate/screen"
)

// checkTree verifies that every store is dense, every active index is in
// range and every live pane resolves exactly once
func checkTree(t *testing.T, r *Registry, step int) {
	t.Helper()
	seen := map[ids.ID]int{}
	for i := range r.windows.items {
		w := r.windows.at(i)
		if w.id == 0 {
			t.Fatalf("step %d: zero window at index %d", step, i)
		}
		if n := w.tabs.len(); (n == 0 && w.activeTab != 0) || (n > 0 && (w.activeTab < 0 || w.activeTab >= n)) {
			t.Fatalf("step %d: window %d active tab %d of %d", step, w.id, w.activeTab, n)
		}
		w.EachTab(func(_ int, tab *Tab) {
			if tab.id == 0 {
				t.Fatalf("step %d: zero tab in window %d", step, w.id)
			}
			if n := tab.panes.len(); (n == 0 && tab.activePane != 0) || (n > 0 && (tab.activePane < 0 || tab.activePane >= n)) {
				t.Fatalf("step %d: tab %d active pane %d of %d", step, tab.id, tab.activePane, n)
			}
			tab.EachPane(func(_ int, p *Pane) {
				if p.id == 0 {
					t.Fatalf("step %d: zero pane in tab %d", step, tab.id)
				}
				if !p.render.VAO.Valid() {
					t.Fatalf("step %d: attached pane %d has no vertex array", step, p.id)
				}
				seen[p.id]++
				wid, tid, ok := r.PaneLocation(p.id)
				if !ok || wid != w.id || tid != tab.id {
					t.Fatalf("step %d: pane %d resolves to %d/%d, want %d/%d", step, p.id, wid, tid, w.id, tab.id)
				}
			})
		})
	}
	for i := range r.detached.items {
		p := r.detached.at(i)
		if p.render.VAO.Valid() {
			t.Fatalf("step %d: detached pane %d kept its vertex array", step, p.id)
		}
		seen[p.id]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("step %d: pane %d reachable %d times", step, id, n)
		}
	}
}

func pick(rng *rand.Rand, list []ids.ID) ids.ID {
	if len(list) == 0 {
		return 0
	}
	return list[rng.Intn(len(list))]
}

func TestRandomSequencesKeepTreeConsistent(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		f := newFixture(t)
		r := f.r
		rng := rand.New(rand.NewSource(seed))
		var screens []*screen.Screen

		for step := 0; step < 200; step++ {
			w := pick(rng, r.OSWindowIDs())
			tab := pick(rng, r.TabIDs(w))
			p := pick(rng, r.PaneIDs(w, tab))
			switch op := rng.Intn(10); {
			case op == 0 || w == 0:
				nw := r.CreateWindow()
				r.SetViewportSize(nw, 800, 600)
			case op == 1:
				r.CreateTab(w)
			case op == 2 || op == 3:
				if np := r.CreatePane(w, tab, "p"); np != 0 && rng.Intn(2) == 0 {
					cell, _ := r.CellSizeForWindow(w)
					s := screen.New(80, 24, cell)
					r.SetRenderData(w, tab, np, s, Geometry{Right: 99, Bottom: 99})
					s.Release()
					screens = append(screens, s)
				}
			case op == 4:
				r.RemovePane(w, tab, p)
			case op == 5:
				r.RemoveTab(w, tab)
			case op == 6:
				r.DetachPane(w, tab, p)
			case op == 7:
				r.AttachPane(w, tab, pick(rng, r.DetachedIDs()))
			case op == 8:
				if n := len(r.TabIDs(w)); n > 1 {
					r.SwapTabs(w, rng.Intn(n), rng.Intn(n))
				}
			default:
				if rng.Intn(4) == 0 {
					r.DestroyWindow(w)
				} else {
					r.SetActivePane(w, tab, p)
				}
			}
			checkTree(t, r, step)
		}

		r.Shutdown()
		if err := f.rec.Check(); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		for _, s := range screens {
			if s.Alive() {
				t.Fatalf("seed %d: screen still has %d references", seed, s.Refs())
			}
		}
	}
}
