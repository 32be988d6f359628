package state

import (
	"fmt"
	"testing"

	"github.com/javanhut/ravenstate/config"
	"github.com/javanhut/ravenstate/gpu"
	"github.com/javanhut/ravenstate/ids"
	"github.com/javanhut/ravenstate/screen"
)

// recorder is the context activator and GPU allocator of a test registry.
// It logs every activation and allocation so tests can check ordering.
type recorder struct {
	*gpu.Ledger
	current ids.ID
	events  []string
	// owner maps a live handle to the window whose context created it
	owner map[gpu.Handle]ids.ID
}

func newRecorder() *recorder {
	return &recorder{Ledger: gpu.NewLedger(), owner: map[gpu.Handle]ids.ID{}}
}

func (c *recorder) MakeContextCurrent(id ids.ID) {
	c.current = id
	c.events = append(c.events, fmt.Sprintf("ctx %d", id))
}

func (c *recorder) CreateCellVAO() gpu.Handle {
	h := c.Ledger.CreateCellVAO()
	c.owner[h] = c.current
	c.events = append(c.events, fmt.Sprintf("create %d", h))
	return h
}

func (c *recorder) CreateBorderVAO() gpu.Handle {
	h := c.Ledger.CreateBorderVAO()
	c.owner[h] = c.current
	c.events = append(c.events, fmt.Sprintf("create %d", h))
	return h
}

func (c *recorder) RemoveVAO(h gpu.Handle) {
	c.events = append(c.events, fmt.Sprintf("remove %d", h))
	c.Ledger.RemoveVAO(h)
}

// fixedFonts scales a 1pt = 1x2px cell by DPI/96
type fixedFonts struct{}

func (fixedFonts) CellSize(pt, dpiX, dpiY float64) screen.CellSize {
	return screen.CellSize{
		Width:  uint32(pt * dpiX / 96),
		Height: uint32(2 * pt * dpiY / 96),
	}
}

type platformCall struct {
	name     string
	window   ids.ID
	callback ids.ID
}

// recordingPlatform notes each request together with the callback window
// that was installed while it ran
type recordingPlatform struct {
	r     *Registry
	calls []platformCall
}

func (p *recordingPlatform) note(name string, id ids.ID) {
	p.calls = append(p.calls, platformCall{name: name, window: id, callback: p.r.CallbackOSWindowID()})
}

func (p *recordingPlatform) UpdateIMEFocus(id ids.ID, _ bool) { p.note("ime_focus", id) }
func (p *recordingPlatform) UpdateIMEPosition(id, _ ids.ID, _ *screen.Screen) {
	p.note("ime_position", id)
}
func (p *recordingPlatform) UpdatePointerShape(id ids.ID) { p.note("pointer", id) }
func (p *recordingPlatform) SetChrome(id ids.ID)          { p.note("chrome", id) }
func (p *recordingPlatform) Focus(id ids.ID, _ bool)      { p.note("focus", id) }

type fixture struct {
	r        *Registry
	rec      *recorder
	platform *recordingPlatform
}

func newFixture(t *testing.T, mutate ...func(*config.Config)) *fixture {
	t.Helper()
	cfg := config.DefaultConfig()
	for _, m := range mutate {
		m(cfg)
	}
	rec := newRecorder()
	platform := &recordingPlatform{}
	r, err := New(Deps{Context: rec, GPU: rec, Fonts: fixedFonts{}, Platform: platform, Config: cfg})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.SetDefaultDPI(DPI{X: 96, Y: 96})
	platform.r = r
	return &fixture{r: r, rec: rec, platform: platform}
}

// tree creates one window with the given number of panes in each tab
func (f *fixture) tree(t *testing.T, panesPerTab ...int) (ids.ID, []ids.ID, [][]ids.ID) {
	t.Helper()
	w := f.r.CreateWindow()
	f.r.SetViewportSize(w, 800, 600)
	var tabs []ids.ID
	var panes [][]ids.ID
	for _, n := range panesPerTab {
		tab := f.r.CreateTab(w)
		if tab == 0 {
			t.Fatal("CreateTab returned 0")
		}
		var ps []ids.ID
		for i := 0; i < n; i++ {
			p := f.r.CreatePane(w, tab, fmt.Sprintf("pane %d", i))
			if p == 0 {
				t.Fatal("CreatePane returned 0")
			}
			ps = append(ps, p)
		}
		tabs = append(tabs, tab)
		panes = append(panes, ps)
	}
	return w, tabs, panes
}

func equalIDs(a, b []ids.ID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
