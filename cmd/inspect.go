package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/javanhut/ravenstate/config"
	"github.com/javanhut/ravenstate/fonts"
	"github.com/javanhut/ravenstate/gpu"
	"github.com/javanhut/ravenstate/ids"
	"github.com/javanhut/ravenstate/logger"
	"github.com/javanhut/ravenstate/render"
	"github.com/javanhut/ravenstate/state"
)

type inspectOptions struct {
	format   string
	windows  int
	tabs     int
	panes    int
	move     bool
	fontStep float64
	width    int
}

var inspectOpts = inspectOptions{}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Build a window tree headlessly and print it",
	Long: `Builds OS windows, tabs and panes without a display, optionally moves a
pane from the first window to the last one, and prints the resulting tree.
GPU handles are booked in a ledger that must balance after teardown; an
imbalance makes the command fail.`,
	RunE: runInspect,
}

func init() {
	f := inspectCmd.Flags()
	f.StringVarP(&inspectOpts.format, "format", "f", "tree", "Output format: tree or yaml")
	f.IntVar(&inspectOpts.windows, "windows", 2, "Number of OS windows")
	f.IntVar(&inspectOpts.tabs, "tabs", 2, "Tabs per window")
	f.IntVar(&inspectOpts.panes, "panes", 2, "Panes per tab")
	f.BoolVar(&inspectOpts.move, "move", true, "Move a pane from the first window to the last")
	f.Float64Var(&inspectOpts.fontStep, "font-step", 2, "Font size added per window so cell sizes differ")
	f.IntVar(&inspectOpts.width, "width", 24, "Maximum title width in tree output")
	rootCmd.AddCommand(inspectCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	return inspect(cmd.OutOrStdout(), cfg, inspectOpts)
}

// headlessContext stands in for graphics contexts when nothing is drawn
type headlessContext struct {
	current     ids.ID
	activations int
}

func (c *headlessContext) MakeContextCurrent(osWindowID ids.ID) {
	c.current = osWindowID
	c.activations++
}

type gpuReport struct {
	CellCreated    int `yaml:"cell_created"`
	CellReleased   int `yaml:"cell_released"`
	BorderCreated  int `yaml:"border_created"`
	BorderReleased int `yaml:"border_released"`
	Live           int `yaml:"live"`
	Activations    int `yaml:"context_activations"`
}

type inspectReport struct {
	Theme string         `yaml:"theme"`
	Tree  state.Snapshot `yaml:"tree"`
	GPU   gpuReport      `yaml:"gpu"`
}

func inspect(out io.Writer, cfg *config.Config, opts inspectOptions) error {
	if opts.windows < 1 || opts.tabs < 1 || opts.panes < 1 {
		return fmt.Errorf("windows, tabs and panes must be at least 1")
	}
	format := strings.ToLower(opts.format)
	if format != "tree" && format != "yaml" {
		return fmt.Errorf("unknown format %q (want tree or yaml)", opts.format)
	}

	ledger := gpu.NewLedger()
	metrics, err := fonts.NewProvider(nil)
	if err != nil {
		return err
	}
	headless := &headlessContext{}
	reg, err := state.New(state.Deps{
		Context: headless,
		GPU:     ledger,
		Fonts:   metrics,
		Config:  cfg,
		Logger:  logger.Get(),
	})
	if err != nil {
		return err
	}
	separator := render.PackRGB(render.ThemeByName(cfg.Theme).TabActive)
	buildScenario(reg, cfg, opts, separator)

	snap := reg.Snapshot()
	if err := checkHandles(snap, ledger); err != nil {
		reg.Shutdown()
		return err
	}
	reg.Shutdown()
	if err := ledger.Check(); err != nil {
		return fmt.Errorf("gpu accounting: %w", err)
	}
	report := inspectReport{
		Theme: config.ThemeLabel(cfg.Theme),
		Tree:  snap,
		GPU: gpuReport{
			CellCreated:    ledger.Created(gpu.CellLayout),
			CellReleased:   ledger.Released(gpu.CellLayout),
			BorderCreated:  ledger.Created(gpu.BorderLayout),
			BorderReleased: ledger.Released(gpu.BorderLayout),
			Live:           ledger.Live(),
			Activations:    headless.activations,
		},
	}

	if format == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}
		return enc.Close()
	}
	_, err = io.WriteString(out, renderTree(report, opts.width))
	return err
}

func buildScenario(reg *state.Registry, cfg *config.Config, opts inspectOptions, separator uint32) {
	var windows []ids.ID
	for wi := 0; wi < opts.windows; wi++ {
		w := reg.CreateWindow()
		reg.SetViewportSize(w, uint32(cfg.Window.Width), uint32(cfg.Window.Height))
		if wi > 0 && opts.fontStep != 0 {
			reg.OSWindowFontSize(w, cfg.FontSize+float64(wi)*opts.fontStep, false)
		}
		for ti := 0; ti < opts.tabs; ti++ {
			tab := reg.CreateTab(w)
			for pi := 0; pi < opts.panes; pi++ {
				p := reg.CreatePane(w, tab, fmt.Sprintf("shell %d.%d.%d", wi+1, ti+1, pi+1))
				attachScreen(reg, w, tab, p)
			}
		}
		layoutWindow(reg, w, separator)
		settle(reg, w)
		windows = append(windows, w)
	}

	if !opts.move || len(windows) < 2 {
		return
	}
	from, to := windows[0], windows[len(windows)-1]
	fromTab := reg.ActiveTabID(from)
	toTab := reg.ActiveTabID(to)
	pane := reg.ActivePaneID(from, fromTab)
	if reg.DetachPane(from, fromTab, pane) && reg.AttachPane(to, toTab, pane) {
		reg.SetActivePane(to, toTab, pane)
		layoutTab(reg, from, fromTab, separator)
		layoutTab(reg, to, toTab, separator)
	}
}

// settle clears what a drawn frame would consume, so that only changes made
// afterwards show up as pending
func settle(reg *state.Registry, osWindowID ids.ID) {
	reg.WithOSWindow(osWindowID, func(w *state.OSWindow) {
		w.EachTab(func(_ int, t *state.Tab) {
			t.ClearBordersDirty()
			t.EachPane(func(_ int, p *state.Pane) {
				if s := p.RenderData().Screen; s != nil {
					s.Rendered()
				}
			})
		})
		w.Rendered()
	})
}

// checkHandles verifies that every handle the tree refers to is still
// allocated and that detached panes hold none
func checkHandles(snap state.Snapshot, ledger *gpu.Ledger) error {
	for _, w := range snap.Windows {
		if !ledger.IsLive(w.TabBarVAO) {
			return fmt.Errorf("os window %d: tab bar handle %d is not allocated", w.ID, w.TabBarVAO)
		}
		for _, t := range w.Tabs {
			if !ledger.IsLive(t.BorderVAO) {
				return fmt.Errorf("tab %d: border handle %d is not allocated", t.ID, t.BorderVAO)
			}
			for _, p := range t.Panes {
				if !ledger.IsLive(p.VAO) {
					return fmt.Errorf("pane %d: handle %d is not allocated", p.ID, p.VAO)
				}
			}
		}
	}
	for _, p := range snap.Detached {
		if p.VAO.Valid() {
			return fmt.Errorf("detached pane %d still holds handle %d", p.ID, p.VAO)
		}
	}
	return nil
}
