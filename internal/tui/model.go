// Package tui provides the BubbleTea-based applet geometry preview.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/panelkit/internal/adapter/output"
	"github.com/jmylchreest/panelkit/internal/panel"
	"github.com/jmylchreest/panelkit/internal/theme"
)

// previewSubscriberID keys the preview's theme subscription.
const previewSubscriberID = 1

// backgroundCycle is the order the background key steps through.
var backgroundCycle = []panel.Background{
	panel.ThemeDefault(),
	panel.DarkBackground(),
	panel.LightBackground(),
}

// Model is the preview model.
type Model struct {
	ctx      context.Context
	resolver *theme.Resolver
	iconName string

	initial panel.Context
	pc      panel.Context
	theme   theme.Theme
	watch   *themeWatch

	keys     KeyMap
	help     help.Model
	showHelp bool
	width    int
	height   int

	statusMsg string
	statusErr bool

	// copyFn writes to the clipboard.
	copyFn func(string) error
}

// themeWatch is the live theme subscription for the current background.
type themeWatch struct {
	gen     int
	cancel  context.CancelFunc
	updates <-chan theme.Theme
}

type themeMsg struct {
	gen   int
	theme theme.Theme
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

// New creates a preview of pc. A nil resolver previews the built-in themes only.
func New(ctx context.Context, pc *panel.Context, resolver *theme.Resolver, iconName string) Model {
	m := Model{
		ctx:      ctx,
		resolver: resolver,
		iconName: iconName,
		initial:  *pc,
		pc:       *pc,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		copyFn:   clipboard.WriteAll,
	}
	m.theme = m.resolveTheme()
	m.watch = m.subscribe(0)
	return m
}

// Init starts listening for theme changes.
func (m Model) Init() tea.Cmd {
	return waitForTheme(m.watch)
}

// Close ends the theme subscription.
func (m Model) Close() {
	if m.watch != nil {
		m.watch.cancel()
	}
}

// Context returns the panel settings currently previewed.
func (m Model) Context() panel.Context {
	return m.pc
}

// Theme returns the theme currently previewed.
func (m Model) Theme() theme.Theme {
	return m.theme
}

func (m Model) resolveTheme() theme.Theme {
	if m.resolver == nil {
		return theme.Builtin(m.pc.Background)
	}
	return m.resolver.Resolve(m.pc.Background)
}

// subscribe watches the theme store when the background follows it.
func (m Model) subscribe(gen int) *themeWatch {
	if m.resolver == nil || !m.pc.Background.UsesThemeStore() {
		return nil
	}
	ctx, cancel := context.WithCancel(m.ctx)
	return &themeWatch{
		gen:     gen,
		cancel:  cancel,
		updates: m.resolver.Updates(ctx, m.pc.Background, previewSubscriberID),
	}
}

func waitForTheme(w *themeWatch) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		t, ok := <-w.updates
		if !ok {
			return nil
		}
		return themeMsg{gen: w.gen, theme: t}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case themeMsg:
		if m.watch == nil || msg.gen != m.watch.gen {
			return m, nil
		}
		m.theme = msg.theme
		return m, waitForTheme(m.watch)

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	return m, nil
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Anchor):
		m.pc.Anchor = nextAnchor(m.pc.Anchor)
		return m, nil

	case key.Matches(msg, m.keys.Grow):
		m.pc.Size = stepSize(m.pc.Size, -1)
		return m, nil

	case key.Matches(msg, m.keys.Shrink):
		m.pc.Size = stepSize(m.pc.Size, 1)
		return m, nil

	case key.Matches(msg, m.keys.Background):
		m.pc.Background = nextBackground(m.pc.Background)
		return m.backgroundChanged()

	case key.Matches(msg, m.keys.Reset):
		m.pc = m.initial
		return m.backgroundChanged()

	case key.Matches(msg, m.keys.CopyJSON):
		return m, m.copyReport(output.FormatJSON)

	case key.Matches(msg, m.keys.CopyYAML):
		return m, m.copyReport(output.FormatYAML)
	}

	return m, nil
}

// backgroundChanged re-resolves the theme and moves the subscription.
func (m Model) backgroundChanged() (tea.Model, tea.Cmd) {
	gen := 0
	if m.watch != nil {
		m.watch.cancel()
		gen = m.watch.gen + 1
	}
	m.theme = m.resolveTheme()
	m.watch = m.subscribe(gen)
	return m, waitForTheme(m.watch)
}

// Report derives the records for the current settings.
func (m Model) Report() *output.Report {
	r := output.NewReport(&m.pc, output.ReportOptions{IconName: m.iconName})
	r.Theme = output.NewThemeInfo(m.theme, "", nil)
	return r
}

func (m Model) copyReport(format output.FormatType) tea.Cmd {
	report := m.Report()
	copyFn := m.copyFn
	return func() tea.Msg {
		var sb strings.Builder
		if err := output.NewFormatter(format, output.FormatterOptions{}).Format(&sb, report); err != nil {
			return statusMsg{text: "Format failed: " + err.Error(), isErr: true}
		}
		if err := copyFn(sb.String()); err != nil {
			return statusMsg{text: "Copy failed: " + err.Error(), isErr: true}
		}
		return statusMsg{text: fmt.Sprintf("Copied %s to clipboard", format)}
	}
}

func nextAnchor(a panel.Anchor) panel.Anchor {
	anchors := panel.Anchors()
	for i, v := range anchors {
		if v == a {
			return anchors[(i+1)%len(anchors)]
		}
	}
	return panel.DefaultAnchor
}

// stepSize moves through the presets, largest first. A hardcoded size
// steps from the default preset.
func stepSize(s panel.Size, delta int) panel.Size {
	sizes := panel.PanelSizes()
	preset, ok := s.Preset()
	if !ok {
		preset, _ = panel.DefaultSize.Preset()
	}
	for i, p := range sizes {
		if p != preset {
			continue
		}
		next := min(max(i+delta, 0), len(sizes)-1)
		return panel.PresetSize(sizes[next])
	}
	return panel.DefaultSize
}

func nextBackground(bg panel.Background) panel.Background {
	for i, v := range backgroundCycle {
		if v.Kind == bg.Kind && bg.Kind != panel.BackgroundColor {
			return backgroundCycle[(i+1)%len(backgroundCycle)]
		}
	}
	return backgroundCycle[1]
}

// RunOptions configures the preview.
type RunOptions struct {
	Panel    *panel.Context
	Resolver *theme.Resolver
	IconName string
}

// Run starts the preview and blocks until it exits.
func Run(ctx context.Context, opts RunOptions) error {
	m := New(ctx, opts.Panel, opts.Resolver, opts.IconName)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.Close()
	}
	return err
}
