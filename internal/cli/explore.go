package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pearls/pkg/errors"
	"github.com/matzehuels/pearls/pkg/grid"
	"github.com/matzehuels/pearls/pkg/palette"
	"github.com/matzehuels/pearls/pkg/pipeline"
	"github.com/matzehuels/pearls/pkg/random"
)

const (
	densityStep = 0.05
	marginStep  = 0.01
	maxMargin   = 0.49
)

var (
	exploreKeyStyle   = lipgloss.NewStyle().Foreground(colorAccent)
	exploreLabelStyle = lipgloss.NewStyle().Foreground(colorLabel)
	exploreFrameStyle = lipgloss.NewStyle().Padding(1, 2)
)

// exploreCommand creates the interactive explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		params  paramFlags
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Tweak parameters with a live terminal preview",
		Long: `Explore compositions interactively.

The preview redraws whenever a parameter changes:

  ↑/↓      rows            ←/→  columns
  +/-      density         [/]  margin
  s        next seed       p    next palette
  f        toggle fill     w    write SVG and sketch file
  q        quit

Written sketch files can be rendered later with 'pearls render -c'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := params.resolve(cmd)
			if err != nil {
				return err
			}
			check := opts
			if err := check.ValidateAndSetDefaults(); err != nil {
				return err
			}
			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			m := newExploreModel(cmd.Context(), runner, opts, output)
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			return err
		},
	}

	params.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "base path for written files (default pearls_<seed>)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// =============================================================================
// exploreModel - Live parameter editing
// =============================================================================

// previewMsg carries a freshly rendered preview.
type previewMsg struct {
	preview string
	cells   int
	err     error
}

// savedMsg reports files written by the w key.
type savedMsg struct {
	paths []string
	err   error
}

// exploreModel is the bubbletea model for the explore command.
type exploreModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	opts   pipeline.Options
	output string

	preview string
	cells   int
	status  string
	err     error
}

func newExploreModel(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, output string) exploreModel {
	// Run logs would tear through the alternate screen.
	opts.Logger = log.New(io.Discard)
	return exploreModel{
		ctx:    ctx,
		runner: runner,
		opts:   opts,
		output: output,
	}
}

func (m exploreModel) Init() tea.Cmd {
	return m.renderPreview()
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case previewMsg:
		m.preview, m.cells, m.err = msg.preview, msg.cells, msg.err
		return m, nil
	case savedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.status = "wrote " + strings.Join(msg.paths, ", ")
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m exploreModel) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up":
		m.opts.Rows = clampInt(m.opts.Rows+1, 1, errors.MaxGridSize)
	case "down":
		m.opts.Rows = clampInt(m.opts.Rows-1, 1, errors.MaxGridSize)
	case "right":
		m.opts.Cols = clampInt(m.opts.Cols+1, 1, errors.MaxGridSize)
	case "left":
		m.opts.Cols = clampInt(m.opts.Cols-1, 1, errors.MaxGridSize)
	case "+", "=":
		m.opts.Density = step(m.opts.Density, densityStep, 0, 1)
	case "-", "_":
		m.opts.Density = step(m.opts.Density, -densityStep, 0, 1)
	case "]":
		m.opts.Margin = step(m.opts.Margin, marginStep, 0, maxMargin)
	case "[":
		m.opts.Margin = step(m.opts.Margin, -marginStep, 0, maxMargin)
	case "s":
		m.opts.Seed = nextSeed(m.opts.Seed)
	case "p":
		m.opts.Palette = nextPalette(m.opts.Palette)
		m.opts.Colors = nil
		m.opts.Background = ""
	case "f":
		if m.opts.Fill == string(grid.FillScatter) {
			m.opts.Fill = string(grid.FillGrowth)
		} else {
			m.opts.Fill = string(grid.FillScatter)
		}
	case "w":
		return m, m.save()
	default:
		return m, nil
	}
	m.status = ""
	return m, m.renderPreview()
}

// renderPreview renders the current parameters as text in the background.
func (m exploreModel) renderPreview() tea.Cmd {
	opts := m.opts
	opts.Formats = []string{pipeline.FormatText}
	return func() tea.Msg {
		result, err := m.runner.Execute(m.ctx, opts)
		if err != nil {
			return previewMsg{err: err}
		}
		return previewMsg{
			preview: string(result.Artifacts[pipeline.FormatText]),
			cells:   result.Stats.Cells,
		}
	}
}

// save writes the SVG and the sketch file for the current parameters.
func (m exploreModel) save() tea.Cmd {
	opts := m.opts
	opts.Formats = []string{pipeline.FormatSVG}
	base := basePath(m.output, defaultBase(opts.Seed))
	return func() tea.Msg {
		result, err := m.runner.Execute(m.ctx, opts)
		if err != nil {
			return savedMsg{err: err}
		}
		svgPath := base + "." + pipeline.Extension(pipeline.FormatSVG)
		if err := writeFile(svgPath, result.Artifacts[pipeline.FormatSVG]); err != nil {
			return savedMsg{err: err}
		}

		var buf bytes.Buffer
		if err := pipeline.WriteConfig(&buf, opts); err != nil {
			return savedMsg{err: err}
		}
		tomlPath := base + ".toml"
		if err := writeFile(tomlPath, buf.Bytes()); err != nil {
			return savedMsg{err: err}
		}
		return savedMsg{paths: []string{svgPath, tomlPath}}
	}
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("pearls explore"))
	b.WriteString("\n\n")
	b.WriteString(m.preview)
	b.WriteString("\n\n")

	name := m.opts.Palette
	if name == "" {
		name = "custom"
	}
	fields := []struct{ label, value string }{
		{"rows", fmt.Sprint(m.opts.Rows)},
		{"cols", fmt.Sprint(m.opts.Cols)},
		{"density", fmt.Sprintf("%.2f", m.opts.Density)},
		{"margin", fmt.Sprintf("%.2f", m.opts.Margin)},
		{"seed", fmt.Sprint(m.opts.Seed)},
		{"palette", name},
		{"fill", m.opts.Fill},
		{"cells", fmt.Sprint(m.cells)},
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = exploreLabelStyle.Render(f.label+" ") + StyleValue.Render(f.value)
	}
	b.WriteString(strings.Join(parts, StyleDim.Render("  ")))
	b.WriteString("\n\n")

	help := []string{"↑/↓ rows", "←/→ cols", "+/- density", "[/] margin", "s seed", "p palette", "f fill", "w write", "q quit"}
	for i, h := range help {
		k, rest, _ := strings.Cut(h, " ")
		help[i] = exploreKeyStyle.Render(k) + " " + StyleDim.Render(rest)
	}
	b.WriteString(strings.Join(help, "  "))

	switch {
	case m.err != nil:
		b.WriteString("\n\n" + statusLine(statusFail, "%s", errors.UserMessage(m.err)))
	case m.status != "":
		b.WriteString("\n\n" + statusLine(statusOK, "%s", m.status))
	}

	return exploreFrameStyle.Render(b.String())
}

// =============================================================================
// Parameter stepping
// =============================================================================

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// step adds delta to v, rounds to two decimals and clamps to [lo, hi].
func step(v, delta, lo, hi float64) float64 {
	v = math.Round((v+delta)*100) / 100
	return max(lo, min(hi, v))
}

// nextSeed derives the next seed from the current one, so a session of
// seed changes can be replayed from its starting seed.
func nextSeed(seed uint64) uint64 {
	src, _ := random.New(random.KindPCG, seed)
	return uint64(random.Below(src, math.MaxInt32))
}

// nextPalette returns the preset after current in sorted order.
func nextPalette(current string) string {
	names := palette.Names()
	i := slices.Index(names, current)
	return names[(i+1)%len(names)]
}
