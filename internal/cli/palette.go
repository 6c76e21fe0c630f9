package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pearls/pkg/errors"
	"github.com/matzehuels/pearls/pkg/palette"
	"github.com/matzehuels/pearls/pkg/pipeline"
)

// paletteCommand creates the palette command group.
func (c *CLI) paletteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "List, inspect and generate layer palettes",
	}

	cmd.AddCommand(c.paletteListCommand())
	cmd.AddCommand(c.paletteShowCommand())
	cmd.AddCommand(c.paletteGenerateCommand())
	cmd.AddCommand(c.paletteBlendCommand())

	return cmd
}

func (c *CLI) paletteListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the preset palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range palette.Names() {
				p, _ := palette.Preset(name)
				printPalette(p.Name, p.Background, p.Colors)
			}
			return nil
		},
	}
}

func (c *CLI) paletteShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "show <name>",
		Short:     "Show the colors of a preset palette",
		Args:      cobra.ExactArgs(1),
		ValidArgs: palette.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := palette.Preset(args[0])
			if !ok {
				return errors.New(errors.ErrCodeNotFound, "unknown palette %q (available: %s)", args[0], strings.Join(palette.Names(), ", "))
			}
			return showPalette(p)
		},
	}
}

func (c *CLI) paletteGenerateCommand() *cobra.Command {
	var (
		layers int
		seed   uint64
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a seeded palette",
		Long: `Generate a palette from a seed. Hues are spread by the golden angle so
neighboring layers stay distinct; the same seed always gives the same colors.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if layers < 1 || layers > pipeline.MaxLayers {
				return errors.New(errors.ErrCodeInvalidInput, "layers must be between 1 and %d, got %d", pipeline.MaxLayers, layers)
			}
			p := palette.Generate(layers, seed)
			if err := showPalette(p); err != nil {
				return err
			}
			printNewline()
			printNextStep("Render with it", renderHint(p))
			return nil
		},
	}
	cmd.Flags().IntVarP(&layers, "layers", "n", 5, "number of layer colors")
	cmd.Flags().Uint64VarP(&seed, "seed", "s", 1, "palette seed")
	return cmd
}

func (c *CLI) paletteBlendCommand() *cobra.Command {
	var steps int
	var background string
	cmd := &cobra.Command{
		Use:   "blend <from> <to>",
		Short: "Interpolate layer colors between two colors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 2 || steps > pipeline.MaxLayers {
				return errors.New(errors.ErrCodeInvalidInput, "steps must be between 2 and %d, got %d", pipeline.MaxLayers, steps)
			}
			from, err := palette.Parse(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidColor, err, "from")
			}
			to, err := palette.Parse(args[1])
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidColor, err, "to")
			}
			if _, err := palette.Parse(background); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidColor, err, "background")
			}

			blend := palette.Blend(from, to, steps)
			colors := make([]string, len(blend))
			for i, col := range blend {
				colors[i] = col.Hex()
			}
			p := palette.Palette{Name: "blend", Background: background, Colors: colors}
			if err := showPalette(p); err != nil {
				return err
			}
			printNewline()
			printNextStep("Render with it", renderHint(p))
			return nil
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 5, "number of colors, endpoints included")
	cmd.Flags().StringVar(&background, "background", palette.Default().Background, "background color")
	return cmd
}

// showPalette prints one labeled swatch per color.
func showPalette(p palette.Palette) error {
	printInfo("%s", StyleTitle.Render(p.Name))
	bg, err := palette.Parse(p.Background)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidColor, err, "background")
	}
	printKeyValue("background", labeledSwatch(bg))
	colors, err := palette.ParseAll(p.Colors)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidColor, err, "layer colors")
	}
	for i, col := range colors {
		printKeyValue(fmt.Sprintf("layer %d", i+1), labeledSwatch(col))
	}
	return nil
}

// labeledSwatch renders the hex code on its own color with a readable
// foreground.
func labeledSwatch(c colorful.Color) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(palette.Contrast(c).Hex())).
		Padding(0, 1).
		Render(c.Hex())
}

// renderHint builds the render command that uses p.
func renderHint(p palette.Palette) string {
	return fmt.Sprintf("pearls render --background '%s' --colors '%s'", p.Background, strings.Join(p.Colors, ","))
}
