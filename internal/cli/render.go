package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pearls/pkg/errors"
	"github.com/matzehuels/pearls/pkg/pipeline"
)

// renderCommand creates the render command, the main entry point that grows
// the grids and writes every requested format.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		params     paramFlags
		formatsStr string
		output     string
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a composition to SVG, PNG, JSON, DOT or text",
		Long: `Render a composition to one or more output formats.

Parameters come from flags, optionally on top of a sketch file (--config).
One grid is grown per layer color; the same seed, size, density and layer
count always produce the same grids, so recoloring reuses cached grids.

Formats:
  svg   vector drawing (default)
  png   raster drawing, scaled by --scale
  json  grids plus the planned shapes
  dot   cell adjacency graph per layer, laid out by Graphviz (saved as .dot.svg)
  txt   colored block preview, printed to stdout unless --output is set

Output files are named <base>.<ext>; the base defaults to pearls_<seed>.`,
		Example: `  pearls render
  pearls render --rows 8 --cols 12 --density 0.4 --seed 7 -f svg,png
  pearls render --palette dusk --stroke 2 -o dusk.svg
  pearls render -c sketch.toml --seed 99 -f txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := params.resolve(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") || len(opts.Formats) == 0 {
				opts.Formats = parseFormats(formatsStr)
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			opts.Refresh = refresh
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	params.register(cmd)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json, dot, txt (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results and regenerate")

	return cmd
}

// runRender executes the pipeline and writes its artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	ctx = withLogger(ctx, c.Logger)

	spinner := newSpinnerWithContext(ctx, "Growing pearls...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		base:      defaultBase(opts.Seed),
		output:    output,
		cacheHit:  result.CacheInfo.GridHit && result.CacheInfo.RenderHit,
	}); err != nil {
		return err
	}
	printStats(result.Stats, result.CacheInfo)
	return nil
}

// =============================================================================
// Output
// =============================================================================

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	base      string // fallback base path when output is empty
	output    string // user-supplied --output
	cacheHit  bool
}

// writeArtifacts writes each artifact to its file. A text artifact without
// an explicit output goes to stdout, as does a single artifact with output
// "-".
func writeArtifacts(p artifactWriteParams) error {
	if p.output == "-" {
		if len(p.formats) != 1 {
			return errors.New(errors.ErrCodeInvalidInput, "--output - needs exactly one format")
		}
		_, err := os.Stdout.Write(p.artifacts[p.formats[0]])
		return err
	}

	var written []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		if format == pipeline.FormatText && p.output == "" {
			fmt.Print(string(data))
			continue
		}
		path := outputPath(p.output, p.base, format, len(p.formats) == 1)
		if err := errors.ValidateOutputPath(path); err != nil {
			return err
		}
		if err := writeFile(path, data); err != nil {
			return err
		}
		written = append(written, path)
	}

	if len(written) == 0 {
		return nil
	}
	status := "Rendered"
	if p.cacheHit {
		status = "Rendered (cached)"
	}
	printSuccess("%s %d file(s)", status, len(written))
	for _, path := range written {
		printFile(path)
	}
	return nil
}

// outputPath names the file for one format. A single format written to an
// explicit output uses that path verbatim.
func outputPath(output, base, format string, single bool) string {
	if single && output != "" && filepath.Ext(output) != "" {
		return output
	}
	return basePath(output, base) + "." + pipeline.Extension(format)
}

// basePath derives the base output path. Known format extensions are
// stripped from output; an empty output falls back to base.
func basePath(output, base string) string {
	if output == "" {
		return base
	}
	if trimmed, ok := strings.CutSuffix(output, ".dot.svg"); ok {
		return trimmed
	}
	ext := filepath.Ext(output)
	if slices.Contains(pipeline.Formats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// defaultBase names outputs after the seed so different runs do not
// overwrite each other.
func defaultBase(seed uint64) string {
	return fmt.Sprintf("%s_%d", appName, seed)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
