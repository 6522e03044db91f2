package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/statplot-go/pkg/statplot"
	"github.com/ukaji3/statplot-go/pkg/statplot/dataset"
	"github.com/ukaji3/statplot-go/pkg/statplot/figure"
	"github.com/ukaji3/statplot-go/pkg/statplot/models"
	"github.com/ukaji3/statplot-go/pkg/statplot/output"
	"github.com/ukaji3/statplot-go/pkg/statplot/palette"
	"github.com/ukaji3/statplot-go/pkg/statplot/store"
)

var (
	outputPath     string
	format         string
	pretty         bool
	tracesDir      string
	measure        string
	plotType       string
	noConfidence   bool
	noLegend       bool
	metaPath       string
	variableMeta   string
	visibilityPath string
	sheet          string
	cellRange      string
	startYear      int
	endYear        int
	width          int
	height         int
	title          string
	yTitle         string
	colorList      []string
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [input.csv|input.xlsx]",
		Short: "Render a dataset as a chart",
		Long: `render builds a chart from a dataset file, or from the statistics store
when no file is given, and writes it as JSON, XLSX, PNG, SVG, PDF, JPG or HTML.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRender,
	}

	addSelectionFlags(cmd)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, xlsx, png, svg, pdf, jpg, html")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&tracesDir, "traces-dir", "", "Directory for per-trace JSON files")
	cmd.Flags().StringVar(&measure, "measure", "", "Measure: mean, median, proportion (default: mean)")
	cmd.Flags().StringVar(&plotType, "plot", "line", "Chart type: line, bar, box")
	cmd.Flags().BoolVar(&noConfidence, "no-confidence", false, "Omit confidence bands")
	cmd.Flags().BoolVar(&noLegend, "no-legend", false, "Hide the legend")
	cmd.Flags().StringVar(&metaPath, "meta", "", "Group metadata JSON for file input")
	cmd.Flags().StringVar(&variableMeta, "variable-meta", "", "Variable metadata JSON for categorical file input")
	cmd.Flags().StringVar(&visibilityPath, "visibility", "", "Visibility overrides JSON, or a previously rendered figure")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet for xlsx input (default: first sheet)")
	cmd.Flags().StringVar(&cellRange, "range", "", "Cell range for xlsx input, e.g. A1:F40 (default: data bounds)")
	cmd.Flags().IntVar(&startYear, "start-year", 0, "First year of the x axis")
	cmd.Flags().IntVar(&endYear, "end-year", 0, "Last year of the x axis")
	cmd.Flags().IntVar(&width, "width", output.DefaultWidth, "Image width in pixels")
	cmd.Flags().IntVar(&height, "height", output.DefaultHeight, "Image height in pixels")
	cmd.Flags().StringVar(&title, "title", "", "Page title for html output")
	cmd.Flags().StringVar(&yTitle, "y-title", "", "Y axis title")
	cmd.Flags().StringSliceVar(&colorList, "colors", nil, "Trace colours as #rrggbb, comma separated (default: colour-blind safe palette)")

	return cmd
}

// parseColors parses the --colors list. An empty list keeps the default palette.
func parseColors(list []string) ([]palette.Color, error) {
	colors := make([]palette.Color, 0, len(list))
	for _, s := range list {
		c, err := palette.ParseColor(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid --colors: %w", err)
		}
		colors = append(colors, c)
	}
	return colors, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	sel, err := resolveSelection()
	if err != nil {
		return err
	}

	m, err := statplot.ParseMeasure(measure)
	if err != nil {
		return err
	}
	p, err := statplot.ParsePlotType(plotType)
	if err != nil {
		return err
	}

	req := statplot.Request{
		Variable:       sel.Variable,
		VariableType:   sel.Type,
		Grouping:       sel.Grouping,
		Measure:        m,
		PlotType:       p,
		ShowConfidence: models.Bool(!noConfidence),
		ShowLegend:     models.Bool(!noLegend),
		Language:       sel.Language,
		YTitle:         yTitle,
	}
	if startYear != 0 || endYear != 0 {
		if startYear == 0 || endYear == 0 || endYear < startYear {
			return fmt.Errorf("invalid year range: %d-%d", startYear, endYear)
		}
		req.Years = &figure.YearRange{Start: startYear, End: endYear}
	}
	if visibilityPath != "" {
		if req.Overrides, err = readOverrides(visibilityPath); err != nil {
			return fmt.Errorf("failed to read visibility overrides: %w", err)
		}
	}

	var ds *dataset.Dataset
	if len(args) == 1 {
		ds, err = loadFromFile(args[0], &req)
	} else {
		ds, err = loadFromStore(sel, &req)
	}
	if err != nil {
		return err
	}

	translations, err := cfg.Translations()
	if err != nil {
		return fmt.Errorf("failed to load translations: %w", err)
	}
	colors, err := parseColors(colorList)
	if err != nil {
		return err
	}
	renderer := statplot.NewRenderer(
		statplot.WithLogger(logger),
		statplot.WithTranslations(translations),
		statplot.WithPalette(colors, nil),
	)

	fig, err := renderer.Render(ds, req)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	logger.Info("rendered",
		zap.String("variable", sel.Variable),
		zap.Strings("grouping", sel.Grouping),
		zap.Int("traces", len(fig.Data)),
	)

	if err := writeFigure(fig, sel); err != nil {
		return err
	}

	if tracesDir != "" {
		if _, err := output.WriteTraceFiles(tracesDir, fig, pretty); err != nil {
			return fmt.Errorf("failed to write trace files: %w", err)
		}
	}

	return nil
}

func loadFromFile(path string, req *statplot.Request) (*dataset.Dataset, error) {
	ds, err := readInputFile(path, sheet, cellRange)
	if err != nil {
		return nil, err
	}

	if metaPath != "" {
		all, err := readGroupMetadata(metaPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read group metadata: %w", err)
		}
		if req.GroupMetadata, err = store.Lookup(all, req.Grouping); err != nil {
			return nil, err
		}
	}
	if variableMeta != "" {
		var meta models.VariableMetadata
		if err := readJSONFile(variableMeta, &meta); err != nil {
			return nil, fmt.Errorf("failed to read variable metadata: %w", err)
		}
		if meta.Variable == "" {
			meta.Variable = req.Variable
		}
		req.VariableMetadata = &meta
	}
	return ds, nil
}

func loadFromStore(sel selection, req *statplot.Request) (*dataset.Dataset, error) {
	if sel.Variable == "" {
		return nil, fmt.Errorf("no input file and no variable given")
	}
	s, err := openStore()
	if err != nil {
		return nil, err
	}

	ds, err := s.LoadDataset(sel.Type, sel.Variable, sel.Grouping)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	all, err := s.GroupMetadataFor(sel.Type, sel.Variable)
	if err != nil {
		return nil, fmt.Errorf("failed to load group metadata: %w", err)
	}
	if req.GroupMetadata, err = store.Lookup(all, sel.Grouping); err != nil {
		return nil, err
	}
	if sel.Type == models.VariableCategorical {
		if req.VariableMetadata, err = s.VariableMetadata(sel.Type, sel.Variable); err != nil {
			return nil, fmt.Errorf("failed to load variable metadata: %w", err)
		}
	}
	return ds, nil
}

func writeFigure(fig *models.Figure, sel selection) error {
	var buf bytes.Buffer
	var err error
	switch f := strings.ToLower(format); f {
	case "json":
		var data []byte
		if data, err = output.ToJSON(fig, pretty); err == nil {
			buf.Write(data)
			buf.WriteByte('\n')
		}
	case "xlsx":
		err = output.WriteXLSX(&buf, fig)
	case "html":
		pageTitle := title
		if pageTitle == "" {
			pageTitle = sel.Variable
		}
		err = output.WriteHTML(&buf, fig, pageTitle)
	default:
		err = output.WriteImage(&buf, fig, f, width, height)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	return writeOutput(buf.Bytes())
}

func writeOutput(data []byte) error {
	if outputPath == "" {
		if tracesDir != "" {
			return nil
		}
		_, err := io.Copy(os.Stdout, bytes.NewReader(data))
		return err
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
