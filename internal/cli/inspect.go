package cli

import (
	"context"
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chileviz/pkg/chart/choropleth"
	"github.com/matzehuels/chileviz/pkg/chart/horizon"
	"github.com/matzehuels/chileviz/pkg/chart/petal"
	"github.com/matzehuels/chileviz/pkg/chart/sankey"
	"github.com/matzehuels/chileviz/pkg/flow"
	"github.com/matzehuels/chileviz/pkg/locale"
	"github.com/matzehuels/chileviz/pkg/pipeline"
)

func (c *CLI) inspectCommand() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "inspect <kind> <data>",
		Short: "Print the computed layout of a chart",
		Long: `Print the layout a chart would be drawn from: angular partition, intensities
and radii for petal charts, flows and coverage for sankey and flowgraph charts,
normalized series for horizon charts and matched areas for choropleth maps.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(args[0], args[1])
			if err != nil {
				return err
			}
			return runInspect(cmd.Context(), opts)
		},
	}
	flags.register(cmd, false)
	return cmd
}

func runInspect(ctx context.Context, opts pipeline.Options) error {
	opts.Logger = loggerFromContext(ctx)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	doc, err := pipeline.Load(ctx, opts)
	if err != nil {
		return err
	}
	fc, err := pipeline.LoadGeometry(opts)
	if err != nil {
		return err
	}
	c, err := pipeline.Build(doc, fc, opts)
	if err != nil {
		return err
	}

	headers, rows, summary := describe(c.Layout)
	fmt.Println(StyleTitle.Render(c.Title))
	fmt.Println(renderTable(headers, rows))
	for _, kv := range summary {
		printKeyValue(kv[0], kv[1])
	}
	for _, w := range c.Warnings {
		printWarning("%s", w)
	}
	return nil
}

func renderTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if col == 0 {
				return cellStyle.Foreground(colorWhite)
			}
			return cellStyle.Foreground(colorCyan)
		}).
		Render()
}

// describe flattens a chart layout into table rows and summary pairs.
func describe(layout any) (headers []string, rows [][]string, summary [][2]string) {
	switch l := layout.(type) {
	case *petal.Layout:
		headers = []string{"Código", "Región", "Área", "Población", "Densidad", "Inicio", "Ancho", "Intensidad", "Radio"}
		for _, p := range l.Petals {
			rows = append(rows, []string{
				p.Code, p.Label,
				locale.Number(p.Area, 2), locale.Number(p.Population, 0), locale.Number(p.Density, 2),
				degrees(p.Start), degrees(p.Width),
				locale.Number(p.Intensity, 3), locale.Number(p.Radius, 3),
			})
		}
		summary = [][2]string{
			{"densidad", locale.Number(l.MinDensity, 2) + " - " + locale.Number(l.MaxDensity, 2)},
			{"colormap", l.ColorMap},
		}

	case *sankey.Layout:
		headers, rows = edgeRows(linkEdges(l.Links))
		summary = flowSummary(l.Total, l.Flow, l.Coverage, l.Crossings, l.CrossingWeight, l.Ordering)

	case *pipeline.FlowGraph:
		headers, rows = edgeRows(l.Edges)
		var represented float64
		for _, e := range l.Edges {
			represented += e.Magnitude
		}
		summary = flowSummary(l.Total, represented, l.Coverage, l.Crossings, l.CrossingWeight, l.Ordering)

	case *horizon.Layout:
		headers = append([]string{"Región", "Mínimo", "Máximo"}, l.Periods...)
		for _, b := range l.Bands {
			row := []string{b.Region, locale.Number(b.Min, 0), locale.Number(b.Max, 0)}
			for _, v := range b.Normalized {
				row = append(row, locale.Number(v, 2))
			}
			rows = append(rows, row)
		}
		summary = [][2]string{{"periodos", fmt.Sprintf("%s - %s", l.Periods[0], l.Periods[len(l.Periods)-1])}}
		if len(l.Grouped) > 0 {
			summary = append(summary, [2]string{"grupo", fmt.Sprint(l.Grouped)})
		}

	case *choropleth.Layout:
		headers = []string{"Área", "Región", "Valor", "Intensidad", "Color"}
		for _, a := range l.Areas {
			value, intensity := "-", "-"
			if a.Value != nil {
				value = locale.Number(*a.Value, 2)
				intensity = locale.Number(a.Intensity, 3)
			}
			rows = append(rows, []string{a.Name, a.Region, value, intensity, a.Color})
		}
		summary = [][2]string{
			{"rango", locale.Number(l.Min, 2) + " - " + locale.Number(l.Max, 2)},
			{"sin datos", locale.Integer(l.Missing)},
		}
	}
	return headers, rows, summary
}

func linkEdges(links []sankey.Link) []flow.Edge {
	out := make([]flow.Edge, len(links))
	for i, lk := range links {
		out[i] = flow.Edge{Origin: lk.Origin, Destination: lk.Destination, Magnitude: lk.Magnitude, Rank: lk.Rank}
	}
	return out
}

func edgeRows(edges []flow.Edge) ([]string, [][]string) {
	rows := make([][]string, len(edges))
	for i, e := range edges {
		rows[i] = []string{e.Origin, e.Destination, fmt.Sprint(e.Rank + 1), locale.Number(e.Magnitude, 0)}
	}
	return []string{"Origen", "Destino", "Rango", "Emigrantes"}, rows
}

func flowSummary(total, represented, coverage float64, crossings int, weight float64, ordering string) [][2]string {
	return [][2]string{
		{"emigrantes", locale.Number(total, 0)},
		{"flujos", locale.Number(represented, 0)},
		{"cobertura", locale.Percent(coverage * 100)},
		{"cruces", locale.Integer(crossings)},
		{"peso de cruces", locale.Number(weight, 0)},
		{"orden", ordering},
	}
}

func degrees(rad float64) string {
	return locale.Number(rad*180/math.Pi, 1) + "°"
}
