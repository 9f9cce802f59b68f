package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chileviz/pkg/chart"
	"github.com/matzehuels/chileviz/pkg/config"
	"github.com/matzehuels/chileviz/pkg/errors"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// ChartListModel is the bubbletea model for picking a chart of a config.
type ChartListModel struct {
	Charts   []config.Chart
	Cursor   int
	Selected *config.Chart
	Height   int
	Offset   int
}

// NewChartListModel creates a picker over charts.
func NewChartListModel(charts []config.Chart) ChartListModel {
	return ChartListModel{Charts: charts, Height: 15}
}

func (m ChartListModel) Init() tea.Cmd {
	return nil
}

func (m ChartListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Charts)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			ch := m.Charts[m.Cursor]
			m.Selected = &ch
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m ChartListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Chart"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ render  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Charts))
	var rows [][]string
	for i := m.Offset; i < end; i++ {
		ch := m.Charts[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		formats := strings.Join(ch.Formats, ",")
		if formats == "" {
			formats = "svg"
		}
		rows = append(rows, []string{cursor, ch.Name, ch.Kind, filepath.Base(ch.Data), formats})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Chart", "Kind", "Data", "Formats").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 2 {
				if _, err := chart.ParseKind(m.Charts[m.Offset+row].Kind); err != nil {
					return lipgloss.NewStyle().Foreground(colorRed)
				}
			}
			return lipgloss.NewStyle().Foreground(colorDim)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Charts))))
	return b.String()
}

func (c *CLI) pickCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "pick <config.toml>",
		Short: "Pick a chart of a config file interactively and render it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPick(cmd.Context(), args[0], noCache)
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "render without reading or writing the cache")
	return cmd
}

func (c *CLI) runPick(ctx context.Context, path string, noCache bool) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if len(cfg.Charts) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s lists no charts", path)
	}

	final, err := tea.NewProgram(NewChartListModel(cfg.Charts), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	m, ok := final.(ChartListModel)
	if !ok || m.Selected == nil {
		printInfo("No chart selected")
		return nil
	}

	ch := cfg.Merged(*m.Selected)
	opts, err := chartOptions(ch)
	if err != nil {
		return err
	}
	opts.NoCache = noCache

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	_, err = runChart(ctx, runner, opts, cfg.OutDir(), ch.Name)
	return err
}
