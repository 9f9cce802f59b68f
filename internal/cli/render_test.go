package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/chileviz/pkg/chart"
	"github.com/matzehuels/chileviz/pkg/config"
	"github.com/matzehuels/chileviz/pkg/errors"
	"github.com/matzehuels/chileviz/pkg/pipeline"
	"github.com/matzehuels/chileviz/pkg/render"
	"github.com/matzehuels/chileviz/pkg/source"
)

const densityJSON = `{"regiones": [
	{"region": "Arica y Parinacota", "codigo": "XV", "area": 16.87, "poblacion": 244569},
	{"region": "Metropolitana de Santiago", "etiqueta": "Metropolitana", "codigo": "RM", "area": 15.4, "poblacion": 7400741},
	{"region": "Aysén", "codigo": "XI", "area": 108.49, "poblacion": 100745}
]}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "densidad.json", densityJSON)
	out := filepath.Join(dir, "out", "petalos")

	if err := execute(t, "render", "petal", data, "-f", "svg,json", "-o", out, "--no-cache"); err != nil {
		t.Fatal(err)
	}
	for _, ext := range []string{".svg", ".json"} {
		if _, err := os.Stat(out + ext); err != nil {
			t.Errorf("missing %s output: %v", ext, err)
		}
	}
}

func TestRenderCommandZeroFloor(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "densidad.json", densityJSON)
	out := filepath.Join(dir, "petalos")

	if err := execute(t, "render", "petal", data, "-f", "json", "-o", out, "--floor", "0", "--no-cache"); err != nil {
		t.Fatal(err)
	}
	body, err := os.ReadFile(out + ".json")
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Layout struct {
			Floor  float64 `json:"floor"`
			Petals []struct {
				Ratio  float64 `json:"ratio"`
				Radius float64 `json:"radius"`
			} `json:"petals"`
		} `json:"layout"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Layout.Floor != 0 || len(doc.Layout.Petals) != 3 {
		t.Fatalf("layout = %+v", doc.Layout)
	}
	for _, p := range doc.Layout.Petals {
		if p.Radius != p.Ratio {
			t.Errorf("radius %v != ratio %v", p.Radius, p.Ratio)
		}
	}
}

func TestRenderCommandMissingData(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out", "petalos")

	err := execute(t, "render", "petal", filepath.Join(dir, "nada.json"), "-o", out)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("error = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out")); !os.IsNotExist(err) {
		t.Error("no output directory should be created")
	}
}

func TestRenderCommandWritesMetrics(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "densidad.json", densityJSON)
	metrics := filepath.Join(dir, "chileviz.prom")

	if err := execute(t, "render", "petal", data, "-o", filepath.Join(dir, "p"), "--metrics-file", metrics); err != nil {
		t.Fatal(err)
	}
	body, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "chileviz_stage_duration_seconds") {
		t.Errorf("metrics file lacks stage durations:\n%s", body)
	}
}

func TestRenderCommandRejectsFormat(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "densidad.json", densityJSON)

	err := execute(t, "render", "petal", data, "-f", "dot")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Fatalf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "densidad.json", densityJSON)
	cfg := writeFile(t, dir, "chileviz.toml", `
[defaults]
formats = ["svg"]
out_dir = "out"

[cache]
backend = "none"

[[chart]]
name = "densidad"
kind = "petal"
data = "densidad.json"

[[chart]]
name = "densidad-log"
kind = "petal"
data = "densidad.json"
colormap = "greens"
formats = ["svg", "json"]
`)
	if err := execute(t, "batch", cfg, "--jobs", "2"); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"densidad.svg", "densidad-log.svg", "densidad-log.json"} {
		if _, err := os.Stat(filepath.Join(dir, "out", name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestBatchCommandUnknownChart(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "chileviz.toml", "[[chart]]\nname = \"a\"\nkind = \"petal\"\ndata = \"a.json\"\n")

	err := execute(t, "batch", cfg, "--only", "b")
	if !errors.Is(err, errors.ErrCodeMissingKey) {
		t.Fatalf("error = %v, want MISSING_KEY", err)
	}
}

func TestChartOptions(t *testing.T) {
	opts, err := chartOptions(config.Chart{Name: "m", Kind: "migracion", Data: "m.csv", Formats: []string{"svg", "png"}, Ordering: "barycentric"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.Kind != chart.KindSankey || len(opts.Formats) != 2 || opts.Formats[1] != render.FormatPNG {
		t.Errorf("options = %+v", opts)
	}

	if _, err := chartOptions(config.Chart{Kind: "flowgraph", Formats: []string{"pdf"}}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("flowgraph pdf error = %v", err)
	}
}

func TestDescribePetal(t *testing.T) {
	var doc source.Document
	doc.Records = []source.Record{
		{Region: "A", Code: "A", Area: source.Float(10), Population: source.Float(100)},
		{Region: "B", Code: "B", Area: source.Float(30), Population: source.Float(3000)},
	}
	c, err := pipeline.Build(&doc, nil, pipeline.Options{Kind: chart.KindPetal, Source: source.Static{Doc: &doc}})
	if err != nil {
		t.Fatal(err)
	}
	headers, rows, summary := describe(c.Layout)
	if len(headers) != 9 || len(rows) != 2 {
		t.Fatalf("headers = %v, rows = %v", headers, rows)
	}
	if rows[0][5] != "0,0°" || rows[1][5] != "90,0°" {
		t.Errorf("start angles = %q, %q", rows[0][5], rows[1][5])
	}
	if summary[0][1] != "10,00 - 100,00" {
		t.Errorf("density range = %q", summary[0][1])
	}
}

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "densidad.json")
	targets := watchTargets(data, "")
	if len(targets) != 1 || len(dirsOf(targets)) != 1 {
		t.Fatalf("targets = %v", targets)
	}

	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: data, Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: data, Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: data, Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: filepath.Join(dir, "otro.json"), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		if got := relevant(tt.ev, targets); got != tt.want {
			t.Errorf("relevant(%v) = %v, want %v", tt.ev, got, tt.want)
		}
	}
}

func TestChartListModel(t *testing.T) {
	m := NewChartListModel([]config.Chart{
		{Name: "densidad", Kind: "petal", Data: "data/densidad.json"},
		{Name: "migracion", Kind: "sankey", Data: "data/migracion.csv"},
	})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(ChartListModel)
	if m.Cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.Cursor)
	}
	if !strings.Contains(m.View(), "migracion.csv") {
		t.Error("view should list data files")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(ChartListModel)
	if m.Selected == nil || m.Selected.Name != "migracion" || cmd == nil {
		t.Errorf("selected = %+v", m.Selected)
	}
}

func TestCommandExamplesUseShippedFiles(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	for _, name := range []string{"render", "batch"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil {
			t.Fatal(err)
		}
		for _, field := range strings.Fields(cmd.Example) {
			if !strings.HasPrefix(field, "examples/") {
				continue
			}
			if _, err := os.Stat(filepath.Join("..", "..", field)); err != nil {
				t.Errorf("%s example references %s: %v", name, field, err)
			}
		}
	}

	render, _, _ := root.Find([]string{"render"})
	if usage := render.Flags().Lookup("group").Usage; !strings.Contains(usage, "Otras regiones") {
		t.Errorf("--group usage = %q", usage)
	}
}
