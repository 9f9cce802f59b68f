package flow

import (
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/chileviz/pkg/errors"
	"github.com/matzehuels/chileviz/pkg/region"
)

func testMigration(t *testing.T) *region.Migration {
	t.Helper()
	m, err := region.NewMigration(
		[]string{"Arica y Parinacota", "Tarapacá", "Coquimbo", "Metropolitana"},
		[]region.Origin{
			{Region: "Arica y Parinacota", Emigrants: 19729, Shares: []region.Share{
				{Destination: "Metropolitana", Percent: 26.6},
				{Destination: "Tarapacá", Percent: 13.5},
			}},
			{Region: "Tarapacá", Emigrants: 36703, Shares: []region.Share{
				{Destination: "Metropolitana", Percent: 25.8},
				{Destination: "Coquimbo", Percent: 23.9},
			}},
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestBuildRejectsDuplicateOrigin(t *testing.T) {
	m := &region.Migration{
		Regions: []string{"A", "B"},
		Origins: []region.Origin{
			{Region: "A", Emigrants: 100, Shares: []region.Share{{Destination: "B", Percent: 60}}},
			{Region: "A", Emigrants: 100, Shares: []region.Share{{Destination: "B", Percent: 60}}},
		},
	}
	if _, err := Build(m); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Build() error = %v, want INVALID_INPUT", err)
	}
}

func TestBuild(t *testing.T) {
	n, err := Build(testMigration(t))
	if err != nil {
		t.Fatal(err)
	}

	if n.NodeCount() != 8 {
		t.Errorf("NodeCount() = %d, want 8", n.NodeCount())
	}
	if n.EdgeCount() != 4 {
		t.Errorf("EdgeCount() = %d, want 4", n.EdgeCount())
	}
	if _, ok := n.Node("Tarapacá (Destino)"); !ok {
		t.Error("missing destination node for Tarapacá")
	}
	if got := n.Origins()[0].ID; got != "Arica y Parinacota (Origen)" {
		t.Errorf("first origin = %q", got)
	}

	in := n.InFlow("Metropolitana")
	want := Flow(19729, 26.6) + Flow(36703, 25.8)
	if math.Abs(in-want) > 1e-6 {
		t.Errorf("InFlow(Metropolitana) = %v, want %v", in, want)
	}
	if got := n.Incoming("Coquimbo"); len(got) != 1 || got[0].Rank != 1 {
		t.Errorf("Incoming(Coquimbo) = %+v", got)
	}
	if n.Total("Tarapacá") != 36703 {
		t.Errorf("Total(Tarapacá) = %v", n.Total("Tarapacá"))
	}
	if n.Total("Coquimbo") != 0 {
		t.Errorf("Total(Coquimbo) = %v, want 0", n.Total("Coquimbo"))
	}

	cov := n.Coverage()
	wantCov := (Flow(19729, 26.6+13.5) + Flow(36703, 25.8+23.9)) / (19729 + 36703)
	if math.Abs(cov-wantCov) > 1e-9 {
		t.Errorf("Coverage() = %v, want %v", cov, wantCov)
	}
	if cov >= 1 {
		t.Error("partial shares must leave a remainder")
	}
}

func TestNetworkErrors(t *testing.T) {
	n := NewNetwork()
	if err := n.AddRegion("A"); err != nil {
		t.Fatal(err)
	}
	if err := n.AddRegion("A"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("duplicate AddRegion error = %v", err)
	}
	if err := n.AddEdge(Edge{Origin: "A", Destination: "B", Magnitude: 1}); !errors.Is(err, errors.ErrCodeMissingKey) {
		t.Errorf("AddEdge(unknown) error = %v", err)
	}
	if err := n.AddEdge(Edge{Origin: "A", Destination: "A", Magnitude: -1}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("AddEdge(negative) error = %v", err)
	}
	if err := n.SetOrder(DestinationRow, []string{"Z"}); !errors.Is(err, errors.ErrCodeMissingKey) {
		t.Errorf("SetOrder(unknown) error = %v", err)
	}
	if err := n.SetOrder(DestinationRow, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("SetOrder(short) error = %v", err)
	}
}

func TestSetOrder(t *testing.T) {
	n, err := Build(testMigration(t))
	if err != nil {
		t.Fatal(err)
	}
	order := []string{"Metropolitana", "Coquimbo", "Tarapacá", "Arica y Parinacota"}
	if err := n.SetOrder(DestinationRow, order); err != nil {
		t.Fatal(err)
	}
	if got := n.Order(DestinationRow); !slices.Equal(got, order) {
		t.Errorf("Order() = %v, want %v", got, order)
	}
	if got := n.Destinations()[0].ID; got != "Metropolitana (Destino)" {
		t.Errorf("first destination = %q", got)
	}
}
