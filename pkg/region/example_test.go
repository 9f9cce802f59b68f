package region_test

import (
	"fmt"

	"github.com/matzehuels/chileviz/pkg/region"
)

func ExampleDataset_Lookup() {
	maule, _ := region.New("Maule", "", "VII", 30.3, 1123008)
	ohiggins, _ := region.New("Libertador General Bernardo O'Higgins", "O'Higgins", "VI", 16.39, 987228)
	d, _ := region.NewDataset(maule, ohiggins)

	r, _ := d.Lookup("libertador general bernardo o’higgins")
	fmt.Println(r.Code, r.Label)
	// Output:
	// VI O'Higgins
}

func ExampleSeries_Group() {
	s, _ := region.NewSeries(
		[]string{"Metropolitana", "Aysén", "Magallanes"},
		[]map[string]float64{{"2020": 90}, {"2020": 1}, {"2020": 2}},
	)
	g, _ := s.Group(region.OtherRegions, []string{"Aysén", "Magallanes"})
	for _, r := range g.Rows {
		fmt.Println(r.Region, r.Values)
	}
	// Output:
	// Metropolitana [90]
	// Otras regiones [3]
}
