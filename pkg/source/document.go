package source

import (
	"github.com/matzehuels/chileviz/pkg/errors"
	"github.com/matzehuels/chileviz/pkg/region"
)

// Attr names a numeric record attribute.
type Attr string

const (
	AttrArea       Attr = "area"
	AttrPopulation Attr = "poblacion"
	AttrPercent    Attr = "porcentaje"
	AttrEmigrants  Attr = "emigrantes"
)

// Document is a loaded dataset.
type Document struct {
	Title   string   `json:"titulo,omitempty" yaml:"titulo,omitempty" toml:"titulo,omitempty"`
	Records []Record `json:"regiones" yaml:"regiones" toml:"regiones"`
}

// Record holds the attributes of one region. Absent attributes are nil.
type Record struct {
	Region       string             `json:"region" yaml:"region" toml:"region"`
	Label        string             `json:"etiqueta,omitempty" yaml:"etiqueta,omitempty" toml:"etiqueta,omitempty"`
	Code         string             `json:"codigo,omitempty" yaml:"codigo,omitempty" toml:"codigo,omitempty"`
	Area         *float64           `json:"area,omitempty" yaml:"area,omitempty" toml:"area,omitempty"`
	Population   *float64           `json:"poblacion,omitempty" yaml:"poblacion,omitempty" toml:"poblacion,omitempty"`
	Percent      *float64           `json:"porcentaje,omitempty" yaml:"porcentaje,omitempty" toml:"porcentaje,omitempty"`
	Emigrants    *float64           `json:"emigrantes,omitempty" yaml:"emigrantes,omitempty" toml:"emigrantes,omitempty"`
	Destinations []Destination      `json:"destinos,omitempty" yaml:"destinos,omitempty" toml:"destinos,omitempty"`
	Births       map[string]float64 `json:"nacimientos,omitempty" yaml:"nacimientos,omitempty" toml:"nacimientos,omitempty"`
}

// Destination is one reported emigration share.
type Destination struct {
	Region  string  `json:"region" yaml:"region" toml:"region"`
	Percent float64 `json:"porcentaje" yaml:"porcentaje" toml:"porcentaje"`
}

// Value returns the named attribute, or a MISSING_KEY error naming the
// region and attribute.
func (r Record) Value(a Attr) (float64, error) {
	var p *float64
	switch a {
	case AttrArea:
		p = r.Area
	case AttrPopulation:
		p = r.Population
	case AttrPercent:
		p = r.Percent
	case AttrEmigrants:
		p = r.Emigrants
	default:
		return 0, errors.InvalidInput("unknown attribute %q", a)
	}
	if p == nil {
		return 0, errors.MissingKey(string(a)+" of region", r.Region)
	}
	return *p, nil
}

// Validate checks the document has at least one record and that every
// record is named.
func (d *Document) Validate() error {
	if len(d.Records) == 0 {
		return errors.InvalidInput("dataset has no regions")
	}
	for i, r := range d.Records {
		if r.Region == "" {
			return errors.MissingKey("region name of record", itoa(i))
		}
	}
	return nil
}

// Dataset projects the records into regions with the given primary and
// secondary magnitudes. An empty secondary leaves Secondary at zero.
func (d *Document) Dataset(primary, secondary Attr) (*region.Dataset, error) {
	regions := make([]region.Region, 0, len(d.Records))
	for _, rec := range d.Records {
		p, err := rec.Value(primary)
		if err != nil {
			return nil, err
		}
		var s float64
		if secondary != "" {
			if s, err = rec.Value(secondary); err != nil {
				return nil, err
			}
		}
		r, err := region.New(rec.Region, rec.Label, rec.Code, p, s)
		if err != nil {
			return nil, err
		}
		regions = append(regions, r)
	}
	return region.NewDataset(regions...)
}

// Series projects the per-year births of every record.
func (d *Document) Series() (*region.Series, error) {
	names := make([]string, len(d.Records))
	values := make([]map[string]float64, len(d.Records))
	for i, rec := range d.Records {
		if len(rec.Births) == 0 {
			return nil, errors.MissingKey("nacimientos of region", rec.Region)
		}
		names[i] = rec.Region
		values[i] = rec.Births
	}
	return region.NewSeries(names, values)
}

// Migration projects emigration totals and destination shares. Every
// record is a region on both sides; records with destinations must report
// emigrantes.
func (d *Document) Migration() (*region.Migration, error) {
	names := make([]string, len(d.Records))
	var origins []region.Origin
	for i, rec := range d.Records {
		names[i] = rec.Region
		if rec.Emigrants == nil && len(rec.Destinations) == 0 {
			continue
		}
		total, err := rec.Value(AttrEmigrants)
		if err != nil {
			return nil, err
		}
		o := region.Origin{Region: rec.Region, Emigrants: total}
		for _, dst := range rec.Destinations {
			o.Shares = append(o.Shares, region.Share{Destination: dst.Region, Percent: dst.Percent})
		}
		origins = append(origins, o)
	}
	if len(origins) == 0 {
		return nil, errors.MissingKey("attribute", string(AttrEmigrants))
	}
	return region.NewMigration(names, origins)
}
