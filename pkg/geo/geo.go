// Package geo loads region boundaries from GeoJSON and projects them into
// chart coordinates.
//
// Only Polygon and MultiPolygon features are supported. Each feature is
// named by a string property, "Region" by default, which is matched against
// dataset regions with [region.Key].
//
// [region.Key]: github.com/matzehuels/chileviz/pkg/region
package geo

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/matzehuels/chileviz/pkg/errors"
	"github.com/matzehuels/chileviz/pkg/region"
)

// DefaultNameProperty is the feature property holding the region name.
const DefaultNameProperty = "Region"

// Feature is a named region boundary.
type Feature struct {
	Name     string
	Geometry orb.Geometry // orb.Polygon or orb.MultiPolygon
}

// Polygons returns the feature's polygons.
func (f Feature) Polygons() []orb.Polygon {
	switch g := f.Geometry.(type) {
	case orb.Polygon:
		return []orb.Polygon{g}
	case orb.MultiPolygon:
		return g
	}
	return nil
}

// Key returns the folded region key of the feature's name.
func (f Feature) Key() string { return region.Key(f.Name) }

// Collection is an ordered set of features.
type Collection struct {
	Features []Feature
}

// Lookup returns the feature whose name folds to the same key as name.
func (c *Collection) Lookup(name string) (Feature, bool) {
	k := region.Key(name)
	for _, f := range c.Features {
		if f.Key() == k {
			return f, true
		}
	}
	return Feature{}, false
}

// Bound returns the bounding box of every feature.
func (c *Collection) Bound() orb.Bound {
	var b orb.Bound
	for i, f := range c.Features {
		if i == 0 {
			b = f.Geometry.Bound()
			continue
		}
		b = b.Union(f.Geometry.Bound())
	}
	return b
}

// Load reads a GeoJSON FeatureCollection from path. A missing file yields
// a FILE_NOT_FOUND error.
func Load(path, nameProperty string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.IsNotExist(err) {
			return nil, errors.MissingFile(path, err)
		}
		return nil, fmt.Errorf("read geometry: %w", err)
	}
	return Parse(data, nameProperty)
}

// Parse decodes a FeatureCollection. Every feature must be a Polygon or
// MultiPolygon and carry a non-empty nameProperty.
func Parse(data []byte, nameProperty string) (*Collection, error) {
	if nameProperty == "" {
		nameProperty = DefaultNameProperty
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse GeoJSON")
	}

	c := &Collection{Features: make([]Feature, 0, len(fc.Features))}
	for i, f := range fc.Features {
		name := f.Properties.MustString(nameProperty, "")
		if name == "" {
			return nil, errors.MissingKey(fmt.Sprintf("property of feature %d", i), nameProperty)
		}
		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			return nil, errors.InvalidInput("feature %q: unsupported geometry %T", name, f.Geometry)
		}
		c.Features = append(c.Features, Feature{Name: name, Geometry: f.Geometry})
	}
	return c, nil
}
