package region

import (
	"fmt"

	"github.com/matzehuels/chileviz/pkg/errors"
)

// Share is the percentage of an origin's emigrants that moved to Destination.
type Share struct {
	Destination string
	Percent     float64
}

// Origin is one region's emigration record: total emigrants and the
// destination shares the source reports, primary destination first.
type Origin struct {
	Region    string
	Emigrants float64
	Shares    []Share
}

// Migration holds the regions participating in internal migration, in
// display order, and one record per origin.
type Migration struct {
	Regions []string
	Origins []Origin
}

// NewMigration validates origins against the region list. Every origin and
// destination must name a listed region; emigrant totals must be
// non-negative; percentages must lie in [0, 100]. Each region may appear
// as an origin at most once.
func NewMigration(regions []string, origins []Origin) (*Migration, error) {
	known := make(map[string]string, len(regions))
	for _, r := range regions {
		if err := errors.ValidateName(r); err != nil {
			return nil, err
		}
		if _, dup := known[Key(r)]; dup {
			return nil, errors.InvalidInput("duplicate region %q", r)
		}
		known[Key(r)] = r
	}

	m := &Migration{Regions: append([]string(nil), regions...)}
	seen := make(map[string]bool, len(origins))
	for _, o := range origins {
		name, ok := known[Key(o.Region)]
		if !ok {
			return nil, errors.MissingKey("origin region", o.Region)
		}
		if seen[name] {
			return nil, errors.InvalidInput("duplicate origin %q", o.Region)
		}
		seen[name] = true
		if err := errors.ValidateMagnitude(fmt.Sprintf("emigrants of %s", o.Region), o.Emigrants); err != nil {
			return nil, err
		}
		rec := Origin{Region: name, Emigrants: o.Emigrants}
		for _, s := range o.Shares {
			dest, ok := known[Key(s.Destination)]
			if !ok {
				return nil, errors.MissingKey("destination region", s.Destination)
			}
			if err := errors.ValidateMagnitude(fmt.Sprintf("share %s -> %s", o.Region, s.Destination), s.Percent); err != nil {
				return nil, err
			}
			if s.Percent > 100 {
				return nil, errors.InvalidInput("share %s -> %s exceeds 100%%: %v", o.Region, s.Destination, s.Percent)
			}
			rec.Shares = append(rec.Shares, Share{Destination: dest, Percent: s.Percent})
		}
		m.Origins = append(m.Origins, rec)
	}
	return m, nil
}
