package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/matzehuels/chileviz/pkg/geo"
	"github.com/matzehuels/chileviz/pkg/observability"
	"github.com/matzehuels/chileviz/pkg/source"
	"github.com/matzehuels/chileviz/pkg/source/sqlsource"
)

// OpenSource picks the dataset source for input: a database when input is
// a DSN, a file otherwise. Close the returned closer when done.
func OpenSource(input string) (source.Source, io.Closer, error) {
	if sqlsource.IsDSN(input) {
		s, err := sqlsource.Open(input)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	}
	return source.Open(input), nopCloser{}, nil
}

// Load reads the dataset named by opts.
func Load(ctx context.Context, opts Options) (*source.Document, error) {
	src := opts.Source
	name := opts.Input
	if src == nil {
		s, closer, err := OpenSource(opts.Input)
		if err != nil {
			return nil, err
		}
		defer closer.Close()
		src = s
	} else if name == "" {
		name = fmt.Sprintf("%T", src)
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, name)
	start := time.Now()
	doc, err := src.Load(ctx)
	records := 0
	if doc != nil {
		records = len(doc.Records)
	}
	hooks.OnLoadComplete(ctx, name, records, time.Since(start), err)
	return doc, err
}

// LoadGeometry reads the GeoJSON file named by opts, or returns nil when
// the chart does not need one.
func LoadGeometry(opts Options) (*geo.Collection, error) {
	if !opts.Kind.NeedsGeometry() {
		return nil, nil
	}
	return geo.Load(opts.Geometry, opts.GeoProperty)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
