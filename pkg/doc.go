// Package pkg holds the chileviz libraries.
//
// # Overview
//
// chileviz draws charts of Chilean regional statistics. The packages are
// layered from data to pixels:
//
//  1. [source] reads datasets (files or SQL) into records, [geo] reads
//     GeoJSON boundaries
//  2. [region] validates records into datasets, series and migration tables
//  3. [layout] and [flow] compute partitions, intensities, radii and flows
//  4. [chart] builds per-kind layouts and draws them into a [scene]
//  5. [render] encodes scenes as SVG, PNG, PDF or JSON
//  6. [pipeline] runs the stages with caching ([cache]) and metrics
//     ([observability])
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Kind:    chart.KindSankey,
//	    Input:   "examples/data/migracion.csv",
//	    Formats: []render.Format{render.FormatSVG, render.FormatPNG},
//	})
//	if err != nil {
//	    return err
//	}
//	paths, err := pipeline.WriteArtifacts("out", "migracion", res.Artifacts)
//
// [source]: github.com/matzehuels/chileviz/pkg/source
// [geo]: github.com/matzehuels/chileviz/pkg/geo
// [region]: github.com/matzehuels/chileviz/pkg/region
// [layout]: github.com/matzehuels/chileviz/pkg/layout
// [flow]: github.com/matzehuels/chileviz/pkg/flow
// [chart]: github.com/matzehuels/chileviz/pkg/chart
// [scene]: github.com/matzehuels/chileviz/pkg/scene
// [render]: github.com/matzehuels/chileviz/pkg/render
// [pipeline]: github.com/matzehuels/chileviz/pkg/pipeline
// [cache]: github.com/matzehuels/chileviz/pkg/cache
// [observability]: github.com/matzehuels/chileviz/pkg/observability
package pkg
