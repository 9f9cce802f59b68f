package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/chileviz/pkg/chart"
	"github.com/matzehuels/chileviz/pkg/render"
	"github.com/matzehuels/chileviz/pkg/render/flowgraph"
	"github.com/matzehuels/chileviz/pkg/render/sink"
)

// Render encodes c in every format of opts. Either every format succeeds
// or no artifact is returned.
func Render(ctx context.Context, c *Chart, opts Options) (map[render.Format][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if c.Kind == chart.KindFlowGraph {
		return renderFlowGraph(ctx, c, opts)
	}

	s, err := c.Draw(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	artifacts := make(map[render.Format][]byte, len(opts.Formats))
	for _, f := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var data []byte
		if f == render.FormatPNG {
			data, err = sink.RenderPNG(s, sink.WithScale(opts.Scale))
		} else {
			data, err = sink.Render(s, f, c.Layout)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f, err)
		}
		artifacts[f] = data
	}
	return artifacts, nil
}

func renderFlowGraph(ctx context.Context, c *Chart, opts Options) (map[render.Format][]byte, error) {
	artifacts := make(map[render.Format][]byte, len(opts.Formats))
	for _, f := range opts.Formats {
		data, err := flowgraph.Render(ctx, c.DOT(), f)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f, err)
		}
		artifacts[f] = data
	}
	return artifacts, nil
}
