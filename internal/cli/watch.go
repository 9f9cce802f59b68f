package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chileviz/pkg/errors"
	"github.com/matzehuels/chileviz/pkg/source/sqlsource"
)

const defaultDebounce = 200 * time.Millisecond

type watchOpts struct {
	chartFlags
	output   string
	noCache  bool
	debounce time.Duration
}

func (c *CLI) watchCommand() *cobra.Command {
	opts := watchOpts{debounce: defaultDebounce}

	cmd := &cobra.Command{
		Use:   "watch <kind> <data>",
		Short: "Re-render a chart whenever its dataset changes",
		Long: `Render a chart, then render it again every time the dataset file (or the
GeoJSON file given with --geo) is written. A failed render is reported and
leaves the previous output in place; watching continues until interrupted.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), args[0], args[1], &opts)
		},
	}
	opts.register(cmd, true)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path; extensions are added per format")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "render without reading or writing the cache")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", opts.debounce, "wait this long after the last change before rendering")
	return cmd
}

func (c *CLI) runWatch(ctx context.Context, kind, data string, opts *watchOpts) error {
	logger := loggerFromContext(ctx)
	if sqlsource.IsDSN(data) {
		return errors.New(errors.ErrCodeUnsupported, "cannot watch a database; give a dataset file")
	}
	popts, err := opts.options(kind, data)
	if err != nil {
		return err
	}
	popts.NoCache = opts.noCache
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, nil, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	targets := watchTargets(data, popts.Geometry)
	for dir := range dirsOf(targets) {
		if err := watcher.Add(dir); err != nil {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "watch %s", dir)
		}
	}

	dir, base := outputPath(opts.output, data, popts.Kind)
	rerender := func() {
		if _, err := runChart(ctx, runner, popts, dir, base); err != nil {
			logger.Error("render failed", "err", err)
		}
	}
	rerender()
	printInfo("Watching %s (ctrl+c to stop)", data)

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(ev, targets) {
				continue
			}
			logger.Debug("change detected", "file", ev.Name, "op", ev.Op.String())
			timer = time.After(opts.debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)
		case <-timer:
			timer = nil
			rerender()
		}
	}
}

// watchTargets returns the cleaned absolute paths of the watched files.
func watchTargets(files ...string) map[string]bool {
	out := make(map[string]bool, len(files))
	for _, f := range files {
		if f == "" {
			continue
		}
		if abs, err := filepath.Abs(f); err == nil {
			f = abs
		}
		out[filepath.Clean(f)] = true
	}
	return out
}

// dirsOf returns the directories holding targets. Watching directories
// survives editors that replace files by renaming.
func dirsOf(targets map[string]bool) map[string]bool {
	out := make(map[string]bool, len(targets))
	for t := range targets {
		out[filepath.Dir(t)] = true
	}
	return out
}

// relevant reports whether ev changes the content of a target.
func relevant(ev fsnotify.Event, targets map[string]bool) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := ev.Name
	if abs, err := filepath.Abs(name); err == nil {
		name = abs
	}
	return targets[filepath.Clean(name)]
}
