package pipeline

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/matzehuels/chileviz/pkg/render"
)

// WriteArtifacts writes each artifact to dir/base.<ext> and returns the
// paths in format order. Files are first written under temporary names and
// renamed once every write succeeded, so a failed run leaves no partial
// output behind.
func WriteArtifacts(dir, base string, artifacts map[render.Format][]byte) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	formats := make([]render.Format, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	slices.Sort(formats)

	var tmps, paths []string
	cleanup := func() {
		for _, t := range tmps {
			os.Remove(t)
		}
	}
	for _, f := range formats {
		tmp, err := os.CreateTemp(dir, "."+base+"-*"+f.Ext())
		if err != nil {
			cleanup()
			return nil, err
		}
		tmps = append(tmps, tmp.Name())
		if _, err := tmp.Write(artifacts[f]); err != nil {
			tmp.Close()
			cleanup()
			return nil, err
		}
		if err := tmp.Close(); err != nil {
			cleanup()
			return nil, err
		}
		paths = append(paths, filepath.Join(dir, base+f.Ext()))
	}
	for i, t := range tmps {
		if err := os.Rename(t, paths[i]); err != nil {
			cleanup()
			return nil, err
		}
	}
	return paths, nil
}
