package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/chileviz/pkg/errors"
)

// Source loads a dataset.
type Source interface {
	Load(ctx context.Context) (*Document, error)
}

// Format is a dataset file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported dataset extension %q (want .json, .yaml, .toml, .csv or .xlsx)", filepath.Ext(path))
}

// File reads a dataset from disk or from FS when set.
type File struct {
	Path string
	FS   fs.FS
}

// Open returns a file source for path.
func Open(path string) File { return File{Path: path} }

// Load reads and decodes the file. A missing file yields FILE_NOT_FOUND.
func (f File) Load(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	format, err := FormatOf(f.Path)
	if err != nil {
		return nil, err
	}

	var data []byte
	if f.FS != nil {
		data, err = fs.ReadFile(f.FS, f.Path)
	} else {
		data, err = os.ReadFile(f.Path)
	}
	if err != nil {
		if errors.IsNotExist(err) {
			return nil, errors.MissingFile(f.Path, err)
		}
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	doc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return doc, nil
}

// Parse decodes data in the given format and validates the result.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
	case FormatTOML:
		_, err = toml.Decode(string(data), &doc)
	case FormatCSV:
		var rows [][]string
		if rows, err = readCSV(data); err == nil {
			err = fromTable(rows, &doc)
		}
	case FormatXLSX:
		var rows [][]string
		if rows, err = readXLSX(data); err == nil {
			err = fromTable(rows, &doc)
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported dataset format %q", format)
	}
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s dataset", format)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Static serves a fixed document.
type Static struct {
	Doc *Document
}

// Load returns the document after validating it.
func (s Static) Load(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Doc == nil {
		return nil, errors.InvalidInput("static source has no document")
	}
	if err := s.Doc.Validate(); err != nil {
		return nil, err
	}
	return s.Doc, nil
}

// Float returns a pointer to v, for building records in code.
func Float(v float64) *float64 { return &v }

func itoa(i int) string { return strconv.Itoa(i) }
