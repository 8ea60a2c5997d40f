package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileLoader reads shows and venues from two local files.  The format
// is picked per file from its extension: .json, .jsonc, .yaml/.yml or
// .csv.  JSON and YAML files may hold a bare list or wrap it under a
// "shows" / "venues" key.
type FileLoader struct {
	ShowsPath  string
	VenuesPath string
}

func (f FileLoader) Load(ctx context.Context) (Dataset, error) {
	if err := ctx.Err(); err != nil {
		return Dataset{}, err
	}
	shows, err := readFile(f.ShowsPath, "shows", decodeShowsCSV)
	if err != nil {
		return Dataset{}, err
	}
	venues, err := readFile(f.VenuesPath, "venues", decodeVenuesCSV)
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{Shows: shows, Venues: venues}, nil
}

func readFile[T any](path, key string, fromCSV func(io.Reader) ([]T, error)) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []T
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		out, err = decodeJSONList[T](data, key)
	case ".jsonc":
		out, err = decodeJSONCList[T](data, key)
	case ".yaml", ".yml":
		out, err = decodeYAMLList[T](data, key)
	case ".csv":
		out, err = fromCSV(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%s: unsupported file extension %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}
