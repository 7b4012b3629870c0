package build

import (
	"io"
	"io/fs"
	"path/filepath"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LoadManifest decodes a build manifest of the form {"outputs": [...]}
func LoadManifest(r io.Reader) (*Result, error) {
	res := &Result{}
	if err := json.NewDecoder(r).Decode(res); err != nil {
		return nil, errors.Wrap(err, "failed to decode build manifest")
	}
	for i, a := range res.Outputs {
		if a.Path == "" {
			return nil, errors.Errorf("build manifest output %d has no path", i)
		}
	}
	return res, nil
}

// WriteManifest encodes the result as build manifest
func (r *Result) WriteManifest(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, "failed to encode build manifest")
	}
	return nil
}

// ScanDir enumerates the regular files below dir as entry point outputs.
// Paths keep dir as prefix and use forward slashes, sorted lexically.
func ScanDir(dir string) (*Result, error) {
	res := &Result{}
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		res.Register(Artifact{
			Path:   filepath.ToSlash(p),
			Kind:   KindEntryPoint,
			Loader: LoaderForPath(p),
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan %s", dir)
	}
	sort.Slice(res.Outputs, func(i, j int) bool {
		return res.Outputs[i].Path < res.Outputs[j].Path
	})
	return res, nil
}
