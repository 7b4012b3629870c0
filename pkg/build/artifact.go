package build

import (
	"crypto/sha256"
	"encoding/hex"
	"path"
	"strings"
)

// Kind classification of a build output
type Kind string

const (
	KindEntryPoint Kind = "entry-point"
	KindChunk      Kind = "chunk"
	KindAsset      Kind = "asset"
	KindSourcemap  Kind = "sourcemap"
)

// Loader that produced a build output
type Loader string

const (
	LoaderFile Loader = "file"
	LoaderHTML Loader = "html"
	LoaderJS   Loader = "js"
	LoaderCSS  Loader = "css"
	LoaderText Loader = "text"
	LoaderJSON Loader = "json"
)

type (
	// Artifact a single emitted build output
	Artifact struct {
		Path      string  `json:"path"`
		Kind      Kind    `json:"kind"`
		Loader    Loader  `json:"loader,omitempty"`
		Hash      string  `json:"hash,omitempty"`
		Sourcemap *string `json:"sourcemap"`
	}
	// ArtifactOptions metadata attached to a registered artifact
	ArtifactOptions struct {
		Kind      Kind
		Loader    Loader
		Sourcemap *string
	}
	// Config the build configuration visible to plugins
	Config struct {
		Dir string `json:"outdir"`
	}
	// Result the outputs of a build
	Result struct {
		Outputs []Artifact `json:"outputs"`
	}
)

// NewArtifact returns an artifact for path with the hex sha256 of data as hash
func NewArtifact(path string, data []byte, opts ArtifactOptions) Artifact {
	return Artifact{
		Path:      path,
		Kind:      opts.Kind,
		Loader:    opts.Loader,
		Hash:      Hash(data),
		Sourcemap: opts.Sourcemap,
	}
}

// Hash returns the hex encoded sha256 of data
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Extension returns the text after the last dot of the path, or the path itself without a dot
func (a Artifact) Extension() string {
	if i := strings.LastIndex(a.Path, "."); i >= 0 {
		return a.Path[i+1:]
	}
	return a.Path
}

// LoaderForPath guesses the loader from the file extension
func LoaderForPath(p string) Loader {
	switch strings.ToLower(path.Ext(p)) {
	case ".html", ".htm":
		return LoaderHTML
	case ".js", ".mjs", ".cjs", ".jsx", ".ts", ".tsx":
		return LoaderJS
	case ".css":
		return LoaderCSS
	case ".txt", ".md", ".mdx":
		return LoaderText
	case ".json":
		return LoaderJSON
	default:
		return LoaderFile
	}
}

// OutDir returns the output directory, "." if unset
func (c *Config) OutDir() string {
	if c == nil || c.Dir == "" {
		return "."
	}
	return c.Dir
}

// Register appends artifacts to the outputs
func (r *Result) Register(artifacts ...Artifact) {
	r.Outputs = append(r.Outputs, artifacts...)
}

// Paths returns the paths of all outputs in order
func (r *Result) Paths() []string {
	paths := make([]string, 0, len(r.Outputs))
	for _, a := range r.Outputs {
		paths = append(paths, a.Path)
	}
	return paths
}
