package build

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadManifest(t *testing.T) {
	res, err := LoadManifest(strings.NewReader(`{
		"outputs": [
			{"path": "dist/index.html", "kind": "entry-point", "loader": "html"},
			{"path": "dist/app.js", "kind": "chunk", "loader": "js", "sourcemap": "dist/app.js.map"}
		]
	}`))
	require.NoError(t, err)
	require.Len(t, res.Outputs, 2)
	assert.Equal(t, KindEntryPoint, res.Outputs[0].Kind)
	assert.Nil(t, res.Outputs[0].Sourcemap)
	require.NotNil(t, res.Outputs[1].Sourcemap)
	assert.Equal(t, "dist/app.js.map", *res.Outputs[1].Sourcemap)
}

func TestLoadManifest_Invalid(t *testing.T) {
	_, err := LoadManifest(strings.NewReader(`{"outputs": [`))
	require.Error(t, err)

	_, err = LoadManifest(strings.NewReader(`{"outputs": [{"kind": "entry-point"}]}`))
	require.Error(t, err)
}

func TestResult_WriteManifest(t *testing.T) {
	res := &Result{}
	res.Register(NewArtifact("dist/sitemap.xml", []byte("<urlset/>"), ArtifactOptions{
		Kind:   KindEntryPoint,
		Loader: LoaderFile,
	}))

	var buf bytes.Buffer
	require.NoError(t, res.WriteManifest(&buf))
	assert.Regexp(t, `"sourcemap":\s*null`, buf.String())

	loaded, err := LoadManifest(&buf)
	require.NoError(t, err)
	assert.Equal(t, res, loaded)
}

func TestScanDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dist")
	for _, name := range []string{"index.html", "about/index.html", "app.css"} {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(name), 0o644))
	}

	res, err := ScanDir(dir)
	require.NoError(t, err)

	prefix := filepath.ToSlash(dir)
	assert.Equal(t, []string{
		prefix + "/about/index.html",
		prefix + "/app.css",
		prefix + "/index.html",
	}, res.Paths())
	for _, a := range res.Outputs {
		assert.Equal(t, KindEntryPoint, a.Kind)
	}
	assert.Equal(t, LoaderCSS, res.Outputs[1].Loader)
}

func TestScanDir_Missing(t *testing.T) {
	_, err := ScanDir(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
