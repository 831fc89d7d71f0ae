package docs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "github.com/jamesxoliver/jamesxoliver.github.io/internal/docs/errors"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
}

func testOptions() Options {
	return Options{
		Extension:      ".tex",
		SkipDirs:       []string{"0_Format"},
		TemplateMarker: "template",
		RootCategory:   "Essays",
	}
}

func TestDiscover_FiltersAndCategorizes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Physics/entropy.tex", "x")
	writeFile(t, root, "Physics/Thermo/heat.tex", "x")
	writeFile(t, root, "Physics/Thermo/Deep/cold.tex", "x")
	writeFile(t, root, "standalone.tex", "x")
	writeFile(t, root, "0_Format/format.tex", "x")
	writeFile(t, root, "Physics/My_Template.tex", "x")
	writeFile(t, root, "Physics/notes.md", "x")
	writeFile(t, root, ".git/config.tex", "x")
	writeFile(t, root, "Physics/0_Format/kept.tex", "x")

	files, err := NewDiscovery(root, testOptions()).Discover()
	require.NoError(t, err)

	var rels []string
	for _, f := range files {
		rels = append(rels, f.RelativePath)
	}
	assert.Equal(t, []string{
		"Physics/0_Format/kept.tex",
		"Physics/Thermo/Deep/cold.tex",
		"Physics/Thermo/heat.tex",
		"Physics/entropy.tex",
		"standalone.tex",
	}, rels)

	byRel := map[string]SourceDocument{}
	for _, f := range files {
		byRel[f.RelativePath] = f
	}

	entropy := byRel["Physics/entropy.tex"]
	assert.Equal(t, "Physics", entropy.TopCategory)
	assert.True(t, entropy.SubCategory.IsNone())
	assert.Equal(t, "entropy.tex", entropy.Name)

	heat := byRel["Physics/Thermo/heat.tex"]
	assert.Equal(t, "Physics", heat.TopCategory)
	assert.Equal(t, "Thermo", heat.SubCategory.UnwrapOr(""))

	cold := byRel["Physics/Thermo/Deep/cold.tex"]
	assert.Equal(t, "Thermo", cold.SubCategory.UnwrapOr(""))

	assert.Equal(t, "Essays", byRel["standalone.tex"].TopCategory)
}

func TestDiscover_MissingCorpus(t *testing.T) {
	_, err := NewDiscovery(filepath.Join(t.TempDir(), "nope"), testOptions()).Discover()
	require.Error(t, err)
	assert.True(t, errors.Is(err, derrors.ErrCorpusNotFound))
}

func TestDiscover_CorpusIsFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "file.tex", "x")
	_, err := NewDiscovery(filepath.Join(root, "file.tex"), testOptions()).Discover()
	assert.ErrorIs(t, err, derrors.ErrCorpusNotFound)
}

func TestSourceDocument_Load(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.tex", "caf\xe9 ok")

	doc := SourceDocument{Path: filepath.Join(root, "a.tex"), RelativePath: "a.tex"}
	require.NoError(t, doc.Load())
	assert.Equal(t, "caf� ok", doc.Content)

	missing := SourceDocument{Path: filepath.Join(root, "b.tex"), RelativePath: "b.tex"}
	assert.ErrorIs(t, missing.Load(), derrors.ErrFileReadFailed)
}
