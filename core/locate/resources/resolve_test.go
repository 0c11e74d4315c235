package resources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/lettermath/core"
	"github.com/npillmayer/lettermath/core/font"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomonobold"
)

func TestLoadPackagedFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.fonts")
	defer teardown()
	//
	loader := ResolveTypeCase(nil, "100px Go")
	typecase, err := loader.TypeCase()
	require.NoError(t, err)
	require.NotNil(t, typecase)
	t.Logf("name of typecase = %s", typecase.ScalableFontParent().Fontname)
	assert.InDelta(t, 100.0, typecase.PxSize(), 1e-6)
	assert.Equal(t, "internal", typecase.ScalableFontParent().Filepath)
	//
	loader = ResolveTypeCase(nil, `bold 24pt "Go Mono"`)
	typecase, err = loader.TypeCase()
	require.NoError(t, err)
	assert.Contains(t, typecase.ScalableFontParent().Fontname, "Mono")
	assert.Contains(t, typecase.ScalableFontParent().Fontname, "Bold")
}

func TestResolveFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.fonts")
	defer teardown()
	//
	typecase, err := ResolveTypeCase(nil, "40px No-Such-Font-Family-XYZ").TypeCase()
	require.NotNil(t, typecase, "expected fallback font")
	assert.Equal(t, core.EMISSING, core.Code(err))
	assert.Equal(t, font.FallbackFont(), typecase.ScalableFontParent())
}

func TestResolveInvalidSpec(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.fonts")
	defer teardown()
	//
	typecase, err := ResolveTypeCase(nil, "50% Go").TypeCase()
	assert.Nil(t, typecase)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestResolveFromFontDirectory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lettermath.fonts")
	defer teardown()
	//
	dir := t.TempDir()
	fpath := filepath.Join(dir, "Lettertest-Bold.ttf")
	require.NoError(t, os.WriteFile(fpath, gomonobold.TTF, 0644))
	conf := testconfig.Conf{
		"lettermath.fontdir": dir,
	}
	typecase, err := ResolveTypeCase(conf, "bold 30px Lettertest").TypeCase()
	require.NoError(t, err)
	assert.Equal(t, fpath, typecase.ScalableFontParent().Filepath)
	//
	// regular weight is not present in the directory
	_, err = ResolveTypeCase(conf, "30px Lettertest").TypeCase()
	assert.Equal(t, core.EMISSING, core.Code(err))
}
