package pattern

import (
	"os"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldjoshua/LightBox-2.0/config"
	"github.com/fieldjoshua/LightBox-2.0/frame"
)

var black = Func(func(buf *frame.Buffer, cfg config.Snapshot, frameIndex uint64) {
	buf.Clear()
})

type withParams struct{}

func (withParams) Render(buf *frame.Buffer, cfg config.Snapshot, frameIndex uint64) {}

func (withParams) Params() []ParamSpec {
	return []ParamSpec{
		{Name: "density", Type: "float", Min: 0, Max: 1, Default: 0.5, Description: "sparkle density"},
	}
}

func TestRegistryAlwaysHasFallback(t *testing.T) {
	r := NewRegistry("black", black)

	name, p := r.Fallback()
	assert.Equal(t, "black", name)
	assert.NotNil(t, p)
	assert.Equal(t, []string{"black"}, r.List())
}

func TestRegisterAndGet(t *testing.T) {
	r := NewRegistry("black", black)
	require.NoError(t, r.Register("solid", Func(func(buf *frame.Buffer, cfg config.Snapshot, frameIndex uint64) {
		for i := 0; i < buf.Len(); i++ {
			buf.Set(i, colorful.Color{R: 1})
		}
	})))

	p, ok := r.Get("solid")
	assert.True(t, ok)
	assert.NotNil(t, p)

	_, ok = r.Get("missing")
	assert.False(t, ok)

	_, err := r.Lookup("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []string{"black", "solid"}, r.List())
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := NewRegistry("black", black)
	require.NoError(t, r.Register("solid", black))
	assert.Error(t, r.Register("solid", black))
	assert.Error(t, r.Register("black", black), "fallback name is taken")
}

func TestRegisterRejectsBadInput(t *testing.T) {
	r := NewRegistry("black", black)
	assert.Error(t, r.Register("", black))
	assert.Error(t, r.Register("nil", nil))
}

func TestParamsSchema(t *testing.T) {
	r := NewRegistry("black", black)
	require.NoError(t, r.Register("sparkle", withParams{}))

	specs := r.Params("sparkle")
	require.Len(t, specs, 1)
	assert.Equal(t, "density", specs[0].Name)
	assert.Equal(t, 0.5, specs[0].Default)

	assert.Nil(t, r.Params("black"), "pattern without a schema")
	assert.Nil(t, r.Params("missing"))
}

func TestLoadPluginsMissingDirIsQuiet(t *testing.T) {
	r := NewRegistry("black", black)
	assert.Nil(t, r.LoadPlugins(t.TempDir()+"/nonexistent"))
	assert.Equal(t, []string{"black"}, r.List())
}

func TestLoadPluginsSkipsGarbage(t *testing.T) {
	dir := t.TempDir()
	// Not a real shared object; loading must log and skip, not fail.
	require.NoError(t, writeFile(dir+"/broken.so", "not an ELF"))

	r := NewRegistry("black", black)
	assert.Empty(t, r.LoadPlugins(dir))
	assert.Equal(t, []string{"black"}, r.List())
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
