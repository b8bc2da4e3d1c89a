package plugin_test

import (
	"fmt"
	"testing"

	"github.com/ngageoint/six-library-sub016/field"
	"github.com/ngageoint/six-library-sub016/imageio"
	"github.com/ngageoint/six-library-sub016/plugin"
	"github.com/ngageoint/six-library-sub016/record"
	"github.com/ngageoint/six-library-sub016/tre"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	dirMissing       []string
	alreadyLoaded    []string
	loadFailed       []string
	versionRejected  []string
}

func (h *recordingHandler) OnPluginDirectoryNotFound(dir string)  { h.dirMissing = append(h.dirMissing, dir) }
func (h *recordingHandler) OnPluginLoadedAlready(path string)     { h.alreadyLoaded = append(h.alreadyLoaded, path) }
func (h *recordingHandler) OnPluginLoadFailed(path string, err error) {
	h.loadFailed = append(h.loadFailed, path)
}
func (h *recordingHandler) OnPluginVersionUnsupported(message string) {
	h.versionRejected = append(h.versionRejected, message)
}
func (h *recordingHandler) OnPluginError(err error) {}

type stubProvider struct {
	manifest plugin.Manifest
	tagAdded string
}

func (p *stubProvider) Manifest() plugin.Manifest { return p.manifest }

func (p *stubProvider) RegisterTREs(r *tre.Registry) {
	r.Register(p.tagAdded, func() (*tre.Descriptor, error) {
		return &tre.Descriptor{
			Tag: p.tagAdded,
			Entries: []tre.Entry{
				tre.Simple(tre.FieldSpec{Class: field.BCSA, Length: 4, Label: "val", Key: "VAL"}),
			},
		}, nil
	})
}

func (p *stubProvider) RegisterCodecs(r *imageio.CodecRegistry) {
	r.Register(record.Compression("C3"), stubCodec{})
}

type stubCodec struct{}

func (stubCodec) Decode(compressed []byte, g imageio.Grid) ([]byte, error) { return compressed, nil }
func (stubCodec) Encode(raw []byte, g imageio.Grid) ([]byte, error)        { return raw, nil }

func TestRegisterStaticMatchingVersion(t *testing.T) {
	tres := tre.NewRegistry()
	codecs := imageio.NewCodecRegistry()
	handler := &recordingHandler{}
	host := plugin.NewRegistry(plugin.Version{Major: 1, Minor: 0}, tres, codecs, handler)

	p := &stubProvider{
		manifest: plugin.Manifest{Name: "example", Version: plugin.Version{Major: 1, Minor: 0}},
		tagAdded: "ZZTST",
	}
	require.NoError(t, host.RegisterStatic(p))

	_, found := tres.Describe("ZZTST")
	assert.True(t, found)

	_, err := codecs.Get(record.Compression("C3"))
	assert.NoError(t, err)
	assert.Empty(t, handler.versionRejected)
}

func TestRegisterStaticVersionMismatchRejected(t *testing.T) {
	tres := tre.NewRegistry()
	codecs := imageio.NewCodecRegistry()
	handler := &recordingHandler{}
	host := plugin.NewRegistry(plugin.Version{Major: 1, Minor: 0}, tres, codecs, handler)

	p := &stubProvider{
		manifest: plugin.Manifest{Name: "example", Version: plugin.Version{Major: 2, Minor: 0}},
		tagAdded: "ZZTST",
	}
	err := host.RegisterStatic(p)
	require.Error(t, err)
	assert.Len(t, handler.versionRejected, 1)

	_, found := tres.Describe("ZZTST")
	assert.False(t, found)
}

func TestRegisterStaticMajorOnlyOptIn(t *testing.T) {
	tres := tre.NewRegistry()
	codecs := imageio.NewCodecRegistry()
	host := plugin.NewRegistry(plugin.Version{Major: 1, Minor: 5}, tres, codecs, &recordingHandler{})

	p := &stubProvider{
		manifest: plugin.Manifest{Name: "example", Version: plugin.Version{Major: 1, Minor: 0}, MajorOnly: true},
		tagAdded: "ZZTST",
	}
	require.NoError(t, host.RegisterStatic(p))

	_, found := tres.Describe("ZZTST")
	assert.True(t, found)
}

func TestRegisterStaticTwiceIsNoop(t *testing.T) {
	tres := tre.NewRegistry()
	codecs := imageio.NewCodecRegistry()
	handler := &recordingHandler{}
	host := plugin.NewRegistry(plugin.Version{Major: 1, Minor: 0}, tres, codecs, handler)

	p := &stubProvider{
		manifest: plugin.Manifest{Name: "example", Version: plugin.Version{Major: 1, Minor: 0}},
		tagAdded: "ZZTST",
	}
	require.NoError(t, host.RegisterStatic(p))
	require.NoError(t, host.RegisterStatic(p))
	assert.Len(t, handler.alreadyLoaded, 1)
}

func TestLoadDirMissingDirectoryIsNonFatal(t *testing.T) {
	tres := tre.NewRegistry()
	codecs := imageio.NewCodecRegistry()
	handler := &recordingHandler{}
	host := plugin.NewRegistry(plugin.Version{Major: 1, Minor: 0}, tres, codecs, handler)

	host.LoadDir(fmt.Sprintf("/nonexistent/path/%d", 12345))
	assert.Len(t, handler.dirMissing, 1)
}

func TestDefaultErrorHandlerDoesNotPanic(t *testing.T) {
	h := &plugin.DefaultErrorHandler{}
	h.OnPluginDirectoryNotFound("/tmp/plugins")
	h.OnPluginLoadedAlready("/tmp/plugins/foo.so")
	h.OnPluginLoadFailed("/tmp/plugins/foo.so", fmt.Errorf("boom"))
	h.OnPluginVersionUnsupported("plug-in foo requires 2.0, host provides 1.0")
	h.OnPluginError(fmt.Errorf("runtime failure"))
}
