package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	goplugin "plugin"
	"sync"

	"github.com/ngageoint/six-library-sub016/errs"
	"github.com/ngageoint/six-library-sub016/imageio"
	"github.com/ngageoint/six-library-sub016/tre"
)

// symbolName is the exported identifier a shared-object plug-in must
// expose: either a Provider value directly, or a func() Provider factory.
const symbolName = "Provider"

// Registry is the process-wide plug-in host. It is guarded by a mutex
// during load; lookups against the underlying TRE and codec registries it
// feeds are lock-free reads, per their own concurrency contracts.
type Registry struct {
	mu          sync.Mutex
	hostVersion Version
	handlers    ErrorHandler
	tres        *tre.Registry
	codecs      *imageio.CodecRegistry
	loaded      map[string]bool
}

// NewRegistry returns a plug-in host negotiating against hostVersion. handlers
// receives load-failure notifications; pass nil for &DefaultErrorHandler{}.
func NewRegistry(hostVersion Version, tres *tre.Registry, codecs *imageio.CodecRegistry, handlers ErrorHandler) *Registry {
	if handlers == nil {
		handlers = &DefaultErrorHandler{}
	}
	return &Registry{
		hostVersion: hostVersion,
		handlers:    handlers,
		tres:        tres,
		codecs:      codecs,
		loaded:      map[string]bool{},
	}
}

// RegisterStatic registers a compile-time-known Provider directly, without
// going through the shared-object loader. This is the inventory path a host
// uses when the target platform or build doesn't support dlopen-style
// plug-ins; it honors the same version negotiation and error-handler hooks
// as LoadDir.
func (r *Registry) RegisterStatic(p Provider) error {
	m := p.Manifest()
	key := "static:" + m.Name
	r.mu.Lock()
	if r.loaded[key] {
		r.mu.Unlock()
		r.handlers.OnPluginLoadedAlready(key)
		return nil
	}
	r.mu.Unlock()
	return r.register(key, p)
}

// LoadDir scans dir for *.so plug-ins and loads each one, reporting a
// missing directory through the error handler rather than returning an
// error -- a missing or empty plug-in directory is not fatal to the host.
func (r *Registry) LoadDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		r.handlers.OnPluginDirectoryNotFound(dir)
		return
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".so" {
			continue
		}
		r.loadFile(filepath.Join(dir, e.Name()))
	}
}

// LoadSearchPath splits a colon- or semicolon-separated (os.PathListSeparator)
// plug-in search path -- the only environment option the engine recognizes
// -- and calls LoadDir on each directory in order.
func (r *Registry) LoadSearchPath(searchPath string) {
	if searchPath == "" {
		return
	}
	for _, dir := range filepath.SplitList(searchPath) {
		if dir != "" {
			r.LoadDir(dir)
		}
	}
}

func (r *Registry) loadFile(path string) {
	r.mu.Lock()
	if r.loaded[path] {
		r.mu.Unlock()
		r.handlers.OnPluginLoadedAlready(path)
		return
	}
	r.mu.Unlock()

	so, err := goplugin.Open(path)
	if err != nil {
		r.handlers.OnPluginLoadFailed(path, err)
		return
	}
	sym, err := so.Lookup(symbolName)
	if err != nil {
		r.handlers.OnPluginLoadFailed(path, err)
		return
	}

	var p Provider
	switch v := sym.(type) {
	case Provider:
		p = v
	case func() Provider:
		p = v()
	default:
		r.handlers.OnPluginLoadFailed(path, fmt.Errorf("symbol %s has unexpected type %T", symbolName, sym))
		return
	}

	// register's only failure is a version mismatch, which it has already
	// reported through OnPluginVersionUnsupported.
	_ = r.register(path, p)
}

// register negotiates p's declared version against the host version and,
// on success, runs its registration hooks and marks key loaded.
func (r *Registry) register(key string, p Provider) error {
	m := p.Manifest()
	if !negotiate(r.hostVersion, m.Version, m.MajorOnly) {
		msg := fmt.Sprintf("plug-in %q requires API %s, host provides %s", m.Name, m.Version, r.hostVersion)
		r.handlers.OnPluginVersionUnsupported(msg)
		return errs.Wrap(errs.PluginLoad, -1, "plugin", m.Name, fmt.Errorf("%s", msg))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	p.RegisterTREs(r.tres)
	p.RegisterCodecs(r.codecs)
	r.loaded[key] = true
	return nil
}

// negotiate reports whether a plug-in declaring pv (with majorOnly opt-in)
// is compatible with a host at hv: exact (major, minor) match by default,
// major-only when the plug-in opts in.
func negotiate(hv, pv Version, majorOnly bool) bool {
	if hv.Major != pv.Major {
		return false
	}
	return majorOnly || hv.Minor == pv.Minor
}
