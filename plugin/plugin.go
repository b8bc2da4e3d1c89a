// Package plugin defines the host-side contract for TRE descriptor and
// compression-codec providers loaded from outside the record engine: a
// version-checked Provider interface, and an ErrorHandler that lets the host
// observe load failures without the loader ever aborting on one.
package plugin

import (
	"fmt"
	"log"

	"github.com/ngageoint/six-library-sub016/imageio"
	"github.com/ngageoint/six-library-sub016/tre"
)

// Version is a plug-in's declared (API-major, API-minor) pair.
type Version struct {
	Major int
	Minor int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Manifest describes one provider's identity and capabilities.
type Manifest struct {
	Name    string
	Version Version
	// MajorOnly opts the plug-in into major-only version matching against
	// the host; by default the host requires an exact (major, minor) match.
	MajorOnly  bool
	Operations []string
}

// Provider is what a plug-in contributes to the host: a manifest for
// version negotiation, and registration hooks for TRE descriptors and
// compression codecs. RegisterTREs/RegisterCodecs are called at most once,
// after version negotiation has already succeeded. Either hook may be a
// no-op if the plug-in only contributes the other kind.
type Provider interface {
	Manifest() Manifest
	RegisterTREs(r *tre.Registry)
	RegisterCodecs(r *imageio.CodecRegistry)
}

// ErrorHandler observes plug-in load failures. The loader calls exactly one
// hook per plug-in it cannot use, then moves on to the next; it never
// aborts the host.
type ErrorHandler interface {
	OnPluginDirectoryNotFound(dir string)
	OnPluginLoadedAlready(path string)
	OnPluginLoadFailed(path string, err error)
	OnPluginVersionUnsupported(message string)
	OnPluginError(err error)
}

// DefaultErrorHandler logs each hook through a *log.Logger, defaulting to
// log.Default() when Logger is nil.
type DefaultErrorHandler struct {
	Logger *log.Logger
}

func (h *DefaultErrorHandler) logger() *log.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return log.Default()
}

func (h *DefaultErrorHandler) OnPluginDirectoryNotFound(dir string) {
	h.logger().Printf("plugin: directory not found: %s", dir)
}

func (h *DefaultErrorHandler) OnPluginLoadedAlready(path string) {
	h.logger().Printf("plugin: already loaded: %s", path)
}

func (h *DefaultErrorHandler) OnPluginLoadFailed(path string, err error) {
	h.logger().Printf("plugin: load failed for %s: %v", path, err)
}

func (h *DefaultErrorHandler) OnPluginVersionUnsupported(message string) {
	h.logger().Printf("plugin: version unsupported: %s", message)
}

func (h *DefaultErrorHandler) OnPluginError(err error) {
	h.logger().Printf("plugin: runtime error: %v", err)
}
