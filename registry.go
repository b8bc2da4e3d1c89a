package nitf

import "github.com/ngageoint/six-library-sub016/tre"

// DefaultRegistry returns a TRE registry seeded with every built-in
// descriptor shipped with this module. Callers that need plug-in-contributed
// descriptors should build their own Registry via tre.NewRegistry, call
// tre.RegisterBuiltins, load plug-ins into it (see package plugin), and pass
// it through ParseOptions/WriteOptions instead of relying on this default.
func DefaultRegistry() *tre.Registry {
	r := tre.NewRegistry()
	tre.RegisterBuiltins(r)
	return r
}
