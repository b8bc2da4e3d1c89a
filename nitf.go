package nitf

import "github.com/ngageoint/six-library-sub016/record"

// Version re-exports record.Version so callers of this package don't need a
// separate import for it.
type Version = record.Version

const (
	Version20  = record.Version20
	Version21  = record.Version21
	VersionNSIF = record.VersionNSIF
)
