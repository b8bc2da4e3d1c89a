package nitf

import (
	"fmt"

	"github.com/ngageoint/six-library-sub016/errs"
	"github.com/ngageoint/six-library-sub016/ioif"
	"github.com/ngageoint/six-library-sub016/record"
)

// DetectVersion reads the file's 9-byte magic and dispatches to the
// corresponding field-width table. Files that are neither NITF 2.0, 2.1, nor
// NSIF 1.0 are reported as errs.NotNITF.
func DetectVersion(h ioif.Handle) (record.Version, error) {
	buf := make([]byte, 9)
	if err := ioif.ReadFull(h, buf); err != nil {
		return 0, errs.Wrap(errs.NotNITF, 0, "", "", err)
	}

	magic := string(buf)
	switch magic {
	case "NITF02.00":
		return record.Version20, nil
	case "NITF02.10":
		return record.Version21, nil
	case "NSIF01.00":
		return record.VersionNSIF, nil
	default:
		return 0, errs.Wrap(errs.NotNITF, 0, "", "", fmt.Errorf("unrecognized magic %q", magic))
	}
}

// magicString returns the 9-byte magic for a version, the inverse of DetectVersion.
func magicString(v record.Version) string {
	switch v {
	case record.Version20:
		return "NITF02.00"
	case record.VersionNSIF:
		return "NSIF01.00"
	default:
		return "NITF02.10"
	}
}
