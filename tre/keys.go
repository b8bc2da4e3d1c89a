package tre

import (
	"fmt"
	"strconv"
	"strings"
)

// loopKey builds the internal "BASE[i]" form of an array-indexed key.
func loopKey(base string, index int) string {
	return fmt.Sprintf("%s[%d]", base, index)
}

// RewriteKey converts a single internal "BASE[i]" key into the "BASE_i" form
// expected by clients that cannot handle brackets. Keys with no bracket
// suffix are returned unchanged. The rewrite is applied only at iteration
// boundaries; instances keep the original bracketed form internally so that
// on-disk round-tripping never depends on the rewritten spelling.
func RewriteKey(key string) string {
	open := strings.IndexByte(key, '[')
	if open < 0 || !strings.HasSuffix(key, "]") {
		return key
	}
	base := key[:open]
	idxStr := key[open+1 : len(key)-1]
	if _, err := strconv.Atoi(idxStr); err != nil {
		return key
	}
	return base + "_" + idxStr
}

// RewrittenKeys returns every instantiated key of t, rewritten from "BASE[i]"
// to "BASE_i" form.
func (t *Instance) RewrittenKeys() []string {
	keys := t.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = RewriteKey(k)
	}
	return out
}

// GetRewritten returns the internal key whose rewritten "BASE_i" (or plain)
// form is rewrittenKey, and whether one was found.
func (t *Instance) GetRewritten(rewrittenKey string) (string, bool) {
	for _, k := range t.Keys() {
		if RewriteKey(k) == rewrittenKey {
			return k, true
		}
	}
	return "", false
}
