package imageio

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/goburrow/cache"
)

// DefaultBlockCacheSize is the number of decoded blocks kept resident per
// BlockCache, grounded on the teacher's table-cache sizing convention.
const DefaultBlockCacheSize = 4

// blockKey folds a (segment, band, block row, block col) tuple into the
// single uint64 goburrow/cache uses as its Key, so the LoadingCache never
// has to hash or compare a multi-field struct per lookup.
func blockKey(segmentID string, band, row, col int) uint64 {
	var buf [12]byte
	binary.BigEndian.PutUint32(buf[0:4], uint32(band))
	binary.BigEndian.PutUint32(buf[4:8], uint32(row))
	binary.BigEndian.PutUint32(buf[8:12], uint32(col))
	h := xxhash.New()
	h.Write([]byte(segmentID))
	h.Write(buf[:])
	return h.Sum64()
}

// blockAddr is the tuple a folded blockKey stands in for. The cache itself
// only ever sees the uint64; BlockCache keeps addrs so the loader can
// recover what to decode on a miss.
type blockAddr struct {
	segmentID      string
	band, row, col int
}

// BlockCache is an LRU cache of decoded block pixel bytes, keyed by the
// xxhash-folded (segment, band, row, col) tuple. loader decodes a block on
// a cache miss.
type BlockCache struct {
	c      cache.LoadingCache
	loader func(segmentID string, band, row, col int) ([]byte, error)

	mu    sync.Mutex
	addrs map[uint64]blockAddr
}

// NewBlockCache returns a BlockCache of the given capacity (in blocks),
// using loader to decode on miss.
func NewBlockCache(size int, loader func(segmentID string, band, row, col int) ([]byte, error)) *BlockCache {
	if size <= 0 {
		size = DefaultBlockCacheSize
	}
	bc := &BlockCache{loader: loader, addrs: make(map[uint64]blockAddr)}
	bc.c = cache.NewLoadingCache(
		func(key cache.Key) (cache.Value, error) {
			k := key.(uint64)
			bc.mu.Lock()
			addr := bc.addrs[k]
			bc.mu.Unlock()
			return bc.loader(addr.segmentID, addr.band, addr.row, addr.col)
		},
		cache.WithMaximumSize(size),
	)
	return bc
}

// Get returns the decoded bytes for one block, decoding and caching on miss.
func (bc *BlockCache) Get(segmentID string, band, row, col int) ([]byte, error) {
	k := blockKey(segmentID, band, row, col)
	bc.mu.Lock()
	bc.addrs[k] = blockAddr{segmentID, band, row, col}
	bc.mu.Unlock()

	v, err := bc.c.Get(k)
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Invalidate evicts one block from the cache. Writer.WriteBlock does not
// call it.
func (bc *BlockCache) Invalidate(segmentID string, band, row, col int) {
	bc.c.Invalidate(blockKey(segmentID, band, row, col))
}
