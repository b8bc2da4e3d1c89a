package imageio

import (
	"fmt"

	"github.com/ngageoint/six-library-sub016/errs"
	"github.com/ngageoint/six-library-sub016/record"
)

// Codec decodes/encodes one block's bytes under a particular compression
// code. NC/NM are handled natively (raw passthrough); every other code
// (C1/M1, C3/M3, C4, C5/M5, C7, C8, I1) requires a plug-in-registered codec,
// per spec.md's plug-in-boundary design note -- this engine never bundles
// JPEG/JPEG2000/bi-level/VQ codecs itself.
type Codec interface {
	Decode(compressed []byte, g Grid) ([]byte, error)
	Encode(raw []byte, g Grid) ([]byte, error)
}

type passthroughCodec struct{}

func (passthroughCodec) Decode(compressed []byte, g Grid) ([]byte, error) { return compressed, nil }
func (passthroughCodec) Encode(raw []byte, g Grid) ([]byte, error)        { return raw, nil }

// CodecRegistry maps a Compression code to its Codec. NC/NM are seeded by
// NewCodecRegistry; every other code must be registered by a plug-in before
// a segment using it can be decoded.
type CodecRegistry struct {
	codecs map[record.Compression]Codec
}

// NewCodecRegistry returns a registry seeded with the native NC/NM passthrough codec.
func NewCodecRegistry() *CodecRegistry {
	r := &CodecRegistry{codecs: map[record.Compression]Codec{}}
	r.codecs[record.CompNone] = passthroughCodec{}
	r.codecs[record.CompNoneMasked] = passthroughCodec{}
	return r
}

// Register adds or replaces the codec for a compression code.
func (r *CodecRegistry) Register(c record.Compression, codec Codec) {
	r.codecs[c] = codec
}

// Get returns the codec for c, or errs.UnsupportedCompression if none is registered.
func (r *CodecRegistry) Get(c record.Compression) (Codec, error) {
	codec, ok := r.codecs[c]
	if !ok {
		return nil, errs.Wrap(errs.UnsupportedCompression, -1, "image", string(c), fmt.Errorf("no codec registered for compression code %q", c))
	}
	return codec, nil
}
