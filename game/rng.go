package game

import (
	"math/rand/v2"

	"github.com/vmihailenco/msgpack/v5"
)

// RNG is a seeded PCG generator whose state survives save and restore.
type RNG struct {
	src *rand.PCG
	r   *rand.Rand
}

func NewRNG(seed uint64) *RNG {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &RNG{src: src, r: rand.New(src)}
}

func (g *RNG) Rand() *rand.Rand {
	return g.r
}

func (g *RNG) EncodeMsgpack(enc *msgpack.Encoder) error {
	b, err := g.src.MarshalBinary()
	if err != nil {
		return err
	}
	return enc.EncodeBytes(b)
}

func (g *RNG) DecodeMsgpack(dec *msgpack.Decoder) error {
	b, err := dec.DecodeBytes()
	if err != nil {
		return err
	}
	src := &rand.PCG{}
	if err := src.UnmarshalBinary(b); err != nil {
		return err
	}
	g.src = src
	g.r = rand.New(src)
	return nil
}
