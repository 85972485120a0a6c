package kitties

import (
	"encoding/binary"

	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/weave"
	"golang.org/x/crypto/blake2b"
)

// dnaLabel separates the randomness used for DNA from any other use of the
// same source.
const dnaLabel = "dna"

// Randomness is a source of unpredictable but deterministic bytes. The same
// label and block state must always produce the same result.
type Randomness interface {
	Random(ctx weave.Context, label string) ([]byte, error)
}

// BlockRandomness derives randomness from the block header found in the
// context, as blake2b-256(label || last block hash || app hash || height).
type BlockRandomness struct{}

var _ Randomness = BlockRandomness{}

func (BlockRandomness) Random(ctx weave.Context, label string) ([]byte, error) {
	header, ok := weave.GetHeader(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "block header not present in the context")
	}
	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	var height [8]byte
	binary.BigEndian.PutUint64(height[:], uint64(header.Height))

	h.Write([]byte(label))
	h.Write(header.LastBlockId.Hash)
	h.Write(header.AppHash)
	h.Write(height[:])
	return h.Sum(nil), nil
}

// FixedRandomness always returns the same bytes, regardless of the label.
type FixedRandomness []byte

var _ Randomness = FixedRandomness(nil)

func (f FixedRandomness) Random(weave.Context, string) ([]byte, error) {
	return append([]byte(nil), f...), nil
}

// DNAGenerator builds the DNA of new kitties. A generated DNA is not
// guaranteed to be unique, the Controller rejects duplicates.
type DNAGenerator struct {
	Randomness Randomness
}

// NewDNAGenerator returns a generator using the block randomness.
func NewDNAGenerator() DNAGenerator {
	return DNAGenerator{Randomness: BlockRandomness{}}
}

// Generate returns random || uint32_le(tx index) || uint64_le(height). The
// randomness source is queried once.
func (g DNAGenerator) Generate(ctx weave.Context) ([]byte, error) {
	height, ok := weave.GetHeight(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "block height not present in the context")
	}
	index, ok := weave.GetTxIndex(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "tx index not present in the context")
	}
	random, err := g.Randomness.Random(ctx, dnaLabel)
	if err != nil {
		return nil, errors.Wrap(err, "randomness")
	}

	dna := make([]byte, len(random)+4+8)
	n := copy(dna, random)
	binary.LittleEndian.PutUint32(dna[n:], index)
	binary.LittleEndian.PutUint64(dna[n+4:], uint64(height))
	return dna, nil
}

// GenderPolicy derives the gender of a kitty from its DNA. It must be a pure
// function, the result is stored once and never recomputed.
type GenderPolicy func(dna []byte) Gender

// GenderOf returns Female for a DNA of odd length and Male otherwise.
func GenderOf(dna []byte) Gender {
	if len(dna)%2 != 0 {
		return Female
	}
	return Male
}

// GenesisDNA returns the DNA of the n-th kitty preloaded for the owner, when
// the genesis file does not provide one. It is blake2b-128(owner ||
// uint32_be(n)).
func GenesisDNA(owner weave.Address, n uint32) []byte {
	h, err := blake2b.New(16, nil)
	if err != nil {
		// Only returned for an invalid size or key.
		panic(err)
	}
	var num [4]byte
	binary.BigEndian.PutUint32(num[:], n)
	h.Write(owner)
	h.Write(num[:])
	return h.Sum(nil)
}
