package kitties

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/weave"
	"github.com/iov-one/kitties/weavetest"
	. "github.com/smartystreets/goconvey/convey"
)

// countingRandomness wraps a source and counts how often it is queried.
type countingRandomness struct {
	Randomness
	calls  int
	labels []string
}

func (c *countingRandomness) Random(ctx weave.Context, label string) ([]byte, error) {
	c.calls++
	c.labels = append(c.labels, label)
	return c.Randomness.Random(ctx, label)
}

func TestDNAGenerator(t *testing.T) {
	Convey("Given a generator with fixed randomness", t, func() {
		random := &countingRandomness{Randomness: FixedRandomness{0xaa, 0xbb}}
		gen := DNAGenerator{Randomness: random}

		Convey("DNA combines randomness, tx index and height", func() {
			dna, err := gen.Generate(blockCtx(0x0102, 7))
			So(err, ShouldBeNil)
			So(dna, ShouldHaveLength, 2+4+8)
			So(dna[:2], ShouldResemble, []byte{0xaa, 0xbb})
			So(binary.LittleEndian.Uint32(dna[2:6]), ShouldEqual, 7)
			So(binary.LittleEndian.Uint64(dna[6:]), ShouldEqual, 0x0102)

			Convey("Randomness is queried once with the dna label", func() {
				So(random.calls, ShouldEqual, 1)
				So(random.labels, ShouldResemble, []string{"dna"})
			})
		})

		Convey("Different transactions get different DNA", func() {
			a, err := gen.Generate(blockCtx(1, 0))
			So(err, ShouldBeNil)
			b, err := gen.Generate(blockCtx(1, 1))
			So(err, ShouldBeNil)
			c, err := gen.Generate(blockCtx(2, 0))
			So(err, ShouldBeNil)
			So(a, ShouldNotResemble, b)
			So(a, ShouldNotResemble, c)
		})

		Convey("Height is required", func() {
			ctx := weave.WithTxIndex(context.Background(), 1)
			_, err := gen.Generate(ctx)
			So(errors.ErrHuman.Is(err), ShouldBeTrue)
			So(random.calls, ShouldEqual, 0)
		})

		Convey("Tx index is required", func() {
			ctx := weave.WithHeight(context.Background(), 1)
			_, err := gen.Generate(ctx)
			So(errors.ErrHuman.Is(err), ShouldBeTrue)
		})
	})

	Convey("Given the block randomness", t, func() {
		var random BlockRandomness

		Convey("The same block gives the same bytes", func() {
			a, err := random.Random(blockCtx(4, 0), "dna")
			So(err, ShouldBeNil)
			b, err := random.Random(blockCtx(4, 3), "dna")
			So(err, ShouldBeNil)
			So(a, ShouldHaveLength, 32)
			So(a, ShouldResemble, b)
		})

		Convey("Label and block change the result", func() {
			a, _ := random.Random(blockCtx(4, 0), "dna")
			b, _ := random.Random(blockCtx(4, 0), "other")
			c, _ := random.Random(blockCtx(5, 0), "dna")
			So(a, ShouldNotResemble, b)
			So(a, ShouldNotResemble, c)
		})

		Convey("A header is required", func() {
			_, err := random.Random(context.Background(), "dna")
			So(errors.ErrHuman.Is(err), ShouldBeTrue)
		})
	})
}

func TestGender(t *testing.T) {
	Convey("Gender follows the DNA length parity", t, func() {
		So(GenderOf(nil), ShouldEqual, Male)
		So(GenderOf([]byte{1}), ShouldEqual, Female)
		So(GenderOf([]byte{1, 2}), ShouldEqual, Male)
		So(GenderOf(make([]byte, 45)), ShouldEqual, Female)

		Convey("Only two values are valid", func() {
			So(Male.Validate(), ShouldBeNil)
			So(Female.Validate(), ShouldBeNil)
			So(errors.ErrInput.Is(Gender(2).Validate()), ShouldBeTrue)
			So(Female.String(), ShouldEqual, "female")
		})
	})

	Convey("A custom policy decides the gender of created kitties", t, func() {
		alwaysFemale := func([]byte) Gender { return Female }
		ctrl := NewController(NewDNAGenerator(), alwaysFemale, nil)
		db := newStore(t, 2)

		dna, _, err := ctrl.Create(blockCtx(1, 0), db, weavetest.NewAddress())
		So(err, ShouldBeNil)
		So(GenderOf(dna), ShouldEqual, Male)
		kitty, err := ctrl.Kitty(db, dna)
		So(err, ShouldBeNil)
		So(kitty.Gender, ShouldEqual, Female)
	})
}

func TestGenesisDNA(t *testing.T) {
	Convey("Genesis DNA is deterministic per owner and position", t, func() {
		alice := weavetest.NewAddress()
		bob := weavetest.NewAddress()

		So(GenesisDNA(alice, 0), ShouldHaveLength, 16)
		So(GenesisDNA(alice, 0), ShouldResemble, GenesisDNA(alice, 0))
		So(GenesisDNA(alice, 0), ShouldNotResemble, GenesisDNA(alice, 1))
		So(GenesisDNA(alice, 0), ShouldNotResemble, GenesisDNA(bob, 0))
	})
}
