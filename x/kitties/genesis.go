package kitties

import (
	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/gconf"
	"github.com/iov-one/kitties/weave"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct {
	Controller *Controller
}

var _ weave.Initializer = (*Initializer)(nil)

// genesisKitty describes kitties preloaded for an owner. An explicit DNA
// mints exactly one kitty, otherwise Count kitties (at least one) get a
// GenesisDNA.
type genesisKitty struct {
	Owner weave.Address  `json:"owner"`
	DNA   weave.HexBytes `json:"dna"`
	Count uint32         `json:"count"`
}

// FromGenesis stores the configuration and mints the preloaded kitties, with
// the genesis time as their creation time.
func (g *Initializer) FromGenesis(ctx weave.Context, opts weave.Options, db weave.KVStore) error {
	if err := gconf.InitConfig(db, opts, ConfigPkg, &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}

	var preload []genesisKitty
	if err := opts.ReadOptions("kitties", &preload); err != nil {
		return err
	}
	clock := BlockClock(ctx)
	for i, p := range preload {
		if err := p.Owner.Validate(); err != nil {
			return errors.Wrapf(err, "kitty #%d owner", i)
		}
		if len(p.DNA) != 0 {
			if p.Count > 1 {
				return errors.Wrapf(errors.ErrInput, "kitty #%d: count with explicit dna", i)
			}
			if err := g.mint(ctx, db, p.Owner, p.DNA, clock); err != nil {
				return errors.Wrapf(err, "kitty #%d", i)
			}
			continue
		}

		count := p.Count
		if count == 0 {
			count = 1
		}
		for n := uint32(0); n < count; n++ {
			owned, err := g.Controller.OwnedBy(db, p.Owner)
			if err != nil {
				return err
			}
			dna := GenesisDNA(p.Owner, uint32(len(owned)))
			if err := g.mint(ctx, db, p.Owner, dna, clock); err != nil {
				return errors.Wrapf(err, "kitty #%d", i)
			}
		}
	}
	return nil
}

func (g *Initializer) mint(ctx weave.Context, db weave.KVStore, owner weave.Address, dna []byte, clock Clock) error {
	_, err := g.Controller.Mint(ctx, db, owner, dna, g.Controller.gender(dna), clock)
	return err
}
