package kitties

import (
	"testing"

	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/weave"
	"github.com/iov-one/kitties/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/common"
)

type handlers map[string]weave.Handler

func (h handlers) Handle(path string, handler weave.Handler) {
	h[path] = handler
}

func TestCreateHandler(t *testing.T) {
	alice := weavetest.NewAddress()

	cases := map[string]struct {
		auth       *weavetest.Auth
		tx         weave.Tx
		wantErr    *errors.Error
		wantTags   bool
		wantCount  uint64
		preloadFor weave.Address
	}{
		"success": {
			auth:      &weavetest.Auth{Signer: alice},
			tx:        &weavetest.Tx{Msg: &CreateMsg{}},
			wantTags:  true,
			wantCount: 1,
		},
		"no caller": {
			auth:    &weavetest.Auth{},
			tx:      &weavetest.Tx{Msg: &CreateMsg{}},
			wantErr: errors.ErrUnauthorized,
		},
		"wrong message": {
			auth:    &weavetest.Auth{Signer: alice},
			tx:      &weavetest.Tx{Msg: &TransferMsg{}},
			wantErr: errors.ErrType,
		},
		"caller at the limit": {
			auth:       &weavetest.Auth{Signer: alice},
			tx:         &weavetest.Tx{Msg: &CreateMsg{}},
			preloadFor: alice,
			wantErr:    ErrTooManyOwned,
			wantCount:  2,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := newStore(t, 2)
			ctrl := NewController(NewDNAGenerator(), nil, nil)
			if tc.preloadFor != nil {
				for _, dna := range [][]byte{{1}, {2}} {
					_, err := ctrl.Mint(blockCtx(1, 0), db, tc.preloadFor, dna, Female, FixedClock(genesisTime))
					require.NoError(t, err)
				}
			}
			r := make(handlers)
			RegisterRoutes(r, tc.auth, ctrl)
			h := r[PathCreateMsg]
			ctx := blockCtx(2, 0)

			// Checking does not need the controller.
			if tc.preloadFor == nil {
				_, err := h.Check(ctx, db, tc.tx)
				if !tc.wantErr.Is(err) {
					t.Fatalf("unexpected check error: %+v", err)
				}
			}

			res, err := h.Deliver(ctx, db, tc.tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
			if tc.wantTags {
				require.NotEmpty(t, res.Data)
				assert.Equal(t, []common.KVPair{
					tag(TagEvent, "created"),
					tag(TagDNA, weave.HexBytes(res.Data).String()),
					tag(TagOwner, alice.String()),
				}, res.Tags)
				kitty, err := ctrl.Kitty(db, res.Data)
				require.NoError(t, err)
				assert.Equal(t, alice, kitty.Owner)
			}
			count, err := ctrl.Count(db)
			require.NoError(t, err)
			assert.Equal(t, tc.wantCount, count)
		})
	}
}

func TestTransferHandler(t *testing.T) {
	alice := weavetest.NewAddress()
	bob := weavetest.NewAddress()
	dna := []byte("kitty")

	cases := map[string]struct {
		auth      *weavetest.Auth
		msg       weave.Msg
		wantErr   *errors.Error
		wantCheck *errors.Error
		wantOwner weave.Address
	}{
		"success": {
			auth:      &weavetest.Auth{Signer: alice},
			msg:       &TransferMsg{DNA: dna, Destination: bob},
			wantOwner: bob,
		},
		"not the owner": {
			auth:      &weavetest.Auth{Signer: bob},
			msg:       &TransferMsg{DNA: dna, Destination: bob},
			wantErr:   ErrNotOwner,
			wantCheck: ErrNotOwner,
			wantOwner: alice,
		},
		"unknown kitty": {
			auth:      &weavetest.Auth{Signer: alice},
			msg:       &TransferMsg{DNA: []byte("other"), Destination: bob},
			wantErr:   ErrNoSuchToken,
			wantCheck: ErrNoSuchToken,
			wantOwner: alice,
		},
		"to self": {
			auth:      &weavetest.Auth{Signer: alice},
			msg:       &TransferMsg{DNA: dna, Destination: alice},
			wantErr:   ErrTransferToSelf,
			wantOwner: alice,
		},
		"invalid message": {
			auth:      &weavetest.Auth{Signer: alice},
			msg:       &TransferMsg{DNA: dna},
			wantErr:   errors.ErrEmpty,
			wantCheck: errors.ErrEmpty,
			wantOwner: alice,
		},
		"no caller": {
			auth:      &weavetest.Auth{},
			msg:       &TransferMsg{DNA: dna, Destination: bob},
			wantErr:   errors.ErrUnauthorized,
			wantCheck: errors.ErrUnauthorized,
			wantOwner: alice,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := newStore(t, 2)
			ctrl := NewController(NewDNAGenerator(), nil, nil)
			_, err := ctrl.Mint(blockCtx(1, 0), db, alice, dna, GenderOf(dna), FixedClock(genesisTime))
			require.NoError(t, err)

			r := make(handlers)
			RegisterRoutes(r, tc.auth, ctrl)
			h := r[PathTransferMsg]
			tx := &weavetest.Tx{Msg: tc.msg}
			ctx := blockCtx(2, 0)

			_, err = h.Check(ctx, db, tx)
			if !tc.wantCheck.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			res, err := h.Deliver(ctx, db, tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, []common.KVPair{
					tag(TagEvent, "transferred"),
					tag(TagDNA, weave.HexBytes(dna).String()),
					tag(TagFrom, alice.String()),
					tag(TagTo, bob.String()),
				}, res.Tags)
			}

			kitty, err := ctrl.Kitty(db, dna)
			require.NoError(t, err)
			assert.Equal(t, tc.wantOwner, kitty.Owner)
		})
	}
}

func TestQueries(t *testing.T) {
	alice := weavetest.NewAddress()
	db := newStore(t, 2)
	ctrl := NewController(NewDNAGenerator(), nil, nil)
	qr := weave.NewQueryRouter()
	RegisterQuery(qr)

	count, err := qr.Handler("/kitties/count").Query(db, "", nil)
	require.NoError(t, err)
	require.Len(t, count, 1)
	assert.Equal(t, make([]byte, 8), count[0].Value)

	for _, dna := range [][]byte{{0xab, 1}, {0xab, 2}} {
		_, err := ctrl.Mint(blockCtx(1, 0), db, alice, dna, GenderOf(dna), FixedClock(genesisTime))
		require.NoError(t, err)
	}

	one, err := qr.Handler("/kitties").Query(db, weave.KeyQueryMod, []byte{0xab, 1})
	require.NoError(t, err)
	require.Len(t, one, 1)
	var kitty Kitty
	require.NoError(t, kitty.Unmarshal(one[0].Value))
	assert.Equal(t, alice, kitty.Owner)

	all, err := qr.Handler("/kitties").Query(db, weave.PrefixQueryMod, []byte{0xab})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	owned, err := qr.Handler("/kitties/owned").Query(db, weave.KeyQueryMod, alice)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	var list OwnedKitties
	require.NoError(t, list.Unmarshal(owned[0].Value))
	assert.Len(t, list.DNAs, 2)

	count, err = qr.Handler("/kitties/count").Query(db, "", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 2}, count[0].Value)

	_, err = qr.Handler("/kitties/count").Query(db, weave.PrefixQueryMod, nil)
	assert.True(t, errors.ErrInput.Is(err))
}
