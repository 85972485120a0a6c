package kitties

import (
	"github.com/iov-one/kitties/errors"
	"github.com/iov-one/kitties/orm"
	"github.com/iov-one/kitties/weave"
	"github.com/iov-one/kitties/x"
)

const (
	createKittyCost   = 100
	transferKittyCost = 50
)

// RegisterQuery registers the kitty, ownership and counter queries under
// /kitties.
func RegisterQuery(qr weave.QueryRouter) {
	NewKittyBucket().Register("kitties", qr)
	NewOwnedBucket().Register("kitties/owned", qr)
	qr.Register("/kitties/count", countQuery{counter: NewCounter()})
}

// RegisterRoutes registers handlers for both kitties messages.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, ctrl *Controller) {
	r.Handle(PathCreateMsg, &createHandler{auth: auth, ctrl: ctrl})
	r.Handle(PathTransferMsg, &transferHandler{auth: auth, ctrl: ctrl})
}

type createHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weave.Handler = (*createHandler)(nil)

func (h *createHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: createKittyCost}, nil
}

func (h *createHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	dna, event, err := h.ctrl.Create(ctx, db, caller)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: dna, Tags: event.Tags()}, nil
}

// validate returns the authenticated caller.
func (h *createHandler) validate(ctx weave.Context, tx weave.Tx) (weave.Address, error) {
	var msg CreateMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	caller := x.MainSigner(ctx, h.auth)
	if caller == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no caller")
	}
	return caller, nil
}

type transferHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weave.Handler = (*transferHandler)(nil)

func (h *transferHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	msg, caller, err := h.load(ctx, tx)
	if err != nil {
		return nil, err
	}
	kitty, err := h.ctrl.Kitty(db, msg.DNA)
	if err != nil {
		return nil, err
	}
	if !kitty.Owner.Equals(caller) {
		return nil, errors.Wrapf(ErrNotOwner, "kitty %X", msg.DNA)
	}
	return &weave.CheckResult{GasAllocated: transferKittyCost}, nil
}

// Deliver leaves the ownership checks to the controller, so that every
// rejection is reported to its sink.
func (h *transferHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, caller, err := h.load(ctx, tx)
	if err != nil {
		return nil, err
	}
	event, err := h.ctrl.Transfer(ctx, db, caller, msg.Destination, msg.DNA)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Tags: event.Tags()}, nil
}

// load returns the validated message and the authenticated caller.
func (h *transferHandler) load(ctx weave.Context, tx weave.Tx) (*TransferMsg, weave.Address, error) {
	var msg TransferMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller := x.MainSigner(ctx, h.auth)
	if caller == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no caller")
	}
	return &msg, caller, nil
}

// countQuery returns the kitty counter as a single key value pair. The value
// is the big endian encoded uint64.
type countQuery struct {
	counter orm.Counter
}

func (q countQuery) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	if mod != weave.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	key := q.counter.Key()
	value, err := db.Get(key)
	if err != nil {
		return nil, err
	}
	if value == nil {
		value = make([]byte, 8)
	}
	return []weave.Model{weave.Pair(key, value)}, nil
}
