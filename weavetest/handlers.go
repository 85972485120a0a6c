package weavetest

import "github.com/iov-one/kitties/weave"

// calls counts the invocations of a mock, whatever their outcome.
type calls struct {
	checks   int
	delivers int
}

func (c *calls) CallCount() int {
	return c.checks + c.delivers
}

func (c *calls) DeliverCallCount() int {
	return c.delivers
}

// Handler is a weave.Handler returning the configured results. When set,
// Panic is raised on every call and WriteKey is stored before returning,
// even with an error.
type Handler struct {
	calls

	CheckResult   weave.CheckResult
	CheckErr      error
	DeliverResult weave.DeliverResult
	DeliverErr    error

	WriteKey   []byte
	WriteValue []byte
	Panic      interface{}
}

var _ weave.Handler = (*Handler)(nil)

func (h *Handler) Check(_ weave.Context, db weave.KVStore, _ weave.Tx) (*weave.CheckResult, error) {
	h.checks++
	if err := h.run(db); err != nil {
		return nil, err
	}
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(_ weave.Context, db weave.KVStore, _ weave.Tx) (*weave.DeliverResult, error) {
	h.delivers++
	if err := h.run(db); err != nil {
		return nil, err
	}
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) run(db weave.KVStore) error {
	if h.Panic != nil {
		panic(h.Panic)
	}
	if h.WriteKey == nil {
		return nil
	}
	return db.Set(h.WriteKey, h.WriteValue)
}

// Decorator passes calls to the next handler unless CheckErr or DeliverErr
// is set, in which case it returns that error instead.
type Decorator struct {
	calls

	CheckErr   error
	DeliverErr error
}

var _ weave.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	d.checks++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	d.delivers++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate returns h wrapped by d.
func Decorate(h weave.Handler, d weave.Decorator) weave.Handler {
	return decorated{handler: h, decorator: d}
}

type decorated struct {
	handler   weave.Handler
	decorator weave.Decorator
}

func (d decorated) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.handler)
}

func (d decorated) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.handler)
}
