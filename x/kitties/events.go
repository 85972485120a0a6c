package kitties

import (
	"github.com/iov-one/kitties/weave"
	"github.com/tendermint/tendermint/libs/common"
)

// Tag keys set on the result of every successful delivery.
const (
	TagEvent = "kitties.event"
	TagDNA   = "kitties.dna"
	TagOwner = "kitties.owner"
	TagFrom  = "kitties.from"
	TagTo    = "kitties.to"
)

// CreatedEvent is emitted when a new kitty is minted.
type CreatedEvent struct {
	DNA   []byte
	Owner weave.Address
	// Count is the number of kitties after this one was created.
	Count uint64
}

// Tags returns the tendermint tags describing this event.
func (e *CreatedEvent) Tags() []common.KVPair {
	return []common.KVPair{
		tag(TagEvent, "created"),
		tag(TagDNA, weave.HexBytes(e.DNA).String()),
		tag(TagOwner, e.Owner.String()),
	}
}

// TransferredEvent is emitted when a kitty changes owner.
type TransferredEvent struct {
	From weave.Address
	To   weave.Address
	DNA  []byte
}

// Tags returns the tendermint tags describing this event.
func (e *TransferredEvent) Tags() []common.KVPair {
	return []common.KVPair{
		tag(TagEvent, "transferred"),
		tag(TagDNA, weave.HexBytes(e.DNA).String()),
		tag(TagFrom, e.From.String()),
		tag(TagTo, e.To.String()),
	}
}

func tag(key, value string) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: []byte(value)}
}

// EventSink is notified about every operation the Controller completes or
// rejects. Notifications are sent synchronously and must not block.
type EventSink interface {
	Created(*CreatedEvent)
	Transferred(*TransferredEvent)
	Rejected(op string, err error)
	// Supply reports the number of kitties in existence.
	Supply(count uint64)
}

// Operation names passed to EventSink.Rejected.
const (
	OpMint     = "mint"
	OpTransfer = "transfer"
)

// NopSink ignores all events.
type NopSink struct{}

var _ EventSink = NopSink{}

func (NopSink) Created(*CreatedEvent)         {}
func (NopSink) Transferred(*TransferredEvent) {}
func (NopSink) Rejected(string, error)        {}
func (NopSink) Supply(uint64)                 {}

// Sinks fans out events to all given sinks in order.
type Sinks []EventSink

var _ EventSink = Sinks(nil)

func (s Sinks) Created(e *CreatedEvent) {
	for _, sink := range s {
		sink.Created(e)
	}
}

func (s Sinks) Transferred(e *TransferredEvent) {
	for _, sink := range s {
		sink.Transferred(e)
	}
}

func (s Sinks) Rejected(op string, err error) {
	for _, sink := range s {
		sink.Rejected(op, err)
	}
}

func (s Sinks) Supply(count uint64) {
	for _, sink := range s {
		sink.Supply(count)
	}
}
