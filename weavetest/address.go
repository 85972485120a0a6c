package weavetest

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/iov-one/kitties/weave"
)

var addressSeq uint64

// NewAddress returns a new address. Each call returns a different address.
func NewAddress() weave.Address {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, atomic.AddUint64(&addressSeq, 1))
	return weave.NewAddress(append([]byte("weavetest/"), raw...))
}

// ParseAddress takes a weave address in a human readable format and returns
// its binary representation. This function is a test helper that is using
// weave.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) weave.Address {
	t.Helper()

	addr, err := weave.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
