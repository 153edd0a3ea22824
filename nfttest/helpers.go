// Package nfttest provides test doubles for exercising NFT contracts:
// deterministic account addresses, receiver callbacks with scripted
// behavior, and a standalone receiver resolver.
package nfttest

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/iov-one/aexnft/nft"
)

var accountCounter int64

// NewAddress returns a new unique address. Generated addresses are
// deterministic within a process run, which keeps test failures
// reproducible.
func NewAddress() nft.Address {
	n := atomic.AddInt64(&accountCounter, 1)
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(n))
	return nft.NewCondition("nfttest", "seed", raw).Address()
}

// ReceiverCall records one safe transfer handshake observed by a Receiver.
type ReceiverCall struct {
	From    nft.Address
	TokenID nft.TokenID
	Data    []byte
}

// Receiver is a configurable nft.Receiver double. The zero value declines
// every token.
type Receiver struct {
	// Accept is the value returned from the callback.
	Accept bool
	// Err, when set, is returned from the callback.
	Err error
	// Calls collects every handshake in order.
	Calls []ReceiverCall
}

var _ nft.Receiver = (*Receiver)(nil)

// OnTokenReceived implements nft.Receiver.
func (r *Receiver) OnTokenReceived(from nft.Address, id nft.TokenID, data []byte) (bool, error) {
	r.Calls = append(r.Calls, ReceiverCall{From: from, TokenID: id, Data: data})
	return r.Accept, r.Err
}

// Resolver is an in-memory nft.ReceiverResolver for tests that do not want
// a full host. Addresses registered with a nil receiver count as contract
// accounts without an acceptance entry point.
type Resolver struct {
	receivers map[string]nft.Receiver
}

var _ nft.ReceiverResolver = (*Resolver)(nil)

// NewResolver returns an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{receivers: make(map[string]nft.Receiver)}
}

// Register binds a receiver to an address and returns the resolver for
// chaining.
func (r *Resolver) Register(addr nft.Address, receiver nft.Receiver) *Resolver {
	r.receivers[string(addr)] = receiver
	return r
}

// Receiver implements nft.ReceiverResolver.
func (r *Resolver) Receiver(addr nft.Address) (nft.Receiver, bool) {
	receiver, ok := r.receivers[string(addr)]
	return receiver, ok
}
