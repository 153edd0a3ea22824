package host

import (
	"github.com/rs/zerolog"

	"github.com/iov-one/aexnft/errors"
	"github.com/iov-one/aexnft/nft"
	"github.com/iov-one/aexnft/orm"
	"github.com/iov-one/aexnft/store"
)

// Host is a minimal in-process execution environment for NFT contracts. It
// owns the shared state store, assigns contract accounts at deployment, and
// runs every entry point inside a cache wrap so a failing call leaves no
// observable effect.
//
// A host serializes calls by construction: it is driven by one goroutine at
// a time, matching the transactional runtime the contract core assumes.
type Host struct {
	db     store.CacheableKVStore
	logger zerolog.Logger

	accounts  orm.Sequence
	contracts map[string]*nft.Contract
	receivers map[string]nft.Receiver
}

var _ nft.ReceiverResolver = (*Host)(nil)

// New creates a host over the given store.
func New(db store.CacheableKVStore, logger zerolog.Logger) *Host {
	return &Host{
		db:        db,
		logger:    logger,
		accounts:  orm.NewSequence("host", "account"),
		contracts: make(map[string]*nft.Contract),
		receivers: make(map[string]nft.Receiver),
	}
}

// Deploy instantiates a contract, assigns it a fresh contract account and
// registers it with the host. The deployer becomes the contract owner.
func (h *Host) Deploy(opts nft.ContractOpts, deployer nft.Address) (*nft.Contract, error) {
	account, err := h.nextAccount("contract")
	if err != nil {
		return nil, err
	}
	contract, err := nft.NewContract(opts, deployer, account, h)
	if err != nil {
		return nil, err
	}
	h.contracts[string(account)] = contract

	h.logger.Info().
		Str("name", opts.Name).
		Str("symbol", opts.Symbol).
		Str("account", account.String()).
		Str("deployer", deployer.String()).
		Strs("extensions", contract.Extensions()).
		Msg("contract deployed")
	return contract, nil
}

// BindReceiver registers a receiver contract and returns its fresh contract
// account. Safe transfers to that account are routed to the receiver.
func (h *Host) BindReceiver(r nft.Receiver) (nft.Address, error) {
	account, err := h.nextAccount("receiver")
	if err != nil {
		return nil, err
	}
	h.receivers[string(account)] = r
	return account, nil
}

// Receiver implements nft.ReceiverResolver. An address is a contract account
// if anything was deployed there; only bound receivers expose a callback.
func (h *Host) Receiver(addr nft.Address) (nft.Receiver, bool) {
	if r, ok := h.receivers[string(addr)]; ok {
		return r, true
	}
	if _, ok := h.contracts[string(addr)]; ok {
		// a contract account without an acceptance entry point
		return nil, true
	}
	return nil, false
}

// Run executes one entry point atomically. The closure receives the staged
// store; on success its writes are flushed to the host store and the
// emitted events are returned, on failure everything is discarded.
func (h *Host) Run(entry string, caller nft.Address, fn func(db store.CacheableKVStore) ([]nft.Event, error)) ([]nft.Event, error) {
	cache := h.db.CacheWrap()

	events, err := fn(cache)
	if err != nil {
		cache.Discard()
		h.logger.Info().
			Str("entry", entry).
			Str("caller", caller.String()).
			Err(err).
			Msg("call aborted")
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "commit")
	}

	names := make([]string, len(events))
	for i, ev := range events {
		names[i] = ev.EventName()
	}
	h.logger.Info().
		Str("entry", entry).
		Str("caller", caller.String()).
		Strs("events", names).
		Msg("call committed")
	return events, nil
}

// nextAccount derives a deterministic fresh account address.
func (h *Host) nextAccount(kind string) (nft.Address, error) {
	seq, err := h.accounts.NextVal(h.db)
	if err != nil {
		return nil, err
	}
	return nft.NewCondition("host", kind, seq).Address(), nil
}
