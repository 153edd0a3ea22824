package nft

import (
	"github.com/iov-one/aexnft/errors"
	"github.com/iov-one/aexnft/store"
)

// Mint creates a new token with the next id from the counter. Only the
// contract owner may mint. The base profile uses DefineToken instead and
// does not implement this entry point.
func (c *Contract) Mint(db store.KVStore, caller, to Address, md Metadata) (TokenID, []Event, error) {
	if c.opts.Profile == ProfileBase {
		return 0, nil, errors.Wrap(ErrNotImplemented, "mint")
	}
	if !caller.Equals(c.owner) {
		return 0, nil, errors.Wrapf(ErrOnlyContractOwner, "caller %s", caller)
	}
	if err := to.Validate(); err != nil {
		return 0, nil, errors.Field("To", err, "")
	}
	if err := md.Validate(); err != nil {
		return 0, nil, errors.Field("Metadata", err, "")
	}

	id, err := c.ids.next(db)
	if err != nil {
		return 0, nil, err
	}
	events, err := c.createToken(db, id, to, md)
	return id, events, err
}

// DefineToken creates a token under a caller-chosen id. Only the base
// profile implements it, and only the contract owner may call it.
// Redefining an id that was already assigned fails with
// ErrTokenAlreadyDefined.
func (c *Contract) DefineToken(db store.KVStore, caller, to Address, md Metadata, id TokenID) ([]Event, error) {
	if c.opts.Profile != ProfileBase {
		return nil, errors.Wrap(ErrNotImplemented, "define_token")
	}
	if !caller.Equals(c.owner) {
		return nil, errors.Wrapf(ErrOnlyContractOwner, "caller %s", caller)
	}
	if err := to.Validate(); err != nil {
		return nil, errors.Field("To", err, "")
	}
	if err := md.Validate(); err != nil {
		return nil, errors.Field("Metadata", err, "")
	}

	// an id is taken once it carries metadata; the base profile never
	// burns, so this covers every assignment ever made
	defined, err := c.metadata.Has(db, id.Bytes())
	if err != nil {
		return nil, err
	}
	if defined {
		return nil, errors.Wrapf(ErrTokenAlreadyDefined, "token %d", id)
	}
	if err := c.ids.reserve(db, id); err != nil {
		return nil, err
	}
	return c.createToken(db, id, to, md)
}

// createToken writes metadata and ownership for a fresh id and emits the
// mint Transfer event. Metadata is assigned atomically with ownership and
// never reassigned afterwards.
func (c *Contract) createToken(db store.KVStore, id TokenID, to Address, md Metadata) ([]Event, error) {
	if err := c.metadata.Save(db, id.Bytes(), md); err != nil {
		return nil, err
	}
	if err := c.ledger.setOwner(db, id, to); err != nil {
		return nil, err
	}
	return []Event{TransferEvent{
		From:    c.account,
		To:      to,
		TokenID: id,
	}}, nil
}

// Transfer reassigns a token from its current owner to another account and
// clears the token's approval. Checks run in fixed order: the token must
// exist, from must be the current owner, and the caller must pass the
// profile's authorization gate.
//
// When data is non-nil the transfer is a safe transfer: if the destination
// is a contract account, its receiver callback must acknowledge acceptance
// before the ownership change is committed. A declined or failing callback
// rolls back the staged ownership change and fails the call with
// ErrSafeTransferFailed. A nil data performs a plain transfer with no
// receiver invocation.
func (c *Contract) Transfer(db store.CacheableKVStore, caller, from, to Address, id TokenID, data []byte) ([]Event, error) {
	owner, err := c.ledger.ownerOf(db, id)
	if err != nil {
		return nil, err
	}
	if !owner.Equals(from) {
		return nil, errors.Wrapf(ErrOnlyOwner, "from %s", from)
	}
	if err := c.authorizeTransfer(db, caller, owner, id); err != nil {
		return nil, err
	}
	if err := to.Validate(); err != nil {
		return nil, errors.Field("To", err, "")
	}

	// stage the ownership change so a declined handshake leaves no trace
	staged := db.CacheWrap()
	if err := c.ledger.setOwner(staged, id, to); err != nil {
		staged.Discard()
		return nil, err
	}
	if err := c.approved.clear(staged, id); err != nil {
		staged.Discard()
		return nil, err
	}

	if data != nil {
		if err := c.handshake(from, to, id, data); err != nil {
			staged.Discard()
			return nil, err
		}
	}

	if err := staged.Write(); err != nil {
		return nil, err
	}
	return []Event{TransferEvent{
		From:    from,
		To:      to,
		TokenID: id,
	}}, nil
}

// authorizeTransfer applies the profile's caller gate for transfer and burn.
func (c *Contract) authorizeTransfer(db store.ReadOnlyKVStore, caller, owner Address, id TokenID) error {
	if c.opts.Profile == ProfileCredential {
		if caller.Equals(c.owner) {
			return nil
		}
		approved, err := c.approved.approved(db, id)
		if err != nil {
			return err
		}
		if caller.Equals(approved) {
			return nil
		}
		return errors.Wrapf(ErrOnlyContractOwnerOrApproved, "caller %s", caller)
	}

	ok, err := canAct(db, c.approved, caller, owner, id)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(ErrOnlyOwnerApprovedOperator, "caller %s", caller)
	}
	return nil
}

// handshake runs the safe transfer callback against the destination. Plain
// accounts accept implicitly; contract accounts must acknowledge through
// their receiver.
func (c *Contract) handshake(from, to Address, id TokenID, data []byte) error {
	if c.receivers == nil {
		return nil
	}
	receiver, isContract := c.receivers.Receiver(to)
	if !isContract {
		return nil
	}
	if receiver == nil {
		return errors.Wrapf(ErrSafeTransferFailed, "no receiver at %s", to)
	}
	ok, err := receiver.OnTokenReceived(from, id, data)
	if err != nil {
		return errors.Wrapf(ErrSafeTransferFailed, "receiver: %v", err)
	}
	if !ok {
		return errors.Wrapf(ErrSafeTransferFailed, "declined by %s", to)
	}
	return nil
}

// Burn destroys a token: ownership, approval and metadata entries are
// removed and the id is never reassigned. Only the mintable/burnable
// profile implements it. The caller must pass the owner/approved/operator
// gate.
func (c *Contract) Burn(db store.KVStore, caller Address, id TokenID) ([]Event, error) {
	if c.opts.Profile != ProfileMintableBurnable {
		return nil, errors.Wrap(ErrNotImplemented, "burn")
	}
	owner, err := c.ledger.ownerOf(db, id)
	if err != nil {
		return nil, err
	}
	ok, err := canAct(db, c.approved, caller, owner, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrapf(ErrOnlyOwnerApprovedOperator, "caller %s", caller)
	}

	if err := c.destroyToken(db, id); err != nil {
		return nil, err
	}
	return []Event{TransferEvent{
		From:    owner,
		To:      c.account,
		TokenID: id,
	}}, nil
}

// Swap surrenders every token currently owned by the caller and credits the
// caller's redemption counter with the number removed. The caller's balance
// is zero afterwards. A caller with no holdings still commits and emits a
// zero count event. Only the swappable profile implements it.
func (c *Contract) Swap(db store.KVStore, caller Address) (uint64, []Event, error) {
	if c.opts.Profile != ProfileSwappable {
		return 0, nil, errors.Wrap(ErrNotImplemented, "swap")
	}

	ids, err := c.ledger.holdingsOf(db, caller)
	if err != nil {
		return 0, nil, err
	}
	for _, id := range ids {
		if err := c.destroyToken(db, id); err != nil {
			return 0, nil, err
		}
	}

	removed := uint64(len(ids))
	if removed > 0 {
		count, err := c.CheckSwap(db, caller)
		if err != nil {
			return 0, nil, err
		}
		if err := c.swapped.Save(db, caller, count+removed); err != nil {
			return 0, nil, err
		}
	}
	return removed, []Event{SwapEvent{
		Owner: caller,
		Count: removed,
	}}, nil
}

// destroyToken removes every trace of a token. Used by burn and swap;
// metadata is erased physically so later reads report not found.
func (c *Contract) destroyToken(db store.KVStore, id TokenID) error {
	if err := c.ledger.removeOwner(db, id); err != nil {
		return err
	}
	if err := c.approved.clear(db, id); err != nil {
		return err
	}
	return c.metadata.Delete(db, id.Bytes())
}
