package nft

import (
	"github.com/iov-one/aexnft/errors"
	"github.com/iov-one/aexnft/orm"
	"github.com/iov-one/aexnft/store"
)

// ledger maps token ids to their owner and maintains per-account balance
// counters alongside, so balance queries never scan the ownership range.
type ledger struct {
	owners   orm.Bucket
	balances orm.Bucket
}

func newLedger(ns []byte) ledger {
	return ledger{
		owners:   orm.NewBucket("owner").WithNamespace(ns),
		balances: orm.NewBucket("balance").WithNamespace(ns),
	}
}

// ownerOf resolves the current owner. A missing entry means the token was
// never minted or is burned.
func (l ledger) ownerOf(db store.ReadOnlyKVStore, id TokenID) (Address, error) {
	var owner Address
	if err := l.owners.One(db, id.Bytes(), &owner); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(ErrTokenNotFound, "token %d", id)
		}
		return nil, err
	}
	return owner, nil
}

// balanceOf returns how many tokens the account currently owns.
func (l ledger) balanceOf(db store.ReadOnlyKVStore, acct Address) (uint64, error) {
	var balance uint64
	if err := l.balances.One(db, acct, &balance); err != nil {
		if errors.ErrNotFound.Is(err) {
			return 0, nil
		}
		return 0, err
	}
	return balance, nil
}

// setOwner assigns the token to a new owner, adjusting both balance counters
// in the same call. It handles first assignment (mint) as well as
// reassignment (transfer).
func (l ledger) setOwner(db store.KVStore, id TokenID, newOwner Address) error {
	prev, err := l.ownerOf(db, id)
	switch {
	case err == nil:
		if err := l.adjustBalance(db, prev, -1); err != nil {
			return err
		}
	case ErrTokenNotFound.Is(err):
		// fresh mint
	default:
		return err
	}

	if err := l.owners.Save(db, id.Bytes(), newOwner); err != nil {
		return err
	}
	return l.adjustBalance(db, newOwner, +1)
}

// removeOwner deletes the ownership entry and decrements the prior owner's
// balance. The token must exist.
func (l ledger) removeOwner(db store.KVStore, id TokenID) error {
	owner, err := l.ownerOf(db, id)
	if err != nil {
		return err
	}
	if err := l.adjustBalance(db, owner, -1); err != nil {
		return err
	}
	return l.owners.Delete(db, id.Bytes())
}

// holdingsOf returns all token ids owned by the account, ascending. This is
// a full scan of the ownership range and is only used by swap, which settles
// the whole holding anyway.
func (l ledger) holdingsOf(db store.ReadOnlyKVStore, acct Address) ([]TokenID, error) {
	var ids []TokenID
	err := l.owners.Iterate(db, func(key, raw []byte) error {
		var owner Address
		if err := orm.Unmarshal(raw, &owner); err != nil {
			return err
		}
		if !owner.Equals(acct) {
			return nil
		}
		id, err := tokenIDFromBytes(key)
		if err != nil {
			return err
		}
		ids = append(ids, id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (l ledger) adjustBalance(db store.KVStore, acct Address, delta int64) error {
	balance, err := l.balanceOf(db, acct)
	if err != nil {
		return err
	}
	next := int64(balance) + delta
	if next < 0 {
		return errors.Wrapf(errors.ErrState, "negative balance for %s", acct)
	}
	if next == 0 {
		return l.balances.Delete(db, acct)
	}
	return l.balances.Save(db, acct, uint64(next))
}
