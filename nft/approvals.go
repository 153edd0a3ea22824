package nft

import (
	"github.com/iov-one/aexnft/errors"
	"github.com/iov-one/aexnft/orm"
	"github.com/iov-one/aexnft/store"
)

// approvals keeps both authorization layers: at most one approved account
// per token, and blanket operator grants per (owner, operator) pair.
// Token approvals are cleared whenever the token's owner changes; operator
// grants survive individual transfers.
type approvals struct {
	tokens    orm.Bucket
	operators orm.Bucket
}

func newApprovals(ns []byte) approvals {
	return approvals{
		tokens:    orm.NewBucket("approval").WithNamespace(ns),
		operators: orm.NewBucket("operator").WithNamespace(ns),
	}
}

// approve sets or clears the single approved account of a token.
func (a approvals) approve(db store.KVStore, id TokenID, acct Address, enabled bool) error {
	if !enabled {
		return a.tokens.Delete(db, id.Bytes())
	}
	return a.tokens.Save(db, id.Bytes(), acct)
}

// approved returns the approved account of a token, or nil when there is
// none.
func (a approvals) approved(db store.ReadOnlyKVStore, id TokenID) (Address, error) {
	var acct Address
	if err := a.tokens.One(db, id.Bytes(), &acct); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, nil
		}
		return nil, err
	}
	return acct, nil
}

// clear drops the approval entry of a token, if any.
func (a approvals) clear(db store.KVStore, id TokenID) error {
	return a.tokens.Delete(db, id.Bytes())
}

// setOperator grants or revokes blanket authority of operator over all of
// owner's current and future tokens.
func (a approvals) setOperator(db store.KVStore, owner, operator Address, enabled bool) error {
	key := operatorKey(owner, operator)
	if !enabled {
		return a.operators.Delete(db, key)
	}
	return a.operators.Save(db, key, true)
}

// isOperator reports whether operator holds a blanket grant from owner.
func (a approvals) isOperator(db store.ReadOnlyKVStore, owner, operator Address) (bool, error) {
	return a.operators.Has(db, operatorKey(owner, operator))
}

// operatorKey builds the composite bucket key. Both addresses are fixed
// size, so plain concatenation cannot collide.
func operatorKey(owner, operator Address) []byte {
	key := make([]byte, 0, len(owner)+len(operator))
	key = append(key, owner...)
	return append(key, operator...)
}

// canAct is the authorization predicate gating every transfer and burn: the
// caller must be the token's owner, the approved account, or hold an
// operator grant from the owner.
func canAct(db store.ReadOnlyKVStore, a approvals, caller, owner Address, id TokenID) (bool, error) {
	if caller.Equals(owner) {
		return true, nil
	}
	approved, err := a.approved(db, id)
	if err != nil {
		return false, err
	}
	if caller.Equals(approved) {
		return true, nil
	}
	return a.isOperator(db, owner, caller)
}
