package nft

import (
	"github.com/iov-one/aexnft/errors"
	"github.com/iov-one/aexnft/orm"
	"github.com/iov-one/aexnft/store"
)

// Profile selects which optional extensions a deployment carries and how
// authorization is enforced. It is fixed at deployment.
type Profile uint8

const (
	// ProfileBase has no extensions. Tokens are created with DefineToken
	// under caller-chosen ids and can never be burned.
	ProfileBase Profile = iota + 1
	// ProfileMintableBurnable supports Mint and Burn.
	ProfileMintableBurnable
	// ProfileSwappable supports Mint and Swap.
	ProfileSwappable
	// ProfileCredential supports Mint only and keeps the contract owner
	// in control of approvals and transfers.
	ProfileCredential
)

// Validate returns an error unless this is a known profile.
func (p Profile) Validate() error {
	switch p {
	case ProfileBase, ProfileMintableBurnable, ProfileSwappable, ProfileCredential:
		return nil
	default:
		return errors.Wrapf(errors.ErrInput, "profile: %d", p)
	}
}

// Extensions returns the static capability advertisement of this profile,
// in the order the AEX-141 examples list them.
func (p Profile) Extensions() []string {
	switch p {
	case ProfileMintableBurnable:
		return []string{"mintable", "burnable"}
	case ProfileSwappable:
		return []string{"mintable", "swappable"}
	case ProfileCredential:
		return []string{"mintable"}
	default:
		return []string{}
	}
}

// ContractOpts is the deployment-time configuration of a contract.
type ContractOpts struct {
	Name         string
	Symbol       string
	MetadataType MetadataType
	// BaseURL, when set, is prefixed to every URL and OBJECT_ID metadata
	// value at read time. Empty means no prefixing.
	BaseURL string
	Profile Profile
}

// Validate checks the deployment configuration.
func (o ContractOpts) Validate() error {
	var err error
	if o.Name == "" {
		err = errors.AppendField(err, "Name", errors.ErrEmpty)
	}
	if o.Symbol == "" {
		err = errors.AppendField(err, "Symbol", errors.ErrEmpty)
	}
	err = errors.AppendField(err, "MetadataType", o.MetadataType.Validate())
	err = errors.AppendField(err, "Profile", o.Profile.Validate())
	return err
}

// MetaInfo is the static self-description of a deployment.
type MetaInfo struct {
	Name         string
	Symbol       string
	MetadataType MetadataType
	// BaseURL is empty when the deployment was configured without one.
	BaseURL string
}

// Receiver is the acceptance entry point a contract account must expose to
// take part in safe transfers. Returning false or an error declines the
// token.
type Receiver interface {
	OnTokenReceived(from Address, id TokenID, data []byte) (bool, error)
}

// ReceiverResolver lets the contract look up the receiver callback of a
// destination account. The second return value reports whether the address
// hosts a contract at all; a contract account without a usable callback
// cannot accept safe transfers.
type ReceiverResolver interface {
	Receiver(addr Address) (Receiver, bool)
}

// Contract is one deployed NFT ledger. It carries only the deployment
// configuration and bucket descriptors; all token state lives in the
// KVStore passed into each call.
type Contract struct {
	opts ContractOpts
	// owner is the privileged deployer account.
	owner Address
	// account is the contract's own address. It stands in for "no
	// account" in Transfer events, the way the original contract emits
	// itself as mint source and burn destination.
	account Address
	// receivers resolves safe transfer callbacks. May be nil when the
	// host supports no contract accounts.
	receivers ReceiverResolver

	ids      tokenIDs
	ledger   ledger
	approved approvals
	metadata orm.Bucket
	swapped  orm.Bucket
}

// NewContract deploys a contract instance. The owner is the deployer
// account, the contract account identifies this deployment on the chain.
func NewContract(opts ContractOpts, owner, account Address, receivers ReceiverResolver) (*Contract, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid deployment")
	}
	if err := owner.Validate(); err != nil {
		return nil, errors.Field("Owner", err, "")
	}
	if err := account.Validate(); err != nil {
		return nil, errors.Field("Account", err, "")
	}
	// all state is keyed under the contract account so deployments sharing
	// one store never see each other's tokens
	return &Contract{
		opts:      opts,
		owner:     owner,
		account:   account,
		receivers: receivers,
		ids:       newTokenIDs(account),
		ledger:    newLedger(account),
		approved:  newApprovals(account),
		metadata:  orm.NewBucket("metadata").WithNamespace(account),
		swapped:   orm.NewBucket("swapped").WithNamespace(account),
	}, nil
}

// MetaInfo returns name, symbol, metadata encoding and optional base URL.
func (c *Contract) MetaInfo() MetaInfo {
	return MetaInfo{
		Name:         c.opts.Name,
		Symbol:       c.opts.Symbol,
		MetadataType: c.opts.MetadataType,
		BaseURL:      c.opts.BaseURL,
	}
}

// Extensions returns the capability tags of this deployment
// (aex141_extensions).
func (c *Contract) Extensions() []string {
	return c.opts.Profile.Extensions()
}

// Account returns the contract's own address.
func (c *Contract) Account() Address {
	return c.account
}

// ContractOwner returns the privileged deployer account.
func (c *Contract) ContractOwner() Address {
	return c.owner
}

// Owner resolves the current owner of a token. It fails with
// ErrTokenNotFound for burned or never minted tokens.
func (c *Contract) Owner(db store.ReadOnlyKVStore, id TokenID) (Address, error) {
	return c.ledger.ownerOf(db, id)
}

// Balance returns the number of tokens currently owned by the account.
func (c *Contract) Balance(db store.ReadOnlyKVStore, acct Address) (uint64, error) {
	return c.ledger.balanceOf(db, acct)
}

// TokenMetadata returns the metadata of a token, with the deployment base
// URL applied. It fails with ErrTokenNotFound for burned or never minted
// tokens.
func (c *Contract) TokenMetadata(db store.ReadOnlyKVStore, id TokenID) (Metadata, error) {
	var md Metadata
	if err := c.metadata.One(db, id.Bytes(), &md); err != nil {
		if errors.ErrNotFound.Is(err) {
			return Metadata{}, errors.Wrapf(ErrTokenNotFound, "token %d", id)
		}
		return Metadata{}, err
	}
	return md.withBase(c.opts.BaseURL), nil
}

// GetApproved returns the account approved for a token, or nil when none is
// set.
func (c *Contract) GetApproved(db store.ReadOnlyKVStore, id TokenID) (Address, error) {
	return c.approved.approved(db, id)
}

// IsApproved reports whether the account is the approved account of the
// token.
func (c *Contract) IsApproved(db store.ReadOnlyKVStore, id TokenID, acct Address) (bool, error) {
	approved, err := c.approved.approved(db, id)
	if err != nil {
		return false, err
	}
	return approved != nil && approved.Equals(acct), nil
}

// IsApprovedForAll reports whether operator holds a blanket grant from
// owner.
func (c *Contract) IsApprovedForAll(db store.ReadOnlyKVStore, owner, operator Address) (bool, error) {
	return c.approved.isOperator(db, owner, operator)
}

// CheckSwap returns the accumulated redemption credit of the account.
func (c *Contract) CheckSwap(db store.ReadOnlyKVStore, acct Address) (uint64, error) {
	var count uint64
	if err := c.swapped.One(db, acct, &count); err != nil {
		if errors.ErrNotFound.Is(err) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

// Approve sets or clears the single approved account of a token. The caller
// must be the token's owner, or the contract owner in the credential
// profile. Checks run in fixed order: token existence first, then the role
// gate.
func (c *Contract) Approve(db store.KVStore, caller, approved Address, id TokenID, enabled bool) ([]Event, error) {
	owner, err := c.ledger.ownerOf(db, id)
	if err != nil {
		return nil, err
	}

	if c.opts.Profile == ProfileCredential {
		if !caller.Equals(c.owner) {
			return nil, errors.Wrapf(ErrOnlyContractOwner, "caller %s", caller)
		}
	} else if !caller.Equals(owner) {
		return nil, errors.Wrapf(ErrOnlyOwner, "caller %s", caller)
	}

	if err := approved.Validate(); err != nil {
		return nil, errors.Field("Approved", err, "")
	}
	if err := c.approved.approve(db, id, approved, enabled); err != nil {
		return nil, err
	}
	return []Event{ApprovalEvent{
		Owner:    caller,
		Approved: approved,
		TokenID:  id,
		Enabled:  enabled,
	}}, nil
}

// ApproveAll grants or revokes blanket authority of operator over all of the
// caller's current and future tokens. The credential profile does not
// implement this extension.
func (c *Contract) ApproveAll(db store.KVStore, caller, operator Address, enabled bool) ([]Event, error) {
	if c.opts.Profile == ProfileCredential {
		return nil, errors.Wrap(ErrNotImplemented, "approve_all")
	}
	if err := operator.Validate(); err != nil {
		return nil, errors.Field("Operator", err, "")
	}
	if err := c.approved.setOperator(db, caller, operator, enabled); err != nil {
		return nil, err
	}
	return []Event{ApprovalForAllEvent{
		Owner:    caller,
		Operator: operator,
		Enabled:  enabled,
	}}, nil
}
