package nft

import "github.com/iov-one/aexnft/errors"

// The nft package reserves error codes 100~199. Descriptions are the stable
// AEX-141 failure identifiers and must not be reworded, wallets and
// middleware match on them.
var (
	// ErrOnlyContractOwner is returned when a call reserved for the
	// contract owner (eg. mint) is made by anyone else.
	ErrOnlyContractOwner = errors.Register(100, "ONLY_CONTRACT_OWNER_CALL_ALLOWED")

	// ErrOnlyOwner is returned when an operation restricted to the exact
	// current token owner is attempted by another account.
	ErrOnlyOwner = errors.Register(101, "ONLY_OWNER_CALL_ALLOWED")

	// ErrOnlyOwnerApprovedOperator is returned when a transfer or burn is
	// attempted by a caller that is neither the owner, the approved
	// account, nor an operator.
	ErrOnlyOwnerApprovedOperator = errors.Register(102, "ONLY_OWNER_APPROVED_OR_OPERATOR_CALL_ALLOWED")

	// ErrOnlyContractOwnerOrApproved is the stricter credential profile
	// gate combining contract ownership and per-token approval.
	ErrOnlyContractOwnerOrApproved = errors.Register(103, "ONLY_CONTRACT_OWNER_OR_APPROVED_CALL_ALLOWED")

	// ErrTokenAlreadyDefined is returned on a redefinition attempt of an
	// id that was already minted.
	ErrTokenAlreadyDefined = errors.Register(104, "TOKEN_ALREADY_DEFINED")

	// ErrSafeTransferFailed is returned when the receiving contract
	// declined the token or its callback errored.
	ErrSafeTransferFailed = errors.Register(105, "SAFE_TRANSFER_FAILED")

	// ErrNotImplemented is returned when an optional extension entry
	// point is called on a deployment that does not advertise it.
	ErrNotImplemented = errors.Register(106, "NOT_IMPLEMENTED")

	// ErrTokenNotFound is returned for mutating operations on a token
	// that was never minted or was already burned.
	ErrTokenNotFound = errors.Register(107, "TOKEN_NOT_FOUND")
)
