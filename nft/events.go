package nft

// Event is emitted by a committed call. An aborted call emits nothing; the
// host publishes events only after the call's writes were flushed.
type Event interface {
	// EventName returns the stable AEX-141 event identifier.
	EventName() string
}

// TransferEvent reports every ownership change. A mint carries the contract
// account as From, a burn carries it as To.
type TransferEvent struct {
	From    Address
	To      Address
	TokenID TokenID
}

func (TransferEvent) EventName() string { return "Transfer" }

// ApprovalEvent reports a single-token approval being set or cleared.
type ApprovalEvent struct {
	Owner    Address
	Approved Address
	TokenID  TokenID
	Enabled  bool
}

func (ApprovalEvent) EventName() string { return "Approval" }

// ApprovalForAllEvent reports blanket operator authority being granted or
// revoked.
type ApprovalForAllEvent struct {
	Owner    Address
	Operator Address
	Enabled  bool
}

func (ApprovalForAllEvent) EventName() string { return "ApprovalForAll" }

// SwapEvent reports a holder surrendering all owned tokens for credit.
type SwapEvent struct {
	Owner Address
	Count uint64
}

func (SwapEvent) EventName() string { return "Swap" }
