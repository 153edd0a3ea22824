/*
Package nft implements an AEX-141 non-fungible token ledger as a
deterministic state machine over a key/value store.

A Contract value holds no token state itself. All state lives in the KVStore
passed into every call, so a single store can be shared by many contract
deployments and the host decides when a call's writes become visible. Every
mutating entry point either succeeds and returns the events it emitted, or
fails with a registered error and must be given no effect by the caller
(run calls through a store.KVCacheWrap and discard on error).

Four deployment profiles mirror the AEX-141 example contracts: a base
profile with caller-assigned token ids, a mintable/burnable profile, a
swappable profile where holders can surrender all tokens for a redemption
credit, and a credential profile where the contract owner retains control
over transfers and approvals.
*/
package nft
