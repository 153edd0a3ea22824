package nft_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/aexnft/errors"
	"github.com/iov-one/aexnft/nft"
	"github.com/iov-one/aexnft/nfttest"
	"github.com/iov-one/aexnft/store"
)

func deploy(t *testing.T, profile nft.Profile, baseURL string, resolver nft.ReceiverResolver) (*nft.Contract, store.CacheableKVStore, nft.Address) {
	t.Helper()

	deployer := nfttest.NewAddress()
	contract, err := nft.NewContract(nft.ContractOpts{
		Name:         "Test NFT",
		Symbol:       "TST",
		MetadataType: nft.TypeURL,
		BaseURL:      baseURL,
		Profile:      profile,
	}, deployer, nfttest.NewAddress(), resolver)
	require.NoError(t, err)

	return contract, store.MemStore(), deployer
}

func TestMintAssignsIncreasingIDs(t *testing.T) {
	c, db, owner := deploy(t, nft.ProfileMintableBurnable, "", nil)
	alice := nfttest.NewAddress()

	for want := nft.TokenID(0); want < 5; want++ {
		id, events, err := c.Mint(db, owner, alice, nft.URLMetadata("mynft"))
		require.NoError(t, err)
		assert.Equal(t, want, id)

		require.Len(t, events, 1)
		ev, ok := events[0].(nft.TransferEvent)
		require.True(t, ok, "want a transfer event, got %T", events[0])
		assert.Equal(t, c.Account(), ev.From)
		assert.Equal(t, alice, ev.To)
		assert.Equal(t, want, ev.TokenID)
	}

	balance, err := c.Balance(db, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), balance)
}

func TestMintOnlyContractOwner(t *testing.T) {
	c, db, owner := deploy(t, nft.ProfileMintableBurnable, "", nil)
	alice := nfttest.NewAddress()

	_, _, err := c.Mint(db, alice, alice, nft.URLMetadata("mynft"))
	require.True(t, nft.ErrOnlyContractOwner.Is(err), "unexpected error: %+v", err)

	// the failed attempt must not have advanced the counter
	id, _, err := c.Mint(db, owner, alice, nft.URLMetadata("mynft"))
	require.NoError(t, err)
	assert.Equal(t, nft.TokenID(0), id)
}

func TestMintRejectsBadInput(t *testing.T) {
	c, db, owner := deploy(t, nft.ProfileMintableBurnable, "", nil)
	alice := nfttest.NewAddress()

	cases := map[string]struct {
		to nft.Address
		md nft.Metadata
	}{
		"empty destination": {
			to: nil,
			md: nft.URLMetadata("mynft"),
		},
		"empty metadata value": {
			to: alice,
			md: nft.URLMetadata(""),
		},
		"mixed metadata payloads": {
			to: alice,
			md: nft.Metadata{Type: nft.TypeURL, Text: "x", Pairs: []nft.MetadataPair{{Key: "k", Value: "v"}}},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, _, err := c.Mint(db, owner, tc.to, tc.md)
			require.Error(t, err)
		})
	}
}

func TestTransferMovesOwnership(t *testing.T) {
	c, db, owner := deploy(t, nft.ProfileMintableBurnable, "", nil)
	alice := nfttest.NewAddress()
	bob := nfttest.NewAddress()

	id, _, err := c.Mint(db, owner, alice, nft.URLMetadata("mynft"))
	require.NoError(t, err)

	events, err := c.Transfer(db, alice, alice, bob, id, nil)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, nft.TransferEvent{From: alice, To: bob, TokenID: id}, events[0])

	got, err := c.Owner(db, id)
	require.NoError(t, err)
	assert.Equal(t, bob, got)

	aliceBalance, err := c.Balance(db, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), aliceBalance)

	bobBalance, err := c.Balance(db, bob)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), bobBalance)
}

func TestTransferAuthorization(t *testing.T) {
	cases := map[string]struct {
		setup   func(t *testing.T, c *nft.Contract, db store.CacheableKVStore, alice, caller nft.Address, id nft.TokenID)
		caller  bool // true: use a third party account as caller
		from    bool // true: use a third party account as from
		id      nft.TokenID
		wantErr *errors.Error
	}{
		"owner can transfer": {},
		"stranger cannot transfer": {
			caller:  true,
			wantErr: nft.ErrOnlyOwnerApprovedOperator,
		},
		"from must be the owner": {
			from:    true,
			wantErr: nft.ErrOnlyOwner,
		},
		"token must exist": {
			id:      42,
			wantErr: nft.ErrTokenNotFound,
		},
		"approved account can transfer": {
			caller: true,
			setup: func(t *testing.T, c *nft.Contract, db store.CacheableKVStore, alice, caller nft.Address, id nft.TokenID) {
				_, err := c.Approve(db, alice, caller, id, true)
				require.NoError(t, err)
			},
		},
		"operator can transfer": {
			caller: true,
			setup: func(t *testing.T, c *nft.Contract, db store.CacheableKVStore, alice, caller nft.Address, id nft.TokenID) {
				_, err := c.ApproveAll(db, alice, caller, true)
				require.NoError(t, err)
			},
		},
		"revoked operator cannot transfer": {
			caller: true,
			setup: func(t *testing.T, c *nft.Contract, db store.CacheableKVStore, alice, caller nft.Address, id nft.TokenID) {
				_, err := c.ApproveAll(db, alice, caller, true)
				require.NoError(t, err)
				_, err = c.ApproveAll(db, alice, caller, false)
				require.NoError(t, err)
			},
			wantErr: nft.ErrOnlyOwnerApprovedOperator,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			c, db, owner := deploy(t, nft.ProfileMintableBurnable, "", nil)
			alice := nfttest.NewAddress()
			bob := nfttest.NewAddress()
			third := nfttest.NewAddress()

			id, _, err := c.Mint(db, owner, alice, nft.URLMetadata("mynft"))
			require.NoError(t, err)

			caller := alice
			if tc.caller {
				caller = third
			}
			from := alice
			if tc.from {
				from = third
			}
			if tc.id != 0 {
				id = tc.id
			}
			if tc.setup != nil {
				tc.setup(t, c, db, alice, caller, id)
			}

			_, err = c.Transfer(db, caller, from, bob, id, nil)
			if tc.wantErr == nil {
				require.NoError(t, err)
				got, err := c.Owner(db, id)
				require.NoError(t, err)
				assert.Equal(t, bob, got)
				return
			}
			require.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)

			// a failed transfer must not move the token
			got, err := c.Owner(db, 0)
			require.NoError(t, err)
			assert.Equal(t, alice, got)
		})
	}
}

func TestApprovalClearedByTransfer(t *testing.T) {
	c, db, owner := deploy(t, nft.ProfileMintableBurnable, "", nil)
	alice := nfttest.NewAddress()
	bob := nfttest.NewAddress()
	carl := nfttest.NewAddress()

	id, _, err := c.Mint(db, owner, alice, nft.URLMetadata("mynft"))
	require.NoError(t, err)

	events, err := c.Approve(db, alice, bob, id, true)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, nft.ApprovalEvent{Owner: alice, Approved: bob, TokenID: id, Enabled: true}, events[0])

	approved, err := c.GetApproved(db, id)
	require.NoError(t, err)
	assert.Equal(t, bob, approved)

	ok, err := c.IsApproved(db, id, bob)
	require.NoError(t, err)
	assert.True(t, ok)

	// bob moves the token on behalf of alice
	_, err = c.Transfer(db, bob, alice, carl, id, nil)
	require.NoError(t, err)

	// the approval does not survive the ownership change
	ok, err = c.IsApproved(db, id, bob)
	require.NoError(t, err)
	assert.False(t, ok)

	approved, err = c.GetApproved(db, id)
	require.NoError(t, err)
	assert.Nil(t, approved)
}

func TestApproveGates(t *testing.T) {
	c, db, owner := deploy(t, nft.ProfileMintableBurnable, "", nil)
	alice := nfttest.NewAddress()
	bob := nfttest.NewAddress()

	// missing token is reported before the role check
	_, err := c.Approve(db, alice, bob, 7, true)
	require.True(t, nft.ErrTokenNotFound.Is(err), "unexpected error: %+v", err)

	id, _, err := c.Mint(db, owner, alice, nft.URLMetadata("mynft"))
	require.NoError(t, err)

	// only the token owner may approve, the contract owner has no say
	_, err = c.Approve(db, owner, bob, id, true)
	require.True(t, nft.ErrOnlyOwner.Is(err), "unexpected error: %+v", err)

	// disabling clears the approval again
	_, err = c.Approve(db, alice, bob, id, true)
	require.NoError(t, err)
	_, err = c.Approve(db, alice, bob, id, false)
	require.NoError(t, err)
	ok, err := c.IsApproved(db, id, bob)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestApproveAllGrantsFutureTokens(t *testing.T) {
	c, db, owner := deploy(t, nft.ProfileMintableBurnable, "", nil)
	alice := nfttest.NewAddress()
	bob := nfttest.NewAddress()
	carl := nfttest.NewAddress()

	events, err := c.ApproveAll(db, alice, bob, true)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, nft.ApprovalForAllEvent{Owner: alice, Operator: bob, Enabled: true}, events[0])

	ok, err := c.IsApprovedForAll(db, alice, bob)
	require.NoError(t, err)
	assert.True(t, ok)

	// a token minted after the grant is covered as well
	id, _, err := c.Mint(db, owner, alice, nft.URLMetadata("mynft"))
	require.NoError(t, err)
	_, err = c.Transfer(db, bob, alice, carl, id, nil)
	require.NoError(t, err)

	// the grant is directed, carl did not authorize bob
	ok, err = c.IsApprovedForAll(db, carl, bob)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBurn(t *testing.T) {
	cases := map[string]struct {
		caller  func(owner, alice, approved, stranger nft.Address) nft.Address
		approve bool
		wantErr *errors.Error
	}{
		"owner can burn": {
			caller: func(owner, alice, approved, stranger nft.Address) nft.Address { return alice },
		},
		"approved account can burn": {
			caller:  func(owner, alice, approved, stranger nft.Address) nft.Address { return approved },
			approve: true,
		},
		"stranger cannot burn": {
			caller:  func(owner, alice, approved, stranger nft.Address) nft.Address { return stranger },
			wantErr: nft.ErrOnlyOwnerApprovedOperator,
		},
		"contract owner has no special right": {
			caller:  func(owner, alice, approved, stranger nft.Address) nft.Address { return owner },
			wantErr: nft.ErrOnlyOwnerApprovedOperator,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			c, db, owner := deploy(t, nft.ProfileMintableBurnable, "", nil)
			alice := nfttest.NewAddress()
			approved := nfttest.NewAddress()
			stranger := nfttest.NewAddress()

			id, _, err := c.Mint(db, owner, alice, nft.URLMetadata("mynft"))
			require.NoError(t, err)
			if tc.approve {
				_, err = c.Approve(db, alice, approved, id, true)
				require.NoError(t, err)
			}

			events, err := c.Burn(db, tc.caller(owner, alice, approved, stranger), id)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
				got, err := c.Owner(db, id)
				require.NoError(t, err)
				assert.Equal(t, alice, got)
				return
			}
			require.NoError(t, err)
			require.Len(t, events, 1)
			assert.Equal(t, nft.TransferEvent{From: alice, To: c.Account(), TokenID: id}, events[0])

			// all traces of the token are gone
			_, err = c.Owner(db, id)
			require.True(t, nft.ErrTokenNotFound.Is(err), "unexpected error: %+v", err)
			_, err = c.TokenMetadata(db, id)
			require.True(t, nft.ErrTokenNotFound.Is(err), "unexpected error: %+v", err)
			balance, err := c.Balance(db, alice)
			require.NoError(t, err)
			assert.Equal(t, uint64(0), balance)
		})
	}
}

func TestBurnNeverMintedToken(t *testing.T) {
	c, db, _ := deploy(t, nft.ProfileMintableBurnable, "", nil)

	_, err := c.Burn(db, nfttest.NewAddress(), 3)
	require.True(t, nft.ErrTokenNotFound.Is(err), "unexpected error: %+v", err)
}

func TestBurnedIDIsNeverReassigned(t *testing.T) {
	c, db, owner := deploy(t, nft.ProfileMintableBurnable, "", nil)
	alice := nfttest.NewAddress()

	id, _, err := c.Mint(db, owner, alice, nft.URLMetadata("first"))
	require.NoError(t, err)
	_, err = c.Burn(db, alice, id)
	require.NoError(t, err)

	next, _, err := c.Mint(db, owner, alice, nft.URLMetadata("second"))
	require.NoError(t, err)
	assert.Equal(t, id+1, next)
}

func TestSwap(t *testing.T) {
	c, db, owner := deploy(t, nft.ProfileSwappable, "", nil)
	alice := nfttest.NewAddress()

	for i := 0; i < 2; i++ {
		_, _, err := c.Mint(db, owner, alice, nft.URLMetadata("mynft"))
		require.NoError(t, err)
	}

	count, events, err := c.Swap(db, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)
	require.Len(t, events, 1)
	assert.Equal(t, nft.SwapEvent{Owner: alice, Count: 2}, events[0])

	credit, err := c.CheckSwap(db, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), credit)

	balance, err := c.Balance(db, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)

	// swapped tokens are terminal
	_, err = c.Owner(db, 0)
	require.True(t, nft.ErrTokenNotFound.Is(err), "unexpected error: %+v", err)
}

func TestSwapAccumulatesCredit(t *testing.T) {
	c, db, owner := deploy(t, nft.ProfileSwappable, "", nil)
	alice := nfttest.NewAddress()

	for round := 1; round <= 3; round++ {
		_, _, err := c.Mint(db, owner, alice, nft.URLMetadata("mynft"))
		require.NoError(t, err)
		_, _, err = c.Swap(db, alice)
		require.NoError(t, err)
	}

	credit, err := c.CheckSwap(db, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), credit)
}

func TestSwapWithoutHoldings(t *testing.T) {
	c, db, _ := deploy(t, nft.ProfileSwappable, "", nil)
	alice := nfttest.NewAddress()

	// an empty holding commits and reports a zero count
	count, events, err := c.Swap(db, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
	require.Len(t, events, 1)
	assert.Equal(t, nft.SwapEvent{Owner: alice, Count: 0}, events[0])
}

func TestSwapLeavesOtherHoldersAlone(t *testing.T) {
	c, db, owner := deploy(t, nft.ProfileSwappable, "", nil)
	alice := nfttest.NewAddress()
	bob := nfttest.NewAddress()

	_, _, err := c.Mint(db, owner, alice, nft.URLMetadata("a"))
	require.NoError(t, err)
	bobID, _, err := c.Mint(db, owner, bob, nft.URLMetadata("b"))
	require.NoError(t, err)

	_, _, err = c.Swap(db, alice)
	require.NoError(t, err)

	got, err := c.Owner(db, bobID)
	require.NoError(t, err)
	assert.Equal(t, bob, got)
}

func TestExtensionGating(t *testing.T) {
	cases := map[string]struct {
		profile nft.Profile
		want    []string
		blocked []string
	}{
		"base profile": {
			profile: nft.ProfileBase,
			want:    []string{},
			blocked: []string{"mint", "burn", "swap"},
		},
		"mintable burnable profile": {
			profile: nft.ProfileMintableBurnable,
			want:    []string{"mintable", "burnable"},
			blocked: []string{"define_token", "swap"},
		},
		"swappable profile": {
			profile: nft.ProfileSwappable,
			want:    []string{"mintable", "swappable"},
			blocked: []string{"define_token", "burn"},
		},
		"credential profile": {
			profile: nft.ProfileCredential,
			want:    []string{"mintable"},
			blocked: []string{"define_token", "burn", "swap", "approve_all"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			c, db, owner := deploy(t, tc.profile, "", nil)
			alice := nfttest.NewAddress()

			assert.Equal(t, tc.want, c.Extensions())

			for _, entry := range tc.blocked {
				var err error
				switch entry {
				case "mint":
					_, _, err = c.Mint(db, owner, alice, nft.URLMetadata("x"))
				case "define_token":
					_, err = c.DefineToken(db, owner, alice, nft.URLMetadata("x"), 0)
				case "burn":
					// the extension gate is checked before token existence
					_, err = c.Burn(db, alice, 0)
				case "swap":
					_, _, err = c.Swap(db, alice)
				case "approve_all":
					_, err = c.ApproveAll(db, alice, owner, true)
				}
				require.True(t, nft.ErrNotImplemented.Is(err),
					"%s must not be implemented, got %+v", entry, err)
			}
		})
	}
}
