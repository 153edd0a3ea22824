package nft_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/aexnft/nft"
	"github.com/iov-one/aexnft/nfttest"
	"github.com/iov-one/aexnft/store"
)

func deployCredential(t *testing.T) (*nft.Contract, store.CacheableKVStore, nft.Address) {
	t.Helper()

	issuer := nfttest.NewAddress()
	contract, err := nft.NewContract(nft.ContractOpts{
		Name:         "Credential NFT",
		Symbol:       "TST",
		MetadataType: nft.TypeMap,
		Profile:      nft.ProfileCredential,
	}, issuer, nfttest.NewAddress(), nil)
	require.NoError(t, err)

	return contract, store.MemStore(), issuer
}

func credentialData() nft.Metadata {
	return nft.MapMetadata(
		nft.MetadataPair{Key: "degree", Value: "MSc"},
		nft.MetadataPair{Key: "year", Value: "2022"},
	)
}

func TestCredentialMintAndMetadata(t *testing.T) {
	c, db, issuer := deployCredential(t)
	holder := nfttest.NewAddress()

	id, _, err := c.Mint(db, issuer, holder, credentialData())
	require.NoError(t, err)

	md, err := c.TokenMetadata(db, id)
	require.NoError(t, err)
	assert.Equal(t, nft.TypeMap, md.Type)
	assert.Equal(t, credentialData().Pairs, md.Pairs)
}

func TestCredentialApproveGate(t *testing.T) {
	c, db, issuer := deployCredential(t)
	holder := nfttest.NewAddress()
	verifier := nfttest.NewAddress()

	id, _, err := c.Mint(db, issuer, holder, credentialData())
	require.NoError(t, err)

	// even the credential holder cannot approve, only the issuer
	_, err = c.Approve(db, holder, verifier, id, true)
	require.True(t, nft.ErrOnlyContractOwner.Is(err), "unexpected error: %+v", err)

	events, err := c.Approve(db, issuer, verifier, id, true)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, nft.ApprovalEvent{Owner: issuer, Approved: verifier, TokenID: id, Enabled: true}, events[0])
}

func TestCredentialTransferGate(t *testing.T) {
	cases := map[string]struct {
		caller  func(issuer, holder, approved nft.Address) nft.Address
		approve bool
		wantErr bool
	}{
		"issuer can transfer": {
			caller: func(issuer, holder, approved nft.Address) nft.Address { return issuer },
		},
		"approved account can transfer": {
			caller:  func(issuer, holder, approved nft.Address) nft.Address { return approved },
			approve: true,
		},
		"holder cannot transfer own credential": {
			caller:  func(issuer, holder, approved nft.Address) nft.Address { return holder },
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			c, db, issuer := deployCredential(t)
			holder := nfttest.NewAddress()
			approved := nfttest.NewAddress()
			next := nfttest.NewAddress()

			id, _, err := c.Mint(db, issuer, holder, credentialData())
			require.NoError(t, err)
			if tc.approve {
				_, err = c.Approve(db, issuer, approved, id, true)
				require.NoError(t, err)
			}

			_, err = c.Transfer(db, tc.caller(issuer, holder, approved), holder, next, id, nil)
			if tc.wantErr {
				require.True(t, nft.ErrOnlyContractOwnerOrApproved.Is(err),
					"unexpected error: %+v", err)
				return
			}
			require.NoError(t, err)

			got, err := c.Owner(db, id)
			require.NoError(t, err)
			assert.Equal(t, next, got)
		})
	}
}

func TestCredentialOperatorsNotImplemented(t *testing.T) {
	c, db, issuer := deployCredential(t)
	holder := nfttest.NewAddress()

	_, err := c.ApproveAll(db, holder, issuer, true)
	require.True(t, nft.ErrNotImplemented.Is(err), "unexpected error: %+v", err)

	ok, err := c.IsApprovedForAll(db, holder, issuer)
	require.NoError(t, err)
	assert.False(t, ok)
}
