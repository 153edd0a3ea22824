package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/iov-one/aexnft/host"
	"github.com/iov-one/aexnft/nft"
	"github.com/iov-one/aexnft/store"
)

var (
	varPretty  *bool
	varBaseURL *string
)

func init() {
	varPretty = flag.Bool("pretty", true, "human friendly log output")
	varBaseURL = flag.String("base-url", "https://example.com/nft/", "base url prepended to url and object id metadata")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("aexnftd")
	fmt.Println("          In-process NFT ledger demo")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("demo      Deploy the four contract profiles and walk the token lifecycle")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -pretty
        human friendly log output (default true)
  -base-url string
        base url prepended to url and object id metadata`)
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	var out = os.Stdout
	logger := zerolog.New(out).With().Timestamp().Logger()
	if *varPretty {
		logger = logger.Output(zerolog.ConsoleWriter{Out: out})
	}

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "help":
		helpMessage()
	case "version":
		fmt.Println(version)
	case "demo":
		err = runDemo(logger, *varBaseURL)
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		os.Exit(1)
	}
}

const version = "v0.1.0"

// runDemo drives every contract profile through its lifecycle on a fresh
// in-memory store. Each call goes through the host so the log shows the
// commit and abort behavior an application would observe.
func runDemo(logger zerolog.Logger, baseURL string) error {
	h := host.New(store.MemStore(), logger)

	deployer := nft.NewAddress([]byte("demo/deployer"))
	alice := nft.NewAddress([]byte("demo/alice"))
	bob := nft.NewAddress([]byte("demo/bob"))

	// mintable and burnable
	collectibles, err := h.Deploy(nft.ContractOpts{
		Name:         "Demo Collectibles",
		Symbol:       "DMO",
		MetadataType: nft.TypeURL,
		BaseURL:      baseURL,
		Profile:      nft.ProfileMintableBurnable,
	}, deployer)
	if err != nil {
		return err
	}

	var id nft.TokenID
	if _, err := h.Run("mint", deployer, func(db store.CacheableKVStore) ([]nft.Event, error) {
		var evs []nft.Event
		id, evs, err = collectibles.Mint(db, deployer, alice, nft.URLMetadata("1.json"))
		return evs, err
	}); err != nil {
		return err
	}
	if _, err := h.Run("approve", alice, func(db store.CacheableKVStore) ([]nft.Event, error) {
		return collectibles.Approve(db, alice, bob, id, true)
	}); err != nil {
		return err
	}
	if _, err := h.Run("transfer", bob, func(db store.CacheableKVStore) ([]nft.Event, error) {
		return collectibles.Transfer(db, bob, alice, bob, id, nil)
	}); err != nil {
		return err
	}
	if _, err := h.Run("burn", bob, func(db store.CacheableKVStore) ([]nft.Event, error) {
		return collectibles.Burn(db, bob, id)
	}); err != nil {
		return err
	}

	// base profile, fixed supply
	editions, err := h.Deploy(nft.ContractOpts{
		Name:         "Demo Editions",
		Symbol:       "EDN",
		MetadataType: nft.TypeString,
		Profile:      nft.ProfileBase,
	}, deployer)
	if err != nil {
		return err
	}
	for i := 0; i < 3; i++ {
		id := nft.TokenID(i)
		if _, err := h.Run("define_token", deployer, func(db store.CacheableKVStore) ([]nft.Event, error) {
			md := nft.StringMetadata(fmt.Sprintf("edition %d of 3", i+1))
			return editions.DefineToken(db, deployer, alice, md, id)
		}); err != nil {
			return err
		}
	}

	// mintable and swappable
	tickets, err := h.Deploy(nft.ContractOpts{
		Name:         "Demo Tickets",
		Symbol:       "TCK",
		MetadataType: nft.TypeIdentifier,
		BaseURL:      baseURL,
		Profile:      nft.ProfileSwappable,
	}, deployer)
	if err != nil {
		return err
	}
	for i := 0; i < 2; i++ {
		if _, err := h.Run("mint", deployer, func(db store.CacheableKVStore) ([]nft.Event, error) {
			_, evs, err := tickets.Mint(db, deployer, alice, nft.IdentifierMetadata(fmt.Sprintf("ticket-%d", i)))
			return evs, err
		}); err != nil {
			return err
		}
	}
	if _, err := h.Run("swap", alice, func(db store.CacheableKVStore) ([]nft.Event, error) {
		_, evs, err := tickets.Swap(db, alice)
		return evs, err
	}); err != nil {
		return err
	}

	// credential, issuer controlled
	credentials, err := h.Deploy(nft.ContractOpts{
		Name:         "Demo Credentials",
		Symbol:       "CRD",
		MetadataType: nft.TypeMap,
		Profile:      nft.ProfileCredential,
	}, deployer)
	if err != nil {
		return err
	}
	if _, err := h.Run("mint", deployer, func(db store.CacheableKVStore) ([]nft.Event, error) {
		md := nft.MapMetadata(
			nft.MetadataPair{Key: "degree", Value: "MSc"},
			nft.MetadataPair{Key: "year", Value: "2022"},
		)
		_, evs, err := credentials.Mint(db, deployer, bob, md)
		return evs, err
	}); err != nil {
		return err
	}
	// a holder cannot move a credential, only the issuer can
	if _, err := h.Run("transfer", bob, func(db store.CacheableKVStore) ([]nft.Event, error) {
		return credentials.Transfer(db, bob, bob, alice, 0, nil)
	}); err == nil {
		return fmt.Errorf("credential transfer by holder must be rejected")
	}

	logger.Info().Msg("demo finished")
	return nil
}
