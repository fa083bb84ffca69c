/*
Wrap-dump prints the current state of a deployed Wrap contract: the
underlying token reference, supplies on both sides of the vault, the live
exchange rate and, optionally, the position of a single account.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/elastic-wrap-contract/rpc/elastic"
	"github.com/nspcc-dev/elastic-wrap-contract/rpc/wrap"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	contractAddr := flag.String("contract", "", "Address or LE script hash of the Wrap contract")
	accountAddr := flag.String("account", "", "Optional account to print the position of")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *contractAddr == "":
		log.Fatal("missing Wrap contract address")
	}

	wrapHash, err := parseUint160(*contractAddr)
	if err != nil {
		log.Fatal(fmt.Errorf("invalid Wrap contract address: %w", err))
	}

	err = dump(*neoRPCEndpoint, wrapHash, *accountAddr)
	if err != nil {
		log.Fatal(err)
	}
}

func dump(endpoint string, wrapHash util.Uint160, accountAddr string) error {
	c, err := rpcclient.New(context.Background(), endpoint, rpcclient.Options{})
	if err != nil {
		return fmt.Errorf("init RPC client: %w", err)
	}

	defer c.Close()

	if err := c.Init(); err != nil {
		return fmt.Errorf("init RPC client network magic: %w", err)
	}

	inv := invoker.New(c, nil)
	wrapReader := wrap.NewReader(inv, wrapHash)

	underlyingHash, err := wrapReader.Underlying()
	if err != nil {
		return fmt.Errorf("get underlying token: %w", err)
	}

	elasticReader := elastic.NewReader(inv, underlyingHash)

	sym, err := wrapReader.Symbol()
	if err != nil {
		return fmt.Errorf("get wrapper symbol: %w", err)
	}

	wrapSupply, err := wrapReader.TotalSupply()
	if err != nil {
		return fmt.Errorf("get wrapper circulation: %w", err)
	}

	maxSupply, err := wrapReader.MaxSupply()
	if err != nil {
		return fmt.Errorf("get wrapper supply cap: %w", err)
	}

	underlyingSupply, err := elasticReader.TotalSupply()
	if err != nil {
		return fmt.Errorf("get underlying supply: %w", err)
	}

	totalUnderlying, err := wrapReader.TotalUnderlying()
	if err != nil {
		return fmt.Errorf("get total underlying: %w", err)
	}

	fmt.Printf("Wrap contract:     %s (%s)\n", address.Uint160ToString(wrapHash), sym)
	fmt.Printf("Underlying token:  %s\n", address.Uint160ToString(underlyingHash))
	fmt.Printf("Wrapper supply:    %s of %s\n", wrapSupply, maxSupply)
	fmt.Printf("Underlying supply: %s\n", underlyingSupply)
	fmt.Printf("Vault holds:       %s underlying units\n", totalUnderlying)

	// One wrapper whole unit expressed in underlying units.
	rate, err := wrapReader.WrapperToUnderlying(new(big.Int).Exp(big.NewInt(10), big.NewInt(wrap.Decimals), nil))
	if err != nil {
		return fmt.Errorf("get exchange rate: %w", err)
	}
	fmt.Printf("Exchange rate:     1 wrapper unit = %s underlying subunits\n", rate)

	if accountAddr == "" {
		return nil
	}

	account, err := parseUint160(accountAddr)
	if err != nil {
		return fmt.Errorf("invalid account address: %w", err)
	}

	balance, err := wrapReader.BalanceOf(account)
	if err != nil {
		return fmt.Errorf("get account wrapper balance: %w", err)
	}

	balanceU, err := wrapReader.BalanceOfUnderlying(account)
	if err != nil {
		return fmt.Errorf("get account underlying balance: %w", err)
	}

	fmt.Printf("Account %s:\n", address.Uint160ToString(account))
	fmt.Printf("  wrapper balance:     %s\n", balance)
	fmt.Printf("  redeems to:          %s underlying subunits\n", balanceU)

	return nil
}

func parseUint160(s string) (util.Uint160, error) {
	if h, err := address.StringToUint160(s); err == nil {
		return h, nil
	}

	return util.Uint160DecodeStringLE(s)
}
