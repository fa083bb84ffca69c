package elastic

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/elastic-wrap-contract/common"
)

// Token holds all token info.
type Token struct {
	// Ticker symbol
	Symbol string
	// Amount of decimals
	Decimals int
	// Storage key for total supply value
	SupplyKey string
	// Storage key for total shares value
	SharesKey string
}

const (
	symbol   = "ELT"
	decimals = 18
	supply   = "ElasticSupply"
	shares   = "ElasticShares"

	sharePrefix = 's'
)

var token Token

func createToken() Token {
	return Token{
		Symbol:    symbol,
		Decimals:  decimals,
		SupplyKey: supply,
		SharesKey: shares,
	}
}

func init() {
	token = createToken()
}

// nolint:unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		initialHolder interop.Hash160
		initialSupply int
	})

	if len(args.initialHolder) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	if args.initialSupply <= 0 {
		panic("initial supply must be positive")
	}

	storage.Put(ctx, token.SupplyKey, args.initialSupply)
	// 1 share == 1 unit at genesis, the ratio drifts with every rebase.
	storage.Put(ctx, token.SharesKey, args.initialSupply)
	storage.Put(ctx, shareKey(args.initialHolder), args.initialSupply)

	runtime.Notify("Transfer", interop.Hash160(nil), args.initialHolder, args.initialSupply)
	runtime.Log("elastic contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("elastic contract updated")
}

// Symbol is a NEP-17 standard method that returns elastic token symbol.
func Symbol() string {
	return token.Symbol
}

// Decimals is a NEP-17 standard method that returns precision of elastic
// token balances.
func Decimals() int {
	return token.Decimals
}

// TotalSupply is a NEP-17 standard method that returns the current total
// amount of elastic token units. The value changes with every Rebase.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return token.getSupply(ctx)
}

// BalanceOf is a NEP-17 standard method that returns elastic token balance of
// the specified account. Balances are derived from fixed share counts, so they
// scale together with the total supply.
func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return token.balanceOf(ctx, account)
}

// SharesOf returns the rebase-invariant share count of the specified account.
// Share counts change only on transfers, never on Rebase.
func SharesOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return getShares(ctx, account)
}

// TotalShares returns the total amount of shares backing the supply.
func TotalShares() int {
	ctx := storage.GetReadOnlyContext()
	return token.getShares(ctx)
}

// Transfer is a NEP-17 standard method that transfers elastic token units from
// one account to another. It can be invoked by the account owner or by the
// account itself when the account is a contract.
//
// It produces Transfer notification and calls onNEP17Payment method of the
// receiver when the receiver is a deployed contract.
func Transfer(from, to interop.Hash160, amount int, data any) bool {
	ctx := storage.GetContext()
	return token.transfer(ctx, from, to, amount, data)
}

// Rebase adjusts the total supply by supplyDelta units without touching any
// share counts, so every balance scales proportionally. Negative supplyDelta
// contracts the supply. It can be invoked only by committee, the policy
// deciding the delta lives outside of the chain.
//
// It produces Rebase notification and returns the new total supply.
func Rebase(supplyDelta int) int {
	common.CheckCommitteeWitness()

	ctx := storage.GetContext()
	newSupply := token.getSupply(ctx) + supplyDelta
	if newSupply <= 0 {
		panic("supply after rebase must be positive")
	}

	storage.Put(ctx, token.SupplyKey, newSupply)
	runtime.Notify("Rebase", newSupply)
	runtime.Log("elastic supply rebased")

	return newSupply
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// getSupply gets the token totalSupply value from VM storage.
func (t Token) getSupply(ctx storage.Context) int {
	supply := storage.Get(ctx, t.SupplyKey)
	if supply != nil {
		return supply.(int)
	}

	return 0
}

// getShares gets the total shares value from VM storage.
func (t Token) getShares(ctx storage.Context) int {
	shares := storage.Get(ctx, t.SharesKey)
	if shares != nil {
		return shares.(int)
	}

	return 0
}

func (t Token) balanceOf(ctx storage.Context, holder interop.Hash160) int {
	totalShares := t.getShares(ctx)
	if totalShares == 0 {
		return 0
	}

	return getShares(ctx, holder) * t.getSupply(ctx) / totalShares
}

func (t Token) transfer(ctx storage.Context, from, to interop.Hash160, amount int, data any) bool {
	if amount < 0 {
		panic("negative amount")
	}

	if len(to) != interop.Hash160Len || !isUsableAddress(from) {
		runtime.Log("bad script hashes")
		return false
	}

	supply := t.getSupply(ctx)
	totalShares := t.getShares(ctx)

	moved := amount * totalShares / supply
	sharesFrom := getShares(ctx, from)
	if sharesFrom < moved {
		runtime.Log("not enough assets")
		return false
	}

	if moved != 0 {
		if sharesFrom == moved {
			storage.Delete(ctx, shareKey(from))
		} else {
			storage.Put(ctx, shareKey(from), sharesFrom-moved)
		}

		storage.Put(ctx, shareKey(to), getShares(ctx, to)+moved)
	}

	runtime.Notify("Transfer", from, to, amount)
	postTransfer(from, to, amount, data)

	return true
}

// postTransfer implements the NEP-17 convention of notifying contract
// receivers about incoming assets.
func postTransfer(from, to interop.Hash160, amount int, data any) {
	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP17Payment", contract.All, from, amount, data)
	}
}

// isUsableAddress checks if the sender is either a correct NEO address or SC address.
func isUsableAddress(addr interop.Hash160) bool {
	if len(addr) == interop.Hash160Len {
		if runtime.CheckWitness(addr) {
			return true
		}

		// Check if a smart contract is calling script hash
		callingScriptHash := runtime.GetCallingScriptHash()
		if callingScriptHash.Equals(addr) {
			return true
		}
	}

	return false
}

func getShares(ctx storage.Context, holder interop.Hash160) int {
	data := storage.Get(ctx, shareKey(holder))
	if data != nil {
		return data.(int)
	}

	return 0
}

func shareKey(holder interop.Hash160) []byte {
	return append([]byte{sharePrefix}, holder...)
}
