package wrap

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
	// Storage key for circulation value
	CirculationKey string
}

const (
	symbol      = "WELT"
	decimals    = 18
	circulation = "WrapCirculation"

	balancePrefix = 'b'
	underlyingKey = 'u'

	// maxWholeSupply is the wrapper supply cap in whole units. Scaled by
	// decimals it anchors the exchange rate: a fully minted wrapper always
	// represents 100% of the underlying circulation.
	maxWholeSupply = 10_000_000
)

var (
	token Token

	// maxSupply is maxWholeSupply in Fixed18. Computed in init because the
	// scaled value does not fit into a 64-bit literal.
	maxSupply int
)

func createToken() Token {
	return Token{
		Symbol:         symbol,
		Decimals:       decimals,
		CirculationKey: circulation,
	}
}

func init() {
	token = createToken()

	maxSupply = maxWholeSupply
	for i := 0; i < decimals; i++ {
		maxSupply = maxSupply * 10
	}
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
		underlying interop.Hash160
	})

	if len(args.underlying) != interop.Hash160Len {
		panic("incorrect length of contract script hash")
	}

	// The underlying token reference is immutable for the contract lifetime.
	storage.Put(ctx, underlyingKey, args.underlying)

	runtime.Log("wrap contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("wrap contract updated")
}

// Symbol is a NEP-17 standard method that returns wrapper token symbol.
func Symbol() string {
	return token.Symbol
}

// Decimals is a NEP-17 standard method that returns precision of wrapper
// token balances.
func Decimals() int {
	return token.Decimals
}

// TotalSupply is a NEP-17 standard method that returns the amount of wrapper
// token in circulation. It never exceeds MaxSupply.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return token.getSupply(ctx)
}

// MaxSupply returns the fixed wrapper supply cap.
func MaxSupply() int {
	return maxSupply
}

// BalanceOf is a NEP-17 standard method that returns wrapper token balance of
// the specified account.
func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return token.balanceOf(ctx, account)
}

// Transfer is a NEP-17 standard method that transfers wrapper token from one
// account to another. It can be invoked by the account owner or by the
// account itself when the account is a contract.
//
// It produces Transfer notification and calls onNEP17Payment method of the
// receiver when the receiver is a deployed contract.
func Transfer(from, to interop.Hash160, amount int, data any) bool {
	ctx := storage.GetContext()
	return token.transfer(ctx, from, to, amount, data)
}

// Underlying returns script hash of the wrapped elastic token. It is set on
// deploy and never changes.
func Underlying() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return underlyingHash(ctx)
}

// TotalUnderlying returns the amount of underlying units redeemable against
// the whole wrapper circulation at the current exchange rate.
func TotalUnderlying() int {
	ctx := storage.GetReadOnlyContext()
	return wrapToUnderlying(token.getSupply(ctx), underlyingSupply(ctx))
}

// BalanceOfUnderlying returns the amount of underlying units redeemable
// against the wrapper balance of the specified account. The value is derived
// from the live underlying supply, so it changes with every rebase while the
// account's share of circulation stays the same.
func BalanceOfUnderlying(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return wrapToUnderlying(token.balanceOf(ctx, account), underlyingSupply(ctx))
}

// UnderlyingToWrapper converts underlying units to wrapper units at the
// current exchange rate, rounding down.
func UnderlyingToWrapper(amount int) int {
	ctx := storage.GetReadOnlyContext()
	return underlyingToWrap(amount, underlyingSupply(ctx))
}

// WrapperToUnderlying converts wrapper units to underlying units at the
// current exchange rate, rounding down.
func WrapperToUnderlying(amount int) int {
	ctx := storage.GetReadOnlyContext()
	return wrapToUnderlying(amount, underlyingSupply(ctx))
}

// Mint locks underlying units of the from account in the vault and mints
// exactly amount of wrapper token to the same account. It returns the amount
// of underlying units pulled into the vault.
//
// It produces Deposit and Transfer notifications.
func Mint(from interop.Hash160, amount int) int {
	common.CheckOwnerWitness(from)
	ctx := storage.GetContext()
	return mintTo(ctx, from, from, amount)
}

// MintFor is like Mint but wrapper token is minted to the to account while
// underlying units are pulled from the from account.
func MintFor(from, to interop.Hash160, amount int) int {
	common.CheckOwnerWitness(from)
	ctx := storage.GetContext()
	return mintTo(ctx, from, to, amount)
}

// Burn burns exactly amount of wrapper token from the from account and
// releases the equivalent underlying units from the vault back to it. It
// returns the amount of underlying units released.
//
// It produces Withdraw and Transfer notifications.
func Burn(from interop.Hash160, amount int) int {
	common.CheckOwnerWitness(from)
	ctx := storage.GetContext()
	return burnTo(ctx, from, from, amount)
}

// BurnTo is like Burn but underlying units are pushed to the to account.
func BurnTo(from, to interop.Hash160, amount int) int {
	common.CheckOwnerWitness(from)
	ctx := storage.GetContext()
	return burnTo(ctx, from, to, amount)
}

// BurnAll burns the entire wrapper balance of the from account and releases
// the equivalent underlying units back to it. It returns the amount of
// underlying units released.
func BurnAll(from interop.Hash160) int {
	common.CheckOwnerWitness(from)
	ctx := storage.GetContext()
	return burnTo(ctx, from, from, token.balanceOf(ctx, from))
}

// BurnAllTo is like BurnAll but underlying units are pushed to the to account.
func BurnAllTo(from, to interop.Hash160) int {
	common.CheckOwnerWitness(from)
	ctx := storage.GetContext()
	return burnTo(ctx, from, to, token.balanceOf(ctx, from))
}

// Deposit locks exactly amount of underlying units of the from account in the
// vault and mints the equivalent wrapper token to the same account. It
// returns the amount of wrapper token minted.
//
// It produces Deposit and Transfer notifications.
func Deposit(from interop.Hash160, amount int) int {
	common.CheckOwnerWitness(from)
	ctx := storage.GetContext()
	return depositTo(ctx, from, from, amount)
}

// DepositFor is like Deposit but wrapper token is minted to the to account
// while underlying units are pulled from the from account.
func DepositFor(from, to interop.Hash160, amount int) int {
	common.CheckOwnerWitness(from)
	ctx := storage.GetContext()
	return depositTo(ctx, from, to, amount)
}

// Withdraw burns the wrapper equivalent of exactly amount underlying units
// from the from account and pushes these units back to it. It returns the
// amount of wrapper token burnt.
//
// It produces Withdraw and Transfer notifications.
func Withdraw(from interop.Hash160, amount int) int {
	common.CheckOwnerWitness(from)
	ctx := storage.GetContext()
	return withdrawTo(ctx, from, from, amount)
}

// WithdrawTo is like Withdraw but underlying units are pushed to the to
// account.
func WithdrawTo(from, to interop.Hash160, amount int) int {
	common.CheckOwnerWitness(from)
	ctx := storage.GetContext()
	return withdrawTo(ctx, from, to, amount)
}

// WithdrawAll burns the entire wrapper balance of the from account and pushes
// the equivalent underlying units back to it. It returns the amount of
// underlying units pushed.
func WithdrawAll(from interop.Hash160) int {
	common.CheckOwnerWitness(from)
	ctx := storage.GetContext()
	return burnTo(ctx, from, from, token.balanceOf(ctx, from))
}

// WithdrawAllTo is like WithdrawAll but underlying units are pushed to the to
// account.
func WithdrawAllTo(from, to interop.Hash160) int {
	common.CheckOwnerWitness(from)
	ctx := storage.GetContext()
	return burnTo(ctx, from, to, token.balanceOf(ctx, from))
}

// OnNEP17Payment reacts to underlying token transfers into the vault. Assets
// other than the underlying token are rejected. Direct transfers bypassing
// Deposit are accepted but mint nothing: the exchange rate is derived from
// the underlying supply, never from the custody balance, so such transfers
// are inert donations.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	ctx := storage.GetReadOnlyContext()
	if !runtime.GetCallingScriptHash().Equals(underlyingHash(ctx)) {
		panic("only the underlying token is accepted")
	}
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// mintTo pulls the underlying equivalent of wrapAmount from payer and mints
// wrapAmount to the to account. The pull must succeed before any wrapper
// token appears, so a failed custody transfer never leaves unbacked
// circulation. A mint whose underlying cost floors to zero is rejected, it
// would create wrapper token backed by nothing.
func mintTo(ctx storage.Context, payer, to interop.Hash160, wrapAmount int) int {
	amount := wrapToUnderlying(wrapAmount, underlyingSupply(ctx))
	if amount == 0 && wrapAmount > 0 {
		panic("mint amount too small")
	}

	pull(ctx, payer, amount)
	token.mint(ctx, to, wrapAmount)

	runtime.Notify("Deposit", payer, to, amount, wrapAmount)
	return amount
}

// depositTo pulls exactly amount underlying units from payer and mints the
// wrapper equivalent to the to account.
func depositTo(ctx storage.Context, payer, to interop.Hash160, amount int) int {
	wrapAmount := underlyingToWrap(amount, underlyingSupply(ctx))

	pull(ctx, payer, amount)
	token.mint(ctx, to, wrapAmount)

	runtime.Notify("Deposit", payer, to, amount, wrapAmount)
	return wrapAmount
}

// burnTo burns wrapAmount from the from account and pushes the underlying
// equivalent to the rcv account. The burn strictly precedes the push: a
// reentrant call fired by the receiving contract observes the already
// decremented wrapper balance and cannot withdraw the same units twice.
func burnTo(ctx storage.Context, from, rcv interop.Hash160, wrapAmount int) int {
	amount := wrapToUnderlying(wrapAmount, underlyingSupply(ctx))

	token.burn(ctx, from, wrapAmount)
	push(ctx, rcv, amount)

	runtime.Notify("Withdraw", from, rcv, amount, wrapAmount)
	return amount
}

// withdrawTo burns the wrapper equivalent of amount from the from account and
// pushes exactly amount underlying units to the rcv account. Burn before
// push, same as burnTo. A withdrawal whose wrapper cost floors to zero is
// rejected, it would move custody without burning anything.
func withdrawTo(ctx storage.Context, from, rcv interop.Hash160, amount int) int {
	wrapAmount := underlyingToWrap(amount, underlyingSupply(ctx))
	if wrapAmount == 0 && amount > 0 {
		panic("withdraw amount too small")
	}

	token.burn(ctx, from, wrapAmount)
	push(ctx, rcv, amount)

	runtime.Notify("Withdraw", from, rcv, amount, wrapAmount)
	return wrapAmount
}

// underlyingToWrap converts underlying units to wrapper units at the given
// underlying supply: amount * maxSupply / supply, rounded down. Rounding
// never creates wrapper value out of thin air.
func underlyingToWrap(amount, supply int) int {
	if amount < 0 {
		panic("negative amount")
	}
	if supply <= 0 {
		panic("no underlying supply")
	}

	return amount * maxSupply / supply
}

// wrapToUnderlying converts wrapper units to underlying units at the given
// underlying supply: amount * supply / maxSupply, rounded down.
func wrapToUnderlying(amount, supply int) int {
	if amount < 0 {
		panic("negative amount")
	}
	if supply <= 0 {
		panic("no underlying supply")
	}

	return amount * supply / maxSupply
}

// underlyingSupply queries the live total supply of the underlying token. It
// is never cached: every conversion observes the supply as of the current
// transaction.
func underlyingSupply(ctx storage.Context) int {
	return contract.Call(underlyingHash(ctx), "totalSupply", contract.ReadOnly).(int)
}

// pull transfers amount of underlying units from the account into the vault.
func pull(ctx storage.Context, from interop.Hash160, amount int) {
	self := runtime.GetExecutingScriptHash()
	transferred := contract.Call(underlyingHash(ctx), "transfer",
		contract.All, from, self, amount, nil).(bool)
	if !transferred {
		panic("failed to pull underlying assets")
	}
}

// push transfers amount of underlying units from the vault to the account.
func push(ctx storage.Context, to interop.Hash160, amount int) {
	self := runtime.GetExecutingScriptHash()
	transferred := contract.Call(underlyingHash(ctx), "transfer",
		contract.All, self, to, amount, nil).(bool)
	if !transferred {
		panic("failed to push underlying assets")
	}
}

func underlyingHash(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, underlyingKey).(interop.Hash160)
}

// getSupply gets the token circulation value from VM storage.
func (t Token) getSupply(ctx storage.Context) int {
	supply := storage.Get(ctx, t.CirculationKey)
	if supply != nil {
		return supply.(int)
	}

	return 0
}

func (t Token) balanceOf(ctx storage.Context, holder interop.Hash160) int {
	data := storage.Get(ctx, balanceKey(holder))
	if data != nil {
		return data.(int)
	}

	return 0
}

func (t Token) transfer(ctx storage.Context, from, to interop.Hash160, amount int, data any) bool {
	if amount < 0 {
		panic("negative amount")
	}

	if len(to) != interop.Hash160Len || !isUsableAddress(from) {
		runtime.Log("bad script hashes")
		return false
	}

	amountFrom := t.balanceOf(ctx, from)
	if amountFrom < amount {
		runtime.Log("not enough assets")
		return false
	}

	if amountFrom == amount {
		storage.Delete(ctx, balanceKey(from))
	} else {
		storage.Put(ctx, balanceKey(from), amountFrom-amount)
	}

	storage.Put(ctx, balanceKey(to), t.balanceOf(ctx, to)+amount)

	runtime.Notify("Transfer", from, to, amount)
	postTransfer(from, to, amount, data)

	return true
}

// mint increases the balance of the to account and the circulation by amount.
// It panics when the circulation would exceed the supply cap.
func (t Token) mint(ctx storage.Context, to interop.Hash160, amount int) {
	if amount < 0 {
		panic("negative amount")
	}
	if len(to) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}

	supply := t.getSupply(ctx)
	if supply+amount > maxSupply {
		panic("wrapper supply cap exceeded")
	}

	storage.Put(ctx, balanceKey(to), t.balanceOf(ctx, to)+amount)
	storage.Put(ctx, t.CirculationKey, supply+amount)

	runtime.Notify("Transfer", interop.Hash160(nil), to, amount)
	postTransfer(nil, to, amount, nil)
}

// burn decreases the balance of the from account and the circulation by
// amount. It panics when the account balance is too low.
func (t Token) burn(ctx storage.Context, from interop.Hash160, amount int) {
	if amount < 0 {
		panic("negative amount")
	}

	amountFrom := t.balanceOf(ctx, from)
	if amountFrom < amount {
		panic("insufficient wrapper balance")
	}

	if amountFrom == amount {
		storage.Delete(ctx, balanceKey(from))
	} else {
		storage.Put(ctx, balanceKey(from), amountFrom-amount)
	}

	supply := t.getSupply(ctx)
	if supply < amount {
		panic("negative circulation after burn")
	}
	storage.Put(ctx, t.CirculationKey, supply-amount)

	runtime.Notify("Transfer", from, interop.Hash160(nil), amount)
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

func balanceKey(holder interop.Hash160) []byte {
	return append([]byte{balancePrefix}, holder...)
}
