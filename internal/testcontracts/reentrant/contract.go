package reentrant

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Reentrancy modes. The contract reacts to an incoming underlying transfer at
// most once per configuration.
const (
	ModeIdle = iota
	// ModeWithdrawAgain repeats the same withdraw from inside the custody push.
	ModeWithdrawAgain
	// ModeDrain withdraws the whole remaining balance from inside the custody push.
	ModeDrain
)

const (
	wrapKey   = "wrap"
	tokenKey  = "token"
	modeKey   = "mode"
	amountKey = "amount"
)

// Configure sets the wrap and underlying token hashes, the reentrancy mode
// and the amount used by ModeWithdrawAgain.
func Configure(wrap, token interop.Hash160, mode, amount int) {
	ctx := storage.GetContext()
	storage.Put(ctx, wrapKey, wrap)
	storage.Put(ctx, tokenKey, token)
	storage.Put(ctx, modeKey, mode)
	storage.Put(ctx, amountKey, amount)
}

// Withdraw makes the contract withdraw the given amount of underlying units
// from the wrap vault to itself.
func Withdraw(amount int) int {
	ctx := storage.GetReadOnlyContext()
	self := runtime.GetExecutingScriptHash()
	wrap := storage.Get(ctx, wrapKey).(interop.Hash160)
	return contract.Call(wrap, "withdraw", contract.All, self, amount).(int)
}

// OnNEP17Payment fires the configured reentrant call when the underlying
// token pushes assets to this contract.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	ctx := storage.GetContext()

	token := storage.Get(ctx, tokenKey)
	if token == nil || !runtime.GetCallingScriptHash().Equals(token.(interop.Hash160)) {
		return
	}

	mode := storage.Get(ctx, modeKey).(int)
	if mode == ModeIdle {
		return
	}

	// React once, the nested push lands here again.
	storage.Put(ctx, modeKey, ModeIdle)

	self := runtime.GetExecutingScriptHash()
	wrap := storage.Get(ctx, wrapKey).(interop.Hash160)

	if mode == ModeWithdrawAgain {
		contract.Call(wrap, "withdraw", contract.All, self, storage.Get(ctx, amountKey).(int))
	} else {
		contract.Call(wrap, "withdrawAll", contract.All, self)
	}
}
