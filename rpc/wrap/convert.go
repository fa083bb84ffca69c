package wrap

import (
	"errors"
	"math/big"
)

// Decimals is the wrapper token precision.
const Decimals = 18

// MaxSupply is the fixed wrapper supply cap: 10M whole units in Fixed18. It
// mirrors the on-chain constant of the Wrap contract.
var MaxSupply = new(big.Int).Mul(big.NewInt(10_000_000),
	new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil))

var (
	// ErrZeroSupply is returned by conversions when the elastic token
	// supply is not positive, there is no valid exchange rate then.
	ErrZeroSupply = errors.New("elastic token has no supply")
	// ErrNegativeAmount is returned by conversions on negative amounts.
	ErrNegativeAmount = errors.New("negative amount")
)

// UnderlyingToWrapper converts underlying units to wrapper units at the given
// underlying total supply: amount * MaxSupply / supply, rounded down. It is
// the client-side mirror of the contract conversion and computes exactly the
// same integer result.
func UnderlyingToWrapper(amount, supply *big.Int) (*big.Int, error) {
	if err := checkConversion(amount, supply); err != nil {
		return nil, err
	}

	res := new(big.Int).Mul(amount, MaxSupply)
	return res.Quo(res, supply), nil
}

// WrapperToUnderlying converts wrapper units to underlying units at the given
// underlying total supply: amount * supply / MaxSupply, rounded down.
func WrapperToUnderlying(amount, supply *big.Int) (*big.Int, error) {
	if err := checkConversion(amount, supply); err != nil {
		return nil, err
	}

	res := new(big.Int).Mul(amount, supply)
	return res.Quo(res, MaxSupply), nil
}

func checkConversion(amount, supply *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if supply.Sign() <= 0 {
		return ErrZeroSupply
	}
	return nil
}
