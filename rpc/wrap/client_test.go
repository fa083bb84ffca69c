package wrap

import (
	"errors"
	"math/big"
	"testing"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

type testInv struct {
	err error
	res *result.Invoke
}

func (t *testInv) Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	return t.res, t.err
}

func (t *testInv) CallAndExpandIterator(contract util.Uint160, operation string, i int, params ...any) (*result.Invoke, error) {
	return t.res, t.err
}
func (t *testInv) TraverseIterator(uuid.UUID, *result.Iterator, int) ([]stackitem.Item, error) {
	return nil, nil
}
func (t *testInv) TerminateSession(uuid.UUID) error {
	return nil
}

func TestReaderErrors(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.err = errors.New("bad")
	_, err := r.Underlying()
	require.Error(t, err)
	_, err = r.TotalUnderlying()
	require.Error(t, err)
	_, err = r.BalanceOfUnderlying(util.Uint160{})
	require.Error(t, err)
	_, err = r.UnderlyingToWrapper(big.NewInt(1))
	require.Error(t, err)
	_, err = r.WrapperToUnderlying(big.NewInt(1))
	require.Error(t, err)
	_, err = r.Version()
	require.Error(t, err)
}

func TestReaderValues(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	h := util.Uint160{5, 4, 3, 2, 1}
	ti.res = &result.Invoke{
		State: "HALT",
		Stack: []stackitem.Item{
			stackitem.Make(h.BytesBE()),
		},
	}
	res, err := r.Underlying()
	require.NoError(t, err)
	require.Equal(t, h, res)

	amount := fixed18(5_000_000)
	ti.res = &result.Invoke{
		State: "HALT",
		Stack: []stackitem.Item{
			stackitem.Make(amount),
		},
	}

	n, err := r.TotalUnderlying()
	require.NoError(t, err)
	require.Equal(t, amount, n)

	n, err = r.BalanceOfUnderlying(util.Uint160{})
	require.NoError(t, err)
	require.Equal(t, amount, n)

	n, err = r.UnderlyingToWrapper(big.NewInt(1))
	require.NoError(t, err)
	require.Equal(t, amount, n)

	n, err = r.WrapperToUnderlying(big.NewInt(1))
	require.NoError(t, err)
	require.Equal(t, amount, n)

	n, err = r.MaxSupply()
	require.NoError(t, err)
	require.Equal(t, amount, n)
}
