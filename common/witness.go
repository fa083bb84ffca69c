package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/neo"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

var (
	// ErrCommitteeWitnessFailed appears when the method must be
	// called by the committee but was not.
	ErrCommitteeWitnessFailed = "committee witness check failed"
	// ErrOwnerWitnessFailed appears when the method must be called
	// by an owner of some assets but was not.
	ErrOwnerWitnessFailed = "owner witness check failed"
)

// CommitteeAddress returns multi signature address of the committee.
func CommitteeAddress() []byte {
	committee := neo.GetCommittee()
	return Multiaddress(committee)
}

// Multiaddress returns `M = N/2+1` multi signature account address for N keys.
func Multiaddress(n []interop.PublicKey) []byte {
	threshold := len(n)/2 + 1

	keys := []interop.PublicKey{}
	for _, key := range n {
		keys = append(keys, key)
	}

	return contract.CreateMultisigAccount(threshold, keys)
}

// CheckCommitteeWitness checks witness of the committee multi signature
// account. It panics with ErrCommitteeWitnessFailed message on fail.
func CheckCommitteeWitness() {
	if !runtime.CheckWitness(CommitteeAddress()) {
		panic(ErrCommitteeWitnessFailed)
	}
}

// CheckOwnerWitness checks that the transaction is witnessed by the account
// owner or that the account itself is the calling contract. It panics with
// ErrOwnerWitnessFailed message on fail.
func CheckOwnerWitness(owner interop.Hash160) {
	if len(owner) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}

	if runtime.CheckWitness(owner) {
		return
	}

	// A contract owns its assets when it is the direct caller.
	callingScriptHash := runtime.GetCallingScriptHash()
	if callingScriptHash.Equals(owner) {
		return
	}

	panic(ErrOwnerWitnessFailed)
}
