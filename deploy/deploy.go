/*
Package deploy provides Neo blockchain deployment of the elastic token and
the wrapper vault contracts.
*/
package deploy

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for contract deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to the
	// blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by its
	// address. GetContractStateByHash returns an error with 'Unknown contract'
	// substring if the requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// CommonDeployPrm groups common deployment parameters of the smart contract.
type CommonDeployPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// ElasticContractPrm groups deployment parameters of the Elastic token
// contract.
type ElasticContractPrm struct {
	Common CommonDeployPrm

	// Account receiving the whole initial supply.
	InitialHolder util.Uint160
	// Initial supply in Fixed18, must be positive.
	InitialSupply *big.Int
}

// WrapContractPrm groups deployment parameters of the Wrap contract.
type WrapContractPrm struct {
	Common CommonDeployPrm
}

// Prm groups all parameters of the deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	LocalAccount *wallet.Account

	ElasticContract ElasticContractPrm
	WrapContract    WrapContractPrm
}

// Contracts groups addresses of the contracts put on the chain by Deploy.
type Contracts struct {
	Elastic util.Uint160
	Wrap    util.Uint160
}

// Deploy puts the elastic token and the wrapper vault contracts on the chain
// represented by given Prm.Blockchain. The elastic token goes first, its
// resulting address is passed to the Wrap contract as the immutable
// underlying token reference.
//
// Deploy is idempotent: contracts already existing under their calculated
// addresses are left untouched. Deployment progress is logged in detail.
func Deploy(ctx context.Context, prm Prm) (Contracts, error) {
	var res Contracts

	switch {
	case prm.Blockchain == nil:
		return res, errors.New("missing blockchain client")
	case prm.LocalAccount == nil:
		return res, errors.New("missing local account")
	case prm.ElasticContract.InitialSupply == nil || prm.ElasticContract.InitialSupply.Sign() <= 0:
		return res, errors.New("initial elastic supply must be positive")
	}

	if prm.Logger == nil {
		prm.Logger = zap.NewNop()
	}

	act, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return res, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	syncPrm := syncContractPrm{
		logger:     prm.Logger,
		blockchain: prm.Blockchain,
		actor:      act,
		manager:    management.New(act),
		deployer:   prm.LocalAccount.ScriptHash(),
	}

	prm.Logger.Info("synchronizing elastic token contract with the chain...")

	syncPrm.common = prm.ElasticContract.Common
	syncPrm.deployArgs = []any{prm.ElasticContract.InitialHolder, prm.ElasticContract.InitialSupply}

	res.Elastic, err = syncContract(ctx, syncPrm)
	if err != nil {
		return res, fmt.Errorf("sync elastic token contract: %w", err)
	}

	prm.Logger.Info("elastic token contract successfully synchronized",
		zap.Stringer("address", res.Elastic))

	prm.Logger.Info("synchronizing wrap contract with the chain...")

	syncPrm.common = prm.WrapContract.Common
	syncPrm.deployArgs = []any{res.Elastic}

	res.Wrap, err = syncContract(ctx, syncPrm)
	if err != nil {
		return res, fmt.Errorf("sync wrap contract: %w", err)
	}

	prm.Logger.Info("wrap contract successfully synchronized",
		zap.Stringer("address", res.Wrap))

	return res, nil
}

type syncContractPrm struct {
	logger     *zap.Logger
	blockchain Blockchain
	actor      *actor.Actor
	manager    *management.Contract
	deployer   util.Uint160
	common     CommonDeployPrm
	deployArgs []any
}

// syncContract deploys the contract unless it is already present on the chain
// under its calculated address.
func syncContract(ctx context.Context, prm syncContractPrm) (util.Uint160, error) {
	if err := ctx.Err(); err != nil {
		return util.Uint160{}, err
	}

	addr := state.CreateContractHash(prm.deployer, prm.common.NEF.Checksum, prm.common.Manifest.Name)

	_, err := prm.blockchain.GetContractStateByHash(addr)
	if err == nil {
		prm.logger.Info("contract is already deployed, skip",
			zap.String("name", prm.common.Manifest.Name), zap.Stringer("address", addr))
		return addr, nil
	}

	txHash, vub, err := prm.manager.Deploy(&prm.common.NEF, &prm.common.Manifest, prm.deployArgs)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("send deployment transaction: %w", err)
	}

	prm.logger.Info("deployment transaction sent, waiting for persist...",
		zap.String("name", prm.common.Manifest.Name), zap.Stringer("tx", txHash))

	aer, err := prm.actor.Wait(txHash, vub, nil)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("wait for deployment transaction: %w", err)
	}
	if aer.VMState != vmstate.Halt {
		return util.Uint160{}, fmt.Errorf("deployment transaction failed: %s", aer.FaultException)
	}

	return addr, nil
}
