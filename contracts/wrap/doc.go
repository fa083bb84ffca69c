/*
Package wrap implements Wrap contract, a fixed-cap NEP-17 wrapper over a
rebasing elastic token.

Wrap is a NEP-17 compatible token with a hard supply cap of 10M units in
Fixed18. A wrapper balance represents a constant percentage of the underlying
token circulation: converting between the two denominations always uses the
live underlying total supply, so a rebase changes the redeemable amount but
never the ownership share. The exchange rate is the ratio of the underlying
supply to the supply cap and is recomputed inside every single transaction.

Deposit-type operations pull underlying units into the vault and mint wrapper
token, withdraw-type operations burn wrapper token and push underlying units
back. Each operation fixes one side of the conversion (the wrapper amount for
mint/burn, the underlying amount for deposit/withdraw) and computes the other
side with floor division. Rounding may lose up to one unit per conversion and
the remainder stays in the vault as unattributed dust; there is no method to
sweep it out. Rounding never works against the vault: a mint whose underlying
cost floors to zero and a withdrawal whose wrapper cost floors to zero are
rejected.

All operations are atomic: any failed custody transfer, an over-burn or a zero
underlying supply aborts the transaction and leaves no partial state.

# Contract notifications

Transfer notification. This is a NEP-17 standard notification.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Deposit notification. Produced by mint- and deposit-type operations after the
custody pull and the wrapper mint succeed.

	Deposit:
	  - name: payer
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: wrapAmount
	    type: Integer

Withdraw notification. Produced by burn- and withdraw-type operations after
the wrapper burn and the custody push succeed.

	Withdraw:
	  - name: from
	    type: Hash160
	  - name: receiver
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: wrapAmount
	    type: Integer
*/
package wrap

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'WrapCirculation' -> int
   amount of wrapper token in circulation in Fixed18
 - 'u' -> interop.Hash160
   script hash of the wrapped elastic token, set on deploy
 - b<interop.Hash160> -> int
   wrapper balances of all accounts

# Accounting
Contract stores wrapper balances only. Underlying-denominated views are always
derived from the live underlying supply and never persisted.
*/
