/*
Package elastic implements a rebasing NEP-17 token used as the underlying
asset of the Wrap contract.

The token keeps per-account balances as fixed share counts and derives unit
balances from them: balance = shares * totalSupply / totalShares. Rebase
changes only the total supply, so every holder keeps the same percentage of
circulation across rebases. The decision when and by how much to rebase is
made off-chain, the contract only exposes the committee-gated supply
adjustment entry point.

Unit-to-share conversion on transfers uses floor division, so transferring
tiny amounts right after an expanding rebase can move slightly fewer units
than requested. This is a documented rounding artifact, not a defect.

# Contract notifications

Transfer notification. This is a NEP-17 standard notification.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Rebase notification. Produced on every supply adjustment.

	Rebase:
	  - name: newSupply
	    type: Integer
*/
package elastic

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'ElasticSupply' -> int
   current total amount of token units in Fixed18
 - 'ElasticShares' -> int
   total amount of shares backing the supply, changes only on genesis
 - s<interop.Hash160> -> int
   per-account share counts

# Accounting
Contract stores share counts of all elastic token holders; unit balances are
always derived at read time.
*/
