// Package gate provides the read/write gate that serializes statement
// execution against the user database.
//
// Any number of owners may read at once. One owner at a time may write, and
// the writing owner may take the gate again for reading or writing without
// blocking itself:
//
//	owner := gate.NewOwner()
//	g.WLock(owner)
//	g.RLock(owner) // does not block
//	g.RUnlock(owner)
//	g.WUnlock(owner)
//
// The gate does not queue waiters, so writers can be starved by readers that
// keep arriving. Hold it only around a single local storage statement.
package gate
