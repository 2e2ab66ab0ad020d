// Package errs centralises the engine's internal-invariant-violation
// error. It is the only error path the engine ever returns to a
// caller; every other abnormal input (malformed line, cancel of an
// unknown orderId, unrecognised intent kind) is a normal-path outcome
// communicated by the absence of an expected event, not by a returned
// error.
package errs

import "github.com/cockroachdb/errors"

// DuplicateOrderID reports that an orderId was inserted while already
// present in the book. It should never happen given a well-behaved
// caller and indicates a programmer error upstream.
func DuplicateOrderID(id uint32) error {
	return errors.AssertionFailedf("orderbook: duplicate orderId %d already resting", id)
}

// IndexDivergence reports that the identity map and a side's ordered
// collection disagree about an order's presence.
func IndexDivergence(id uint32) error {
	return errors.AssertionFailedf("orderbook: identity map and price index disagree on orderId %d", id)
}

// Wrap attaches msg as context to err using cockroachdb/errors'
// wrapping so the resulting error still satisfies errors.Is/As against
// the original.
func Wrap(err error, msg string) error {
	return errors.Wrap(err, msg)
}
