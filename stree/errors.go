package stree

import "errors"

// ErrRebalanceFactorOutOfRange is returned by SetRebalParam when the
// requested alpha does not satisfy 0.5 <= alpha_num/alpha_denom < 1.0.
var ErrRebalanceFactorOutOfRange = errors.New("sgtree: rebalance factor out of range")

// ErrCapacityExceeded is returned by Insert and Append when the tree was
// built with HighAssurance and the operation would exceed its configured
// capacity. The tree (both trees, for Append) is left unchanged.
var ErrCapacityExceeded = errors.New("sgtree: capacity exceeded")
