package hive

import "errors"

var (
	// ErrOutOfMemory indicates that a BlockSource failed to provide backing
	// storage for a new block. The container is left unchanged unless the
	// failing operation documents otherwise.
	ErrOutOfMemory = errors.New("hive: block allocation failed")

	// ErrLimits indicates block-capacity limits outside the allowable range.
	// Soft limits must satisfy 3 <= min <= max <= the skipfield maximum
	// (255 for Compact, 65535 for Hive).
	ErrLimits = errors.New("hive: block capacity limits outside allowable range")

	// ErrReserveTooLarge indicates a Reserve request beyond MaxLen.
	ErrReserveTooLarge = errors.New("hive: reserve request exceeds maximum size")

	// ErrSpliceIncompatible indicates a splice source containing a block
	// whose capacity falls outside the destination's capacity limits.
	// Reshape one of the two containers first.
	ErrSpliceIncompatible = errors.New("hive: source block capacity outside destination limits")
)
