// Package digest folds field values into a running CRC-32 remainder.
//
// Each helper takes the current remainder and returns the updated one, so a
// value type can digest itself as a chain of calls seeded by its caller.
package digest

import (
	"encoding/binary"
	"math"

	"github.com/klauspost/crc32"
)

var table = crc32.MakeTable(crc32.IEEE)

// Bytes folds raw bytes into crc.
func Bytes(crc uint32, p []byte) uint32 {
	return crc32.Update(crc, table, p)
}

// Float64 folds the IEEE-754 bit pattern of v into crc. Negative zero is
// folded as positive zero so that values comparing equal digest equally.
func Float64(crc uint32, v float64) uint32 {
	if v == 0 {
		v = 0
	}
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	return Bytes(crc, b[:])
}

// Int folds a signed integer into crc.
func Int(crc uint32, v int) uint32 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(int64(v)))
	return Bytes(crc, b[:])
}

// Bool folds a flag into crc.
func Bool(crc uint32, v bool) uint32 {
	b := [1]byte{0}
	if v {
		b[0] = 1
	}
	return Bytes(crc, b[:])
}
