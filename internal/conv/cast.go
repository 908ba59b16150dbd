package conv

import (
	"fmt"
	"math"
)

// IntToUint64 converts int to uint64 safely.
func IntToUint64(v int) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint64 (negative)", v)
	}
	return uint64(v), nil
}

// Uint64ToInt converts uint64 to int safely.
func Uint64ToInt(v uint64) (int, error) {
	if v > uint64(math.MaxInt) {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int (too large)", v)
	}
	return int(v), nil
}

// MulUint64 multiplies two uint64 values and reports overflow.
func MulUint64(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	res := a * b
	if res/a != b {
		return 0, fmt.Errorf("integer overflow: %d * %d exceeds uint64", a, b)
	}
	return res, nil
}

// MulUint64N multiplies a sequence of uint64 values and reports overflow.
func MulUint64N(vs ...uint64) (uint64, error) {
	res := uint64(1)
	for _, v := range vs {
		var err error
		res, err = MulUint64(res, v)
		if err != nil {
			return 0, err
		}
	}
	return res, nil
}
