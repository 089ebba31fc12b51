package code

import (
	"fmt"

	apperrors "pcon/internal/errors"
)

// Next computes the successor of last within a series. A zero last means the
// series is empty and bootstraps at Min. The digit suffix increments first;
// at 9999 it resets to 0000 and the letter prefix advances as a base-26
// counter, rightmost position first, Z wrapping to A with carry. Max has no
// successor and fails with SERIES_EXHAUSTED.
//
// Next is pure: no I/O, same output for the same input.
func Next(last Code) (Code, error) {
	if last.IsZero() {
		return Min, nil
	}
	if !last.Valid() {
		return "", apperrors.InvalidCodeFormat(last.String())
	}

	digits := 0
	for i := letterLen; i < codeLen; i++ {
		digits = digits*10 + int(last[i]-'0')
	}
	if digits < digitSpace-1 {
		return Code(string(last[:letterLen]) + fmt.Sprintf("%04d", digits+1)), nil
	}

	// Digit suffix overflowed: carry into the letter prefix.
	letters := []byte(last[:letterLen])
	carried := false
	for i := letterLen - 1; i >= 0; i-- {
		if letters[i] < 'Z' {
			letters[i]++
			carried = true
			break
		}
		letters[i] = 'A'
	}
	if !carried {
		return "", apperrors.SeriesExhausted(last.String())
	}
	return Code(string(letters) + "0000"), nil
}
