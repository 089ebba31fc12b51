package code

import (
	apperrors "pcon/internal/errors"
)

// Code is an 8-character sequential identifier: 4 uppercase ASCII letters
// followed by 4 decimal digits, e.g. "AAAA0000". Codes sort identically as
// strings and as the composite (base-26 letters, base-10 digits) integer.
type Code string

const (
	// Min is the first code issued for an empty series.
	Min Code = "AAAA0000"
	// Max is the final code of a series; it has no successor.
	Max Code = "ZZZZ9999"

	letterLen = 4
	digitLen  = 4
	codeLen   = letterLen + digitLen

	digitSpace = 10000 // digit suffix values per letter prefix
)

// Parse validates s and returns it as a Code.
func Parse(s string) (Code, error) {
	c := Code(s)
	if !c.Valid() {
		return "", apperrors.InvalidCodeFormat(s)
	}
	return c, nil
}

// Valid reports whether c matches the strict ^[A-Z]{4}[0-9]{4}$ format.
func (c Code) Valid() bool {
	if len(c) != codeLen {
		return false
	}
	for i := 0; i < letterLen; i++ {
		if c[i] < 'A' || c[i] > 'Z' {
			return false
		}
	}
	for i := letterLen; i < codeLen; i++ {
		if c[i] < '0' || c[i] > '9' {
			return false
		}
	}
	return true
}

// IsZero reports whether c is the absent value.
func (c Code) IsZero() bool {
	return c == ""
}

func (c Code) String() string {
	return string(c)
}

// OrderKey maps c onto the composite total order: the letter prefix read as
// a base-26 big-endian number (A=0) scaled by the digit space, plus the
// numeric suffix. Callers must only pass valid codes.
func (c Code) OrderKey() int64 {
	var letters int64
	for i := 0; i < letterLen; i++ {
		letters = letters*26 + int64(c[i]-'A')
	}
	var digits int64
	for i := letterLen; i < codeLen; i++ {
		digits = digits*10 + int64(c[i]-'0')
	}
	return letters*digitSpace + digits
}
