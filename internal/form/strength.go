package form

import "unicode"

// StrengthPasswordLength is what the advisory strength meter considers a
// long-enough password. Deliberately stricter than MinPasswordLength —
// a 6-character password submits fine, it just isn't called strong.
const StrengthPasswordLength = 8

// StrengthChecks reports each individual criterion of the password
// strength meter. The frontend renders one indicator per field.
type StrengthChecks struct {
	Lower  bool `json:"lower"`  // at least one lowercase letter
	Upper  bool `json:"upper"`  // at least one uppercase letter
	Digit  bool `json:"digit"`  // at least one digit
	Symbol bool `json:"symbol"` // at least one non-alphanumeric character
	Length bool `json:"length"` // at least StrengthPasswordLength runes
}

// Strong is true when every criterion passes.
func (c StrengthChecks) Strong() bool {
	return c.Lower && c.Upper && c.Digit && c.Symbol && c.Length
}

// CheckStrength evaluates the advisory strength criteria for a password.
// It runs on every keystroke, so it is a single pass over the runes with
// no allocation. The result never blocks submission.
func CheckStrength(password string) StrengthChecks {
	var c StrengthChecks
	count := 0
	for _, r := range password {
		count++
		switch {
		case unicode.IsLower(r):
			c.Lower = true
		case unicode.IsUpper(r):
			c.Upper = true
		case unicode.IsDigit(r):
			c.Digit = true
		default:
			c.Symbol = true
		}
	}
	c.Length = count >= StrengthPasswordLength
	return c
}

// PasswordStrength reports whether the password meets every advisory
// criterion: one lowercase, one uppercase, one digit, one symbol, and
// length ≥ 8.
func PasswordStrength(password string) bool {
	return CheckStrength(password).Strong()
}
