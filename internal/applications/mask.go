package applications

import "strings"

// maxDeadlineDigits is the digit count of a full DD/MM/YYYY date.
const maxDeadlineDigits = 8

// MaskDeadline shapes raw keystroke input into a progressive DD/MM/YYYY mask.
// Non-digits are dropped and digits past the eighth are discarded. The result
// is text only; no calendar checks are made.
func MaskDeadline(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) > 4:
		if len(digits) > maxDeadlineDigits {
			digits = digits[:maxDeadlineDigits]
		}
		return digits[:2] + "/" + digits[2:4] + "/" + digits[4:]
	case len(digits) > 2:
		return digits[:2] + "/" + digits[2:]
	default:
		return digits
	}
}
