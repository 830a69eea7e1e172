package resolution

import "regexp"

// Order references look like ORD001: the literal prefix ORD (case-sensitive)
// followed by exactly three digits.
var orderIDPattern = regexp.MustCompile(`ORD[0-9]{3}`)

// ExtractOrderID returns the first order reference found in free text.
// Absence is a normal outcome, not an error; callers escalate on it.
func ExtractOrderID(message string) (string, bool) {
	m := orderIDPattern.FindString(message)
	if m == "" {
		return "", false
	}
	return m, true
}
