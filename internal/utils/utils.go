package utils

// NormalizeIdentifier converts a dimension name to a valid identifier: only letters, digits, and
// underscores are allowed.
//
// Invalid characters are replaced with underscores.
// If the name starts with a digit, it is prefixed with an underscore.
func NormalizeIdentifier(name string) string {
	if name == "" {
		return ""
	}
	result := make([]rune, 0, len(name)+1)
	if isDigit(rune(name[0])) {
		result = append(result, '_')
	}
	for _, r := range name {
		if isIdentifierRune(r) {
			result = append(result, r)
		} else {
			result = append(result, '_')
		}
	}
	return string(result)
}

// IsIdentifier returns whether name is a non-empty identifier: a letter or underscore followed by
// letters, digits or underscores.
func IsIdentifier(name string) bool {
	if name == "" || isDigit(rune(name[0])) {
		return false
	}
	for _, r := range name {
		if !isIdentifierRune(r) {
			return false
		}
	}
	return true
}

// IsDecimal returns whether s is a non-empty sequence of ASCII digits.
func IsDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isDigit(r) {
			return false
		}
	}
	return true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentifierRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || isDigit(r) || r == '_'
}
