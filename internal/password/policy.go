// Package password evaluates password strength for signup and reset flows.
package password

import (
	"strings"
	"unicode"
)

// Context carries profile fields the policy checks the password against.
type Context struct {
	FirstName string
	LastName  string
	Email     string
}

var commonPasswords = []string{"password", "123456", "qwerty", "abc123", "letmein", "admin"}

var sequentialPatterns = []string{"1234", "abcd", "1111", "0000"}

// Evaluate returns advisory suggestions for the given password. An empty
// result means the password is acceptable; callers in the signup and reset
// flows treat any non-empty result as a hard rejection.
func Evaluate(pwd string, ctx Context) []string {
	var suggestions []string
	lower := strings.ToLower(pwd)

	for _, p := range commonPasswords {
		if strings.Contains(lower, p) {
			suggestions = append(suggestions, "Avoid common passwords like 'qwerty' or '123456'")
			break
		}
	}

	for _, p := range sequentialPatterns {
		if strings.Contains(lower, p) {
			suggestions = append(suggestions, "Avoid sequential numbers or letters like 1234 or abcd")
			break
		}
	}

	if hasTripleRepeat(pwd) {
		suggestions = append(suggestions, "Avoid repeated characters like 'aaa' or '111'")
	}

	if len(pwd) < 12 {
		suggestions = append(suggestions, "Consider making your password longer than 12 characters")
	}

	if ctx.FirstName != "" && strings.Contains(lower, strings.ToLower(ctx.FirstName)) {
		suggestions = append(suggestions, "Avoid using your first name in the password")
	}
	if ctx.LastName != "" && strings.Contains(lower, strings.ToLower(ctx.LastName)) {
		suggestions = append(suggestions, "Avoid using your last name in the password")
	}

	return suggestions
}

// Validate is the hard composition gate applied before an account can be
// created: at least 8 characters, one uppercase, one lowercase, one digit
// and one special character.
func Validate(pwd string) []string {
	var problems []string

	var upper, lowerC, digit, special bool
	for _, r := range pwd {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lowerC = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}

	if !upper {
		problems = append(problems, "Add at least one uppercase letter.")
	}
	if !lowerC {
		problems = append(problems, "Add at least one lowercase letter.")
	}
	if !digit {
		problems = append(problems, "Add at least one number.")
	}
	if !special {
		problems = append(problems, "Add at least one special character.")
	}
	if len(pwd) < 8 {
		problems = append(problems, "Password must be at least 8 characters long.")
	}

	return problems
}

// 3+ identical consecutive characters, e.g. "aaa" or "111".
func hasTripleRepeat(pwd string) bool {
	runes := []rune(pwd)
	for i := 2; i < len(runes); i++ {
		if runes[i] == runes[i-1] && runes[i] == runes[i-2] {
			return true
		}
	}
	return false
}
