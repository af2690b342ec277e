package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxTeamNameLength        = 200
	MaxRulesLength           = 4000
	MaxParticipantNameLength = 128

	// MaxParticipantCount is the size of the invite code space per prefix.
	MaxParticipantCount = 900
)

var (
	// codeSuffixRegex matches the numeric part of an invite code.
	codeSuffixRegex = regexp.MustCompile(`^[1-9][0-9]{2}$`)
	codePrefixRegex = regexp.MustCompile(`^[A-Z]{1,16}$`)
)

// ValidateTeamName trims and checks a team display name.
func ValidateTeamName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxTeamNameLength {
		return "", fmt.Errorf("name cannot exceed %d characters", MaxTeamNameLength)
	}
	return name, nil
}

// ValidateRules trims the rules text, falling back to def when empty.
func ValidateRules(rules, def string) (string, error) {
	rules = strings.TrimSpace(rules)
	if rules == "" {
		return def, nil
	}
	if utf8.RuneCountInString(rules) > MaxRulesLength {
		return "", fmt.Errorf("rules cannot exceed %d characters", MaxRulesLength)
	}
	return rules, nil
}

// ValidateParticipantName trims and checks a participant display name.
func ValidateParticipantName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxParticipantNameLength {
		return "", fmt.Errorf("name cannot exceed %d characters", MaxParticipantNameLength)
	}
	return name, nil
}

// ValidatePositiveInt checks that value is greater than zero.
func ValidatePositiveInt(value int64, fieldName string) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive", fieldName)
	}
	return nil
}

// NormalizeCode upper-cases and trims a user supplied invite code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeCodePrefix upper-cases a configured code prefix. Only latin
// letters are allowed so that minted codes survive NormalizeCode unchanged.
func NormalizeCodePrefix(prefix string) (string, error) {
	prefix = NormalizeCode(prefix)
	if !codePrefixRegex.MatchString(prefix) {
		return "", fmt.Errorf("code prefix must be 1-16 latin letters, got %q", prefix)
	}
	return prefix, nil
}

// IsValidCode reports whether code is prefix followed by a number in 100-999.
func IsValidCode(code, prefix string) bool {
	if !strings.HasPrefix(code, prefix) {
		return false
	}
	return codeSuffixRegex.MatchString(code[len(prefix):])
}
