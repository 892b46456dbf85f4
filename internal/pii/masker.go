package pii

import (
	"regexp"
	"strings"
)

// Match records one masked substring.
type Match struct {
	Original string `json:"original"`
	Masked   string `json:"masked"`
}

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`\b(?:\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}\b`)
	ssnPattern   = regexp.MustCompile(`\b[0-9]{3}-?[0-9]{2}-?[0-9]{4}\b`)
	cardPattern  = regexp.MustCompile(`\b(?:[0-9]{4}[-\s]?){3}[0-9]{4}\b`)
)

// Masker detects and masks sensitive substrings. Masking is idempotent:
// masked output never matches any detection pattern again.
type Masker struct{}

// NewMasker returns a masker with the default pattern set.
func NewMasker() *Masker {
	return &Masker{}
}

// Mask replaces detectable PII in text and returns the masked text plus a
// map of what was found, keyed by category.
func (m *Masker) Mask(text string) (string, map[string][]Match) {
	masked := text
	found := make(map[string][]Match)

	apply := func(category string, pattern *regexp.Regexp, maskFn func(string) string) {
		for _, original := range pattern.FindAllString(masked, -1) {
			replacement := maskFn(original)
			masked = strings.ReplaceAll(masked, original, replacement)
			found[category] = append(found[category], Match{Original: original, Masked: replacement})
		}
	}

	// Cards before phones and SSNs: a 16-digit card number contains
	// substrings both narrower patterns would otherwise claim.
	apply("credit_cards", cardPattern, maskCard)
	apply("emails", emailPattern, maskEmail)
	apply("ssns", ssnPattern, maskSSN)
	apply("phones", phonePattern, maskPhone)

	return masked, found
}

// maskEmail keeps the first character of the local part and the full domain.
// Everything after the first character becomes asterisks so the result can
// never rematch the email pattern.
func maskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return "[EMAIL]"
	}
	name, domain := email[:at], email[at+1:]
	if len(name) == 1 {
		return "*@" + domain
	}
	return name[:1] + strings.Repeat("*", len(name)-1) + "@" + domain
}

// maskPhone keeps the last four digits.
func maskPhone(phone string) string {
	digits := digitsOnly(phone)
	if len(digits) < 4 {
		return "[PHONE]"
	}
	return "***-***-" + digits[len(digits)-4:]
}

// maskSSN keeps the last four digits.
func maskSSN(ssn string) string {
	digits := digitsOnly(ssn)
	if len(digits) < 4 {
		return "[SSN]"
	}
	return "***-**-" + digits[len(digits)-4:]
}

// maskCard keeps the last four digits.
func maskCard(card string) string {
	digits := digitsOnly(card)
	if len(digits) < 4 {
		return "[CARD]"
	}
	return "**** **** **** " + digits[len(digits)-4:]
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
