package storelens

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// falseEmailSuffixes are file extensions that look like top-level domains
// when asset names such as "logo@2x.png" appear in page content.
var falseEmailSuffixes = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".pdf"}

// phonePatterns are tried in order. The first pattern's capture groups are
// joined to form the number; the others use the whole match.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+?1?[-.\s]?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`),
	regexp.MustCompile(`\+[0-9]{1,3}[-.\s]?[0-9]{1,14}`),
	regexp.MustCompile(`\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`),
}

// Phone numbers are stored as digit strings within these bounds.
const (
	MinPhoneDigits = 10
	MaxPhoneDigits = 15
)

// FindEmails returns lower-cased email addresses in text, in first-seen
// order and without duplicates.
func FindEmails(text string) []string {
	var emails []string
	seen := make(map[string]bool)
	for _, m := range emailPattern.FindAllString(text, -1) {
		email := strings.ToLower(m)
		if seen[email] || hasFalseEmailSuffix(email) {
			continue
		}
		seen[email] = true
		emails = append(emails, email)
	}
	return emails
}

func hasFalseEmailSuffix(email string) bool {
	for _, ext := range falseEmailSuffixes {
		if strings.HasSuffix(email, ext) {
			return true
		}
	}
	return false
}

// FindPhoneNumbers returns phone numbers in text as digit strings, in
// first-seen order and without duplicates. Candidates with fewer than
// MinPhoneDigits or more than MaxPhoneDigits digits are dropped.
func FindPhoneNumbers(text string) []string {
	var phones []string
	seen := make(map[string]bool)
	add := func(candidate string) {
		digits := DigitsOnly(candidate)
		if len(digits) < MinPhoneDigits || len(digits) > MaxPhoneDigits || seen[digits] {
			return
		}
		seen[digits] = true
		phones = append(phones, digits)
	}

	for i, re := range phonePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if i == 0 {
				add(strings.Join(m[1:], ""))
				continue
			}
			add(m[0])
		}
	}
	return phones
}

// DigitsOnly strips every non-digit from s.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
