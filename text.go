package storelens

// Size limits applied to extracted text and collections.
const (
	MaxPolicyContentLength = 2000
	MaxBrandStoryLength    = 2000
	MaxFAQAnswerLength     = 500
	MinFAQAnswerLength     = 10
	MaxFAQsPerContainer    = 5
	MaxHeroProducts        = 5
	MaxImportantLinks      = 10
)

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

