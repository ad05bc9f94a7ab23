package storelens

import (
	"regexp"
	"strings"
)

// Platform identifies a social network.
type Platform string

// Supported social platforms.
const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformTwitter   Platform = "twitter"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformPinterest Platform = "pinterest"
)

// SocialPattern lists the URL patterns recognised for one platform, in
// priority order. The first capture group of each pattern is the username.
type SocialPattern struct {
	Platform Platform
	Patterns []*regexp.Regexp
}

// SocialPatterns is the platform table, in output order.
var SocialPatterns = []SocialPattern{
	{Platform: PlatformInstagram, Patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)instagram\.com/([^/\s"']+)`),
		regexp.MustCompile(`(?i)ig\.com/([^/\s"']+)`),
	}},
	{Platform: PlatformFacebook, Patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)facebook\.com/([^/\s"']+)`),
		regexp.MustCompile(`(?i)fb\.com/([^/\s"']+)`),
	}},
	{Platform: PlatformTwitter, Patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)twitter\.com/([^/\s"']+)`),
		regexp.MustCompile(`(?i)x\.com/([^/\s"']+)`),
	}},
	{Platform: PlatformTikTok, Patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)tiktok\.com/@?([^/\s"']+)`),
	}},
	{Platform: PlatformYouTube, Patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)youtube\.com/([^/\s"']+)`),
		regexp.MustCompile(`(?i)youtu\.be/([^/\s"']+)`),
	}},
	{Platform: PlatformLinkedIn, Patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)linkedin\.com/company/([^/\s"']+)`),
	}},
	{Platform: PlatformPinterest, Patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)pinterest\.com/([^/\s"']+)`),
	}},
}

// FindSocialHandles scans raw page markup for social profile URLs.
// For each platform only the first matching pattern and its first match are
// used, so the result holds at most one handle per platform.
func FindSocialHandles(markup string) []SocialHandle {
	var handles []SocialHandle
	for _, sp := range SocialPatterns {
		for _, re := range sp.Patterns {
			m := re.FindStringSubmatch(markup)
			if m == nil {
				continue
			}
			handles = append(handles, SocialHandle{
				Platform: sp.Platform,
				URL:      schemeQualified(m[0]),
				Username: m[1],
			})
			break
		}
	}
	return handles
}

func schemeQualified(u string) string {
	if strings.HasPrefix(strings.ToLower(u), "http") {
		return u
	}
	return "https://" + u
}
