// Package detect spots the promotional "blink deal" keyword in free text.
package detect

import "regexp"

// Banners are injected as marketing copy with inconsistent casing, spacing
// and separators ("BlinkDeal", "blink_deal", "Blink  Deal"), so the pattern
// tolerates whitespace and a single underscore between the words.
var signalPattern = regexp.MustCompile(`(?i)blink\s*_?\s*deal`)

// Found reports whether text contains the promotional keyword. Multiple
// matches carry no extra meaning.
func Found(text string) bool {
	return signalPattern.MatchString(text)
}
