package match

import (
	"regexp"

	"github.com/lathercraft/brushmatch/internal/catalog"
)

// Fiber vocabulary. These words are a scoring and enrichment signal only;
// they never trigger a split on their own.
var fiberWords = []struct {
	fiber catalog.Fiber
	re    *regexp.Regexp
}{
	{catalog.FiberBadger, regexp.MustCompile(`(?i)\b(badger|silvertip|2[\s-]*band|two[\s-]*band|3[\s-]*band|three[\s-]*band|finest|manchurian)\b`)},
	{catalog.FiberBoar, regexp.MustCompile(`(?i)\b(boar|bristle)\b`)},
	{catalog.FiberSynthetic, regexp.MustCompile(`(?i)\b(synthetic|synth|tuxedo|cashmere|timberwolf|quartermoon)\b`)},
	{catalog.FiberHorse, regexp.MustCompile(`(?i)\b(horse(hair)?)\b`)},
}

// detectFiber returns the fiber named in text and the literal substring
// that named it, or ("", "") when the text states no fiber.
func detectFiber(text string) (catalog.Fiber, string) {
	for _, fw := range fiberWords {
		if m := fw.re.FindString(text); m != "" {
			return fw.fiber, m
		}
	}
	return "", ""
}

// hasFiberWord reports whether text names any fiber type.
func hasFiberWord(text string) bool {
	f, _ := detectFiber(text)
	return f != ""
}
