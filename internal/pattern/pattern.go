// Package pattern holds the pure local-part heuristics. Every signal is
// computed independently on each call; none short-circuits another, so the
// scorer can read any subset of the result.
package pattern

import (
	"regexp"
	"strings"

	"github.com/okorotenko/email-risk/pkg/types"
)

var (
	alnumRunRe    = regexp.MustCompile(`^[a-zA-Z0-9]{10,}$`)
	vowelPairRe   = regexp.MustCompile(`(?i)[aeiou]{2,}`)
	digitRe       = regexp.MustCompile(`\d`)
	digitRunRe    = regexp.MustCompile(`\d{4,}`)
	throwawayRe   = regexp.MustCompile(`^(test|demo|fake|temp|example|user|admin|no-reply|contact|info|support)`)
	sequentialRe  = regexp.MustCompile(`abc|123|xyz|qwe|asd|zxc`)
	specialRe     = regexp.MustCompile(`[+\-_.]`)
	allNumbersRe  = regexp.MustCompile(`^\d+$`)
	allLettersRe  = regexp.MustCompile(`(?i)^[a-z]+$`)
	spamWordsRe   = regexp.MustCompile(`promo|offer|deal|free|win|prize|click|buy|sale`)
	startsDigitRe = regexp.MustCompile(`^\d`)
	endsDigitRe   = regexp.MustCompile(`\d$`)
)

// disposableWords are matched as case-insensitive substrings of the local part.
var disposableWords = []string{
	"temp", "throw", "disposable", "fake", "test", "spam", "trash",
	"dummy", "sample", "trial", "guest", "anonymous", "random",
}

// Analyze computes the local-part pattern signals.
func Analyze(localPart string) types.PatternCheck {
	lower := strings.ToLower(localPart)

	return types.PatternCheck{
		// A long alphanumeric run with no vowel clusters reads as generated.
		IsRandom:           alnumRunRe.MatchString(localPart) && !vowelPairRe.MatchString(localPart),
		HasMultipleNumbers: len(digitRe.FindAllString(localPart, -1)) >= 3,
		HasRandomNumbers:   digitRunRe.MatchString(localPart),
		HasCommonWords:     throwawayRe.MatchString(lower),
		HasSequentialChars: sequentialRe.MatchString(lower),
		TooShort:           len(localPart) < 3,
		TooLong:            len(localPart) > 20,
		HasSpecialChars:    specialRe.MatchString(localPart),
		AllNumbers:         allNumbersRe.MatchString(localPart),
		AllLetters:         allLettersRe.MatchString(localPart),
		HasRepeatedChars:   hasRepeatedRun(localPart, 3),
		HasDisposableWords: containsAny(lower, disposableWords),
	}
}

// Suspicious computes the secondary local-part shape signals.
func Suspicious(localPart string) types.SuspiciousCheck {
	lower := strings.ToLower(localPart)
	upper := strings.ToUpper(localPart)

	return types.SuspiciousCheck{
		HasPlus:          strings.Contains(localPart, "+"),
		HasDots:          strings.Contains(localPart, "."),
		HasUnderscore:    strings.Contains(localPart, "_"),
		HasHyphen:        strings.Contains(localPart, "-"),
		StartsWithNumber: startsDigitRe.MatchString(localPart),
		EndsWithNumber:   endsDigitRe.MatchString(localPart),
		AllCaps:          localPart == upper,
		MixedCase:        localPart != lower && localPart != upper,
		CommonSpamWords:  spamWordsRe.MatchString(lower),
	}
}

// hasRepeatedRun reports whether s contains a run of the same byte of at
// least n characters. RE2 has no backreferences, so this is done by hand.
func hasRepeatedRun(s string, n int) bool {
	run := 1
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1] {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
