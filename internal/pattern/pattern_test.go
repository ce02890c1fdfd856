package pattern

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeRandomSignal(t *testing.T) {
	tests := []struct {
		name      string
		localPart string
		random    bool
	}{
		{"generated hex-like run", "a1b2c3d4e5", true},
		{"long consonant run", "xkqzrtwpld", true},
		{"ordinary name", "john.smith", false},
		{"name with vowel pair", "louisbranch", false},
		{"short local part", "bob", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.localPart)
			assert.Equal(t, tt.random, got.IsRandom)
		})
	}
}

func TestAnalyzeNumberSignals(t *testing.T) {
	got := Analyze("user1234")
	assert.True(t, got.HasMultipleNumbers)
	assert.True(t, got.HasRandomNumbers)
	assert.False(t, got.AllNumbers)

	got = Analyze("12345")
	assert.True(t, got.AllNumbers)
	assert.False(t, got.AllLetters)

	got = Analyze("alice")
	assert.False(t, got.HasMultipleNumbers)
	assert.True(t, got.AllLetters)
}

func TestAnalyzeWordSignals(t *testing.T) {
	tests := []struct {
		localPart  string
		common     bool
		disposable bool
	}{
		{"test.account", true, true},
		{"tempuser", true, true},
		{"throwaway99", false, true},
		{"admin", true, false},
		{"alice", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.localPart, func(t *testing.T) {
			got := Analyze(tt.localPart)
			assert.Equal(t, tt.common, got.HasCommonWords, "HasCommonWords")
			assert.Equal(t, tt.disposable, got.HasDisposableWords, "HasDisposableWords")
		})
	}
}

func TestAnalyzeLengthBounds(t *testing.T) {
	assert.True(t, Analyze("ab").TooShort)
	assert.False(t, Analyze("abc").TooShort)
	assert.True(t, Analyze(strings.Repeat("a", 21)).TooLong)
	assert.False(t, Analyze(strings.Repeat("a", 20)).TooLong)
}

func TestAnalyzeRepeatedChars(t *testing.T) {
	assert.True(t, Analyze("aaab").HasRepeatedChars)
	assert.False(t, Analyze("aabb").HasRepeatedChars)
	assert.False(t, Analyze("abab").HasRepeatedChars)
}

func TestAnalyzeIsPure(t *testing.T) {
	first := Analyze("test1234")
	second := Analyze("test1234")
	assert.Equal(t, first, second)
}

func TestSuspicious(t *testing.T) {
	got := Suspicious("john+filter")
	assert.True(t, got.HasPlus)
	assert.False(t, got.StartsWithNumber)

	got = Suspicious("1john")
	assert.True(t, got.StartsWithNumber)
	assert.False(t, got.EndsWithNumber)

	got = Suspicious("john2")
	assert.True(t, got.EndsWithNumber)

	got = Suspicious("JOHN")
	assert.True(t, got.AllCaps)
	assert.False(t, got.MixedCase)

	got = Suspicious("John")
	assert.True(t, got.MixedCase)
	assert.False(t, got.AllCaps)

	got = Suspicious("freewin.prize")
	assert.True(t, got.CommonSpamWords)
	assert.True(t, got.HasDots)
}
