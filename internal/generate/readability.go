// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"fmt"
	"strings"
	"unicode"
)

// FleschKincaidGrade returns the Flesch-Kincaid grade level of text:
//
//	0.39 * (words / sentences) + 11.8 * (syllables / words) - 15.59
//
// Tokens without letters or digits (Markdown markers, bullets) are not words.
// Text without words scores 0.
func FleschKincaidGrade(text string) float64 {
	var words, syllables int
	for _, tok := range strings.Fields(text) {
		w := strings.ToLower(strings.TrimFunc(tok, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}))
		if w == "" {
			continue
		}
		words++
		syllables += countSyllables(w)
	}
	if words == 0 {
		return 0
	}
	sentences := countSentences(text)
	return 0.39*(float64(words)/float64(sentences)) + 11.8*(float64(syllables)/float64(words)) - 15.59
}

// FormatReadability renders a grade the way it is shown to users.
func FormatReadability(score float64) string {
	return fmt.Sprintf("Flesch-Kincaid Grade Level: %.2f", score)
}

// countSentences counts runs of sentence terminators, at least one.
func countSentences(text string) int {
	n := 0
	inRun := false
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if !inRun {
				n++
			}
			inRun = true
			continue
		}
		inRun = false
	}
	if n == 0 {
		return 1
	}
	return n
}

// countSyllables estimates syllables as vowel groups, dropping a silent
// trailing e (but not "-le"). Every word has at least one.
func countSyllables(word string) int {
	n := 0
	prevVowel := false
	for _, r := range word {
		v := strings.ContainsRune("aeiouy", r)
		if v && !prevVowel {
			n++
		}
		prevVowel = v
	}
	if n > 1 && strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") {
		n--
	}
	if n < 1 {
		return 1
	}
	return n
}
