// Package charclass categorizes characters for word-boundary scanning.
//
// Categories are plain integers so that alternative classifiers can define
// their own sets; the only meaning fixed by the engine is that negative
// categories are ignorable and runs of them are skipped before a word
// boundary is looked for.
package charclass

import "unicode"

// Category classifies a rune for word navigation.
type Category int

// Categories recognized by the default classifier.
const (
	Whitespace  Category = -1
	Word        Category = 1
	Punctuation Category = 2
)

// Ignorable reports whether the category is skipped during word scans.
func (c Category) Ignorable() bool {
	return c < 0
}

// Classifier maps a rune to its category.
type Classifier interface {
	Categorize(r rune) Category
}

// Unicode is the default classifier: letters, digits and underscore form
// words, whitespace is ignorable, and everything else is punctuation.
type Unicode struct{}

// Categorize implements Classifier.
func (Unicode) Categorize(r rune) Category {
	switch {
	case unicode.IsSpace(r):
		return Whitespace
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		return Word
	default:
		return Punctuation
	}
}
