package search

import "strings"

// WordOverlap computes Jaccard similarity between two texts over their
// lowercase whitespace-tokenized word sets:
// |intersection| / |union|. Returns 0 when both texts are empty.
func WordOverlap(a, b string) float64 {
	aWords := wordSet(a)
	bWords := wordSet(b)

	if len(aWords) == 0 && len(bWords) == 0 {
		return 0
	}

	intersection := 0
	for word := range aWords {
		if bWords[word] {
			intersection++
		}
	}

	union := len(aWords) + len(bWords) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}

// wordSet lowercases and whitespace-tokenizes text into a set.
func wordSet(text string) map[string]bool {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]bool, len(words))
	for _, word := range words {
		set[word] = true
	}
	return set
}
