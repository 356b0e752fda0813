package core

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
)

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	tagPunctuation = regexp.MustCompile(`[^\w\s/-]`)
	keywordStrip   = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
)

// NormalizeTags canonicalizes heterogeneous tag representations into a
// deduplicated, insertion-ordered list of lowercase tokens.
//
// Accepted shapes: a []string or []any of strings; a comma-separated
// string; a JSON-array-encoded string; a brace-delimited array literal
// (quoted or unquoted elements); or a list that was previously exploded
// character-by-character, which is rejoined and re-parsed.
//
// Each token is trimmed, lowercased, internal whitespace collapsed, and
// stripped of punctuation except hyphen and forward slash. Tokens of
// length <= 1 are dropped. Never returns an error; unparseable input
// yields whatever partial list was accumulated.
func NormalizeTags(raw any) []string {
	candidates := parseTagInput(raw)

	normalized := make([]string, 0, len(candidates))
	for _, tag := range candidates {
		clean := strings.ToLower(strings.TrimSpace(tag))
		clean = whitespaceRun.ReplaceAllString(clean, " ")
		clean = tagPunctuation.ReplaceAllString(clean, "")
		if len(clean) > 1 {
			normalized = append(normalized, clean)
		}
	}

	// Deduplicate while preserving first-seen order
	seen := make(map[string]bool, len(normalized))
	unique := make([]string, 0, len(normalized))
	for _, tag := range normalized {
		if !seen[tag] {
			seen[tag] = true
			unique = append(unique, tag)
		}
	}
	return unique
}

// parseTagInput dispatches on the runtime shape of raw and converges on a
// flat string slice of candidate tags.
func parseTagInput(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		return parseTagString(v)
	case []string:
		return repairExplodedList(v)
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				tags = append(tags, s)
			}
		}
		return repairExplodedList(tags)
	default:
		return nil
	}
}

// parseTagString handles the string representations: JSON array, brace
// array literal, comma-separated, or a single bare tag.
func parseTagString(s string) []string {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return nil
	case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
		return decodeJSONTags(s)
	case strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"):
		return splitArrayLiteral(s[1 : len(s)-1])
	case strings.Contains(s, ","):
		parts := strings.Split(s, ",")
		tags := make([]string, 0, len(parts))
		for _, part := range parts {
			tags = append(tags, strings.TrimSpace(part))
		}
		return tags
	default:
		return []string{s}
	}
}

// repairExplodedList detects a list that is really one string exploded
// character-by-character (long, starts with an opening bracket or brace,
// ends with the matching close). The characters are rejoined and the
// result re-parsed: JSON first, then the brace-literal form. If neither
// parse succeeds the original list is kept as-is.
func repairExplodedList(tags []string) []string {
	if len(tags) <= 10 {
		return tags
	}
	first, last := tags[0], tags[len(tags)-1]
	matched := (first == "{" && last == "}") || (first == "[" && last == "]")
	if !matched {
		return tags
	}

	joined := strings.Join(tags, "")
	if parsed := decodeJSONTags(joined); parsed != nil {
		return parsed
	}
	if strings.HasPrefix(joined, "{") && strings.HasSuffix(joined, "}") {
		return splitArrayLiteral(joined[1 : len(joined)-1])
	}
	return tags
}

// decodeJSONTags decodes a JSON array, keeping only string elements.
// Returns nil if the input is not a JSON array.
func decodeJSONTags(s string) []string {
	var items []any
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil
	}
	tags := make([]string, 0, len(items))
	for _, item := range items {
		if str, ok := item.(string); ok {
			tags = append(tags, str)
		}
	}
	return tags
}

// splitArrayLiteral splits the interior of a brace array literal on
// commas, respecting quoted substrings that may themselves contain commas.
func splitArrayLiteral(content string) []string {
	var tags []string
	var current strings.Builder
	inQuotes := false

	flush := func() {
		tag := strings.TrimSpace(current.String())
		tag = strings.Trim(tag, `"`)
		if tag != "" {
			tags = append(tags, tag)
		}
		current.Reset()
	}

	for _, ch := range content {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
			current.WriteRune(ch)
		case ch == ',' && !inQuotes:
			flush()
		default:
			current.WriteRune(ch)
		}
	}
	flush()
	return tags
}

// Common stop words excluded from keyword extraction.
var keywordStopWords = map[string]bool{
	"the": true, "and": true, "for": true, "that": true, "with": true,
	"from": true, "this": true, "have": true, "has": true, "had": true,
	"was": true, "were": true, "are": true, "you": true, "your": true,
	"his": true, "her": true, "its": true, "but": true, "not": true,
	"out": true, "about": true, "into": true, "they": true, "their": true,
	"them": true, "who": true, "what": true, "when": true, "where": true,
	"why": true, "how": true, "will": true, "would": true, "can": true,
	"could": true, "should": true, "between": true, "after": true,
	"before": true, "over": true, "under": true, "onto": true, "more": true,
	"most": true, "some": true, "any": true, "each": true, "other": true,
	"than": true, "also": true, "may": true, "might": true, "must": true,
	"shall": true, "been": true, "being": true,
}

// ExtractKeywords derives fallback tags from content by token frequency,
// skipping stop words and tokens of length <= 2. Ties break alphabetically.
func ExtractKeywords(content string, maxTags int) []string {
	text := keywordStrip.ReplaceAllString(strings.ToLower(content), " ")

	freq := make(map[string]int)
	for _, token := range strings.Fields(text) {
		if len(token) <= 2 || keywordStopWords[token] {
			continue
		}
		freq[token]++
	}

	tokens := make([]string, 0, len(freq))
	for token := range freq {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if freq[tokens[i]] != freq[tokens[j]] {
			return freq[tokens[i]] > freq[tokens[j]]
		}
		return tokens[i] < tokens[j]
	})

	if len(tokens) > maxTags {
		tokens = tokens[:maxTags]
	}
	return tokens
}

// MergeTags combines existing and new tags, normalizing and deduplicating,
// capped at maxTotal.
func MergeTags(existing, added []string, maxTotal int) []string {
	all := make([]string, 0, len(existing)+len(added))
	all = append(all, existing...)
	all = append(all, added...)

	merged := NormalizeTags(all)
	if len(merged) > maxTotal {
		merged = merged[:maxTotal]
	}
	return merged
}
