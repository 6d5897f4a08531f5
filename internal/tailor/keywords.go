package tailor

import (
	"sort"
	"strings"
	"unicode"
)

const (
	defaultMaxKeywords = 10
	minKeywordLength   = 3
)

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		about above after again against all also and any are because been before being below between both
		but can could did does doing down during each etc few for from further had has have having her here
		hers herself him himself his how into its itself just least like more most must not now off once only
		other our ours ourselves out over own per plus same she should some such than that the their theirs them
		themselves then there these they this those through too under until upon very via was well were what
		when where which while who whom why will with within without would you your yours yourself yourselves
		ability able across experience team teams work working role candidate candidates looking join strong
		including requirements required preferred responsibilities skills years year knowledge new using use
		company job position opportunity environment
	`) {
		stopWords[w] = struct{}{}
	}
}

// MissingKeywords returns the most frequent job description terms that do not
// appear in the resume, most frequent first. At most limit terms are returned.
func MissingKeywords(resumeText, jobDescription string, limit int) []string {
	if limit <= 0 {
		return []string{}
	}

	have := make(map[string]struct{})
	for _, token := range tokenize(resumeText) {
		have[token] = struct{}{}
	}

	counts := make(map[string]int)
	for _, token := range tokenize(jobDescription) {
		if _, skip := stopWords[token]; skip {
			continue
		}
		if _, ok := have[token]; ok {
			continue
		}
		counts[token]++
	}

	keywords := make([]string, 0, len(counts))
	for token := range counts {
		keywords = append(keywords, token)
	}

	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})

	if len(keywords) > limit {
		keywords = keywords[:limit]
	}

	return keywords
}

// tokenize lowercases text and splits it into terms. Characters common in
// technology names (c++, c#, node.js) are kept inside a term.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#' && r != '.'
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		field = strings.Trim(field, ".")
		if len([]rune(field)) < minKeywordLength && !strings.ContainsAny(field, "+#") {
			continue
		}
		if isNumeric(field) {
			continue
		}
		tokens = append(tokens, field)
	}

	return tokens
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' {
			return false
		}
	}
	return true
}
