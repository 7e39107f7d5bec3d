package tracker

import (
	"sort"
	"strings"
)

// similarityThreshold is the minimum score for a record to be reported
// as a match.
const similarityThreshold = 80

// Match pairs a past error record with how closely it matches the
// candidate command.
type Match struct {
	Record     ErrorRecord
	Similarity int
	MatchType  string
}

// FindSimilar searches the database for records matching a candidate
// command, scored by exact command, exact normalized pattern, or word
// overlap. Records for the same project get a small boost. Results are
// sorted by descending similarity.
func (t *Tracker) FindSimilar(command, project string) []Match {
	db := t.Load()
	normalized := NormalizeCommand(command)

	var matches []Match
	for _, record := range db.Errors {
		similarity := 0
		matchType := ""

		switch {
		case record.Command == command:
			similarity = 100
			matchType = "EXACT_COMMAND"
		case record.Pattern == normalized:
			similarity = 95
			matchType = "EXACT_PATTERN"
		default:
			if overlap := wordOverlap(record.Pattern, normalized); overlap >= similarityThreshold {
				similarity = overlap
				matchType = "PATTERN_MATCH"
			}
		}

		if similarity > 0 && record.Project == project {
			similarity = min(100, similarity+5)
			matchType += "_PROJECT"
		}

		if similarity >= similarityThreshold {
			matches = append(matches, Match{
				Record:     record,
				Similarity: similarity,
				MatchType:  matchType,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	return matches
}

// wordOverlap scores two strings by shared-word ratio, 0-100.
func wordOverlap(a, b string) int {
	wordsA := wordSet(a)
	wordsB := wordSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	common := 0
	for word := range wordsA {
		if wordsB[word] {
			common++
		}
	}

	total := max(len(wordsA), len(wordsB))
	return int(float64(common)/float64(total)*100 + 0.5)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(s)) {
		set[word] = true
	}
	return set
}
