package match

import (
	"sort"
)

// DefaultMinScore is the minimum similarity for a suggestion.
const DefaultMinScore = 0.5

// Candidate is a known name scored against a target.
type Candidate struct {
	Name  string
	Score float64
}

// CandidateList is a list of candidates ordered best first.
type CandidateList []Candidate

// Rank scores every name against target. Ties are broken alphabetically so
// the order is deterministic.
func Rank(target string, names []string) CandidateList {
	candidates := make(CandidateList, 0, len(names))
	for _, name := range names {
		candidates = append(candidates, Candidate{
			Name:  name,
			Score: NormalizedSimilarity(target, name),
		})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns the name closest to target when it scores at least
// DefaultMinScore and no other name ties with it.
func Suggest(target string, names []string) (string, bool) {
	c := Rank(target, names)

	best := c.Best()
	if best == nil || best.Score < DefaultMinScore || c.IsAmbiguous(0) {
		return "", false
	}

	return best.Name, true
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Best returns the best candidate, or nil if there are none.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// IsAmbiguous reports whether the top two candidates are within threshold
// of each other. A zero threshold only flags exact ties.
func (c CandidateList) IsAmbiguous(threshold float64) bool {
	if len(c) < 2 {
		return false
	}

	return c[0].Score-c[1].Score <= threshold
}

// AboveThreshold returns the candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}
