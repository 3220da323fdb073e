// Package match ranks known names by their similarity to a misspelled one.
// It backs the "did you mean" hints of directive tag and attribute errors.
//
// Key functions:
//   - NormalizeIdent: normalizes names for fuzzy comparison
//   - Levenshtein: computes edit distance between strings
//   - Rank: orders candidate names by similarity
//   - Suggest: returns the single confident match, if any
package match
