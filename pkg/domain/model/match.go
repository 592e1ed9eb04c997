package model

// MatchKind is the outcome of a name match
type MatchKind string

const (
	MatchKindMatched   MatchKind = "matched"
	MatchKindAmbiguous MatchKind = "ambiguous"
	MatchKindNotFound  MatchKind = "not_found"
)

// MatchResult is a tagged result: Entity is set only for Matched and
// Candidates only for Ambiguous.
type MatchResult[T any] struct {
	Kind       MatchKind
	Entity     T
	Candidates []T
	Step       string // rule that decided the result
}

// Matched reports whether an entity was resolved
func (r MatchResult[T]) Matched() bool {
	return r.Kind == MatchKindMatched
}
