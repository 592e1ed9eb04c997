// Package matcher reconciles local project and person names with the names of
// remote entities.
package matcher

import (
	"strings"
	"unicode"

	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNameTooShort is returned when a name normalizes to fewer than 3 characters
var ErrNameTooShort = goerr.New("name too short for shadow identity")

const (
	StepExact        = "exact"
	StepLastSegment  = "last_segment"
	StepContains     = "contains"
	StepStartsWith   = "starts_with"
	StepFirstToken   = "first_token"
	minShadowNameLen = 3
)

// Normalize lowercases, trims and collapses inner whitespace
func Normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// lastSegment returns the normalized part after the final "/"
func lastSegment(name string) string {
	n := Normalize(name)
	if i := strings.LastIndex(n, "/"); i >= 0 {
		n = n[i+1:]
	}
	return strings.TrimSpace(n)
}

// MatchProject resolves a local project name against remote candidates.
// Rules in order: exact name, equal last "/" segment, last segment containment
// either way. The first rule with hits decides; more than one hit for the
// segment rules is Ambiguous.
func MatchProject[T any](local string, candidates []T, name func(T) string) model.MatchResult[T] {
	want := Normalize(local)
	if want == "" {
		return model.MatchResult[T]{Kind: model.MatchKindNotFound}
	}

	for _, c := range candidates {
		if Normalize(name(c)) == want {
			return model.MatchResult[T]{Kind: model.MatchKindMatched, Entity: c, Step: StepExact}
		}
	}

	seg := lastSegment(local)
	if seg == "" {
		return model.MatchResult[T]{Kind: model.MatchKindNotFound}
	}

	hits := filter(candidates, func(c T) bool {
		return lastSegment(name(c)) == seg
	})
	if r, ok := decide(hits, StepLastSegment); ok {
		return r
	}

	hits = filter(candidates, func(c T) bool {
		other := lastSegment(name(c))
		if other == "" {
			return false
		}
		return strings.Contains(other, seg) || strings.Contains(seg, other)
	})
	if r, ok := decide(hits, StepContains); ok {
		return r
	}

	return model.MatchResult[T]{Kind: model.MatchKindNotFound}
}

// MatchPerson resolves a person name against remote candidates. Rules in
// order: exact, starts-with, contains, first-token starts-with. A rule accepts
// only a single hit, or several hits of which exactly one is an exact match.
// Other multi-hit outcomes are Ambiguous.
func MatchPerson[T any](local string, candidates []T, name func(T) string) model.MatchResult[T] {
	want := Normalize(local)
	if want == "" {
		return model.MatchResult[T]{Kind: model.MatchKindNotFound}
	}
	wantToken := firstToken(want)

	rules := []struct {
		step  string
		match func(string) bool
	}{
		{StepExact, func(n string) bool { return n == want }},
		{StepStartsWith, func(n string) bool { return strings.HasPrefix(n, want) }},
		{StepContains, func(n string) bool { return strings.Contains(n, want) }},
		{StepFirstToken, func(n string) bool {
			tok := firstToken(n)
			return tok != "" && strings.HasPrefix(tok, wantToken)
		}},
	}

	for _, rule := range rules {
		hits := filter(candidates, func(c T) bool {
			return rule.match(Normalize(name(c)))
		})

		switch len(hits) {
		case 0:
			continue
		case 1:
			return model.MatchResult[T]{Kind: model.MatchKindMatched, Entity: hits[0], Step: rule.step}
		}

		exact := filter(hits, func(c T) bool {
			return Normalize(name(c)) == want
		})
		if len(exact) == 1 {
			return model.MatchResult[T]{Kind: model.MatchKindMatched, Entity: exact[0], Step: rule.step}
		}
		return model.MatchResult[T]{Kind: model.MatchKindAmbiguous, Candidates: hits, Step: rule.step}
	}

	return model.MatchResult[T]{Kind: model.MatchKindNotFound}
}

// ShadowID returns the deterministic id of an unmatched person:
// "shadow_" followed by the lowercased name with non-alphanumeric runs
// replaced by "_".
func ShadowID(name string) (string, error) {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	normalized := b.String()
	if len([]rune(normalized)) < minShadowNameLen {
		return "", goerr.Wrap(ErrNameTooShort, "cannot derive shadow id", goerr.V("name", name))
	}
	return "shadow_" + normalized, nil
}

func firstToken(n string) string {
	if fields := strings.Fields(n); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

func filter[T any](items []T, keep func(T) bool) []T {
	var out []T
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func decide[T any](hits []T, step string) (model.MatchResult[T], bool) {
	switch len(hits) {
	case 0:
		return model.MatchResult[T]{}, false
	case 1:
		return model.MatchResult[T]{Kind: model.MatchKindMatched, Entity: hits[0], Step: step}, true
	default:
		return model.MatchResult[T]{Kind: model.MatchKindAmbiguous, Candidates: hits, Step: step}, true
	}
}
