package teams

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// suggestThreshold is the minimum similarity (0..1) for a name to be offered as a suggestion.
const suggestThreshold = 0.5

// Resolver maps free-form team names to canonical codes.
// It is read-only after construction and safe for concurrent use.
type Resolver struct {
	byKey   map[string]Code
	byCode  map[Code]Team
	byNBAID map[int]Code
	byBDLID map[int]Code
	ordered []Team
}

var defaultResolver = NewResolver()

// Default returns the shared resolver built from the franchise table.
func Default() *Resolver {
	return defaultResolver
}

// NewResolver builds a resolver from the fixed franchise table and alias lists.
func NewResolver() *Resolver {
	r := &Resolver{
		byKey:   make(map[string]Code),
		byCode:  make(map[Code]Team, len(franchises)),
		byNBAID: make(map[int]Code, len(franchises)),
		byBDLID: make(map[int]Code, len(franchises)),
	}
	cityCount := make(map[string]int)
	for _, t := range franchises {
		cityCount[key(t.City)]++
	}
	for _, t := range franchises {
		code := t.Code()
		r.byCode[code] = t
		r.byNBAID[t.NBAID] = code
		r.byBDLID[t.BalldontlieID] = code
		r.byKey[key(t.FullName)] = code
		r.byKey[key(t.Abbreviation)] = code
		r.byKey[key(t.Name)] = code
		if cityCount[key(t.City)] == 1 {
			r.byKey[key(t.City)] = code
		}
		r.ordered = append(r.ordered, t)
	}
	for alias, code := range aliases {
		r.byKey[alias] = code
	}
	sort.Slice(r.ordered, func(i, j int) bool {
		return r.ordered[i].Abbreviation < r.ordered[j].Abbreviation
	})
	return r
}

// Canonicalize trims and collapses whitespace and rewrites known ambiguous spellings
// ("LA Clippers", "PHX Suns") to the canonical full franchise name.
func Canonicalize(name string) string {
	cleaned := strings.Join(strings.Fields(name), " ")
	if full, ok := spellings[strings.ToLower(cleaned)]; ok {
		return full
	}
	return cleaned
}

// Resolve returns the canonical code for name. ok is false when the name is unknown;
// callers must drop the record or report it, never substitute a guess.
func (r *Resolver) Resolve(name string) (Code, bool) {
	if r == nil {
		return Unresolved, false
	}
	canonical := Canonicalize(name)
	if canonical == "" {
		return Unresolved, false
	}
	if code, ok := r.byKey[key(canonical)]; ok {
		return code, true
	}
	return Unresolved, false
}

// ResolveNBAID maps an NBA stats team id (e.g. 1610612738) to a code.
func (r *Resolver) ResolveNBAID(id int) (Code, bool) {
	if r == nil || id == 0 {
		return Unresolved, false
	}
	code, ok := r.byNBAID[id]
	return code, ok
}

// ResolveBalldontlieID maps a balldontlie team id to a code.
func (r *Resolver) ResolveBalldontlieID(id int) (Code, bool) {
	if r == nil || id == 0 {
		return Unresolved, false
	}
	code, ok := r.byBDLID[id]
	return code, ok
}

// Team returns the franchise for a code.
func (r *Resolver) Team(code Code) (Team, bool) {
	if r == nil {
		return Team{}, false
	}
	t, ok := r.byCode[Code(strings.ToUpper(string(code)))]
	return t, ok
}

// Teams returns all franchises ordered by code.
func (r *Resolver) Teams() []Team {
	if r == nil {
		return nil
	}
	out := make([]Team, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Suggest returns up to limit franchises whose names are close to name.
// Suggestions are diagnostics for unresolved input and never feed Resolve.
func (r *Resolver) Suggest(name string, limit int) []Team {
	if r == nil || limit <= 0 {
		return nil
	}
	needle := key(Canonicalize(name))
	if needle == "" {
		return nil
	}

	type scored struct {
		team       Team
		similarity float64
	}
	var matches []scored
	for _, t := range r.ordered {
		best := 0.0
		for _, candidate := range []string{t.FullName, t.Name, t.City, t.Abbreviation} {
			target := key(candidate)
			distance := fuzzy.LevenshteinDistance(needle, target)
			maxLen := float64(max(len(needle), len(target)))
			similarity := 1 - float64(distance)/maxLen
			if similarity > best {
				best = similarity
			}
		}
		if best >= suggestThreshold {
			matches = append(matches, scored{team: t, similarity: best})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].similarity > matches[j].similarity
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]Team, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.team)
	}
	return out
}

func key(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
