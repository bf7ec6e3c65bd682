package teams

import (
	"sync"
	"testing"
)

func TestTableHasThirtyUniqueFranchises(t *testing.T) {
	seen := make(map[Code]bool)
	nbaIDs := make(map[int]bool)
	for _, team := range franchises {
		if len(team.Abbreviation) != 3 {
			t.Fatalf("expected 3-letter code, got %q", team.Abbreviation)
		}
		if seen[team.Code()] {
			t.Fatalf("duplicate code %s", team.Abbreviation)
		}
		if nbaIDs[team.NBAID] {
			t.Fatalf("duplicate nba id %d", team.NBAID)
		}
		seen[team.Code()] = true
		nbaIDs[team.NBAID] = true
	}
	if len(seen) != 30 {
		t.Fatalf("expected 30 franchises, got %d", len(seen))
	}
}

func TestResolveVariants(t *testing.T) {
	r := NewResolver()
	cases := []struct {
		name string
		want Code
	}{
		{"Los Angeles Clippers", "LAC"},
		{"LA Clippers", "LAC"},
		{"L.A. Clippers", "LAC"},
		{"  la   clippers ", "LAC"},
		{"L.A. Lakers", "LAL"},
		{"PHX Suns", "PHX"},
		{"OKC Thunder", "OKC"},
		{"Boston", "BOS"},
		{"Celtics", "BOS"},
		{"celtics", "BOS"},
		{"Sixers", "PHI"},
		{"Philadelphia Sixers", "PHI"},
		{"Trail Blazers", "POR"},
		{"BKN", "BKN"},
		{"BRK", "BKN"},
		{"PHO", "PHX"},
		{"Golden State", "GSW"},
	}
	for _, tc := range cases {
		got, ok := r.Resolve(tc.name)
		if !ok || got != tc.want {
			t.Fatalf("Resolve(%q) = %q, %v; want %q", tc.name, got, ok, tc.want)
		}
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	r := NewResolver()
	for _, team := range r.Teams() {
		first, ok := r.Resolve(team.FullName)
		if !ok {
			t.Fatalf("expected %s to resolve", team.FullName)
		}
		second, ok := r.Resolve(string(first))
		if !ok || second != first {
			t.Fatalf("expected resolving %s twice to be stable, got %s", team.FullName, second)
		}
	}
}

func TestResolveUnknownIsUnresolved(t *testing.T) {
	r := NewResolver()
	for _, name := range []string{"", "   ", "Los Angeles", "LA", "Real Madrid", "Team World"} {
		code, ok := r.Resolve(name)
		if ok || code != Unresolved {
			t.Fatalf("expected %q to be unresolved, got %q", name, code)
		}
	}
}

func TestResolveByIDs(t *testing.T) {
	r := NewResolver()
	if code, ok := r.ResolveNBAID(1610612738); !ok || code != "BOS" {
		t.Fatalf("expected BOS for nba id, got %q", code)
	}
	if code, ok := r.ResolveBalldontlieID(14); !ok || code != "LAL" {
		t.Fatalf("expected LAL for balldontlie id, got %q", code)
	}
	if _, ok := r.ResolveNBAID(0); ok {
		t.Fatal("expected zero id to be unresolved")
	}
}

func TestTeamLookupIsCaseInsensitive(t *testing.T) {
	r := NewResolver()
	team, ok := r.Team("nyk")
	if !ok || team.FullName != "New York Knicks" {
		t.Fatalf("expected knicks, got %+v", team)
	}
}

func TestSuggestOffersCloseNames(t *testing.T) {
	r := NewResolver()
	got := r.Suggest("Bostn Celtcs", 3)
	if len(got) == 0 || got[0].Abbreviation != "BOS" {
		t.Fatalf("expected BOS as top suggestion, got %+v", got)
	}
	if code, ok := r.Resolve("Bostn Celtcs"); ok {
		t.Fatalf("suggestions must not leak into resolution, got %s", code)
	}
	if got := r.Suggest("zzzzzzzzzzzz", 3); len(got) != 0 {
		t.Fatalf("expected no suggestions, got %+v", got)
	}
}

func TestResolverConcurrentUse(t *testing.T) {
	r := Default()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if code, ok := r.Resolve("LA Clippers"); !ok || code != "LAC" {
				t.Errorf("unexpected resolution %q", code)
			}
		}()
	}
	wg.Wait()
}
