package app

import "testing"

func TestValidToken(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"180ce56d94512149f81dc7d8d6aa1cfa", true},
		{"180CE56D94512149F81DC7D8D6AA1CFA", true}, // case-insensitive match
		{"", false},
		{"180ce56d94512149f81dc7d8d6aa1cf", false},   // 31 chars
		{"180ce56d94512149f81dc7d8d6aa1cfa0", false}, // 33 chars
		{"g80ce56d94512149f81dc7d8d6aa1cfa", false},  // non-hex
	}
	for _, tc := range tests {
		if got := ValidToken(tc.token); got != tc.want {
			t.Errorf("ValidToken(%q) = %v, want %v", tc.token, got, tc.want)
		}
	}
}

func TestPlayerTokens_IssueAndResolve(t *testing.T) {
	tokens := NewPlayerTokens()

	token, err := tokens.Issue(7)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !ValidToken(string(token)) {
		t.Fatalf("issued token %q malformed", token)
	}
	if len(token) != 32 {
		t.Fatalf("token length = %d, want 32", len(token))
	}

	dogID, ok := tokens.Find(token)
	if !ok || dogID != 7 {
		t.Fatalf("Find = %d, %v; want 7, true", dogID, ok)
	}
	if got, ok := tokens.TokenFor(7); !ok || got != token {
		t.Fatalf("TokenFor = %q, %v", got, ok)
	}

	tokens.Remove(7)
	if _, ok := tokens.Find(token); ok {
		t.Fatal("token resolvable after removal")
	}
}

func TestPlayerTokens_Unique(t *testing.T) {
	tokens := NewPlayerTokens()
	seen := make(map[Token]bool)
	for i := uint32(0); i < 100; i++ {
		token, err := tokens.Issue(i)
		if err != nil {
			t.Fatal(err)
		}
		if seen[token] {
			t.Fatalf("token %q issued twice", token)
		}
		seen[token] = true
	}
}

func TestPlayers_Registry(t *testing.T) {
	players := NewPlayers()
	players.Add(0, "town")
	players.Add(1, "town")
	players.Add(2, "port")

	if p, ok := players.FindByDog(1); !ok || p.MapID != "town" {
		t.Fatalf("FindByDog(1) = %+v, %v", p, ok)
	}

	players.Remove(1)
	if _, ok := players.FindByDog(1); ok {
		t.Fatal("removed player still findable")
	}
	all := players.All()
	if len(all) != 2 || all[0].DogID != 0 || all[1].DogID != 2 {
		t.Fatalf("players after removal = %+v", all)
	}
	// Index survives the compaction.
	if p, ok := players.FindByDog(2); !ok || p.MapID != "port" {
		t.Fatalf("FindByDog(2) after removal = %+v, %v", p, ok)
	}
}
