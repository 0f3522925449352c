package app

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"regexp"
)

// Token is an opaque credential handed out on join: two independent 64-bit
// random values rendered as 32 lowercase hex characters.
type Token string

var tokenPattern = regexp.MustCompile(`^[0-9a-fA-F]{32}$`)

// ValidToken reports whether s has the shape of a token. Malformed strings
// are rejected before any lookup.
func ValidToken(s string) bool { return tokenPattern.MatchString(s) }

// PlayerTokens maps tokens to dog ids.
type PlayerTokens struct {
	byToken map[Token]uint32
	byDog   map[uint32]Token
}

func NewPlayerTokens() *PlayerTokens {
	return &PlayerTokens{
		byToken: make(map[Token]uint32),
		byDog:   make(map[uint32]Token),
	}
}

// Issue generates a fresh token for the dog and registers it.
func (t *PlayerTokens) Issue(dogID uint32) (Token, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	hi := binary.LittleEndian.Uint64(buf[:8])
	lo := binary.LittleEndian.Uint64(buf[8:])
	token := Token(fmt.Sprintf("%016x%016x", hi, lo))
	t.Register(token, dogID)
	return token, nil
}

// Register binds an existing token to a dog. Snapshot restore uses it to
// keep issued tokens valid across restarts.
func (t *PlayerTokens) Register(token Token, dogID uint32) {
	t.byToken[token] = dogID
	t.byDog[dogID] = token
}

func (t *PlayerTokens) Find(token Token) (uint32, bool) {
	id, ok := t.byToken[token]
	return id, ok
}

func (t *PlayerTokens) TokenFor(dogID uint32) (Token, bool) {
	token, ok := t.byDog[dogID]
	return token, ok
}

func (t *PlayerTokens) Remove(dogID uint32) {
	token, ok := t.byDog[dogID]
	if !ok {
		return
	}
	delete(t.byDog, dogID)
	delete(t.byToken, token)
}

// All returns the full token table. Snapshot capture is its only caller.
func (t *PlayerTokens) All() map[Token]uint32 { return t.byToken }
