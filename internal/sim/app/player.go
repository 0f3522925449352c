package app

// Player links a dog to the map it plays on. Relations are id-keyed; the
// live entities stay in the model.
type Player struct {
	DogID uint32
	MapID string
}

// Players is the registry of joined players, ordered by join time.
type Players struct {
	players []Player
	byDog   map[uint32]int // dog id -> index into players
}

func NewPlayers() *Players {
	return &Players{byDog: make(map[uint32]int)}
}

func (p *Players) Add(dogID uint32, mapID string) {
	p.byDog[dogID] = len(p.players)
	p.players = append(p.players, Player{DogID: dogID, MapID: mapID})
}

func (p *Players) FindByDog(dogID uint32) (Player, bool) {
	i, ok := p.byDog[dogID]
	if !ok {
		return Player{}, false
	}
	return p.players[i], true
}

func (p *Players) Remove(dogID uint32) {
	i, ok := p.byDog[dogID]
	if !ok {
		return
	}
	delete(p.byDog, dogID)
	p.players = append(p.players[:i], p.players[i+1:]...)
	for j := i; j < len(p.players); j++ {
		p.byDog[p.players[j].DogID] = j
	}
}

// All returns the players in join order. Callers must not mutate the
// returned slice.
func (p *Players) All() []Player { return p.players }

func (p *Players) Len() int { return len(p.players) }
