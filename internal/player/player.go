package player

import "ctchen222/tictactoe/internal/game"

// Player is a participant of a game session. It is immutable once created.
type Player struct {
	name string
	mark game.PlayerMark
}

// NewPlayer creates a player. Name and mark are taken as given.
func NewPlayer(name string, mark game.PlayerMark) *Player {
	return &Player{name: name, mark: mark}
}

func (p *Player) Name() string {
	return p.name
}

func (p *Player) Mark() game.PlayerMark {
	return p.mark
}

func (p *Player) String() string {
	return p.name + " (" + string(p.mark) + ")"
}

// Names is the pair of names proposed during setup.
type Names struct {
	First  string `validate:"required"`
	Second string `validate:"required,nefield=First"`
}
