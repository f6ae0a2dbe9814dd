package game

// Player indices as reported by the engine. Index 0 is gaia.
const (
	Gaia     = 0
	Player   = 1
	Opponent = 2
)

// Player states reported in State.Players[i].State.
const (
	Active   = "active"
	Won      = "won"
	Defeated = "defeated"
)

// Outcome is the result of a single scenario run.
type Outcome int

const (
	PlayerWin Outcome = iota + 1
	OpponentWin
	Timeout // The scenario hit its step cap before anyone won
)

func (o Outcome) String() string {
	switch o {
	case PlayerWin:
		return "player"
	case OpponentWin:
		return "opponent"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// OutcomeOf maps the index of the winning player to an Outcome from the
// scripted player's perspective.
func OutcomeOf(winner int) Outcome {
	if winner == Player {
		return PlayerWin
	}
	return OpponentWin
}
