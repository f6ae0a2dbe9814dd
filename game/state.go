package game

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// PlayerData is the per-player section of an observation.
type PlayerData struct {
	Name  string `json:"name,omitempty"`
	Civ   string `json:"civ,omitempty"`
	State string `json:"state"`
}

// State is a single observation returned by reset or step. It is never
// mutated after decoding.
type State struct {
	Players     []PlayerData    `json:"players"`
	Entities    map[string]Unit `json:"entities"`
	TimeElapsed float64         `json:"timeElapsed,omitempty"`
}

// ParseState decodes an observation as returned by the engine.
func ParseState(data []byte) (*State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	return &s, nil
}

// PlayerState returns the state string of player i, or "" if there is no such player.
func (s *State) PlayerState(i int) string {
	if i < 0 || i >= len(s.Players) {
		return ""
	}
	return s.Players[i].State
}

// IsActive reports whether the scripted player is still playing.
func (s *State) IsActive() bool {
	return s.PlayerState(Player) == Active
}

// Winner returns the index of the first player whose state is "won".
func (s *State) Winner() (int, bool) {
	for i, p := range s.Players {
		if p.State == Won {
			return i, true
		}
	}
	return -1, false
}

// Units returns the units owned by the given player, ordered by id.
func (s *State) Units(owner int) []Unit {
	units := []Unit{}
	for _, u := range s.Entities {
		if u.Owner == owner {
			units = append(units, u)
		}
	}
	sort.Slice(units, func(i, j int) bool { return units[i].ID < units[j].ID })
	return units
}

// Unit is an entity as seen in an observation.
type Unit struct {
	ID           int        `json:"id"`
	Owner        int        `json:"owner"`
	Template     string     `json:"template"`
	Pos          [2]float64 `json:"position"`
	Hitpoints    float64    `json:"hitpoints"`
	MaxHitpoints float64    `json:"maxHitpoints"`
}

func (u Unit) Position() Point {
	return Point{X: u.Pos[0], Z: u.Pos[1]}
}

// Health returns the unit's hitpoints, or the fraction of its maximum when ratio is set.
func (u Unit) Health(ratio bool) float64 {
	if !ratio {
		return u.Hitpoints
	}
	if u.MaxHitpoints <= 0 {
		return 0
	}
	return u.Hitpoints / u.MaxHitpoints
}

// IDs returns the entity ids of the given units.
func IDs(units []Unit) []int {
	ids := make([]int, len(units))
	for i, u := range units {
		ids[i] = u.ID
	}
	return ids
}

// NewState builds an observation from player states and units. Entities are
// keyed by unit id, matching what the engine sends.
func NewState(players []string, units ...Unit) *State {
	s := &State{
		Players:  make([]PlayerData, len(players)),
		Entities: make(map[string]Unit, len(units)),
	}
	for i, p := range players {
		s.Players[i] = PlayerData{State: p}
	}
	for _, u := range units {
		s.Entities[strconv.Itoa(u.ID)] = u
	}
	return s
}
