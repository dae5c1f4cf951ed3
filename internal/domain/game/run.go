package game

import (
	"time"

	"github.com/KirkDiggler/nightfall/internal/constraints"
	"github.com/KirkDiggler/nightfall/internal/domain/catalog"
	"github.com/KirkDiggler/nightfall/internal/domain/roster"
)

// Character binds a player to their secret role and public profession
type Character struct {
	Player     roster.Player      `json:"player"`
	Role       catalog.Role       `json:"role"`
	Profession catalog.Profession `json:"profession"`
}

// Abilities returns the profession's abilities followed by the role's
func (c Character) Abilities() []catalog.Ability {
	out := make([]catalog.Ability, 0, len(c.Profession.Abilities)+len(c.Role.Abilities))
	out = append(out, c.Profession.Abilities...)
	return append(out, c.Role.Abilities...)
}

// Run is one complete assignment for a game session. Characters are in seat
// order and carry the full role and profession data needed for rendering.
type Run struct {
	ID          string                   `json:"id"`
	Seed        int64                    `json:"seed"`
	CreatedAt   time.Time                `json:"created_at"`
	PlayerCount int                      `json:"player_count"`
	Target      constraints.Distribution `json:"target"`
	Realized    constraints.Distribution `json:"realized"`
	Characters  []Character              `json:"characters"`
}

// RealizedDistribution counts the alignments of the bound roles
func RealizedDistribution(characters []Character) constraints.Distribution {
	dist := make(constraints.Distribution, len(catalog.Alignments))
	for _, a := range catalog.Alignments {
		dist[a] = 0
	}
	for _, c := range characters {
		dist[c.Role.Alignment]++
	}
	return dist
}

// Clone returns a deep copy so stored runs cannot be mutated by callers
func (r *Run) Clone() *Run {
	if r == nil {
		return nil
	}
	out := *r
	out.Target = cloneDistribution(r.Target)
	out.Realized = cloneDistribution(r.Realized)
	if r.Characters != nil {
		out.Characters = make([]Character, len(r.Characters))
		for i, c := range r.Characters {
			c.Role = c.Role.Clone()
			c.Profession = c.Profession.Clone()
			out.Characters[i] = c
		}
	}
	return &out
}

func cloneDistribution(d constraints.Distribution) constraints.Distribution {
	if d == nil {
		return nil
	}
	out := make(constraints.Distribution, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
