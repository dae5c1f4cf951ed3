package roster

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/nightfall/internal/errors"
)

// Player is a participant supplied by the caller
type Player struct {
	// Seat is the 1-based position in the roster
	Seat int    `json:"seat" yaml:"seat"`
	Name string `json:"name" yaml:"name"`
	// DiscordUserID is optional and only used for delivery
	DiscordUserID string `json:"discord_user_id,omitempty" yaml:"discord_user_id,omitempty"`
}

type rosterFile struct {
	Players []Player `yaml:"players"`
}

// FromNames builds a roster from display names in seat order
func FromNames(names []string) ([]Player, error) {
	players := make([]Player, len(names))
	for i, name := range names {
		players[i] = Player{Name: name}
	}
	return Normalize(players)
}

// ParseList splits a comma separated list of names
func ParseList(list string) ([]Player, error) {
	if strings.TrimSpace(list) == "" {
		return nil, errors.Configf("player list is empty")
	}
	return FromNames(strings.Split(list, ","))
}

// LoadFile reads a YAML roster of the form {players: [{name, discord_user_id}]}
func LoadFile(path string) ([]Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster %s: %w", path, err)
	}
	var f rosterFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeConfig, fmt.Sprintf("parse roster %s", path))
	}
	return Normalize(f.Players)
}

// Normalize copies players in order, trimming names and IDs, rejecting blank
// or case-insensitively repeated names, and numbering seats from 1
func Normalize(players []Player) ([]Player, error) {
	seen := make(map[string]int, len(players))
	out := make([]Player, len(players))
	for i, p := range players {
		p.Name = strings.TrimSpace(p.Name)
		p.DiscordUserID = strings.TrimSpace(p.DiscordUserID)
		if p.Name == "" {
			return nil, errors.Configf("player %d has an empty name", i+1)
		}
		key := strings.ToLower(p.Name)
		if prev, dup := seen[key]; dup {
			return nil, errors.Configf("player name %q is used by seats %d and %d", p.Name, prev, i+1)
		}
		seen[key] = i + 1
		p.Seat = i + 1
		out[i] = p
	}
	return out, nil
}
