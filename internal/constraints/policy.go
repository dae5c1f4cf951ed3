package constraints

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/KirkDiggler/nightfall/internal/domain/catalog"
	"github.com/KirkDiggler/nightfall/internal/errors"
)

// DefaultMinPlayers is the smallest table the default policy supports
const DefaultMinPlayers = 5

// Distribution maps each alignment to the number of roles it receives
type Distribution map[catalog.Alignment]int

// Total sums every alignment count
func (d Distribution) Total() int {
	total := 0
	for _, n := range d {
		total += n
	}
	return total
}

func (d Distribution) String() string {
	parts := make([]string, 0, len(catalog.Alignments))
	for _, a := range catalog.Alignments {
		parts = append(parts, fmt.Sprintf("%s:%d", a, d[a]))
	}
	return strings.Join(parts, " ")
}

// Policy turns a player count into a target alignment distribution. It is
// a game-design parameter, so callers can swap in their own.
type Policy interface {
	MinPlayers() int
	Distribution(players int) (Distribution, error)
}

// PolicyFunc adapts a plain function into a Policy
type PolicyFunc struct {
	Min int
	Fn  func(players int) (Distribution, error)
}

// MinPlayers implements Policy
func (p PolicyFunc) MinPlayers() int {
	return p.Min
}

// Distribution implements Policy
func (p PolicyFunc) Distribution(players int) (Distribution, error) {
	return p.Fn(players)
}

// RatioPolicy gives Evil and Neutral a share of the table by integer
// division and fills the rest with Good
type RatioPolicy struct {
	Min int `toml:"min_players"`
	// EvilDivisor yields players/EvilDivisor Evil roles; 0 disables the share
	EvilDivisor int `toml:"evil_divisor"`
	MinEvil     int `toml:"min_evil"`
	// NeutralDivisor yields players/NeutralDivisor Neutral roles; 0 disables the share
	NeutralDivisor int `toml:"neutral_divisor"`
	MinNeutral     int `toml:"min_neutral"`
}

// DefaultPolicy is Evil = max(1, N/4), Neutral = N/6, Good = the rest
func DefaultPolicy() RatioPolicy {
	return RatioPolicy{
		Min:            DefaultMinPlayers,
		EvilDivisor:    4,
		MinEvil:        1,
		NeutralDivisor: 6,
	}
}

// MinPlayers implements Policy
func (p RatioPolicy) MinPlayers() int {
	return p.Min
}

// Distribution implements Policy
func (p RatioPolicy) Distribution(players int) (Distribution, error) {
	evil := share(players, p.EvilDivisor, p.MinEvil)
	neutral := share(players, p.NeutralDivisor, p.MinNeutral)
	if evil+neutral > players {
		return nil, errors.Configf("policy needs %d evil and %d neutral roles for only %d players",
			evil, neutral, players)
	}
	return Distribution{
		catalog.AlignmentGood:    players - evil - neutral,
		catalog.AlignmentEvil:    evil,
		catalog.AlignmentNeutral: neutral,
	}, nil
}

// Validate rejects ratio settings that can never produce a distribution
func (p RatioPolicy) Validate() error {
	if p.Min < 1 {
		return errors.Configf("min_players must be at least 1, got %d", p.Min)
	}
	if p.EvilDivisor < 0 || p.NeutralDivisor < 0 {
		return errors.Configf("divisors must not be negative")
	}
	if p.MinEvil < 0 || p.MinNeutral < 0 {
		return errors.Configf("minimum counts must not be negative")
	}
	return nil
}

func share(players, divisor, floor int) int {
	n := 0
	if divisor > 0 {
		n = players / divisor
	}
	if n < floor {
		return floor
	}
	return n
}

// LoadPolicyFile reads a TOML RatioPolicy; missing keys keep the defaults
func LoadPolicyFile(path string) (RatioPolicy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return RatioPolicy{}, fmt.Errorf("read policy %s: %w", path, err)
	}
	p := DefaultPolicy()
	if err := toml.Unmarshal(raw, &p); err != nil {
		return RatioPolicy{}, errors.WrapWithCode(err, errors.CodeConfig, fmt.Sprintf("parse policy %s", path))
	}
	if err := p.Validate(); err != nil {
		return RatioPolicy{}, errors.Wrapf(err, "policy %s", path)
	}
	return p, nil
}
