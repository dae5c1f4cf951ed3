package testutils

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/nightfall/internal/constraints"
	"github.com/KirkDiggler/nightfall/internal/domain/catalog"
	"github.com/KirkDiggler/nightfall/internal/domain/game"
	"github.com/KirkDiggler/nightfall/internal/domain/roster"
)

// CreateTestCatalog builds a catalog large enough for tables of up to 12
// players under the default policy
func CreateTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	cat, err := catalog.New(
		[]catalog.Role{
			{Name: "Villager", Alignment: catalog.AlignmentGood, Limits: catalog.Limits{Multiplicity: 4}},
			{
				Name:      "Seer",
				Alignment: catalog.AlignmentGood,
				Abilities: []catalog.Ability{{Type: catalog.AbilityMidnightChoice, Effect: "Learn a player's alignment."}},
			},
			{
				Name:      "Doctor",
				Alignment: catalog.AlignmentGood,
				Abilities: []catalog.Ability{{Type: catalog.AbilityPredawnChoice, Effect: "Protect a player."}},
			},
			{
				Name:      "Masons",
				Alignment: catalog.AlignmentGood,
				Abilities: []catalog.Ability{{Type: catalog.AbilityInitialKnowledge, Effect: "Know the other Mason.", Group: true}},
				Limits:    catalog.Limits{Multiplicity: 2, MinCopies: 2},
			},
			{
				Name:      "Werewolf",
				Alignment: catalog.AlignmentEvil,
				Abilities: []catalog.Ability{{Type: catalog.AbilityDuskChoice, Effect: "Choose a victim.", Group: true}},
				Limits:    catalog.Limits{Multiplicity: 2},
			},
			{Name: "Witch", Alignment: catalog.AlignmentEvil},
			{
				Name:         "Jester",
				Alignment:    catalog.AlignmentNeutral,
				WinCondition: catalog.WinVotedOut,
				Abilities:    []catalog.Ability{{Type: catalog.AbilityPassive, Effect: "Cannot die at night."}},
			},
			{Name: "Survivor", Alignment: catalog.AlignmentNeutral, WinCondition: catalog.WinSurvive},
		},
		[]catalog.Profession{
			{Name: "Baker", Abilities: []catalog.Ability{{Type: catalog.AbilityVote, Effect: "Abstain freely."}}},
			{Name: "Blacksmith"},
			{Name: "Fisher"},
			{Name: "Tailor"},
			{Name: "Miller"},
			{Name: "Herbalist", Abilities: []catalog.Ability{{Type: catalog.AbilityDuskChoice, Effect: "Brew a tonic."}}},
			{Name: "Farmer", Limits: catalog.Limits{Multiplicity: 4}},
			{Name: "Twin", Limits: catalog.Limits{Multiplicity: 2, MinCopies: 2}},
		},
	)
	require.NoError(t, err)
	return cat
}

// CreateTestPlayers returns n players named Player1..PlayerN
func CreateTestPlayers(t *testing.T, n int) []roster.Player {
	t.Helper()

	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Player%d", i+1)
	}
	players, err := roster.FromNames(names)
	require.NoError(t, err)
	return players
}

// CreateTestRun builds a small hand-made run
func CreateTestRun(id string, createdAt time.Time) *game.Run {
	chars := []game.Character{
		{
			Player: roster.Player{Seat: 1, Name: "Ada", DiscordUserID: "1001"},
			Role: catalog.Role{
				Name:         "Seer",
				Alignment:    catalog.AlignmentGood,
				WinCondition: catalog.WinEliminateAllEvils,
				Abilities:    []catalog.Ability{{Type: catalog.AbilityMidnightChoice, Effect: "Learn a player's alignment."}},
			},
			Profession: catalog.Profession{Name: "Baker"},
		},
		{
			Player: roster.Player{Seat: 2, Name: "Grace"},
			Role: catalog.Role{
				Name:         "Werewolf",
				Alignment:    catalog.AlignmentEvil,
				WinCondition: catalog.WinEliminateAllGood,
				Abilities:    []catalog.Ability{{Type: catalog.AbilityDuskChoice, Effect: "Choose a victim.", Group: true}},
				Limits:       catalog.Limits{Multiplicity: 2},
			},
			Profession: catalog.Profession{
				Name:      "Herbalist",
				Abilities: []catalog.Ability{{Type: catalog.AbilityPredawnChoice, Effect: "Brew a tonic."}},
			},
		},
		{
			Player: roster.Player{Seat: 3, Name: "Linus"},
			Role: catalog.Role{
				Name:           "Jester",
				Alignment:      catalog.AlignmentNeutral,
				WinCondition:   catalog.WinVotedOut,
				WinDescription: "Get voted out.",
			},
			Profession: catalog.Profession{Name: "Fisher"},
		},
	}

	realized := game.RealizedDistribution(chars)
	target := constraints.Distribution{}
	for k, v := range realized {
		target[k] = v
	}

	return &game.Run{
		ID:          id,
		Seed:        42,
		CreatedAt:   createdAt,
		PlayerCount: len(chars),
		Target:      target,
		Realized:    realized,
		Characters:  chars,
	}
}
