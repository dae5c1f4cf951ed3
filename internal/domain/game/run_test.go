package game_test

import (
	"testing"

	"github.com/KirkDiggler/nightfall/internal/constraints"
	"github.com/KirkDiggler/nightfall/internal/domain/catalog"
	"github.com/KirkDiggler/nightfall/internal/domain/game"
	"github.com/KirkDiggler/nightfall/internal/domain/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func character(seat int, name string, alignment catalog.Alignment) game.Character {
	return game.Character{
		Player: roster.Player{Seat: seat, Name: name},
		Role: catalog.Role{
			Name:      string(alignment) + "-role",
			Alignment: alignment,
			Abilities: []catalog.Ability{{Type: catalog.AbilityDuskChoice, Effect: "role effect"}},
			Limits:    catalog.Limits{TierLimits: map[catalog.Tier]int{catalog.Tier1: 1}},
		},
		Profession: catalog.Profession{
			Name:      "Baker",
			Abilities: []catalog.Ability{{Type: catalog.AbilityPassive, Effect: "bakes"}},
		},
	}
}

func TestRealizedDistribution(t *testing.T) {
	chars := []game.Character{
		character(1, "Ada", catalog.AlignmentGood),
		character(2, "Grace", catalog.AlignmentEvil),
		character(3, "Linus", catalog.AlignmentGood),
	}

	assert.Equal(t, constraints.Distribution{
		catalog.AlignmentGood:    2,
		catalog.AlignmentEvil:    1,
		catalog.AlignmentNeutral: 0,
	}, game.RealizedDistribution(chars))
}

func TestCharacter_Abilities(t *testing.T) {
	abilities := character(1, "Ada", catalog.AlignmentGood).Abilities()
	require.Len(t, abilities, 2)
	assert.Equal(t, "bakes", abilities[0].Effect)
	assert.Equal(t, "role effect", abilities[1].Effect)
}

func TestRun_Clone(t *testing.T) {
	run := &game.Run{
		ID:          "run-1",
		PlayerCount: 1,
		Target:      constraints.Distribution{catalog.AlignmentGood: 1},
		Realized:    constraints.Distribution{catalog.AlignmentGood: 1},
		Characters:  []game.Character{character(1, "Ada", catalog.AlignmentGood)},
	}

	clone := run.Clone()
	require.Equal(t, run, clone)

	clone.Target[catalog.AlignmentGood] = 7
	clone.Characters[0].Role.Abilities[0].Effect = "changed"
	clone.Characters[0].Role.TierLimits[catalog.Tier1] = 5
	clone.Characters[0].Player.Name = "Eve"

	assert.Equal(t, 1, run.Target[catalog.AlignmentGood])
	assert.Equal(t, "role effect", run.Characters[0].Role.Abilities[0].Effect)
	assert.Equal(t, 1, run.Characters[0].Role.TierLimits[catalog.Tier1])
	assert.Equal(t, "Ada", run.Characters[0].Player.Name)

	var nilRun *game.Run
	assert.Nil(t, nilRun.Clone())
}
