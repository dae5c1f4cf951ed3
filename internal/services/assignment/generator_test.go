package assignment_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/nightfall/internal/constraints"
	"github.com/KirkDiggler/nightfall/internal/data"
	"github.com/KirkDiggler/nightfall/internal/dice"
	mockdice "github.com/KirkDiggler/nightfall/internal/dice/mock"
	"github.com/KirkDiggler/nightfall/internal/domain/catalog"
	"github.com/KirkDiggler/nightfall/internal/domain/game"
	"github.com/KirkDiggler/nightfall/internal/errors"
	"github.com/KirkDiggler/nightfall/internal/services/assignment"
	"github.com/KirkDiggler/nightfall/internal/testutils"
)

// fixedPolicy always asks for the same distribution
func fixedPolicy(min int, good, evil, neutral int) constraints.Policy {
	return constraints.PolicyFunc{
		Min: min,
		Fn: func(int) (constraints.Distribution, error) {
			return constraints.Distribution{
				catalog.AlignmentGood:    good,
				catalog.AlignmentEvil:    evil,
				catalog.AlignmentNeutral: neutral,
			}, nil
		},
	}
}

func fourPlayerCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(
		[]catalog.Role{
			{Name: "A", Alignment: catalog.AlignmentGood},
			{Name: "B", Alignment: catalog.AlignmentGood},
			{Name: "C", Alignment: catalog.AlignmentEvil},
			{Name: "D", Alignment: catalog.AlignmentNeutral},
		},
		[]catalog.Profession{{Name: "P1"}, {Name: "P2"}, {Name: "P3"}, {Name: "P4"}},
	)
	require.NoError(t, err)
	return cat
}

func names(chars []game.Character, pick func(game.Character) string) []string {
	out := make([]string, len(chars))
	for i, c := range chars {
		out[i] = pick(c)
	}
	return out
}

func roleName(c game.Character) string       { return c.Role.Name }
func professionName(c game.Character) string { return c.Profession.Name }

func TestGenerate_FourPlayerExample(t *testing.T) {
	gen := assignment.NewGenerator(fourPlayerCatalog(t), fixedPolicy(4, 2, 1, 1))
	players := testutils.CreateTestPlayers(t, 4)

	t.Run("scripted rolls", func(t *testing.T) {
		roller := mockdice.NewManualMockRoller()
		roller.SetRolls([]int{
			2,       // good: B, then A is the only choice left
			4, 1, 2, // professions: P4, P1, P3, then P2
			1, 3, 1, // role permutation [1 3 2 0]
			4, 3, 2, // profession permutation is the identity
		})

		run, err := gen.Generate(players, roller)
		require.NoError(t, err)
		assert.Equal(t, 0, roller.Remaining())

		assert.Equal(t, []string{"A", "D", "C", "B"}, names(run.Characters, roleName))
		assert.Equal(t, []string{"P4", "P1", "P3", "P2"}, names(run.Characters, professionName))
		for i, c := range run.Characters {
			assert.Equal(t, i+1, c.Player.Seat)
			assert.Equal(t, players[i].Name, c.Player.Name)
		}
	})

	t.Run("every seed yields the same shape", func(t *testing.T) {
		for seed := int64(0); seed < 50; seed++ {
			run, err := gen.Generate(players, dice.NewSeededRoller(seed))
			require.NoError(t, err)

			assert.ElementsMatch(t, []string{"A", "B", "C", "D"}, names(run.Characters, roleName))
			assert.ElementsMatch(t, []string{"P1", "P2", "P3", "P4"}, names(run.Characters, professionName))
			assert.Equal(t, constraints.Distribution{
				catalog.AlignmentGood:    2,
				catalog.AlignmentEvil:    1,
				catalog.AlignmentNeutral: 1,
			}, run.Realized)
		}
	})
}

func TestGenerate_Properties(t *testing.T) {
	cat, err := data.DefaultCatalog()
	require.NoError(t, err)
	policy := constraints.DefaultPolicy()
	gen := assignment.NewGenerator(cat, policy)

	for n := 5; n <= 25; n++ {
		players := testutils.CreateTestPlayers(t, n)
		target, err := constraints.Target(policy, n)
		require.NoError(t, err)

		for seed := int64(1); seed <= 10; seed++ {
			run, err := gen.Generate(players, dice.NewSeededRoller(seed*int64(n)))
			require.NoError(t, err, "n=%d seed=%d", n, seed)

			require.Len(t, run.Characters, n)
			assert.Equal(t, n, run.PlayerCount)
			assert.Equal(t, target, run.Target)
			assert.Equal(t, target, run.Realized)

			roleCounts := map[string]int{}
			professionCounts := map[string]int{}
			for i, c := range run.Characters {
				assert.Equal(t, i+1, c.Player.Seat)
				roleCounts[c.Role.Name]++
				professionCounts[c.Profession.Name]++
				assert.True(t, cat.HasRole(c.Role))
				assert.True(t, cat.HasProfession(c.Profession))
			}

			for name, count := range roleCounts {
				role, _ := cat.Role(name)
				assert.LessOrEqual(t, count, role.Limit(n), "role %s at n=%d", name, n)
				assert.GreaterOrEqual(t, count, role.BlockSize(), "role %s at n=%d", name, n)
			}
			for name, count := range professionCounts {
				prof, _ := cat.Profession(name)
				assert.LessOrEqual(t, count, prof.Limit(n), "profession %s at n=%d", name, n)
				assert.GreaterOrEqual(t, count, prof.BlockSize(), "profession %s at n=%d", name, n)
			}
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	gen := assignment.NewGenerator(testutils.CreateTestCatalog(t), constraints.DefaultPolicy())
	players := testutils.CreateTestPlayers(t, 9)

	first, err := gen.Generate(players, dice.NewSeededRoller(1234))
	require.NoError(t, err)
	second, err := gen.Generate(players, dice.NewSeededRoller(1234))
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestGenerate_BelowMinimum(t *testing.T) {
	gen := assignment.NewGenerator(testutils.CreateTestCatalog(t), constraints.DefaultPolicy())
	roller := mockdice.NewManualMockRoller()

	run, err := gen.Generate(testutils.CreateTestPlayers(t, 3), roller)
	require.Error(t, err)
	assert.Nil(t, run)
	assert.True(t, errors.IsConfig(err), "want config error, got %v", err)
}

func TestGenerate_InsufficientEvil(t *testing.T) {
	cat, err := catalog.New(
		[]catalog.Role{
			{Name: "Villager", Alignment: catalog.AlignmentGood, Limits: catalog.Limits{Multiplicity: 12}},
			{Name: "Werewolf", Alignment: catalog.AlignmentEvil},
		},
		[]catalog.Profession{{Name: "Farmer", Limits: catalog.Limits{Multiplicity: 12}}},
	)
	require.NoError(t, err)

	// floor(N/4) evil with no neutral share
	policy := constraints.RatioPolicy{Min: 5, EvilDivisor: 4, MinEvil: 1}
	gen := assignment.NewGenerator(cat, policy)
	roller := mockdice.NewManualMockRoller()

	run, err := gen.Generate(testutils.CreateTestPlayers(t, 12), roller)
	require.Error(t, err)
	assert.Nil(t, run)
	assert.True(t, errors.IsInsufficientCatalog(err))

	meta := errors.GetMeta(err)
	assert.Equal(t, "EVIL", meta[errors.MetaCategory])
	assert.Equal(t, 3, meta[errors.MetaNeeded])
	assert.Equal(t, 1, meta[errors.MetaAvailable])
}

func TestGenerate_InsufficientProfessions(t *testing.T) {
	cat, err := catalog.New(
		[]catalog.Role{
			{Name: "Villager", Alignment: catalog.AlignmentGood, Limits: catalog.Limits{Multiplicity: 4}},
			{Name: "Werewolf", Alignment: catalog.AlignmentEvil},
		},
		[]catalog.Profession{{Name: "Baker"}, {Name: "Fisher"}},
	)
	require.NoError(t, err)

	gen := assignment.NewGenerator(cat, fixedPolicy(5, 4, 1, 0))
	_, err = gen.Generate(testutils.CreateTestPlayers(t, 5), mockdice.NewManualMockRoller())
	require.Error(t, err)
	assert.True(t, errors.IsInsufficientCatalog(err))
	assert.Equal(t, constraints.CategoryProfession, errors.GetMeta(err)[errors.MetaCategory])
}

func TestGenerate_Blocks(t *testing.T) {
	t.Run("block that cannot fit is never drawn", func(t *testing.T) {
		cat, err := catalog.New(
			[]catalog.Role{
				{Name: "Seer", Alignment: catalog.AlignmentGood},
				{Name: "Doctor", Alignment: catalog.AlignmentGood},
				{Name: "Masons", Alignment: catalog.AlignmentGood, Limits: catalog.Limits{Multiplicity: 2, MinCopies: 2}},
				{Name: "Werewolf", Alignment: catalog.AlignmentEvil},
			},
			[]catalog.Profession{
				{Name: "Baker"}, {Name: "Fisher"}, {Name: "Tailor"}, {Name: "Miller"},
			},
		)
		require.NoError(t, err)
		gen := assignment.NewGenerator(cat, fixedPolicy(4, 3, 1, 0))
		players := testutils.CreateTestPlayers(t, 4)

		// three good slots only work as Masons plus one single
		for seed := int64(0); seed < 100; seed++ {
			run, err := gen.Generate(players, dice.NewSeededRoller(seed))
			require.NoError(t, err, "seed %d", seed)

			counts := map[string]int{}
			for _, c := range run.Characters {
				counts[c.Role.Name]++
			}
			assert.Equal(t, 2, counts["Masons"], "seed %d", seed)
			assert.Equal(t, 1, counts["Seer"]+counts["Doctor"], "seed %d", seed)
		}
	})

	t.Run("block shape that can never fit", func(t *testing.T) {
		cat, err := catalog.New(
			[]catalog.Role{
				{Name: "Masons", Alignment: catalog.AlignmentGood, Limits: catalog.Limits{Multiplicity: 2, MinCopies: 2}},
				{Name: "Werewolf", Alignment: catalog.AlignmentEvil, Limits: catalog.Limits{Multiplicity: 3}},
			},
			[]catalog.Profession{{Name: "Farmer", Limits: catalog.Limits{Multiplicity: 4}}},
		)
		require.NoError(t, err)
		gen := assignment.NewGenerator(cat, fixedPolicy(4, 1, 3, 0))
		roller := mockdice.NewManualMockRoller()

		_, err = gen.Generate(testutils.CreateTestPlayers(t, 4), roller)
		require.Error(t, err)
		assert.True(t, errors.IsInsufficientCatalog(err))
		assert.Equal(t, "GOOD", errors.GetMeta(err)[errors.MetaCategory])
	})

	t.Run("professions arrive as blocks", func(t *testing.T) {
		cat, err := catalog.New(
			[]catalog.Role{
				{Name: "Villager", Alignment: catalog.AlignmentGood, Limits: catalog.Limits{Multiplicity: 4}},
				{Name: "Werewolf", Alignment: catalog.AlignmentEvil},
			},
			[]catalog.Profession{
				{Name: "Twin", Limits: catalog.Limits{Multiplicity: 2, MinCopies: 2}},
				{Name: "Baker"}, {Name: "Fisher"}, {Name: "Tailor"},
			},
		)
		require.NoError(t, err)
		gen := assignment.NewGenerator(cat, fixedPolicy(5, 4, 1, 0))

		for seed := int64(0); seed < 50; seed++ {
			run, err := gen.Generate(testutils.CreateTestPlayers(t, 5), dice.NewSeededRoller(seed))
			require.NoError(t, err)

			twins := 0
			for _, c := range run.Characters {
				if c.Profession.Name == "Twin" {
					twins++
				}
			}
			// five seats from four singles forces the pair
			assert.Equal(t, 2, twins)
		}
	})
}

func TestGenerate_TierAndMinPlayers(t *testing.T) {
	cat, err := catalog.New(
		[]catalog.Role{
			{Name: "Villager", Alignment: catalog.AlignmentGood, Limits: catalog.Limits{Multiplicity: 10}},
			{Name: "Mayor", Alignment: catalog.AlignmentGood, Limits: catalog.Limits{MinPlayers: 8}},
			{
				Name:      "Werewolf",
				Alignment: catalog.AlignmentEvil,
				Limits: catalog.Limits{
					Multiplicity: 3,
					TierLimits:   map[catalog.Tier]int{catalog.Tier1: 1},
				},
			},
			{Name: "Witch", Alignment: catalog.AlignmentEvil},
		},
		[]catalog.Profession{{Name: "Farmer", Limits: catalog.Limits{Multiplicity: 12}}},
	)
	require.NoError(t, err)

	t.Run("small table", func(t *testing.T) {
		gen := assignment.NewGenerator(cat, fixedPolicy(5, 5, 2, 0))
		for seed := int64(0); seed < 30; seed++ {
			run, err := gen.Generate(testutils.CreateTestPlayers(t, 7), dice.NewSeededRoller(seed))
			require.NoError(t, err)

			counts := map[string]int{}
			for _, c := range run.Characters {
				counts[c.Role.Name]++
			}
			assert.Zero(t, counts["Mayor"])
			assert.Equal(t, 1, counts["Werewolf"])
			assert.Equal(t, 1, counts["Witch"])
		}
	})

	t.Run("tier limit caps evil capacity", func(t *testing.T) {
		gen := assignment.NewGenerator(cat, fixedPolicy(5, 4, 3, 0))
		_, err := gen.Generate(testutils.CreateTestPlayers(t, 7), mockdice.NewManualMockRoller())
		assert.True(t, errors.IsInsufficientCatalog(err))
		assert.Equal(t, 2, errors.GetMeta(err)[errors.MetaAvailable])
	})

	t.Run("larger table unlocks entries", func(t *testing.T) {
		gen := assignment.NewGenerator(cat, fixedPolicy(5, 5, 4, 0))
		run, err := gen.Generate(testutils.CreateTestPlayers(t, 9), dice.NewSeededRoller(5))
		require.NoError(t, err)

		counts := map[string]int{}
		for _, c := range run.Characters {
			counts[c.Role.Name]++
		}
		assert.Equal(t, 3, counts["Werewolf"])
		assert.Equal(t, 1, counts["Witch"])
	})
}

func TestGenerate_RosterValidation(t *testing.T) {
	gen := assignment.NewGenerator(fourPlayerCatalog(t), fixedPolicy(4, 2, 1, 1))
	players := testutils.CreateTestPlayers(t, 4)

	t.Run("duplicate names", func(t *testing.T) {
		dup := append(players[:3:3], players[0])
		_, err := gen.Generate(dup, mockdice.NewManualMockRoller())
		assert.True(t, errors.IsConfig(err))
	})

	t.Run("blank name", func(t *testing.T) {
		blank := append(players[:3:3], players[3])
		blank[3].Name = "  "
		_, err := gen.Generate(blank, mockdice.NewManualMockRoller())
		assert.True(t, errors.IsConfig(err))
	})

	t.Run("seats follow roster order", func(t *testing.T) {
		shuffled := append(players[:0:0], players[3], players[2], players[1], players[0])
		run, err := gen.Generate(shuffled, dice.NewSeededRoller(1))
		require.NoError(t, err)
		for i, c := range run.Characters {
			assert.Equal(t, i+1, c.Player.Seat)
			assert.Equal(t, shuffled[i].Name, c.Player.Name)
		}
	})

	t.Run("names are trimmed", func(t *testing.T) {
		padded := append(players[:0:0], players...)
		padded[0].Name = "  " + padded[0].Name + "  "
		run, err := gen.Generate(padded, dice.NewSeededRoller(1))
		require.NoError(t, err)
		assert.Equal(t, players[0].Name, run.Characters[0].Player.Name)
	})

	t.Run("nil roller", func(t *testing.T) {
		_, err := gen.Generate(players, nil)
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("exhausted roller is internal", func(t *testing.T) {
		run, err := gen.Generate(players, mockdice.NewManualMockRoller())
		require.Error(t, err)
		assert.Nil(t, run)
		assert.True(t, errors.IsInternal(err))
	})
}
