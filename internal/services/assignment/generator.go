package assignment

import (
	"fmt"

	"github.com/KirkDiggler/nightfall/internal/constraints"
	"github.com/KirkDiggler/nightfall/internal/dice"
	"github.com/KirkDiggler/nightfall/internal/domain/catalog"
	"github.com/KirkDiggler/nightfall/internal/domain/game"
	"github.com/KirkDiggler/nightfall/internal/domain/roster"
	"github.com/KirkDiggler/nightfall/internal/errors"
)

// Generator draws roles and professions for a table and binds them to
// players. It holds no per-run state and is safe for concurrent use as long
// as each call gets its own roller.
type Generator struct {
	catalog *catalog.Catalog
	policy  constraints.Policy
	binder  *Binder
}

// NewGenerator creates a generator over an immutable catalog
func NewGenerator(cat *catalog.Catalog, policy constraints.Policy) *Generator {
	if cat == nil {
		panic("catalog is required")
	}
	if policy == nil {
		panic("policy is required")
	}

	return &Generator{
		catalog: cat,
		policy:  policy,
		binder:  NewBinder(cat),
	}
}

// Generate produces the characters for players in seat order. The returned
// run has no ID, seed or timestamp; callers stamp those. On error no
// characters are returned.
func (g *Generator) Generate(players []roster.Player, roller dice.Roller) (*game.Run, error) {
	if roller == nil {
		return nil, errors.InvalidArgument("roller is required")
	}

	seated, err := roster.Normalize(players)
	if err != nil {
		return nil, err
	}
	n := len(seated)

	target, err := constraints.Target(g.policy, n)
	if err != nil {
		return nil, err
	}

	// Fail before any roll so a bad catalog never consumes randomness
	if err := constraints.CheckCapacity(target, g.catalog, n); err != nil {
		return nil, err
	}

	roles := make([]catalog.Role, 0, n)
	for _, a := range catalog.Alignments {
		if target[a] == 0 {
			continue
		}
		drawn, err := draw(g.catalog.RolesByAlignment(a), target[a], n, roller, string(a))
		if err != nil {
			return nil, err
		}
		roles = append(roles, drawn...)
	}

	professions, err := draw(g.catalog.Professions(), n, n, roller, constraints.CategoryProfession)
	if err != nil {
		return nil, err
	}

	rolePerm, err := dice.Perm(roller, n)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "shuffle roles")
	}
	professionPerm, err := dice.Perm(roller, n)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "shuffle professions")
	}

	characters := make([]game.Character, n)
	for i, p := range seated {
		c, err := g.binder.Bind(p, roles[rolePerm[i]], professions[professionPerm[i]])
		if err != nil {
			return nil, err
		}
		characters[i] = c
	}

	realized := game.RealizedDistribution(characters)
	for _, a := range catalog.Alignments {
		if realized[a] != target[a] {
			return nil, errors.Internalf("realized distribution %s does not match target %s", realized, target)
		}
	}

	return &game.Run{
		PlayerCount: n,
		Target:      target,
		Realized:    realized,
		Characters:  characters,
	}, nil
}

// draw fills count slots from pool. An entry is eligible while it has copies
// left at this table size and taking it still leaves the remaining slots
// fillable; an entry not yet drawn must also fit its whole block. The first
// draw of an entry adds its block, later draws add one copy.
func draw[T catalog.Entry](pool []T, count, players int, roller dice.Roller, category string) ([]T, error) {
	selected := make([]T, 0, count)
	drawn := make([]int, len(pool))
	eligible := make([]int, 0, len(pool))

	for len(selected) < count {
		remaining := count - len(selected)

		eligible = eligible[:0]
		for i, e := range pool {
			copies := step(e, drawn[i])
			if drawn[i]+copies > e.Limit(players) || copies > remaining {
				continue
			}
			drawn[i] += copies
			ok := fillable(pool, drawn, players, remaining-copies)
			drawn[i] -= copies
			if ok {
				eligible = append(eligible, i)
			}
		}

		if len(eligible) == 0 {
			return nil, errors.InsufficientCatalog(category, count, len(selected))
		}

		idx, err := dice.Pick(roller, len(eligible))
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInternal, fmt.Sprintf("draw %s", category))
		}

		i := eligible[idx]
		copies := step(pool[i], drawn[i])
		for c := 0; c < copies; c++ {
			selected = append(selected, pool[i])
		}
		drawn[i] += copies
	}

	return selected, nil
}

// step is the number of copies the next draw of an entry adds
func step(e catalog.Entry, drawn int) int {
	if drawn == 0 {
		return e.BlockSize()
	}
	return 1
}

// fillable reports whether exactly slots more copies can still be drawn.
// Each entry contributes nothing or between its next step and its remaining
// limit, so this is a small reachability table over slot counts.
func fillable[T catalog.Entry](pool []T, drawn []int, players, slots int) bool {
	reach := make([]bool, slots+1)
	reach[0] = true
	next := make([]bool, slots+1)

	for i, e := range pool {
		lo, hi := step(e, drawn[i]), e.Limit(players)-drawn[i]
		if hi < lo {
			continue
		}
		copy(next, reach)
		for s := 0; s < slots; s++ {
			if !reach[s] {
				continue
			}
			for k := lo; k <= hi && s+k <= slots; k++ {
				next[s+k] = true
			}
		}
		reach, next = next, reach
	}

	return reach[slots]
}
