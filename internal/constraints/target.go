package constraints

import (
	"github.com/KirkDiggler/nightfall/internal/domain/catalog"
	"github.com/KirkDiggler/nightfall/internal/errors"
)

// Target computes and checks the distribution for a table of the given size.
// The result always has an entry for every alignment and sums to players.
func Target(policy Policy, players int) (Distribution, error) {
	if players < policy.MinPlayers() {
		return nil, errors.Configf("need at least %d players, got %d", policy.MinPlayers(), players)
	}

	dist, err := policy.Distribution(players)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeConfig, "compute distribution")
	}

	out := make(Distribution, len(catalog.Alignments))
	for a, n := range dist {
		if !a.IsValid() {
			return nil, errors.Configf("policy returned unknown alignment %q", a)
		}
		if n < 0 {
			return nil, errors.Configf("policy returned %d %s roles", n, a)
		}
		out[a] = n
	}
	for _, a := range catalog.Alignments {
		if _, ok := out[a]; !ok {
			out[a] = 0
		}
	}
	if out.Total() != players {
		return nil, errors.Configf("policy distribution %s sums to %d, want %d", out, out.Total(), players)
	}

	return out, nil
}

// CheckCapacity fails when the catalog cannot supply the distribution or
// enough professions for a table of the given size
func CheckCapacity(dist Distribution, cat *catalog.Catalog, players int) error {
	for _, a := range catalog.Alignments {
		if available := cat.Capacity(a, players); dist[a] > available {
			return errors.InsufficientCatalog(string(a), dist[a], available)
		}
	}
	if available := cat.ProfessionCapacity(players); players > available {
		return errors.InsufficientCatalog(CategoryProfession, players, available)
	}
	return nil
}

// CategoryProfession names the profession pool in insufficient catalog errors
const CategoryProfession = "profession"
