package assignment

import (
	"github.com/KirkDiggler/nightfall/internal/domain/catalog"
	"github.com/KirkDiggler/nightfall/internal/domain/game"
	"github.com/KirkDiggler/nightfall/internal/domain/roster"
	"github.com/KirkDiggler/nightfall/internal/errors"
)

// Binder pairs a player with a role and profession taken from one catalog
type Binder struct {
	catalog *catalog.Catalog
}

// NewBinder creates a binder that only accepts entries of cat
func NewBinder(cat *catalog.Catalog) *Binder {
	if cat == nil {
		panic("catalog is required")
	}
	return &Binder{catalog: cat}
}

// Bind creates the character, rejecting any role or profession that is not
// exactly the catalog's entry of that name
func (b *Binder) Bind(player roster.Player, role catalog.Role, profession catalog.Profession) (game.Character, error) {
	if !b.catalog.HasRole(role) {
		return game.Character{}, errors.Catalogf(role.Name, "role %q is not part of the catalog", role.Name).
			WithMeta(errors.MetaField, "role")
	}
	if !b.catalog.HasProfession(profession) {
		return game.Character{}, errors.Catalogf(profession.Name, "profession %q is not part of the catalog", profession.Name).
			WithMeta(errors.MetaField, "profession")
	}

	return game.Character{
		Player:     player,
		Role:       role.Clone(),
		Profession: profession.Clone(),
	}, nil
}
