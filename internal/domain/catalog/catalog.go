package catalog

import (
	"reflect"
	"strings"

	"github.com/KirkDiggler/nightfall/internal/errors"
)

// Catalog is the immutable set of known Roles and Professions. It is safe to
// share between goroutines; every accessor returns copies.
type Catalog struct {
	roles           []Role
	professions     []Profession
	roleIndex       map[string]int
	professionIndex map[string]int
}

// New validates the entries and freezes them into a Catalog. Entry order is
// kept and is the order the generator draws from.
func New(roles []Role, professions []Profession) (*Catalog, error) {
	c := &Catalog{
		roles:           make([]Role, 0, len(roles)),
		professions:     make([]Profession, 0, len(professions)),
		roleIndex:       make(map[string]int, len(roles)),
		professionIndex: make(map[string]int, len(professions)),
	}

	for _, r := range roles {
		role := r.Clone()
		role.Name = strings.TrimSpace(role.Name)
		if err := validateRole(role); err != nil {
			return nil, err
		}
		if _, dup := c.roleIndex[role.Name]; dup {
			return nil, errors.Catalogf(role.Name, "duplicate role name %q", role.Name).
				WithMeta(errors.MetaField, "name")
		}
		switch role.Alignment {
		case AlignmentGood:
			role.WinCondition = WinEliminateAllEvils
		case AlignmentEvil:
			role.WinCondition = WinEliminateAllGood
		}
		c.roleIndex[role.Name] = len(c.roles)
		c.roles = append(c.roles, role)
	}

	for _, p := range professions {
		prof := p.Clone()
		prof.Name = strings.TrimSpace(prof.Name)
		if err := validateEntry(prof.Name, "profession", prof.Abilities, prof.Limits); err != nil {
			return nil, err
		}
		if _, dup := c.professionIndex[prof.Name]; dup {
			return nil, errors.Catalogf(prof.Name, "duplicate profession name %q", prof.Name).
				WithMeta(errors.MetaField, "name")
		}
		c.professionIndex[prof.Name] = len(c.professions)
		c.professions = append(c.professions, prof)
	}

	return c, nil
}

func validateRole(r Role) error {
	if err := validateEntry(r.Name, "role", r.Abilities, r.Limits); err != nil {
		return err
	}
	if !r.Alignment.IsValid() {
		return errors.Catalogf(r.Name, "role %q has unknown alignment %q", r.Name, r.Alignment).
			WithMeta(errors.MetaField, "alignment")
	}
	if !r.WinCondition.IsValid() {
		return errors.Catalogf(r.Name, "role %q has unknown win condition %q", r.Name, r.WinCondition).
			WithMeta(errors.MetaField, "win_condition")
	}
	return nil
}

func validateEntry(name, kind string, abilities []Ability, limits Limits) error {
	if name == "" {
		return errors.Catalogf("", "%s with empty name", kind).WithMeta(errors.MetaField, "name")
	}
	for i, a := range abilities {
		if !a.Type.IsValid() {
			return errors.Catalogf(name, "%s %q ability %d has unknown type %q", kind, name, i, a.Type).
				WithMeta(errors.MetaField, "abilities")
		}
	}
	if limits.Multiplicity < 0 {
		return errors.Catalogf(name, "%s %q has negative multiplicity", kind, name).
			WithMeta(errors.MetaField, "multiplicity")
	}
	if limits.MinPlayers < 0 {
		return errors.Catalogf(name, "%s %q has negative min_players", kind, name).
			WithMeta(errors.MetaField, "min_players")
	}
	if limits.MinCopies < 0 {
		return errors.Catalogf(name, "%s %q has negative min_copies", kind, name).
			WithMeta(errors.MetaField, "min_copies")
	}
	maxCopies := limits.Multiplicity
	if maxCopies == 0 {
		maxCopies = 1
	}
	for tier, n := range limits.TierLimits {
		if !tier.IsValid() {
			return errors.Catalogf(name, "%s %q has unknown tier %q", kind, name, tier).
				WithMeta(errors.MetaField, "tier_limits")
		}
		if n < 0 {
			return errors.Catalogf(name, "%s %q has negative limit for %s", kind, name, tier).
				WithMeta(errors.MetaField, "tier_limits")
		}
		if n > maxCopies {
			maxCopies = n
		}
	}
	if limits.BlockSize() > maxCopies {
		return errors.Catalogf(name, "%s %q needs %d copies but allows at most %d",
			kind, name, limits.BlockSize(), maxCopies).
			WithMeta(errors.MetaField, "min_copies")
	}
	return nil
}

// Roles returns every role in catalog order
func (c *Catalog) Roles() []Role {
	out := make([]Role, len(c.roles))
	for i, r := range c.roles {
		out[i] = r.Clone()
	}
	return out
}

// Professions returns every profession in catalog order
func (c *Catalog) Professions() []Profession {
	out := make([]Profession, len(c.professions))
	for i, p := range c.professions {
		out[i] = p.Clone()
	}
	return out
}

// Role looks up a role by name
func (c *Catalog) Role(name string) (Role, bool) {
	i, ok := c.roleIndex[name]
	if !ok {
		return Role{}, false
	}
	return c.roles[i].Clone(), true
}

// Profession looks up a profession by name
func (c *Catalog) Profession(name string) (Profession, bool) {
	i, ok := c.professionIndex[name]
	if !ok {
		return Profession{}, false
	}
	return c.professions[i].Clone(), true
}

// HasRole reports whether r is exactly the catalog's role of that name
func (c *Catalog) HasRole(r Role) bool {
	i, ok := c.roleIndex[r.Name]
	return ok && reflect.DeepEqual(c.roles[i], r)
}

// HasProfession reports whether p is exactly the catalog's profession of that name
func (c *Catalog) HasProfession(p Profession) bool {
	i, ok := c.professionIndex[p.Name]
	return ok && reflect.DeepEqual(c.professions[i], p)
}

// RolesByAlignment returns the roles of one alignment in catalog order
func (c *Catalog) RolesByAlignment(a Alignment) []Role {
	var out []Role
	for _, r := range c.roles {
		if r.Alignment == a {
			out = append(out, r.Clone())
		}
	}
	return out
}

// Capacity is the total number of copies of alignment-a roles a game of the
// given size may contain
func (c *Catalog) Capacity(a Alignment, players int) int {
	total := 0
	for _, r := range c.roles {
		if r.Alignment == a {
			total += r.Limit(players)
		}
	}
	return total
}

// ProfessionCapacity is the total number of profession copies a game of the
// given size may contain
func (c *Catalog) ProfessionCapacity(players int) int {
	total := 0
	for _, p := range c.professions {
		total += p.Limit(players)
	}
	return total
}
