package catalog

// Ability is a triggerable effect owned by a Role or Profession
type Ability struct {
	Type   AbilityType `json:"type" yaml:"type"`
	Effect string      `json:"effect" yaml:"effect"`
	// Group abilities are exercised jointly by every holder
	Group bool `json:"group,omitempty" yaml:"group,omitempty"`
}

// Phase is the narrator phase the ability triggers in
func (a Ability) Phase() NightPhase {
	return a.Type.Phase()
}

// Limits controls how many copies of an entry a single game may contain
type Limits struct {
	// Multiplicity is the maximum number of copies; zero means one
	Multiplicity int `json:"multiplicity,omitempty" yaml:"multiplicity,omitempty"`
	// MinPlayers excludes the entry from smaller games
	MinPlayers int `json:"min_players,omitempty" yaml:"min_players,omitempty"`
	// MinCopies makes the entry arrive as a block once drawn; zero means one
	MinCopies int `json:"min_copies,omitempty" yaml:"min_copies,omitempty"`
	// TierLimits overrides Multiplicity for specific tiers; 0 excludes
	TierLimits map[Tier]int `json:"tier_limits,omitempty" yaml:"tier_limits,omitempty"`
}

// Limit returns the maximum number of copies allowed in a game of the given size
func (l Limits) Limit(players int) int {
	if players < l.MinPlayers {
		return 0
	}
	if n, ok := l.TierLimits[TierFor(players)]; ok {
		return n
	}
	if l.Multiplicity == 0 {
		return 1
	}
	return l.Multiplicity
}

// BlockSize is the number of copies added when the entry is first drawn
func (l Limits) BlockSize() int {
	if l.MinCopies < 1 {
		return 1
	}
	return l.MinCopies
}

func (l Limits) clone() Limits {
	out := l
	if len(l.TierLimits) == 0 {
		out.TierLimits = nil
		return out
	}
	out.TierLimits = make(map[Tier]int, len(l.TierLimits))
	for k, v := range l.TierLimits {
		out.TierLimits[k] = v
	}
	return out
}

// Entry is what the generator needs from a Role or Profession to draw it
type Entry interface {
	EntryName() string
	Limit(players int) int
	BlockSize() int
}

// Role is a secret identity
type Role struct {
	Name      string    `json:"name" yaml:"name"`
	Alignment Alignment `json:"alignment" yaml:"alignment"`
	Abilities []Ability `json:"abilities,omitempty" yaml:"abilities,omitempty"`
	// WinCondition is forced for Good and Evil roles
	WinCondition   WinCondition `json:"win_condition,omitempty" yaml:"win_condition,omitempty"`
	WinDescription string       `json:"win_description,omitempty" yaml:"win_description,omitempty"`
	Limits         `yaml:",inline"`
}

// EntryName implements Entry
func (r Role) EntryName() string {
	return r.Name
}

// Clone returns a deep copy of the role
func (r Role) Clone() Role {
	out := r
	out.Abilities = cloneAbilities(r.Abilities)
	out.Limits = r.Limits.clone()
	return out
}

// Profession is a public identity; it carries no alignment
type Profession struct {
	Name      string    `json:"name" yaml:"name"`
	Abilities []Ability `json:"abilities,omitempty" yaml:"abilities,omitempty"`
	Limits    `yaml:",inline"`
}

// EntryName implements Entry
func (p Profession) EntryName() string {
	return p.Name
}

// Clone returns a deep copy of the profession
func (p Profession) Clone() Profession {
	out := p
	out.Abilities = cloneAbilities(p.Abilities)
	out.Limits = p.Limits.clone()
	return out
}

func cloneAbilities(in []Ability) []Ability {
	if len(in) == 0 {
		return nil
	}
	return append([]Ability(nil), in...)
}
