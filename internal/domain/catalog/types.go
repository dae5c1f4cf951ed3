package catalog

// Alignment is the faction a Role plays for
type Alignment string

const (
	AlignmentGood    Alignment = "GOOD"
	AlignmentEvil    Alignment = "EVIL"
	AlignmentNeutral Alignment = "NEUTRAL"
)

// Alignments lists every alignment in draw order
var Alignments = []Alignment{AlignmentGood, AlignmentEvil, AlignmentNeutral}

// IsValid reports whether a is one of the known alignments
func (a Alignment) IsValid() bool {
	switch a {
	case AlignmentGood, AlignmentEvil, AlignmentNeutral:
		return true
	}
	return false
}

func (a Alignment) String() string {
	return string(a)
}

// AbilityType describes when and how an ability is used
type AbilityType string

const (
	AbilityDeathTrigger     AbilityType = "DEATH_TRIGGER"
	AbilityDuskChoice       AbilityType = "DUSK_CHOICE"
	AbilityMidnightChoice   AbilityType = "MIDNIGHT_CHOICE"
	AbilityPredawnChoice    AbilityType = "PREDAWN_CHOICE"
	AbilityOneTime          AbilityType = "ONE_TIME"
	AbilityPassive          AbilityType = "PASSIVE"
	AbilityVote             AbilityType = "VOTE"
	AbilityInitialKnowledge AbilityType = "INITIAL_KNOWLEDGE"
)

// IsValid reports whether t is one of the known ability types
func (t AbilityType) IsValid() bool {
	switch t {
	case AbilityDeathTrigger, AbilityDuskChoice, AbilityMidnightChoice, AbilityPredawnChoice,
		AbilityOneTime, AbilityPassive, AbilityVote, AbilityInitialKnowledge:
		return true
	}
	return false
}

// Phase maps the ability type onto the phase the narrator calls it in
func (t AbilityType) Phase() NightPhase {
	switch t {
	case AbilityInitialKnowledge:
		return PhaseSetup
	case AbilityDuskChoice:
		return PhaseDusk
	case AbilityMidnightChoice:
		return PhaseMidnight
	case AbilityPredawnChoice:
		return PhasePredawn
	default:
		return PhaseConditional
	}
}

// NightPhase is when an ability triggers. The numeric order is the order the
// narrator walks through them.
type NightPhase int

const (
	PhaseSetup NightPhase = iota
	PhaseDusk
	PhaseMidnight
	PhasePredawn
	PhaseConditional
)

// NarratorPhases lists phases in narrator order
var NarratorPhases = []NightPhase{PhaseSetup, PhaseDusk, PhaseMidnight, PhasePredawn, PhaseConditional}

func (p NightPhase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhaseDusk:
		return "Dusk"
	case PhaseMidnight:
		return "Midnight"
	case PhasePredawn:
		return "Predawn"
	case PhaseConditional:
		return "Conditional"
	}
	return "Unknown"
}

// WinCondition is how a role wins the game
type WinCondition string

const (
	WinEliminateAllEvils WinCondition = "ELIMINATE_ALL_EVILS"
	WinEliminateAllGood  WinCondition = "ELIMINATE_ALL_GOOD"
	WinSurvive           WinCondition = "SURVIVE"
	WinVotedOut          WinCondition = "VOTED_OUT"
	WinLastNeutral       WinCondition = "LAST_NEUTRAL"
)

// IsValid reports whether w is known; the empty value means a custom
// condition described in free text
func (w WinCondition) IsValid() bool {
	switch w {
	case "", WinEliminateAllEvils, WinEliminateAllGood, WinSurvive, WinVotedOut, WinLastNeutral:
		return true
	}
	return false
}

// Tier is a player-count band used for per-band copy limits
type Tier string

const (
	Tier1 Tier = "TIER1" // 4..7 players
	Tier2 Tier = "TIER2" // 8..11 players
	Tier3 Tier = "TIER3" // 12..15 players
	Tier4 Tier = "TIER4" // 16+ players
)

// TierFor returns the band for a player count. Counts below the first band
// fall into Tier1.
func TierFor(players int) Tier {
	switch {
	case players <= 7:
		return Tier1
	case players <= 11:
		return Tier2
	case players <= 15:
		return Tier3
	default:
		return Tier4
	}
}

// IsValid reports whether t is a known tier
func (t Tier) IsValid() bool {
	switch t {
	case Tier1, Tier2, Tier3, Tier4:
		return true
	}
	return false
}
