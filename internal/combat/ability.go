package combat

import "fmt"

// AbilityID identifies an ability in the fixed action set.
type AbilityID string

const (
	AbilityStrike    AbilityID = "strike"    // GCD instant
	AbilityFireball  AbilityID = "fireball"  // GCD hard cast
	AbilityDash      AbilityID = "dash"      // weave instant
	AbilitySong      AbilityID = "song"      // weave instant
	AbilityCleanse   AbilityID = "cleanse"   // weave, clears the debuff
	AbilityBurn      AbilityID = "burn"      // GCD instant, applies the DoT
	AbilityHeal      AbilityID = "heal"      // GCD hard cast
	AbilitySwiftcast AbilityID = "swiftcast" // weave buff: next hard cast is instant
	AbilityRaging    AbilityID = "raging"    // weave buff: damage multiplier window
	AbilityJump      AbilityID = "jump"      // weave instant
)

// AllAbilities returns every known ability identifier. The identifier space
// is closed: the catalog must carry exactly one profile for each of these.
func AllAbilities() []AbilityID {
	return []AbilityID{
		AbilityStrike,
		AbilityFireball,
		AbilityDash,
		AbilitySong,
		AbilityCleanse,
		AbilityBurn,
		AbilityHeal,
		AbilitySwiftcast,
		AbilityRaging,
		AbilityJump,
	}
}

// Profile is the immutable timing profile of a single ability. Durations are
// in seconds; a CastTime of 0 means the ability is instant.
type Profile struct {
	ID            AbilityID
	Name          string
	TriggersGCD   bool
	CastTime      float64
	Cooldown      float64
	AnimationLock float64
	BaseDamage    int
}

// Catalog maps ability identifiers to their profiles. It is static for the
// lifetime of a session.
type Catalog struct {
	profiles map[AbilityID]Profile
}

// NewCatalog builds a catalog from the given profiles. Every known ability
// must be covered exactly once; profiles for unknown identifiers are
// rejected. This pushes the exhaustiveness check to construction so lookups
// for resolver-produced identifiers can never fail.
func NewCatalog(profiles []Profile) (*Catalog, error) {
	byID := make(map[AbilityID]Profile, len(profiles))
	for _, p := range profiles {
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate ability profile %q", p.ID)
		}
		byID[p.ID] = p
	}
	for _, id := range AllAbilities() {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("missing ability profile %q", id)
		}
	}
	if len(byID) != len(AllAbilities()) {
		for id := range byID {
			if !KnownAbility(id) {
				return nil, fmt.Errorf("profile for unknown ability %q", id)
			}
		}
	}
	return &Catalog{profiles: byID}, nil
}

// DefaultCatalog returns the stock ability table.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultProfiles())
	if err != nil {
		panic(err) // the default table covers the closed set by construction
	}
	return c
}

// DefaultProfiles returns the stock timing profiles for every ability.
func DefaultProfiles() []Profile {
	return []Profile{
		{ID: AbilityStrike, Name: "Strike", TriggersGCD: true, CastTime: 0, Cooldown: 2.5, AnimationLock: 0.6, BaseDamage: 100},
		{ID: AbilityFireball, Name: "Fireball", TriggersGCD: true, CastTime: 1.5, Cooldown: 2.5, AnimationLock: 0.6, BaseDamage: 180},
		{ID: AbilityDash, Name: "Weave: Dash", TriggersGCD: false, CastTime: 0, Cooldown: 20, AnimationLock: 0.6, BaseDamage: 60},
		{ID: AbilitySong, Name: "Weave: Song", TriggersGCD: false, CastTime: 0, Cooldown: 30, AnimationLock: 0.6, BaseDamage: 50},
		{ID: AbilityCleanse, Name: "Cleanse", TriggersGCD: false, CastTime: 0, Cooldown: 12, AnimationLock: 0.1},
		{ID: AbilityBurn, Name: "Burn", TriggersGCD: true, CastTime: 0, Cooldown: 2.5, AnimationLock: 0.6},
		{ID: AbilityHeal, Name: "Heal", TriggersGCD: true, CastTime: 2.0, Cooldown: 2.5, AnimationLock: 0.6},
		{ID: AbilitySwiftcast, Name: "Swiftcast", TriggersGCD: false, CastTime: 0, Cooldown: 60, AnimationLock: 0.6},
		{ID: AbilityRaging, Name: "Raging", TriggersGCD: false, CastTime: 0, Cooldown: 90, AnimationLock: 0.6},
		{ID: AbilityJump, Name: "Jump", TriggersGCD: false, CastTime: 0, Cooldown: 30, AnimationLock: 0.6, BaseDamage: 120},
	}
}

// KnownAbility reports whether id belongs to the closed identifier set.
func KnownAbility(id AbilityID) bool {
	for _, known := range AllAbilities() {
		if id == known {
			return true
		}
	}
	return false
}

// Profile looks up the profile for id.
func (c *Catalog) Profile(id AbilityID) (Profile, bool) {
	p, ok := c.profiles[id]
	return p, ok
}

// mustProfile is for identifiers the engine itself produced (queued, buffered
// or casting abilities). A miss is a logic error, not a runtime condition.
func (c *Catalog) mustProfile(id AbilityID) Profile {
	p, ok := c.profiles[id]
	if !ok {
		panic(fmt.Sprintf("ability %q not in catalog", id))
	}
	return p
}

// Profiles returns all profiles in the AllAbilities order, for presentation.
func (c *Catalog) Profiles() []Profile {
	out := make([]Profile, 0, len(c.profiles))
	for _, id := range AllAbilities() {
		out = append(out, c.profiles[id])
	}
	return out
}
