// Package quest tracks discovered gift boxes, quest progress and experience.
package quest

// Kind selects how a quest measures progress.
type Kind int

const (
	// UniqueVisits counts distinct discovered listings.
	UniqueVisits Kind = iota
	// CategoryVisits counts distinct listings in one category.
	CategoryVisits
	// OnlyOnMonad counts distinct listings flagged as Monad-exclusive.
	OnlyOnMonad
)

// String returns the kind name used in save files and logs.
func (k Kind) String() string {
	switch k {
	case UniqueVisits:
		return "uniqueVisits"
	case CategoryVisits:
		return "category"
	case OnlyOnMonad:
		return "onlyOnMonad"
	default:
		return "unknown"
	}
}

// Definition describes one quest.
type Definition struct {
	ID          string
	Title       string
	Description string
	Kind        Kind
	Category    string
	Target      int
	XPReward    int
	AutoUnlock  bool
	Requires    []string
}

// LevelStep is the experience needed per level.
const LevelStep = 150

// Experience granted per newly discovered listing.
const (
	XPUnique      = 25
	XPOnlyOnMonad = 15
	XPNewCategory = 5
)

var definitions = []Definition{
	{
		ID:          "first-steps",
		Title:       "First Tracks",
		Description: "Discover 3 unique dApps on the slopes.",
		Kind:        UniqueVisits,
		Target:      3,
		XPReward:    80,
		AutoUnlock:  true,
	},
	{
		ID:          "curator-tour",
		Title:       "Curator Tour",
		Description: "Discover 8 unique dApps across the valley.",
		Kind:        UniqueVisits,
		Target:      8,
		XPReward:    120,
		Requires:    []string{"first-steps"},
	},
	{
		ID:          "defi-discovery",
		Title:       "DeFi Discovery",
		Description: "Discover 4 DeFi dApps.",
		Kind:        CategoryVisits,
		Category:    "DeFi",
		Target:      4,
		XPReward:    140,
		Requires:    []string{"first-steps"},
	},
	{
		ID:          "monad-ambassador",
		Title:       "Monad Ambassador",
		Description: "Find 5 projects that are only on Monad.",
		Kind:        OnlyOnMonad,
		Target:      5,
		XPReward:    180,
		Requires:    []string{"curator-tour"},
	},
}

// Definitions returns a copy of the built-in quest list.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Unlocked reports whether the quest is available given the completed set.
func (d Definition) Unlocked(completed map[string]bool) bool {
	if d.AutoUnlock {
		return true
	}
	for _, id := range d.Requires {
		if !completed[id] {
			return false
		}
	}
	return true
}

// LevelFromXP returns the 1-based level for an experience total.
func LevelFromXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/LevelStep + 1
}

// XPForLevel returns the experience at which level starts.
func XPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return LevelStep * (level - 1)
}

// XPToNextLevel returns how much experience is missing for the next level.
func XPToNextLevel(xp int) int {
	return LevelStep*LevelFromXP(xp) - max(xp, 0)
}
