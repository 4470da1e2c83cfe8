package quest

import (
	gomath "math"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/winter-sled/internal/game/catalog"
	"github.com/Faultbox/winter-sled/internal/logger"
)

// Status is a quest together with its current progress.
type Status struct {
	Definition
	Unlocked  bool
	Progress  int
	Completed bool
	Claimed   bool
}

// Discovery reports the effect of one Discover call.
type Discovery struct {
	ID string
	// New is false when the listing had already been discovered.
	New bool
	XP  int
	// Completed lists quests that completed because of this discovery.
	Completed []string
}

// LevelInfo describes the position within the current level.
type LevelInfo struct {
	Level          int
	XP             int
	CurrentLevelXP int
	NextLevelXP    int
	// Progress is the fraction of the current level earned, in [0, 1].
	Progress float64
}

// Tracker accumulates discoveries and evaluates quests against them.
// It is not safe for concurrent use.
type Tracker struct {
	defs []Definition
	log  *zap.Logger

	visited     []string
	seen        map[string]bool
	categories  map[string][]string
	onlyOnMonad []string

	progress  map[string]int
	completed map[string]bool
	claimed   map[string]bool

	xp       int
	distance float64
}

// NewTracker returns an empty tracker over the built-in quests.
func NewTracker(log *zap.Logger) *Tracker {
	t := &Tracker{defs: Definitions(), log: logger.OrNop(log)}
	t.Reset()
	return t
}

// Reset clears all progress.
func (t *Tracker) Reset() {
	t.visited = nil
	t.seen = make(map[string]bool)
	t.categories = make(map[string][]string)
	t.onlyOnMonad = nil
	t.progress = make(map[string]int, len(t.defs))
	t.completed = make(map[string]bool, len(t.defs))
	t.claimed = make(map[string]bool)
	t.xp = 0
	t.distance = 0
	t.evaluate()
}

// Discover records a listing. Repeat discoveries change nothing.
func (t *Tracker) Discover(d catalog.Dapp) Discovery {
	res := Discovery{ID: d.ID}
	if d.ID == "" || t.seen[d.ID] {
		return res
	}
	res.New = true
	t.seen[d.ID] = true
	t.visited = append(t.visited, d.ID)

	gain := XPUnique
	if key := strings.TrimSpace(d.Category); key != "" {
		if len(t.categories[key]) == 0 {
			gain += XPNewCategory
		}
		t.categories[key] = append(t.categories[key], d.ID)
	}
	if d.OnlyOnMonad {
		t.onlyOnMonad = append(t.onlyOnMonad, d.ID)
		gain += XPOnlyOnMonad
	}
	t.xp += gain
	res.XP = gain

	res.Completed = t.evaluate()
	t.log.Info("dApp discovered",
		zap.String("id", d.ID),
		zap.String("category", d.Category),
		zap.Int("xp", t.xp),
		zap.Strings("completed", res.Completed))
	return res
}

// evaluate refreshes progress for unlocked quests and returns the ids that
// became complete. Completing a quest may unlock another, so it repeats until
// nothing changes.
func (t *Tracker) evaluate() []string {
	var done []string
	for changed := true; changed; {
		changed = false
		for _, q := range t.defs {
			if !q.Unlocked(t.completed) {
				continue
			}
			p := min(t.count(q), q.Target)
			t.progress[q.ID] = p
			if p >= q.Target && !t.completed[q.ID] {
				t.completed[q.ID] = true
				done = append(done, q.ID)
				changed = true
			}
		}
	}
	return done
}

func (t *Tracker) count(q Definition) int {
	switch q.Kind {
	case UniqueVisits:
		return len(t.visited)
	case CategoryVisits:
		return len(t.categories[strings.TrimSpace(q.Category)])
	case OnlyOnMonad:
		return len(t.onlyOnMonad)
	default:
		return 0
	}
}

// Claim adds a completed quest's reward to the experience total. It returns
// false for unknown, incomplete or already claimed quests.
func (t *Tracker) Claim(id string) bool {
	i := slices.IndexFunc(t.defs, func(q Definition) bool { return q.ID == id })
	if i < 0 || !t.completed[id] || t.claimed[id] {
		return false
	}
	t.claimed[id] = true
	t.xp += t.defs[i].XPReward
	t.log.Info("quest reward claimed",
		zap.String("quest", id),
		zap.Int("reward", t.defs[i].XPReward),
		zap.Int("level", t.Level()))
	return true
}

// Discovered reports whether id has been found.
func (t *Tracker) Discovered(id string) bool { return t.seen[id] }

// Visited returns discovered ids in discovery order.
func (t *Tracker) Visited() []string { return slices.Clone(t.visited) }

// CategoryCount returns how many discovered listings belong to category.
func (t *Tracker) CategoryCount(category string) int {
	return len(t.categories[strings.TrimSpace(category)])
}

// OnlyOnMonadCount returns how many Monad-exclusive listings were found.
func (t *Tracker) OnlyOnMonadCount() int { return len(t.onlyOnMonad) }

// AddDistance accumulates distance travelled. Negative or non-finite values
// are ignored.
func (t *Tracker) AddDistance(d float64) {
	if d <= 0 || gomath.IsNaN(d) || gomath.IsInf(d, 0) {
		return
	}
	t.distance += d
}

// Distance returns the total distance travelled.
func (t *Tracker) Distance() float64 { return t.distance }

// XP returns the experience total.
func (t *Tracker) XP() int { return t.xp }

// Level returns the current level.
func (t *Tracker) Level() int { return LevelFromXP(t.xp) }

// LevelInfo returns the current level and progress toward the next.
func (t *Tracker) LevelInfo() LevelInfo {
	level := t.Level()
	cur := XPForLevel(level)
	next := XPForLevel(level + 1)
	return LevelInfo{
		Level:          level,
		XP:             t.xp,
		CurrentLevelXP: cur,
		NextLevelXP:    next,
		Progress:       gomath.Min(1, float64(t.xp-cur)/float64(max(next-cur, LevelStep))),
	}
}

// Quests returns every quest with its state, in definition order.
func (t *Tracker) Quests() []Status {
	out := make([]Status, 0, len(t.defs))
	for _, q := range t.defs {
		out = append(out, Status{
			Definition: q,
			Unlocked:   q.Unlocked(t.completed),
			Progress:   t.progress[q.ID],
			Completed:  t.completed[q.ID],
			Claimed:    t.claimed[q.ID],
		})
	}
	return out
}
