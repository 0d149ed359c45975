package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/questx-lab/rewards/pkg/dateutil"
	"github.com/questx-lab/rewards/pkg/enum"
)

var (
	dailyIDPattern  = regexp.MustCompile(`^daily_(\d{4}-\d{2}-\d{2})_(\d+)$`)
	weeklyIDPattern = regexp.MustCompile(`^(.+)_(\d{4}-\d{2}-\d{2})$`)
)

// Definitions is the raw content of a catalog.
type Definitions struct {
	Badges     []BadgeDefinition     `yaml:"badges" validate:"dive"`
	Challenges []ChallengeDefinition `yaml:"challenges" validate:"dive"`

	// Weekly and daily templates are not persisted as challenges, the actual
	// challenges are derived from them and the current date. Their dates are
	// ignored.
	WeeklyTemplates []ChallengeDefinition `yaml:"weekly_templates" validate:"dive"`
	DailyTemplates  []ChallengeDefinition `yaml:"daily_templates" validate:"dive"`
}

// Catalog is a read-only set of badge and challenge definitions. It is safe
// to share between goroutines.
type Catalog struct {
	loc *time.Location

	badges     []BadgeDefinition
	badgeIndex map[string]int

	challenges     []ChallengeDefinition
	challengeIndex map[string]int

	weekly      []ChallengeDefinition
	weeklyIndex map[string]int

	daily []ChallengeDefinition
}

// New validates the definitions and builds a catalog whose day boundaries
// are computed in loc.
func New(defs Definitions, loc *time.Location) (*Catalog, error) {
	if loc == nil {
		loc = time.UTC
	}

	if err := validate(defs); err != nil {
		return nil, err
	}

	c := &Catalog{
		loc:            loc,
		badgeIndex:     map[string]int{},
		challengeIndex: map[string]int{},
		weeklyIndex:    map[string]int{},
	}

	for i, b := range defs.Badges {
		c.badges = append(c.badges, b)
		c.badgeIndex[b.ID] = i
	}

	for i, ch := range defs.Challenges {
		c.challenges = append(c.challenges, ch.clone())
		c.challengeIndex[ch.ID] = i
	}

	for i, ch := range defs.WeeklyTemplates {
		c.weekly = append(c.weekly, ch.clone())
		c.weeklyIndex[ch.ID] = i
	}

	for _, ch := range defs.DailyTemplates {
		c.daily = append(c.daily, ch.clone())
	}

	return c, nil
}

// Location returns the reference timezone of the catalog.
func (c *Catalog) Location() *time.Location {
	return c.loc
}

func (c *Catalog) Badge(id string) (BadgeDefinition, bool) {
	i, ok := c.badgeIndex[id]
	if !ok {
		return BadgeDefinition{}, false
	}

	return c.badges[i], true
}

// Badges returns a copy of all badge definitions, in catalog order.
func (c *Catalog) Badges() []BadgeDefinition {
	return append([]BadgeDefinition(nil), c.badges...)
}

// Challenge resolves a challenge id. Static challenges are returned as is. A
// weekly template id resolves to the challenge of the week containing now,
// while weekly and daily ids resolve to the window encoded in the id.
func (c *Catalog) Challenge(id string, now time.Time) (ChallengeDefinition, bool) {
	if i, ok := c.challengeIndex[id]; ok {
		return c.challenges[i].clone(), true
	}

	if i, ok := c.weeklyIndex[id]; ok {
		return c.weeklyAt(i, now), true
	}

	if matches := dailyIDPattern.FindStringSubmatch(id); matches != nil {
		return c.dailyOf(matches[1], matches[2])
	}

	if matches := weeklyIDPattern.FindStringSubmatch(id); matches != nil {
		return c.weeklyOf(id, matches[1], matches[2])
	}

	return ChallengeDefinition{}, false
}

func (c *Catalog) dailyOf(date, rawIndex string) (ChallengeDefinition, bool) {
	day, err := dateutil.ParseISODate(date, c.loc)
	if err != nil {
		return ChallengeDefinition{}, false
	}

	index, err := strconv.Atoi(rawIndex)
	if err != nil || index >= len(c.daily) {
		return ChallengeDefinition{}, false
	}

	return c.dailyAt(index, day), true
}

func (c *Catalog) weeklyOf(id, templateID, date string) (ChallengeDefinition, bool) {
	i, ok := c.weeklyIndex[templateID]
	if !ok {
		return ChallengeDefinition{}, false
	}

	day, err := dateutil.ParseISODate(date, c.loc)
	if err != nil {
		return ChallengeDefinition{}, false
	}

	// Only the first day of the week names a weekly challenge.
	ch := c.weeklyAt(i, day)
	if ch.ID != id {
		return ChallengeDefinition{}, false
	}

	return ch, true
}

// ActiveChallenges returns every challenge open at now: static challenges
// within their dates, the weekly challenges of the current week and the
// daily challenges of the current day.
func (c *Catalog) ActiveChallenges(now time.Time) []ChallengeDefinition {
	result := []ChallengeDefinition{}
	for _, ch := range c.challenges {
		if ch.IsOpenAt(now) {
			result = append(result, ch.clone())
		}
	}

	for i := range c.weekly {
		if ch := c.weeklyAt(i, now); ch.IsActive {
			result = append(result, ch)
		}
	}

	for i := range c.daily {
		if ch := c.dailyAt(i, now); ch.IsActive {
			result = append(result, ch)
		}
	}

	return result
}

func (c *Catalog) weeklyAt(i int, now time.Time) ChallengeDefinition {
	ch := c.weekly[i].clone()
	ch.Type = WeeklyChallenge
	ch.StartDate = dateutil.StartOfWeek(now, c.loc)
	ch.EndDate = ch.StartDate.AddDate(0, 0, 7)
	ch.ID = WeeklyChallengeID(ch.ID, ch.StartDate)
	return ch
}

func (c *Catalog) dailyAt(i int, now time.Time) ChallengeDefinition {
	ch := c.daily[i].clone()
	ch.Type = DailyChallenge
	ch.StartDate = dateutil.StartOfDay(now, c.loc)
	ch.EndDate = ch.StartDate.AddDate(0, 0, 1)
	ch.ID = DailyChallengeID(ch.StartDate, i)
	return ch
}

// WeeklyChallengeID returns the id of the weekly challenge derived from the
// template for the week starting at weekStart. Progress of different weeks is
// kept under different ids.
func WeeklyChallengeID(templateID string, weekStart time.Time) string {
	return fmt.Sprintf("%s_%s", templateID, weekStart.Format("2006-01-02"))
}

// DailyChallengeID returns the id of the daily challenge derived from the
// template at index for the given day. The same day always yields the same
// id.
func DailyChallengeID(day time.Time, index int) string {
	return fmt.Sprintf("daily_%s_%d", day.Format("2006-01-02"), index)
}

func validate(defs Definitions) error {
	v := validator.New()
	if err := v.Struct(defs); err != nil {
		return err
	}

	badgeIDs := map[string]bool{}
	for _, b := range defs.Badges {
		if badgeIDs[b.ID] {
			return fmt.Errorf("duplicated badge %s", b.ID)
		}
		badgeIDs[b.ID] = true

		if !enum.IsValid(b.Category) {
			return fmt.Errorf("badge %s has invalid category %s", b.ID, b.Category)
		}

		if !enum.IsValid(b.Rarity) {
			return fmt.Errorf("badge %s has invalid rarity %s", b.ID, b.Rarity)
		}

		if !enum.IsValid(b.Criteria.Type) {
			return fmt.Errorf("badge %s has invalid criteria %s", b.ID, b.Criteria.Type)
		}
	}

	challengeIDs := map[string]bool{}
	all := [][]ChallengeDefinition{defs.Challenges, defs.WeeklyTemplates, defs.DailyTemplates}
	for _, group := range all {
		for _, ch := range group {
			if challengeIDs[ch.ID] {
				return fmt.Errorf("duplicated challenge %s", ch.ID)
			}
			challengeIDs[ch.ID] = true

			if dailyIDPattern.MatchString(ch.ID) {
				return fmt.Errorf("challenge id %s is reserved for daily challenges", ch.ID)
			}

			if weeklyIDPattern.MatchString(ch.ID) {
				return fmt.Errorf("challenge id %s must not end with a date", ch.ID)
			}

			if !enum.IsValid(ch.Type) {
				return fmt.Errorf("challenge %s has invalid type %s", ch.ID, ch.Type)
			}

			if ch.Rewards.BadgeID != "" && !badgeIDs[ch.Rewards.BadgeID] {
				return fmt.Errorf("challenge %s rewards unknown badge %s", ch.ID, ch.Rewards.BadgeID)
			}

			taskIDs := map[string]bool{}
			for _, task := range ch.Tasks {
				if taskIDs[task.ID] {
					return fmt.Errorf("challenge %s has duplicated task %s", ch.ID, task.ID)
				}
				taskIDs[task.ID] = true

				if !enum.IsValid(task.Type) {
					return fmt.Errorf("task %s of %s has invalid type %s", task.ID, ch.ID, task.Type)
				}
			}
		}
	}

	for _, ch := range defs.Challenges {
		if !ch.EndDate.After(ch.StartDate) {
			return fmt.Errorf("challenge %s must end after it starts", ch.ID)
		}
	}

	return nil
}
