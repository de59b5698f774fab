package recommend

import (
	"github.com/xxxsen/skillmatch/internal/catalog"
)

// Advisor answers the lookup-only questions: skills worth learning for a set
// of interests, and habits that support a side hustle.
type Advisor struct {
	interests *catalog.Mapping
	habits    *catalog.Mapping
}

func NewAdvisor(interests, habits *catalog.Mapping) *Advisor {
	return &Advisor{interests: interests, habits: habits}
}

// RecommendSkills matches interest keys exactly; unknown interests add nothing.
func (a *Advisor) RecommendSkills(interests []string) []string {
	out := []string{}
	for _, interest := range interests {
		if items, ok := a.interests.Lookup(interest); ok {
			out = append(out, items...)
		}
	}
	return out
}

func (a *Advisor) HabitRecommendations(sideHustle string) []string {
	items, ok := a.habits.LookupFold(sideHustle)
	if !ok {
		return []string{}
	}
	return items
}
