package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/skillmatch/internal/matchcache"
	"github.com/xxxsen/skillmatch/internal/recommend"
)

// MatchService fronts the recommender with the response cache and answers
// the lookup-only skill and habit questions.
type MatchService struct {
	recommender recommend.IRecommender
	advisor     *recommend.Advisor
	cache       *matchcache.MatchCache
}

func NewMatchService(recommender recommend.IRecommender, advisor *recommend.Advisor, cache *matchcache.MatchCache) *MatchService {
	return &MatchService{recommender: recommender, advisor: advisor, cache: cache}
}

// Match consults the response cache only when the recommender deduplicates.
// The cache key ignores order and case, and keyword output depends on both.
func (s *MatchService) Match(ctx context.Context, skills []string) ([]string, error) {
	cacheable := s.recommender.Dedup()
	if cacheable {
		if cached, ok := s.cache.Get(ctx, skills); ok && len(cached) > 0 {
			return cached, nil
		}
	}
	matches, err := s.recommender.Match(ctx, skills)
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.cache.Set(ctx, skills, matches)
	}
	logutil.GetLogger(ctx).Debug("matches computed",
		zap.String("mode", s.recommender.Mode()),
		zap.Int("skills", len(skills)),
		zap.Int("matches", len(matches)),
	)
	return matches, nil
}

func (s *MatchService) RecommendSkills(interests []string) []string {
	return s.advisor.RecommendSkills(interests)
}

func (s *MatchService) HabitRecommendations(sideHustle string) []string {
	return s.advisor.HabitRecommendations(sideHustle)
}

func (s *MatchService) Mode() string {
	return s.recommender.Mode()
}
