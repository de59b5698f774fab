package service

import (
	"context"
	"sort"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/skillmatch/internal/model"
	"github.com/xxxsen/skillmatch/internal/pkg/timeutil"
)

const (
	ActivityRegistered  = "registered"
	ActivityLogin       = "login"
	ActivitySkillAdded  = "skill_added"
	ActivityHabitAdded  = "habit_added"
	maxProfileEntries   = 50
	maxProfileEntrySize = 200
)

type ActivityEvent struct {
	Action string `json:"action"`
	Detail string `json:"detail,omitempty"`
	Time   string `json:"time"`

	ts int64
}

type Dashboard struct {
	Username        string          `json:"username"`
	Email           string          `json:"email"`
	LastLogin       string          `json:"last_login"`
	Skills          []string        `json:"skills"`
	Habits          []string        `json:"habits"`
	Recommendations []string        `json:"recommendations"`
	Activity        []ActivityEvent `json:"activity"`
}

type IMatcher interface {
	Match(ctx context.Context, skills []string) ([]string, error)
}

type DashboardService struct {
	users    IUserStore
	profiles IProfileStore
	matcher  IMatcher
}

// NewDashboardService accepts a nil matcher, in which case dashboards carry
// no recommendations.
func NewDashboardService(users IUserStore, profiles IProfileStore, matcher IMatcher) *DashboardService {
	return &DashboardService{users: users, profiles: profiles, matcher: matcher}
}

func (s *DashboardService) Get(ctx context.Context, userID string) (*Dashboard, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	skills, err := s.profiles.ListSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	habits, err := s.profiles.ListHabits(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &Dashboard{
		Username:        user.Username,
		Email:           user.Email,
		LastLogin:       timeutil.FormatUnix(user.LastLogin),
		Skills:          make([]string, 0, len(skills)),
		Habits:          make([]string, 0, len(habits)),
		Recommendations: []string{},
	}
	for _, item := range skills {
		out.Skills = append(out.Skills, item.Name)
	}
	for _, item := range habits {
		out.Habits = append(out.Habits, item.Description)
	}
	out.Activity = buildActivity(user, skills, habits)
	if s.matcher != nil && len(out.Skills) > 0 {
		recs, err := s.matcher.Match(ctx, out.Skills)
		if err != nil {
			logutil.GetLogger(ctx).Error("dashboard recommendations failed", zap.String("user_id", userID), zap.Error(err))
		} else {
			out.Recommendations = recs
		}
	}
	return out, nil
}

func (s *DashboardService) ReplaceSkills(ctx context.Context, userID string, skills []string) ([]string, error) {
	names, err := cleanProfileEntries(skills)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	rows := make([]model.UserSkill, 0, len(names))
	for _, name := range names {
		rows = append(rows, model.UserSkill{ID: newID(), UserID: userID, Name: name, Ctime: now})
	}
	if err := s.profiles.ReplaceSkills(ctx, userID, rows); err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("skills saved", zap.String("user_id", userID), zap.Int("count", len(rows)))
	return names, nil
}

func (s *DashboardService) ReplaceHabits(ctx context.Context, userID string, habits []string) ([]string, error) {
	descs, err := cleanProfileEntries(habits)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	rows := make([]model.UserHabit, 0, len(descs))
	for _, desc := range descs {
		rows = append(rows, model.UserHabit{ID: newID(), UserID: userID, Description: desc, Ctime: now})
	}
	if err := s.profiles.ReplaceHabits(ctx, userID, rows); err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("habits saved", zap.String("user_id", userID), zap.Int("count", len(rows)))
	return descs, nil
}

// cleanProfileEntries trims, drops blanks and removes case-insensitive
// duplicates while keeping the first spelling.
func cleanProfileEntries(items []string) ([]string, error) {
	if len(items) > maxProfileEntries {
		return nil, ErrTooManyEntries
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if len(item) > maxProfileEntrySize {
			return nil, ErrEntryTooLong
		}
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out, nil
}

func buildActivity(user *model.User, skills []model.UserSkill, habits []model.UserHabit) []ActivityEvent {
	events := make([]ActivityEvent, 0, 2+len(skills)+len(habits))
	if user.Ctime > 0 {
		events = append(events, ActivityEvent{Action: ActivityRegistered, ts: user.Ctime})
	}
	if user.LastLogin > 0 {
		events = append(events, ActivityEvent{Action: ActivityLogin, ts: user.LastLogin})
	}
	for _, item := range skills {
		events = append(events, ActivityEvent{Action: ActivitySkillAdded, Detail: item.Name, ts: item.Ctime})
	}
	for _, item := range habits {
		events = append(events, ActivityEvent{Action: ActivityHabitAdded, Detail: item.Description, ts: item.Ctime})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].ts > events[j].ts
	})
	for i := range events {
		events[i].Time = timeutil.FormatUnix(events[i].ts)
	}
	return events
}
