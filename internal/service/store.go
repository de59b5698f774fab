package service

import (
	"context"

	"github.com/xxxsen/skillmatch/internal/model"
)

type IUserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, userID string) (*model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, userID string, ts int64) error
}

type IProfileStore interface {
	ReplaceSkills(ctx context.Context, userID string, skills []model.UserSkill) error
	ReplaceHabits(ctx context.Context, userID string, habits []model.UserHabit) error
	ListSkills(ctx context.Context, userID string) ([]model.UserSkill, error)
	ListHabits(ctx context.Context, userID string) ([]model.UserHabit, error)
}
