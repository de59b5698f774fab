package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/skillmatch/internal/model"
	appErr "github.com/xxxsen/skillmatch/internal/pkg/errors"
	"github.com/xxxsen/skillmatch/internal/pkg/jwt"
	"github.com/xxxsen/skillmatch/internal/pkg/password"
	"github.com/xxxsen/skillmatch/internal/pkg/timeutil"
)

type AuthService struct {
	users     IUserStore
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(users IUserStore, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: secret, jwtTTL: ttl}
}

// Register creates an account. A taken username or email is ErrConflict.
func (s *AuthService) Register(ctx context.Context, username, email, plainPassword string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || plainPassword == "" {
		return nil, appErr.ErrInvalid
	}
	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("check user exists: %w", err)
	}
	if exists {
		return nil, appErr.ErrConflict
	}
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	user := &model.User{
		ID:           newID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("user registered", zap.String("user_id", user.ID), zap.String("username", username))
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || plainPassword == "" {
		return nil, "", appErr.ErrInvalid
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, "", appErr.ErrUnauthorized
		}
		return nil, "", err
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, "", appErr.ErrUnauthorized
	}
	now := timeutil.NowUnix()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logutil.GetLogger(ctx).Error("update last login failed", zap.String("user_id", user.ID), zap.Error(err))
	} else {
		user.LastLogin = now
	}
	token, err := jwt.GenerateToken(user.ID, user.Username, user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
