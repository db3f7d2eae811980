package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/eslsoft/learnhub/internal/core"
)

// UserService registers and looks up accounts.
type UserService struct {
	users  core.Repository[core.User]
	cost   int
	logger *zap.Logger
	now    func() time.Time
}

// NewUserService constructs a UserService backed by the provided repository.
func NewUserService(users core.Repository[core.User]) *UserService {
	return &UserService{
		users:  users,
		cost:   bcrypt.DefaultCost,
		logger: zap.NewNop(),
		now:    time.Now,
	}
}

// WithClock allows tests to override the clock used by the service.
func (s *UserService) WithClock(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// WithLogger replaces the no-op logger.
func (s *UserService) WithLogger(l *zap.Logger) {
	if l != nil {
		s.logger = l
	}
}

// WithHashCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func (s *UserService) WithHashCost(cost int) {
	if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
		s.cost = cost
	}
}

var _ core.UserService = (*UserService)(nil)

// CreateUser registers an account with a bcrypt password hash.
func (s *UserService) CreateUser(ctx context.Context, params core.CreateUserParams) (*core.User, error) {
	if params.Username == "" {
		return nil, core.ErrMissingUsername
	}
	username := strings.TrimSpace(params.Username)
	if username == "" {
		return nil, core.ErrEmptyUsername
	}
	if params.Password == "" {
		return nil, core.ErrMissingPassword
	}

	taken, err := s.users.FindOne(ctx, core.NewQuery().Where(core.Eq(core.UserFieldUsername, username)))
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, core.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.cost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := core.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, core.ErrConflict) {
			s.logger.Warn("concurrent registration rejected by storage", zap.String("username", username), zap.Error(err))
			return nil, core.ErrUsernameTaken
		}
		return nil, err
	}
	s.logger.Debug("user created", zap.Stringer("user_id", user.ID))

	return s.FindUserByID(ctx, core.FindUserParams{UserID: user.ID, ReturnError: true})
}

// FindUserByID returns a single user.
func (s *UserService) FindUserByID(ctx context.Context, params core.FindUserParams) (*core.User, error) {
	return lookup(ctx, s.users, params.UserID, nil, params.ReturnError, core.ErrUserNotFound)
}

// CheckPassword reports whether password matches the user's stored hash.
func CheckPassword(user *core.User, password string) bool {
	if user == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
