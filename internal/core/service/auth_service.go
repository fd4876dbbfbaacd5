package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/go-errors/errors"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hireloop/jobboard/internal/core/domain"
	"github.com/hireloop/jobboard/internal/core/ports"
	"github.com/hireloop/jobboard/internal/pkg/metrics"
)

// AuthService implements registration, login and the current-user lookup.
type AuthService struct {
	users      ports.UserRepository
	candidates ports.CandidateRepository
	employers  ports.EmployerRepository
	limiter    ports.LoginLimiter
	notifier   ports.Notifier
	validate   *validator.Validate
	log        zerolog.Logger
	jwtSecret  string
	tokenTTL   time.Duration
	now        func() time.Time
}

// AuthDeps groups the collaborators of AuthService.
type AuthDeps struct {
	Users      ports.UserRepository
	Candidates ports.CandidateRepository
	Employers  ports.EmployerRepository
	Limiter    ports.LoginLimiter
	Notifier   ports.Notifier
	Log        zerolog.Logger
}

func NewAuthService(deps AuthDeps, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:      deps.Users,
		candidates: deps.Candidates,
		employers:  deps.Employers,
		limiter:    deps.Limiter,
		notifier:   deps.Notifier,
		validate:   validator.New(),
		log:        deps.Log,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Register creates the account and its single role profile, then returns a
// signed token.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validate.Struct(in); err != nil {
		return "", validationError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", goerrors.WrapPrefix(err, "hash password", 0)
	}

	now := s.now()
	user, err := s.users.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    now,
	})
	if err != nil {
		return "", err
	}

	if err := s.createProfile(ctx, user, now); err != nil {
		// Without its profile the account is unusable; take it back out.
		if delErr := s.users.Delete(ctx, user.ID); delErr != nil {
			s.log.Error().Err(delErr).Str("user_id", user.ID).Msg("failed to remove user after profile error")
		}
		return "", goerrors.WrapPrefix(err, "create profile", 0)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user registered")

	notify(ctx, s.notifier, s.log, domain.Notification{
		Kind:    domain.NotifyWelcome,
		To:      user.Email,
		Subject: "Welcome to JobBoard",
		Message: fmt.Sprintf("Welcome to JobBoard, %s! You have successfully registered as a %s.", user.Name, user.Role),
	})

	return s.generateToken(user)
}

func (s *AuthService) createProfile(ctx context.Context, user *domain.User, now time.Time) error {
	switch user.Role {
	case domain.RoleEmployer:
		_, err := s.employers.Create(ctx, domain.NewEmployer(user.ID, now))
		return err
	case domain.RoleCandidate:
		_, err := s.candidates.Create(ctx, domain.NewCandidate(user.ID, now))
		return err
	default:
		return domain.Invalid("role must be one of: candidate employer")
	}
}

// Login verifies the credentials and returns a signed token. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		blocked, err := s.limiter.Blocked(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login limiter check failed, continuing")
		} else if blocked {
			metrics.LoginAttemptsTotal.WithLabelValues("blocked").Inc()
			return "", domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return "", domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login attempts")
		}
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	return s.generateToken(user)
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}

// Me returns the user with the profile that matches their role. A missing
// profile yields a nil profile rather than an error.
func (s *AuthService) Me(ctx context.Context, userID string) (*ports.MeResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := &ports.MeResult{User: user}
	switch user.Role {
	case domain.RoleEmployer:
		e, err := s.employers.FindByUserID(ctx, userID)
		if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		if e != nil {
			res.Profile = &ports.EmployerProfile{Employer: e, User: user.Summary()}
		}
	case domain.RoleCandidate:
		c, err := s.candidates.FindByUserID(ctx, userID)
		if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		if c != nil {
			res.Profile = &ports.CandidateProfile{Candidate: c, User: user.Summary()}
		}
	}
	return res, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  s.now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", goerrors.WrapPrefix(err, "sign token", 0)
	}
	return signed, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
