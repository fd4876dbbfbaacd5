package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/hireloop/jobboard/internal/core/domain"
	"github.com/hireloop/jobboard/internal/core/ports"
)

// ProfileService reads and updates the caller's own candidate or employer
// profile. Profiles are created at registration, never here.
type ProfileService struct {
	users      ports.UserRepository
	candidates ports.CandidateRepository
	employers  ports.EmployerRepository
	validate   *validator.Validate
	log        zerolog.Logger
}

func NewProfileService(
	users ports.UserRepository,
	candidates ports.CandidateRepository,
	employers ports.EmployerRepository,
	log zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		users:      users,
		candidates: candidates,
		employers:  employers,
		validate:   validator.New(),
		log:        log,
	}
}

func (s *ProfileService) GetCandidate(ctx context.Context, userID string) (*ports.CandidateProfile, error) {
	c, err := s.candidates.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withCandidateUser(ctx, c)
}

// UpdateCandidate replaces the candidate's mutable fields. Empty enums fall
// back to their defaults.
func (s *ProfileService) UpdateCandidate(ctx context.Context, userID string, in ports.CandidateUpdate) (*ports.CandidateProfile, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	if in.Experience == "" {
		in.Experience = domain.ExperienceEntry
	}
	if in.Education == "" {
		in.Education = domain.EducationHighSchool
	}

	if _, err := s.candidates.FindByUserID(ctx, userID); err != nil {
		return nil, err
	}

	updated, err := s.candidates.Update(ctx, userID, &domain.Candidate{
		Skills:     in.Skills,
		Experience: in.Experience,
		Education:  in.Education,
		Resume:     in.Resume,
		Location:   in.Location,
		Phone:      in.Phone,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Msg("candidate profile updated")
	return s.withCandidateUser(ctx, updated)
}

func (s *ProfileService) GetEmployer(ctx context.Context, userID string) (*ports.EmployerProfile, error) {
	e, err := s.employers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withEmployerUser(ctx, e)
}

func (s *ProfileService) UpdateEmployer(ctx context.Context, userID string, in ports.EmployerUpdate) (*ports.EmployerProfile, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	if _, err := s.employers.FindByUserID(ctx, userID); err != nil {
		return nil, err
	}

	updated, err := s.employers.Update(ctx, userID, &domain.Employer{
		CompanyName: in.CompanyName,
		Website:     in.Website,
		Description: in.Description,
		Address:     in.Address,
		Phone:       in.Phone,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Msg("employer profile updated")
	return s.withEmployerUser(ctx, updated)
}

func (s *ProfileService) withCandidateUser(ctx context.Context, c *domain.Candidate) (*ports.CandidateProfile, error) {
	u, err := s.users.FindByID(ctx, c.UserID)
	if err != nil {
		return nil, err
	}
	return &ports.CandidateProfile{Candidate: c, User: u.Summary()}, nil
}

func (s *ProfileService) withEmployerUser(ctx context.Context, e *domain.Employer) (*ports.EmployerProfile, error) {
	u, err := s.users.FindByID(ctx, e.UserID)
	if err != nil {
		return nil, err
	}
	return &ports.EmployerProfile{Employer: e, User: u.Summary()}, nil
}
