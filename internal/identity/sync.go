// Package identity keeps the local user store in step with directory logins.
package identity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/authgw/authgw/internal/db/models"
	"github.com/authgw/authgw/internal/directory"
	"github.com/authgw/authgw/internal/policy"
)

// Repository is the part of the user store the sync needs.
type Repository interface {
	FindByUsername(username string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	ListGroups() ([]models.Group, error)
	IsMember(userID uint64, groupID uint) (bool, error)
	AddToGroup(userID uint64, groupID uint) error
}

// Service creates or refreshes the local user of an authenticated directory profile and
// joins it to the matching local groups.
type Service struct {
	repo   Repository
	policy policy.Policy
	now    func() time.Time
}

// NewService returns a Service on repo using pol for the superuser flag.
func NewService(repo Repository, pol policy.Policy) *Service {
	return &Service{
		repo:   repo,
		policy: pol,
		now:    time.Now,
	}
}

// Sync returns the local user for profile, or nil when the profile is not authenticated.
// The user is looked up by requestedLogin, the name typed at the login form.
func (s *Service) Sync(profile *directory.Profile, requestedLogin string, allowlist Allowlist) (*models.User, error) {
	if profile == nil || !profile.IsAuthenticated {
		return nil, nil
	}

	user, err := s.repo.FindByUsername(requestedLogin)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user, err = s.create(profile, requestedLogin)
	} else {
		err = s.refresh(user, profile)
	}

	if err != nil {
		return nil, err
	}

	if err = s.joinGroups(user, profile, allowlist); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) create(profile *directory.Profile, username string) (*models.User, error) {
	placeholder, err := models.HashPassword(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("failed to hash placeholder password: %w", err)
	}

	now := s.now()
	user := &models.User{
		Username:    username,
		Password:    placeholder,
		Active:      true,
		IsStaff:     true,
		IsSuperuser: s.policy.Superuser(profile),
		AuthSource:  models.AuthSourceLDAP,
		LastLogin:   &now,
	}
	applyProfile(user, profile)

	if err = s.repo.Create(user); err != nil {
		// A concurrent login may have created the same username first.
		existing, errFind := s.repo.FindByUsername(username)
		if errFind != nil || existing == nil {
			return nil, err
		}

		log.Debug().Str("username", username).Msg("user was created concurrently, refreshing it")

		return existing, s.refresh(existing, profile)
	}

	log.Info().Str("username", username).Bool("superuser", user.IsSuperuser).Msg("created user from directory profile")

	return user, nil
}

func (s *Service) refresh(user *models.User, profile *directory.Profile) error {
	now := s.now()

	applyProfile(user, profile)
	user.IsStaff = true
	user.IsSuperuser = s.policy.Superuser(profile)
	user.LastLogin = &now

	return s.repo.Update(user)
}

func (s *Service) joinGroups(user *models.User, profile *directory.Profile, allowlist Allowlist) error {
	groups, err := s.repo.ListGroups()
	if err != nil {
		return err
	}

	for _, group := range groups {
		name := normalizeGroup(group.Name)
		if !profile.HasGroup(name) && !allowlist.Contains(name) {
			continue
		}

		member, err := s.repo.IsMember(user.ID, group.ID)
		if err != nil {
			return err
		}

		if member {
			log.Debug().Str("username", user.Username).Str("group", group.Name).Msg("already member of group")
			continue
		}

		log.Debug().Str("username", user.Username).Str("group", group.Name).Msg("adding user to group")

		if err = s.repo.AddToGroup(user.ID, group.ID); err != nil {
			return err
		}
	}

	return nil
}

func applyProfile(user *models.User, profile *directory.Profile) {
	user.FirstName = profile.GivenName
	user.LastName = profile.Surname
	user.Email = profile.Email
	user.ExternalID = profile.DistinguishedName
}
