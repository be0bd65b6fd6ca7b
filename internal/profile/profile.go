// Package profile loads and updates the user's profile, which selects the
// companion and visual theme.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kokostudy/koko/internal/store"
)

// Gender is the user's theme preference.
type Gender string

const (
	Female Gender = "female"
	Male   Gender = "male"
)

// DefaultGender is used for profiles that never chose one.
const DefaultGender = Female

// ErrInvalidGender is returned for values other than female or male.
var ErrInvalidGender = errors.New("gender must be female or male")

// ParseGender accepts female or male, case-insensitively.
func ParseGender(s string) (Gender, error) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(s))); g {
	case Female, Male:
		return g, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrInvalidGender)
	}
}

// Profile is loaded once at startup and handed to every component.
type Profile struct {
	UserID      string
	DisplayName string
	Gender      Gender
}

// Service reads and writes the profile of one user.
type Service struct {
	userID string
	repo   store.ProfileRepo
	log    *zap.Logger
}

func NewService(userID string, repo store.ProfileRepo, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{userID: userID, repo: repo, log: log.With(zap.String("component", "profile"))}
}

// Load returns the stored profile, creating it with defaults on first use.
func (s *Service) Load(ctx context.Context) (Profile, error) {
	rec, err := s.repo.GetProfile(ctx, s.userID)
	if errors.Is(err, store.ErrNotFound) {
		rec, err = s.repo.SaveProfile(ctx, store.ProfileRecord{
			UserID: s.userID,
			Gender: string(DefaultGender),
		})
		if err != nil {
			return Profile{}, fmt.Errorf("create profile: %w", err)
		}
		s.log.Info("profile created", zap.String("user_id", s.userID))
	} else if err != nil {
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return fromRecord(rec), nil
}

// SetGender changes the theme preference.
func (s *Service) SetGender(ctx context.Context, g Gender) (Profile, error) {
	if g != Female && g != Male {
		return Profile{}, fmt.Errorf("%q: %w", g, ErrInvalidGender)
	}
	return s.update(ctx, func(p *Profile) { p.Gender = g })
}

// SetDisplayName changes the name the companion greets the user with.
func (s *Service) SetDisplayName(ctx context.Context, name string) (Profile, error) {
	name = strings.TrimSpace(name)
	return s.update(ctx, func(p *Profile) { p.DisplayName = name })
}

func (s *Service) update(ctx context.Context, fn func(*Profile)) (Profile, error) {
	p, err := s.Load(ctx)
	if err != nil {
		return Profile{}, err
	}
	fn(&p)
	rec, err := s.repo.SaveProfile(ctx, store.ProfileRecord{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		Gender:      string(p.Gender),
	})
	if err != nil {
		return Profile{}, fmt.Errorf("save profile: %w", err)
	}
	return fromRecord(rec), nil
}

// Greeting returns the name to address the user by.
func (p Profile) Greeting() string {
	if p.DisplayName == "" {
		return "friend"
	}
	return p.DisplayName
}

func fromRecord(r store.ProfileRecord) Profile {
	g := Gender(r.Gender)
	if g != Female && g != Male {
		g = DefaultGender
	}
	return Profile{UserID: r.UserID, DisplayName: r.DisplayName, Gender: g}
}
