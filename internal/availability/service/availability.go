package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	availabilityerrors "openinterview/internal/availability/errors"
	"openinterview/internal/availability/repository"
	"openinterview/pkg/availability"
	"openinterview/pkg/config"
	apperrors "openinterview/pkg/errors"
	"openinterview/pkg/model"
	"openinterview/pkg/sanitizer"
)

// AvailabilityView pairs the stored document with its canonical form so
// clients can edit what the owner wrote while booking flows consume the
// normalized template.
type AvailabilityView struct {
	Raw        *model.AvailabilityDocument `json:"raw"`
	Normalized model.AvailabilityTemplate  `json:"normalized"`
}

type AvailabilityService interface {
	Get(ctx context.Context, profileID string) (*AvailabilityView, error)
	Put(ctx context.Context, profileID string, doc *model.AvailabilityDocument) (*AvailabilityView, error)
	Delete(ctx context.Context, profileID string) error
}

type availabilityService struct {
	repo repository.AvailabilityRepository
	cfg  *config.Config
}

func NewAvailabilityService(repo repository.AvailabilityRepository, cfg *config.Config) AvailabilityService {
	return &availabilityService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *availabilityService) Get(ctx context.Context, profileID string) (*AvailabilityView, error) {
	if err := validateProfileID(profileID); err != nil {
		return nil, err
	}

	doc, err := s.repo.FindByProfileID(ctx, profileID)
	if err != nil {
		if errors.Is(err, availabilityerrors.ErrNotFound) {
			// A profile with no stored document has empty availability.
			// Normalizing nil yields the canonical empty template.
			doc = nil
		} else {
			s.cfg.Log.Error("Failed to get availability",
				"profile_id", profileID,
				"error", err,
			)
			return nil, apperrors.Internal("Failed to retrieve availability", err)
		}
	}

	return &AvailabilityView{
		Raw:        doc,
		Normalized: availability.NormalizeWithDefaults(doc, s.cfg.AvailabilityDefaults()),
	}, nil
}

func (s *availabilityService) Put(ctx context.Context, profileID string, doc *model.AvailabilityDocument) (*AvailabilityView, error) {
	if err := validateProfileID(profileID); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperrors.InvalidInput("Availability document cannot be empty")
	}

	s.sanitize(doc)

	if err := s.repo.Upsert(ctx, profileID, doc); err != nil {
		s.cfg.Log.Error("Failed to store availability",
			"profile_id", profileID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to store availability", err)
	}

	s.cfg.Log.Info("Availability updated successfully",
		"profile_id", profileID,
		"timezone", doc.Timezone,
		"weekday_count", len(doc.Weekly),
		"exception_count", len(doc.Exceptions),
	)

	return &AvailabilityView{
		Raw:        doc,
		Normalized: availability.NormalizeWithDefaults(doc, s.cfg.AvailabilityDefaults()),
	}, nil
}

func (s *availabilityService) Delete(ctx context.Context, profileID string) error {
	if err := validateProfileID(profileID); err != nil {
		return err
	}

	err := s.repo.Delete(ctx, profileID)
	if err != nil {
		if errors.Is(err, availabilityerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Availability", profileID)
		}
		s.cfg.Log.Error("Failed to delete availability",
			"profile_id", profileID,
			"error", err,
		)
		return apperrors.Internal("Failed to delete availability", err)
	}

	s.cfg.Log.Info("Availability deleted successfully", "profile_id", profileID)
	return nil
}

func (s *availabilityService) sanitize(doc *model.AvailabilityDocument) {
	doc.Timezone = sanitizer.TrimAndNormalize(doc.Timezone)
	for i := range doc.Exceptions {
		doc.Exceptions[i].Date = sanitizer.TrimAndNormalize(doc.Exceptions[i].Date)
		doc.Exceptions[i].Type = sanitizer.TrimAndNormalize(doc.Exceptions[i].Type)
	}
}

func validateProfileID(profileID string) error {
	if profileID == "" {
		return apperrors.InvalidInput("Profile ID cannot be empty")
	}
	if _, err := primitive.ObjectIDFromHex(profileID); err != nil {
		return apperrors.InvalidInput("Invalid profile ID format")
	}
	return nil
}
