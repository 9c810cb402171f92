package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	profileserrors "openinterview/internal/profiles/errors"
	"openinterview/internal/profiles/repository"
	"openinterview/internal/profiles/validator"
	"openinterview/pkg/config"
	apperrors "openinterview/pkg/errors"
	"openinterview/pkg/model"
	"openinterview/pkg/sanitizer"
)

type ProfileService interface {
	Create(ctx context.Context, profile *model.Profile) error
	GetByID(ctx context.Context, id string) (*model.Profile, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Profile, int64, error)
	GetPublicByHandle(ctx context.Context, handle string) (*model.PublicProfile, error)
	Update(ctx context.Context, id string, updates *model.ProfileUpdate) (*model.Profile, error)
	Delete(ctx context.Context, id string) error
	AddAttachment(ctx context.Context, profileID string, attachment *model.Attachment) (*model.Attachment, error)
	RemoveAttachment(ctx context.Context, profileID string, attachmentID string) error
	SetResume(ctx context.Context, profileID string, attachment *model.Attachment) (*model.Attachment, error)
	ClearResume(ctx context.Context, profileID string) error
}

type profileService struct {
	repo      repository.ProfileRepository
	validator *validator.ProfileValidator
	cfg       *config.Config
}

func NewProfileService(
	repo repository.ProfileRepository,
	validator *validator.ProfileValidator,
	cfg *config.Config,
) ProfileService {
	return &profileService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *profileService) Create(ctx context.Context, profile *model.Profile) error {
	s.sanitize(profile)

	if err := s.validator.Validate(profile); err != nil {
		s.cfg.Log.Warn("Profile validation failed",
			"handle", profile.Handle,
			"error", err,
		)
		return apperrors.Validation("Profile validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		count, err := s.repo.CountByHandle(sessCtx, profile.Handle, "")
		if err != nil {
			return apperrors.Internal("Failed to check handle uniqueness", err)
		}
		if count > 0 {
			return apperrors.Conflict("Profile with the same handle already exists")
		}

		if err := s.repo.Create(sessCtx, profile); err != nil {
			return apperrors.Internal("Failed to create profile", err)
		}

		if profile.IsDefault {
			if err := s.repo.ClearDefault(sessCtx, profile.ID); err != nil {
				return apperrors.Internal("Failed to clear previous default profile", err)
			}
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create profile",
			"handle", profile.Handle,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Profile created successfully",
		"id", profile.ID,
		"handle", profile.Handle,
		"is_default", profile.IsDefault,
	)
	return nil
}

func (s *profileService) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Profile ID cannot be empty")
	}

	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, profileserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Profile", id)
		}
		if errors.Is(err, profileserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid profile ID format")
		}
		s.cfg.Log.Error("Failed to get profile by ID",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve profile", err)
	}

	return profile, nil
}

func (s *profileService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Profile, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var profiles []*model.Profile
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(sharedCtx)
		if err != nil {
			s.cfg.Log.Error("Failed to count profiles", "error", err)
			errCount = apperrors.Internal("Failed to count profiles", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		profiles, err = s.repo.FindAll(sharedCtx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to get all profiles",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve profiles", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return profiles, count, nil
}

func (s *profileService) GetPublicByHandle(ctx context.Context, handle string) (*model.PublicProfile, error) {
	handle = sanitizer.SanitizeHandle(handle)
	if handle == "" {
		return nil, apperrors.InvalidInput("Profile handle cannot be empty")
	}

	profile, err := s.repo.FindByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, profileserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Profile not found")
		}
		s.cfg.Log.Error("Failed to get profile by handle",
			"handle", handle,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve profile", err)
	}

	public := profile.Public()
	return &public, nil
}

func (s *profileService) Update(ctx context.Context, id string, updates *model.ProfileUpdate) (*model.Profile, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Profile ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.sanitizeUpdate(updates)
	merged := s.mergeProfileUpdates(existing, updates)

	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Profile validation failed",
			"id", id,
			"handle", merged.Handle,
			"error", err,
		)
		return nil, apperrors.Validation("Profile validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		count, err := s.repo.CountByHandle(sessCtx, merged.Handle, id)
		if err != nil {
			return apperrors.Internal("Failed to check handle uniqueness", err)
		}
		if count > 0 {
			return apperrors.Conflict("Another profile with the same handle already exists")
		}

		if err := s.repo.Update(sessCtx, id, merged); err != nil {
			return apperrors.Internal("Failed to update profile", err)
		}

		if merged.IsDefault && !existing.IsDefault {
			if err := s.repo.ClearDefault(sessCtx, id); err != nil {
				return apperrors.Internal("Failed to clear previous default profile", err)
			}
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update profile",
			"id", id,
			"error", err,
		)
		return nil, err
	}

	s.cfg.Log.Info("Profile updated successfully", "id", id, "handle", merged.Handle)
	return merged, nil
}

func (s *profileService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Profile ID cannot be empty")
	}

	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, profileserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Profile", id)
		}
		if errors.Is(err, profileserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid profile ID format")
		}
		s.cfg.Log.Error("Failed to delete profile",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to delete profile", err)
	}

	s.cfg.Log.Info("Profile deleted successfully", "id", id)
	return nil
}

func (s *profileService) AddAttachment(ctx context.Context, profileID string, attachment *model.Attachment) (*model.Attachment, error) {
	if profileID == "" {
		return nil, apperrors.InvalidInput("Profile ID cannot be empty")
	}
	if attachment == nil {
		return nil, apperrors.InvalidInput("Attachment cannot be empty")
	}

	s.sanitizeAttachment(attachment)
	attachment.ID = uuid.New().String()
	attachment.UploadedAt = time.Now().UTC().Truncate(time.Millisecond)

	if err := s.validator.ValidateAttachment(attachment); err != nil {
		return nil, apperrors.Validation("Attachment validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		profile, err := s.findProfileTx(sessCtx, profileID)
		if err != nil {
			return err
		}

		profile.Attachments = append(profile.Attachments, *attachment)
		if err := s.repo.Update(sessCtx, profileID, profile); err != nil {
			return apperrors.Internal("Failed to save attachment", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to add attachment",
			"profile_id", profileID,
			"file_name", attachment.FileName,
			"error", err,
		)
		return nil, err
	}

	s.cfg.Log.Info("Attachment added successfully",
		"profile_id", profileID,
		"attachment_id", attachment.ID,
		"file_name", attachment.FileName,
	)
	return attachment, nil
}

func (s *profileService) RemoveAttachment(ctx context.Context, profileID string, attachmentID string) error {
	if profileID == "" {
		return apperrors.InvalidInput("Profile ID cannot be empty")
	}
	if attachmentID == "" {
		return apperrors.InvalidInput("Attachment ID cannot be empty")
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		profile, err := s.findProfileTx(sessCtx, profileID)
		if err != nil {
			return err
		}

		kept := profile.Attachments[:0]
		found := false
		for _, a := range profile.Attachments {
			if a.ID == attachmentID {
				found = true
				continue
			}
			kept = append(kept, a)
		}
		if !found {
			return apperrors.NotFoundWithID("Attachment", attachmentID)
		}

		profile.Attachments = kept
		if err := s.repo.Update(sessCtx, profileID, profile); err != nil {
			return apperrors.Internal("Failed to remove attachment", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to remove attachment",
			"profile_id", profileID,
			"attachment_id", attachmentID,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Attachment removed successfully",
		"profile_id", profileID,
		"attachment_id", attachmentID,
	)
	return nil
}

func (s *profileService) SetResume(ctx context.Context, profileID string, attachment *model.Attachment) (*model.Attachment, error) {
	if profileID == "" {
		return nil, apperrors.InvalidInput("Profile ID cannot be empty")
	}
	if attachment == nil {
		return nil, apperrors.InvalidInput("Resume attachment cannot be empty")
	}

	s.sanitizeAttachment(attachment)
	attachment.ID = uuid.New().String()
	attachment.UploadedAt = time.Now().UTC().Truncate(time.Millisecond)

	if err := s.validator.ValidateAttachment(attachment); err != nil {
		return nil, apperrors.Validation("Resume validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		profile, err := s.findProfileTx(sessCtx, profileID)
		if err != nil {
			return err
		}

		profile.Resume = attachment
		if err := s.repo.Update(sessCtx, profileID, profile); err != nil {
			return apperrors.Internal("Failed to save resume", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to set resume",
			"profile_id", profileID,
			"file_name", attachment.FileName,
			"error", err,
		)
		return nil, err
	}

	s.cfg.Log.Info("Resume set successfully",
		"profile_id", profileID,
		"attachment_id", attachment.ID,
	)
	return attachment, nil
}

func (s *profileService) ClearResume(ctx context.Context, profileID string) error {
	if profileID == "" {
		return apperrors.InvalidInput("Profile ID cannot be empty")
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		profile, err := s.findProfileTx(sessCtx, profileID)
		if err != nil {
			return err
		}
		if profile.Resume == nil {
			return apperrors.NotFound("Profile has no resume")
		}

		profile.Resume = nil
		if err := s.repo.Update(sessCtx, profileID, profile); err != nil {
			return apperrors.Internal("Failed to clear resume", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to clear resume",
			"profile_id", profileID,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Resume cleared successfully", "profile_id", profileID)
	return nil
}

func (s *profileService) findProfileTx(sessCtx mongo.SessionContext, profileID string) (*model.Profile, error) {
	profile, err := s.repo.FindByID(sessCtx, profileID)
	if err != nil {
		if errors.Is(err, profileserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Profile", profileID)
		}
		if errors.Is(err, profileserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid profile ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve profile", err)
	}
	return profile, nil
}

func (s *profileService) sanitize(p *model.Profile) {
	p.Handle = sanitizer.SanitizeHandle(p.Handle)
	p.FullName = sanitizer.NormalizeName(p.FullName)
	p.Headline = sanitizer.NormalizeHeadline(p.Headline)
	p.Summary = sanitizer.TrimAndNormalize(p.Summary)
	p.Skills = sanitizer.SanitizeSlice(p.Skills, sanitizer.NormalizeSkill)
	for i := range p.Links {
		p.Links[i].Label = sanitizer.TrimAndNormalize(p.Links[i].Label)
		p.Links[i].URL = sanitizer.NormalizeURL(p.Links[i].URL)
	}
}

func (s *profileService) sanitizeUpdate(updates *model.ProfileUpdate) {
	if updates.Handle != "" {
		updates.Handle = sanitizer.SanitizeHandle(updates.Handle)
	}
	if updates.FullName != "" {
		updates.FullName = sanitizer.NormalizeName(updates.FullName)
	}
	if updates.Headline != nil {
		*updates.Headline = sanitizer.NormalizeHeadline(*updates.Headline)
	}
	if updates.Summary != nil {
		*updates.Summary = sanitizer.TrimAndNormalize(*updates.Summary)
	}
	if updates.Skills != nil {
		*updates.Skills = sanitizer.SanitizeSlice(*updates.Skills, sanitizer.NormalizeSkill)
	}
	if updates.Links != nil {
		links := *updates.Links
		for i := range links {
			links[i].Label = sanitizer.TrimAndNormalize(links[i].Label)
			links[i].URL = sanitizer.NormalizeURL(links[i].URL)
		}
	}
}

func (s *profileService) sanitizeAttachment(a *model.Attachment) {
	a.FileName = sanitizer.TrimAndNormalize(a.FileName)
	a.ContentType = sanitizer.TrimAndNormalize(a.ContentType)
}

func (s *profileService) mergeProfileUpdates(existing *model.Profile, updates *model.ProfileUpdate) *model.Profile {
	merged := *existing

	if updates.Handle != "" {
		merged.Handle = updates.Handle
	}
	if updates.FullName != "" {
		merged.FullName = updates.FullName
	}
	if updates.Headline != nil {
		merged.Headline = *updates.Headline
	}
	if updates.Summary != nil {
		merged.Summary = *updates.Summary
	}
	if updates.Skills != nil {
		merged.Skills = *updates.Skills
	}
	if updates.Links != nil {
		merged.Links = *updates.Links
	}
	if updates.IsDefault != nil {
		merged.IsDefault = *updates.IsDefault
	}

	return &merged
}
