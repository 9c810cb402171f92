package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	profileserrors "openinterview/internal/profiles/errors"
	"openinterview/internal/profiles/validator"
	"openinterview/pkg/config"
	apperrors "openinterview/pkg/errors"
	"openinterview/pkg/logger"
	"openinterview/pkg/model"
	mongotx "openinterview/pkg/db/mongo"
)

type mockProfileRepository struct {
	createFunc        func(ctx context.Context, profile *model.Profile) error
	findByIDFunc      func(ctx context.Context, id string) (*model.Profile, error)
	findByHandleFunc  func(ctx context.Context, handle string) (*model.Profile, error)
	findAllFunc       func(ctx context.Context, limit int, offset int64) ([]*model.Profile, error)
	updateFunc        func(ctx context.Context, id string, profile *model.Profile) error
	deleteFunc        func(ctx context.Context, id string) error
	countFunc         func(ctx context.Context) (int64, error)
	countByHandleFunc func(ctx context.Context, handle string, excludeID string) (int64, error)
	clearDefaultFunc  func(ctx context.Context, excludeID string) error
}

func (m *mockProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, profile)
	}
	profile.ID = "64f1b2a3c4d5e6f7a8b9c0d1"
	return nil
}

func (m *mockProfileRepository) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, profileserrors.ErrNotFound
}

func (m *mockProfileRepository) FindByHandle(ctx context.Context, handle string) (*model.Profile, error) {
	if m.findByHandleFunc != nil {
		return m.findByHandleFunc(ctx, handle)
	}
	return nil, profileserrors.ErrNotFound
}

func (m *mockProfileRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Profile, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Profile{}, nil
}

func (m *mockProfileRepository) Update(ctx context.Context, id string, profile *model.Profile) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, profile)
	}
	return nil
}

func (m *mockProfileRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockProfileRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockProfileRepository) CountByHandle(ctx context.Context, handle string, excludeID string) (int64, error) {
	if m.countByHandleFunc != nil {
		return m.countByHandleFunc(ctx, handle, excludeID)
	}
	return 0, nil
}

func (m *mockProfileRepository) ClearDefault(ctx context.Context, excludeID string) error {
	if m.clearDefaultFunc != nil {
		return m.clearDefaultFunc(ctx, excludeID)
	}
	return nil
}

func (m *mockProfileRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

func newTestService(repo *mockProfileRepository) *profileService {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "profiles-test",
	})

	return &profileService{
		repo:      repo,
		validator: validator.NewProfileValidator(log),
		cfg: &config.Config{
			Log:         log,
			ReadTimeout: 5 * time.Second,
		},
	}
}

func TestCreateSanitizesAndPersists(t *testing.T) {
	var stored *model.Profile
	repo := &mockProfileRepository{
		createFunc: func(ctx context.Context, profile *model.Profile) error {
			profile.ID = "64f1b2a3c4d5e6f7a8b9c0d1"
			stored = profile
			return nil
		},
	}
	svc := newTestService(repo)

	profile := &model.Profile{
		Handle:   "  Ada Lovelace  ",
		FullName: "  Ada   Lovelace ",
		Skills:   []string{" Go ", "go", "Distributed Systems"},
	}

	if err := svc.Create(context.Background(), profile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil {
		t.Fatal("profile was not persisted")
	}
	if stored.Handle != "ada-lovelace" {
		t.Errorf("expected handle %q, got %q", "ada-lovelace", stored.Handle)
	}
	if stored.FullName != "Ada Lovelace" {
		t.Errorf("expected full name %q, got %q", "Ada Lovelace", stored.FullName)
	}
	if len(stored.Skills) != 2 {
		t.Errorf("expected deduplicated skills, got %v", stored.Skills)
	}
}

func TestCreateRejectsDuplicateHandle(t *testing.T) {
	repo := &mockProfileRepository{
		countByHandleFunc: func(ctx context.Context, handle string, excludeID string) (int64, error) {
			return 1, nil
		},
	}
	svc := newTestService(repo)

	err := svc.Create(context.Background(), &model.Profile{
		Handle:   "ada-lovelace",
		FullName: "Ada Lovelace",
	})
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}

	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestCreateRejectsInvalidProfile(t *testing.T) {
	svc := newTestService(&mockProfileRepository{})

	err := svc.Create(context.Background(), &model.Profile{
		Handle: "x",
	})
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}

	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCreateDefaultClearsPreviousDefault(t *testing.T) {
	cleared := false
	repo := &mockProfileRepository{
		clearDefaultFunc: func(ctx context.Context, excludeID string) error {
			cleared = true
			if excludeID == "" {
				t.Error("expected new profile ID to be excluded from clearing")
			}
			return nil
		},
	}
	svc := newTestService(repo)

	err := svc.Create(context.Background(), &model.Profile{
		Handle:    "backend-go",
		FullName:  "Ada Lovelace",
		IsDefault: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cleared {
		t.Error("expected previous default profile to be cleared")
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newTestService(&mockProfileRepository{})

	_, err := svc.GetByID(context.Background(), "64f1b2a3c4d5e6f7a8b9c0d1")
	if err == nil {
		t.Fatal("expected not found error, got nil")
	}

	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestGetPublicByHandleProjectsPublicView(t *testing.T) {
	repo := &mockProfileRepository{
		findByHandleFunc: func(ctx context.Context, handle string) (*model.Profile, error) {
			return &model.Profile{
				ID:       "64f1b2a3c4d5e6f7a8b9c0d1",
				Handle:   handle,
				FullName: "Ada Lovelace",
				Headline: "Backend engineer",
				Resume:   &model.Attachment{ID: "r1", FileName: "resume.pdf"},
			}, nil
		},
	}
	svc := newTestService(repo)

	public, err := svc.GetPublicByHandle(context.Background(), "Ada-Lovelace")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if public.Handle != "ada-lovelace" {
		t.Errorf("expected sanitized handle lookup, got %q", public.Handle)
	}
	if !public.HasResume {
		t.Error("expected HasResume to be true")
	}
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	existing := &model.Profile{
		ID:       "64f1b2a3c4d5e6f7a8b9c0d1",
		Handle:   "ada-lovelace",
		FullName: "Ada Lovelace",
		Headline: "Backend engineer",
		Summary:  "Ten years of Go",
	}

	var updated *model.Profile
	repo := &mockProfileRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Profile, error) {
			return existing, nil
		},
		updateFunc: func(ctx context.Context, id string, profile *model.Profile) error {
			updated = profile
			return nil
		},
	}
	svc := newTestService(repo)

	newHeadline := "Staff engineer"
	_, err := svc.Update(context.Background(), existing.ID, &model.ProfileUpdate{
		Headline: &newHeadline,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Headline != "Staff engineer" {
		t.Errorf("expected headline to change, got %q", updated.Headline)
	}
	if updated.FullName != "Ada Lovelace" || updated.Summary != "Ten years of Go" {
		t.Error("expected untouched fields to survive the merge")
	}
}

func TestAddAttachmentAssignsIDAndTimestamp(t *testing.T) {
	existing := &model.Profile{
		ID:       "64f1b2a3c4d5e6f7a8b9c0d1",
		Handle:   "ada-lovelace",
		FullName: "Ada Lovelace",
	}

	var saved *model.Profile
	repo := &mockProfileRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Profile, error) {
			return existing, nil
		},
		updateFunc: func(ctx context.Context, id string, profile *model.Profile) error {
			saved = profile
			return nil
		},
	}
	svc := newTestService(repo)

	created, err := svc.AddAttachment(context.Background(), existing.ID, &model.Attachment{
		FileName: "portfolio.pdf",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Error("expected attachment ID to be assigned")
	}
	if created.UploadedAt.IsZero() {
		t.Error("expected upload timestamp to be assigned")
	}
	if saved == nil || len(saved.Attachments) != 1 {
		t.Fatalf("expected one attachment on the saved profile, got %+v", saved)
	}
}

func TestRemoveAttachmentUnknownID(t *testing.T) {
	repo := &mockProfileRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Profile, error) {
			return &model.Profile{
				ID:          id,
				Handle:      "ada-lovelace",
				FullName:    "Ada Lovelace",
				Attachments: []model.Attachment{{ID: "a1", FileName: "cv.pdf"}},
			}, nil
		},
	}
	svc := newTestService(repo)

	err := svc.RemoveAttachment(context.Background(), "64f1b2a3c4d5e6f7a8b9c0d1", "missing")
	if err == nil {
		t.Fatal("expected not found error, got nil")
	}

	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestClearResumeWithoutResume(t *testing.T) {
	repo := &mockProfileRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Profile, error) {
			return &model.Profile{ID: id, Handle: "ada-lovelace", FullName: "Ada Lovelace"}, nil
		},
	}
	svc := newTestService(repo)

	err := svc.ClearResume(context.Background(), "64f1b2a3c4d5e6f7a8b9c0d1")
	if err == nil {
		t.Fatal("expected not found error, got nil")
	}
}

func TestGetAllNormalizesPagination(t *testing.T) {
	var gotLimit int
	repo := &mockProfileRepository{
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Profile, error) {
			gotLimit = limit
			return []*model.Profile{}, nil
		},
		countFunc: func(ctx context.Context) (int64, error) {
			return 0, nil
		},
	}
	svc := newTestService(repo)

	_, _, err := svc.GetAll(context.Background(), -5, -10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit <= 0 {
		t.Errorf("expected normalized limit, got %d", gotLimit)
	}
}
