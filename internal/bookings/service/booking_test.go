package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "openinterview/internal/bookings/errors"
	"openinterview/internal/bookings/validator"
	"openinterview/pkg/config"
	mongotx "openinterview/pkg/db/mongo"
	apperrors "openinterview/pkg/errors"
	"openinterview/pkg/kafka"
	"openinterview/pkg/logger"
	"openinterview/pkg/model"
	"openinterview/pkg/sealer"
)

type mockBookingRepository struct {
	createFunc         func(ctx context.Context, booking *model.Booking) error
	findByIDFunc       func(ctx context.Context, id string) (*model.Booking, error)
	findAllFunc        func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	findByProfileFunc  func(ctx context.Context, profileID string, startTime, endTime *time.Time, status string, limit int, offset int64) ([]*model.Booking, error)
	countByProfileFunc func(ctx context.Context, profileID string, startTime, endTime *time.Time, status string) (int64, error)
	updateFunc         func(ctx context.Context, id string, booking *model.Booking) error
	deleteFunc         func(ctx context.Context, id string) error
	countFunc          func(ctx context.Context) (int64, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	booking.ID = "64f1b2a3c4d5e6f7a8b9c0d2"
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindByProfile(ctx context.Context, profileID string, startTime, endTime *time.Time, status string, limit int, offset int64) ([]*model.Booking, error) {
	if m.findByProfileFunc != nil {
		return m.findByProfileFunc(ctx, profileID, startTime, endTime, status, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) CountByProfile(ctx context.Context, profileID string, startTime, endTime *time.Time, status string) (int64, error) {
	if m.countByProfileFunc != nil {
		return m.countByProfileFunc(ctx, profileID, startTime, endTime, status)
	}
	return 0, nil
}

func (m *mockBookingRepository) Update(ctx context.Context, id string, booking *model.Booking) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, booking)
	}
	return nil
}

func (m *mockBookingRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockBookingRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type mockLockRepository struct {
	createFunc func(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error)
	deleted    []string
}

func (m *mockLockRepository) Create(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, lock)
	}
	return lock, nil
}

func (m *mockLockRepository) Delete(ctx context.Context, lockID string) error {
	m.deleted = append(m.deleted, lockID)
	return nil
}

type mockAvailability struct {
	template model.AvailabilityTemplate
	err      error
}

func (m *mockAvailability) FetchTemplate(ctx context.Context, profileID string) (model.AvailabilityTemplate, error) {
	if m.err != nil {
		return model.AvailabilityTemplate{}, m.err
	}
	return m.template, nil
}

type mockPublisher struct {
	published []kafka.Message
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	m.published = append(m.published, msg)
	return nil
}

const testProfileID = "64f1b2a3c4d5e6f7a8b9c0d1"

func standardTemplate() model.AvailabilityTemplate {
	return model.AvailabilityTemplate{
		Timezone: "UTC",
		Weekly: map[string][]model.TimeRange{
			"Mon": {{Start: "09:00", End: "17:00"}},
			"Tue": {{Start: "09:00", End: "17:00"}},
			"Wed": {{Start: "09:00", End: "17:00"}},
			"Thu": {{Start: "09:00", End: "17:00"}},
			"Fri": {{Start: "09:00", End: "17:00"}},
		},
		Rules: model.Rules{
			IncrementMinutes:        30,
			WindowDays:              14,
			AllowedDurationsMinutes: []int{15, 30, 60},
		},
	}
}

func newTestBookingService(t *testing.T, repo *mockBookingRepository, locks *mockLockRepository, avail *mockAvailability, pub *mockPublisher) *bookingService {
	t.Helper()

	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "bookings-test",
	})

	seal, err := sealer.NewSealer("")
	if err != nil {
		t.Fatalf("failed to build sealer: %v", err)
	}

	var publisher eventPublisher
	if pub != nil {
		publisher = pub
	}

	return &bookingService{
		repo:      repo,
		lockRepo:  locks,
		validator: validator.NewBookingValidator(log),
		cfg: &config.Config{
			Log:         log,
			ReadTimeout: 5 * time.Second,
		},
		sealer:       seal,
		availability: avail,
		publisher:    publisher,
	}
}

func futureBooking() *model.Booking {
	start := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	return &model.Booking{
		ProfileID:       testProfileID,
		GuestName:       "Grace Hopper",
		GuestEmail:      "Grace@Example.com",
		StartTime:       start,
		EndTime:         start.Add(30 * time.Minute),
		DurationMinutes: 30,
	}
}

func TestCreateIssuesManageToken(t *testing.T) {
	repo := &mockBookingRepository{}
	locks := &mockLockRepository{}
	pub := &mockPublisher{}
	svc := newTestBookingService(t, repo, locks, &mockAvailability{template: standardTemplate()}, pub)

	receipt, err := svc.Create(context.Background(), futureBooking())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.ManageToken == "" {
		t.Error("expected manage token in receipt")
	}
	if receipt.Booking.Status != model.BookingScheduled {
		t.Errorf("expected scheduled status, got %q", receipt.Booking.Status)
	}
	if receipt.Booking.GuestEmail != "grace@example.com" {
		t.Errorf("expected lowercased email, got %q", receipt.Booking.GuestEmail)
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected one published event, got %d", len(pub.published))
	}
	if got := pub.published[0].GetEventType(); got != "booking.created" {
		t.Errorf("expected booking.created event, got %q", got)
	}
	if len(locks.deleted) != 1 {
		t.Errorf("expected advisory lock to be released, got %v", locks.deleted)
	}
}

func TestCreateRejectsDisallowedDuration(t *testing.T) {
	svc := newTestBookingService(t, &mockBookingRepository{}, &mockLockRepository{}, &mockAvailability{template: standardTemplate()}, nil)

	booking := futureBooking()
	booking.EndTime = booking.StartTime.Add(45 * time.Minute)
	booking.DurationMinutes = 45

	_, err := svc.Create(context.Background(), booking)
	if err == nil {
		t.Fatal("expected invalid input error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected invalid input error, got %v", err)
	}
}

func TestCreateConflictsWhenSlotLocked(t *testing.T) {
	locks := &mockLockRepository{
		createFunc: func(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
			return nil, mongo.WriteException{
				WriteErrors: mongo.WriteErrors{{Code: 11000}},
			}
		},
	}
	svc := newTestBookingService(t, &mockBookingRepository{}, locks, &mockAvailability{template: standardTemplate()}, nil)

	_, err := svc.Create(context.Background(), futureBooking())
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestCreateConflictsOnOverlap(t *testing.T) {
	booking := futureBooking()

	repo := &mockBookingRepository{
		findByProfileFunc: func(ctx context.Context, profileID string, startTime, endTime *time.Time, status string, limit int, offset int64) ([]*model.Booking, error) {
			return []*model.Booking{{
				ID:        "64f1b2a3c4d5e6f7a8b9c0d9",
				ProfileID: profileID,
				StartTime: booking.StartTime.Add(-15 * time.Minute),
				EndTime:   booking.StartTime.Add(15 * time.Minute),
				Status:    model.BookingScheduled,
			}}, nil
		},
	}
	svc := newTestBookingService(t, repo, &mockLockRepository{}, &mockAvailability{template: standardTemplate()}, nil)

	_, err := svc.Create(context.Background(), booking)
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestCreateFailsWhenAvailabilityUnreachable(t *testing.T) {
	svc := newTestBookingService(t, &mockBookingRepository{}, &mockLockRepository{}, &mockAvailability{err: context.DeadlineExceeded}, nil)

	_, err := svc.Create(context.Background(), futureBooking())
	if err == nil {
		t.Fatal("expected unavailable error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeUnavailable {
		t.Errorf("expected unavailable error, got %v", err)
	}
}

func TestCancelPublishesEventOnce(t *testing.T) {
	stored := futureBooking()
	stored.ID = "64f1b2a3c4d5e6f7a8b9c0d2"
	stored.Status = model.BookingScheduled

	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			copied := *stored
			return &copied, nil
		},
		updateFunc: func(ctx context.Context, id string, booking *model.Booking) error {
			stored.Status = booking.Status
			return nil
		},
	}
	pub := &mockPublisher{}
	svc := newTestBookingService(t, repo, &mockLockRepository{}, &mockAvailability{template: standardTemplate()}, pub)

	if err := svc.Cancel(context.Background(), stored.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != model.BookingCanceled {
		t.Errorf("expected canceled status, got %q", stored.Status)
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected one published event, got %d", len(pub.published))
	}
	if got := pub.published[0].GetEventType(); got != "booking.canceled" {
		t.Errorf("expected booking.canceled event, got %q", got)
	}

	// A second cancel is a no-op and publishes nothing.
	if err := svc.Cancel(context.Background(), stored.ID); err != nil {
		t.Fatalf("unexpected error on repeat cancel: %v", err)
	}
	if len(pub.published) != 1 {
		t.Errorf("expected repeat cancel to publish nothing, got %d events", len(pub.published))
	}
}

func TestManageTokenRoundTrip(t *testing.T) {
	stored := futureBooking()
	stored.ID = "64f1b2a3c4d5e6f7a8b9c0d2"
	stored.GuestEmail = "grace@example.com"
	stored.Status = model.BookingScheduled

	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			if id != stored.ID {
				return nil, bookingserrors.ErrNotFound
			}
			copied := *stored
			return &copied, nil
		},
	}
	svc := newTestBookingService(t, repo, &mockLockRepository{}, &mockAvailability{template: standardTemplate()}, nil)

	token, err := svc.sealer.CreateManageToken(stored.ID, stored.GuestEmail)
	if err != nil {
		t.Fatalf("failed to create token: %v", err)
	}

	booking, err := svc.GetByManageToken(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.ID != stored.ID {
		t.Errorf("expected booking %s, got %s", stored.ID, booking.ID)
	}
}

func TestManageTokenWrongEmailIsNotFound(t *testing.T) {
	stored := futureBooking()
	stored.ID = "64f1b2a3c4d5e6f7a8b9c0d2"
	stored.GuestEmail = "grace@example.com"

	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			copied := *stored
			return &copied, nil
		},
	}
	svc := newTestBookingService(t, repo, &mockLockRepository{}, &mockAvailability{template: standardTemplate()}, nil)

	token, err := svc.sealer.CreateManageToken(stored.ID, "someone-else@example.com")
	if err != nil {
		t.Fatalf("failed to create token: %v", err)
	}

	_, err = svc.GetByManageToken(context.Background(), token)
	if err == nil {
		t.Fatal("expected not found error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestManageTokenGarbageIsNotFound(t *testing.T) {
	svc := newTestBookingService(t, &mockBookingRepository{}, &mockLockRepository{}, &mockAvailability{template: standardTemplate()}, nil)

	_, err := svc.GetByManageToken(context.Background(), "not-a-real-token")
	if err == nil {
		t.Fatal("expected not found error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestGetSlotsExcludesExistingBookings(t *testing.T) {
	tpl := standardTemplate()
	tpl.Rules.WindowDays = 3

	var queriedStatus string
	repo := &mockBookingRepository{
		findByProfileFunc: func(ctx context.Context, profileID string, startTime, endTime *time.Time, status string, limit int, offset int64) ([]*model.Booking, error) {
			queriedStatus = status
			return []*model.Booking{}, nil
		},
	}
	svc := newTestBookingService(t, repo, &mockLockRepository{}, &mockAvailability{template: tpl}, nil)

	days, err := svc.GetSlots(context.Background(), testProfileID, "", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if queriedStatus != model.BookingScheduled {
		t.Errorf("expected only scheduled bookings to block slots, queried %q", queriedStatus)
	}
	for _, d := range days {
		for _, slot := range d.Slots {
			if !slot.End.After(slot.Start) {
				t.Errorf("malformed slot %+v on %s", slot, d.Date)
			}
		}
	}
}

func TestGetSlotsRejectsDisallowedDuration(t *testing.T) {
	svc := newTestBookingService(t, &mockBookingRepository{}, &mockLockRepository{}, &mockAvailability{template: standardTemplate()}, nil)

	_, err := svc.GetSlots(context.Background(), testProfileID, "", 45)
	if err == nil {
		t.Fatal("expected invalid input error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected invalid input error, got %v", err)
	}
}

func TestGetSlotsDurationBounds(t *testing.T) {
	svc := newTestBookingService(t, &mockBookingRepository{}, &mockLockRepository{}, &mockAvailability{template: standardTemplate()}, nil)

	_, err := svc.GetSlots(context.Background(), testProfileID, "", -15)
	if err == nil {
		t.Fatal("expected invalid input error for negative duration, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected invalid input error, got %v", err)
	}

	// Zero falls back to the default increment.
	if _, err := svc.GetSlots(context.Background(), testProfileID, "", 0); err != nil {
		t.Errorf("zero duration should use the default increment, got %v", err)
	}
}

func TestGetSlotsRejectsMalformedDate(t *testing.T) {
	svc := newTestBookingService(t, &mockBookingRepository{}, &mockLockRepository{}, &mockAvailability{template: standardTemplate()}, nil)

	_, err := svc.GetSlots(context.Background(), testProfileID, "01-02-2026", 30)
	if err == nil {
		t.Fatal("expected invalid input error, got nil")
	}
}

func TestSearchRejectsUnknownStatus(t *testing.T) {
	svc := newTestBookingService(t, &mockBookingRepository{}, &mockLockRepository{}, &mockAvailability{template: standardTemplate()}, nil)

	_, _, err := svc.Search(context.Background(), testProfileID, nil, nil, "pending", 10, 0)
	if err == nil {
		t.Fatal("expected invalid input error, got nil")
	}
}
