package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "openinterview/internal/bookings/errors"
	"openinterview/internal/bookings/repository"
	"openinterview/internal/bookings/validator"
	"openinterview/pkg/config"
	"openinterview/pkg/contracts"
	apperrors "openinterview/pkg/errors"
	"openinterview/pkg/kafka"
	"openinterview/pkg/metrics"
	"openinterview/pkg/model"
	"openinterview/pkg/sanitizer"
	"openinterview/pkg/sealer"
	"openinterview/pkg/slotgen"
)

// availabilityFetcher retrieves the normalized availability template for a
// profile. Satisfied by client.AvailabilityClient.
type availabilityFetcher interface {
	FetchTemplate(ctx context.Context, profileID string) (model.AvailabilityTemplate, error)
}

// eventPublisher is the producer surface the service needs. A nil publisher
// disables notifications without touching the booking flow.
type eventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// BookingReceipt is returned on creation. The manage token is the guest's
// only credential for later lookups and cancellation.
type BookingReceipt struct {
	Booking     *model.Booking `json:"booking"`
	ManageToken string         `json:"manage_token"`
}

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) (*BookingReceipt, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	Search(ctx context.Context, profileID string, startTime, endTime *time.Time, status string, limit int, offset int64) ([]*model.Booking, int64, error)
	Update(ctx context.Context, id string, updates *model.BookingUpdate) error
	Cancel(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	GetSlots(ctx context.Context, profileID string, date string, durationMinutes int) ([]model.DaySlots, error)
	GetByManageToken(ctx context.Context, token string) (*model.Booking, error)
	CancelByManageToken(ctx context.Context, token string) error
}

type bookingService struct {
	repo         repository.BookingRepository
	lockRepo     repository.BookingLockRepository
	validator    *validator.BookingValidator
	cfg          *config.Config
	sealer       *sealer.Sealer
	availability availabilityFetcher
	publisher    eventPublisher
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	validator *validator.BookingValidator,
	cfg *config.Config,
	seal *sealer.Sealer,
	availability availabilityFetcher,
	publisher eventPublisher,
) BookingService {
	return &bookingService{
		repo:         repo,
		lockRepo:     lockRepo,
		validator:    validator,
		cfg:          cfg,
		sealer:       seal,
		availability: availability,
		publisher:    publisher,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) (*BookingReceipt, error) {
	s.applyDefaults(booking)
	s.sanitize(booking)

	if err := s.validate(booking); err != nil {
		return nil, err
	}

	tpl, err := s.availability.FetchTemplate(ctx, booking.ProfileID)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch availability for booking",
			"profile_id", booking.ProfileID,
			"error", err,
		)
		return nil, apperrors.Unavailable("Availability service is not reachable")
	}

	if !durationAllowed(tpl.Rules.AllowedDurationsMinutes, booking.DurationMinutes) {
		return nil, apperrors.InvalidInput(fmt.Sprintf(
			"Duration %d minutes is not offered for this profile (allowed: %v)",
			booking.DurationMinutes, tpl.Rules.AllowedDurationsMinutes,
		))
	}

	// Advisory lock on the slot coordinates keeps two guests from racing
	// through the overlap check for the same start time.
	lockID, err := s.acquireSlotLock(ctx, booking.ProfileID, booking.StartTime)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoOverlap(sessCtx, booking); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking",
			"profile_id", booking.ProfileID,
			"start_time", booking.StartTime,
			"error", err,
		)
		return nil, err
	}

	token, err := s.sealer.CreateManageToken(booking.ID, booking.GuestEmail)
	if err != nil {
		// The booking exists; losing the token only affects self-service.
		s.cfg.Log.Error("Failed to create manage token", "booking_id", booking.ID, "error", err)
		return nil, apperrors.Internal("Failed to create manage token", err)
	}

	s.publishEvent(ctx, contracts.EventBookingCreated, booking)
	metrics.IncBookingCreated(booking.ProfileID)

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"profile_id", booking.ProfileID,
		"start_time", booking.StartTime,
		"duration_minutes", booking.DurationMinutes,
	)

	return &BookingReceipt{Booking: booking, ManageToken: token}, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to get booking by ID", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(sharedCtx)
		if err != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", err)
			errCount = apperrors.Internal("Failed to count bookings", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		bookings, err = s.repo.FindAll(sharedCtx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to get all bookings", "limit", limit, "offset", offset, "error", err)
			errFind = apperrors.Internal("Failed to retrieve bookings", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return bookings, count, nil
}

func (s *bookingService) Search(
	ctx context.Context,
	profileID string,
	startTime, endTime *time.Time,
	status string,
	limit int,
	offset int64,
) ([]*model.Booking, int64, error) {
	if profileID == "" {
		return nil, 0, apperrors.InvalidInput("profile_id must be provided")
	}
	if status != "" && status != model.BookingScheduled && status != model.BookingCanceled {
		return nil, 0, apperrors.InvalidInput(fmt.Sprintf("Unknown booking status: %s", status))
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	bookings, err := s.repo.FindByProfile(ctx, profileID, startTime, endTime, status, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to search bookings", "profile_id", profileID, "error", err)
		return nil, 0, apperrors.Internal("Failed to search bookings", err)
	}

	count, err := s.repo.CountByProfile(ctx, profileID, startTime, endTime, status)
	if err != nil {
		s.cfg.Log.Error("Failed to count searched bookings", "profile_id", profileID, "error", err)
		return nil, 0, apperrors.Internal("Failed to count bookings", err)
	}

	return bookings, count, nil
}

func (s *bookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	merged := s.mergeBookingUpdates(existing, updates)
	s.sanitize(merged)

	if err := s.validate(merged); err != nil {
		return err
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoOverlap(sessCtx, merged); err != nil {
			return err
		}
		if err := s.repo.Update(sessCtx, id, merged); err != nil {
			return apperrors.Internal("Failed to update booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return err
	}

	s.cfg.Log.Info("Booking updated successfully", "id", id)
	return nil
}

func (s *bookingService) Cancel(ctx context.Context, id string) error {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Canceling twice is a no-op.
	if booking.Status == model.BookingCanceled {
		return nil
	}

	booking.Status = model.BookingCanceled
	if err := s.repo.Update(ctx, id, booking); err != nil {
		s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
		return apperrors.Internal("Failed to cancel booking", err)
	}

	s.publishEvent(ctx, contracts.EventBookingCanceled, booking)
	metrics.IncBookingCanceled()

	s.cfg.Log.Info("Booking canceled successfully", "id", id, "profile_id", booking.ProfileID)
	return nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to delete booking", "id", id, "error", err)
		return apperrors.Internal("Failed to delete booking", err)
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	return nil
}

func (s *bookingService) GetSlots(ctx context.Context, profileID string, date string, durationMinutes int) ([]model.DaySlots, error) {
	if profileID == "" {
		return nil, apperrors.InvalidInput("Profile ID cannot be empty")
	}
	if _, err := primitive.ObjectIDFromHex(profileID); err != nil {
		return nil, apperrors.InvalidInput("Invalid profile ID format")
	}
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return nil, apperrors.InvalidInput(fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", date))
		}
	}
	// Zero means "use the default increment"; only negatives are invalid.
	if durationMinutes < 0 {
		return nil, apperrors.InvalidInput("Duration cannot be negative")
	}

	tpl, err := s.availability.FetchTemplate(ctx, profileID)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch availability for slots",
			"profile_id", profileID,
			"error", err,
		)
		return nil, apperrors.Unavailable("Availability service is not reachable")
	}

	if durationMinutes != 0 && !durationAllowed(tpl.Rules.AllowedDurationsMinutes, durationMinutes) {
		return nil, apperrors.InvalidInput(fmt.Sprintf(
			"Duration %d minutes is not offered for this profile (allowed: %v)",
			durationMinutes, tpl.Rules.AllowedDurationsMinutes,
		))
	}

	now := time.Now()

	// Overscan by a day on each side so timezone offsets cannot push a
	// relevant booking outside the fetched range.
	from := now.AddDate(0, 0, -1)
	to := now.AddDate(0, 0, tpl.Rules.WindowDays+1)

	const maxWindowBookings = 1000
	scheduled, err := s.repo.FindByProfile(ctx, profileID, &from, &to, model.BookingScheduled, maxWindowBookings, 0)
	if err != nil {
		s.cfg.Log.Error("Failed to load bookings for slot generation",
			"profile_id", profileID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to load existing bookings", err)
	}

	bookings := make([]model.Booking, 0, len(scheduled))
	for _, b := range scheduled {
		bookings = append(bookings, *b)
	}

	days := slotgen.Generate(tpl, bookings, now, slotgen.Options{
		DurationMinutes: durationMinutes,
		Date:            date,
		Logger:          s.cfg.Log,
	})

	total := 0
	for _, d := range days {
		total += len(d.Slots)
	}
	metrics.ObserveSlotsGenerated(total)

	s.cfg.Log.Debug("Slot generation completed",
		"profile_id", profileID,
		"date_filter", date,
		"duration_minutes", durationMinutes,
		"day_count", len(days),
		"slot_count", total,
	)

	return days, nil
}

func (s *bookingService) GetByManageToken(ctx context.Context, token string) (*model.Booking, error) {
	booking, err := s.resolveManageToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) CancelByManageToken(ctx context.Context, token string) error {
	booking, err := s.resolveManageToken(ctx, token)
	if err != nil {
		return err
	}
	return s.Cancel(ctx, booking.ID)
}

// resolveManageToken verifies the token and loads the booking it names. Any
// failure collapses to not-found so tokens cannot be probed.
func (s *bookingService) resolveManageToken(ctx context.Context, token string) (*model.Booking, error) {
	if token == "" {
		return nil, apperrors.InvalidInput("Manage token cannot be empty")
	}

	bookingID, guestEmail, err := s.sealer.ParseManageToken(token)
	if err != nil {
		return nil, apperrors.NotFound("Booking not found")
	}

	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) || errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.NotFound("Booking not found")
		}
		s.cfg.Log.Error("Failed to resolve manage token", "error", err)
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	if !strings.EqualFold(booking.GuestEmail, guestEmail) {
		return nil, apperrors.NotFound("Booking not found")
	}

	return booking, nil
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.GuestName = sanitizer.NormalizeName(b.GuestName)
	b.GuestEmail = strings.ToLower(sanitizer.TrimAndNormalize(b.GuestEmail))
	b.Note = sanitizer.TrimAndNormalize(b.Note)
}

func (s *bookingService) applyDefaults(b *model.Booking) {
	if b.Status == "" {
		b.Status = model.BookingScheduled
	}
	if b.DurationMinutes == 0 && !b.StartTime.IsZero() && !b.EndTime.IsZero() {
		b.DurationMinutes = int(b.EndTime.Sub(b.StartTime) / time.Minute)
	}
	if b.EndTime.IsZero() && b.DurationMinutes > 0 && !b.StartTime.IsZero() {
		b.EndTime = b.StartTime.Add(time.Duration(b.DurationMinutes) * time.Minute)
	}
}

func (s *bookingService) mergeBookingUpdates(existing *model.Booking, updates *model.BookingUpdate) *model.Booking {
	merged := *existing

	if updates.GuestName != "" {
		merged.GuestName = updates.GuestName
	}
	if updates.GuestEmail != "" {
		merged.GuestEmail = updates.GuestEmail
	}
	if updates.Note != nil {
		merged.Note = *updates.Note
	}
	if updates.StartTime != nil {
		merged.StartTime = *updates.StartTime
	}
	if updates.EndTime != nil {
		merged.EndTime = *updates.EndTime
	}
	if updates.StartTime != nil || updates.EndTime != nil {
		merged.DurationMinutes = int(merged.EndTime.Sub(merged.StartTime) / time.Minute)
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}

	return &merged
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// verifyNoOverlap rejects the booking when another scheduled booking for the
// same profile occupies any part of its interval.
func (s *bookingService) verifyNoOverlap(ctx context.Context, booking *model.Booking) error {
	const maxOverlapCheck = 30
	existing, err := s.repo.FindByProfile(ctx, booking.ProfileID, &booking.StartTime, &booking.EndTime, model.BookingScheduled, maxOverlapCheck, 0)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}

	for _, b := range existing {
		if b.ID == booking.ID {
			continue
		}
		if overlaps(b.StartTime, b.EndTime, booking.StartTime, booking.EndTime) {
			return apperrors.Conflict(fmt.Sprintf(
				"Booking time overlaps with existing booking (%s - %s)",
				b.StartTime.Format(time.RFC3339),
				b.EndTime.Format(time.RFC3339),
			))
		}
	}
	return nil
}

func overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}

// acquireSlotLock creates an advisory lock for the slot coordinates. Returns
// a conflict error when another request holds the lock.
func (s *bookingService) acquireSlotLock(ctx context.Context, profileID string, startTime time.Time) (string, error) {
	lockID := fmt.Sprintf("booking_lock_%s_%d", profileID, startTime.Unix())

	lock := &model.BookingLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(10 * time.Second),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This time slot is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire booking lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}

// publishEvent emits a booking event. Publishing is best-effort: a broker
// failure never fails the booking operation itself.
func (s *bookingService) publishEvent(ctx context.Context, eventType string, booking *model.Booking) {
	if s.publisher == nil {
		return
	}

	event := contracts.BookingEvent{
		BookingID:       booking.ID,
		ProfileID:       booking.ProfileID,
		GuestName:       booking.GuestName,
		GuestEmail:      booking.GuestEmail,
		StartTime:       booking.StartTime,
		EndTime:         booking.EndTime,
		DurationMinutes: booking.DurationMinutes,
		Status:          booking.Status,
	}

	msg := kafka.NewMessage().
		WithKey(booking.ID).
		WithValue(event).
		WithEventType(eventType).
		WithSource("bookings").
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
	}
}

func durationAllowed(allowed []int, minutes int) bool {
	for _, d := range allowed {
		if d == minutes {
			return true
		}
	}
	return false
}
