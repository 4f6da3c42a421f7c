package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/domain/schedule"
	"studio-booking/internal/domain/user"
	reqdto "studio-booking/internal/handler/dto/request"
	"studio-booking/internal/infra"
	"studio-booking/internal/infra/db"
	"studio-booking/internal/pkg/clock"
	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/usecase/queries"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrStudioNotFound        = errs.New("studio not found")
	ErrBookingNotFound       = errs.New("booking not found")
	ErrInvalidInterval       = errs.New("invalid interval")
	ErrOutOfWindow           = errs.New("date outside the advance booking window")
	ErrSlotConflict          = errs.New("slot conflict")
	ErrNotCancellable        = errs.New("booking is not cancellable")
	ErrForbiddenOverride     = errs.New("validation override requires admin role")
	ErrDuplicateRequest      = errs.New("duplicate request with different parameters")
	ErrIdempotencyInProgress = errs.New("request is already being processed")
	ErrIdempotencyFailed     = errs.New("idempotency check failed")
	ErrStoreUnavailable      = errs.New("booking store unavailable")
)

type CreateBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, actor user.Role, idempotencyKey uuid.UUID) (*CreateBookingResult, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, req reqdto.UpdateBookingRequest, actor user.Role) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, id uuid.UUID) error
}

type bookingUseCaseImpl struct {
	uow            shared.UnitOfWork
	settings       shared.SettingsReads
	idempotency    shared.IdempotencyRepository
	notifications  shared.NotificationRepository
	bookingQueries queries.BookingQueries
	clock          clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	settings shared.SettingsReads,
	idempotency shared.IdempotencyRepository,
	notifications shared.NotificationRepository,
	bookingQueries queries.BookingQueries,
	clk clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:            uow,
		settings:       settings,
		idempotency:    idempotency,
		notifications:  notifications,
		bookingQueries: bookingQueries,
		clock:          clk,
	}
}

// CreateBooking is the single authority allowed to persist a new confirmed
// booking. Validation happens before any lock is taken; the overlap re-check
// runs inside the transaction under a per-(studio, date) lock so that at
// most one of two racing requests for overlapping intervals commits.
func (c *bookingUseCaseImpl) CreateBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	actor user.Role,
	idempotencyKey uuid.UUID,
) (*CreateBookingResult, error) {
	settings, err := c.settings.Get(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}

	date, slot, err := c.validateInterval(req.Date, req.StartTime, req.EndTime, settings, actor)
	if err != nil {
		return nil, err
	}

	if req.SkipValidation && actor != user.RoleAdmin {
		return nil, ErrForbiddenOverride
	}

	if _, err = c.uow.CommandReads().StudioByID(ctx, req.StudioID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrStudioNotFound
		}
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}

	customer, err := booking.NewCustomer(req.CustomerName, req.CustomerEmail, req.CustomerPhone)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInterval)
	}

	note := booking.NewNote("")
	if req.Note != nil {
		note = booking.NewNote(*req.Note)
	}

	entity, err := booking.NewBooking(req.StudioID, date, slot, customer, note, settings)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInterval)
	}
	if req.SkipValidation {
		// Admin override: the row must land even over an existing confirmed
		// booking, so it is also exempted from the store's overlap backstop.
		entity.MarkValidationBypassed()
	}

	replayed, err := c.handleIdempotency(ctx, idempotencyKey, req)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &CreateBookingResult{Booking: replayed, IsReplayed: true}, nil
	}

	candidate := schedule.Interval{StartMin: slot.StartMinutes(), EndMin: slot.EndMinutes()}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if lockErr := tx.LockStudioDate(ctx, req.StudioID, date); lockErr != nil {
			return errs.Mark(lockErr, ErrStoreUnavailable)
		}

		if !req.SkipValidation {
			if conflictErr := c.checkConflicts(ctx, tx, req.StudioID, date, candidate, settings, uuid.Nil); conflictErr != nil {
				return conflictErr
			}
		}

		if _, createErr := tx.Bookings().Create(ctx, tx.DB(), entity); createErr != nil {
			if infra.IsKind(createErr, infra.KindConflict) {
				return ErrSlotConflict
			}
			return errs.Mark(createErr, ErrStoreUnavailable)
		}

		if idemErr := tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), idempotencyKey, entity.ID()); idemErr != nil {
			return errs.Mark(idemErr, ErrStoreUnavailable)
		}

		return nil
	})
	if err != nil {
		return nil, passthroughOr(err, ErrStoreUnavailable)
	}

	// Collaborators run strictly after commit; their failure never unwinds
	// the booking.
	c.enqueueNotification(ctx, entity.ID(), "booking_created")

	view, err := c.bookingQueries.GetByID(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}

	return &CreateBookingResult{Booking: view, IsReplayed: false}, nil
}

// UpdateBooking reschedules an existing booking with identical conflict
// semantics, excluding the booking's own row from the overlap scan.
func (c *bookingUseCaseImpl) UpdateBooking(
	ctx context.Context,
	id uuid.UUID,
	req reqdto.UpdateBookingRequest,
	actor user.Role,
) (*queries.BookingView, error) {
	settings, err := c.settings.Get(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}

	date, slot, err := c.validateInterval(req.Date, req.StartTime, req.EndTime, settings, actor)
	if err != nil {
		return nil, err
	}

	if req.SkipValidation && actor != user.RoleAdmin {
		return nil, ErrForbiddenOverride
	}

	if _, err = c.uow.CommandReads().StudioByID(ctx, req.StudioID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrStudioNotFound
		}
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}

	candidate := schedule.Interval{StartMin: slot.StartMinutes(), EndMin: slot.EndMinutes()}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, readErr := tx.Reads().BookingByID(ctx, id)
		if readErr != nil {
			if infra.IsKind(readErr, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(readErr, ErrStoreUnavailable)
		}
		if current.Status != booking.StatusConfirmed {
			return ErrNotCancellable
		}

		if lockErr := tx.LockStudioDate(ctx, req.StudioID, date); lockErr != nil {
			return errs.Mark(lockErr, ErrStoreUnavailable)
		}

		if !req.SkipValidation {
			if conflictErr := c.checkConflicts(ctx, tx, req.StudioID, date, candidate, settings, id); conflictErr != nil {
				return conflictErr
			}
		}

		if updErr := tx.Bookings().UpdateSlot(ctx, tx.DB(), id, req.StudioID, date, slot, req.SkipValidation); updErr != nil {
			if infra.IsKind(updErr, infra.KindConflict) {
				return ErrSlotConflict
			}
			return errs.Mark(updErr, ErrStoreUnavailable)
		}

		return nil
	})
	if err != nil {
		return nil, passthroughOr(err, ErrStoreUnavailable)
	}

	c.enqueueNotification(ctx, id, "booking_rescheduled")

	view, err := c.bookingQueries.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}

	return view, nil
}

func (c *bookingUseCaseImpl) CancelBooking(ctx context.Context, id uuid.UUID) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, readErr := tx.Reads().BookingByID(ctx, id)
		if readErr != nil {
			if infra.IsKind(readErr, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(readErr, ErrStoreUnavailable)
		}
		if current.Status != booking.StatusConfirmed {
			return ErrNotCancellable
		}

		if updErr := tx.Bookings().UpdateStatus(ctx, tx.DB(), id, booking.StatusCancelled); updErr != nil {
			return errs.Mark(updErr, ErrStoreUnavailable)
		}
		return nil
	})
	if err != nil {
		return passthroughOr(err, ErrStoreUnavailable)
	}

	c.enqueueNotification(ctx, id, "booking_cancelled")
	return nil
}

// validateInterval runs the cheap pre-lock checks: parseability, ordering,
// duration bounds, advance window, and the past-slot rule for unprivileged
// callers.
func (c *bookingUseCaseImpl) validateInterval(
	dateStr, startStr, endStr string,
	settings booking.Settings,
	actor user.Role,
) (booking.Date, booking.TimeSlot, error) {
	date, err := booking.ParseDate(dateStr)
	if err != nil {
		return booking.Date{}, booking.TimeSlot{}, ErrInvalidInterval
	}

	slot, err := booking.ParseTimeSlot(startStr, endStr)
	if err != nil {
		return booking.Date{}, booking.TimeSlot{}, ErrInvalidInterval
	}

	if err := settings.ValidateDuration(slot); err != nil {
		return booking.Date{}, booking.TimeSlot{}, ErrInvalidInterval
	}

	now := c.clock.Now().In(settings.Location())
	today := booking.DateOf(now)

	if settings.AdvanceDays > 0 && today.DaysUntil(date) > settings.AdvanceDays {
		return booking.Date{}, booking.TimeSlot{}, ErrOutOfWindow
	}

	if !actor.IsPrivileged() {
		nowMin := now.Hour()*60 + now.Minute()
		if date.Before(today) || (date.Equal(today) && slot.EndMinutes() <= nowMin) {
			return booking.Date{}, booking.TimeSlot{}, ErrInvalidInterval
		}
	}

	return date, slot, nil
}

// checkConflicts re-runs the availability overlap test against a fresh
// in-transaction read, so the decision is made against committed state under
// the lock.
func (c *bookingUseCaseImpl) checkConflicts(
	ctx context.Context,
	tx shared.Tx,
	studioID uuid.UUID,
	date booking.Date,
	candidate schedule.Interval,
	settings booking.Settings,
	excludeID uuid.UUID,
) error {
	active, err := tx.Reads().ActiveBookings(ctx, studioID, date)
	if err != nil {
		return errs.Mark(err, ErrStoreUnavailable)
	}

	busy := make([]schedule.Busy, 0, len(active))
	for _, rm := range active {
		if excludeID != uuid.Nil && rm.ID == excludeID {
			continue
		}
		busy = append(busy, schedule.Busy{
			ID:       rm.ID,
			Interval: schedule.Interval{StartMin: rm.StartMin, EndMin: rm.EndMin},
			Status:   rm.Status,
		})
	}

	if schedule.HasConflict(candidate, settings.BufferMinutes, busy, nil) {
		return ErrSlotConflict
	}

	blocked, err := tx.Reads().BlockedWindows(ctx, studioID, date)
	if err != nil {
		return errs.Mark(err, ErrStoreUnavailable)
	}
	for _, w := range blocked {
		if candidate.Overlaps(schedule.Interval{StartMin: w.StartMin, EndMin: w.EndMin}) {
			return ErrSlotConflict
		}
	}

	return nil
}

const (
	createBookingEndpoint = "POST /api/bookings"
	idempotencyTTL        = 24 * time.Hour
)

// handleIdempotency claims the key before the booking transaction starts.
// A non-nil view means the key was already completed and the stored result
// should be replayed verbatim.
func (c *bookingUseCaseImpl) handleIdempotency(
	ctx context.Context,
	key uuid.UUID,
	req reqdto.CreateBookingRequest,
) (*queries.BookingView, error) {
	requestHash := calculateRequestHash(req)
	expiresAt := c.clock.Now().Add(idempotencyTTL)

	var inserted bool
	err := c.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		ok, insErr := c.idempotency.TryInsert(ctx, dbtx, key, createBookingEndpoint, requestHash, expiresAt)
		if insErr != nil {
			return errs.Mark(insErr, ErrIdempotencyFailed)
		}
		inserted = ok
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyFailed)
	}
	if inserted {
		return nil, nil
	}

	record, err := c.uow.CommandReads().IdempotencyByKey(ctx, key)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyFailed)
	}
	if record.RequestHash != requestHash {
		return nil, ErrDuplicateRequest
	}
	if record.Status != idempotencyStatusCompleted || record.ResultBookingID == nil {
		return nil, ErrIdempotencyInProgress
	}

	view, err := c.bookingQueries.GetByID(ctx, *record.ResultBookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}
	return view, nil
}

const idempotencyStatusCompleted = "completed"

func (c *bookingUseCaseImpl) enqueueNotification(ctx context.Context, bookingID uuid.UUID, topic string) {
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"type":       topic,
	})
	if err != nil {
		slog.Warn("failed to encode notification payload", "booking_id", bookingID, "error", err.Error())
		return
	}

	err = c.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		return c.notifications.CreateJob(ctx, dbtx, "email", topic, payload, c.clock.Now())
	})
	if err != nil {
		slog.Warn("failed to enqueue notification job", "booking_id", bookingID, "topic", topic, "error", err.Error())
	}
}

// passthroughOr keeps known sentinels intact and folds everything else into
// fallback.
func passthroughOr(err error, fallback error) error {
	for _, sentinel := range []error{
		ErrSlotConflict, ErrBookingNotFound, ErrStudioNotFound,
		ErrNotCancellable, ErrInvalidInterval, ErrOutOfWindow,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return errs.Mark(err, fallback)
}

func calculateRequestHash(req reqdto.CreateBookingRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
