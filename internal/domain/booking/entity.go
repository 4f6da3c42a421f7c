package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDurationOutOfBounds = errors.New("booking duration out of bounds")
	ErrNotConfirmed        = errors.New("booking is not confirmed")
	ErrInvalidStatus       = errors.New("invalid booking status")
)

type Booking struct {
	id                 uuid.UUID
	studioID           uuid.UUID
	date               Date
	slot               TimeSlot
	status             Status
	customer           Customer
	note               Note
	validationBypassed bool
	createdAt          time.Time
	updatedAt          time.Time
}

// NewBooking builds a confirmed booking. Conflict checking is not a concern
// of the entity; the creator's transaction owns the occupancy invariant.
func NewBooking(
	studioID uuid.UUID,
	date Date,
	slot TimeSlot,
	customer Customer,
	note Note,
	settings Settings,
) (*Booking, error) {
	if err := settings.ValidateDuration(slot); err != nil {
		return nil, ErrDurationOutOfBounds
	}

	return &Booking{
		id:       uuid.New(),
		studioID: studioID,
		date:     date,
		slot:     slot,
		status:   StatusConfirmed,
		customer: customer,
		note:     note,
	}, nil
}

func ReconstructBooking(
	id, studioID uuid.UUID,
	date Date,
	slot TimeSlot,
	status Status,
	customer Customer,
	note Note,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		studioID:  studioID,
		date:      date,
		slot:      slot,
		status:    status,
		customer:  customer,
		note:      note,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Reschedule moves a confirmed booking to a new studio/date/slot. The caller
// re-runs the conflict scan before persisting.
func (b *Booking) Reschedule(studioID uuid.UUID, date Date, slot TimeSlot, settings Settings) error {
	if b.status != StatusConfirmed {
		return ErrNotConfirmed
	}
	if err := settings.ValidateDuration(slot); err != nil {
		return ErrDurationOutOfBounds
	}
	b.studioID = studioID
	b.date = date
	b.slot = slot
	return nil
}

func (b *Booking) Cancel() error {
	if b.status != StatusConfirmed {
		return ErrNotConfirmed
	}
	b.status = StatusCancelled
	return nil
}

func (b *Booking) Complete() error {
	if b.status != StatusConfirmed {
		return ErrNotConfirmed
	}
	b.status = StatusCompleted
	return nil
}

func (b *Booking) MarkNoShow() error {
	if b.status != StatusConfirmed {
		return ErrNotConfirmed
	}
	b.status = StatusNoShow
	return nil
}

// MarkValidationBypassed records that this booking was force-inserted by an
// admin override. Bypassed rows are exempt from the store's overlap backstop
// but still occupy their slot in the conflict scan.
func (b *Booking) MarkValidationBypassed() {
	b.validationBypassed = true
}

func (b *Booking) Occupies() bool {
	return b.status.Occupies()
}

func (b *Booking) ID() uuid.UUID       { return b.id }
func (b *Booking) StudioID() uuid.UUID { return b.studioID }
func (b *Booking) Date() Date          { return b.date }
func (b *Booking) Slot() TimeSlot      { return b.slot }
func (b *Booking) Status() Status      { return b.status }
func (b *Booking) Customer() Customer  { return b.customer }
func (b *Booking) Note() Note          { return b.note }

func (b *Booking) ValidationBypassed() bool { return b.validationBypassed }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
