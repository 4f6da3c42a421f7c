package commands

import (
	"context"
	"errors"

	"studio-booking/internal/domain/booking"
	reqdto "studio-booking/internal/handler/dto/request"
	"studio-booking/internal/infra"
	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrBlockedWindowNotFound = errs.New("blocked window not found")

type BlockedWindowCommands interface {
	Create(ctx context.Context, req reqdto.CreateBlockedWindowRequest) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type blockedWindowUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewBlockedWindowCommands(uow shared.UnitOfWork) BlockedWindowCommands {
	return &blockedWindowUseCaseImpl{uow: uow}
}

// Create records a maintenance or hold window. Existing bookings inside the
// window stay untouched; the window only shapes future availability.
func (c *blockedWindowUseCaseImpl) Create(ctx context.Context, req reqdto.CreateBlockedWindowRequest) (uuid.UUID, error) {
	date, err := booking.ParseDate(req.Date)
	if err != nil {
		return uuid.Nil, ErrInvalidInterval
	}

	slot, err := booking.ParseTimeSlot(req.StartTime, req.EndTime)
	if err != nil {
		return uuid.Nil, ErrInvalidInterval
	}

	if _, err = c.uow.CommandReads().StudioByID(ctx, req.StudioID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, ErrStudioNotFound
		}
		return uuid.Nil, errs.Mark(err, ErrStoreUnavailable)
	}

	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created, createErr := tx.BlockedWindows().Create(ctx, tx.DB(), shared.BlockedWindowFields{
			StudioID: req.StudioID,
			Date:     date,
			StartMin: slot.StartMinutes(),
			EndMin:   slot.EndMinutes(),
			Reason:   req.Reason,
		})
		if createErr != nil {
			return errs.Mark(createErr, ErrStoreUnavailable)
		}
		id = created
		return nil
	})
	if err != nil {
		return uuid.Nil, passthroughOr(err, ErrStoreUnavailable)
	}

	return id, nil
}

func (c *blockedWindowUseCaseImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if delErr := tx.BlockedWindows().Delete(ctx, tx.DB(), id); delErr != nil {
			if infra.IsKind(delErr, infra.KindNotFound) {
				return ErrBlockedWindowNotFound
			}
			return errs.Mark(delErr, ErrStoreUnavailable)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBlockedWindowNotFound) {
			return err
		}
		return passthroughOr(err, ErrStoreUnavailable)
	}
	return nil
}
