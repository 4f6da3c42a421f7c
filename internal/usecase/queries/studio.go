package queries

import (
	"context"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type StudioQueries interface {
	List(ctx context.Context) ([]*StudioView, error)
}

type BlockedWindowQueries interface {
	ListForDay(ctx context.Context, studioID uuid.UUID, date string) ([]*BlockedWindowView, error)
}

type studioQueriesImpl struct {
	settings shared.SettingsReads
	studios  StudioReadStore
}

func NewStudioQueries(settings shared.SettingsReads, studios StudioReadStore) StudioQueries {
	return &studioQueriesImpl{settings: settings, studios: studios}
}

func (q *studioQueriesImpl) List(ctx context.Context) ([]*StudioView, error) {
	settings, err := q.settings.Get(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	rms, err := q.studios.List(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	views := make([]*StudioView, 0, len(rms))
	for _, rm := range rms {
		open, closeM := settings.OpenMinutes, settings.CloseMinutes
		if rm.OpenMinutes != nil {
			open = *rm.OpenMinutes
		}
		if rm.CloseMinutes != nil {
			closeM = *rm.CloseMinutes
		}

		openSlot, slotErr := booking.NewTimeSlot(open, closeM)
		if slotErr != nil {
			return nil, errs.Mark(slotErr, ErrStoreFailure)
		}

		views = append(views, &StudioView{
			ID:           rm.ID,
			Name:         rm.Name,
			CapacityTier: rm.CapacityTier,
			OpenTime:     openSlot.FormatStart(),
			CloseTime:    openSlot.FormatEnd(),
		})
	}

	return views, nil
}

type blockedWindowQueriesImpl struct {
	blocked BlockedWindowReadStore
}

func NewBlockedWindowQueries(blocked BlockedWindowReadStore) BlockedWindowQueries {
	return &blockedWindowQueriesImpl{blocked: blocked}
}

func (q *blockedWindowQueriesImpl) ListForDay(ctx context.Context, studioID uuid.UUID, dateStr string) ([]*BlockedWindowView, error) {
	date, err := booking.ParseDate(dateStr)
	if err != nil {
		return nil, ErrInvalidDate
	}

	rms, err := q.blocked.ListForDay(ctx, studioID, date)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	views := make([]*BlockedWindowView, 0, len(rms))
	for _, rm := range rms {
		slot, slotErr := booking.NewTimeSlot(rm.StartMin, rm.EndMin)
		if slotErr != nil {
			return nil, errs.Mark(slotErr, ErrStoreFailure)
		}
		views = append(views, &BlockedWindowView{
			ID:        rm.ID,
			StudioID:  rm.StudioID,
			Date:      rm.Date.String(),
			StartTime: slot.FormatStart(),
			EndTime:   slot.FormatEnd(),
			Reason:    rm.Reason,
		})
	}

	return views, nil
}
