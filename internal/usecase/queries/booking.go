package queries

import (
	"context"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/infra"
	"studio-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrBookingNotFound = errs.New("booking not found")

type BookingViewStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByStudioDate(ctx context.Context, studioID uuid.UUID, date booking.Date) ([]*BookingView, error)
	FindByCustomerEmail(ctx context.Context, email string, limit int32) ([]*BookingView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByStudioDate(ctx context.Context, studioID uuid.UUID, date string) ([]*BookingView, error)
	ListByCustomerEmail(ctx context.Context, email string) ([]*BookingView, error)
}

const customerListLimit = 100

type bookingQueriesImpl struct {
	store BookingViewStore
}

func NewBookingQueries(store BookingViewStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrStoreFailure)
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByStudioDate(ctx context.Context, studioID uuid.UUID, dateStr string) ([]*BookingView, error) {
	date, err := booking.ParseDate(dateStr)
	if err != nil {
		return nil, ErrInvalidDate
	}

	views, err := q.store.FindByStudioDate(ctx, studioID, date)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}
	return views, nil
}

func (q *bookingQueriesImpl) ListByCustomerEmail(ctx context.Context, email string) ([]*BookingView, error) {
	views, err := q.store.FindByCustomerEmail(ctx, email, customerListLimit)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}
	return views, nil
}
