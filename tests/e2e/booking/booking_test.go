//go:build e2e

package booking_test

import (
	"context"
	"fmt"
	"net/http"
	nethttptest "net/http/httptest"
	"sync"
	"testing"
	"time"

	"studio-booking/internal/domain/user"
	"studio-booking/internal/handler/dto/request"
	"studio-booking/internal/handler/dto/response"
	"studio-booking/internal/handler/httperr"
	"studio-booking/tests/common/authtest"
	"studio-booking/tests/common/dbtest"
	"studio-booking/tests/common/httptest"
	"studio-booking/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL       = "/api/bookings"
	availabilityURL   = "/api/availability?studio_id=%s&date=%s"
	blockedWindowsURL = "/api/blocked-windows"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

// bookingDate is a date safely inside the default 30-day advance window.
func bookingDate() string {
	return time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
}

func (s *BookingSuite) createRequest(studioID uuid.UUID, start, end string) request.CreateBookingRequest {
	return request.CreateBookingRequest{
		StudioID:      studioID,
		Date:          bookingDate(),
		StartTime:     start,
		EndTime:       end,
		CustomerName:  "Mia Wong",
		CustomerEmail: "mia@example.com",
	}
}

func (s *BookingSuite) postBooking(req request.CreateBookingRequest, token string, key uuid.UUID) *nethttptest.ResponseRecorder {
	headers := map[string]string{"Idempotency-Key": key.String()}
	return httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, req, token, headers)
}

func (s *BookingSuite) countBookings(studioID uuid.UUID, status string) int {
	var n int
	err := s.DB.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM bookings WHERE studio_id = $1 AND status = $2", studioID, status).Scan(&n)
	require.NoError(s.T(), err)
	return n
}

func (s *BookingSuite) fetchGrid(studioID uuid.UUID, date string) response.AvailabilityResponse {
	url := fmt.Sprintf(availabilityURL, studioID, date)
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, url, nil, "", nil)
	require.Equal(s.T(), http.StatusOK, w.Code, "availability request failed: %s", w.Body.String())

	var grid response.AvailabilityResponse
	httptest.DecodeResponseBody(s.T(), w.Body, &grid)
	return grid
}

func slotAvailability(grid response.AvailabilityResponse) map[string]bool {
	out := make(map[string]bool, len(grid.Slots))
	for _, slot := range grid.Slots {
		out[slot.StartTime] = slot.Available
	}
	return out
}

// =============================================================================
// Availability grid over HTTP
// =============================================================================

func (s *BookingSuite) TestAvailabilityGrid() {
	s.Run("grid reflects bookings and blocked windows", func() {
		t := s.T()
		studioID := dbtest.CreateTestStudio(t, s.DB, "Studio A")
		date := bookingDate()

		dbtest.CreateTestBooking(t, s.DB, studioID, date, 600, 660, "confirmed")   // 10:00-11:00
		dbtest.CreateTestBooking(t, s.DB, studioID, date, 840, 900, "cancelled")   // 14:00 freed again
		dbtest.CreateTestBlockedWindow(t, s.DB, studioID, date, 720, 780)          // 12:00-13:00

		grid := s.fetchGrid(studioID, date)
		require.Equal(t, 60, grid.GranularityMinutes)
		require.Len(t, grid.Slots, 14, "08:00-22:00 at 60min should yield 14 slots")

		avail := slotAvailability(grid)
		require.False(t, avail["10:00"], "confirmed booking should block its slot")
		require.False(t, avail["12:00"], "blocked window should block its slot")
		require.True(t, avail["14:00"], "cancelled booking should not block")
		require.True(t, avail["09:00"])
	})

	s.Run("studio hours override global settings", func() {
		t := s.T()
		studioID := dbtest.CreateTestStudioWithHours(t, s.DB, "Late Room", 600, 840) // 10:00-14:00

		grid := s.fetchGrid(studioID, bookingDate())
		require.Len(t, grid.Slots, 4)
		require.Equal(t, "10:00", grid.Slots[0].StartTime)
		require.Equal(t, "14:00", grid.Slots[3].EndTime)
	})

	s.Run("unknown studio returns 404", func() {
		t := s.T()
		url := fmt.Sprintf(availabilityURL, uuid.New(), bookingDate())
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "", nil)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, httperr.CodeNotFound)
	})
}

// =============================================================================
// Booking creation
// =============================================================================

func (s *BookingSuite) TestCreateBooking() {
	s.Run("anonymous customer can create a booking", func() {
		t := s.T()
		studioID := dbtest.CreateTestStudio(t, s.DB, "Studio A")
		req := s.createRequest(studioID, "10:00", "11:00")

		w := s.postBooking(req, "", uuid.New())
		require.Equal(t, http.StatusCreated, w.Code, "unexpected response: %s", w.Body.String())

		var created response.BookingResponse
		httptest.DecodeResponseBody(t, w.Body, &created)
		require.Equal(t, "confirmed", created.Status)
		require.Equal(t, "10:00", created.StartTime)
		require.Equal(t, "Studio A", created.StudioName)

		avail := slotAvailability(s.fetchGrid(studioID, req.Date))
		require.False(t, avail["10:00"], "grid should show the new booking")

		require.Equal(t, 1, s.countBookings(studioID, "confirmed"))
	})

	s.Run("overlapping booking is rejected", func() {
		t := s.T()
		studioID := dbtest.CreateTestStudio(t, s.DB, "Studio A")

		w := s.postBooking(s.createRequest(studioID, "10:00", "12:00"), "", uuid.New())
		require.Equal(t, http.StatusCreated, w.Code)

		w2 := s.postBooking(s.createRequest(studioID, "11:00", "13:00"), "", uuid.New())
		httptest.AssertErrorResponse(t, w2, http.StatusConflict, httperr.CodeSlotConflict)

		require.Equal(t, 1, s.countBookings(studioID, "confirmed"))
	})

	s.Run("back to back bookings both succeed", func() {
		t := s.T()
		studioID := dbtest.CreateTestStudio(t, s.DB, "Studio A")

		w := s.postBooking(s.createRequest(studioID, "10:00", "11:00"), "", uuid.New())
		require.Equal(t, http.StatusCreated, w.Code)

		w2 := s.postBooking(s.createRequest(studioID, "11:00", "12:00"), "", uuid.New())
		require.Equal(t, http.StatusCreated, w2.Code, "touching intervals must not conflict: %s", w2.Body.String())
	})

	s.Run("blocked window rejects the slot", func() {
		t := s.T()
		studioID := dbtest.CreateTestStudio(t, s.DB, "Studio A")
		dbtest.CreateTestBlockedWindow(t, s.DB, studioID, bookingDate(), 600, 720)

		w := s.postBooking(s.createRequest(studioID, "11:00", "12:00"), "", uuid.New())
		httptest.AssertErrorResponse(t, w, http.StatusConflict, httperr.CodeSlotConflict)
	})

	s.Run("missing idempotency key is rejected", func() {
		t := s.T()
		studioID := dbtest.CreateTestStudio(t, s.DB, "Studio A")
		req := s.createRequest(studioID, "10:00", "11:00")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, req, "", nil)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, httperr.CodeInvalidRequest)
	})

	s.Run("past date is rejected for customers", func() {
		t := s.T()
		studioID := dbtest.CreateTestStudio(t, s.DB, "Studio A")
		req := s.createRequest(studioID, "10:00", "11:00")
		req.Date = time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

		w := s.postBooking(req, "", uuid.New())
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, httperr.CodeInvalidInterval)
	})

	s.Run("date beyond the advance window is rejected", func() {
		t := s.T()
		studioID := dbtest.CreateTestStudio(t, s.DB, "Studio A")
		req := s.createRequest(studioID, "10:00", "11:00")
		req.Date = time.Now().UTC().AddDate(0, 0, 45).Format("2006-01-02")

		w := s.postBooking(req, "", uuid.New())
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, httperr.CodeOutOfWindow)
	})

	s.Run("unknown studio returns 404", func() {
		t := s.T()
		w := s.postBooking(s.createRequest(uuid.New(), "10:00", "11:00"), "", uuid.New())
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, httperr.CodeNotFound)
	})
}

// =============================================================================
// Validation override
// =============================================================================

func (s *BookingSuite) TestSkipValidation() {
	s.Run("non-admin override is forbidden", func() {
		t := s.T()
		studioID := dbtest.CreateTestStudio(t, s.DB, "Studio A")
		staffToken := authtest.MintToken(t, s.Config, user.RoleStaff)

		req := s.createRequest(studioID, "10:00", "11:00")
		req.SkipValidation = true

		w := s.postBooking(req, staffToken, uuid.New())
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, httperr.CodeForbidden)
	})

	s.Run("admin override bypasses conflicts", func() {
		t := s.T()
		studioID := dbtest.CreateTestStudio(t, s.DB, "Studio A")
		adminToken := authtest.MintToken(t, s.Config, user.RoleAdmin)
		dbtest.CreateTestBlockedWindow(t, s.DB, studioID, bookingDate(), 600, 720)

		req := s.createRequest(studioID, "10:00", "11:00")
		req.SkipValidation = true

		w := s.postBooking(req, adminToken, uuid.New())
		require.Equal(t, http.StatusCreated, w.Code, "admin override should bypass the blocked window: %s", w.Body.String())
	})

	s.Run("admin override force-inserts over a confirmed booking", func() {
		t := s.T()
		studioID := dbtest.CreateTestStudio(t, s.DB, "Studio A")
		adminToken := authtest.MintToken(t, s.Config, user.RoleAdmin)
		dbtest.CreateTestBooking(t, s.DB, studioID, bookingDate(), 630, 690, "confirmed") // 10:30-11:30

		req := s.createRequest(studioID, "10:00", "11:00")
		req.SkipValidation = true

		w := s.postBooking(req, adminToken, uuid.New())
		require.Equal(t, http.StatusCreated, w.Code, "admin override should land over the existing booking: %s", w.Body.String())
		require.Equal(t, 2, s.countBookings(studioID, "confirmed"), "both overlapping bookings should be persisted")
	})

	s.Run("admin override reschedules onto an occupied slot", func() {
		t := s.T()
		studioID := dbtest.CreateTestStudio(t, s.DB, "Studio A")
		adminToken := authtest.MintToken(t, s.Config, user.RoleAdmin)
		date := bookingDate()
		bookingID := dbtest.CreateTestBooking(t, s.DB, studioID, date, 600, 660, "confirmed")
		dbtest.CreateTestBooking(t, s.DB, studioID, date, 720, 780, "confirmed")

		updReq := request.UpdateBookingRequest{
			StudioID:       studioID,
			Date:           date,
			StartTime:      "12:00",
			EndTime:        "13:00",
			SkipValidation: true,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, bookingsURL+"/"+bookingID.String(), updReq, adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code, "admin override should land on the occupied slot: %s", w.Body.String())
		require.Equal(t, 2, s.countBookings(studioID, "confirmed"))
	})
}

// =============================================================================
// Idempotency
// =============================================================================

func (s *BookingSuite) TestIdempotency() {
	s.Run("same key and payload replays the original booking", func() {
		t := s.T()
		studioID := dbtest.CreateTestStudio(t, s.DB, "Studio A")
		req := s.createRequest(studioID, "10:00", "11:00")
		key := uuid.New()

		w := s.postBooking(req, "", key)
		require.Equal(t, http.StatusCreated, w.Code)
		var first response.BookingResponse
		httptest.DecodeResponseBody(t, w.Body, &first)

		w2 := s.postBooking(req, "", key)
		require.Equal(t, http.StatusOK, w2.Code, "replay should return 200: %s", w2.Body.String())
		var second response.BookingResponse
		httptest.DecodeResponseBody(t, w2.Body, &second)

		require.Equal(t, first.ID, second.ID, "replay must return the original booking")
		require.Equal(t, 1, s.countBookings(studioID, "confirmed"), "replay must not insert a second row")
	})

	s.Run("same key with different payload is rejected", func() {
		t := s.T()
		studioID := dbtest.CreateTestStudio(t, s.DB, "Studio A")
		key := uuid.New()

		w := s.postBooking(s.createRequest(studioID, "10:00", "11:00"), "", key)
		require.Equal(t, http.StatusCreated, w.Code)

		w2 := s.postBooking(s.createRequest(studioID, "14:00", "15:00"), "", key)
		httptest.AssertErrorResponse(t, w2, http.StatusConflict, httperr.CodeDuplicateRequest)
	})
}

// =============================================================================
// Concurrency
// =============================================================================

func (s *BookingSuite) TestConcurrentCreate() {
	s.Run("exactly one of two racing requests wins", func() {
		t := s.T()
		studioID := dbtest.CreateTestStudio(t, s.DB, "Studio A")

		var wg sync.WaitGroup
		codes := make([]int, 2)
		for i := range codes {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				w := s.postBooking(s.createRequest(studioID, "10:00", "11:00"), "", uuid.New())
				codes[idx] = w.Code
			}(i)
		}
		wg.Wait()

		created, conflicted := 0, 0
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicted++
			}
		}
		require.Equal(t, 1, created, "exactly one request should create the booking, got codes %v", codes)
		require.Equal(t, 1, conflicted, "the losing request should see a conflict, got codes %v", codes)
		require.Equal(t, 1, s.countBookings(studioID, "confirmed"))
	})
}

// =============================================================================
// Update and cancel
// =============================================================================

func (s *BookingSuite) TestUpdateAndCancel() {
	s.Run("staff can reschedule a booking", func() {
		t := s.T()
		studioID := dbtest.CreateTestStudio(t, s.DB, "Studio A")
		staffToken := authtest.MintToken(t, s.Config, user.RoleStaff)
		date := bookingDate()
		bookingID := dbtest.CreateTestBooking(t, s.DB, studioID, date, 600, 660, "confirmed")

		updReq := request.UpdateBookingRequest{
			StudioID:  studioID,
			Date:      date,
			StartTime: "15:00",
			EndTime:   "16:00",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, bookingsURL+"/"+bookingID.String(), updReq, staffToken, nil)
		require.Equal(t, http.StatusOK, w.Code, "unexpected response: %s", w.Body.String())

		var updated response.BookingResponse
		httptest.DecodeResponseBody(t, w.Body, &updated)
		require.Equal(t, "15:00", updated.StartTime)

		avail := slotAvailability(s.fetchGrid(studioID, date))
		require.True(t, avail["10:00"], "old slot should be free again")
		require.False(t, avail["15:00"], "new slot should be taken")
	})

	s.Run("reschedule onto another booking conflicts", func() {
		t := s.T()
		studioID := dbtest.CreateTestStudio(t, s.DB, "Studio A")
		staffToken := authtest.MintToken(t, s.Config, user.RoleStaff)
		date := bookingDate()
		bookingID := dbtest.CreateTestBooking(t, s.DB, studioID, date, 600, 660, "confirmed")
		dbtest.CreateTestBooking(t, s.DB, studioID, date, 720, 780, "confirmed")

		updReq := request.UpdateBookingRequest{
			StudioID:  studioID,
			Date:      date,
			StartTime: "12:00",
			EndTime:   "13:00",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, bookingsURL+"/"+bookingID.String(), updReq, staffToken, nil)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, httperr.CodeSlotConflict)
	})

	s.Run("anonymous caller cannot reschedule", func() {
		t := s.T()
		studioID := dbtest.CreateTestStudio(t, s.DB, "Studio A")
		date := bookingDate()
		bookingID := dbtest.CreateTestBooking(t, s.DB, studioID, date, 600, 660, "confirmed")

		updReq := request.UpdateBookingRequest{
			StudioID:  studioID,
			Date:      date,
			StartTime: "15:00",
			EndTime:   "16:00",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, bookingsURL+"/"+bookingID.String(), updReq, "", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("cancel frees the slot and is not repeatable", func() {
		t := s.T()
		studioID := dbtest.CreateTestStudio(t, s.DB, "Studio A")
		staffToken := authtest.MintToken(t, s.Config, user.RoleStaff)
		date := bookingDate()
		bookingID := dbtest.CreateTestBooking(t, s.DB, studioID, date, 600, 660, "confirmed")
		cancelURL := bookingsURL + "/" + bookingID.String() + "/cancel"

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, cancelURL, nil, staffToken, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		avail := slotAvailability(s.fetchGrid(studioID, date))
		require.True(t, avail["10:00"], "cancelled booking should free its slot")

		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, cancelURL, nil, staffToken, nil)
		httptest.AssertErrorResponse(t, w2, http.StatusConflict, httperr.CodeNotModifiable)
	})
}

// =============================================================================
// Blocked window administration
// =============================================================================

func (s *BookingSuite) TestBlockedWindows() {
	s.Run("admin manages blocked windows", func() {
		t := s.T()
		studioID := dbtest.CreateTestStudio(t, s.DB, "Studio A")
		adminToken := authtest.MintToken(t, s.Config, user.RoleAdmin)
		staffToken := authtest.MintToken(t, s.Config, user.RoleStaff)
		date := bookingDate()

		reason := "maintenance"
		createReq := request.CreateBlockedWindowRequest{
			StudioID:  studioID,
			Date:      date,
			StartTime: "12:00",
			EndTime:   "14:00",
			Reason:    &reason,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, blockedWindowsURL, createReq, adminToken, nil)
		require.Equal(t, http.StatusCreated, w.Code, "unexpected response: %s", w.Body.String())

		var created response.CreatedResponse
		httptest.DecodeResponseBody(t, w.Body, &created)
		require.NotEqual(t, uuid.Nil, created.ID)

		listURL := blockedWindowsURL + "?studio_id=" + studioID.String() + "&date=" + date
		lw := httptest.PerformRequest(t, s.Router, http.MethodGet, listURL, nil, staffToken, nil)
		require.Equal(t, http.StatusOK, lw.Code)

		var windows []response.BlockedWindowResponse
		httptest.DecodeResponseBody(t, lw.Body, &windows)
		require.Len(t, windows, 1)
		require.Equal(t, "12:00", windows[0].StartTime)

		dw := httptest.PerformRequest(t, s.Router, http.MethodDelete, blockedWindowsURL+"/"+created.ID.String(), nil, adminToken, nil)
		require.Equal(t, http.StatusNoContent, dw.Code)

		avail := slotAvailability(s.fetchGrid(studioID, date))
		require.True(t, avail["12:00"], "deleted window should free the slot")
	})

	s.Run("staff cannot create blocked windows", func() {
		t := s.T()
		studioID := dbtest.CreateTestStudio(t, s.DB, "Studio A")
		staffToken := authtest.MintToken(t, s.Config, user.RoleStaff)

		createReq := request.CreateBlockedWindowRequest{
			StudioID:  studioID,
			Date:      bookingDate(),
			StartTime: "12:00",
			EndTime:   "14:00",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, blockedWindowsURL, createReq, staffToken, nil)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, httperr.CodeForbidden)
	})
}
