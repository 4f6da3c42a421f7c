//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"studio-booking/internal/domain/user"
	"studio-booking/internal/handler/api"
	resdto "studio-booking/internal/handler/dto/response"
	"studio-booking/internal/handler/httperr"
	"studio-booking/internal/usecase/commands"
	"studio-booking/internal/usecase/queries"
	"studio-booking/tests/common/builder"
	commonhttp "studio-booking/tests/common/httptest"
	commandsmock "studio-booking/tests/mock/commands"
	queriesmock "studio-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	// Stand-in for the auth middleware: any bearer token acts as staff.
	stubAuth := func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("auth.user_id", uuid.New())
			c.Set("auth.role", user.RoleStaff)
		}
		c.Next()
	}

	s.router.POST("/bookings", stubAuth, s.handler.Create)
	s.router.GET("/bookings", stubAuth, s.handler.List)
	s.router.GET("/bookings/:id", stubAuth, s.handler.GetByID)
	s.router.PUT("/bookings/:id", stubAuth, s.handler.Update)
	s.router.POST("/bookings/:id/cancel", stubAuth, s.handler.Cancel)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) idemHeader() map[string]string {
	return map[string]string{"Idempotency-Key": uuid.NewString()}
}

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"

	s.Run("created", func() {
		b := builder.NewBookingBuilder()
		req := b.BuildCreateRequestDTO()
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), req, user.RoleCustomer, gomock.Any()).
			Return(&commands.CreateBookingResult{Booking: b.BuildView()}, nil)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, url, req, "", s.idemHeader())

		var resp resdto.BookingResponse
		commonhttp.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		s.Equal(b.ID, resp.ID)
		s.Equal("10:00", resp.StartTime)
	})

	s.Run("replayed key returns 200", func() {
		b := builder.NewBookingBuilder()
		req := b.BuildCreateRequestDTO()
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), req, user.RoleCustomer, gomock.Any()).
			Return(&commands.CreateBookingResult{Booking: b.BuildView(), IsReplayed: true}, nil)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, url, req, "", s.idemHeader())
		commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("missing idempotency key", func() {
		req := builder.NewBookingBuilder().BuildCreateRequestDTO()
		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, url, req, "", nil)
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusBadRequest, httperr.CodeInvalidRequest)
	})

	s.Run("missing required fields", func() {
		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"date": "2026-09-10"}, "", s.idemHeader())
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusBadRequest, httperr.CodeInvalidRequest)
	})

	s.Run("authenticated caller passes its role through", func() {
		b := builder.NewBookingBuilder()
		req := b.BuildCreateRequestDTO()
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), req, user.RoleStaff, gomock.Any()).
			Return(&commands.CreateBookingResult{Booking: b.BuildView()}, nil)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, url, req, "some-token", s.idemHeader())
		commonhttp.AssertSuccessResponse(s.T(), w, http.StatusCreated, nil)
	})

	errorCases := []struct {
		name       string
		commandErr error
		status     int
		code       string
	}{
		{"slot conflict", commands.ErrSlotConflict, http.StatusConflict, httperr.CodeSlotConflict},
		{"invalid interval", commands.ErrInvalidInterval, http.StatusBadRequest, httperr.CodeInvalidInterval},
		{"out of window", commands.ErrOutOfWindow, http.StatusBadRequest, httperr.CodeOutOfWindow},
		{"studio not found", commands.ErrStudioNotFound, http.StatusNotFound, httperr.CodeNotFound},
		{"forbidden override", commands.ErrForbiddenOverride, http.StatusForbidden, httperr.CodeForbidden},
		{"duplicate request", commands.ErrDuplicateRequest, http.StatusConflict, httperr.CodeDuplicateRequest},
		{"request in progress", commands.ErrIdempotencyInProgress, http.StatusConflict, httperr.CodeRequestInProgress},
		{"store unavailable", commands.ErrStoreUnavailable, http.StatusServiceUnavailable, httperr.CodeStoreUnavailable},
	}
	for _, tc := range errorCases {
		s.Run(tc.name, func() {
			req := builder.NewBookingBuilder().BuildCreateRequestDTO()
			s.mockCommands.EXPECT().
				CreateBooking(gomock.Any(), req, user.RoleCustomer, gomock.Any()).
				Return(nil, tc.commandErr)

			w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, url, req, "", s.idemHeader())
			commonhttp.AssertErrorResponse(s.T(), w, tc.status, tc.code)
		})
	}
}

func (s *BookingHandlerTestSuite) TestUpdate() {
	b := builder.NewBookingBuilder()
	url := "/bookings/" + b.ID.String()

	s.Run("updated", func() {
		req := b.BuildUpdateRequestDTO()
		s.mockCommands.EXPECT().
			UpdateBooking(gomock.Any(), b.ID, req, user.RoleStaff).
			Return(b.BuildView(), nil)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPut, url, req, "staff-token", nil)

		var resp resdto.BookingResponse
		commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(b.ID, resp.ID)
	})

	s.Run("unknown booking", func() {
		req := b.BuildUpdateRequestDTO()
		s.mockCommands.EXPECT().
			UpdateBooking(gomock.Any(), b.ID, req, user.RoleStaff).
			Return(nil, commands.ErrBookingNotFound)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPut, url, req, "staff-token", nil)
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusNotFound, httperr.CodeNotFound)
	})

	s.Run("malformed id", func() {
		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPut, "/bookings/nope", b.BuildUpdateRequestDTO(), "staff-token", nil)
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusBadRequest, httperr.CodeInvalidRequest)
	})
}

func (s *BookingHandlerTestSuite) TestList() {
	s.Run("by studio and date", func() {
		b := builder.NewBookingBuilder()
		s.mockQueries.EXPECT().
			ListByStudioDate(gomock.Any(), b.StudioID, b.Date).
			Return([]*queries.BookingView{b.BuildView()}, nil)

		url := "/bookings?studio_id=" + b.StudioID.String() + "&date=" + b.Date
		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "staff-token", nil)

		var resp []resdto.BookingResponse
		commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp, 1)
		s.Equal(b.ID, resp[0].ID)
	})

	s.Run("by customer email", func() {
		b := builder.NewBookingBuilder()
		s.mockQueries.EXPECT().
			ListByCustomerEmail(gomock.Any(), b.CustomerEmail).
			Return([]*queries.BookingView{b.BuildView()}, nil)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?email="+b.CustomerEmail, nil, "staff-token", nil)

		var resp []resdto.BookingResponse
		commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp, 1)
	})

	s.Run("missing filters", func() {
		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "staff-token", nil)
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusBadRequest, httperr.CodeInvalidRequest)
	})
}

func (s *BookingHandlerTestSuite) TestCancel() {
	id := uuid.New()
	url := "/bookings/" + id.String() + "/cancel"

	s.Run("cancelled", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), id).Return(nil)
		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "staff-token", nil)
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("already cancelled", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), id).Return(commands.ErrNotCancellable)
		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "staff-token", nil)
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusConflict, httperr.CodeNotModifiable)
	})
}
