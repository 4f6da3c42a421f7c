//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"studio-booking/internal/domain/user"
	"studio-booking/internal/handler/api"
	resdto "studio-booking/internal/handler/dto/response"
	"studio-booking/internal/handler/httperr"
	"studio-booking/internal/usecase/queries"
	commonhttp "studio-booking/tests/common/httptest"
	queriesmock "studio-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	handler := api.NewAvailabilityHandler(s.mockQueries)

	stubAuth := func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("auth.user_id", uuid.New())
			c.Set("auth.role", user.RoleStaff)
		}
		c.Next()
	}

	s.router.GET("/availability", stubAuth, handler.Get)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestGet() {
	studioID := uuid.New()
	url := "/availability?studio_id=" + studioID.String() + "&date=2026-09-10"

	s.Run("grid returned", func() {
		view := &queries.AvailabilityView{
			StudioID:           studioID,
			Date:               "2026-09-10",
			GranularityMinutes: 60,
			Slots: []queries.SlotView{
				{StartTime: "10:00", EndTime: "11:00", Available: true},
				{StartTime: "11:00", EndTime: "12:00", Available: false},
			},
		}
		s.mockQueries.EXPECT().
			Grid(gomock.Any(), studioID, "2026-09-10", false).
			Return(view, nil)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "", nil)

		var resp resdto.AvailabilityResponse
		commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp.Slots, 2)
		s.True(resp.Slots[0].Available)
		s.False(resp.Slots[1].Available)
	})

	s.Run("staff token requests past slots", func() {
		s.mockQueries.EXPECT().
			Grid(gomock.Any(), studioID, "2026-09-10", true).
			Return(&queries.AvailabilityView{StudioID: studioID, Date: "2026-09-10"}, nil)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "staff-token", nil)
		commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("missing params", func() {
		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/availability", nil, "", nil)
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusBadRequest, httperr.CodeInvalidRequest)
	})

	errorCases := []struct {
		name     string
		queryErr error
		status   int
		code     string
	}{
		{"invalid date", queries.ErrInvalidDate, http.StatusBadRequest, httperr.CodeInvalidInterval},
		{"out of window", queries.ErrOutOfWindow, http.StatusBadRequest, httperr.CodeOutOfWindow},
		{"unknown studio", queries.ErrStudioNotFound, http.StatusNotFound, httperr.CodeNotFound},
		{"store failure", queries.ErrStoreFailure, http.StatusServiceUnavailable, httperr.CodeStoreUnavailable},
	}
	for _, tc := range errorCases {
		s.Run(tc.name, func() {
			s.mockQueries.EXPECT().
				Grid(gomock.Any(), studioID, "2026-09-10", false).
				Return(nil, tc.queryErr)

			w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "", nil)
			commonhttp.AssertErrorResponse(s.T(), w, tc.status, tc.code)
		})
	}
}
