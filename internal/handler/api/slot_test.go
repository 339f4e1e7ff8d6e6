//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"telemed-booking/internal/domain/user"
	"telemed-booking/internal/handler/api"
	resdto "telemed-booking/internal/handler/dto/response"
	"telemed-booking/internal/usecase/commands"
	"telemed-booking/internal/usecase/queries"
	"telemed-booking/tests/common/builder"
	"telemed-booking/tests/common/httptest"
	"telemed-booking/tests/common/testutil"
	commandsmock "telemed-booking/tests/mock/commands"
	queriesmock "telemed-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SlotHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSlotCommands
	mockQueries  *queriesmock.MockSlotQueries
	handler      *api.SlotHandler
	callerID     uuid.UUID
}

func (s *SlotHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSlotCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSlotQueries(s.mockCtrl)
	s.handler = api.NewSlotHandler(s.mockCommands, s.mockQueries)
	s.callerID = uuid.New()

	s.router.POST("/slots", stubAuth(s.callerID), s.handler.Create)
	s.router.GET("/slots", s.handler.List)
}

func (s *SlotHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSlotHandlerSuite(t *testing.T) {
	suite.Run(t, new(SlotHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *SlotHandlerTestSuite) TestCreate() {
	path := "/slots"
	b := builder.NewSlotBuilder()
	view := b.BuildView()
	doctorHeader := map[string]string{testRoleHeader: string(user.RoleDoctor)}
	adminHeader := map[string]string{testRoleHeader: string(user.RoleAdmin)}

	s.Run("success: doctor without doctor_id publishes for themselves", func() {
		reqBody := b.BuildCreateRequestDTO()
		reqBody.DoctorID = nil

		s.mockCommands.EXPECT().CreateSlot(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, cmd commands.CreateSlotCommand) (*queries.SlotView, error) {
				s.Equal(s.callerID, cmd.DoctorID)
				s.Equal(user.RoleDoctor, cmd.Actor.Role)
				s.True(b.StartTime.Equal(cmd.StartTime))
				return view, nil
			}).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, path, reqBody, "token", doctorHeader)

		var resp resdto.SlotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(view.ID, resp.ID)
		s.Equal("open", resp.Status)
	})

	s.Run("success: admin names the doctor", func() {
		reqBody := b.BuildCreateRequestDTO()

		s.mockCommands.EXPECT().CreateSlot(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, cmd commands.CreateSlotCommand) (*queries.SlotView, error) {
				s.Equal(b.DoctorID, cmd.DoctorID)
				return view, nil
			}).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, path, reqBody, "token", adminHeader)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: admin must name the doctor", func() {
		reqBody := b.BuildCreateRequestDTO()
		reqBody.DoctorID = nil

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, path, reqBody, "token", adminHeader)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "doctor_id is required")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		reqBody := b.BuildCreateRequestDTO()
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing start_time", mutate: testutil.Field("start_time", nil)},
			{name: "missing end_time", mutate: testutil.Field("end_time", nil)},
			{name: "end before start", mutate: testutil.Field("end_time", b.StartTime.Add(-time.Minute).Format(time.RFC3339))},
			{name: "end equals start", mutate: testutil.Field("end_time", b.StartTime.Format(time.RFC3339))},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, path, body, "token", doctorHeader)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "window in the past", commandsError: commands.ErrInvalidSlot, expectedStatus: http.StatusBadRequest},
			{name: "someone else's schedule", commandsError: commands.ErrForbidden, expectedStatus: http.StatusForbidden},
			{name: "overlap", commandsError: commands.ErrSlotOverlap, expectedStatus: http.StatusConflict},
			{name: "unexpected error", commandsError: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateSlot(gomock.Any(), gomock.Any()).Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, path, b.BuildCreateRequestDTO(), "token", doctorHeader)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *SlotHandlerTestSuite) TestList() {
	doctorID := uuid.New()
	from := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	listURL := func(params map[string]string) string {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		return "/slots?" + q.Encode()
	}
	valid := map[string]string{
		"doctor_id": doctorID.String(),
		"from":      from.Format(time.RFC3339),
		"to":        to.Format(time.RFC3339),
	}

	s.Run("success: returns the open slots", func() {
		views := []*queries.SlotView{
			builder.NewSlotBuilder().With(func(b *builder.SlotBuilder) { b.DoctorID = doctorID }).BuildView(),
			builder.NewSlotBuilder().With(func(b *builder.SlotBuilder) { b.DoctorID = doctorID }).BuildView(),
		}
		s.mockQueries.EXPECT().ListOpen(gomock.Any(), doctorID, from, to).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, listURL(valid), nil, "")

		var resp []resdto.SlotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp, 2)
		s.Equal(views[0].ID, resp[0].ID)
	})

	s.Run("error: 400 for bad query parameters", func() {
		testCases := []struct {
			name   string
			params map[string]string
		}{
			{name: "missing doctor_id", params: map[string]string{"from": valid["from"], "to": valid["to"]}},
			{name: "malformed doctor_id", params: map[string]string{"doctor_id": "nope", "from": valid["from"], "to": valid["to"]}},
			{name: "malformed from", params: map[string]string{"doctor_id": valid["doctor_id"], "from": "yesterday", "to": valid["to"]}},
			{name: "missing to", params: map[string]string{"doctor_id": valid["doctor_id"], "from": valid["from"]}},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, listURL(tc.params), nil, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
			})
		}
	})

	s.Run("error: inverted range is rejected by the query layer", func() {
		s.mockQueries.EXPECT().ListOpen(gomock.Any(), doctorID, from, to).Return(nil, queries.ErrInvalidRange).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, listURL(valid), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid time range")
	})
}
