//go:build unit

package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"telemed-booking/internal/domain/user"
	"telemed-booking/internal/handler"
	"telemed-booking/internal/handler/api"
	"telemed-booking/internal/handler/middleware"
	"telemed-booking/internal/pkg/config"
	"telemed-booking/internal/pkg/jwt"
	"telemed-booking/internal/pkg/signature"
	"telemed-booking/internal/usecase"
	"telemed-booking/internal/usecase/commands"
	"telemed-booking/tests/common/authtest"
	"telemed-booking/tests/common/builder"
	"telemed-booking/tests/common/fakestore"
	"telemed-booking/tests/common/httptest"
	commandsmock "telemed-booking/tests/mock/commands"
	queriesmock "telemed-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type RouterTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	payments *commandsmock.MockPaymentCommands
	slots    *commandsmock.MockSlotCommands
	jwt      *authtest.JWTHelper
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	cfg := config.NewTestConfig()

	s.mockCtrl = gomock.NewController(s.T())
	s.payments = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.slots = commandsmock.NewMockSlotCommands(s.mockCtrl)
	s.jwt = authtest.NewJWTHelper(cfg.JWT)

	h := handler.Handlers{
		Booking: api.NewBookingHandler(commandsmock.NewMockBookingCommands(s.mockCtrl), queriesmock.NewMockBookingQueries(s.mockCtrl)),
		Payment: api.NewPaymentHandler(s.payments, signature.NewHMACVerifier(cfg.Payment.WebhookSecret)),
		Slot:    api.NewSlotHandler(s.slots, queriesmock.NewMockSlotQueries(s.mockCtrl)),
		Health:  api.NewHealthHandler(okPinger{}, okPinger{}),
	}
	auth := middleware.NewAuthMiddleware(usecase.NewIdentityResolver(jwt.NewService(cfg.JWT.Secret, time.Hour)))

	s.router = gin.New()
	handler.NewRouter(s.router, cfg, middleware.NewLogger(cfg.Log), h, auth, middleware.NewRateLimiter(cfg.RateLimit), fakestore.NewCache())
}

func (s *RouterTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *RouterTestSuite) TestUnsafeRoutesReplay() {
	s.Run("payment initiation with a repeated key is replayed", func() {
		s.SetupTest()
		caller := s.jwt.NewCaller(s.T(), user.RolePatient)
		p := builder.NewPaymentBuilder()
		s.payments.EXPECT().Initiate(gomock.Any(), gomock.Any()).
			Return(&commands.InitiatePaymentResult{Payment: p.BuildView(), Created: true}, nil).Times(1)
		headers := map[string]string{middleware.IdempotencyKeyHeader: "init-1"}

		first := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/payments/initiate", p.BuildInitiateRequestDTO(), caller.Token, headers)
		second := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/payments/initiate", p.BuildInitiateRequestDTO(), caller.Token, headers)

		s.Equal(http.StatusCreated, first.Code)
		s.Empty(first.Header().Get(middleware.IdempotencyHitHeader))
		s.Equal(http.StatusCreated, second.Code)
		s.Equal("true", second.Header().Get(middleware.IdempotencyHitHeader))
		s.Equal(first.Body.String(), second.Body.String())
	})

	s.Run("slot creation with a repeated key is replayed", func() {
		s.SetupTest()
		caller := s.jwt.NewCaller(s.T(), user.RoleDoctor)
		b := builder.NewSlotBuilder().With(func(b *builder.SlotBuilder) { b.DoctorID = caller.ID })
		s.slots.EXPECT().CreateSlot(gomock.Any(), gomock.Any()).Return(b.BuildView(), nil).Times(1)
		headers := map[string]string{middleware.IdempotencyKeyHeader: "slot-1"}

		first := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/slots", b.BuildCreateRequestDTO(), caller.Token, headers)
		second := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/slots", b.BuildCreateRequestDTO(), caller.Token, headers)

		s.Equal(http.StatusCreated, first.Code)
		s.Equal(http.StatusCreated, second.Code)
		s.Equal("true", second.Header().Get(middleware.IdempotencyHitHeader))
		s.Equal(first.Body.String(), second.Body.String())
	})

	s.Run("payment initiation without a key runs every time", func() {
		s.SetupTest()
		caller := s.jwt.NewCaller(s.T(), user.RolePatient)
		p := builder.NewPaymentBuilder()
		s.payments.EXPECT().Initiate(gomock.Any(), gomock.Any()).
			Return(&commands.InitiatePaymentResult{Payment: p.BuildView()}, nil).Times(2)

		for i := 0; i < 2; i++ {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/initiate", p.BuildInitiateRequestDTO(), caller.Token)
			s.Equal(http.StatusOK, rec.Code)
			s.Empty(rec.Header().Get(middleware.IdempotencyHitHeader))
		}
	})
}
