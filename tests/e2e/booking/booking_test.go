//go:build e2e

package booking_test

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"telemed-booking/internal/domain/user"
	reqdto "telemed-booking/internal/handler/dto/request"
	resdto "telemed-booking/internal/handler/dto/response"
	"telemed-booking/internal/handler/middleware"
	"telemed-booking/internal/pkg/signature"
	"telemed-booking/tests/common/authtest"
	"telemed-booking/tests/common/dbtest"
	"telemed-booking/tests/common/httptest"
	"telemed-booking/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type bookingSuite struct {
	e2e.SharedSuite
	jwt    *authtest.JWTHelper
	signer *signature.HMACVerifier
}

func TestBookingSuite(t *testing.T) {
	suite.Run(t, new(bookingSuite))
}

func (s *bookingSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
	s.signer = signature.NewHMACVerifier(s.Config.Payment.WebhookSecret)
}

func (s *bookingSuite) newSlot() (uuid.UUID, authtest.Caller) {
	doctor := s.jwt.NewCaller(s.T(), user.RoleDoctor)
	start := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Minute)
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/slots", reqdto.CreateSlotRequest{
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
	}, doctor.Token)
	var slot resdto.SlotResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &slot)
	return slot.ID, doctor
}

func (s *bookingSuite) book(patient authtest.Caller, slotID uuid.UUID, key string) (int, []byte, string) {
	rec := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, "/bookings",
		reqdto.BookSlotRequest{SlotID: slotID}, patient.Token,
		map[string]string{middleware.IdempotencyKeyHeader: key})
	return rec.Code, rec.Body.Bytes(), rec.Header().Get(middleware.IdempotencyHitHeader)
}

func (s *bookingSuite) initiate(patient authtest.Caller, bookingID uuid.UUID) resdto.PaymentResponse {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/payments/initiate",
		reqdto.InitiatePaymentRequest{BookingID: bookingID, Amount: 50000}, patient.Token)
	var p resdto.PaymentResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &p)
	return p
}

func (s *bookingSuite) webhook(txID, status string, sign bool) (int, resdto.WebhookResponse) {
	raw, err := json.Marshal(reqdto.PaymentWebhookRequest{TransactionID: txID, Status: status})
	require.NoError(s.T(), err)
	headers := map[string]string{"Content-Type": "application/json", signature.HeaderName: "deadbeef"}
	if sign {
		headers[signature.HeaderName] = s.signer.Sign(raw)
	}
	rec := httptest.PerformRawRequest(s.T(), s.Router, http.MethodPost, "/payments/webhook", raw, headers)
	var resp resdto.WebhookResponse
	if rec.Code == http.StatusOK {
		require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec.Code, resp
}

func (s *bookingSuite) decodeBooking(body []byte) resdto.BookingResponse {
	var b resdto.BookingResponse
	require.NoError(s.T(), json.Unmarshal(body, &b), string(body))
	return b
}

func (s *bookingSuite) TestBookSlot() {
	s.Run("booking holds the slot and replays byte-identically", func() {
		slotID, _ := s.newSlot()
		patient := s.jwt.NewCaller(s.T(), user.RolePatient)
		key := uuid.NewString()

		code, body, hit := s.book(patient, slotID, key)
		s.Require().Equal(http.StatusCreated, code, string(body))
		s.Empty(hit)
		b := s.decodeBooking(body)
		s.Equal("pending", b.Status)
		s.True(dbtest.SlotBooked(s.T(), s.DB, slotID))

		code2, body2, hit2 := s.book(patient, slotID, key)
		s.Equal(http.StatusCreated, code2)
		s.Equal("true", hit2)
		s.Equal(body, body2)
		s.Equal(1, dbtest.CountAudit(s.T(), s.DB, b.ID, "BOOKING_CREATED"))
	})

	s.Run("same key with another slot is 422", func() {
		slotA, _ := s.newSlot()
		slotB, _ := s.newSlot()
		patient := s.jwt.NewCaller(s.T(), user.RolePatient)
		key := uuid.NewString()

		code, _, _ := s.book(patient, slotA, key)
		s.Require().Equal(http.StatusCreated, code)
		code, _, _ = s.book(patient, slotB, key)
		s.Equal(http.StatusUnprocessableEntity, code)
		s.False(dbtest.SlotBooked(s.T(), s.DB, slotB))
	})

	s.Run("unknown slot is 404", func() {
		patient := s.jwt.NewCaller(s.T(), user.RolePatient)
		code, _, _ := s.book(patient, uuid.New(), uuid.NewString())
		s.Equal(http.StatusNotFound, code)
	})

	s.Run("concurrent patients: exactly one wins", func() {
		slotID, _ := s.newSlot()
		const n = 10

		var wg sync.WaitGroup
		codes := make([]int, n)
		for i := range n {
			patient := s.jwt.NewCaller(s.T(), user.RolePatient)
			wg.Add(1)
			go func() {
				defer wg.Done()
				codes[i], _, _ = s.book(patient, slotID, uuid.NewString())
			}()
		}
		wg.Wait()

		created, conflicts := 0, 0
		for _, c := range codes {
			switch c {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicts++
			}
		}
		s.Equal(1, created)
		s.Equal(n-1, conflicts)
	})

	s.Run("doctors cannot book", func() {
		slotID, doctor := s.newSlot()
		code, _, _ := s.book(doctor, slotID, uuid.NewString())
		s.Equal(http.StatusForbidden, code)
	})
}

func (s *bookingSuite) TestPaymentCallback() {
	s.Run("success confirms the booking; duplicates are no-ops", func() {
		slotID, _ := s.newSlot()
		patient := s.jwt.NewCaller(s.T(), user.RolePatient)
		_, body, _ := s.book(patient, slotID, uuid.NewString())
		b := s.decodeBooking(body)
		p := s.initiate(patient, b.ID)

		code, resp := s.webhook(p.TransactionID, "SUCCESS", true)
		s.Require().Equal(http.StatusOK, code)
		s.True(resp.Applied)
		s.Equal("confirmed", dbtest.BookingStatus(s.T(), s.DB, b.ID))

		code, resp = s.webhook(p.TransactionID, "SUCCESS", true)
		s.Equal(http.StatusOK, code)
		s.False(resp.Applied)
		s.Equal(1, dbtest.CountAudit(s.T(), s.DB, b.ID, "PAYMENT_SUCCESS"))
	})

	s.Run("failure releases the slot for someone else", func() {
		slotID, _ := s.newSlot()
		patient := s.jwt.NewCaller(s.T(), user.RolePatient)
		_, body, _ := s.book(patient, slotID, uuid.NewString())
		b := s.decodeBooking(body)
		p := s.initiate(patient, b.ID)

		code, _ := s.webhook(p.TransactionID, "FAILED", true)
		s.Require().Equal(http.StatusOK, code)
		s.Equal("failed", dbtest.BookingStatus(s.T(), s.DB, b.ID))
		s.False(dbtest.SlotBooked(s.T(), s.DB, slotID))

		other := s.jwt.NewCaller(s.T(), user.RolePatient)
		code, _, _ = s.book(other, slotID, uuid.NewString())
		s.Equal(http.StatusCreated, code)
	})

	s.Run("a conflicted key succeeds on retry once a failed payment frees the slot", func() {
		slotID, _ := s.newSlot()
		clientA := s.jwt.NewCaller(s.T(), user.RolePatient)
		clientB := s.jwt.NewCaller(s.T(), user.RolePatient)
		k1, k2 := uuid.NewString(), uuid.NewString()

		code, body, _ := s.book(clientA, slotID, k1)
		s.Require().Equal(http.StatusCreated, code)
		b1 := s.decodeBooking(body)
		s.Equal("pending", b1.Status)
		s.True(dbtest.SlotBooked(s.T(), s.DB, slotID))

		code, _, hit := s.book(clientB, slotID, k2)
		s.Require().Equal(http.StatusConflict, code)
		s.Empty(hit)

		p := s.initiate(clientA, b1.ID)
		code, _ = s.webhook(p.TransactionID, "FAILED", true)
		s.Require().Equal(http.StatusOK, code)
		s.Equal("failed", dbtest.BookingStatus(s.T(), s.DB, b1.ID))
		s.False(dbtest.SlotBooked(s.T(), s.DB, slotID))

		code, body, hit = s.book(clientB, slotID, k2)
		s.Require().Equal(http.StatusCreated, code, string(body))
		s.Empty(hit, "the earlier 409 must not be replayed")
		b2 := s.decodeBooking(body)
		s.NotEqual(b1.ID, b2.ID)
		s.Equal("pending", b2.Status)
		s.True(dbtest.SlotBooked(s.T(), s.DB, slotID))
	})

	s.Run("bad signature is 403 and changes nothing", func() {
		slotID, _ := s.newSlot()
		patient := s.jwt.NewCaller(s.T(), user.RolePatient)
		_, body, _ := s.book(patient, slotID, uuid.NewString())
		b := s.decodeBooking(body)
		p := s.initiate(patient, b.ID)

		code, _ := s.webhook(p.TransactionID, "SUCCESS", false)
		s.Equal(http.StatusForbidden, code)
		s.Equal("pending", dbtest.BookingStatus(s.T(), s.DB, b.ID))
	})

	s.Run("unknown transaction is 404", func() {
		code, _ := s.webhook("tx_missing", "SUCCESS", true)
		s.Equal(http.StatusNotFound, code)
	})
}

func (s *bookingSuite) TestReaper() {
	s.Run("stale booking is cancelled and its slot freed; young one untouched", func() {
		staleSlot, _ := s.newSlot()
		youngSlot, _ := s.newSlot()
		patient := s.jwt.NewCaller(s.T(), user.RolePatient)

		_, body, _ := s.book(patient, staleSlot, uuid.NewString())
		stale := s.decodeBooking(body)
		_, body, _ = s.book(patient, youngSlot, uuid.NewString())
		young := s.decodeBooking(body)
		dbtest.BackdateBooking(s.T(), s.DB, stale.ID, s.Config.Reaper.StaleAfter+time.Minute)

		result, err := s.Reaper.Sweep(s.T().Context())
		s.Require().NoError(err)
		s.Equal(1, result.Cancelled)

		s.Equal("cancelled", dbtest.BookingStatus(s.T(), s.DB, stale.ID))
		s.False(dbtest.SlotBooked(s.T(), s.DB, staleSlot))
		s.Equal(1, dbtest.CountAudit(s.T(), s.DB, stale.ID, "AUTO_TIMEOUT"))
		s.Equal("pending", dbtest.BookingStatus(s.T(), s.DB, young.ID))
		s.True(dbtest.SlotBooked(s.T(), s.DB, youngSlot))
	})

	s.Run("dead-lettered booking is left for manual review", func() {
		slotID, _ := s.newSlot()
		patient := s.jwt.NewCaller(s.T(), user.RolePatient)
		_, body, _ := s.book(patient, slotID, uuid.NewString())
		b := s.decodeBooking(body)
		dbtest.BackdateBooking(s.T(), s.DB, b.ID, s.Config.Reaper.StaleAfter+time.Minute)
		dbtest.InsertAudit(s.T(), s.DB, b.ID, "AUTO_TIMEOUT_FAILED")

		result, err := s.Reaper.Sweep(s.T().Context())
		s.Require().NoError(err)
		s.Equal(0, result.Scanned)

		s.Equal("pending", dbtest.BookingStatus(s.T(), s.DB, b.ID))
		s.True(dbtest.SlotBooked(s.T(), s.DB, slotID))
		s.Equal(1, dbtest.CountAudit(s.T(), s.DB, b.ID, "AUTO_TIMEOUT_FAILED"))
	})

	s.Run("late success after the reaper leaves the booking cancelled", func() {
		slotID, _ := s.newSlot()
		patient := s.jwt.NewCaller(s.T(), user.RolePatient)
		_, body, _ := s.book(patient, slotID, uuid.NewString())
		b := s.decodeBooking(body)
		p := s.initiate(patient, b.ID)
		dbtest.BackdateBooking(s.T(), s.DB, b.ID, s.Config.Reaper.StaleAfter+time.Minute)

		_, err := s.Reaper.Sweep(s.T().Context())
		s.Require().NoError(err)

		code, resp := s.webhook(p.TransactionID, "SUCCESS", true)
		s.Equal(http.StatusOK, code)
		s.Equal("cancelled", resp.BookingStatus)
		s.Equal("cancelled", dbtest.BookingStatus(s.T(), s.DB, b.ID))
		s.Equal(1, dbtest.CountAudit(s.T(), s.DB, b.ID, "PAYMENT_AFTER_CLOSE"))
	})
}

func (s *bookingSuite) TestBookingReads() {
	s.Run("owner reads booking and history; strangers are refused", func() {
		slotID, doctor := s.newSlot()
		patient := s.jwt.NewCaller(s.T(), user.RolePatient)
		_, body, _ := s.book(patient, slotID, uuid.NewString())
		b := s.decodeBooking(body)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/bookings/"+b.ID.String(), nil, patient.Token)
		var got resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		opts := []cmp.Option{
			cmpopts.IgnoreFields(resdto.BookingResponse{}, "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(b, got, opts...); diff != "" {
			s.T().Errorf("booking mismatch (-created +fetched):\n%s", diff)
		}

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/bookings/"+b.ID.String()+"/history", nil, doctor.Token)
		var history []resdto.AuditEntryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &history)
		s.Require().NotEmpty(history)
		s.Equal("BOOKING_CREATED", history[0].Action)

		stranger := s.jwt.NewCaller(s.T(), user.RolePatient)
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/bookings/"+b.ID.String(), nil, stranger.Token)
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("slot listing hides booked slots", func() {
		slotID, doctor := s.newSlot()
		from := time.Now().UTC()
		to := from.Add(7 * 24 * time.Hour)
		list := func() []resdto.SlotResponse {
			url := "/slots?doctor_id=" + doctor.ID.String() +
				"&from=" + from.Format(time.RFC3339) + "&to=" + to.Format(time.RFC3339)
			rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, url, nil, "")
			var slots []resdto.SlotResponse
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &slots)
			return slots
		}

		s.Len(list(), 1)

		patient := s.jwt.NewCaller(s.T(), user.RolePatient)
		code, _, _ := s.book(patient, slotID, uuid.NewString())
		s.Require().Equal(http.StatusCreated, code)

		s.Empty(list(), "booking invalidates the cached listing")
	})
}
