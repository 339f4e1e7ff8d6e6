package api

import (
	"net/http"

	reqdto "telemed-booking/internal/handler/dto/request"
	resdto "telemed-booking/internal/handler/dto/response"
	"telemed-booking/internal/handler/httperr"
	"telemed-booking/internal/handler/middleware"
	"telemed-booking/internal/usecase/commands"
	"telemed-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errMissingIdentity = httperr.Sentinel("identity missing from context")

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Book a slot
// @Description Hold an open slot for the caller. Repeating the same Idempotency-Key replays the first response.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Client-chosen key identifying this logical request"
// @Param request body reqdto.BookSlotRequest true "Book slot request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) BookSlot(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	key := c.GetHeader(middleware.IdempotencyKeyHeader)
	if key == "" {
		respondError(c, commands.ErrIdempotencyKeyRequired, "")
		return
	}
	var req reqdto.BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.BookSlot(c.Request.Context(), commands.BookSlotCommand{
		IdempotencyKey: key,
		PatientID:      identity.UserID,
		SlotID:         req.SlotID,
	})
	if err != nil {
		respondError(c, err, "Booking failed")
		return
	}

	resp, err := resdto.FromBookingView(result.Booking)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render booking", nil)
		return
	}
	if result.IsReplayed {
		c.Header(middleware.IdempotencyHitHeader, "true")
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary Get booking
// @Description Visible to the patient, the booked doctor and admins
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err, "Failed to load booking")
		return
	}
	resp, err := resdto.FromBookingView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render booking", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Booking history
// @Description Audit trail entries targeting the booking, oldest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {array} resdto.AuditEntryResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/history [get]
func (h *BookingHandler) History(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	entries, err := h.q.History(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err, "Failed to load booking history")
		return
	}
	resp, err := resdto.FromAuditEntries(entries)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render history", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
