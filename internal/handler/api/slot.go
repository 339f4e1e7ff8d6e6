package api

import (
	"net/http"

	"telemed-booking/internal/domain/user"
	reqdto "telemed-booking/internal/handler/dto/request"
	resdto "telemed-booking/internal/handler/dto/response"
	"telemed-booking/internal/handler/httperr"
	"telemed-booking/internal/handler/middleware"
	"telemed-booking/internal/usecase/commands"
	"telemed-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SlotHandler struct {
	cmds commands.SlotCommands
	q    queries.SlotQueries
}

func NewSlotHandler(cmds commands.SlotCommands, q queries.SlotQueries) *SlotHandler {
	return &SlotHandler{cmds: cmds, q: q}
}

// @Summary Publish slot
// @Description Doctors publish their own availability; admins may publish for any doctor
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSlotRequest true "Create slot request"
// @Success 201 {object} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /slots [post]
func (h *SlotHandler) Create(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	doctorID := identity.UserID
	if req.DoctorID != nil {
		doctorID = *req.DoctorID
	} else if identity.Role != user.RoleDoctor {
		httperr.AbortWithError(c, http.StatusBadRequest, errMissingDoctor, "doctor_id is required", nil)
		return
	}

	view, err := h.cmds.CreateSlot(c.Request.Context(), commands.CreateSlotCommand{
		Actor:     identity,
		DoctorID:  doctorID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		respondError(c, err, "Slot creation failed")
		return
	}
	resp, err := resdto.FromSlotView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render slot", nil)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary List open slots
// @Description Open slots of a doctor inside [from, to). Served from cache when possible.
// @Tags slots
// @Produce json
// @Param doctor_id query string true "Doctor ID"
// @Param from query string true "RFC3339 lower bound"
// @Param to query string true "RFC3339 upper bound"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Router /slots [get]
func (h *SlotHandler) List(c *gin.Context) {
	var q reqdto.ListSlotsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	doctorID, err := uuid.Parse(q.DoctorID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	views, err := h.q.ListOpen(c.Request.Context(), doctorID, q.From.UTC(), q.To.UTC())
	if err != nil {
		respondError(c, err, "Failed to list slots")
		return
	}
	resp, err := resdto.FromSlotViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render slots", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

var errMissingDoctor = httperr.Sentinel("doctor id missing")
