package api

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	reqdto "telemed-booking/internal/handler/dto/request"
	resdto "telemed-booking/internal/handler/dto/response"
	"telemed-booking/internal/handler/httperr"
	"telemed-booking/internal/handler/middleware"
	"telemed-booking/internal/pkg/signature"
	"telemed-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// maxWebhookBody bounds what is read before the signature is checked.
const maxWebhookBody = 64 << 10

type PaymentHandler struct {
	cmds     commands.PaymentCommands
	verifier signature.Verifier
}

func NewPaymentHandler(cmds commands.PaymentCommands, verifier signature.Verifier) *PaymentHandler {
	return &PaymentHandler{
		cmds:     cmds,
		verifier: verifier,
	}
}

// @Summary Initiate payment
// @Description Create a pending payment for the caller's pending booking
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.InitiatePaymentRequest true "Initiate payment request"
// @Success 200 {object} resdto.PaymentResponse "Existing pending payment"
// @Success 201 {object} resdto.PaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /payments/initiate [post]
func (h *PaymentHandler) Initiate(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	var req reqdto.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Initiate(c.Request.Context(), commands.InitiatePaymentCommand{
		Actor:       identity,
		BookingID:   req.BookingID,
		AmountMinor: req.Amount,
	})
	if err != nil {
		respondError(c, err, "Payment initiation failed")
		return
	}

	resp, err := resdto.FromPaymentView(result.Payment)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render payment", nil)
		return
	}
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

// @Summary Payment provider callback
// @Description Signed notification of a payment outcome. Duplicates are acknowledged without effect.
// @Tags payments
// @Accept json
// @Produce json
// @Param X-Signature header string true "Hex HMAC-SHA256 of the raw body"
// @Param request body reqdto.PaymentWebhookRequest true "Callback payload"
// @Success 200 {object} resdto.WebhookResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /payments/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))

	// Unsigned callbacks are rejected before the body is parsed.
	sig := c.GetHeader(signature.HeaderName)
	if !h.verifier.Verify(raw, sig) {
		slog.WarnContext(c.Request.Context(), "payment callback rejected: bad signature",
			slog.String("client_ip", c.ClientIP()))
		respondError(c, commands.ErrInvalidSignature, "Callback processing failed")
		return
	}

	var req reqdto.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.ProcessCallback(c.Request.Context(), commands.PaymentCallback{
		TransactionID: req.TransactionID,
		Status:        req.Status,
		Signature:     sig,
		Payload:       raw,
	})
	if err != nil {
		respondError(c, err, "Callback processing failed")
		return
	}

	if !result.Applied {
		slog.InfoContext(c.Request.Context(), "duplicate payment callback acknowledged",
			slog.String("transaction_id", req.TransactionID))
	}
	c.JSON(http.StatusOK, resdto.FromCallbackResult(result))
}
