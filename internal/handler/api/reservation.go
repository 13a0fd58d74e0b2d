package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	reqdto "lastbite/internal/handler/dto/request"
	resdto "lastbite/internal/handler/dto/response"
	"lastbite/internal/handler/middleware"
	"lastbite/internal/pkg/qr"
	"lastbite/internal/usecase/commands"
)

type ReservationHandler struct {
	reservationCommands commands.ReservationCommands
	qrEncoder           qr.Encoder
}

func NewReservationHandler(reservationCommands commands.ReservationCommands, enc qr.Encoder) *ReservationHandler {
	return &ReservationHandler{
		reservationCommands: reservationCommands,
		qrEncoder:           enc,
	}
}

// @Summary Create reservation
// @Description Reserve quantity on an active offer; returns a redemption code and QR
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.reservationCommands.CreateReservation(c.Request.Context(), req.OfferID, req.Qty)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrOfferNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
		case errors.Is(err, commands.ErrOfferInactive):
			c.JSON(http.StatusGone, gin.H{"error": "Offer is no longer active"})
		case errors.Is(err, commands.ErrInsufficientQty):
			c.JSON(http.StatusConflict, gin.H{"error": "Not enough quantity left"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCreateReservationResult(result))
}

// @Summary Redeem reservation
// @Description Redeem a reservation code at the owning restaurant; repeated scans succeed idempotently
// @Tags reservations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body reqdto.ReservationCodeRequest true "Redemption code"
// @Success 200 {object} resdto.RedeemResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/redeem [post]
func (h *ReservationHandler) RedeemReservation(c *gin.Context) {
	restaurantID, ok := middleware.GetRestaurantID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.ReservationCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.reservationCommands.RedeemReservation(c.Request.Context(), restaurantID, req.NormalizedCode())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		case errors.Is(err, commands.ErrReservationNotOwned):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		case errors.Is(err, commands.ErrReservationCanceled):
			c.JSON(http.StatusConflict, gin.H{"error": "Reservation was canceled"})
		case errors.Is(err, commands.ErrReservationConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Reservation changed concurrently, retry"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRedeemResult(result))
}

// @Summary Cancel reservation
// @Description Cancel a reservation by code; restores inventory unless the offer already expired
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.ReservationCodeRequest true "Reservation code"
// @Success 200 {object} resdto.CancelResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/cancel [post]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	var req reqdto.ReservationCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.reservationCommands.CancelReservation(c.Request.Context(), req.NormalizedCode())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		case errors.Is(err, commands.ErrReservationConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Reservation changed concurrently, retry"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCancelResult(result))
}

// @Summary Render reservation QR
// @Description Re-render the QR image for a reservation code
// @Tags reservations
// @Produce json
// @Param code query string true "Reservation code"
// @Success 200 {object} resdto.QRResponse
// @Failure 422 {object} map[string]string
// @Router /reservations/qr [get]
func (h *ReservationHandler) RenderQR(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Query("code")))
	if code == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "code is required"})
		return
	}

	png, err := h.qrEncoder.EncodePNGBase64(code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render QR"})
		return
	}
	c.JSON(http.StatusOK, resdto.QRResponse{Code: code, QRPNGBase64: png})
}
