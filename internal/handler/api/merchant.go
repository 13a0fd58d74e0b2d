package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reqdto "lastbite/internal/handler/dto/request"
	resdto "lastbite/internal/handler/dto/response"
	"lastbite/internal/handler/middleware"
	"lastbite/internal/pkg/clock"
	"lastbite/internal/usecase/commands"
	"lastbite/internal/usecase/queries"
)

type MerchantHandler struct {
	merchantCommands  commands.MerchantCommands
	offerCommands     commands.OfferCommands
	offerQueries      queries.OfferQueries
	restaurantQueries queries.RestaurantQueries
	kpiQueries        queries.KPIQueries
	clock             clock.Clock
}

func NewMerchantHandler(
	merchantCommands commands.MerchantCommands,
	offerCommands commands.OfferCommands,
	offerQueries queries.OfferQueries,
	restaurantQueries queries.RestaurantQueries,
	kpiQueries queries.KPIQueries,
	clk clock.Clock,
) *MerchantHandler {
	return &MerchantHandler{
		merchantCommands:  merchantCommands,
		offerCommands:     offerCommands,
		offerQueries:      offerQueries,
		restaurantQueries: restaurantQueries,
		kpiQueries:        kpiQueries,
		clock:             clk,
	}
}

// @Summary Register merchant
// @Description Register a restaurant; the API key is returned once and stored hashed
// @Tags merchant
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterMerchantRequest true "Registration request"
// @Success 201 {object} resdto.RegisterMerchantResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /merchant/register [post]
func (h *MerchantHandler) Register(c *gin.Context) {
	var req reqdto.RegisterMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.merchantCommands.Register(c.Request.Context(), req.ToCommand())
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resdto.FromRegisterResult(result))
}

// @Summary Get merchant profile
// @Tags merchant
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} resdto.MerchantProfileResponse
// @Failure 401 {object} map[string]string
// @Router /merchant/profile [get]
func (h *MerchantHandler) GetProfile(c *gin.Context) {
	restaurantID, ok := middleware.GetRestaurantID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	view, err := h.restaurantQueries.GetProfile(c.Request.Context(), restaurantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	resp, err := resdto.FromProfileView(view)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Update merchant profile
// @Tags merchant
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body reqdto.UpdateMerchantProfileRequest true "Profile fields to update"
// @Success 204
// @Failure 401 {object} map[string]string
// @Router /merchant/profile [post]
func (h *MerchantHandler) UpdateProfile(c *gin.Context) {
	restaurantID, ok := middleware.GetRestaurantID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.UpdateMerchantProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.merchantCommands.UpdateProfile(c.Request.Context(), restaurantID, req.ToCommand()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List own offers
// @Tags merchant
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "Filter" Enums(active)
// @Success 200 {array} resdto.MerchantOfferResponse
// @Failure 401 {object} map[string]string
// @Router /merchant/offers [get]
func (h *MerchantHandler) ListOffers(c *gin.Context) {
	restaurantID, ok := middleware.GetRestaurantID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	activeOnly := c.Query("status") == "active"
	views, err := h.offerQueries.ListByOwner(c.Request.Context(), restaurantID, activeOnly, h.clock.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	resp, err := resdto.FromMerchantOfferViews(views)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Create offer
// @Tags merchant
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body reqdto.CreateOfferRequest true "Offer"
// @Success 201 {object} resdto.CreateOfferResponse
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /merchant/offers [post]
func (h *MerchantHandler) CreateOffer(c *gin.Context) {
	restaurantID, ok := middleware.GetRestaurantID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	id, err := h.offerCommands.CreateOffer(c.Request.Context(), restaurantID, req.ToCommand())
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resdto.CreateOfferResponse{ID: id})
}

// @Summary Edit offer
// @Description Partial update; absent fields are untouched, null clears nullable fields
// @Tags merchant
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Offer ID"
// @Param request body reqdto.UpdateOfferRequest true "Fields to change"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /merchant/offers/{id} [post]
func (h *MerchantHandler) UpdateOffer(c *gin.Context) {
	restaurantID, offerID, ok := h.restaurantAndOfferID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.offerCommands.UpdateOffer(c.Request.Context(), restaurantID, offerID, req.ToCommand()); err != nil {
		h.respondOfferErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Archive offer
// @Description Idempotent soft delete; the offer disappears from the public listing
// @Tags merchant
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Offer ID"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /merchant/offers/{id} [delete]
func (h *MerchantHandler) ArchiveOffer(c *gin.Context) {
	restaurantID, offerID, ok := h.restaurantAndOfferID(c)
	if !ok {
		return
	}

	if err := h.offerCommands.ArchiveOffer(c.Request.Context(), restaurantID, offerID); err != nil {
		h.respondOfferErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Export offers as CSV
// @Tags merchant
// @Produce text/csv
// @Security ApiKeyAuth
// @Success 200 {string} string "CSV body"
// @Failure 401 {object} map[string]string
// @Router /merchant/offers/csv [get]
func (h *MerchantHandler) ExportOffersCSV(c *gin.Context) {
	restaurantID, ok := middleware.GetRestaurantID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	filename := fmt.Sprintf("offers-%s.csv", h.clock.Now().Format(time.DateOnly))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.offerQueries.ExportCSV(c.Request.Context(), restaurantID, h.clock.Now(), c.Writer); err != nil {
		// Headers may already be out; log via the error stack and stop.
		_ = c.Error(err)
		c.Abort()
	}
}

// @Summary Redemption KPI
// @Description Reserved/redeemed counts, redemption rate and revenue
// @Tags merchant
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} resdto.KPIResponse
// @Failure 401 {object} map[string]string
// @Router /merchant/kpi [get]
func (h *MerchantHandler) GetKPI(c *gin.Context) {
	restaurantID, ok := middleware.GetRestaurantID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	view, err := h.kpiQueries.ByRestaurant(c.Request.Context(), restaurantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromKPIView(view))
}

func (h *MerchantHandler) restaurantAndOfferID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	restaurantID, ok := middleware.GetRestaurantID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return uuid.Nil, uuid.Nil, false
	}
	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offer ID"})
		return uuid.Nil, uuid.Nil, false
	}
	return restaurantID, offerID, true
}

func (h *MerchantHandler) respondOfferErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrOfferNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
	case errors.Is(err, commands.ErrOfferNotOwned):
		c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
	default:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	}
}
