package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lastbite/internal/handler/dto/response"
	"lastbite/internal/handler/httperr"
	"lastbite/internal/pkg/clock"
	"lastbite/internal/usecase/queries"
)

// OfferHandler serves the public, unauthenticated offer directory.
type OfferHandler struct {
	offerQueries queries.OfferQueries
	clock        clock.Clock
}

func NewOfferHandler(offerQueries queries.OfferQueries, clk clock.Clock) *OfferHandler {
	return &OfferHandler{offerQueries: offerQueries, clock: clk}
}

// @Summary List active offers
// @Description Public directory of active offers with time-decayed pricing
// @Tags offers
// @Produce json
// @Param sort query string false "Sort order" Enums(price, new, distance, expiry)
// @Param lat query number false "Observer latitude"
// @Param lon query number false "Observer longitude"
// @Param city query string false "Case-insensitive exact city filter"
// @Param limit query int false "Max results (default 200)"
// @Success 200 {array} response.PublicOfferResponse
// @Failure 422 {object} httperr.Response
// @Router /offers [get]
func (h *OfferHandler) ListOffers(c *gin.Context) {
	params := queries.ListPublicParams{
		Sort: queries.ParseSortOrder(c.Query("sort")),
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || limit < 1 {
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, errInvalidQuery, "Invalid limit", nil)
			return
		}
		params.Limit = int32(limit)
	}
	lat, ok := parseFloatQuery(c, "lat")
	if !ok {
		return
	}
	lon, ok := parseFloatQuery(c, "lon")
	if !ok {
		return
	}
	params.Lat = lat
	params.Lon = lon
	if city := c.Query("city"); city != "" {
		params.City = &city
	}

	views, err := h.offerQueries.ListPublic(c.Request.Context(), params, h.clock.Now())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list offers", nil)
		return
	}

	resp, err := response.FromPublicOfferViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render offers", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func parseFloatQuery(c *gin.Context, name string) (*float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid "+name, nil)
		return nil, false
	}
	return &v, true
}
