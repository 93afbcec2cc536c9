package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/service"
)

// PriceHandler handles price cache HTTP requests
type PriceHandler struct {
	priceService *service.PriceService
}

// NewPriceHandler creates a new PriceHandler
func NewPriceHandler(priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
	}
}

// Prices handles GET requests for the cached prices.
//
// Endpoint: GET /api/prices
// Response: 200 OK with PriceSnapshot
func (h *PriceHandler) Prices(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.priceService.GetPrices())
}

// RefreshPrices handles POST requests to refresh prices now.
//
// Endpoint: POST /api/prices/refresh
// Response: 200 OK with the refreshed PriceSnapshot
// Error: 502 Bad Gateway if every price source failed (the cache is unchanged)
// Error: 500 Internal Server Error for anything else
func (h *PriceHandler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	snap, err := h.priceService.RefreshPrices(r.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrPriceSourceUnavailable) {
			response.RespondError(w, http.StatusBadGateway, apperrors.ErrPriceSourceUnavailable.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshPrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snap)
}
