package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/model"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/service"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/validation"
)

// AssetHandler handles asset-related HTTP requests
type AssetHandler struct {
	assetService     *service.AssetService
	dashboardService *service.DashboardService
	now              func() time.Time
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetService *service.AssetService, dashboardService *service.DashboardService) *AssetHandler {
	return &AssetHandler{
		assetService:     assetService,
		dashboardService: dashboardService,
		now:              utcNow,
	}
}

// ROIResponse is the annualized return of a single asset.
type ROIResponse struct {
	ID                  string  `json:"id"`
	Price               float64 `json:"price"`
	CurrentValue        float64 `json:"currentValue"`
	CurrentValueDisplay string  `json:"currentValueDisplay"`
	ROI                 float64 `json:"roi"`
	ROIDisplay          string  `json:"roiDisplay"`
	PriceMissing        bool    `json:"priceMissing"`
}

// Assets handles GET requests to list every asset in insertion order.
//
// Endpoint: GET /api/asset
// Response: 200 OK with []Asset
func (h *AssetHandler) Assets(w http.ResponseWriter, r *http.Request) {
	assets := h.assetService.GetAssets()
	if assets == nil {
		assets = []model.Asset{}
	}
	response.RespondJSON(w, http.StatusOK, assets)
}

// Asset handles GET requests for a single asset.
//
// Endpoint: GET /api/asset/{uuid}
// Response: 200 OK with Asset
// Error: 404 Not Found if the asset does not exist
func (h *AssetHandler) Asset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	asset, err := h.assetService.GetAsset(assetID)
	if err != nil {
		respondAssetError(w, err, apperrors.ErrFailedToRetrieveAssets.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// CreateAsset handles POST requests to add an asset to the ledger.
//
// Endpoint: POST /api/asset
// Request Body: CreateAssetRequest
// Response: 201 Created with Asset (including its new id)
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the ledger could not be saved
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAsset(req, h.now()); err != nil {
		if !respondValidationError(w, err) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		}
		return
	}

	asset, err := h.assetService.CreateAsset(r.Context(), req)
	if err != nil {
		respondAssetError(w, err, "failed to create asset")
		return
	}

	response.RespondJSON(w, http.StatusCreated, asset)
}

// UpdateAsset handles PUT requests to change some fields of an asset.
// Absent fields keep their value; an id in the body is ignored.
//
// Endpoint: PUT /api/asset/{uuid}
// Request Body: UpdateAssetRequest (all fields optional)
// Response: 200 OK with the updated Asset
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the asset does not exist
// Error: 500 Internal Server Error if the ledger could not be saved
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateAssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	now := h.now()
	if err := validation.ValidateUpdateAsset(req, now); err != nil {
		if !respondValidationError(w, err) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		}
		return
	}

	asset, err := h.assetService.UpdateAsset(r.Context(), assetID, req, now)
	if err != nil {
		respondAssetError(w, err, "failed to update asset")
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// DeleteAsset handles DELETE requests to remove an asset.
//
// Endpoint: DELETE /api/asset/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if the asset does not exist
// Error: 500 Internal Server Error if the ledger could not be saved
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	removed, err := h.assetService.DeleteAsset(r.Context(), assetID)
	if err != nil {
		respondAssetError(w, err, "failed to delete asset")
		return
	}
	if !removed {
		response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), "")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// AssetROI handles GET requests for the annualized ROI of an asset.
// Balances and assets without a purchase date report 0.
//
// Endpoint: GET /api/asset/{uuid}/roi
// Response: 200 OK with ROIResponse
// Error: 404 Not Found if the asset does not exist
func (h *AssetHandler) AssetROI(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	v, err := h.dashboardService.GetAssetValuation(assetID, h.now())
	if err != nil {
		respondAssetError(w, err, apperrors.ErrFailedToRetrieveAssets.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, ROIResponse{
		ID:                  v.Asset.ID,
		Price:               v.Price,
		CurrentValue:        v.CurrentValue,
		CurrentValueDisplay: formatUSD(v.CurrentValue),
		ROI:                 v.ROI,
		ROIDisplay:          formatPercent(v.ROI),
		PriceMissing:        v.PriceMissing,
	})
}

func respondAssetError(w http.ResponseWriter, err error, message string) {
	if respondValidationError(w, err) {
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrAssetNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrInvalidAssetType), errors.Is(err, apperrors.ErrInvalidDate):
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, message, err.Error())
	}
}
