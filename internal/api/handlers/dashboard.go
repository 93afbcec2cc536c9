package handlers

import (
	"net/http"
	"time"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/model"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/service"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
	now              func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		now:              utcNow,
	}
}

// AmountResponse is a single dollar figure with its display string.
type AmountResponse struct {
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// AllocationItemResponse is one slice of the allocation pie.
type AllocationItemResponse struct {
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Display  string  `json:"display"`
	ColorTag string  `json:"colorTag"`
	Share    float64 `json:"share"`
}

// AssetRowResponse is one asset with its derived figures.
type AssetRowResponse struct {
	Asset               model.Asset `json:"asset"`
	Price               float64     `json:"price"`
	CurrentValue        float64     `json:"currentValue"`
	CurrentValueDisplay string      `json:"currentValueDisplay"`
	ROI                 float64     `json:"roi"`
	ROIDisplay          string      `json:"roiDisplay"`
	PriceMissing        bool        `json:"priceMissing"`
}

// DashboardResponse collects every figure the dashboard renders.
type DashboardResponse struct {
	NetWorth     AmountResponse           `json:"netWorth"`
	YearlyIncome AmountResponse           `json:"yearlyIncome"`
	Allocation   []AllocationItemResponse `json:"allocation"`
	Assets       []AssetRowResponse       `json:"assets"`
	PricesAsOf   *time.Time               `json:"pricesAsOf"`
}

// Dashboard handles GET requests for the full dashboard summary.
//
// Endpoint: GET /api/dashboard
// Response: 200 OK with DashboardResponse
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary := h.dashboardService.GetSummary(h.now())

	rows := make([]AssetRowResponse, len(summary.Assets))
	for i, v := range summary.Assets {
		rows[i] = AssetRowResponse{
			Asset:               v.Asset,
			Price:               v.Price,
			CurrentValue:        v.CurrentValue,
			CurrentValueDisplay: formatUSD(v.CurrentValue),
			ROI:                 v.ROI,
			ROIDisplay:          formatPercent(v.ROI),
			PriceMissing:        v.PriceMissing,
		}
	}

	response.RespondJSON(w, http.StatusOK, DashboardResponse{
		NetWorth:     amount(summary.NetWorth),
		YearlyIncome: amount(summary.YearlyIncome),
		Allocation:   allocationResponse(summary.Allocation, summary.Shares),
		Assets:       rows,
		PricesAsOf:   summary.PricesAsOf,
	})
}

// NetWorth handles GET requests for assets minus liabilities.
//
// Endpoint: GET /api/dashboard/net-worth
// Response: 200 OK with AmountResponse
func (h *DashboardHandler) NetWorth(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, amount(h.dashboardService.GetNetWorth()))
}

// YearlyIncome handles GET requests for the summed yearly yield.
//
// Endpoint: GET /api/dashboard/yearly-income
// Response: 200 OK with AmountResponse
func (h *DashboardHandler) YearlyIncome(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, amount(h.dashboardService.GetYearlyIncome()))
}

// Allocation handles GET requests for the allocation breakdown.
//
// Endpoint: GET /api/dashboard/allocation
// Response: 200 OK with []AllocationItemResponse
func (h *DashboardHandler) Allocation(w http.ResponseWriter, r *http.Request) {
	items, shares := h.dashboardService.GetAllocation()
	response.RespondJSON(w, http.StatusOK, allocationResponse(items, shares))
}

func amount(v float64) AmountResponse {
	return AmountResponse{Value: v, Display: formatUSD(v)}
}

func allocationResponse(items []model.AllocationItem, shares []float64) []AllocationItemResponse {
	out := make([]AllocationItemResponse, len(items))
	for i, item := range items {
		out[i] = AllocationItemResponse{
			Name:     item.Name,
			Value:    item.Value,
			Display:  formatUSD(item.Value),
			ColorTag: item.ColorTag,
		}
		if i < len(shares) {
			out[i].Share = shares[i]
		}
	}
	return out
}
