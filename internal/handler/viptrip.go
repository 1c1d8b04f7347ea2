package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"viptrip/internal/domain"
	"viptrip/internal/service"
)

// VIPTripHandler handles HTTP requests for VIP trips.
type VIPTripHandler struct {
	tripService *service.VIPTripService
}

// NewVIPTripHandler creates a new VIPTripHandler.
func NewVIPTripHandler(tripService *service.VIPTripService) *VIPTripHandler {
	return &VIPTripHandler{tripService: tripService}
}

// CreateTripRequest is the HTTP request body for requesting a VIP trip.
type CreateTripRequest struct {
	PassengerID            int64    `json:"passenger_id"`
	PickupLat              float64  `json:"pickup_lat"`
	PickupLng              float64  `json:"pickup_lng"`
	PickupDescription      string   `json:"pickup_description"`
	DestinationLat         float64  `json:"destination_lat"`
	DestinationLng         float64  `json:"destination_lng"`
	DestinationDescription string   `json:"destination_description"`
	Gender                 string   `json:"gender,omitempty"`
	Features               []string `json:"features,omitempty"`
	StartDate              string   `json:"start_date"` // RFC3339
	Distance               float64  `json:"distance,omitempty"`
}

// CancelTripRequest is the HTTP request body for cancelling a trip.
type CancelTripRequest struct {
	UserID int64  `json:"user_id"`
	Reason string `json:"reason"`
	Note   string `json:"note,omitempty"`
}

// EndTripRequest is the HTTP request body for ending a trip.
type EndTripRequest struct {
	DriverID int64 `json:"driver_id"`
}

// TripResponse is the trip portion of trip payloads.
type TripResponse struct {
	ID        int64    `json:"id"`
	Status    string   `json:"status"`
	Type      string   `json:"type"`
	Gender    string   `json:"gender,omitempty"`
	Features  []string `json:"features,omitempty"`
	DriverID  int64    `json:"driver_id,omitempty"`
	Price     float64  `json:"price"`
	Distance  float64  `json:"distance"`
	Discount  float64  `json:"discount,omitempty"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date,omitempty"`
}

// TripDetailResponse is the HTTP response for creating or fetching a VIP trip.
type TripDetailResponse struct {
	Trip                   TripResponse             `json:"trip"`
	PaymentMethod          string                   `json:"payment_method,omitempty"`
	PickupLat              float64                  `json:"pickup_lat"`
	PickupLng              float64                  `json:"pickup_lng"`
	PickupDescription      string                   `json:"pickup_description"`
	DestinationLat         float64                  `json:"destination_lat"`
	DestinationLng         float64                  `json:"destination_lng"`
	DestinationDescription string                   `json:"destination_description"`
	Passenger              *domain.PassengerProfile `json:"passenger,omitempty"`
	CompletedTrips         int                      `json:"completed_trips"`
}

// CancelTripResponse is the HTTP response for both cancellation flows.
type CancelTripResponse struct {
	TripID   int64  `json:"trip_id"`
	Type     string `json:"type,omitempty"`
	Deleted  bool   `json:"deleted,omitempty"`
	Notified string `json:"notified,omitempty"`
}

// EndTripResponse is the HTTP response for ending a trip.
type EndTripResponse struct {
	Trip    service.TripStatusInfo `json:"trip"`
	Summary *service.TripSummary   `json:"summary"`
}

// CreateTrip handles POST /v1/vip-trips
func (h *VIPTripHandler) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		respondError(c, service.ErrInvalidStartDate)
		return
	}

	detail, err := h.tripService.Create(c.Request.Context(), service.CreateVIPTripRequest{
		PassengerID:            req.PassengerID,
		PickupLat:              req.PickupLat,
		PickupLng:              req.PickupLng,
		PickupDescription:      req.PickupDescription,
		DestinationLat:         req.DestinationLat,
		DestinationLng:         req.DestinationLng,
		DestinationDescription: req.DestinationDescription,
		Gender:                 req.Gender,
		Features:               req.Features,
		StartDate:              startDate,
		Distance:               req.Distance,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, TripDetailResponse{
		Trip:                   tripResponse(detail.Trip),
		PaymentMethod:          string(detail.VIPTrip.PaymentMethod),
		PickupLat:              detail.VIPTrip.PickupLat,
		PickupLng:              detail.VIPTrip.PickupLng,
		PickupDescription:      detail.VIPTrip.PickupDescription,
		DestinationLat:         detail.VIPTrip.DestinationLat,
		DestinationLng:         detail.VIPTrip.DestinationLng,
		DestinationDescription: detail.VIPTrip.DestinationDescription,
		Passenger:              detail.Passenger,
	})
}

// CancelTrip handles POST /v1/vip-trips/:id/cancel
func (h *VIPTripHandler) CancelTrip(c *gin.Context) {
	tripID, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req CancelTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.tripService.Cancel(c.Request.Context(), tripID, req.UserID, service.CancelTripData{
		Reason: domain.CancelationReason(req.Reason),
		Note:   req.Note,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	resp := CancelTripResponse{TripID: tripID, Deleted: result == nil}
	if result != nil {
		resp.Type = string(result.Type)
		if result.Driver != nil {
			resp.Notified = result.Driver.UUID
		}
	}
	respondJSON(c, http.StatusOK, resp)
}

// DriverCancelTrip handles POST /v1/vip-trips/:id/driver-cancel
func (h *VIPTripHandler) DriverCancelTrip(c *gin.Context) {
	tripID, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req CancelTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.tripService.DriverCancel(c.Request.Context(), tripID, req.UserID, service.CancelTripData{
		Reason: domain.CancelationReason(req.Reason),
		Note:   req.Note,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	resp := CancelTripResponse{TripID: tripID, Type: string(result.Type)}
	if result.Passenger != nil {
		resp.Notified = result.Passenger.UUID
	}
	respondJSON(c, http.StatusOK, resp)
}

// EndTrip handles POST /v1/vip-trips/:id/end
func (h *VIPTripHandler) EndTrip(c *gin.Context) {
	tripID, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req EndTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.tripService.EndTrip(c.Request.Context(), req.DriverID, tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, EndTripResponse{
		Trip:    *result.StatusInfo,
		Summary: result.Summary,
	})
}

// GetTrip handles GET /v1/vip-trips/:id
func (h *VIPTripHandler) GetTrip(c *gin.Context) {
	tripID, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	detail, err := h.tripService.GetOne(c.Request.Context(), tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, TripDetailResponse{
		Trip:                   tripResponse(detail.Trip),
		PaymentMethod:          string(detail.VIPTrip.PaymentMethod),
		PickupLat:              detail.VIPTrip.PickupLat,
		PickupLng:              detail.VIPTrip.PickupLng,
		PickupDescription:      detail.VIPTrip.PickupDescription,
		DestinationLat:         detail.VIPTrip.DestinationLat,
		DestinationLng:         detail.VIPTrip.DestinationLng,
		DestinationDescription: detail.VIPTrip.DestinationDescription,
		Passenger:              detail.Passenger,
		CompletedTrips:         detail.CompletedTrips,
	})
}

// GetTripOffers handles GET /v1/vip-trips/:id/offers
func (h *VIPTripHandler) GetTripOffers(c *gin.Context) {
	tripID, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	offers, err := h.tripService.GetTripOffers(c.Request.Context(), tripID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, offers)
}

func tripResponse(trip *domain.Trip) TripResponse {
	resp := TripResponse{
		ID:        trip.ID,
		Status:    string(trip.Status),
		Type:      string(trip.Type),
		Gender:    trip.Gender,
		Features:  trip.Features,
		DriverID:  trip.DriverID,
		Price:     trip.Price,
		Distance:  trip.Distance,
		Discount:  trip.Discount,
		StartDate: trip.StartDate.UTC().Format(time.RFC3339),
	}
	if !trip.EndDate.IsZero() {
		resp.EndDate = trip.EndDate.UTC().Format(time.RFC3339)
	}
	return resp
}

// parseID reads the :id path parameter.
func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.ErrInvalidTripID
	}
	return id, nil
}
