package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"

	"parking-facility/internal/logging"
	"parking-facility/internal/parking"
)

func getServiceName() string {
	if name := os.Getenv("OTEL_SERVICE_NAME"); name != "" {
		return name
	}
	return "parking-facility-service"
}

type Handler struct {
	facility *parking.InstrumentedFacility
}

func NewHandler(facility *parking.InstrumentedFacility) *Handler {
	return &Handler{facility: facility}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: getServiceName(),
	})
}

func (h *Handler) Park(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ParkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.VehicleID == "" || req.EntryGate == "" {
		WriteError(ctx, w, http.StatusBadRequest, "vehicle_id and entry_gate are required")
		return
	}

	category, err := parking.ParseVehicleCategory(req.Category)
	if err != nil {
		WriteError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	fuel, err := parking.ParseFuelCategory(req.Fuel)
	if err != nil {
		WriteError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	vehicle := parking.NewVehicle(strings.ToUpper(req.VehicleID), category, fuel)
	ticket, err := h.facility.Park(ctx, vehicle, req.EntryGate)
	if err != nil {
		h.writeFacilityError(ctx, w, err)
		return
	}

	WriteSuccess(ctx, w, "Vehicle parked", ParkResponse{
		TicketID:          ticket.ID,
		SlotID:            ticket.Slot.ID,
		Floor:             ticket.Slot.Floor,
		ChargingAvailable: ticket.Slot.ChargingAvailable,
		EntryTimestamp:    ticket.EntryTime,
	})
}

func (h *Handler) Exit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ExitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.VehicleID == "" || req.ExitGate == "" {
		WriteError(ctx, w, http.StatusBadRequest, "vehicle_id and exit_gate are required")
		return
	}

	method, err := parking.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		WriteError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	bill, err := h.facility.Exit(ctx, strings.ToUpper(req.VehicleID), req.ExitGate, method)
	if err != nil {
		h.writeFacilityError(ctx, w, err)
		return
	}

	WriteSuccess(ctx, w, "Vehicle exited", ExitResponse{
		BillID:        bill.ID,
		Amount:        bill.Amount,
		PaymentMethod: string(bill.PaymentMethod),
	})
}

func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vehicleID := strings.ToUpper(chi.URLParam(r, "vehicleID"))
	if vehicleID == "" {
		WriteError(ctx, w, http.StatusBadRequest, "vehicleID is required")
		return
	}

	amount, err := h.facility.Quote(ctx, vehicleID)
	if err != nil {
		h.writeFacilityError(ctx, w, err)
		return
	}

	WriteSuccess(ctx, w, "Fare quoted", QuoteResponse{
		VehicleID: vehicleID,
		Amount:    amount,
	})
}

func (h *Handler) Ticket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vehicleID := strings.ToUpper(chi.URLParam(r, "vehicleID"))
	if vehicleID == "" {
		WriteError(ctx, w, http.StatusBadRequest, "vehicleID is required")
		return
	}

	ticket, err := h.facility.TicketFor(vehicleID)
	if err != nil {
		h.writeFacilityError(ctx, w, err)
		return
	}

	WriteSuccess(ctx, w, "Ticket found", TicketResponse{
		TicketID:       ticket.ID,
		VehicleID:      ticket.Vehicle.ID,
		SlotID:         ticket.Slot.ID,
		Floor:          ticket.Slot.Floor,
		EntryGate:      ticket.EntryGateID,
		EntryTimestamp: ticket.EntryTime,
	})
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	WriteSuccess(ctx, w, "Capacity summary", h.facility.CapacitySummary())
}

func (h *Handler) Rates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	WriteSuccess(ctx, w, "Current rates", parking.CurrentRateTable())
}

func (h *Handler) writeFacilityError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, parking.ErrUnknownGate),
		errors.Is(err, parking.ErrNoActiveTicket),
		errors.Is(err, parking.ErrUnknownSlot):
		WriteError(ctx, w, http.StatusNotFound, err.Error())
	case errors.Is(err, parking.ErrAlreadyParked):
		WriteError(ctx, w, http.StatusConflict, err.Error())
	case errors.Is(err, parking.ErrNoSlotAvailable):
		WriteError(ctx, w, http.StatusConflict, err.Error())
	case errors.Is(err, parking.ErrPaymentFailed):
		WriteError(ctx, w, http.StatusPaymentRequired, err.Error())
	default:
		logging.Error(ctx).Err(err).Msg("facility operation failed")
		WriteError(ctx, w, http.StatusInternalServerError, "Internal error")
	}
}
