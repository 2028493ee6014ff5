package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"
)

type Meta struct {
	TraceID   string `json:"trace_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type ParkRequest struct {
	VehicleID string `json:"vehicle_id"`
	Category  string `json:"category"`
	Fuel      string `json:"fuel"`
	EntryGate string `json:"entry_gate"`
}

type ParkResponse struct {
	TicketID          string    `json:"ticket_id"`
	SlotID            string    `json:"slot_id"`
	Floor             int       `json:"floor"`
	ChargingAvailable bool      `json:"charging_available"`
	EntryTimestamp    time.Time `json:"entry_timestamp"`
}

type ExitRequest struct {
	VehicleID     string `json:"vehicle_id"`
	ExitGate      string `json:"exit_gate"`
	PaymentMethod string `json:"payment_method"`
}

type ExitResponse struct {
	BillID        string  `json:"bill_id"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
}

type QuoteResponse struct {
	VehicleID string  `json:"vehicle_id"`
	Amount    float64 `json:"amount"`
}

type TicketResponse struct {
	TicketID       string    `json:"ticket_id"`
	VehicleID      string    `json:"vehicle_id"`
	SlotID         string    `json:"slot_id"`
	Floor          int       `json:"floor"`
	EntryGate      string    `json:"entry_gate"`
	EntryTimestamp time.Time `json:"entry_timestamp"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func extractMeta(ctx context.Context) *Meta {
	meta := &Meta{}

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().HasTraceID() {
		meta.TraceID = span.SpanContext().TraceID().String()
	}

	if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
		meta.RequestID = reqID
	}

	return meta
}

func WriteSuccess(ctx context.Context, w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    extractMeta(ctx),
	})
}

func WriteError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Response{
		Success: false,
		Error:   message,
		Meta:    extractMeta(ctx),
	})
}
