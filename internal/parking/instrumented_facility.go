package parking

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentedFacility wraps a Facility with tracing and metrics. Reads pass
// through; park, exit and quote get spans and counters.
type InstrumentedFacility struct {
	*Facility
	telemetry *TelemetryProvider

	parkOperations    metric.Int64Counter
	exitOperations    metric.Int64Counter
	occupancyGauge    metric.Int64UpDownCounter
	revenueTotal      metric.Float64Counter
	operationDuration metric.Float64Histogram
	totalSlotsGauge   metric.Int64UpDownCounter
}

func NewInstrumentedFacility(facility *Facility, telemetry *TelemetryProvider) (*InstrumentedFacility, error) {
	meter := telemetry.Meter()

	parkOperations, err := meter.Int64Counter("park_operations_total",
		metric.WithDescription("Total number of park operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	exitOperations, err := meter.Int64Counter("exit_operations_total",
		metric.WithDescription("Total number of exit operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	occupancyGauge, err := meter.Int64UpDownCounter("facility_occupancy",
		metric.WithDescription("Current number of occupied slots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	revenueTotal, err := meter.Float64Counter("parking_revenue_total",
		metric.WithDescription("Total revenue from paid bills"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	operationDuration, err := meter.Float64Histogram("operation_duration_seconds",
		metric.WithDescription("Duration of facility operations"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	totalSlotsGauge, err := meter.Int64UpDownCounter("facility_total_slots",
		metric.WithDescription("Total number of parking slots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	inf := &InstrumentedFacility{
		Facility:          facility,
		telemetry:         telemetry,
		parkOperations:    parkOperations,
		exitOperations:    exitOperations,
		occupancyGauge:    occupancyGauge,
		revenueTotal:      revenueTotal,
		operationDuration: operationDuration,
		totalSlotsGauge:   totalSlotsGauge,
	}

	totalSlotsGauge.Add(context.Background(), int64(facility.CapacitySummary().TotalSlots))

	return inf, nil
}

func (inf *InstrumentedFacility) Park(ctx context.Context, v *Vehicle, entryGateID string) (*Ticket, error) {
	tracer := inf.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "facility.park",
		trace.WithAttributes(
			attribute.String("vehicle.id", v.ID),
			attribute.String("vehicle.category", string(v.Category)),
			attribute.String("vehicle.fuel", string(v.Fuel)),
			attribute.String("gate.id", entryGateID),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("allocating_slot")

	ticket, err := inf.Facility.Park(v, entryGateID)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "park"),
		attribute.String("vehicle_category", string(v.Category)),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
		inf.parkOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	} else {
		labels = append(labels,
			attribute.String("status", "success"),
			attribute.String("slot_class", string(ticket.Slot.Class)),
		)
		span.SetAttributes(
			attribute.String("slot.id", ticket.Slot.ID),
			attribute.Int("slot.floor", ticket.Slot.Floor),
		)
		span.AddEvent("slot_occupied", trace.WithAttributes(
			attribute.String("slot_id", ticket.Slot.ID),
		))

		inf.parkOperations.Add(ctx, 1, metric.WithAttributes(labels...))
		inf.occupancyGauge.Add(ctx, 1)
	}

	inf.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return ticket, err
}

func (inf *InstrumentedFacility) Exit(ctx context.Context, vehicleID, exitGateID string, method PaymentMethod) (*Bill, error) {
	tracer := inf.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "facility.exit",
		trace.WithAttributes(
			attribute.String("vehicle.id", vehicleID),
			attribute.String("gate.id", exitGateID),
			attribute.String("payment.method", string(method)),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("pricing_stay")

	bill, err := inf.Facility.Exit(vehicleID, exitGateID, method)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "exit"),
		attribute.String("payment_method", string(method)),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
	} else {
		labels = append(labels, attribute.String("status", "success"))
		span.SetAttributes(
			attribute.String("bill.id", bill.ID),
			attribute.Float64("bill.amount", bill.Amount),
		)
		span.AddEvent("slot_released")

		inf.occupancyGauge.Add(ctx, -1)
		inf.revenueTotal.Add(ctx, bill.Amount, metric.WithAttributes(
			attribute.String("payment_method", string(method)),
		))
	}

	inf.exitOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	inf.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return bill, err
}

func (inf *InstrumentedFacility) Quote(ctx context.Context, vehicleID string) (float64, error) {
	tracer := inf.telemetry.Tracer()
	_, span := tracer.Start(ctx, "facility.quote",
		trace.WithAttributes(attribute.String("vehicle.id", vehicleID)))
	defer span.End()

	amount, err := inf.Facility.Quote(vehicleID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	span.SetAttributes(attribute.Float64("quote.amount", amount))
	return amount, nil
}
