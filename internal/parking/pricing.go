package parking

import (
	"math"
	"time"
)

// Pricer computes the fare for a stay as of the given time.
type Pricer interface {
	Price(t *Ticket, now time.Time) float64
}

const (
	bikeBaseRate = 2.0
	carBaseRate  = 5.0
	autoBaseRate = 4.0
	busBaseRate  = 10.0

	smallSlotMultiplier  = 1.0
	mediumSlotMultiplier = 1.2
	largeSlotMultiplier  = 1.5

	evChargingRate = 3.0

	peakHourMultiplier = 1.5
	peakHourStart      = 9
	peakHourEnd        = 18

	minimumCharge = 1.0
)

// DynamicPricer applies the tiered fare model: per-category base rate, slot
// class multiplier, a peak surcharge fixed at entry time, an EV charging
// add-on outside the surcharge, and long-stay discounts on the combined
// total.
type DynamicPricer struct{}

func (p DynamicPricer) Price(t *Ticket, now time.Time) float64 {
	b := p.Breakdown(t, now)
	return b.Total
}

type PriceBreakdown struct {
	Hours              int64   `json:"hours"`
	BaseRate           float64 `json:"base_rate"`
	SlotMultiplier     float64 `json:"slot_multiplier"`
	PeakMultiplier     float64 `json:"peak_multiplier"`
	ParkingCost        float64 `json:"parking_cost"`
	ChargingCost       float64 `json:"charging_cost"`
	DiscountMultiplier float64 `json:"discount_multiplier"`
	Total              float64 `json:"total"`
}

func (p DynamicPricer) Breakdown(t *Ticket, now time.Time) PriceBreakdown {
	hours := billableHours(t, now)

	baseRate := baseRateFor(t.Vehicle.Category)
	slotMultiplier := slotMultiplierFor(t.Slot.Class)
	baseCost := baseRate * slotMultiplier * float64(hours)

	// Peak status comes from the entry hour only, even for multi-day stays.
	peakMultiplier := 1.0
	if isPeakHour(t.EntryTime.Hour()) {
		peakMultiplier = peakHourMultiplier
	}
	baseCost *= peakMultiplier

	chargingCost := 0.0
	if t.Vehicle.NeedsCharging() && t.Slot.ChargingAvailable {
		chargingCost = evChargingRate * float64(hours)
	}

	discount := longStayDiscount(hours)
	total := (baseCost + chargingCost) * discount

	if total < minimumCharge {
		total = minimumCharge
	}

	return PriceBreakdown{
		Hours:              hours,
		BaseRate:           baseRate,
		SlotMultiplier:     slotMultiplier,
		PeakMultiplier:     peakMultiplier,
		ParkingCost:        roundCents(baseCost),
		ChargingCost:       roundCents(chargingCost),
		DiscountMultiplier: discount,
		Total:              roundCents(total),
	}
}

// PerHourPricer is the flat alternative: hourly rate per category plus a
// fixed charging fee per stay. No slot multiplier, peak or discount tiers.
type PerHourPricer struct{}

const (
	bikeHourlyRate = 2.0
	carHourlyRate  = 4.0
	autoHourlyRate = 3.5
	busHourlyRate  = 8.0

	evChargingFee = 5.0
)

func (PerHourPricer) Price(t *Ticket, now time.Time) float64 {
	hours := billableHours(t, now)

	var rate float64
	switch t.Vehicle.Category {
	case Bike:
		rate = bikeHourlyRate
	case Car:
		rate = carHourlyRate
	case Auto:
		rate = autoHourlyRate
	case Bus:
		rate = busHourlyRate
	default:
		rate = carHourlyRate
	}

	total := rate * float64(hours)
	if t.Vehicle.NeedsCharging() && t.Slot.ChargingAvailable {
		total += evChargingFee
	}

	return roundCents(total)
}

// billableHours rounds partial hours up, with a one hour minimum.
func billableHours(t *Ticket, now time.Time) int64 {
	minutes := t.DurationMinutes(now)
	hours := (minutes + 59) / 60
	if hours < 1 {
		hours = 1
	}
	return hours
}

func baseRateFor(c VehicleCategory) float64 {
	switch c {
	case Bike:
		return bikeBaseRate
	case Car:
		return carBaseRate
	case Auto:
		return autoBaseRate
	case Bus:
		return busBaseRate
	}
	return carBaseRate
}

func slotMultiplierFor(c SlotClass) float64 {
	switch c {
	case Small:
		return smallSlotMultiplier
	case Medium:
		return mediumSlotMultiplier
	case Large:
		return largeSlotMultiplier
	}
	return mediumSlotMultiplier
}

func isPeakHour(hour int) bool {
	return hour >= peakHourStart && hour <= peakHourEnd
}

func longStayDiscount(hours int64) float64 {
	switch {
	case hours >= 24:
		return 0.8
	case hours >= 8:
		return 0.9
	}
	return 1.0
}

func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// RateTable is the static display of current rates.
type RateTable struct {
	BaseRates       map[VehicleCategory]float64 `json:"base_rates"`
	SlotMultipliers map[SlotClass]float64       `json:"slot_multipliers"`
	EVChargingRate  float64                     `json:"ev_charging_rate"`
	PeakMultiplier  float64                     `json:"peak_multiplier"`
	PeakWindow      [2]int                      `json:"peak_window"`
	MinimumCharge   float64                     `json:"minimum_charge"`
}

func CurrentRateTable() RateTable {
	return RateTable{
		BaseRates: map[VehicleCategory]float64{
			Bike: bikeBaseRate,
			Car:  carBaseRate,
			Auto: autoBaseRate,
			Bus:  busBaseRate,
		},
		SlotMultipliers: map[SlotClass]float64{
			Small:  smallSlotMultiplier,
			Medium: mediumSlotMultiplier,
			Large:  largeSlotMultiplier,
		},
		EVChargingRate: evChargingRate,
		PeakMultiplier: peakHourMultiplier,
		PeakWindow:     [2]int{peakHourStart, peakHourEnd},
		MinimumCharge:  minimumCharge,
	}
}
