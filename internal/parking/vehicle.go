package parking

import (
	"fmt"
	"strings"
)

type VehicleCategory string

const (
	Bike VehicleCategory = "BIKE"
	Car  VehicleCategory = "CAR"
	Auto VehicleCategory = "AUTO"
	Bus  VehicleCategory = "BUS"
)

// SizeUnits is the amount of slot capacity the category consumes.
func (c VehicleCategory) SizeUnits() int {
	switch c {
	case Bike:
		return 1
	case Car, Auto:
		return 2
	case Bus:
		return 4
	}
	return 0
}

func ParseVehicleCategory(s string) (VehicleCategory, error) {
	switch VehicleCategory(strings.ToUpper(strings.TrimSpace(s))) {
	case Bike:
		return Bike, nil
	case Car:
		return Car, nil
	case Auto:
		return Auto, nil
	case Bus:
		return Bus, nil
	}
	return "", fmt.Errorf("unknown vehicle category: %q", s)
}

type FuelCategory string

const (
	Petrol   FuelCategory = "PETROL"
	Electric FuelCategory = "ELECTRIC"
	Hybrid   FuelCategory = "HYBRID"
)

func ParseFuelCategory(s string) (FuelCategory, error) {
	switch FuelCategory(strings.ToUpper(strings.TrimSpace(s))) {
	case Petrol:
		return Petrol, nil
	case Electric:
		return Electric, nil
	case Hybrid:
		return Hybrid, nil
	}
	return "", fmt.Errorf("unknown fuel category: %q", s)
}

type Vehicle struct {
	ID       string
	Category VehicleCategory
	Fuel     FuelCategory
}

func NewVehicle(id string, category VehicleCategory, fuel FuelCategory) *Vehicle {
	return &Vehicle{
		ID:       id,
		Category: category,
		Fuel:     fuel,
	}
}

func (v *Vehicle) NeedsCharging() bool {
	return v.Fuel == Electric || v.Fuel == Hybrid
}
