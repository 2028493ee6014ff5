package parking

import "testing"

func TestVehicleCategorySizeUnits(t *testing.T) {
	cases := map[VehicleCategory]int{
		Bike: 1,
		Car:  2,
		Auto: 2,
		Bus:  4,
	}

	for category, expected := range cases {
		if got := category.SizeUnits(); got != expected {
			t.Errorf("Expected %s to have %d size units, got %d", category, expected, got)
		}
	}
}

func TestVehicleNeedsCharging(t *testing.T) {
	if NewVehicle("KA01AA0001", Car, Petrol).NeedsCharging() {
		t.Error("Expected petrol vehicle to not need charging")
	}
	if !NewVehicle("KA01AA0002", Car, Electric).NeedsCharging() {
		t.Error("Expected electric vehicle to need charging")
	}
	if !NewVehicle("KA01AA0003", Car, Hybrid).NeedsCharging() {
		t.Error("Expected hybrid vehicle to need charging")
	}
}

func TestParseVehicleCategory(t *testing.T) {
	if c, err := ParseVehicleCategory("car"); err != nil || c != Car {
		t.Errorf("Expected car to parse as CAR, got %v %v", c, err)
	}
	if c, err := ParseVehicleCategory(" BUS "); err != nil || c != Bus {
		t.Errorf("Expected BUS to parse, got %v %v", c, err)
	}
	if _, err := ParseVehicleCategory("truck"); err == nil {
		t.Error("Expected unknown category to fail")
	}
}

func TestParseFuelCategory(t *testing.T) {
	if f, err := ParseFuelCategory("electric"); err != nil || f != Electric {
		t.Errorf("Expected electric to parse, got %v %v", f, err)
	}
	if _, err := ParseFuelCategory("diesel"); err == nil {
		t.Error("Expected unknown fuel to fail")
	}
}

func TestParsePaymentMethod(t *testing.T) {
	if m, err := ParsePaymentMethod("upi"); err != nil || m != UPI {
		t.Errorf("Expected upi to parse, got %v %v", m, err)
	}
	if _, err := ParsePaymentMethod("cheque"); err == nil {
		t.Error("Expected unknown payment method to fail")
	}
}
