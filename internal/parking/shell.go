package parking

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Shell is the interactive command loop over an instrumented facility. Every
// command runs in its own span.
type Shell struct {
	facility  *InstrumentedFacility
	scanner   *bufio.Scanner
	telemetry *TelemetryProvider
}

func NewShell(facility *InstrumentedFacility, telemetry *TelemetryProvider) *Shell {
	return &Shell{
		facility:  facility,
		scanner:   bufio.NewScanner(os.Stdin),
		telemetry: telemetry,
	}
}

func (s *Shell) Run(ctx context.Context) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.run")
	defer span.End()

	span.AddEvent("shell_started")

	for {
		if !s.scanner.Scan() {
			break
		}

		input := strings.TrimSpace(s.scanner.Text())
		if input == "" {
			continue
		}

		cmdCtx, cmdSpan := tracer.Start(ctx, "shell.process_command",
			trace.WithAttributes(attribute.String("command.input", input)))

		s.processCommand(cmdCtx, input)
		cmdSpan.End()
	}

	span.AddEvent("shell_ended")
}

func (s *Shell) processCommand(ctx context.Context, input string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "park":
		s.handlePark(ctx, parts)
	case "exit":
		s.handleExit(ctx, parts)
	case "quote":
		s.handleQuote(ctx, parts)
	case "ticket":
		s.handleTicket(parts)
	case "status":
		s.handleStatus()
	case "rates":
		s.handleRates()
	case "help":
		s.printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", parts[0])
		s.printUsage()
	}
}

func (s *Shell) printUsage() {
	fmt.Println("Commands:")
	fmt.Println("  park <vehicle_no> <category> <fuel> <entry_gate>")
	fmt.Println("  exit <vehicle_no> <exit_gate> <payment_method>")
	fmt.Println("  quote <vehicle_no>")
	fmt.Println("  ticket <vehicle_no>")
	fmt.Println("  status")
	fmt.Println("  rates")
}

func (s *Shell) handlePark(ctx context.Context, parts []string) {
	if len(parts) != 5 {
		fmt.Println("Usage: park <vehicle_no> <category> <fuel> <entry_gate>")
		return
	}

	category, err := ParseVehicleCategory(parts[2])
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	fuel, err := ParseFuelCategory(parts[3])
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	vehicle := NewVehicle(strings.ToUpper(parts[1]), category, fuel)
	ticket, err := s.facility.Park(ctx, vehicle, parts[4])
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	fmt.Printf("Ticket %s: slot %s on floor %d (charging: %t)\n",
		ticket.ID, ticket.Slot.ID, ticket.Slot.Floor, ticket.Slot.ChargingAvailable)
}

func (s *Shell) handleExit(ctx context.Context, parts []string) {
	if len(parts) != 4 {
		fmt.Println("Usage: exit <vehicle_no> <exit_gate> <payment_method>")
		return
	}

	method, err := ParsePaymentMethod(parts[3])
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	bill, err := s.facility.Exit(ctx, strings.ToUpper(parts[1]), parts[2], method)
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	fmt.Printf("Bill %s: $%.2f paid by %s\n", bill.ID, bill.Amount, bill.PaymentMethod)
}

func (s *Shell) handleQuote(ctx context.Context, parts []string) {
	if len(parts) != 2 {
		fmt.Println("Usage: quote <vehicle_no>")
		return
	}

	amount, err := s.facility.Quote(ctx, strings.ToUpper(parts[1]))
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	fmt.Printf("Current fare: $%.2f\n", amount)
}

func (s *Shell) handleTicket(parts []string) {
	if len(parts) != 2 {
		fmt.Println("Usage: ticket <vehicle_no>")
		return
	}

	ticket, err := s.facility.TicketFor(strings.ToUpper(parts[1]))
	if err != nil {
		fmt.Println("Not found")
		return
	}

	fmt.Printf("Ticket %s: vehicle %s, slot %s, entered %s via %s\n",
		ticket.ID, ticket.Vehicle.ID, ticket.Slot.ID,
		ticket.EntryTime.Format("15:04:05"), ticket.EntryGateID)
}

func (s *Shell) handleStatus() {
	summary := s.facility.CapacitySummary()

	fmt.Printf("Total: %d, Available: %d, Occupied: %d\n",
		summary.TotalSlots, summary.Available, summary.Occupied)
	for _, floor := range summary.PerFloor {
		fmt.Printf("Floor %d: %d/%d available\n", floor.Floor, floor.Available, floor.Total)
	}
}

func (s *Shell) handleRates() {
	rates := CurrentRateTable()

	fmt.Println("Base rates per hour:")
	for _, c := range []VehicleCategory{Bike, Car, Auto, Bus} {
		fmt.Printf("  %s: $%.2f\n", c, rates.BaseRates[c])
	}
	fmt.Println("Slot multipliers:")
	for _, c := range []SlotClass{Small, Medium, Large} {
		fmt.Printf("  %s: x%.1f\n", c, rates.SlotMultipliers[c])
	}
	fmt.Printf("EV charging: $%.2f/hour\n", rates.EVChargingRate)
	fmt.Printf("Peak hours %02d:00-%02d:59: x%.1f\n", rates.PeakWindow[0], rates.PeakWindow[1], rates.PeakMultiplier)
	fmt.Printf("Minimum charge: $%.2f\n", rates.MinimumCharge)
}
