package parking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Ticket struct {
	ID          string
	Vehicle     *Vehicle
	Slot        *Slot
	EntryTime   time.Time
	EntryGateID string
}

func NewTicket(v *Vehicle, s *Slot, entryGateID string, entryTime time.Time) *Ticket {
	return &Ticket{
		ID:          uuid.New().String(),
		Vehicle:     v,
		Slot:        s,
		EntryTime:   entryTime,
		EntryGateID: entryGateID,
	}
}

// DurationMinutes is the elapsed stay in whole minutes as of now.
func (t *Ticket) DurationMinutes(now time.Time) int64 {
	return int64(now.Sub(t.EntryTime).Minutes())
}

type PaymentMethod string

const (
	Cash PaymentMethod = "CASH"
	Card PaymentMethod = "CARD"
	UPI  PaymentMethod = "UPI"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToUpper(strings.TrimSpace(s))) {
	case Cash:
		return Cash, nil
	case Card:
		return Card, nil
	case UPI:
		return UPI, nil
	}
	return "", fmt.Errorf("unknown payment method: %q", s)
}

type Bill struct {
	ID            string
	Ticket        *Ticket
	ExitTime      time.Time
	Amount        float64
	PaymentMethod PaymentMethod
	Paid          bool
	ExitGateID    string
}

func NewBill(t *Ticket, amount float64, exitGateID string, exitTime time.Time) *Bill {
	return &Bill{
		ID:         uuid.New().String(),
		Ticket:     t,
		Amount:     amount,
		ExitTime:   exitTime,
		ExitGateID: exitGateID,
	}
}

// PaymentProcessor confirms payment for a bill. Returning an error leaves
// the stay active; the default processor approves everything.
type PaymentProcessor func(b *Bill, method PaymentMethod) error

func AcceptAllPayments(b *Bill, method PaymentMethod) error {
	return nil
}
