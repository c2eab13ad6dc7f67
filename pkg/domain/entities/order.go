package entities

import (
	"fmt"
	"strings"
	"time"
)

// OrderID represents a production order number
type OrderID string

// ClosedStatusMarkers are the system status tokens of technically completed
// or closed orders. Matching is case-insensitive and by substring, since
// system status fields carry several space-separated tokens.
var ClosedStatusMarkers = []string{"TECO", "CLSD", "CLOSED", "COMPLETED"}

// IsClosedStatus reports whether a system status marks the order as closed
func IsClosedStatus(status string) bool {
	upper := strings.ToUpper(status)
	for _, marker := range ClosedStatusMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}

// ProductionOrder is one row of the production order extract
type ProductionOrder struct {
	ID       OrderID
	Material MaterialID
	DueDate  Value[time.Time]
	Status   string
	Quantity Value[float64]
	// DelayDays is only known when the extract carries an explicit delay column
	DelayDays Value[int]
}

// NewProductionOrder creates a validated ProductionOrder
func NewProductionOrder(
	id OrderID,
	material MaterialID,
	dueDate Value[time.Time],
	status string,
	quantity Value[float64],
) (*ProductionOrder, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("order id cannot be empty")
	}
	if q, ok := quantity.Get(); ok && q < 0 {
		return nil, fmt.Errorf("quantity cannot be negative, got %g", q)
	}

	return &ProductionOrder{
		ID:        id,
		Material:  material,
		DueDate:   dueDate,
		Status:    status,
		Quantity:  quantity,
		DelayDays: Missing[int](),
	}, nil
}

// IsClosed reports whether the order is technically completed or closed
func (o *ProductionOrder) IsClosed() bool {
	return IsClosedStatus(o.Status)
}

// IsLate reports whether an open order is past its due date
func (o *ProductionOrder) IsLate(today time.Time) bool {
	due, ok := o.DueDate.Get()
	if !ok || o.IsClosed() {
		return false
	}
	return Date(due).Before(Date(today))
}

// Date truncates t to midnight UTC of its calendar day
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from -> to, negative when
// to is before from.
func DaysBetween(from, to time.Time) int {
	return int(Date(to).Sub(Date(from)).Hours() / 24)
}
