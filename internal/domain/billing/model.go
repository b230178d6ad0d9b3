package billing

import "time"

type Status string

const (
	StatusPending Status = "Pending"
	StatusDue     Status = "Due"
	StatusPaid    Status = "Paid"
)

// ValidStatus reports whether s is a supported invoice status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusDue, StatusPaid:
		return true
	}
	return false
}

type PaymentMethod string

const (
	MethodCash       PaymentMethod = "Cash"
	MethodCard       PaymentMethod = "Card"
	MethodUPI        PaymentMethod = "UPI"
	MethodNetBanking PaymentMethod = "Net Banking"
	MethodCheque     PaymentMethod = "Cheque"
)

// ValidMethod reports whether m is a supported payment method.
func ValidMethod(m PaymentMethod) bool {
	switch m {
	case MethodCash, MethodCard, MethodUPI, MethodNetBanking, MethodCheque:
		return true
	}
	return false
}

// Invoice aggregates the billed tests for one patient. Pending and Due
// are both unpaid states; Paid is terminal for the modeled flow. The
// invoice is a status flag, not a ledger: marking it paid does not verify
// collection.
type Invoice struct {
	ID            string        `json:"id"`
	PatientID     string        `json:"patientId"`
	Tests         []string      `json:"tests"`
	TotalAmount   float64       `json:"totalAmount"`
	Status        Status        `json:"status"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// Update carries the fields a caller may change outside the payment
// workflow. Nil means "leave as is".
type Update struct {
	Tests       *[]string `json:"tests"`
	TotalAmount *float64  `json:"totalAmount"`
	Status      *Status   `json:"status"`
}
