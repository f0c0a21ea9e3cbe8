package models

import "time"

// ResidentRef holds the identity columns joined from the residents table.
type ResidentRef struct {
	HouseholdName string `json:"householdName"`
	HouseBlock    string `json:"houseBlock"`
	Email         string `json:"email"`
}

// PaymentRecord is one submitted dues payment as read back for the list views.
// Resident is nil when the join finds no resident row, and PaymentType is nil for
// rows written before the payment_type column existed.
type PaymentRecord struct {
	ID          int64        `json:"id"`
	ResidentID  string       `json:"residentId"`
	Resident    *ResidentRef `json:"resident,omitempty"`
	Month       string       `json:"month"`
	Year        string       `json:"year"`
	PaymentType *string      `json:"paymentType,omitempty"`
	Status      string       `json:"status"`
	ProofURL    string       `json:"proofUrl,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// IsPaid reports whether the stored status is the paid value.
func (p PaymentRecord) IsPaid() bool {
	return p.Status == StatusPaid
}

// StringPtr is a small helper for optional columns.
func StringPtr(s string) *string {
	return &s
}
