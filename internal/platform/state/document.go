package state

import "time"

// Appointment statuses.
const (
	ApptScheduled = "Scheduled"
	ApptCompleted = "Completed"
	ApptCancelled = "Cancelled"
)

// Billing statuses.
const (
	BillingPaid   = "Paid"
	BillingUnpaid = "Unpaid"
)

// Patient is one registry entry. The ID is assigned on create and never
// changes afterwards.
type Patient struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Age   int    `json:"age"`
	Sex   string `json:"sex"`
}

// Doctor is one registry entry.
type Doctor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone"`
}

// Appointment links a patient and a doctor at a point in time. Either
// reference may dangle after the referenced record is deleted out from
// under it; projections render a placeholder in that case, and only
// cascade deletes clean dangling rows up.
type Appointment struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patientId"`
	DoctorID  string    `json:"doctorId"`
	Datetime  time.Time `json:"datetime"`
	Status    string    `json:"status"`
}

// BillingRecord is one invoice against a patient.
type BillingRecord struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patientId"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
}

// InventoryItem is one stock line. Expiry is an optional plain date string.
type InventoryItem struct {
	ID     string `json:"id"`
	Item   string `json:"item"`
	Qty    int    `json:"qty"`
	Expiry string `json:"expiry,omitempty"`
}

// Settings is the singleton clinic configuration embedded in the document.
type Settings struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// Document is the root structure holding every domain collection. It is the
// unit of persistence: each mutation rewrites the whole document.
type Document struct {
	Patients  []Patient       `json:"patients"`
	Doctors   []Doctor        `json:"doctors"`
	Appts     []Appointment   `json:"appts"`
	Billing   []BillingRecord `json:"billing"`
	Inventory []InventoryItem `json:"inventory"`
	Settings  Settings        `json:"settings"`
}

// DefaultDocument returns a fresh empty document with default settings.
func DefaultDocument() *Document {
	return &Document{
		Patients:  []Patient{},
		Doctors:   []Doctor{},
		Appts:     []Appointment{},
		Billing:   []BillingRecord{},
		Inventory: []InventoryItem{},
		Settings:  Settings{Name: "HealCare Clinic", Currency: "INR"},
	}
}

// Profile is one entry of the separately persisted patient-profile slot.
// The collection is written by the public signup flow and is read-only here.
type Profile struct {
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	DOB      string `json:"dob"`
	Gender   string `json:"gender"`
	District string `json:"district"`
	City     string `json:"city"`
	Email    string `json:"email"`
	Blood    string `json:"blood"`
}

// Feedback is one entry of the separately persisted feedback slot. Entries
// have no id of their own; the positional index is the deletion key.
type Feedback struct {
	User string `json:"user"`
	Text string `json:"text"`
	Date string `json:"date"`
}
