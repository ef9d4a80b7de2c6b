package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	SourceWhatsApp  = "WHATSAPP"
	SourceInstagram = "INSTAGRAM"
	SourceManual    = "MANUAL"
	SourceOther     = "OTHER"
)

const (
	CustomerActive   = "ACTIVE"
	CustomerInactive = "INACTIVE"
	CustomerBlocked  = "BLOCKED"
)

// Customer is a CRM contact. Email and phone are optional; ingestion
// matches customers by either of them.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Source    string    `json:"source"`
	Status    string    `json:"status"`
	Tags      []string  `json:"tags"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCustomer(name, email, phone, source string) *Customer {
	now := time.Now().UTC()
	return &Customer{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Source:    source,
		Status:    CustomerActive,
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CustomerPatch carries a partial customer update. Nil fields are left
// untouched; empty strings clear optional fields.
type CustomerPatch struct {
	Name    *string  `json:"name" validate:"omitempty,min=1"`
	Email   *string  `json:"email" validate:"omitempty"`
	Phone   *string  `json:"phone"`
	Company *string  `json:"company"`
	Source  *string  `json:"source"`
	Status  *string  `json:"status"`
	Tags    []string `json:"tags"`
	Notes   *string  `json:"notes"`
}

// SourceFromPlatform maps a message platform to a customer source.
// The UNKNOWN platform sentinel becomes OTHER.
func SourceFromPlatform(platform string) string {
	switch platform {
	case PlatformWhatsApp:
		return SourceWhatsApp
	case PlatformInstagram:
		return SourceInstagram
	case PlatformManual:
		return SourceManual
	default:
		return SourceOther
	}
}

// ParseCustomerStatus reports whether s names a valid customer status
// and returns its canonical form.
func ParseCustomerStatus(s string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case CustomerActive:
		return CustomerActive, true
	case CustomerInactive:
		return CustomerInactive, true
	case CustomerBlocked:
		return CustomerBlocked, true
	}
	return "", false
}

func ParseCustomerSource(s string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case SourceWhatsApp:
		return SourceWhatsApp, true
	case SourceInstagram:
		return SourceInstagram, true
	case SourceManual:
		return SourceManual, true
	case SourceOther:
		return SourceOther, true
	}
	return "", false
}
