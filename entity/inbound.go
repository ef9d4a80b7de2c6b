package entity

import "encoding/json"

// InboundEvent is the payload posted by the external automation tool
// to the webhook endpoint.
type InboundEvent struct {
	Platform string          `json:"platform" validate:"required"`
	Customer InboundCustomer `json:"customer" validate:"required"`
	Message  InboundMessage  `json:"message" validate:"required"`
}

type InboundCustomer struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type InboundMessage struct {
	Content   string          `json:"content" validate:"required"`
	Direction string          `json:"direction,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
}

// IngestResult identifies the rows touched by a webhook ingestion. The
// handler returns it before the enrichment continuation runs.
type IngestResult struct {
	CustomerID  string `json:"customer_id"`
	MessageID   string `json:"message_id"`
	NewCustomer bool   `json:"new_customer"`
}
