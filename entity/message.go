package entity

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	PlatformWhatsApp  = "WHATSAPP"
	PlatformInstagram = "INSTAGRAM"
	PlatformManual    = "MANUAL"
	PlatformUnknown   = "UNKNOWN"
)

const (
	DirectionInbound  = "INBOUND"
	DirectionOutbound = "OUTBOUND"
)

const (
	AnalysisPending   = "PENDING"
	AnalysisCompleted = "COMPLETED"
	AnalysisFailed    = "FAILED"
)

// Message is a single conversation entry tied to a customer. The
// enrichment fields (sentiment, lead score, intent, tags) stay nil
// until the analysis continuation has run; nil means "not yet
// analyzed", never "analyzed as empty".
type Message struct {
	ID             string          `json:"id"`
	CustomerID     string          `json:"customer_id"`
	Content        string          `json:"content"`
	Direction      string          `json:"direction"`
	Platform       string          `json:"platform"`
	Sentiment      *string         `json:"sentiment"`
	LeadScore      *int            `json:"lead_score"`
	Intent         *string         `json:"intent"`
	Tags           []string        `json:"tags"`
	AnalysisStatus string          `json:"analysis_status"`
	Metadata       json.RawMessage `json:"metadata,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func NewMessage(customerID, content, direction, platform string, metadata json.RawMessage) *Message {
	now := time.Now().UTC()
	return &Message{
		ID:             uuid.NewString(),
		CustomerID:     customerID,
		Content:        content,
		Direction:      direction,
		Platform:       platform,
		Tags:           []string{},
		AnalysisStatus: AnalysisPending,
		Metadata:       metadata,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// MessagePatch carries a manual message edit. Only content and
// metadata are editable; the enrichment fields belong to the analysis
// pipeline.
type MessagePatch struct {
	Content  *string         `json:"content" validate:"omitempty,min=1"`
	Metadata json.RawMessage `json:"metadata"`
}

// ParsePlatform maps an external platform string to its canonical
// form. Unrecognized values degrade to the UNKNOWN sentinel instead of
// failing, so malformed events are still ingested.
func ParsePlatform(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case PlatformWhatsApp:
		return PlatformWhatsApp
	case PlatformInstagram:
		return PlatformInstagram
	case PlatformManual:
		return PlatformManual
	default:
		return PlatformUnknown
	}
}

// ParseDirection maps a direction string to its canonical form,
// defaulting to INBOUND when unrecognized.
func ParseDirection(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case DirectionOutbound, "OUT", "OUTGOING":
		return DirectionOutbound
	default:
		return DirectionInbound
	}
}
