package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Lead pipeline statuses, in order. The last two are terminal.
const (
	LeadNew         = "NEW"
	LeadContacted   = "CONTACTED"
	LeadQualified   = "QUALIFIED"
	LeadProposal    = "PROPOSAL"
	LeadNegotiation = "NEGOTIATION"
	LeadClosedWon   = "CLOSED_WON"
	LeadClosedLost  = "CLOSED_LOST"
)

type Lead struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id" validate:"required"`
	Score      int       `json:"score"`
	Status     string    `json:"status"`
	Source     string    `json:"source"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewLead(customerID string, score int, source, notes string) *Lead {
	now := time.Now().UTC()
	return &Lead{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Score:      ClampScore(score),
		Status:     LeadNew,
		Source:     source,
		Notes:      notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// LeadPatch carries a partial lead update. Nil fields are left
// untouched.
type LeadPatch struct {
	Score  *int    `json:"score"`
	Status *string `json:"status"`
	Source *string `json:"source"`
	Notes  *string `json:"notes"`
}

// ParseLeadStatus reports whether s names a pipeline status and
// returns its canonical form. Hyphens and spaces are treated as
// underscores, so "closed-won" and "closed won" both parse.
func ParseLeadStatus(s string) (string, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	switch normalized {
	case LeadNew, LeadContacted, LeadQualified, LeadProposal, LeadNegotiation, LeadClosedWon, LeadClosedLost:
		return normalized, true
	}
	return "", false
}

// IsTerminalLeadStatus reports whether the status ends the pipeline.
func IsTerminalLeadStatus(status string) bool {
	return status == LeadClosedWon || status == LeadClosedLost
}

// ClampScore forces a lead score into [0,100].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
