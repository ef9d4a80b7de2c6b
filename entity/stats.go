package entity

// DashboardStats aggregates the counters shown on the dashboard
// landing page.
type DashboardStats struct {
	TotalCustomers  int            `json:"total_customers"`
	TotalMessages   int            `json:"total_messages"`
	TotalLeads      int            `json:"total_leads"`
	MessagesToday   int            `json:"messages_today"`
	AverageScore    float64        `json:"average_lead_score"`
	SentimentCounts map[string]int `json:"sentiment_counts"`
	LeadStatusCount map[string]int `json:"lead_status_counts"`
}
