package entity

// DashboardSnapshot holds the derived statistics shown on the dashboard.
// It is recomputed on every request and never persisted.
type DashboardSnapshot struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TransactionsToday int     `json:"transactionsToday"`
	ActiveCustomers   int     `json:"activeCustomers"`
	CashOnHand        float64 `json:"cashOnHand"`
}
