package models

import "time"

// Client is an authenticated portal client.
type Client struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone,omitempty"`
	Company  string `json:"company,omitempty"`
}

// PortalRegistration carries the fields needed to register a portal account.
type PortalRegistration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone,omitempty"`
	Company  string `json:"company,omitempty"`
}

// PortalSession maps a locally issued session token to the backend token it
// wraps. Cached in Redis with a TTL.
type PortalSession struct {
	Client        Client    `json:"client"`
	BackendToken  string    `json:"backendToken"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// PortalDashboard is the client dashboard summary.
type PortalDashboard struct {
	ActiveCases     int `json:"activeCases"`
	TotalCases      int `json:"totalCases"`
	UnreadMessages  int `json:"unreadMessages"`
	PendingInvoices int `json:"pendingInvoices"`
	PendingAmount   int `json:"pendingAmount"`
}

// PortalCase is a case summary as listed on the client dashboard.
type PortalCase struct {
	ID              string        `json:"id"`
	CaseNumber      string        `json:"case_number"`
	Title           string        `json:"title"`
	CaseType        string        `json:"case_type"`
	Status          string        `json:"status"`
	Progress        int           `json:"progress"`
	Priority        string        `json:"priority"`
	NextHearingDate string        `json:"next_hearing_date,omitempty"`
	Attorney        *CaseAttorney `json:"attorneys,omitempty"`
}

// CaseAttorney is the attorney assigned to a case.
type CaseAttorney struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	ImageURL    string `json:"image_url,omitempty"`
}
