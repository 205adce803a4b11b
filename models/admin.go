package models

// AdminStats is the dashboard headline summary.
type AdminStats struct {
	TotalConsultations   int `json:"totalConsultations"`
	PendingConsultations int `json:"pendingConsultations"`
	TotalPayments        int `json:"totalPayments"`
	TotalRevenue         int `json:"totalRevenue"`
	TotalUsers           int `json:"totalUsers"`
	FreeConsultations    int `json:"freeConsultations"`
}

// AdminConsultation is a consultation row in the admin listing.
type AdminConsultation struct {
	ID               string `json:"id"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	PracticeArea     string `json:"practice_area"`
	ConsultationType string `json:"consultation_type"`
	Status           string `json:"status"`
	PreferredDate    string `json:"preferred_date"`
	PreferredTime    string `json:"preferred_time"`
	Message          string `json:"message"`
	IsFree           bool   `json:"is_free"`
	CreatedAt        string `json:"created_at"`
}

// AdminPayment is a payment row in the admin listing.
type AdminPayment struct {
	ID            string `json:"id"`
	TransactionID string `json:"transaction_id"`
	Amount        int    `json:"amount"`
	PaymentMethod string `json:"payment_method"`
	Status        string `json:"status"`
	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email"`
	CreatedAt     string `json:"created_at"`
}

// AdminUser is a contact row in the admin listing, with usage history.
type AdminUser struct {
	ID                   string `json:"id"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	FreeConsultationUsed bool   `json:"free_consultation_used"`
	TotalConsultations   int    `json:"total_consultations"`
	TotalPaid            int    `json:"total_paid"`
	CreatedAt            string `json:"created_at"`
}

// AdminAnalytics is the time-series data behind the dashboard charts.
type AdminAnalytics struct {
	Days           int            `json:"days"`
	Consultations  map[string]int `json:"consultations"`
	Revenue        map[string]int `json:"revenue"`
	ByPracticeArea map[string]int `json:"byPracticeArea"`
}

// AdminFilters narrows an admin listing. Zero values mean "no filter"; the
// backend interprets the set, this server only forwards it.
type AdminFilters struct {
	Status       string `json:"status,omitempty"`
	Type         string `json:"type,omitempty"`
	PracticeArea string `json:"practiceArea,omitempty"`
	Method       string `json:"method,omitempty"`
	FreeUsed     string `json:"freeUsed,omitempty"`
	DateFrom     string `json:"dateFrom,omitempty"`
	DateTo       string `json:"dateTo,omitempty"`
	Search       string `json:"search,omitempty"`
	Days         int    `json:"days,omitempty"`

	ConsultationID string `json:"consultationId,omitempty"`
	NewStatus      string `json:"newStatus,omitempty"`
}
