package dto

// TokenRequest is the request body for operator token issuance.
type TokenRequest struct {
	OperatorKey string `json:"operator_key" binding:"required"`
}

// TokenResponse is the response body for successful token issuance.
type TokenResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// LedgerListQuery is the query string for ledger inspection.
type LedgerListQuery struct {
	Status    string `form:"status"`
	EventType string `form:"event_type"`
	From      string `form:"from"` // RFC3339
	To        string `form:"to"`   // RFC3339
	Page      int    `form:"page,default=1" binding:"omitempty,gt=0"`
	PageSize  int    `form:"page_size,default=50" binding:"omitempty,gt=0,lte=200"`
}

// LedgerEntryResponse is one ledger row in inspection responses.
type LedgerEntryResponse struct {
	ID              string  `json:"id"`
	ExternalEventID string  `json:"external_event_id"`
	EventType       string  `json:"event_type"`
	Mode            string  `json:"mode"`
	SourceID        *string `json:"source_id,omitempty"`
	SourceType      string  `json:"source_type"`
	RequestStatus   string  `json:"request_status"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"created_at"`
	RespondedAt     *string `json:"responded_at,omitempty"`
}

// LedgerListResponse is the paged ledger inspection response.
type LedgerListResponse struct {
	Entries  []LedgerEntryResponse `json:"entries"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}

// JobResponse is one pending scheduled job in inspection responses.
type JobResponse struct {
	ID             string  `json:"id"`
	Hook           string  `json:"hook"`
	SubscriptionID string  `json:"subscription_id"`
	Attempt        int     `json:"attempt"`
	FireAt         string  `json:"fire_at"`
	LockedUntil    *string `json:"locked_until,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

// JobListResponse is the pending-jobs inspection response.
type JobListResponse struct {
	Jobs []JobResponse `json:"jobs"`
}
