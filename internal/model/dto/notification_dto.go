package dto

// ExpiryCheckResult summarizes one pass of the expiration scan.
type ExpiryCheckResult struct {
	TotalExpired         int `json:"totalExpired"`
	NotificationsCreated int `json:"notificationsCreated"`
}
