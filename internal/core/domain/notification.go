package domain

import "time"

// Notification kinds.
const (
	NotifyWelcome              = "welcome"
	NotifyApplicationReceived  = "application_received"
	NotifyApplicationSubmitted = "application_submitted"
	NotifyStatusChanged        = "application_status_changed"
)

// Notification is an email-style message addressed to one account.
type Notification struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
