package models

// EmailMessage is a single plain-text email handed to a notifier.
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
