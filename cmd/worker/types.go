package main

// EscalationMessage is the payload sent from API -> SQS -> worker when a
// case escalates.
type EscalationMessage struct {
	EscalationID string `json:"escalation_id"`
	CaseID       string `json:"case_id"`
	CustomerID   string `json:"customer_id"`
}
