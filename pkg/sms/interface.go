package sms

import "context"

// Provider sends the dispatch notices (driver accepted, transfer completed) to
// an emergency's contact number. Selected by config; the noop provider keeps
// the feature off by default.
type Provider interface {
	SendSMS(ctx context.Context, request *Request) (*Response, error)
}

type Request struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Message string `json:"message"`
}

type Response struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}
