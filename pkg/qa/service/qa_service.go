package service

import (
	"context"

	"krishi/entities"
)

const (
	MsgNotConfigured = "LLM is not configured."
	MsgEmptyQuestion = "Please ask a question."
	MsgUnavailable   = "Sorry, I could not process your request at the moment."
)

// QAService always produces text for the farmer; failures become one of the
// Msg* replies.
type QAService interface {
	Answer(ctx context.Context, farmer *entities.Farmer, question string) string
}
