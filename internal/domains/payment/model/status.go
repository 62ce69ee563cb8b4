package model

import (
	"fmt"
	"slices"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusRefunded   Status = "refunded"
	StatusCanceled   Status = "canceled"
)

var statuses = []Status{StatusPending, StatusProcessing, StatusCompleted, StatusFailed, StatusRefunded, StatusCanceled}

func (s Status) IsValid() bool {
	return slices.Contains(statuses, s)
}

func (s Status) String() string {
	return string(s)
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid payment status: %s", s)
	}

	return status, nil
}

// IntentStatus mirrors the provider intent state, except that the provider's
// "canceled" is stored as "cancelled".
type IntentStatus string

const (
	IntentStatusRequiresPaymentMethod IntentStatus = "requires_payment_method"
	IntentStatusRequiresConfirmation  IntentStatus = "requires_confirmation"
	IntentStatusRequiresAction        IntentStatus = "requires_action"
	IntentStatusProcessing            IntentStatus = "processing"
	IntentStatusRequiresCapture       IntentStatus = "requires_capture"
	IntentStatusCancelled             IntentStatus = "cancelled"
	IntentStatusSucceeded             IntentStatus = "succeeded"
)

func IntentStatusFromProvider(status string) IntentStatus {
	if status == "canceled" {
		return IntentStatusCancelled
	}

	return IntentStatus(status)
}

func (s IntentStatus) IsTerminal() bool {
	return s == IntentStatusSucceeded || s == IntentStatusCancelled
}

func (s IntentStatus) String() string {
	return string(s)
}
