package adminclient

import (
	"errors"
	"time"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarn    Severity = "warn"
	SeverityError   Severity = "error"
)

const (
	SuccessLife = 3 * time.Second
	ErrorLife   = 5 * time.Second
)

// Notification is a toast message describing the outcome of one action.
type Notification struct {
	Severity Severity      `json:"severity"`
	Summary  string        `json:"summary"`
	Detail   string        `json:"detail"`
	Life     time.Duration `json:"life"`
}

func (n Notification) OK() bool { return n.Severity != SeverityError }

func successNotice(detail string) Notification {
	return Notification{Severity: SeveritySuccess, Summary: "Success", Detail: detail, Life: SuccessLife}
}

// errorNotice surfaces the backend's detail when err came from the API.
func errorNotice(err error) Notification {
	detail := err.Error()
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		detail = apiErr.Detail
	}
	return Notification{Severity: SeverityError, Summary: "Error", Detail: detail, Life: ErrorLife}
}
