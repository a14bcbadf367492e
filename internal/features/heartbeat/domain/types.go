package domain

import (
	"net/http"
	"time"
)

// Outcome is the backend reachability derived from one status post
type Outcome string

// Outcomes
const (
	OutcomeOnline  Outcome = "online"
	OutcomeOffline Outcome = "offline"
	OutcomeUnknown Outcome = "unknown"
)

// State is the reporter lifecycle state
type State string

// Reporter states
const (
	StateIdle      State = "idle"
	StateReporting State = "reporting"
	StateStopped   State = "stopped"
)

// Station statuses accepted by the backend
const (
	StatusWaiting = "EN_ESPERA"
	StatusTesting = "EN_PRUEBAS"
)

// DefaultPath is the backend endpoint that receives the status
const DefaultPath = "F1_ConfiguracionInicial/EstadoSID"

// AllowedStatuses lists the statuses a reporter may send
var AllowedStatuses = []string{StatusWaiting, StatusTesting}

// StatusPayload is the body of a status post
type StatusPayload struct {
	Status string `json:"estado"`
}

// Report is the result of one status post
type Report struct {
	At         time.Time `json:"at"`
	Status     string    `json:"status"`
	Outcome    Outcome   `json:"outcome"`
	StatusCode int       `json:"statusCode,omitempty"`
	TimedOut   bool      `json:"timedOut,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// Classify maps a response status code to an outcome
func Classify(statusCode int) Outcome {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return OutcomeOnline
	case statusCode == http.StatusBadRequest, statusCode == http.StatusInternalServerError:
		return OutcomeOffline
	default:
		return OutcomeUnknown
	}
}

// IsAllowedStatus reports whether status may be sent
func IsAllowedStatus(status string) bool {
	for _, allowed := range AllowedStatuses {
		if status == allowed {
			return true
		}
	}
	return false
}
