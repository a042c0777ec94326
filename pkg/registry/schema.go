// pkg/registry/schema.go
package registry

import "time"

// Implementation statuses an activity may carry.
const (
	StatusImplemented = "implemented"
	StatusPlanned     = "planned"
	StatusDeprecated  = "deprecated"
)

// ActivityRegistry is the catalogue of BPMN service tasks the workers serve. Process models and
// workers both read their task types and input contracts from it.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity describes one service task: its Zeebe job type, the JSON schema its variables must
// satisfy and the BPMN error codes it may throw.
type Activity struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Version              string                 `json:"version"`
	TaskType             string                 `json:"taskType"`
	ImplementationStatus string                 `json:"implementationStatus"`
	InputSchema          map[string]interface{} `json:"inputSchema"`
	OutputSchema         map[string]interface{} `json:"outputSchema"`
	ErrorCodes           []string               `json:"errorCodes"`
	Timeout              string                 `json:"timeout"`
	Retries              int                    `json:"retries"`
	Workflows            []string               `json:"workflows,omitempty"`
	Tags                 []string               `json:"tags,omitempty"`
}

// Throws reports whether code is one of the activity's declared BPMN errors.
func (a Activity) Throws(code string) bool {
	for _, c := range a.ErrorCodes {
		if c == code {
			return true
		}
	}
	return false
}

// TimeoutDuration parses Timeout, falling back to def when it is empty or malformed.
func (a Activity) TimeoutDuration(def time.Duration) time.Duration {
	d, err := time.ParseDuration(a.Timeout)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func validStatus(s string) bool {
	switch s {
	case StatusImplemented, StatusPlanned, StatusDeprecated:
		return true
	}
	return false
}
