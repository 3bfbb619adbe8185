package launch

// Outcome is the result of one launch sequence run.
type Outcome int

const (
	OutcomeNotRun Outcome = iota
	OutcomeRegistered
	OutcomeProcessNotFound
	OutcomeAutomationUnavailable
	OutcomeObserveFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNotRun:
		return "not-run"
	case OutcomeRegistered:
		return "registered"
	case OutcomeProcessNotFound:
		return "process-not-found"
	case OutcomeAutomationUnavailable:
		return "automation-unavailable"
	case OutcomeObserveFailed:
		return "observe-failed"
	default:
		return "unknown"
	}
}

// MarshalText lets outcomes render by name in JSON and YAML.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
