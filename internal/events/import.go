package events

// Event type names for the import chain.
const (
	TypeImportPhase     = "import.phase"
	TypeImportProgress  = "import.progress"
	TypeImportLog       = "import.log"
	TypeImportCompleted = "import.completed"
	TypeImportFailed    = "import.failed"
)

// ImportPhaseChanged is emitted on every phase transition.
type ImportPhaseChanged struct {
	BaseEvent
	Phase string `json:"phase"`
}

// ImportProgress reports acquisition progress as a 0..1 fraction.
type ImportProgress struct {
	BaseEvent
	Fraction float64 `json:"fraction"`
}

// ImportLog is a human-readable log line tied to one import.
type ImportLog struct {
	BaseEvent
	Level   string `json:"level"` // "info", "warn", "error"
	Message string `json:"message"`
}

// ImportCompleted is emitted on any successful terminal state. Degraded
// marks a server-side placement whose record could not be confirmed.
type ImportCompleted struct {
	BaseEvent
	RecordID string `json:"record_id"`
	Degraded bool   `json:"degraded"`
}

// ImportFailed is emitted on the failed terminal state.
type ImportFailed struct {
	BaseEvent
	Reason string `json:"reason"`
}

// NewImportPhaseChanged builds a phase transition event for importID.
func NewImportPhaseChanged(importID, phase string) *ImportPhaseChanged {
	return &ImportPhaseChanged{BaseEvent: NewBaseEvent(TypeImportPhase, "import", importID), Phase: phase}
}

// NewImportProgress builds a progress event for importID.
func NewImportProgress(importID string, fraction float64) *ImportProgress {
	return &ImportProgress{BaseEvent: NewBaseEvent(TypeImportProgress, "import", importID), Fraction: fraction}
}

// NewImportLog builds a log event for importID.
func NewImportLog(importID, level, message string) *ImportLog {
	return &ImportLog{
		BaseEvent: NewBaseEvent(TypeImportLog, "import", importID),
		Level:     level, Message: message,
	}
}

// NewImportCompleted builds a completion event for importID.
func NewImportCompleted(importID, recordID string, degraded bool) *ImportCompleted {
	return &ImportCompleted{
		BaseEvent: NewBaseEvent(TypeImportCompleted, "import", importID),
		RecordID:  recordID, Degraded: degraded,
	}
}

// NewImportFailed builds a failure event for importID.
func NewImportFailed(importID, reason string) *ImportFailed {
	return &ImportFailed{
		BaseEvent: NewBaseEvent(TypeImportFailed, "import", importID),
		Reason:    reason,
	}
}
