package domain

// WorkflowState is a node in the signup state machine.
type WorkflowState string

const (
	StateIdle                 WorkflowState = "idle"
	StateSubmitting           WorkflowState = "submitting"
	StateAccountCreated       WorkflowState = "account_created"
	StateProfileEnsured       WorkflowState = "profile_ensured"
	StateApplicationSubmitted WorkflowState = "application_submitted"
	StateCompleted            WorkflowState = "completed"

	StateInvalid           WorkflowState = "invalid"
	StateBlocked           WorkflowState = "blocked"
	StateAccountFailed     WorkflowState = "account_failed"
	StateProfileFailed     WorkflowState = "profile_failed"
	StateApplicationFailed WorkflowState = "application_failed"
)

// Terminal reports whether the state ends a signup attempt.
func (s WorkflowState) Terminal() bool {
	switch s {
	case StateCompleted, StateInvalid, StateBlocked, StateAccountFailed, StateProfileFailed, StateApplicationFailed:
		return true
	}
	return false
}

// WorkflowOutcome is the single result handed back to the caller of a signup attempt.
// Failure outcomes carry a classified, human-readable message; the raw cause stays in Err.
type WorkflowOutcome struct {
	State             WorkflowState          `json:"state"`
	Role              string                 `json:"role"`
	AccountID         string                 `json:"account_id,omitempty"`
	ErrorKind         string                 `json:"error_kind,omitempty"`
	Message           string                 `json:"message"`
	Remediation       string                 `json:"remediation,omitempty"`
	RemediationLink   string                 `json:"remediation_link,omitempty"`
	RetryAfterSeconds int                    `json:"retry_after_seconds,omitempty"`
	Redirect          string                 `json:"redirect,omitempty"`
	Application       *InstructorApplication `json:"application,omitempty"`
	Trace             []WorkflowState        `json:"trace"`
	OrphanRecorded    bool                   `json:"-"`
	Err               error                  `json:"-"`
}

// Succeeded is true only for Completed.
func (o *WorkflowOutcome) Succeeded() bool { return o.State == StateCompleted }

// AccountUsable is true once the identity provider has created the account,
// whatever happened afterwards.
func (o *WorkflowOutcome) AccountUsable() bool { return o.AccountID != "" }

// Enter records a transition into s.
func (o *WorkflowOutcome) Enter(s WorkflowState) {
	o.State = s
	o.Trace = append(o.Trace, s)
}
