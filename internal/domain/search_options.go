package domain

// ListScope selects which task statuses a listing includes
type ListScope int

const (
	ScopeAll ListScope = iota
	ScopeActive
	ScopeComplete
)

// Status returns the status the scope is restricted to, or nil for ScopeAll
func (s ListScope) Status() *Status {
	var status Status
	switch s {
	case ScopeActive:
		status = StatusActive
	case ScopeComplete:
		status = StatusComplete
	default:
		return nil
	}
	return &status
}

// String returns a short name for the scope
func (s ListScope) String() string {
	switch s {
	case ScopeActive:
		return "active"
	case ScopeComplete:
		return "complete"
	default:
		return "all"
	}
}

// SearchOptions represents criteria for listing task records.
// Cutoff is exclusive: only tasks started strictly after it match
type SearchOptions struct {
	Scope    ListScope
	Cutoff   int64
	Category *string
	Name     *string
}
