package plan

// Status tracks a module through the build pipeline. Transitions only
// move forward; a validation or render failure halts the whole graph.
type Status int

const (
	// StatusPending means the module is validated and waiting on its
	// dependencies.
	StatusPending Status = iota
	// StatusRunning means a worker is rendering or emitting the module.
	StatusRunning
	// StatusBuilt is the terminal success state: the artifact was emitted.
	StatusBuilt
	// StatusFailed means rendering or emission failed.
	StatusFailed
	// StatusSkipped means an upstream module failed, so this one was
	// never processed.
	StatusSkipped
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusBuilt:
		return "built"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}
