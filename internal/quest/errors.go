package quest

import "errors"

// Sentinel errors returned by the engine. Callers discriminate with
// errors.Is; messages are wrapped with quest context at the call site.
var (
	// ErrNotFound indicates an unknown quest ID, objective ID, branch
	// name, or a missing progress record.
	ErrNotFound = errors.New("not found")

	// ErrRequirementsNotMet indicates a start or branch selection was
	// attempted without satisfying the requirement gate.
	ErrRequirementsNotMet = errors.New("requirements not met")

	// ErrInvalidTransition indicates an operation illegal for the quest's
	// current status, such as abandoning a quest that is not in progress.
	ErrInvalidTransition = errors.New("invalid transition")
)
