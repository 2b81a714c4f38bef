package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/agbru/pireduce/internal/partition"
)

// State is a coordinator lifecycle state.
type State int

const (
	Idle State = iota
	Spawning
	AwaitingCompletion
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Spawning:
		return "spawning"
	case AwaitingCompletion:
		return "awaiting-completion"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// EngineState is everything one invocation owns: its identity, the work
// specification, the partition and the coordinator state. It is built once
// per run and is not reusable.
type EngineState struct {
	RunID  string
	Spec   partition.WorkSpec
	Ranges []partition.Range

	state State
}

// NewEngineState validates the work specification and partitions it.
func NewEngineState(totalUnits, workerCount int) (*EngineState, error) {
	spec, err := partition.NewWorkSpec(totalUnits, workerCount)
	if err != nil {
		return nil, err
	}
	return &EngineState{
		RunID:  uuid.NewString(),
		Spec:   spec,
		Ranges: spec.Ranges(),
	}, nil
}

// State returns the current lifecycle state.
func (s *EngineState) State() State { return s.state }

var transitions = map[State][]State{
	Idle:               {Spawning},
	Spawning:           {AwaitingCompletion, Failed},
	AwaitingCompletion: {Done, Failed},
}

func (s *EngineState) transition(to State) error {
	for _, allowed := range transitions[s.state] {
		if allowed == to {
			s.state = to
			return nil
		}
	}
	return fmt.Errorf("invalid engine state transition %s -> %s", s.state, to)
}
