package graph

// Next references the following step: either a declared task by name or an inline state.
type Next struct {
	Task  string `json:"task,omitempty" yaml:"task,omitempty"`
	State State  `json:"state,omitempty" yaml:"state,omitempty"`
}

// IsEmpty returns true when neither task nor state is referenced
func (n *Next) IsEmpty() bool {
	return n == nil || (n.Task == "" && n.State == nil)
}

// IsTask returns true for task name reference
func (n *Next) IsTask() bool {
	return n != nil && n.Task != "" && n.State == nil
}

// To references a declared task step
func To(task string) *Next {
	return &Next{Task: task}
}

// Inline references an inline state
func Inline(state State) *Next {
	return &Next{State: state}
}
