package graph

// Flow is a workflow source: a start reference plus the task steps it declares.
// Root workflows, parallel branches and map bodies are all flows.
type Flow struct {
	Name    string               `json:"name,omitempty" yaml:"name,omitempty"`
	StartAt *Next                `json:"startAt,omitempty" yaml:"startAt,omitempty"`
	Tasks   map[string]*TaskStep `json:"tasks,omitempty" yaml:"tasks,omitempty"`
}

// NewFlow creates a flow with the given name
func NewFlow(name string) *Flow {
	return &Flow{Name: name, Tasks: make(map[string]*TaskStep)}
}

// Task returns declared task step by name
func (f *Flow) Task(name string) (*TaskStep, bool) {
	if f == nil || f.Tasks == nil {
		return nil, false
	}
	task, ok := f.Tasks[name]
	return task, ok
}

// AddTask declares a task step, replacing any step with the same name
func (f *Flow) AddTask(task *TaskStep) *Flow {
	if f.Tasks == nil {
		f.Tasks = make(map[string]*TaskStep)
	}
	f.Tasks[task.Name] = task
	return f
}

// NewTask declares a new task step and returns it
func (f *Flow) NewTask(name string) *TaskStep {
	task := &TaskStep{Name: name}
	f.AddTask(task)
	return task
}

// WithStart sets the start reference
func (f *Flow) WithStart(next *Next) *Flow {
	f.StartAt = next
	return f
}
