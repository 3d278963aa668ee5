package scheduler

// Task is the scheduler's view of an asynchronously running match: a
// non-blocking finished poll and a blocking join. The scheduler never
// learns whether a task succeeded, only that it ended.
type Task interface {
	Finished() bool
	Join()
}

// slotState tags the lifecycle of one execution slot.
type slotState int

const (
	slotEmpty slotState = iota
	slotRunning
	slotFinished
)

// slotTable is the fixed-size table of execution slots. It is bookkeeping
// only: it is touched exclusively by the scheduler's control loop, and
// tasks report completion through their own finished signal rather than by
// mutating the table, so no lock is needed here.
type slotTable struct {
	tasks []Task
}

func newSlotTable(n int) *slotTable {
	return &slotTable{tasks: make([]Task, n)}
}

func (st *slotTable) size() int {
	return len(st.tasks)
}

// state returns the slot's current lifecycle tag.
func (st *slotTable) state(i int) slotState {
	switch {
	case st.tasks[i] == nil:
		return slotEmpty
	case st.tasks[i].Finished():
		return slotFinished
	default:
		return slotRunning
	}
}

// reusable reports whether a new task may be assigned to the slot.
func (st *slotTable) reusable(i int) bool {
	return st.state(i) != slotRunning
}

// assign puts a task in a slot, releasing any finished task that held it.
// Assigning over a running task is a bug in the control loop.
func (st *slotTable) assign(i int, t Task) {
	if st.state(i) == slotRunning {
		panic("scheduler: assigning to a running slot")
	}
	st.tasks[i] = t
}

// active returns the tasks currently occupying slots, for joining.
func (st *slotTable) active() []Task {
	tasks := make([]Task, 0, len(st.tasks))
	for _, t := range st.tasks {
		if t != nil {
			tasks = append(tasks, t)
		}
	}
	return tasks
}
