package grid

import "sync"

// TaskQueue is a coalescing deferred-callback queue drained by the UI loop.
// Posting a key that is already pending is a no-op, so a burst of changes
// collapses into one callback. Post is safe from any goroutine; Drain must
// run on the UI goroutine.
type TaskQueue struct {
	mu      sync.Mutex
	tasks   []queuedTask
	pending map[string]bool
}

type queuedTask struct {
	key string
	fn  func()
}

// NewTaskQueue creates an empty queue.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{pending: make(map[string]bool)}
}

// Post schedules fn under key. It reports false when key was already pending.
func (q *TaskQueue) Post(key string, fn func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.pending[key] {
		return false
	}
	q.pending[key] = true
	q.tasks = append(q.tasks, queuedTask{key: key, fn: fn})
	return true
}

// Pending reports whether key is scheduled.
func (q *TaskQueue) Pending(key string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending[key]
}

// Len returns the number of scheduled callbacks.
func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Drain runs every scheduled callback in posting order and returns how many
// ran. Callbacks posted while draining run on the next Drain.
func (q *TaskQueue) Drain() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	clear(q.pending)
	q.mu.Unlock()

	for _, t := range tasks {
		t.fn()
	}
	return len(tasks)
}
