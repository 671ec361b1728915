// Package task hands work off from the realtime audio thread (or an
// initialization thread) to a single shared background worker goroutine.
// Sending never blocks and never allocates; a full queue is reported to the
// caller, who decides whether to drop the work or retry on a later block.
// Results flow back through parameter cells and other atomics, never through
// pointers into the realtime thread's working set.
package task

import (
	"sync"
	"sync/atomic"
)

// QueueCapacity bounds the shared task queue. Overflow rejects new work; it
// never blocks the producer.
const QueueCapacity = 2048

// Task is a small, fixed-shape work description. Payloads are passed by
// value so enqueueing from the realtime thread does not allocate; Kind is
// plugin-defined, Value and Name carry the arguments the handler needs.
type Task struct {
	Kind  uint32
	Value float64
	Name  string
}

// Executor runs tasks on the worker goroutine, outside the realtime path.
// Implementations apply their effects through atomic parameter cells.
type Executor interface {
	ExecuteTask(t Task)
}

// message travels over the shared queue. A shutdown message stops the
// worker; it is only sent when the last handle closes.
type message struct {
	task     Task
	handle   *Handle
	shutdown bool
}

// Handle is one plugin instance's connection to the shared worker. All
// instances in a process share a single worker goroutine to bound resource
// usage; the worker starts with the first handle and stops with the last.
type Handle struct {
	executor Executor
	tasks    chan message
	closed   atomic.Bool
}

var shared struct {
	mu    sync.Mutex
	refs  int
	tasks chan message
	done  chan struct{}
}

// Acquire registers an executor with the shared worker, starting it if this
// is the first handle. Call from a non-realtime context (plugin
// construction).
func Acquire(executor Executor) *Handle {
	h := &Handle{executor: executor}

	shared.mu.Lock()
	defer shared.mu.Unlock()

	if shared.refs == 0 {
		shared.tasks = make(chan message, QueueCapacity)
		shared.done = make(chan struct{})
		go workerLoop(shared.tasks, shared.done)
	}
	shared.refs++
	h.tasks = shared.tasks
	return h
}

// TrySend enqueues a task for this handle's executor. It never blocks and
// never allocates: on a full queue (or a closed handle) it returns false
// immediately and the caller keeps ownership of the decision to drop or
// retry on a later block.
func (h *Handle) TrySend(t Task) bool {
	if h.closed.Load() {
		return false
	}
	select {
	case h.tasks <- message{task: t, handle: h}:
		return true
	default:
		return false
	}
}

// Close detaches the handle. Tasks already queued for it are skipped rather
// than executed against a dying instance. When the last handle closes, the
// worker is told to shut down and Close waits for it to drain. Call from a
// non-realtime context (plugin destruction).
func (h *Handle) Close() {
	if h.closed.Swap(true) {
		return
	}

	shared.mu.Lock()
	shared.refs--
	last := shared.refs == 0
	done := shared.done
	shared.mu.Unlock()

	if last {
		h.tasks <- message{shutdown: true}
		<-done
	}
}

func workerLoop(tasks chan message, done chan struct{}) {
	defer close(done)
	for msg := range tasks {
		if msg.shutdown {
			return
		}
		if msg.handle.closed.Load() {
			continue
		}
		msg.handle.executor.ExecuteTask(msg.task)
	}
}
