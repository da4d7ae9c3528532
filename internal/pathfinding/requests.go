package pathfinding

import (
	"errors"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/oklog/ulid/v2"

	"hammer2d/internal/logger"
)

var (
	// ErrQueueUnderflow means a dequeue was attempted on an empty request queue.
	ErrQueueUnderflow = errors.New("path request queue underflow")
	// ErrNoRequestInFlight is returned by FinishedProcessingPath when no search is running.
	ErrNoRequestInFlight = errors.New("no path request in flight")
)

// PathCallback receives the result of one request.
type PathCallback func(path []rl.Vector3, success bool)

// PathRequest is one queued search.
type PathRequest struct {
	ID        ulid.ULID
	PathStart rl.Vector3
	PathEnd   rl.Vector3
	Callback  PathCallback
}

// ManagerOptions configures a RequestManager.
type ManagerOptions struct {
	// Deferred queues requests without running them; Update drains the queue.
	Deferred bool
	// MaxPerUpdate bounds how many requests one Update completes. Zero means all.
	MaxPerUpdate int
}

// RequestManager serialises path requests so that at most one search runs at a time.
// Requests complete in the order they were made. A callback that issues a new request
// queues it behind every request already waiting.
type RequestManager struct {
	finder Finder
	opts   ManagerOptions
	log    *logger.Logger

	mu         sync.Mutex
	queue      []PathRequest
	current    PathRequest
	processing bool
	draining   bool
}

// NewRequestManager returns an immediate-mode manager over finder.
func NewRequestManager(finder Finder, log *logger.Logger) *RequestManager {
	return NewRequestManagerWithOptions(finder, ManagerOptions{}, log)
}

// NewRequestManagerWithOptions returns a manager with explicit options.
func NewRequestManagerWithOptions(finder Finder, opts ManagerOptions, log *logger.Logger) *RequestManager {
	return &RequestManager{finder: finder, opts: opts, log: log}
}

// RequestPath enqueues a search and, unless the manager is deferred or a search is
// already running, processes the queue before returning. The callback runs exactly once.
func (m *RequestManager) RequestPath(start, end rl.Vector3, callback PathCallback) ulid.ULID {
	req := PathRequest{ID: ulid.Make(), PathStart: start, PathEnd: end, Callback: callback}
	m.mu.Lock()
	m.queue = append(m.queue, req)
	m.mu.Unlock()
	m.log.Logf("pathfinding: queued %s", req.ID)

	if !m.opts.Deferred {
		m.drain(0)
	}
	return req.ID
}

// Update processes queued requests in deferred mode and returns how many completed.
func (m *RequestManager) Update() int {
	return m.drain(m.opts.MaxPerUpdate)
}

// FinishedProcessingPath delivers the result of the in-flight request to its callback
// and clears the in-flight flag. The drain loop calls it after every search.
func (m *RequestManager) FinishedProcessingPath(path []rl.Vector3, success bool) error {
	m.mu.Lock()
	if !m.processing {
		m.mu.Unlock()
		return ErrNoRequestInFlight
	}
	req := m.current
	m.mu.Unlock()

	if req.Callback != nil {
		req.Callback(path, success)
	}

	m.mu.Lock()
	m.processing = false
	m.current = PathRequest{}
	m.mu.Unlock()
	return nil
}

// Pending returns the number of queued requests not yet started.
func (m *RequestManager) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// InFlight reports whether a search or its callback is running.
func (m *RequestManager) InFlight() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.processing
}

// drain runs queued requests one by one until the queue is empty or limit requests
// have completed. Only one goroutine drains at a time; others just enqueue.
func (m *RequestManager) drain(limit int) int {
	m.mu.Lock()
	if m.draining {
		m.mu.Unlock()
		return 0
	}
	m.draining = true
	m.mu.Unlock()

	done := 0
	for limit <= 0 || done < limit {
		req, ok := m.next()
		if !ok {
			return done
		}
		path, success := m.finder.FindPath(req.PathStart, req.PathEnd)
		if err := m.FinishedProcessingPath(path, success); err != nil {
			m.log.Logf("pathfinding: %s: %v", req.ID, err)
		}
		done++
	}

	m.mu.Lock()
	m.draining = false
	m.mu.Unlock()
	return done
}

// next starts the oldest queued request. It clears the draining flag when there is
// nothing to start so a later RequestPath picks up the work.
func (m *RequestManager) next() (PathRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processing || len(m.queue) == 0 {
		m.draining = false
		return PathRequest{}, false
	}
	req, err := m.dequeue()
	if err != nil {
		m.draining = false
		m.log.Logf("pathfinding: %v", err)
		return PathRequest{}, false
	}
	m.current = req
	m.processing = true
	return req, true
}

// dequeue must be called with mu held.
func (m *RequestManager) dequeue() (PathRequest, error) {
	if len(m.queue) == 0 {
		return PathRequest{}, ErrQueueUnderflow
	}
	req := m.queue[0]
	m.queue[0] = PathRequest{}
	m.queue = m.queue[1:]
	return req, nil
}
