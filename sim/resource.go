package sim

import "fmt"

// Resource models a server with a fixed capacity and a FIFO wait queue.
// Grants never overtake: the head of WaitQ is always the next entity served.
type Resource struct {
	Name        string  // Server name used in logs, traces and summaries (e.g. "WS1")
	Capacity    int     // Fixed at construction
	ServiceRate float64 // 1 / mean service time, in entities per minute

	held  int
	WaitQ *WaitQueue
}

// NewResource creates a Resource. Capacity must be positive.
func NewResource(name string, capacity int, serviceRate float64) *Resource {
	if capacity <= 0 {
		panic(fmt.Sprintf("NewResource: capacity must be > 0, got %d", capacity))
	}
	return &Resource{
		Name:        name,
		Capacity:    capacity,
		ServiceRate: serviceRate,
		WaitQ:       &WaitQueue{},
	}
}

// Acquire grants the resource to e if a unit is free and returns true.
// Otherwise e is appended to the wait queue and Acquire returns false; the
// entity stays suspended until a later Release hands it the unit.
func (r *Resource) Acquire(e *Entity) bool {
	if r.held < r.Capacity {
		r.held++
		return true
	}
	r.WaitQ.Enqueue(e)
	return false
}

// Release returns one unit. If entities are waiting, the head of the queue is
// granted the unit immediately and returned so the caller can resume it;
// otherwise Release returns nil.
func (r *Resource) Release() *Entity {
	if r.held == 0 {
		panic(fmt.Sprintf("Release: resource %s released with no units held", r.Name))
	}
	r.held--
	next := r.WaitQ.Dequeue()
	if next != nil {
		r.held++
	}
	return next
}

// Waiting returns the number of entities in the wait queue.
func (r *Resource) Waiting() int {
	return r.WaitQ.Len()
}

// Held returns the number of units currently granted.
func (r *Resource) Held() int {
	return r.held
}

func (r *Resource) String() string {
	return fmt.Sprintf("Resource(%s held=%d/%d waiting=%s)", r.Name, r.held, r.Capacity, r.WaitQ)
}
