// Implements the WaitQueue, which holds all entities waiting for a busy server.
// Entities are enqueued when they find the server occupied

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue represents a FIFO queue of entities waiting to be granted a Resource.
type WaitQueue struct {
	queue []*Entity // FIFO queue of entities
}

// Enqueue adds an entity to the back of the wait queue.
func (wq *WaitQueue) Enqueue(e *Entity) {
	if e == nil {
		panic("Enqueue: entity must not be nil")
	}
	wq.queue = append(wq.queue, e)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range wq.queue {
		sb.WriteString(fmt.Sprint(val.ID))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of entities in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Peek returns the entity at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Peek() *Entity {
	if len(wq.queue) == 0 {
		return nil
	}
	return wq.queue[0]
}

// Dequeue removes and returns the entity at the front of the queue.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Dequeue() *Entity {
	if len(wq.queue) == 0 {
		return nil
	}
	head := wq.queue[0]
	wq.queue[0] = nil
	wq.queue = wq.queue[1:]
	return head
}
