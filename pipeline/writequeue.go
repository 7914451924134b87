/*
DESCRIPTION
  writequeue.go implements the WriteQueue: a mutex-guarded min-heap of
  WriteJob keyed by FrameNumber, which lets converter workers complete
  out of order while the writer drains them back into sequence.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pipeline

import (
	"container/heap"
	"sync"
)

// jobHeap is a container/heap.Interface over WriteJob, ordered by
// ascending FrameNumber.
type jobHeap []WriteJob

func (h jobHeap) Len() int            { return len(h) }
func (h jobHeap) Less(i, j int) bool  { return h[i].FrameNumber < h[j].FrameNumber }
func (h jobHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *jobHeap) Push(x interface{}) { *h = append(*h, x.(WriteJob)) }
func (h *jobHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// writeQueue is a mutex-guarded min-heap of pending WriteJobs. The
// mutex is held only across Push/TryPop, never across I/O.
type writeQueue struct {
	mu sync.Mutex
	h  jobHeap
}

// Push adds job to the queue.
func (q *writeQueue) Push(job WriteJob) {
	q.mu.Lock()
	heap.Push(&q.h, job)
	q.mu.Unlock()
}

// TryPop pops and returns the minimum-FrameNumber job only if it
// equals want; otherwise it returns false without modifying the
// queue. This implements the writer's "only take the next frame in
// sequence" rule without yielding the lock between peek and pop.
func (q *writeQueue) TryPop(want uint64) (WriteJob, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.h) == 0 || q.h[0].FrameNumber != want {
		return WriteJob{}, false
	}
	return heap.Pop(&q.h).(WriteJob), true
}

// Len returns the current queue length, for diagnostics only.
func (q *writeQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.h)
}
