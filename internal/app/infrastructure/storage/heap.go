package storage

import "time"

// expiry is the heap entry of one session. index is kept up to date by Swap
// so a moved deadline is fixed in place.
type expiry struct {
	id        string
	expiresAt time.Time
	index     int
}

type expiryHeap []*expiry

func (h *expiryHeap) Len() int { return len(*h) }
func (h *expiryHeap) Less(i, j int) bool {
	return (*h)[i].expiresAt.Before((*h)[j].expiresAt)
}
func (h *expiryHeap) Swap(i, j int) {
	(*h)[i], (*h)[j] = (*h)[j], (*h)[i]
	(*h)[i].index = i
	(*h)[j].index = j
}

func (h *expiryHeap) Push(x any) {
	e := x.(*expiry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *expiryHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	x.index = -1
	*h = old[:n-1]
	return x
}
