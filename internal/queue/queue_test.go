package queue

import (
	"sync"
	"testing"
)

// dialogRequest stands in for the UI requests the queue carries.
type dialogRequest struct {
	ID  int
	Lat float64
	Lon float64
}

func TestQueue_PushAndLen(t *testing.T) {
	q := New[dialogRequest]()
	if q.Len() != 0 {
		t.Errorf("expected length 0, got %d", q.Len())
	}

	q.Push(dialogRequest{ID: 1, Lat: 10})
	q.Push(dialogRequest{ID: 2}, dialogRequest{ID: 3})
	if q.Len() != 3 {
		t.Errorf("expected length 3, got %d", q.Len())
	}
}

func TestQueue_DrainReturnsInOrder(t *testing.T) {
	q := New[dialogRequest]()
	q.Push(dialogRequest{ID: 1}, dialogRequest{ID: 2}, dialogRequest{ID: 3})

	items := q.Drain()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, item := range items {
		if item.ID != i+1 {
			t.Errorf("expected item %d at index %d, got %+v", i+1, i, item)
		}
	}
	if q.Len() != 0 {
		t.Errorf("expected empty queue after Drain, got %d", q.Len())
	}
}

func TestQueue_DrainEmpty(t *testing.T) {
	q := New[dialogRequest]()
	if got := q.Drain(); got != nil {
		t.Errorf("expected nil drain, got %v", got)
	}
}

func TestQueue_DrainedSliceIsDetached(t *testing.T) {
	q := New[dialogRequest]()
	q.Push(dialogRequest{ID: 1})

	items := q.Drain()
	q.Push(dialogRequest{ID: 2})
	if items[0].ID != 1 {
		t.Errorf("drained slice mutated, got %+v", items[0])
	}
	if q.Len() != 1 {
		t.Errorf("expected 1 pending item, got %d", q.Len())
	}
}

func TestQueue_ConcurrentPush(t *testing.T) {
	q := New[dialogRequest]()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push(dialogRequest{ID: id})
			}
		}(i)
	}
	wg.Wait()

	if q.Len() != 1000 {
		t.Errorf("expected 1000 items, got %d", q.Len())
	}
}
