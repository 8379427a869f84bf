package containers

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/lathe/engine/core"
)

func TestRingQueueFIFO(t *testing.T) {
	rq := NewRingQueue[[]float32](3)
	if !rq.IsEmpty() {
		t.Fatal("new queue is not empty")
	}
	if _, err := rq.Dequeue(); !errors.Is(err, core.ErrQueueEmpty) {
		t.Errorf("Dequeue() on empty error = %v, want ErrQueueEmpty", err)
	}
	if _, err := rq.Peek(); !errors.Is(err, core.ErrQueueEmpty) {
		t.Errorf("Peek() on empty error = %v, want ErrQueueEmpty", err)
	}

	for i := 0; i < 3; i++ {
		if err := rq.Enqueue([]float32{float32(i)}); err != nil {
			t.Fatalf("Enqueue(%d) error = %v", i, err)
		}
	}
	if !rq.IsFull() {
		t.Error("IsFull() = false after 3 enqueues")
	}
	if err := rq.Enqueue([]float32{9}); !errors.Is(err, core.ErrQueueFull) {
		t.Errorf("Enqueue() on full error = %v, want ErrQueueFull", err)
	}

	front, _ := rq.Peek()
	if front[0] != 0 {
		t.Errorf("Peek() = %v, want [0]", front)
	}

	// wrap the write index around
	v, _ := rq.Dequeue()
	if v[0] != 0 {
		t.Errorf("Dequeue() = %v, want [0]", v)
	}
	if err := rq.Enqueue([]float32{3}); err != nil {
		t.Fatal(err)
	}
	for want := float32(1); want <= 3; want++ {
		v, err := rq.Dequeue()
		if err != nil {
			t.Fatal(err)
		}
		if v[0] != want {
			t.Errorf("Dequeue() = %v, want [%v]", v, want)
		}
	}
	if rq.Len() != 0 {
		t.Errorf("Len() = %d, want 0", rq.Len())
	}
}

func TestRingQueueMinimumSize(t *testing.T) {
	rq := NewRingQueue[int](0)
	if err := rq.Enqueue(1); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	if !rq.IsFull() {
		t.Error("queue with clamped size 1 should be full")
	}
}
