package queue

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/okian/pitchline/internal/domain/model"
)

func job(session, key string) Job {
	return Job{SessionKey: session, Key: key, Cluster: model.Cluster{MinuteKey: key}}
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	if !q.Enqueue(ctx, job("s1", "23|goal")) {
		t.Error("expected enqueue to succeed")
	}

	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	jobChan := q.Dequeue(ctx)
	got := <-jobChan
	if got.Key != "23|goal" {
		t.Errorf("expected 23|goal, got %v", got.Key)
	}

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if !q.Enqueue(ctx, job("s1", "a")) {
		t.Error("expected enqueue to succeed")
	}
	if !q.Enqueue(ctx, job("s1", "b")) {
		t.Error("expected enqueue to succeed")
	}

	if q.Enqueue(ctx, job("s1", "c")) {
		t.Error("expected enqueue to fail when full")
	}

	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_ConcurrentAccess(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2000))
	ctx := context.Background()
	numGoroutines := 10
	numJobs := 100

	done := make(chan bool, numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			for j := 0; j < numJobs; j++ {
				q.Enqueue(ctx, job("s1", fmt.Sprintf("%d-%d", id, j)))
			}
			done <- true
		}(i)
	}

	received := 0
	jobChan := q.Dequeue(ctx)
	timeout := time.After(5 * time.Second)
	producersDone := 0
	for received < numGoroutines*numJobs {
		select {
		case <-jobChan:
			received++
		case <-done:
			producersDone++
		case <-timeout:
			t.Fatalf("timed out after receiving %d jobs", received)
		}
	}

	for producersDone < numGoroutines {
		<-done
		producersDone++
	}

	if received != numGoroutines*numJobs {
		t.Errorf("expected %d jobs, got %d", numGoroutines*numJobs, received)
	}
}

func TestInMemoryQueue_Close(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if !q.Enqueue(ctx, job("s1", "a")) {
		t.Error("expected enqueue to succeed")
	}

	if err := q.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}

	if !q.IsClosed() {
		t.Error("expected queue to report closed")
	}

	if q.Enqueue(ctx, job("s1", "b")) {
		t.Error("expected enqueue to fail after close")
	}

	// Remaining jobs drain, then the channel closes.
	jobChan := q.Dequeue(ctx)
	if got := <-jobChan; got.Key != "a" {
		t.Errorf("expected queued job, got %v", got.Key)
	}
	if _, ok := <-jobChan; ok {
		t.Error("expected dequeue channel to close")
	}

	if err := q.Close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}
}
