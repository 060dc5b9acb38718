package cwaudio

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func startTestSidetone(t *testing.T, dev *fakeDevice) *Sidetone {
	t.Helper()
	s := StartSidetone(dev, nil)
	t.Cleanup(s.Close)
	select {
	case <-s.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("sidetone never became ready")
	}
	return s
}

func TestSidetone_WarmUpOnOpen(t *testing.T) {
	dev := newFakeDevice()
	s := startTestSidetone(t, dev)

	opens, writes, _ := dev.snapshot()
	if opens != 1 {
		t.Errorf("opens = %d, want 1", opens)
	}
	if len(writes) != 1 || len(writes[0]) != BlockSize || writes[0].Peak() != 0 {
		t.Errorf("expected one silent warm-up block, got %d writes", len(writes))
	}
	if s.State() != StateOpen {
		t.Errorf("State() = %v, want open", s.State())
	}
}

func TestSidetone_PlaysInOrder(t *testing.T) {
	dev := newFakeDevice()
	s := startTestSidetone(t, dev)

	for i := 1; i <= 3; i++ {
		if !s.Enqueue(marker(float32(i))) {
			t.Fatalf("Enqueue(%d) = false", i)
		}
		// let the worker keep up so nothing is dropped
		waitFor(t, "write", func() bool {
			_, w, _ := dev.snapshot()
			return len(w) == i+1
		})
	}

	_, writes, _ := dev.snapshot()
	if got := ids(writes); !reflect.DeepEqual(got, []float32{1, 2, 3}) {
		t.Errorf("written = %v, want [1 2 3]", got)
	}
	if st := s.Stats(); st.Written != 3 || st.Dropped != 0 {
		t.Errorf("Stats() = %+v, want 3 written, 0 dropped", st)
	}
}

func TestSidetone_DropsOldestUnderBurst(t *testing.T) {
	dev := newFakeDevice()
	s := startTestSidetone(t, dev)

	dev.block()
	s.Enqueue(marker(100))
	if got := <-dev.started; got[0] != 100 {
		t.Fatalf("first write = %v, want 100", got[0])
	}

	// the worker is stuck writing 100; everything else queues up
	for i := 1; i <= SidetoneQueueSize+5; i++ {
		s.Enqueue(marker(float32(i)))
	}
	if s.Pending() > SidetoneQueueSize {
		t.Errorf("Pending() = %d, want <= %d", s.Pending(), SidetoneQueueSize)
	}
	if st := s.Stats(); st.Dropped != 5 {
		t.Errorf("Dropped = %d, want 5", st.Dropped)
	}

	dev.release()
	waitFor(t, "queue to drain", func() bool {
		_, w, _ := dev.snapshot()
		return len(ids(w)) == 1+SidetoneQueueSize
	})
	_, writes, _ := dev.snapshot()
	want := []float32{100, 6, 7, 8}
	if got := ids(writes); !reflect.DeepEqual(got, want) {
		t.Errorf("written = %v, want %v", got, want)
	}
}

func TestSidetone_ClearKeepsStreamOpen(t *testing.T) {
	dev := newFakeDevice()
	s := startTestSidetone(t, dev)

	dev.block()
	s.Enqueue(marker(1))
	<-dev.started
	s.Enqueue(marker(2))
	s.Enqueue(marker(3))

	if n := s.Clear(); n != 2 {
		t.Errorf("Clear() = %d, want 2", n)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", s.Pending())
	}
	dev.release()

	s.Enqueue(marker(4))
	waitFor(t, "write after clear", func() bool {
		_, w, _ := dev.snapshot()
		ws := ids(w)
		return len(ws) == 2 && ws[1] == 4
	})

	opens, _, _ := dev.snapshot()
	if opens != 1 {
		t.Errorf("opens = %d, want 1 (no reopen after clear)", opens)
	}
	if s.State() != StateOpen && s.State() != StateWriting {
		t.Errorf("State() = %v, want open", s.State())
	}
}

func TestSidetone_RetriesOnceAfterReopen(t *testing.T) {
	dev := newFakeDevice()
	s := startTestSidetone(t, dev)

	dev.setFailNext(1)
	s.Enqueue(marker(7))
	waitFor(t, "retried write", func() bool {
		_, w, _ := dev.snapshot()
		return len(ids(w)) == 1
	})

	opens, writes, _ := dev.snapshot()
	if opens != 2 {
		t.Errorf("opens = %d, want 2", opens)
	}
	if got := ids(writes); !reflect.DeepEqual(got, []float32{7}) {
		t.Errorf("written = %v, want [7]", got)
	}
	if st := s.Stats(); st.Failed != 0 || st.Written != 1 {
		t.Errorf("Stats() = %+v, want 1 written, 0 failed", st)
	}
}

func TestSidetone_DropsBufferAfterSecondFailure(t *testing.T) {
	dev := newFakeDevice()
	s := startTestSidetone(t, dev)

	dev.setFailNext(2)
	s.Enqueue(marker(1))
	waitFor(t, "failed buffer", func() bool { return s.Stats().Failed == 1 })

	// the second failure is the retry of marker 1 on a reopened stream
	if opens, _, _ := dev.snapshot(); opens != 2 {
		t.Errorf("opens after failure = %d, want 2", opens)
	}

	// the player recovers on the next buffer
	s.Enqueue(marker(2))
	waitFor(t, "recovered write", func() bool {
		_, w, _ := dev.snapshot()
		return len(ids(w)) == 1
	})
	opens, writes, _ := dev.snapshot()
	if got := ids(writes); !reflect.DeepEqual(got, []float32{2}) {
		t.Errorf("written = %v, want [2]", got)
	}
	if opens != 3 {
		t.Errorf("opens = %d, want 3", opens)
	}
}

func TestSidetone_ReopenRetriesBufferWithoutWarmUp(t *testing.T) {
	dev := newFakeDevice()
	s := startTestSidetone(t, dev)

	dev.setFailNext(1)
	s.Enqueue(marker(4))
	waitFor(t, "retried write", func() bool { return s.Stats().Written == 1 })

	_, writes, _ := dev.snapshot()
	// one warm-up block from the first open, then marker 4 on the reopened stream
	if len(writes) != 2 || len(writes[0]) != BlockSize || writes[1][0] != 4 {
		t.Errorf("writes = %d buffers, want warm-up then marker 4", len(writes))
	}
}

func TestSidetone_NoDevice(t *testing.T) {
	dev := newFakeDevice()
	dev.openErr = errors.New("no sound card")
	s := startTestSidetone(t, dev)

	if s.State() != StateNoDevice {
		t.Errorf("State() = %v, want no-device", s.State())
	}
	if s.Available() {
		t.Error("Available() = true, want false")
	}

	start := time.Now()
	if s.Enqueue(marker(1)) {
		t.Error("Enqueue() = true, want false")
	}
	if s.Prime(context.Background(), Silence(60)) {
		t.Error("Prime() = true, want false")
	}
	if time.Since(start) > 100*time.Millisecond {
		t.Errorf("no-device calls took %v", time.Since(start))
	}
}

func TestSidetone_PrimeWritesThroughStream(t *testing.T) {
	dev := newFakeDevice()
	s := startTestSidetone(t, dev)

	if !s.Prime(context.Background(), Silence(primeMs)) {
		t.Fatal("Prime() = false, want true")
	}
	_, writes, _ := dev.snapshot()
	last := writes[len(writes)-1]
	if len(last) != samplesFor(primeMs) {
		t.Errorf("prime write len = %d, want %d", len(last), samplesFor(primeMs))
	}
}

func TestSidetone_Close(t *testing.T) {
	dev := newFakeDevice()
	s := StartSidetone(dev, nil)
	<-s.Ready()
	s.Close()
	s.Close()

	if s.State() != StateClosed {
		t.Errorf("State() = %v, want closed", s.State())
	}
	if s.Enqueue(marker(1)) {
		t.Error("Enqueue after Close = true, want false")
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.closes != 1 {
		t.Errorf("closes = %d, want 1", dev.closes)
	}
}
