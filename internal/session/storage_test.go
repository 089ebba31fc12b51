package session

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(time.Hour)
	t.Cleanup(s.Close)
	return s
}

func TestOpenDefaults(t *testing.T) {
	s := newTestStore(t)
	id := s.Open()
	if id == "" {
		t.Fatal("Open returned empty session id")
	}
	mode, ok := s.Get(id, KeyMode)
	if !ok || mode != ModeCreate {
		t.Errorf("new session mode = %q, want %q", mode, ModeCreate)
	}
	if s.Exists(id, KeyCurrentManifest) {
		t.Error("new session should not have a current manifest")
	}
}

func TestSetGetDelete(t *testing.T) {
	s := newTestStore(t)
	id := s.Open()

	s.Set(id, KeyCurrentManifest, "MAN-001")
	got, ok := s.Get(id, KeyCurrentManifest)
	if !ok || got != "MAN-001" {
		t.Errorf("Get = %q, %v; want MAN-001, true", got, ok)
	}

	s.Delete(id, KeyCurrentManifest)
	if s.Exists(id, KeyCurrentManifest) {
		t.Error("key should be gone after Delete")
	}
}

func TestSetUnknownSessionCreatesIt(t *testing.T) {
	s := newTestStore(t)
	s.Set("expired-cookie-id", KeyMode, ModeRetrieve)
	mode, ok := s.Get("expired-cookie-id", KeyMode)
	if !ok || mode != ModeRetrieve {
		t.Errorf("Get = %q, %v; want retrieve, true", mode, ok)
	}
}

func TestReset(t *testing.T) {
	s := newTestStore(t)
	id := s.Open()
	s.Set(id, KeyMode, ModeRetrieve)
	s.Set(id, KeyCurrentManifest, "MAN-001")
	s.Set(id, KeyCurrentStop, "AAAA0000")

	s.Reset(id)

	mode, _ := s.Get(id, KeyMode)
	if mode != ModeCreate {
		t.Errorf("mode after reset = %q, want %q", mode, ModeCreate)
	}
	if s.Exists(id, KeyCurrentManifest) || s.Exists(id, KeyCurrentStop) {
		t.Error("working state should be cleared after reset")
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := newTestStore(t)
	id := s.Open()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i%5)
			s.Set(id, key, fmt.Sprintf("value-%d", i))
			s.Get(id, key)
			s.Exists(id, key)
		}()
	}
	wg.Wait()

	if s.Len() != 1 {
		t.Errorf("expected 1 live session, got %d", s.Len())
	}
}
