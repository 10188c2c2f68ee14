package identity

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestRegistry_IssueLookupRoundTrip(t *testing.T) {
	reg := NewRegistry()

	usernames := []string{"alice", "", "жук", "a b\tc", "x'); DROP TABLE--"}

	for _, name := range usernames {
		id := reg.Issue(name)

		got, ok := reg.Lookup(id)
		if !ok {
			t.Fatalf("Lookup(%s) after Issue(%q): not found", id, name)
		}
		if got != name {
			t.Fatalf("Lookup(%s) = %q, want %q", id, got, name)
		}
	}
}

func TestRegistry_IssueReturnsFreshIdentifiers(t *testing.T) {
	reg := NewRegistry()

	seen := make(map[uuid.UUID]struct{})
	for i := 0; i < 1000; i++ {
		id := reg.Issue("user")
		if _, dup := seen[id]; dup {
			t.Fatalf("identifier %s issued twice", id)
		}
		seen[id] = struct{}{}
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	reg := NewRegistry()

	if _, ok := reg.Lookup(uuid.New()); ok {
		t.Fatal("Lookup of never-issued identifier must report not found")
	}
}

func TestRegistry_ConcurrentIssue(t *testing.T) {
	reg := NewRegistry()

	const workers = 16
	const perWorker = 100

	ids := make([][]uuid.UUID, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ids[w] = append(ids[w], reg.Issue("worker"))
			}
		}(w)
	}
	wg.Wait()

	seen := make(map[uuid.UUID]struct{}, workers*perWorker)
	for _, batch := range ids {
		for _, id := range batch {
			if _, dup := seen[id]; dup {
				t.Fatalf("identifier %s issued twice under concurrency", id)
			}
			seen[id] = struct{}{}

			if _, ok := reg.Lookup(id); !ok {
				t.Fatalf("identifier %s lost after concurrent issue", id)
			}
		}
	}
}
