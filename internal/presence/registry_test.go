package presence

import (
	"fmt"
	"sync"
	"testing"
)

func TestJoinLeaveFind(t *testing.T) {
	r := NewRegistry()
	p := r.Join("u1", "alice")
	if p == nil || p.ID != "u1" || p.Name != "alice" {
		t.Fatalf("unexpected join result: %+v", p)
	}
	if r.Find("u1") == nil {
		t.Fatal("joined player not findable")
	}
	// rejoin refreshes the name without touching the old entry
	p2 := r.Join("u1", "alice2")
	if p2.Name != "alice2" {
		t.Fatalf("rejoin did not refresh name: %q", p2.Name)
	}
	if p.Name != "alice" {
		t.Fatalf("rejoin mutated a handed-out entry: %q", p.Name)
	}
	if !p2.JoinedAt.Equal(p.JoinedAt) {
		t.Fatal("rejoin did not keep the original join time")
	}
	r.Leave("u1")
	if r.Find("u1") != nil {
		t.Fatal("player still present after leave")
	}
}

func TestFindAllSnapshot(t *testing.T) {
	r := NewRegistry()
	r.Join("b", "bob")
	r.Join("a", "ann")
	snap := r.FindAll()
	if len(snap) != 2 {
		t.Fatalf("snapshot len = %d", len(snap))
	}
	r.Leave("a")
	if len(snap) != 2 {
		t.Fatal("snapshot mutated by later leave")
	}
}

func TestRejoinDoesNotWriteSharedEntries(t *testing.T) {
	r := NewRegistry()
	held := r.Join("u1", "ann")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			r.Join("u1", fmt.Sprintf("ann-%d", i))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = held.Name
		}
	}()
	wg.Wait()

	if held.Name != "ann" {
		t.Fatalf("held entry was mutated: %q", held.Name)
	}
	if got := r.Find("u1").Name; got != "ann-199" {
		t.Fatalf("latest name = %q", got)
	}
}

func TestConcurrentChurn(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("u%d", n)
			for j := 0; j < 100; j++ {
				r.Join(id, id)
				_ = r.Find(id)
				_ = r.FindAll()
				r.Leave(id)
			}
		}(i)
	}
	wg.Wait()
	if got := len(r.FindAll()); got != 0 {
		t.Fatalf("registry not empty after churn: %d", got)
	}
}
