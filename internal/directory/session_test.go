package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crucial707/pfconsole/internal/models"
)

type fakeLoader struct {
	groupCalls, userCalls int
	groups                []models.Group
	users                 []models.User
	err                   error
}

func (f *fakeLoader) ListGroups(ctx context.Context) ([]models.Group, error) {
	f.groupCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.groups, nil
}

func (f *fakeLoader) ListUsers(ctx context.Context) ([]models.User, error) {
	f.userCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.users, nil
}

func TestSession_LoadsEachTabOnce(t *testing.T) {
	l := &fakeLoader{groups: []models.Group{{ID: "g1"}}, users: []models.User{{ID: "u1"}}}
	s := &Session{}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.Groups(ctx, l); err != nil {
			t.Fatalf("Groups: %v", err)
		}
	}
	if l.groupCalls != 1 {
		t.Errorf("groups fetched %d times, want 1", l.groupCalls)
	}
	if l.userCalls != 0 {
		t.Errorf("users fetched before their tab was opened")
	}
	if _, err := s.Users(ctx, l); err != nil {
		t.Fatalf("Users: %v", err)
	}
	if _, err := s.Users(ctx, l); err != nil {
		t.Fatalf("Users: %v", err)
	}
	if l.userCalls != 1 {
		t.Errorf("users fetched %d times, want 1", l.userCalls)
	}
}

func TestSession_InvalidateRefetches(t *testing.T) {
	l := &fakeLoader{groups: []models.Group{{ID: "g1"}}}
	s := &Session{}
	ctx := context.Background()
	_, _ = s.Groups(ctx, l)
	s.Invalidate(TabGroups)
	_, _ = s.Groups(ctx, l)
	if l.groupCalls != 2 {
		t.Errorf("groups fetched %d times, want 2", l.groupCalls)
	}
}

func TestSession_FailedLoadNotCached(t *testing.T) {
	l := &fakeLoader{err: errors.New("down")}
	s := &Session{}
	ctx := context.Background()
	if _, err := s.Groups(ctx, l); err == nil {
		t.Fatal("expected error")
	}
	l.err = nil
	l.groups = []models.Group{{ID: "g1"}}
	g, err := s.Groups(ctx, l)
	if err != nil || len(g) != 1 {
		t.Fatalf("retry after failure: %v %v", g, err)
	}
}

func TestStore_GetAndSweep(t *testing.T) {
	st := NewStore(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return now }

	s1, k1 := st.Get("")
	if k1 == "" || s1 == nil {
		t.Fatal("expected new session")
	}
	s2, k2 := st.Get(k1)
	if s2 != s1 || k2 != k1 {
		t.Error("expected same session for known key")
	}
	_, k3 := st.Get("unknown")
	if k3 == "unknown" {
		t.Error("unknown key must not be adopted")
	}

	now = now.Add(30 * time.Second)
	st.Get(k1)
	now = now.Add(45 * time.Second)
	if n := st.Sweep(); n != 1 {
		t.Errorf("Sweep removed %d, want 1", n)
	}
	if st.Len() != 1 {
		t.Errorf("Len = %d, want 1", st.Len())
	}
}
