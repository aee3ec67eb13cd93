package stats

import (
	"fmt"
	"testing"

	"elprimobot/models"
)

func TestRemoveFlaggedEmptySet(t *testing.T) {
	client := &fakeClient{
		members: []models.Member{{ID: "1", Username: "alice"}},
	}
	svc := newTestService(t, client)

	if removed := svc.removeFlagged(nil); removed != nil {
		t.Errorf("empty set should be a no-op, removed %v", removed)
	}
	if len(client.kicked) != 0 {
		t.Errorf("kicked %v with nothing flagged", client.kicked)
	}
}

func TestRemoveFlaggedIndependentFailures(t *testing.T) {
	client := &fakeClient{
		members: []models.Member{
			{ID: "1", Username: "alice"},
			{ID: "2", Username: "bob"},
			{ID: "3", Username: "carol"},
		},
		kickErr: map[string]error{"2": fmt.Errorf("missing permissions")},
	}
	svc := newTestService(t, client)

	removed := svc.removeFlagged(map[string]struct{}{
		"bob":   {},
		"carol": {},
	})

	if len(removed) != 1 || removed[0] != "carol" {
		t.Errorf("removed = %v, want carol despite bob's kick failing", removed)
	}
}

func TestRemoveFlaggedDepartedMemberSkipped(t *testing.T) {
	client := &fakeClient{
		members: []models.Member{{ID: "1", Username: "alice"}},
	}
	svc := newTestService(t, client)

	// ghost was flagged but already left; the fresh membership fetch
	// simply does not find them.
	removed := svc.removeFlagged(map[string]struct{}{"ghost": {}})
	if len(removed) != 0 {
		t.Errorf("removed = %v, want none", removed)
	}
	if len(client.kicked) != 0 {
		t.Errorf("kicked %v, want none", client.kicked)
	}
}

func TestRemoveFlaggedMembershipFetchFails(t *testing.T) {
	client := &fakeClient{membersErr: fmt.Errorf("unreachable")}
	svc := newTestService(t, client)

	if removed := svc.removeFlagged(map[string]struct{}{"bob": {}}); removed != nil {
		t.Errorf("removed = %v, want none when membership cannot be refreshed", removed)
	}
}
