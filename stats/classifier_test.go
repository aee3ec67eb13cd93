package stats

import (
	"reflect"
	"testing"

	"elprimobot/models"
)

func workingSet(recs ...*models.UserActivity) map[string]*models.UserActivity {
	m := make(map[string]*models.UserActivity, len(recs))
	for _, r := range recs {
		m[r.Username] = r
	}
	return m
}

func TestClassifyPartition(t *testing.T) {
	working := workingSet(
		&models.UserActivity{Username: "alice", Posts: 3, LastActivity: testNow.UnixMilli()},
		&models.UserActivity{Username: "bob", Posts: 0, LastActivity: daysAgoMillis(70)},
		&models.UserActivity{Username: "carol", Posts: 0, LastActivity: daysAgoMillis(10)},
		&models.UserActivity{Username: "dave", Posts: 9, LastActivity: testNow.UnixMilli()},
	)

	cls := Classify(working, testNow, 8)

	if len(cls.Active)+len(cls.Inactive) != len(working) {
		t.Errorf("partition incomplete: %d active + %d inactive != %d users",
			len(cls.Active), len(cls.Inactive), len(working))
	}

	// active sorted by posts descending
	if cls.Active[0].Username != "dave" || cls.Active[1].Username != "alice" {
		t.Errorf("active order wrong: %s, %s", cls.Active[0].Username, cls.Active[1].Username)
	}
	// inactive sorted most stale first
	if cls.Inactive[0].Username != "bob" || cls.Inactive[1].Username != "carol" {
		t.Errorf("inactive order wrong: %s, %s", cls.Inactive[0].Username, cls.Inactive[1].Username)
	}

	// removal set is a subset of the inactive usernames
	inactiveNames := make(map[string]struct{})
	for _, rec := range cls.Inactive {
		inactiveNames[rec.Username] = struct{}{}
	}
	for username := range cls.ForRemoval {
		if _, ok := inactiveNames[username]; !ok {
			t.Errorf("%s flagged for removal but not inactive", username)
		}
	}
}

func TestClassifyStaleMemberFlagged(t *testing.T) {
	// 70 days of silence against an 8-week (56-day) threshold
	working := workingSet(
		&models.UserActivity{Username: "bob", Posts: 0, LastActivity: daysAgoMillis(70)},
	)

	cls := Classify(working, testNow, 8)
	if _, ok := cls.ForRemoval["bob"]; !ok {
		t.Error("bob should be flagged for removal")
	}
}

func TestClassifyFreshMemberNotFlagged(t *testing.T) {
	// no prior history: lastActivity defaulted to now is never stale
	working := workingSet(
		&models.UserActivity{Username: "alice", Posts: 0, LastActivity: testNow.UnixMilli()},
	)

	cls := Classify(working, testNow, 8)
	if len(cls.Active) != 0 {
		t.Error("alice posted nothing, should not be active")
	}
	if len(cls.Inactive) != 1 || cls.Inactive[0].Username != "alice" {
		t.Error("alice should be inactive")
	}
	if len(cls.ForRemoval) != 0 {
		t.Errorf("alice must not be flagged for removal: %v", cls.ForRemoval)
	}
}

func TestClassifyThresholdIsStrict(t *testing.T) {
	exactly := testNow.UnixMilli() - 8*7*millisPerDay
	working := workingSet(
		&models.UserActivity{Username: "edge", Posts: 0, LastActivity: exactly},
		&models.UserActivity{Username: "past", Posts: 0, LastActivity: exactly - 1},
	)

	cls := Classify(working, testNow, 8)
	if _, ok := cls.ForRemoval["edge"]; ok {
		t.Error("lastActivity exactly at the cutoff must not be flagged")
	}
	if _, ok := cls.ForRemoval["past"]; !ok {
		t.Error("lastActivity one ms past the cutoff must be flagged")
	}
}

func TestClassifyIdempotent(t *testing.T) {
	working := workingSet(
		&models.UserActivity{Username: "alice", Posts: 3, Words: 10, Letters: 40, LastActivity: testNow.UnixMilli()},
		&models.UserActivity{Username: "bob", Posts: 0, LastActivity: daysAgoMillis(70)},
		&models.UserActivity{Username: "carol", Posts: 3, LastActivity: testNow.UnixMilli()},
	)

	first := Classify(working, testNow, 8)
	second := Classify(working, testNow, 8)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("classification not deterministic:\nfirst  %+v\nsecond %+v", first, second)
	}
}
