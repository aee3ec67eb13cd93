package stats

import (
	"sort"
	"time"

	"elprimobot/models"
)

const millisPerDay = 24 * 60 * 60 * 1000

// Classify partitions a cycle's working set: members with at least one
// post this cycle are active, everyone else inactive, and inactive
// members last seen before the removal cutoff are flagged. Pure
// function; deterministic for a given working set and instant.
func Classify(working map[string]*models.UserActivity, now time.Time, removalWeeks int) models.ActivityClassification {
	cls := models.ActivityClassification{
		ForRemoval: make(map[string]struct{}),
	}

	for _, rec := range working {
		if rec.Posts > 0 {
			cls.Active = append(cls.Active, rec)
		} else {
			cls.Inactive = append(cls.Inactive, rec)
		}
	}

	sort.Slice(cls.Active, func(i, j int) bool {
		if cls.Active[i].Posts != cls.Active[j].Posts {
			return cls.Active[i].Posts > cls.Active[j].Posts
		}
		return cls.Active[i].Username < cls.Active[j].Username
	})
	// most stale first
	sort.Slice(cls.Inactive, func(i, j int) bool {
		if cls.Inactive[i].LastActivity != cls.Inactive[j].LastActivity {
			return cls.Inactive[i].LastActivity < cls.Inactive[j].LastActivity
		}
		return cls.Inactive[i].Username < cls.Inactive[j].Username
	})

	cutoff := now.UnixMilli() - int64(removalWeeks)*7*millisPerDay
	for _, rec := range cls.Inactive {
		if rec.LastActivity < cutoff {
			cls.ForRemoval[rec.Username] = struct{}{}
		}
	}

	return cls
}
