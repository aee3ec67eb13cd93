package models

import "time"

// ChannelKind mirrors the subset of Discord channel types the stats
// engine cares about. Only text channels carry messages we can count.
type ChannelKind int

const (
	ChannelText ChannelKind = iota
	ChannelVoice
	ChannelCategory
	ChannelOther
)

// Member is a guild member as seen at enumeration time.
type Member struct {
	ID       string
	Username string
	Bot      bool
}

// Channel is a guild channel tagged with its kind.
type Channel struct {
	ID   string
	Name string
	Kind ChannelKind
}

// Message is the boundary representation of a channel message; SDK
// message objects are converted to this shape before entering the
// stats engine.
type Message struct {
	ID             string
	AuthorUsername string
	Content        string
	CreatedAt      time.Time
}

// UserActivity holds one member's counters for a single stats cycle.
// Counters start at zero every cycle; LastActivity carries over between
// cycles through the ledger and only ever moves forward.
type UserActivity struct {
	Username     string
	Posts        int
	Words        int
	Letters      int
	LastActivity int64 // milliseconds since epoch
}

// ActivityClassification partitions a cycle's working set. Every
// non-bot member lands in exactly one of Active/Inactive; ForRemoval is
// the subset of inactive usernames past the removal threshold.
type ActivityClassification struct {
	Active     []*UserActivity
	Inactive   []*UserActivity
	ForRemoval map[string]struct{}
}
