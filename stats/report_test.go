package stats

import (
	"strings"
	"testing"

	"elprimobot/models"
)

func TestStaleLinesFiltersFreshUsers(t *testing.T) {
	inactive := []*models.UserActivity{
		{Username: "bob", LastActivity: daysAgoMillis(70)},
		{Username: "carol", LastActivity: daysAgoMillis(2)},
		{Username: "dave", LastActivity: testNow.UnixMilli()},
	}

	lines := staleLines(inactive, testNow)
	joined := strings.Join(lines, "\n")

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 (dave is fresh): %v", len(lines), lines)
	}
	if !strings.Contains(joined, "bob (70 days)") {
		t.Errorf("missing bob: %v", lines)
	}
	if !strings.Contains(joined, "carol (2 days)") {
		t.Errorf("missing carol: %v", lines)
	}
}

func TestBuildReportEmbedFields(t *testing.T) {
	cls := models.ActivityClassification{
		Active: []*models.UserActivity{
			{Username: "alice", Posts: 5, Words: 50, Letters: 250, LastActivity: testNow.UnixMilli()},
		},
		Inactive: []*models.UserActivity{
			{Username: "bob", LastActivity: daysAgoMillis(70)},
		},
		ForRemoval: map[string]struct{}{"bob": {}},
	}

	embed := buildReportEmbed(cls, []string{"bob"}, testNow)
	if len(embed.Fields) != 3 {
		t.Fatalf("got %d fields, want active + inactive + removed", len(embed.Fields))
	}
	if !strings.Contains(embed.Fields[0].Value, "**alice** **(** 5 **|** 50 **|** 250** )**") {
		t.Errorf("active row format wrong: %q", embed.Fields[0].Value)
	}
}

func TestBuildReportEmbedOmitsEmptySections(t *testing.T) {
	cls := models.ActivityClassification{
		Inactive: []*models.UserActivity{
			{Username: "dave", LastActivity: testNow.UnixMilli()},
		},
		ForRemoval: map[string]struct{}{},
	}

	embed := buildReportEmbed(cls, nil, testNow)
	if len(embed.Fields) != 0 {
		t.Errorf("got %d fields, want none (no active, nobody stale, nobody removed)", len(embed.Fields))
	}
}

func TestSendReportStatsChannelMissing(t *testing.T) {
	client := &fakeClient{
		channels: []models.Channel{
			{ID: "c1", Name: "general", Kind: models.ChannelText},
		},
	}
	svc := newTestService(t, client)

	cls := models.ActivityClassification{
		Active: []*models.UserActivity{
			{Username: "alice", Posts: 1, LastActivity: testNow.UnixMilli()},
		},
	}
	if err := svc.sendReport(cls, nil, "**Weekly Stats**"); err == nil {
		t.Fatal("expected error when the stats channel does not exist")
	}
}
