package service

import (
	"context"
	"testing"
	"time"

	"conference-central/tasks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conferenceWithSeats(t *testing.T, f *fixture, name string, seats int) {
	t.Helper()
	f.mustCreateConference(t, "orga", ConferenceInput{
		Name:         name,
		StartDate:    "2026-07-01",
		EndDate:      "2026-07-03",
		MaxAttendees: seats,
	})
}

func TestRebuildNearSoldOutAnnouncement(t *testing.T) {
	f := newFixture(t)
	conferenceWithSeats(t, f, "Sold Out", 0)
	conferenceWithSeats(t, f, "Almost Gone", 3)
	conferenceWithSeats(t, f, "Filling Up", 5)
	conferenceWithSeats(t, f, "Plenty Left", 6)

	announcement, err := f.svc.RebuildNearSoldOutAnnouncement(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Last chance to attend! The following conferences are nearly sold out: Almost Gone, Filling Up", announcement)
	assert.Equal(t, announcement, f.svc.Announcement())
}

func TestRebuildAnnouncementClearsSlotWhenNothingNearSoldOut(t *testing.T) {
	f := newFixture(t)
	conferenceWithSeats(t, f, "Plenty Left", 50)
	ctx := context.Background()

	// preload the slot, then verify the rebuild clears it
	f.slots.Set("RECENT_ANNOUNCEMENTS", "stale")
	announcement, err := f.svc.RebuildNearSoldOutAnnouncement(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", announcement)
	assert.Equal(t, "", f.svc.Announcement())
}

func TestAnnouncementEmptyWhenNeverBuilt(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "", f.svc.Announcement())
	assert.Equal(t, "", f.svc.FeaturedSpeaker())
}

func TestRebuildFeaturedSpeaker(t *testing.T) {
	f := newFixture(t)
	conf := f.mustCreateConference(t, "orga", standardConference())
	f.mustCreateSession(t, "orga", conf.WebsafeKey(), talkAt("Zebra", "Rob", "2026-07-01", "09:00:00"))
	f.mustCreateSession(t, "orga", conf.WebsafeKey(), talkAt("Alpha", "Rob", "2026-07-02", "09:00:00"))

	announcement, err := f.svc.RebuildFeaturedSpeaker(context.Background(), "Rob")
	require.NoError(t, err)
	assert.Equal(t, "These sessions will have our featured speaker Rob: Alpha, Zebra", announcement)
	assert.Equal(t, announcement, f.svc.FeaturedSpeaker())
}

func TestRebuildIsIdempotent(t *testing.T) {
	f := newFixture(t)
	conferenceWithSeats(t, f, "Almost Gone", 2)
	ctx := context.Background()

	first, err := f.svc.RebuildNearSoldOutAnnouncement(ctx)
	require.NoError(t, err)
	second, err := f.svc.RebuildNearSoldOutAnnouncement(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTaskHandlersRebuildThroughQueue(t *testing.T) {
	f := newFixture(t)
	conferenceWithSeats(t, f, "Almost Gone", 2)

	queue := tasks.NewQueue()
	f.svc.RegisterTaskHandlers(queue)
	queue.Start()
	defer queue.Stop()

	queue.Enqueue(TaskRebuildAnnouncement, nil)
	assert.Eventually(t, func() bool {
		return f.svc.Announcement() != ""
	}, 2*time.Second, 10*time.Millisecond)
}
