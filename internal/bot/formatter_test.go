package bot

import (
	"fmt"
	"testing"

	"github.com/ieee-uottawa/ieee-office-discord-bot/internal/leaderboard"
	"github.com/ieee-uottawa/ieee-office-discord-bot/internal/officeapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardEmbed_ShowsAttendees_When_OfficeIsOccupied(t *testing.T) {
	t.Parallel()

	attendees := []officeapi.Attendee{
		{Name: "Alice", SigninTime: "2026-03-10T09:15:00"},
		{Name: "Bob", SigninTime: "2026-03-10T10:30:00"},
	}

	embed := DashboardEmbed(attendees, nil)

	assert.Equal(t, colorGreen, embed.Color)
	require.Len(t, embed.Fields, 1)
	assert.Contains(t, embed.Fields[0].Value, "**Alice** (since 09:15)")
	assert.Contains(t, embed.Fields[0].Value, "**Bob** (since 10:30)")
	require.NotNil(t, embed.Footer)
	assert.Contains(t, embed.Footer.Text, "Last update:")
}

func TestDashboardEmbed_ShowsNotice_When_OfficeIsEmpty(t *testing.T) {
	t.Parallel()

	embed := DashboardEmbed(nil, nil)

	assert.Equal(t, colorGrey, embed.Color)
	require.Len(t, embed.Fields, 1)
	assert.Equal(t, "No one is currently in the office.", embed.Fields[0].Value)
}

func TestDashboardEmbed_ShowsError_When_BackendIsDown(t *testing.T) {
	t.Parallel()

	embed := DashboardEmbed(nil, fmt.Errorf("connection refused"))

	assert.Equal(t, colorRed, embed.Color)
	assert.Contains(t, embed.Description, "Server Connection Error")
	require.Len(t, embed.Fields, 1)
	assert.Contains(t, embed.Fields[0].Value, "connection refused")
}

func TestDashboardEmbed_FallsBackToRawSigninTime(t *testing.T) {
	t.Parallel()

	attendees := []officeapi.Attendee{{Name: "Alice", SigninTime: "whenever"}}

	embed := DashboardEmbed(attendees, nil)

	assert.Contains(t, embed.Fields[0].Value, "**Alice** (since whenever)")
}

func TestHistoryEmbed_FormatsParsedSessionsAndKeepsRawOnes(t *testing.T) {
	t.Parallel()

	sessions := []officeapi.VisitSession{
		{Name: "Alice", SigninTime: "2026-03-10T09:00:00", SignoutTime: "2026-03-10T10:30:00"},
		{Name: "Bob", SigninTime: "garbage", SignoutTime: "2026-03-10T10:00:00"},
	}

	embed := HistoryEmbed(sessions)

	assert.Contains(t, embed.Description, "**Alice** — 2026-03-10 09:00-10:30 (1.5h)")
	assert.Contains(t, embed.Description, "**Bob** — garbage to 2026-03-10T10:00:00")
	require.NotNil(t, embed.Footer)
	assert.Contains(t, embed.Footer.Text, "2 visit(s)")
}

func TestLeaderboardEmbed_RendersRankedEntries(t *testing.T) {
	t.Parallel()

	entries := []leaderboard.Entry{
		{Name: "Alice", Visits: 5, TotalHours: 12.5, AvgHours: 2.5},
		{Name: "Bob", Visits: 3, TotalHours: 9.0, AvgHours: 3.0},
		{Name: "Carol", Visits: 2, TotalHours: 2.0, AvgHours: 1.0},
		{Name: "Dave", Visits: 1, TotalHours: 0.5, AvgHours: 0.5},
	}

	embed := LeaderboardEmbed(entries, 7)

	assert.Contains(t, embed.Description, "🥇 **Alice** — 5 visit(s), 12.5h total, 2.5h avg")
	assert.Contains(t, embed.Description, "🥈 **Bob**")
	assert.Contains(t, embed.Description, "🥉 **Carol**")
	assert.Contains(t, embed.Description, "`#4` **Dave** — 1 visit(s), 30m total, 30m avg")
	require.NotNil(t, embed.Footer)
	assert.Contains(t, embed.Footer.Text, "Last 7 day(s)")
}

func TestMembersEmbed_ListsMembers(t *testing.T) {
	t.Parallel()

	members := []officeapi.Member{{Name: "Alice", Uid: "300012345", DiscordId: "42"}}

	embed := MembersEmbed(members)

	assert.Contains(t, embed.Description, "**Alice** (UID: `300012345`, Discord ID: `42`)")
}

func TestScanHistoryEmbed_HandlesPartialEvents(t *testing.T) {
	t.Parallel()

	scans := []officeapi.ScanEvent{
		{Uid: "300012345", Name: "Alice", Time: "2026-03-10T09:00:00"},
		{Uid: "300054321", Timestamp: "2026-03-10T09:05:00"},
		{Name: "Ghost"},
	}

	embed := ScanHistoryEmbed(scans)

	assert.Contains(t, embed.Description, "**Alice** (UID `300012345`) — 2026-03-10 09:00:00")
	assert.Contains(t, embed.Description, "**300054321** — 2026-03-10 09:05:00")
	assert.Contains(t, embed.Description, "**Ghost** (UID `Unknown UID`) — Unknown time")
}

func TestFormatDuration_SwitchesUnitsAtOneHour(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1.5h", FormatDuration(1.5))
	assert.Equal(t, "1.0h", FormatDuration(1.0))
	assert.Equal(t, "45m", FormatDuration(0.75))
	assert.Equal(t, "0m", FormatDuration(0))
	assert.Equal(t, "-30m", FormatDuration(-0.5))
	assert.Equal(t, "-2.0h", FormatDuration(-2.0))
}
