package bot

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ieee-uottawa/ieee-office-discord-bot/internal/config"
	"github.com/ieee-uottawa/ieee-office-discord-bot/internal/officeapi"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBot(t *testing.T, handler http.HandlerFunc) *Bot {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	api := officeapi.NewOfficeApi(server.URL, "", nil)
	cfg := config.Config{
		DiscordToken:       "token",
		ServerUrl:          server.URL,
		TrackerChannelName: "office-tracker",
		CommunityGuildId:   "100",
		ExecGuildId:        "200",
		RefreshCooldown:    15 * time.Second,
		MainCycle:          5 * time.Second,
		AutoRefreshPeriod:  time.Minute,
	}
	return NewBot(cfg, &api)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// A real session whose REST calls never leave the process: every
// request is handed to observe and answered with an empty object
func discordSession(t *testing.T, observe func(*http.Request)) *discordgo.Session {
	t.Helper()

	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	session.Client = &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		observe(r)
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader("{}")),
		}, nil
	})}
	return session
}

func commandInteraction(name string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:    "interaction-id",
		AppID: "app-id",
		Token: "interaction-token",
		Type:  discordgo.InteractionApplicationCommand,
		Data:  discordgo.ApplicationCommandInteractionData{Name: name},
	}}
}

func componentInteraction(customid string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:    "interaction-id",
		AppID: "app-id",
		Token: "interaction-token",
		Type:  discordgo.InteractionMessageComponent,
		Data:  discordgo.MessageComponentInteractionData{CustomID: customid},
	}}
}

func TestComputeLeaderboard_AggregatesFetchedVisits(t *testing.T) {
	t.Parallel()

	bot := testBot(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/visits", r.URL.Path)
		w.Write([]byte(`[
			{"name":"Alice","signin_time":"2026-03-10T09:00:00","signout_time":"2026-03-10T10:00:00"},
			{"name":"Alice","signin_time":"2026-03-09T09:00:00","signout_time":"2026-03-09T10:00:00"},
			{"name":"Bob","signin_time":"2026-03-10T09:00:00","signout_time":"2026-03-10T12:00:00"}
		]`))
	})

	entries, errMessage := bot.computeLeaderboard(7, 10)

	assert.Empty(t, errMessage)
	require.Len(t, entries, 2)
	assert.Equal(t, "Alice", entries[0].Name)
	assert.Equal(t, 2, entries[0].Visits)
	assert.Equal(t, "Bob", entries[1].Name)
}

func TestComputeLeaderboard_ReportsFetchFailures(t *testing.T) {
	t.Parallel()

	bot := testBot(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	entries, errMessage := bot.computeLeaderboard(7, 10)

	assert.Nil(t, entries)
	assert.True(t, strings.HasPrefix(errMessage, "Failed to fetch data: "), errMessage)
}

func TestComputeLeaderboard_EmptyWindowIsNotAnError(t *testing.T) {
	t.Parallel()

	bot := testBot(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	entries, errMessage := bot.computeLeaderboard(30, 10)

	assert.Empty(t, errMessage)
	assert.Empty(t, entries)
}

func TestLeaderboard_AcknowledgesBeforeFetchingVisits(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var calls []string
	record := func(name string) {
		mu.Lock()
		calls = append(calls, name)
		mu.Unlock()
	}

	bot := testBot(t, func(w http.ResponseWriter, r *http.Request) {
		record("backend " + r.URL.Path)
		w.Write([]byte(`[]`))
	})
	discord := discordSession(t, func(r *http.Request) {
		record("discord " + r.URL.Path)
	})

	bot.leaderboard(discord, commandInteraction("leaderboard"))

	// The interaction is acknowledged before the backend fetch, and
	// the reply arrives as a followup afterwards
	require.Len(t, calls, 3)
	assert.Contains(t, calls[0], "callback")
	assert.Equal(t, "backend /visits", calls[1])
	assert.Contains(t, calls[2], "webhooks")
}

func TestDoRefresh_SurvivesConcurrentClicks(t *testing.T) {
	t.Parallel()

	bot := testBot(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	discord := discordSession(t, func(r *http.Request) {})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bot.doRefresh(discord, componentInteraction(CTRL_REFRESH_BUTTON))
		}()
	}
	wg.Wait()

	bot.cooldownMu.Lock()
	defer bot.cooldownMu.Unlock()
	assert.True(t, bot.refreshCooldown.Running())
}

func TestViewComponents_MatchGuildMode(t *testing.T) {
	t.Parallel()

	control := buttonIds(t, viewComponents(MODE_CONTROL))
	assert.Equal(t, []string{CTRL_LEAVE_BUTTON, CTRL_REFRESH_BUTTON}, control)

	viewOnly := buttonIds(t, viewComponents(MODE_VIEW_ONLY))
	assert.Equal(t, []string{RO_REFRESH_BUTTON}, viewOnly)
}

func buttonIds(t *testing.T, components []discordgo.MessageComponent) []string {
	t.Helper()

	require.Len(t, components, 1)
	row, ok := components[0].(discordgo.ActionsRow)
	require.True(t, ok)

	ids := []string{}
	for _, component := range row.Components {
		button, ok := component.(discordgo.Button)
		require.True(t, ok)
		ids = append(ids, button.CustomID)
	}
	return ids
}
