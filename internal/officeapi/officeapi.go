package officeapi

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/ieee-uottawa/ieee-office-discord-bot/internal/common"

	"github.com/rs/zerolog/log"
)

// Routes inside the attendance backend
const ROUTE_CURRENT = "/current"
const ROUTE_MEMBERS = "/members"
const ROUTE_COUNT = "/count"
const ROUTE_SCAN_HISTORY = "/scan-history"
const ROUTE_HISTORY = "/history"
const ROUTE_VISITS = "/visits"
const ROUTE_SIGNOUT_ALL = "/sign-out-all"
const ROUTE_SIGNIN_DISCORD = "/sign-in-discord"
const ROUTE_SIGNOUT_DISCORD = "/sign-out-discord"

// Timeout for interactive requests
const REQUEST_TIMEOUT = 5 * time.Second

// The leaderboard fetch can return a lot of rows, so it gets more room
const VISITS_TIMEOUT = 10 * time.Second

// The backend caps how many raw visits a single fetch may return
const MAX_VISITS_LIMIT = 1000

type OfficeApi struct {
	serverUrl string
	proxy     common.Proxy
}

func NewOfficeApi(serverUrl string, apiKey string, restrictions []common.Restriction) OfficeApi {

	var api OfficeApi

	api.serverUrl = serverUrl
	header := map[string]string{"Content-Type": "application/json"}
	if apiKey != "" {
		header["X-API-Key"] = apiKey
	}
	api.proxy = common.NewProxy(header, restrictions)

	return api
}

// GetCurrent returns the attendees currently signed in,
// sorted by signin time by the backend
func (api *OfficeApi) GetCurrent(vital bool) ([]Attendee, error) {

	data, err := api.proxy.Get(api.serverUrl+ROUTE_CURRENT, REQUEST_TIMEOUT, vital)
	if err != nil {
		return nil, fmt.Errorf("could not fetch current attendees: %w", err)
	}

	return UnmarshalAttendees(data)
}

func (api *OfficeApi) GetMembers() ([]Member, error) {

	data, err := api.proxy.Get(api.serverUrl+ROUTE_MEMBERS, REQUEST_TIMEOUT, true)
	if err != nil {
		return nil, fmt.Errorf("could not fetch members: %w", err)
	}

	var members []Member
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (api *OfficeApi) AddMember(member Member) error {

	body, err := json.Marshal(member)
	if err != nil {
		return err
	}
	if _, err := api.proxy.Post(api.serverUrl+ROUTE_MEMBERS, body, REQUEST_TIMEOUT, true); err != nil {
		return fmt.Errorf("could not add member: %w", err)
	}
	log.Debug().Msg(fmt.Sprintf("Added member %s with uid %s", member.Name, member.Uid))
	return nil
}

func (api *OfficeApi) GetCount() (int, error) {

	data, err := api.proxy.Get(api.serverUrl+ROUTE_COUNT, REQUEST_TIMEOUT, true)
	if err != nil {
		return 0, fmt.Errorf("could not fetch occupancy count: %w", err)
	}

	return UnmarshalCount(data)
}

func (api *OfficeApi) GetScanHistory() ([]ScanEvent, error) {

	data, err := api.proxy.Get(api.serverUrl+ROUTE_SCAN_HISTORY, REQUEST_TIMEOUT, true)
	if err != nil {
		return nil, fmt.Errorf("could not fetch scan history: %w", err)
	}

	var scans []ScanEvent
	if err := json.Unmarshal(data, &scans); err != nil {
		return nil, err
	}
	return scans, nil
}

func (api *OfficeApi) GetHistory() ([]VisitSession, error) {

	data, err := api.proxy.Get(api.serverUrl+ROUTE_HISTORY, REQUEST_TIMEOUT, true)
	if err != nil {
		return nil, fmt.Errorf("could not fetch visit history: %w", err)
	}

	return UnmarshalVisits(data)
}

// GetVisits fetches the raw visit sessions inside the provided window.
// The limit is clamped to what the backend accepts
func (api *OfficeApi) GetVisits(from time.Time, to time.Time, limit int) ([]VisitSession, error) {

	if limit < 1 {
		limit = 1
	} else if limit > MAX_VISITS_LIMIT {
		limit = MAX_VISITS_LIMIT
	}

	query := url.Values{}
	query.Set("from", from.Format(time.RFC3339))
	query.Set("to", to.Format(time.RFC3339))
	query.Set("limit", fmt.Sprintf("%d", limit))

	data, err := api.proxy.Get(api.serverUrl+ROUTE_VISITS+"?"+query.Encode(), VISITS_TIMEOUT, true)
	if err != nil {
		return nil, fmt.Errorf("could not fetch visits: %w", err)
	}

	return UnmarshalVisits(data)
}

func (api *OfficeApi) SignOutAll() error {

	if _, err := api.proxy.Post(api.serverUrl+ROUTE_SIGNOUT_ALL, nil, REQUEST_TIMEOUT, true); err != nil {
		return fmt.Errorf("could not sign out all members: %w", err)
	}
	return nil
}

func (api *OfficeApi) SignInDiscord(discordid DiscordId) (string, error) {

	return api.signDiscord(ROUTE_SIGNIN_DISCORD, discordid)
}

func (api *OfficeApi) SignOutDiscord(discordid DiscordId) (string, error) {

	return api.signDiscord(ROUTE_SIGNOUT_DISCORD, discordid)
}

func (api *OfficeApi) signDiscord(route string, discordid DiscordId) (string, error) {

	body, err := json.Marshal(map[string]string{"discord_id": string(discordid)})
	if err != nil {
		return "", err
	}

	data, err := api.proxy.Post(api.serverUrl+route, body, REQUEST_TIMEOUT, true)
	if err != nil {
		return "", fmt.Errorf("could not post to %s for discord id %s: %w", route, discordid, err)
	}

	message, err := UnmarshalMessage(data)
	if err != nil {
		// The backend reply is only used for logging, so a missing
		// message is not worth failing the operation
		log.Debug().Msg(fmt.Sprintf("No message in backend response for %s", route))
		return "", nil
	}
	log.Debug().Msg(message)
	return message, nil
}
