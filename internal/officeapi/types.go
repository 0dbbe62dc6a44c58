package officeapi

type DiscordId string

// Attendee is someone currently signed in at the office
type Attendee struct {
	Name       string `json:"name"`
	SigninTime string `json:"signin_time"`
}

// Member is an entry of the backend member registry, linking a person
// to their card uid and discord account
type Member struct {
	Name      string    `json:"name"`
	Uid       string    `json:"uid"`
	DiscordId DiscordId `json:"discord_id"`
}

// ScanEvent is a single card scan at the office reader.
// The backend has emitted the timestamp under two different keys
// over time, so both are kept
type ScanEvent struct {
	Uid       string `json:"uid"`
	Name      string `json:"name,omitempty"`
	Time      string `json:"time,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// VisitSession is one completed office visit.
// Timestamps stay as the ISO-8601 strings the backend sent;
// whoever consumes a session decides how strictly to parse them
type VisitSession struct {
	Name        string `json:"name"`
	SigninTime  string `json:"signin_time"`
	SignoutTime string `json:"signout_time"`
}

// When returns whichever timestamp key the backend filled in
func (scan *ScanEvent) When() string {
	if scan.Time != "" {
		return scan.Time
	}
	return scan.Timestamp
}
