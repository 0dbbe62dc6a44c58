package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/ieee-uottawa/ieee-office-discord-bot/internal/leaderboard"
	"github.com/ieee-uottawa/ieee-office-discord-bot/internal/officeapi"

	"github.com/bwmarrin/discordgo"
)

const colorGreen = 0x2ECC71
const colorGrey = 0x95A5A6
const colorRed = 0xE74C3C
const colorBlue = 0x3498DB
const colorPurple = 0x9B59B6
const colorGold = 0xF1C40F

const dashboardTitle = "🏢 IEEE Office Presence"

// DashboardEmbed builds the office presence dashboard. A non nil fetch
// error produces the server connection error variant
func DashboardEmbed(attendees []officeapi.Attendee, fetchErr error) *discordgo.MessageEmbed {

	footer := &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Last update: %s", time.Now().Format("15:04:05")),
	}

	if fetchErr != nil {
		return &discordgo.MessageEmbed{
			Title:       dashboardTitle,
			Description: "⚠️ **Server Connection Error**",
			Color:       colorRed,
			Fields: []*discordgo.MessageEmbedField{{
				Name:   "Error:",
				Value:  fmt.Sprintf("Unable to fetch data from server.\n```%s```", fetchErr),
				Inline: false,
			}},
			Footer: footer,
		}
	}

	var value string
	var color int
	if len(attendees) == 0 {
		value = "No one is currently in the office."
		color = colorGrey
	} else {
		lines := make([]string, 0, len(attendees))
		for _, attendee := range attendees {
			since := attendee.SigninTime
			if t, err := leaderboard.ParseTimestamp(attendee.SigninTime); err == nil {
				since = t.Format("15:04")
			}
			lines = append(lines, fmt.Sprintf("• **%s** (since %s)", attendee.Name, since))
		}
		value = strings.Join(lines, "\n")
		color = colorGreen
	}

	return &discordgo.MessageEmbed{
		Title:       dashboardTitle,
		Description: "Current occupancy status:",
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{{
			Name:   "Currently in office:",
			Value:  value,
			Inline: false,
		}},
		Footer: footer,
	}
}

func InitialDashboardEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       dashboardTitle,
		Description: "Initializing...",
		Color:       colorGreen,
	}
}

func MembersEmbed(members []officeapi.Member) *discordgo.MessageEmbed {

	lines := make([]string, 0, len(members))
	for _, member := range members {
		lines = append(lines, fmt.Sprintf("• **%s** (UID: `%s`, Discord ID: `%s`)", member.Name, member.Uid, member.DiscordId))
	}

	return &discordgo.MessageEmbed{
		Title:       "📋 Registered Members",
		Description: strings.Join(lines, "\n"),
		Color:       colorBlue,
	}
}

func ScanHistoryEmbed(scans []officeapi.ScanEvent) *discordgo.MessageEmbed {

	lines := make([]string, 0, len(scans))
	for i := range scans {
		scan := &scans[i]

		uid := scan.Uid
		if uid == "" {
			uid = "Unknown UID"
		}

		timeStr := scan.When()
		if timeStr == "" {
			timeStr = "Unknown time"
		} else if t, err := leaderboard.ParseTimestamp(timeStr); err == nil {
			timeStr = t.Format("2006-01-02 15:04:05")
		}

		if scan.Name != "" {
			lines = append(lines, fmt.Sprintf("• **%s** (UID `%s`) — %s", scan.Name, uid, timeStr))
		} else {
			lines = append(lines, fmt.Sprintf("• **%s** — %s", uid, timeStr))
		}
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("📜 Last %d Scan Events", SCAN_HISTORY_SIZE),
		Description: strings.Join(lines, "\n"),
		Color:       colorPurple,
	}
}

func HistoryEmbed(sessions []officeapi.VisitSession) *discordgo.MessageEmbed {

	lines := make([]string, 0, len(sessions))
	for _, session := range sessions {
		signin, errIn := leaderboard.ParseTimestamp(session.SigninTime)
		signout, errOut := leaderboard.ParseTimestamp(session.SignoutTime)
		if errIn != nil || errOut != nil {
			// Show the raw strings rather than dropping the visit
			lines = append(lines, fmt.Sprintf("• **%s** — %s to %s", session.Name, session.SigninTime, session.SignoutTime))
			continue
		}

		lines = append(lines, fmt.Sprintf("• **%s** — %s %s-%s (%s)",
			session.Name,
			signin.Format("2006-01-02"),
			signin.Format("15:04"),
			signout.Format("15:04"),
			FormatDuration(signout.Sub(signin).Hours())))
	}

	return &discordgo.MessageEmbed{
		Title:       "🕒 Office Visit History",
		Description: strings.Join(lines, "\n"),
		Color:       colorBlue,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Showing last %d visit(s)", len(sessions)),
		},
	}
}

func LeaderboardEmbed(entries []leaderboard.Entry, days int) *discordgo.MessageEmbed {

	lines := make([]string, 0, len(entries))
	for i, entry := range entries {
		lines = append(lines, fmt.Sprintf("%s **%s** — %d visit(s), %s total, %s avg",
			rankMarker(i+1), entry.Name, entry.Visits,
			FormatDuration(entry.TotalHours), FormatDuration(entry.AvgHours)))
	}

	return &discordgo.MessageEmbed{
		Title:       "🏆 Office Leaderboard",
		Description: strings.Join(lines, "\n"),
		Color:       colorGold,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Last %d day(s) • ranked by visits, then hours", days),
		},
	}
}

// FormatDuration renders fractional hours the way the dashboard always
// has: tenths of hours from one hour of magnitude up, whole minutes
// below. Negative durations keep their sign
func FormatDuration(hours float64) string {
	if hours >= 1 || hours <= -1 {
		return fmt.Sprintf("%.1fh", hours)
	}
	return fmt.Sprintf("%.0fm", hours*60)
}

func rankMarker(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("`#%d`", rank)
	}
}
