package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-engine/internal/league"
	"github.com/mauv0809/league-engine/internal/metrics"
	"github.com/mauv0809/league-engine/internal/notifier"
	"github.com/mauv0809/league-engine/internal/scoring"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) error {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return nil
}

// Implement the Notifier interface
func (s *Notifier) SendMatchesPlanned(eventID string, matches []league.Match, playerNames map[string]string, waitlist []string, dryRun bool) error {
	msg := s.formatMatchesPlanned(eventID, matches, playerNames, waitlist)
	return s.sendMessage(msg, dryRun)
}

func (s *Notifier) SendLeaderboard(eventID string, entries []league.RankingEntry, dryRun bool) error {
	msg := s.formatLeaderboard(eventID, entries)
	return s.sendMessage(msg, dryRun)
}

func (s *Notifier) SendTieBreakPrompt(eventID string, tied []scoring.TiedPlayer, dryRun bool) error {
	msg := s.formatTieBreakPrompt(eventID, tied)
	return s.sendMessage(msg, dryRun)
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(entries []league.RankingEntry) (any, error) {
	return s.formatLeaderboard("", entries), nil
}

func categoryLabel(c league.Category) string {
	switch c {
	case league.CategoryMensSingles:
		return "Men's singles"
	case league.CategoryWomensSingles:
		return "Women's singles"
	case league.CategoryMensDoubles:
		return "Men's doubles"
	case league.CategoryWomensDoubles:
		return "Women's doubles"
	case league.CategoryMixedDoubles:
		return "Mixed doubles"
	}
	return "Singles"
}

func teamLabel(team []string, names map[string]string) string {
	parts := make([]string, 0, len(team))
	for _, id := range team {
		if name, ok := names[id]; ok && name != "" {
			parts = append(parts, name)
		} else {
			parts = append(parts, id)
		}
	}
	return strings.Join(parts, " / ")
}

// formatMatchesPlanned creates the Slack message for a freshly planned event using Block Kit.
func (s *Notifier) formatMatchesPlanned(eventID string, matches []league.Match, names map[string]string, waitlist []string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏸 Matches are up! 🏸", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var lines []string
	for _, m := range matches {
		lines = append(lines, fmt.Sprintf("• %s: %s vs %s", categoryLabel(m.Category), teamLabel(m.TeamA, names), teamLabel(m.TeamB, names)))
	}
	if len(lines) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))
	}

	if len(waitlist) > 0 {
		var waitNames []string
		for _, id := range waitlist {
			if name, ok := names[id]; ok && name != "" {
				waitNames = append(waitNames, name)
			} else {
				waitNames = append(waitNames, id)
			}
		}
		waitText := slack.NewTextBlockObject("plain_text", "Waitlist: "+strings.Join(waitNames, ", "), true, false)
		blocks = append(blocks, slack.NewContextBlock("", waitText))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates the Slack message for a locked event leaderboard.
func (s *Notifier) formatLeaderboard(eventID string, entries []league.RankingEntry) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Event leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var lines []string
	for _, e := range entries {
		name := e.PlayerName
		if name == "" {
			name = e.PlayerID
		}
		medal := ""
		switch e.Rank {
		case 1:
			medal = "🥇 "
		case 2:
			medal = "🥈 "
		case 3:
			medal = "🥉 "
		}
		lines = append(lines, fmt.Sprintf("%d. %s%s — %d pts (%d wins, %+d games)", e.Rank, medal, name, e.Points, e.Wins, e.GameDiff))
	}
	if len(lines) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatTieBreakPrompt creates the Slack message asking for a first-place decision.
func (s *Notifier) formatTieBreakPrompt(eventID string, tied []scoring.TiedPlayer) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "⚖️ First place is tied!", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var lines []string
	for _, t := range tied {
		name := t.PlayerName
		if name == "" {
			name = t.PlayerID
		}
		lines = append(lines, fmt.Sprintf("• %s (%d wins, %+d games)", name, t.Wins, t.GameDiff))
	}
	body := "A champion must be chosen before the leaderboard can be locked:\n" + strings.Join(lines, "\n")
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", body, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
