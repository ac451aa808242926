package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/recapbot/internal/models"
	"github.com/omarshaarawi/recapbot/internal/service"
)

// maxMessageLength is Telegram's limit for one text message.
const maxMessageLength = 4096

type LeagueService interface {
	TeamNames(ctx context.Context, creds models.LeagueCredentials) ([]string, error)
	Recap(ctx context.Context, creds models.LeagueCredentials) (*models.Result, error)
	AnalyzeMatching(ctx context.Context, creds models.LeagueCredentials, query string) (*models.Result, error)
}

type Handler struct {
	fantasyService LeagueService
	creds          models.LeagueCredentials
}

func NewHandler(fantasyService LeagueService, creds models.LeagueCredentials) *Handler {
	return &Handler{fantasyService: fantasyService, creds: creds}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) []tgbotapi.MessageConfig {
	command := strings.ToLower(update.Message.Command())
	args := update.Message.CommandArguments()
	return h.Respond(ctx, update.Message.Chat.ID, command, args)
}

// Respond runs one command and returns the reply split into sendable
// messages.
func (h *Handler) Respond(ctx context.Context, chatID int64, command, args string) []tgbotapi.MessageConfig {
	var text string

	switch command {
	case "start":
		text = "Welcome to RecapBot! Use /help to see available commands."
	case "help":
		text = "Available commands:\n/recap - Weekly league recap\n/analyze <team> - Trade and waiver suggestions for a team\n/teams - List the league's teams"
	case "recap":
		text = h.handleRecap(ctx)
	case "analyze":
		text = h.handleAnalyze(ctx, args)
	case "teams":
		text = h.handleTeams(ctx)
	default:
		text = "Unknown command. Use /help to see available commands."
	}

	chunks := splitMessage(text, maxMessageLength)
	msgs := make([]tgbotapi.MessageConfig, len(chunks))
	for i, chunk := range chunks {
		msgs[i] = tgbotapi.NewMessage(chatID, chunk)
	}
	return msgs
}

func (h *Handler) handleRecap(ctx context.Context) string {
	result, err := h.fantasyService.Recap(ctx, h.creds)
	if err != nil {
		return fmt.Sprintf("Error generating recap: %v", err)
	}
	return result.Text()
}

func (h *Handler) handleAnalyze(ctx context.Context, args string) string {
	if strings.TrimSpace(args) == "" {
		return "Please provide a team name. Usage: /analyze <team name>"
	}

	result, err := h.fantasyService.AnalyzeMatching(ctx, h.creds, args)
	if errors.Is(err, service.ErrTeamNotFound) {
		return fmt.Sprintf("Error finding team: %v", err)
	}
	if err != nil {
		return fmt.Sprintf("Error generating analysis: %v", err)
	}
	return result.Text()
}

func (h *Handler) handleTeams(ctx context.Context) string {
	names, err := h.fantasyService.TeamNames(ctx, h.creds)
	if err != nil {
		return fmt.Sprintf("Error fetching teams: %v", err)
	}

	var sb strings.Builder
	sb.WriteString("Teams:\n")
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("• %s\n", name))
	}
	return sb.String()
}

// splitMessage cuts text into chunks of at most limit bytes, preferring line
// boundaries and never splitting a rune.
func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		if current.Len()+len(line) <= limit {
			current.WriteString(line)
			continue
		}
		flush()
		for len(line) > limit {
			cut := limit
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}
		current.WriteString(line)
	}
	flush()

	return chunks
}
