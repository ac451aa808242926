package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/omarshaarawi/recapbot/internal/models"
)

type Config struct {
	Server      Server
	OpenAI      OpenAI
	ESPNAPI     ESPNAPI
	Rankings    Rankings
	League      League
	TelegramBot TelegramBot
	Schedule    Schedule
}

type Server struct {
	Addr        string   `envconfig:"HTTP_ADDR" default:":8080"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
}

type OpenAI struct {
	APIKey       string `envconfig:"OPENAI_API_KEY" required:"true"`
	BaseURL      string `envconfig:"OPENAI_BASE_URL"`
	PersonasFile string `envconfig:"PERSONAS_FILE"`
}

type ESPNAPI struct {
	BaseURL string        `envconfig:"ESPN_BASE_URL"`
	Timeout time.Duration `envconfig:"ESPN_TIMEOUT" default:"10s"`
}

type Rankings struct {
	Path string `envconfig:"RANKINGS_FILE"`
}

// League is the league the Telegram bot and the scheduled recap report on.
// The web form never reads it.
type League struct {
	LeagueID string `envconfig:"LEAGUE_ID"`
	Year     string `envconfig:"YEAR"`
	SWID     string `envconfig:"SWID"`
	ESPNS2   string `envconfig:"ESPN_S2"`
}

func (l League) Credentials() models.LeagueCredentials {
	return models.LeagueCredentials{
		LeagueID: l.LeagueID,
		Year:     l.Year,
		SWID:     l.SWID,
		ESPNS2:   l.ESPNS2,
	}
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

func (t TelegramBot) Enabled() bool {
	return t.Token != ""
}

type Schedule struct {
	Location string `envconfig:"RECAP_SCHEDULE_LOCATION" default:"America/Chicago"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
