package espn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/omarshaarawi/recapbot/internal/config"
	"github.com/omarshaarawi/recapbot/internal/models"
)

const defaultBaseURL = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl"

// ErrStatus is returned when ESPN answers with anything but 200. A 401 here
// almost always means the SWID/espn_s2 cookies are wrong or expired.
var ErrStatus = errors.New("unexpected status code")

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(cfg config.ESPNAPI) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

func (c *Client) Get(ctx context.Context, creds models.LeagueCredentials, endpoint string, params, headers map[string]string, result interface{}) error {
	url := fmt.Sprintf("%s%s", c.baseURL, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	q := req.URL.Query()
	for key, value := range params {
		values := strings.Split(value, ",")
		for _, v := range values {
			q.Add(key, strings.TrimSpace(v))
		}
	}
	req.URL.RawQuery = q.Encode()

	setCookies(req, creds)

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}

func setCookies(req *http.Request, creds models.LeagueCredentials) {
	cookie := fmt.Sprintf("SWID=%s; espn_s2=%s", creds.SWID, creds.ESPNS2)
	req.Header.Set("Cookie", cookie)
}
