package pocket

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

const DefaultBaseURL = "https://getpocket.com"

// ErrUnauthorized indicates the Pocket API rejected the credentials. It is
// fatal and must abort a sync before any item is processed.
var ErrUnauthorized = errors.New("pocket authorization failed")

// Client talks to the Pocket v3 API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	consumerKey string
	accessToken string
	userAgent   string
}

func NewClient(httpClient *http.Client, baseURL, consumerKey, accessToken, userAgent string) *Client {
	return &Client{
		httpClient:  httpClient,
		baseURL:     baseURL,
		consumerKey: consumerKey,
		accessToken: accessToken,
		userAgent:   userAgent,
	}
}

type getRequest struct {
	ConsumerKey string `json:"consumer_key"`
	AccessToken string `json:"access_token"`
	State       string `json:"state"`
	Sort        string `json:"sort"`
	DetailType  string `json:"detailType"`
	Tag         string `json:"tag,omitempty"`
	Since       string `json:"since,omitempty"`
}

type getResponse struct {
	List  json.RawMessage `json:"list"`
	Since json.Number     `json:"since"`
}

// FetchSince requests all items tagged with the given tags that were added
// since the cursor, newest first. It returns the items together with the new
// cursor value reported by the API.
func (c *Client) FetchSince(ctx context.Context, tags []string, since string) ([]Item, string, error) {
	request := getRequest{
		ConsumerKey: c.consumerKey,
		AccessToken: c.accessToken,
		State:       "all",
		Sort:        "newest",
		DetailType:  "simple",
		Tag:         strings.Join(tags, ","),
		Since:       since,
	}

	var response getResponse
	if err := c.doPost(ctx, "/v3/get", request, &response); err != nil {
		return nil, "", err
	}

	items, err := decodeItemList(response.List)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode item list: %w", err)
	}

	// Keep the API's declared sort order even though the keyed list loses it
	sort.SliceStable(items, func(i, j int) bool {
		ti, _ := items[i].AddedAt()
		tj, _ := items[j].AddedAt()
		return ti.After(tj)
	})

	return items, response.Since.String(), nil
}

type requestTokenRequest struct {
	ConsumerKey string `json:"consumer_key"`
	RedirectURI string `json:"redirect_uri"`
}

type requestTokenResponse struct {
	Code string `json:"code"`
}

// RequestToken obtains an OAuth request token, the first step of the
// authorization flow.
func (c *Client) RequestToken(ctx context.Context, redirectURI string) (string, error) {
	request := requestTokenRequest{
		ConsumerKey: c.consumerKey,
		RedirectURI: redirectURI,
	}

	var response requestTokenResponse
	if err := c.doPost(ctx, "/v3/oauth/request", request, &response); err != nil {
		return "", err
	}

	if response.Code == "" {
		return "", fmt.Errorf("pocket returned an empty request token")
	}

	return response.Code, nil
}

// AuthorizeURL builds the browser URL where the user confirms access for the
// given request token.
func (c *Client) AuthorizeURL(requestToken, redirectURI string) string {
	query := url.Values{}
	query.Set("request_token", requestToken)
	query.Set("redirect_uri", redirectURI)

	return fmt.Sprintf("%s/auth/authorize?%s", c.baseURL, query.Encode())
}

type accessTokenRequest struct {
	ConsumerKey string `json:"consumer_key"`
	Code        string `json:"code"`
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
	Username    string `json:"username"`
}

// AccessToken exchanges a confirmed request token for an access token. It
// returns the token and the authorized Pocket username.
func (c *Client) AccessToken(ctx context.Context, requestToken string) (string, string, error) {
	request := accessTokenRequest{
		ConsumerKey: c.consumerKey,
		Code:        requestToken,
	}

	var response accessTokenResponse
	if err := c.doPost(ctx, "/v3/oauth/authorize", request, &response); err != nil {
		return "", "", err
	}

	if response.AccessToken == "" {
		return "", "", fmt.Errorf("pocket returned an empty access token")
	}

	return response.AccessToken, response.Username, nil
}

func (c *Client) doPost(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call pocket API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: %s", ErrUnauthorized, resp.Header.Get("X-Error"))
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pocket API error: %d %s (%s)", resp.StatusCode, resp.Status, resp.Header.Get("X-Error"))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// decodeItemList handles the Pocket API quirk where an empty result
// serializes "list" as an empty JSON array instead of an object.
func decodeItemList(raw json.RawMessage) ([]Item, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var keyed map[string]Item
	if err := json.Unmarshal(raw, &keyed); err == nil {
		items := make([]Item, 0, len(keyed))
		for _, item := range keyed {
			items = append(items, item)
		}
		return items, nil
	}

	var empty []Item
	if err := json.Unmarshal(raw, &empty); err != nil {
		return nil, fmt.Errorf("list is neither an object nor an array: %w", err)
	}

	return empty, nil
}
