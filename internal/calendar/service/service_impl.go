package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/smallbiznis/procura/internal/auth/token"
	"github.com/smallbiznis/procura/internal/calendar/domain"
	"github.com/smallbiznis/procura/internal/calendar/store"
	"github.com/smallbiznis/procura/internal/config"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const (
	calendarScope    = "https://www.googleapis.com/auth/calendar.readonly"
	defaultEventsURL = "https://www.googleapis.com/calendar/v3/calendars/primary/events"
	stateTTL         = 10 * time.Minute
	maxEvents        = 10
)

type service struct {
	log       *zap.Logger
	oauth     *oauth2.Config
	issuer    *token.Issuer
	creds     store.CredentialStore
	eventsURL string
}

func NewService(log *zap.Logger, cfg config.Config, issuer *token.Issuer, creds store.CredentialStore) domain.Service {
	return &service{
		log: log.Named("calendar.service"),
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{calendarScope},
			Endpoint:     endpoints.Google,
		},
		issuer:    issuer,
		creds:     creds,
		eventsURL: defaultEventsURL,
	}
}

// AuthURL builds the provider consent URL. The state value is a signed,
// short-lived token bound to the calling user so the callback can be
// attributed without a session.
func (s *service) AuthURL(ctx context.Context, userUUID string) (string, error) {
	_ = ctx
	if s.oauth.ClientID == "" || s.oauth.ClientSecret == "" {
		return "", domain.ErrNotConfigured
	}

	state, err := s.issuer.IssueWithTTL(userUUID, stateTTL)
	if err != nil {
		return "", err
	}

	return s.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	), nil
}

func (s *service) HandleCallback(ctx context.Context, state, code string) error {
	if s.oauth.ClientID == "" || s.oauth.ClientSecret == "" {
		return domain.ErrNotConfigured
	}
	if strings.TrimSpace(code) == "" {
		return domain.ErrMissingCode
	}

	userUUID, err := s.issuer.Verify(strings.TrimSpace(state))
	if err != nil {
		return domain.ErrInvalidState
	}

	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}

	s.creds.Put(userUUID, tok)
	s.log.Info("calendar connected", zap.String("user_uuid", userUUID))
	return nil
}

func (s *service) Events(ctx context.Context, userUUID string) ([]domain.Event, error) {
	tok, ok := s.creds.Get(userUUID)
	if !ok {
		return nil, domain.ErrNotConnected
	}

	client := s.oauth.Client(ctx, tok)
	url := fmt.Sprintf("%s?maxResults=%d&singleEvents=true&orderBy=startTime", s.eventsURL, maxEvents)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		s.creds.Delete(userUUID)
		return nil, domain.ErrNotConnected
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("calendar api status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		Items []domain.Event `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode calendar events: %w", err)
	}
	if payload.Items == nil {
		payload.Items = []domain.Event{}
	}
	return payload.Items, nil
}
