package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/procura/internal/auth/domain"
	"github.com/smallbiznis/procura/internal/auth/token"
	calendardomain "github.com/smallbiznis/procura/internal/calendar/domain"
	"github.com/smallbiznis/procura/internal/config"
	obscontext "github.com/smallbiznis/procura/internal/observability/context"
	organizationdomain "github.com/smallbiznis/procura/internal/organization/domain"
	rfpdomain "github.com/smallbiznis/procura/internal/rfp/domain"
	supplierdomain "github.com/smallbiznis/procura/internal/supplier/domain"
	"go.uber.org/zap"
)

type fakeAuthService struct {
	registerCalls int
	loginCalls    int
	loginErr      error
	user          *authdomain.User
}

func (f *fakeAuthService) Register(ctx context.Context, req authdomain.RegisterRequest) (*authdomain.UserResponse, error) {
	f.registerCalls++
	_ = ctx
	return &authdomain.UserResponse{UUID: "user-1", Email: req.Email}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	f.loginCalls++
	_ = ctx
	_ = req
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &authdomain.LoginResult{
		AccessToken: "token-abc",
		TokenType:   "bearer",
		ExpiresAt:   time.Now().Add(30 * time.Minute),
		User:        &authdomain.UserResponse{UUID: "user-1", Email: req.Email},
	}, nil
}

func (f *fakeAuthService) GetByUUID(ctx context.Context, userUUID string) (*authdomain.User, error) {
	_ = ctx
	if f.user != nil && f.user.UUID == userUUID {
		return f.user, nil
	}
	return nil, authdomain.ErrUserNotFound
}

func (f *fakeAuthService) SetActiveOrganization(ctx context.Context, userUUID, orgUUID string) error {
	_ = ctx
	_ = userUUID
	_ = orgUUID
	return nil
}

type fakeOrgService struct {
	member        bool
	invitedEmails []string
}

func (f *fakeOrgService) Create(ctx context.Context, userUUID string, req organizationdomain.CreateOrganizationRequest) (*organizationdomain.OrganizationResponse, error) {
	_ = ctx
	return &organizationdomain.OrganizationResponse{UUID: "org-1", Name: req.Name, OwnerUUID: userUUID}, nil
}

func (f *fakeOrgService) GetByUUID(ctx context.Context, userUUID, orgUUID string) (*organizationdomain.OrganizationResponse, error) {
	_ = ctx
	_ = userUUID
	if !f.member {
		return nil, organizationdomain.ErrForbidden
	}
	return &organizationdomain.OrganizationResponse{UUID: orgUUID, Name: "acme"}, nil
}

func (f *fakeOrgService) ListByUser(ctx context.Context, userUUID string) ([]organizationdomain.OrganizationResponse, error) {
	_ = ctx
	_ = userUUID
	return []organizationdomain.OrganizationResponse{}, nil
}

func (f *fakeOrgService) IsMember(ctx context.Context, userUUID, orgUUID string) (bool, error) {
	_ = ctx
	_ = userUUID
	_ = orgUUID
	return f.member, nil
}

func (f *fakeOrgService) Invite(ctx context.Context, userUUID, orgUUID string, req organizationdomain.InviteRequest) ([]organizationdomain.InvitationResponse, error) {
	_ = ctx
	if !f.member {
		return nil, organizationdomain.ErrForbidden
	}
	f.invitedEmails = append(f.invitedEmails, req.Emails...)
	resp := make([]organizationdomain.InvitationResponse, 0, len(req.Emails))
	for _, email := range req.Emails {
		resp = append(resp, organizationdomain.InvitationResponse{Email: email, OrganizationUUID: orgUUID, Status: organizationdomain.InviteStatusPending, OwnerUUID: userUUID})
	}
	return resp, nil
}

func (f *fakeOrgService) ListInvitations(ctx context.Context, userUUID, orgUUID string) ([]organizationdomain.InvitationResponse, error) {
	_ = ctx
	_ = userUUID
	_ = orgUUID
	if !f.member {
		return nil, organizationdomain.ErrForbidden
	}
	return []organizationdomain.InvitationResponse{}, nil
}

type fakeSupplierService struct {
	listOrgID string
}

func (f *fakeSupplierService) Create(ctx context.Context, userUUID string, req supplierdomain.CreateSupplierRequest) (*supplierdomain.SupplierResponse, error) {
	_ = ctx
	return &supplierdomain.SupplierResponse{UUID: "supplier-1", Name: req.Name, OrganizationUUID: req.OrganizationUUID, OwnerUUID: userUUID}, nil
}

func (f *fakeSupplierService) List(ctx context.Context, userUUID, orgUUID string) ([]supplierdomain.SupplierResponse, error) {
	_ = userUUID
	_ = orgUUID
	f.listOrgID = obscontext.OrgIDFromContext(ctx)
	return []supplierdomain.SupplierResponse{}, nil
}

func (f *fakeSupplierService) GetByUUID(ctx context.Context, userUUID, orgUUID, supplierUUID string) (*supplierdomain.SupplierResponse, error) {
	_ = ctx
	_ = userUUID
	_ = orgUUID
	_ = supplierUUID
	return nil, supplierdomain.ErrSupplierNotFound
}

type fakeRFPService struct {
	createErr error
}

func (f *fakeRFPService) Create(ctx context.Context, userUUID string, req rfpdomain.CreateRFPRequest) (*rfpdomain.RFPResponse, error) {
	_ = ctx
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &rfpdomain.RFPResponse{UUID: "rfp-1", Name: req.Name, OrganizationUUID: req.OrganizationUUID, OwnerUUID: userUUID, Data: req.Data}, nil
}

func (f *fakeRFPService) List(ctx context.Context, userUUID, orgUUID string) ([]rfpdomain.RFPResponse, error) {
	_ = ctx
	_ = userUUID
	_ = orgUUID
	return []rfpdomain.RFPResponse{}, nil
}

func (f *fakeRFPService) GetByUUID(ctx context.Context, userUUID, orgUUID, rfpUUID string) (*rfpdomain.RFPResponse, error) {
	_ = ctx
	_ = userUUID
	_ = orgUUID
	_ = rfpUUID
	return nil, rfpdomain.ErrRFPNotFound
}

type fakeCalendarService struct {
	authURL string
}

func (f *fakeCalendarService) AuthURL(ctx context.Context, userUUID string) (string, error) {
	_ = ctx
	_ = userUUID
	if f.authURL == "" {
		return "", calendardomain.ErrNotConfigured
	}
	return f.authURL, nil
}

func (f *fakeCalendarService) HandleCallback(ctx context.Context, state, code string) error {
	_ = ctx
	_ = state
	_ = code
	return nil
}

func (f *fakeCalendarService) Events(ctx context.Context, userUUID string) ([]calendardomain.Event, error) {
	_ = ctx
	_ = userUUID
	return nil, calendardomain.ErrNotConnected
}

type testServer struct {
	srv      *Server
	authsvc  *fakeAuthService
	orgsvc   *fakeOrgService
	supsvc   *fakeSupplierService
	rfpsvc   *fakeRFPService
	calsvc   *fakeCalendarService
	issuer   *token.Issuer
	userUUID string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	issuer := token.NewIssuer("test-secret", 30*time.Minute)
	authsvc := &fakeAuthService{user: &authdomain.User{UUID: "user-1", Email: "a@example.com"}}
	orgsvc := &fakeOrgService{member: true}
	supsvc := &fakeSupplierService{}
	rfpsvc := &fakeRFPService{}
	calsvc := &fakeCalendarService{authURL: "https://accounts.google.com/o/oauth2/auth?state=x"}

	srv := NewServer(ServerParams{
		Gin:             engine,
		Cfg:             config.Config{FrontendBaseURL: "http://localhost:3000"},
		Log:             zap.NewNop(),
		Issuer:          issuer,
		Authsvc:         authsvc,
		OrganizationSvc: orgsvc,
		SupplierSvc:     supsvc,
		RFPSvc:          rfpsvc,
		CalendarSvc:     calsvc,
	})

	return &testServer{
		srv:      srv,
		authsvc:  authsvc,
		orgsvc:   orgsvc,
		supsvc:   supsvc,
		rfpsvc:   rfpsvc,
		calsvc:   calsvc,
		issuer:   issuer,
		userUUID: "user-1",
	}
}

func (ts *testServer) bearer(t *testing.T) string {
	t.Helper()
	raw, _, err := ts.issuer.Issue(ts.userUUID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + raw
}

func (ts *testServer) do(t *testing.T, method, path, body, authz string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	ts.srv.Engine().ServeHTTP(rec, req)
	return rec
}

func TestRegisterCreatesUser(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/register", `{"email":"a@example.com","password":"longenough"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if ts.authsvc.registerCalls != 1 {
		t.Fatalf("expected register to be called once, got %d", ts.authsvc.registerCalls)
	}

	var body loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if body.AccessToken == "" || body.User == nil {
		t.Fatalf("expected token and user in register response, got %s", rec.Body.String())
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.authsvc.loginErr = authdomain.ErrInvalidCredentials

	rec := ts.do(t, http.MethodPost, "/api/login", `{"email":"a@example.com","password":"wrong"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if payload.Error.Type != "unauthorized" {
		t.Fatalf("expected unauthorized error type, got %q", payload.Error.Type)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.authsvc.loginErr = authdomain.ErrUserNotFound

	rec := ts.do(t, http.MethodPost, "/api/login", `{"email":"ghost@example.com","password":"super-secret"}`, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if payload.Error.Type != "not_found" {
		t.Fatalf("expected not_found error type, got %q", payload.Error.Type)
	}
}

func TestCurrentUserRequiresToken(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/user", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = ts.do(t, http.MethodGet, "/api/user", "", "Bearer not-a-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for malformed token, got %d", rec.Code)
	}
}

func TestCurrentUserWithToken(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/user", "", ts.bearer(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var user authdomain.UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user.UUID != ts.userUUID {
		t.Fatalf("expected user %q, got %q", ts.userUUID, user.UUID)
	}
}

func TestSetActiveTeamRejectsNonMember(t *testing.T) {
	ts := newTestServer(t)
	ts.orgsvc.member = false

	rec := ts.do(t, http.MethodPost, "/api/activeTeam", `{"organization_uuid":"org-9"}`, ts.bearer(t))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateRFPForbiddenOutsideOrganization(t *testing.T) {
	ts := newTestServer(t)
	ts.rfpsvc.createErr = rfpdomain.ErrForbidden

	rec := ts.do(t, http.MethodPost, "/api/rfp", `{"organization_uuid":"org-1","data":{"budget":100}}`, ts.bearer(t))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestListSuppliersRequiresOrganizationParam(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/suppliers", "", ts.bearer(t))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without organization param, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodGet, "/api/suppliers?organization_uuid=org-1", "", ts.bearer(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "[]" {
		t.Fatalf("expected empty list body, got %s", rec.Body.String())
	}
}

func TestOrgScopedRequestCarriesOrgID(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/suppliers?organization_uuid=org-1", "", ts.bearer(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ts.supsvc.listOrgID != "org-1" {
		t.Fatalf("expected org-1 in request context, got %q", ts.supsvc.listOrgID)
	}
}

func TestGoogleLoginRedirects(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/loginGoogle", "", ts.bearer(t))
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != ts.calsvc.authURL {
		t.Fatalf("expected redirect to consent url, got %q", loc)
	}
}

func TestCalendarEventsNotConnected(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/events", "", ts.bearer(t))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when calendar is not connected, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestInviteBatch(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/organization/org-1/invitations", `{"invites":[{"email":"x@example.com"},{"email":"y@example.com"}]}`, ts.bearer(t))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(ts.orgsvc.invitedEmails) != 2 {
		t.Fatalf("expected 2 invited emails, got %v", ts.orgsvc.invitedEmails)
	}

	rec = ts.do(t, http.MethodPost, "/api/organization/org-1/invitations", `{"invites":[]}`, ts.bearer(t))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty invite list, got %d", rec.Code)
	}
}

func TestRefreshProfileIssuesNewToken(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/user", "", ts.bearer(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode refresh response: %v", err)
	}
	subject, err := ts.issuer.Verify(body.AccessToken)
	if err != nil {
		t.Fatalf("verify refreshed token: %v", err)
	}
	if subject != ts.userUUID {
		t.Fatalf("expected subject %q, got %q", ts.userUUID, subject)
	}
}

func TestTokenFormGrant(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/token", bytes.NewBufferString("username=a%40example.com&password=secretpass"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	ts.srv.Engine().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode token response: %v", err)
	}
	if body.TokenType != "bearer" || body.AccessToken == "" {
		t.Fatalf("unexpected token response: %+v", body)
	}
	if body.ExpiresIn != int64((30 * time.Minute).Seconds()) {
		t.Fatalf("expected expires_in to match the issuer ttl, got %d", body.ExpiresIn)
	}
}
