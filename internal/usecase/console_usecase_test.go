package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DRSN-tech/shop-console/internal/domain"
	"github.com/DRSN-tech/shop-console/pkg/e"
	"github.com/DRSN-tech/shop-console/pkg/logger"
	"github.com/shopspring/decimal"
)

// fakeSessions хранит сессии в памяти. pending: ID сессии -> токен владельца флага.
type fakeSessions struct {
	sessions map[string]domain.Session
	pending  map[string]string
	touched  []string
	locks    int
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{
		sessions: make(map[string]domain.Session),
		pending:  make(map[string]string),
	}
}

func (f *fakeSessions) Get(_ context.Context, id string) (*domain.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, e.ErrSessionNotFound
	}
	return &s, nil
}

func (f *fakeSessions) Save(_ context.Context, s *domain.Session) error {
	f.sessions[s.ID] = *s
	return nil
}

func (f *fakeSessions) Touch(_ context.Context, id string) error {
	if _, ok := f.sessions[id]; !ok {
		return e.ErrSessionNotFound
	}
	f.touched = append(f.touched, id)
	return nil
}

func (f *fakeSessions) AcquirePending(_ context.Context, id string) (string, bool, error) {
	if _, held := f.pending[id]; held {
		return "", false, nil
	}
	f.locks++
	token := fmt.Sprintf("lock-%d", f.locks)
	f.pending[id] = token
	return token, true, nil
}

func (f *fakeSessions) ReleasePending(_ context.Context, id, token string) error {
	if f.pending[id] == token {
		delete(f.pending, id)
	}
	return nil
}

// fakeShopAPI имитирует удалённый сервер и запоминает вызовы.
type fakeShopAPI struct {
	products  map[int64]domain.Product
	nextID    int64
	token     string
	calls     []string
	failWith  error
	getErr    error
	listFails bool
	onCreate  func()
	onList    func()
}

func newFakeShopAPI() *fakeShopAPI {
	return &fakeShopAPI{products: make(map[int64]domain.Product), nextID: 1, token: "secret-token"}
}

func (f *fakeShopAPI) Status(context.Context) (string, error) { return "active", nil }

func (f *fakeShopAPI) Login(_ context.Context, email, password string) (string, error) {
	f.calls = append(f.calls, "login")
	if email != "admin@example.com" || password != "pass" {
		return "", e.ErrUnauthorized
	}
	return f.token, nil
}

func (f *fakeShopAPI) ListProducts(_ context.Context, skip, limit int) ([]domain.Product, error) {
	f.calls = append(f.calls, "list")
	if f.onList != nil {
		f.onList()
	}
	if f.listFails {
		return nil, errors.New("connection refused")
	}
	out := make([]domain.Product, 0, len(f.products))
	for id := int64(1); id < f.nextID; id++ {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeShopAPI) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}
	return &p, nil
}

func (f *fakeShopAPI) authorize(token string) error {
	if f.failWith != nil {
		return f.failWith
	}
	if token != f.token {
		return e.ErrUnauthorized
	}
	return nil
}

func (f *fakeShopAPI) CreateProduct(_ context.Context, token string, payload *domain.ProductPayload) (*domain.Product, error) {
	f.calls = append(f.calls, "create")
	if f.onCreate != nil {
		f.onCreate()
	}
	if err := f.authorize(token); err != nil {
		return nil, err
	}
	p := domain.Product{ID: f.nextID, Name: payload.Name, Price: decimal.NewFromInt(payload.Price), ImageURL: payload.ImageURL}
	f.products[p.ID] = p
	f.nextID++
	return &p, nil
}

func (f *fakeShopAPI) UpdateProduct(_ context.Context, token string, id int64, payload *domain.ProductPayload) (*domain.Product, error) {
	f.calls = append(f.calls, "update")
	if err := f.authorize(token); err != nil {
		return nil, err
	}
	if _, ok := f.products[id]; !ok {
		return nil, e.ErrProductNotFound
	}
	p := domain.Product{ID: id, Name: payload.Name, Price: decimal.NewFromInt(payload.Price)}
	f.products[id] = p
	return &p, nil
}

func (f *fakeShopAPI) DeleteProduct(_ context.Context, token string, id int64) error {
	f.calls = append(f.calls, "delete")
	if err := f.authorize(token); err != nil {
		return err
	}
	if _, ok := f.products[id]; !ok {
		return e.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeShopAPI) lastCall() string {
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1]
}

type fakeImages struct {
	cleaned []string
	err     error
}

func (f *fakeImages) UploadImages(_ context.Context, req *UploadImagesReq) (*UploadImagesRes, error) {
	if f.err != nil {
		return nil, f.err
	}
	key := req.Prefix + "/" + req.Images[0].Name
	return NewUploadImagesRes([]string{key}, []string{"http://media.local/bucket/" + key}), nil
}

func (f *fakeImages) CleanupImages(keys []string) { f.cleaned = append(f.cleaned, keys...) }

type fakeProbe struct {
	unreachable map[string]bool
	checked     []string
}

func (f *fakeProbe) Reachable(_ context.Context, url string) bool {
	f.checked = append(f.checked, url)
	return !f.unreachable[url]
}

type fakeAudit struct{ events []*domain.AuditEvent }

func (f *fakeAudit) Record(_ context.Context, event *domain.AuditEvent) error {
	f.events = append(f.events, event)
	return nil
}

type fixture struct {
	uc       *ConsoleUseCase
	sessions *fakeSessions
	api      *fakeShopAPI
	images   *fakeImages
	probe    *fakeProbe
	audit    *fakeAudit
	sid      string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		sessions: newFakeSessions(),
		api:      newFakeShopAPI(),
		images:   &fakeImages{},
		probe:    &fakeProbe{unreachable: map[string]bool{"https://broken.example.com/x.png": true}},
		audit:    &fakeAudit{},
	}
	f.uc = NewConsoleUC(f.sessions, f.api, f.images, f.probe, f.audit, logger.NewNopLogger(), 100)

	seq := 0
	f.uc.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	f.uc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	sid, err := f.uc.OpenSession(context.Background(), "")
	if err != nil {
		t.Fatalf("OpenSession returned error: %v", err)
	}
	f.sid = sid
	return f
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	if _, err := f.uc.Login(context.Background(), &LoginReq{SessionID: f.sid, Email: "admin@example.com", Password: "pass"}); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
}

func (f *fixture) setForm(t *testing.T, name, price string) {
	t.Helper()
	if _, err := f.uc.UpdateForm(context.Background(), &UpdateFormReq{SessionID: f.sid, Name: &name, Price: &price}); err != nil {
		t.Fatalf("UpdateForm returned error: %v", err)
	}
}

func TestOpenSessionReusesExisting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	got, err := f.uc.OpenSession(ctx, f.sid)
	if err != nil {
		t.Fatalf("OpenSession returned error: %v", err)
	}
	if got != f.sid {
		t.Errorf("OpenSession(%q) = %q, expected same session", f.sid, got)
	}

	fresh, err := f.uc.OpenSession(ctx, "unknown")
	if err != nil {
		t.Fatalf("OpenSession returned error: %v", err)
	}
	if fresh == "unknown" || fresh == f.sid {
		t.Errorf("OpenSession(unknown) = %q, expected a new session", fresh)
	}
	if len(f.sessions.touched) != 1 || f.sessions.touched[0] != f.sid {
		t.Errorf("touched = %v, expected TTL of %q extended once", f.sessions.touched, f.sid)
	}
}

func TestLoginSuccess(t *testing.T) {
	f := newFixture(t)

	view, err := f.uc.Login(context.Background(), &LoginReq{SessionID: f.sid, Email: "admin@example.com", Password: "pass"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if !view.LoggedIn {
		t.Error("LoggedIn = false after successful login")
	}
	if view.LoginEmail != "" {
		t.Errorf("LoginEmail = %q, expected credential fields cleared", view.LoginEmail)
	}
	if got := f.sessions.sessions[f.sid].Token; got != "secret-token" {
		t.Errorf("stored token = %q, expected %q", got, "secret-token")
	}
}

func TestLoginFailureCollapsesToUnauthorized(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Login(context.Background(), &LoginReq{SessionID: f.sid, Email: "admin@example.com", Password: "wrong"})
	if !errors.Is(err, e.ErrUnauthorized) {
		t.Fatalf("Login err = %v, expected ErrUnauthorized", err)
	}

	s := f.sessions.sessions[f.sid]
	if s.LoggedIn() {
		t.Error("session logged in after rejected login")
	}
	if s.LoginEmail != "admin@example.com" {
		t.Errorf("LoginEmail = %q, expected email kept after failure", s.LoginEmail)
	}
}

func TestLoginMissingFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Login(context.Background(), &LoginReq{SessionID: f.sid, Email: "admin@example.com"})
	if !errors.Is(err, e.ErrMissingFields) {
		t.Errorf("Login err = %v, expected ErrMissingFields", err)
	}
	if len(f.api.calls) != 0 {
		t.Errorf("calls = %v, expected no request", f.api.calls)
	}
}

func TestViewHidesProductsWhenLoggedOut(t *testing.T) {
	f := newFixture(t)
	f.api.products[1] = domain.Product{ID: 1, Name: "Watch"}
	f.api.nextID = 2

	view, err := f.uc.View(context.Background(), f.sid)
	if err != nil {
		t.Fatalf("View returned error: %v", err)
	}
	if view.LoggedIn || view.Products != nil {
		t.Errorf("view = %+v, expected logged out with no products", view)
	}

	f.login(t)
	view, err = f.uc.View(context.Background(), f.sid)
	if err != nil {
		t.Fatalf("View returned error: %v", err)
	}
	if len(view.Products) != 1 {
		t.Errorf("len(Products) = %d, expected 1", len(view.Products))
	}
}

func TestViewListFailureIsNotAnError(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.api.listFails = true

	view, err := f.uc.View(context.Background(), f.sid)
	if err != nil {
		t.Fatalf("View returned error: %v", err)
	}
	if view.Products == nil || len(view.Products) != 0 {
		t.Errorf("Products = %v, expected empty list", view.Products)
	}
}

func TestUpdateFormRejectsNonDigitPrice(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.setForm(t, "Watch", "150")

	bad := "15a"
	res, err := f.uc.UpdateForm(context.Background(), &UpdateFormReq{SessionID: f.sid, Price: &bad})
	if err != nil {
		t.Fatalf("UpdateForm returned error: %v", err)
	}

	if _, ok := res.Rejected["price"]; !ok {
		t.Errorf("Rejected = %v, expected price", res.Rejected)
	}
	if res.View.Form.Price != "150" {
		t.Errorf("Price = %q, expected previous value kept", res.View.Form.Price)
	}
}

func TestUpdateFormRequiresLogin(t *testing.T) {
	f := newFixture(t)
	name := "Watch"

	_, err := f.uc.UpdateForm(context.Background(), &UpdateFormReq{SessionID: f.sid, Name: &name})
	if !errors.Is(err, e.ErrNotLoggedIn) {
		t.Errorf("UpdateForm err = %v, expected ErrNotLoggedIn", err)
	}
}

func TestSubmitCreate(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.setForm(t, "Watch", "150")

	view, err := f.uc.Submit(context.Background(), f.sid)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if got := f.api.calls; got[len(got)-2] != "create" || got[len(got)-1] != "list" {
		t.Errorf("calls = %v, expected create followed by list", got)
	}
	if len(view.Products) != 1 || view.Products[0].Name != "Watch" {
		t.Errorf("Products = %+v, expected the created product", view.Products)
	}
	if view.Form != (domain.Form{}) || view.FormMode != domain.FormModeCreate {
		t.Errorf("Form = %+v, expected cleared create form", view.Form)
	}
	if len(f.audit.events) != 1 || f.audit.events[0].Action != domain.AuditProductCreated || f.audit.events[0].ProductID != 1 {
		t.Errorf("audit events = %+v, expected one created event for product 1", f.audit.events)
	}
	if _, held := f.sessions.pending[f.sid]; held {
		t.Error("pending flag left set after submit")
	}
}

func TestSubmitEditIssuesUpdate(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.api.products[7] = domain.Product{ID: 7, Name: "Old", Price: decimal.NewFromInt(10)}
	f.api.nextID = 8

	view, err := f.uc.StartEdit(context.Background(), f.sid, 7)
	if err != nil {
		t.Fatalf("StartEdit returned error: %v", err)
	}
	if view.FormMode != domain.FormModeEdit || view.Form.Price != "10" {
		t.Fatalf("form = %+v, expected prefilled edit form", view.Form)
	}

	f.setForm(t, "New", "20")
	view, err = f.uc.Submit(context.Background(), f.sid)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	for _, call := range f.api.calls {
		if call == "create" {
			t.Fatalf("calls = %v, expected no create in edit mode", f.api.calls)
		}
	}
	if f.api.products[7].Name != "New" {
		t.Errorf("product 7 name = %q, expected %q", f.api.products[7].Name, "New")
	}
	if view.FormMode != domain.FormModeCreate {
		t.Errorf("FormMode = %s, expected idle create mode after submit", view.FormMode)
	}
	if f.audit.events[0].Action != domain.AuditProductUpdated {
		t.Errorf("audit action = %s, expected %s", f.audit.events[0].Action, domain.AuditProductUpdated)
	}
}

func TestSubmitInvalidPriceSendsNothing(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.setForm(t, "Watch", "")
	before := len(f.api.calls)

	_, err := f.uc.Submit(context.Background(), f.sid)
	if !errors.Is(err, e.ErrInvalidPrice) {
		t.Fatalf("Submit err = %v, expected ErrInvalidPrice", err)
	}
	if len(f.api.calls) != before {
		t.Errorf("calls = %v, expected no request", f.api.calls[before:])
	}
}

func TestSubmitFailureCollapses(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.setForm(t, "Watch", "150")
	f.api.failWith = e.ErrUnauthorized

	_, err := f.uc.Submit(context.Background(), f.sid)
	if !errors.Is(err, e.ErrSubmitFailed) {
		t.Fatalf("Submit err = %v, expected ErrSubmitFailed", err)
	}
	if errors.Is(err, e.ErrUnauthorized) {
		t.Error("Submit err exposes the cause kind, expected a collapsed error")
	}
	if got := f.sessions.sessions[f.sid].Form.Name; got != "Watch" {
		t.Errorf("form name = %q, expected form kept after failure", got)
	}
	if len(f.audit.events) != 0 {
		t.Errorf("audit events = %d, expected none", len(f.audit.events))
	}
}

func TestSubmitWhilePending(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.setForm(t, "Watch", "150")
	f.sessions.pending[f.sid] = "other-request"

	_, err := f.uc.Submit(context.Background(), f.sid)
	if !errors.Is(err, e.ErrRequestPending) {
		t.Errorf("Submit err = %v, expected ErrRequestPending", err)
	}
}

func TestDeleteRemovesFromNextList(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.setForm(t, "Watch", "150")
	if _, err := f.uc.Submit(context.Background(), f.sid); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	view, err := f.uc.Delete(context.Background(), f.sid, 1)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(view.Products) != 0 {
		t.Errorf("Products = %+v, expected product removed", view.Products)
	}
	if f.api.lastCall() != "list" {
		t.Errorf("last call = %q, expected list re-fetch", f.api.lastCall())
	}
}

func TestDeleteFailureCollapses(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	_, err := f.uc.Delete(context.Background(), f.sid, 404)
	if !errors.Is(err, e.ErrDeleteFailed) {
		t.Errorf("Delete err = %v, expected ErrDeleteFailed", err)
	}
}

func TestLogoutClearsToken(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	view, err := f.uc.Logout(context.Background(), f.sid)
	if err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	if view.LoggedIn || view.Products != nil {
		t.Errorf("view = %+v, expected admin UI hidden", view)
	}
	if got := f.sessions.sessions[f.sid].Token; got != "" {
		t.Errorf("stored token = %q, expected empty", got)
	}
}

func TestCancelEdit(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.api.products[3] = domain.Product{ID: 3, Name: "Lamp", Price: decimal.NewFromInt(5)}
	f.api.nextID = 4

	if _, err := f.uc.StartEdit(context.Background(), f.sid, 3); err != nil {
		t.Fatalf("StartEdit returned error: %v", err)
	}
	view, err := f.uc.CancelEdit(context.Background(), f.sid)
	if err != nil {
		t.Fatalf("CancelEdit returned error: %v", err)
	}
	if view.FormMode != domain.FormModeCreate || view.Form.Name != "" {
		t.Errorf("form = %+v, expected cleared create form", view.Form)
	}
}

func TestPreviewFallsBackToPlaceholder(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	tests := []struct {
		name            string
		url             string
		wantURL         string
		wantPlaceholder bool
	}{
		{name: "reachable", url: "https://cdn.example.com/a.png", wantURL: "https://cdn.example.com/a.png"},
		{name: "broken", url: "https://broken.example.com/x.png", wantURL: domain.FormPreviewPlaceholder, wantPlaceholder: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.uc.UpdateForm(context.Background(), &UpdateFormReq{SessionID: f.sid, ImageURL: &tt.url})
			if err != nil {
				t.Fatalf("UpdateForm returned error: %v", err)
			}
			p := res.View.Preview
			if p == nil || p.URL != tt.wantURL || p.Placeholder != tt.wantPlaceholder {
				t.Errorf("Preview = %+v, expected %s (placeholder=%v)", p, tt.wantURL, tt.wantPlaceholder)
			}
		})
	}
}

func TestUploadImageFillsForm(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	view, err := f.uc.UploadImage(context.Background(), &UploadImageReq{
		SessionID: f.sid,
		Image:     *NewProductImage([]byte{0x89, 'P', 'N', 'G'}, "image/png", 4, "watch.png"),
	})
	if err != nil {
		t.Fatalf("UploadImage returned error: %v", err)
	}
	if view.Form.ImageURL != "http://media.local/bucket/products/watch.png" {
		t.Errorf("ImageURL = %q, expected uploaded URL", view.Form.ImageURL)
	}
	if view.Preview == nil || view.Preview.Placeholder || view.Preview.URL != view.Form.ImageURL {
		t.Errorf("Preview = %+v, expected the uploaded image", view.Preview)
	}
	if len(f.probe.checked) != 0 {
		t.Errorf("checked = %v, expected no network check for an uploaded image", f.probe.checked)
	}
}

func TestSubmitReleasesPendingBeforeRefetch(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.setForm(t, "Watch", "150")

	heldDuringList := false
	f.api.onList = func() {
		_, heldDuringList = f.sessions.pending[f.sid]
	}

	if _, err := f.uc.Submit(context.Background(), f.sid); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if heldDuringList {
		t.Error("pending flag held while the list was re-fetched")
	}
}

func TestSubmitKeepsFlagOfNextRequest(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.setForm(t, "Watch", "150")

	// Флаг первого запроса истёк посреди вызова API, и его занял следующий запрос.
	f.api.onCreate = func() {
		f.sessions.pending[f.sid] = "next-request"
	}

	if _, err := f.uc.Submit(context.Background(), f.sid); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if got := f.sessions.pending[f.sid]; got != "next-request" {
		t.Fatalf("pending owner = %q, expected the next request's flag kept", got)
	}

	f.api.onCreate = nil
	f.setForm(t, "Lamp", "20")
	if _, err := f.uc.Submit(context.Background(), f.sid); !errors.Is(err, e.ErrRequestPending) {
		t.Errorf("Submit err = %v, expected ErrRequestPending while the next request runs", err)
	}
}

func TestImageCheckedOnlyWhenURLChanges(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()
	url := "https://cdn.example.com/a.png"

	if _, err := f.uc.UpdateForm(ctx, &UpdateFormReq{SessionID: f.sid, ImageURL: &url}); err != nil {
		t.Fatalf("UpdateForm returned error: %v", err)
	}
	for i := 0; i < 2; i++ {
		view, err := f.uc.View(ctx, f.sid)
		if err != nil {
			t.Fatalf("View returned error: %v", err)
		}
		if view.Preview == nil || view.Preview.URL != url {
			t.Errorf("Preview = %+v, expected %s", view.Preview, url)
		}
	}
	name := "Watch"
	if _, err := f.uc.UpdateForm(ctx, &UpdateFormReq{SessionID: f.sid, Name: &name, ImageURL: &url}); err != nil {
		t.Fatalf("UpdateForm returned error: %v", err)
	}

	if len(f.probe.checked) != 1 {
		t.Errorf("checked = %v, expected one check for one URL", f.probe.checked)
	}

	view, err := f.uc.Logout(ctx, f.sid)
	if err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if view.Preview != nil {
		t.Errorf("Preview = %+v, expected none when logged out", view.Preview)
	}
}

func TestStartEditChecksProductImage(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	broken := "https://broken.example.com/x.png"
	f.api.products[5] = domain.Product{ID: 5, Name: "Desk", Price: decimal.NewFromInt(70), ImageURL: &broken}
	f.api.nextID = 6

	view, err := f.uc.StartEdit(context.Background(), f.sid, 5)
	if err != nil {
		t.Fatalf("StartEdit returned error: %v", err)
	}
	if view.Preview == nil || !view.Preview.Placeholder {
		t.Errorf("Preview = %+v, expected placeholder for a broken image", view.Preview)
	}
	if len(f.probe.checked) != 1 || f.probe.checked[0] != broken {
		t.Errorf("checked = %v, expected the product image", f.probe.checked)
	}
}

func TestStartEditUpstreamErrors(t *testing.T) {
	tests := []struct {
		name    string
		getErr  error
		wantErr error
	}{
		{name: "timeout", getErr: context.DeadlineExceeded, wantErr: e.ErrUpstreamStatus},
		{name: "connection refused", getErr: errors.New("dial tcp: connection refused"), wantErr: e.ErrUpstreamStatus},
		{name: "not found", getErr: e.ErrProductNotFound, wantErr: e.ErrProductNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.login(t)
			f.api.getErr = tt.getErr

			_, err := f.uc.StartEdit(context.Background(), f.sid, 1)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("StartEdit err = %v, expected %v", err, tt.wantErr)
			}
		})
	}
}
