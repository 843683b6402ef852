package handler_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"application-tracker-api/internal/auth"
	"application-tracker-api/internal/handler"
	"application-tracker-api/internal/middleware"
	"application-tracker-api/internal/model"
	"application-tracker-api/internal/store"
	pb "application-tracker-api/internal/trackerpb"
)

// reminderSpy records what the API asked the scheduler to do.
type reminderSpy struct {
	mu        sync.Mutex
	scheduled map[string]*time.Time
	recipient map[string]string
	cancelled map[string]int
}

func newSpy() *reminderSpy {
	return &reminderSpy{
		scheduled: map[string]*time.Time{},
		recipient: map[string]string{},
		cancelled: map[string]int{},
	}
}

func (s *reminderSpy) Schedule(app *model.Application, to string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled[app.ID] = app.Deadline
	s.recipient[app.ID] = to
	return 3
}

func (s *reminderSpy) Cancel(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scheduled, id)
	s.cancelled[id]++
	return 0
}

func (s *reminderSpy) deadline(id string) (*time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.scheduled[id]
	return d, ok
}

func setup(t *testing.T) (*handler.Handler, *store.Store, string, *reminderSpy) {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	secret := os.Getenv("JWT_SECRET")
	if dbURL == "" || secret == "" {
		t.Skip("DATABASE_URL or JWT_SECRET not set")
	}
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(pool.Close)
	st := store.New(pool)
	if err := st.Migrate(context.Background(), "../../db/migrations/001_init.sql"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	spy := newSpy()
	h := handler.New(st, secret, handler.Options{Reminders: spy, Logger: zaptest.NewLogger(t)})
	return h, st, secret, spy
}

func authedCtx(uid string) context.Context {
	return context.WithValue(context.Background(), middleware.UserIDKey, uid)
}

func registerUser(t *testing.T, h *handler.Handler) (userID, email string) {
	t.Helper()
	email = fmt.Sprintf("test-%s@test.com", uuid.New().String()[:8])
	rr, err := h.Register(context.Background(), &pb.RegisterRequest{
		Email: email, Password: "testpass123", Name: "Test User",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return rr.UserId, email
}

func createApplication(t *testing.T, h *handler.Handler, ctx context.Context, title string, deadline *time.Time) *pb.Application {
	t.Helper()
	req := &pb.CreateApplicationRequest{Title: title, Type: "Internship", Notes: "referral from Sam"}
	if deadline != nil {
		req.Deadline = timestamppb.New(*deadline)
	}
	cr, err := h.CreateApplication(ctx, req)
	if err != nil {
		t.Fatalf("create application: %v", err)
	}
	return cr.Application
}

func hoursFromNow(n int) *time.Time {
	t := time.Now().Add(time.Duration(n) * time.Hour).Truncate(time.Microsecond)
	return &t
}

func code(err error) codes.Code {
	s, _ := status.FromError(err)
	return s.Code()
}

func strp(s string) *string { return &s }

// ----- validation (no database) -----

func TestValidation(t *testing.T) {
	h := handler.New(nil, "secret", handler.Options{})
	bg := context.Background()
	ctx := authedCtx(uuid.New().String())

	tests := []struct {
		name string
		call func() error
		want codes.Code
	}{
		{"register empty email", func() error {
			_, err := h.Register(bg, &pb.RegisterRequest{Password: "testpass123"})
			return err
		}, codes.InvalidArgument},
		{"register empty password", func() error {
			_, err := h.Register(bg, &pb.RegisterRequest{Email: "a@b.com"})
			return err
		}, codes.InvalidArgument},
		{"register short password", func() error {
			_, err := h.Register(bg, &pb.RegisterRequest{Email: "a@b.com", Password: "short"})
			return err
		}, codes.InvalidArgument},
		{"login empty", func() error {
			_, err := h.Login(bg, &pb.LoginRequest{Email: "a@b.com"})
			return err
		}, codes.InvalidArgument},
		{"refresh empty", func() error {
			_, err := h.Refresh(bg, &pb.RefreshRequest{})
			return err
		}, codes.InvalidArgument},
		{"logout anonymous", func() error {
			_, err := h.Logout(bg, &pb.Empty{})
			return err
		}, codes.Unauthenticated},
		{"profile anonymous", func() error {
			_, err := h.GetProfile(bg, &pb.Empty{})
			return err
		}, codes.Unauthenticated},
		{"create anonymous", func() error {
			_, err := h.CreateApplication(bg, &pb.CreateApplicationRequest{Title: "x"})
			return err
		}, codes.Unauthenticated},
		{"create blank title", func() error {
			_, err := h.CreateApplication(ctx, &pb.CreateApplicationRequest{Title: "   "})
			return err
		}, codes.InvalidArgument},
		{"create bad deadline", func() error {
			_, err := h.CreateApplication(ctx, &pb.CreateApplicationRequest{
				Title: "x", Deadline: &timestamppb.Timestamp{Seconds: 1, Nanos: -1},
			})
			return err
		}, codes.InvalidArgument},
		{"list anonymous", func() error {
			_, err := h.ListApplications(bg, &pb.ListApplicationsRequest{})
			return err
		}, codes.Unauthenticated},
		{"get empty id", func() error {
			_, err := h.GetApplication(ctx, &pb.IDRequest{})
			return err
		}, codes.InvalidArgument},
		{"get malformed id", func() error {
			_, err := h.GetApplication(ctx, &pb.IDRequest{Id: "nope"})
			return err
		}, codes.NotFound},
		{"update deadline and clear", func() error {
			_, err := h.UpdateApplication(ctx, &pb.UpdateApplicationRequest{
				Id: uuid.New().String(), Deadline: timestamppb.Now(), ClearDeadline: true,
			})
			return err
		}, codes.InvalidArgument},
		{"delete empty id", func() error {
			_, err := h.DeleteApplication(ctx, &pb.IDRequest{})
			return err
		}, codes.InvalidArgument},
		{"delete malformed id", func() error {
			_, err := h.DeleteApplication(ctx, &pb.IDRequest{Id: "1; DROP TABLE"})
			return err
		}, codes.NotFound},
		{"stats anonymous", func() error {
			_, err := h.ApplicationStats(bg, &pb.Empty{})
			return err
		}, codes.Unauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if err == nil {
				t.Fatal("expected error")
			}
			if code(err) != tt.want {
				t.Errorf("expected %v, got %v", tt.want, code(err))
			}
		})
	}
}

// ----- auth tests -----

func TestRegister(t *testing.T) {
	h, _, secret, _ := setup(t)

	email := fmt.Sprintf("Test-%s@Test.com ", uuid.New().String()[:8])
	rr, err := h.Register(context.Background(), &pb.RegisterRequest{
		Email: email, Password: "testpass123",
	})
	if err != nil {
		t.Fatalf("register without name: %v", err)
	}
	if rr.UserId == "" || rr.Token == "" || rr.RefreshToken == "" {
		t.Fatalf("incomplete response: %+v", rr)
	}
	claims, err := auth.ParseToken(rr.Token, secret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != rr.UserId {
		t.Errorf("token uid %s, want %s", claims.UserID, rr.UserId)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	h, _, _, _ := setup(t)
	_, email := registerUser(t, h)

	_, err := h.Register(context.Background(), &pb.RegisterRequest{
		Email: email, Password: "testpass123", Name: "Second",
	})
	if code(err) != codes.AlreadyExists {
		t.Errorf("expected AlreadyExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	h, _, _, _ := setup(t)
	uid, email := registerUser(t, h)

	lr, err := h.Login(context.Background(), &pb.LoginRequest{Email: email, Password: "testpass123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if lr.Token == "" || lr.RefreshToken == "" {
		t.Fatal("missing tokens")
	}
	if lr.UserId != uid || lr.Name != "Test User" || lr.Email != email {
		t.Errorf("unexpected login response: %+v", lr)
	}

	_, err = h.Login(context.Background(), &pb.LoginRequest{Email: email, Password: "wrongpassword"})
	if code(err) != codes.Unauthenticated {
		t.Errorf("wrong password: expected Unauthenticated, got %v", err)
	}

	_, err = h.Login(context.Background(), &pb.LoginRequest{Email: "nobody@nowhere.com", Password: "testpass123"})
	if code(err) != codes.Unauthenticated {
		t.Errorf("unknown user: expected Unauthenticated, got %v", err)
	}
}

func TestRefreshRotation(t *testing.T) {
	h, _, _, _ := setup(t)
	_, email := registerUser(t, h)
	lr, err := h.Login(context.Background(), &pb.LoginRequest{Email: email, Password: "testpass123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	rr, err := h.Refresh(context.Background(), &pb.RefreshRequest{RefreshToken: lr.RefreshToken})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rr.RefreshToken == "" || rr.RefreshToken == lr.RefreshToken {
		t.Fatal("refresh token was not rotated")
	}

	// replaying the old token revokes the whole family
	_, err = h.Refresh(context.Background(), &pb.RefreshRequest{RefreshToken: lr.RefreshToken})
	if code(err) != codes.Unauthenticated {
		t.Fatalf("reuse: expected Unauthenticated, got %v", err)
	}
	_, err = h.Refresh(context.Background(), &pb.RefreshRequest{RefreshToken: rr.RefreshToken})
	if code(err) != codes.Unauthenticated {
		t.Errorf("after reuse the rotated token must be revoked too, got %v", err)
	}

	_, err = h.Refresh(context.Background(), &pb.RefreshRequest{RefreshToken: "deadbeef"})
	if code(err) != codes.Unauthenticated {
		t.Errorf("unknown token: expected Unauthenticated, got %v", err)
	}
}

func TestLogoutRevokesSessions(t *testing.T) {
	h, _, _, _ := setup(t)
	uid, email := registerUser(t, h)
	lr, _ := h.Login(context.Background(), &pb.LoginRequest{Email: email, Password: "testpass123"})

	if _, err := h.Logout(authedCtx(uid), &pb.Empty{}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	_, err := h.Refresh(context.Background(), &pb.RefreshRequest{RefreshToken: lr.RefreshToken})
	if code(err) != codes.Unauthenticated {
		t.Errorf("expected Unauthenticated after logout, got %v", err)
	}
}

func TestGetProfile(t *testing.T) {
	h, _, _, _ := setup(t)
	uid, email := registerUser(t, h)

	pr, err := h.GetProfile(authedCtx(uid), &pb.Empty{})
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if pr.User.Id != uid || pr.User.Email != email || pr.User.Name != "Test User" {
		t.Errorf("unexpected profile: %+v", pr.User)
	}
	if pr.User.CreatedAt == nil {
		t.Error("missing created_at")
	}

	_, err = h.GetProfile(authedCtx(uuid.New().String()), &pb.Empty{})
	if code(err) != codes.NotFound {
		t.Errorf("expected NotFound for unknown user, got %v", err)
	}
}

// ----- application CRUD -----

func TestCreateApplication(t *testing.T) {
	h, _, _, spy := setup(t)
	uid, email := registerUser(t, h)
	ctx := authedCtx(uid)

	deadline := hoursFromNow(25)
	a := createApplication(t, h, ctx, "Backend Engineer", deadline)
	if a.Id == "" {
		t.Fatal("empty id")
	}
	if a.Status != model.StatusNotStarted {
		t.Errorf("status: got %q", a.Status)
	}
	if a.Type != "Internship" || a.Notes != "referral from Sam" || a.UserId != uid {
		t.Errorf("unexpected application: %+v", a)
	}
	if !a.Deadline.AsTime().Equal(*deadline) {
		t.Errorf("deadline: got %v want %v", a.Deadline.AsTime(), *deadline)
	}

	got, ok := spy.deadline(a.Id)
	if !ok || !got.Equal(*deadline) {
		t.Errorf("reminders not scheduled for the deadline")
	}
	if spy.recipient[a.Id] != email {
		t.Errorf("reminders go to %q, want %q", spy.recipient[a.Id], email)
	}

	noDeadline := createApplication(t, h, ctx, "Open application", nil)
	if _, ok := spy.deadline(noDeadline.Id); ok {
		t.Error("application without deadline must not schedule reminders")
	}
}

// Reminders must carry the deadline exactly as stored, or the fire-time check
// would treat them as stale.
func TestScheduledDeadlineMatchesStoredValue(t *testing.T) {
	h, st, _, spy := setup(t)
	uid, _ := registerUser(t, h)
	ctx := authedCtx(uid)

	deadline := time.Now().Add(30 * time.Hour).Truncate(time.Second).Add(123456789 * time.Nanosecond)
	a := createApplication(t, h, ctx, "Platform Engineer", &deadline)

	stored, err := st.GetApplication(context.Background(), a.Id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got, ok := spy.deadline(a.Id)
	if !ok || !got.Equal(*stored.Deadline) {
		t.Fatalf("scheduled %v, stored %v", got, stored.Deadline)
	}
	if !a.Deadline.AsTime().Equal(*stored.Deadline) {
		t.Errorf("response deadline %v, stored %v", a.Deadline.AsTime(), stored.Deadline)
	}

	moved := deadline.Add(time.Hour + 999*time.Nanosecond)
	if _, err := h.UpdateApplication(ctx, &pb.UpdateApplicationRequest{Id: a.Id, Deadline: timestamppb.New(moved)}); err != nil {
		t.Fatalf("update: %v", err)
	}
	stored, _ = st.GetApplication(context.Background(), a.Id)
	got, _ = spy.deadline(a.Id)
	if got == nil || !got.Equal(*stored.Deadline) {
		t.Errorf("rescheduled %v, stored %v", got, stored.Deadline)
	}
}

func TestCreateApplicationExplicitStatus(t *testing.T) {
	h, _, _, _ := setup(t)
	uid, _ := registerUser(t, h)

	cr, err := h.CreateApplication(authedCtx(uid), &pb.CreateApplicationRequest{
		Title: "Data Analyst", Status: model.StatusInterviewScheduled,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if cr.Application.Status != model.StatusInterviewScheduled {
		t.Errorf("status: got %q", cr.Application.Status)
	}
}

func TestGetApplication(t *testing.T) {
	h, _, _, _ := setup(t)
	uid, _ := registerUser(t, h)
	ctx := authedCtx(uid)

	a := createApplication(t, h, ctx, "SRE", hoursFromNow(48))
	gr, err := h.GetApplication(ctx, &pb.IDRequest{Id: a.Id})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if gr.Application.Title != "SRE" {
		t.Errorf("title mismatch: %s", gr.Application.Title)
	}

	_, err = h.GetApplication(ctx, &pb.IDRequest{Id: uuid.New().String()})
	if code(err) != codes.NotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestListApplications(t *testing.T) {
	h, _, _, _ := setup(t)
	uid, _ := registerUser(t, h)
	ctx := authedCtx(uid)

	later := createApplication(t, h, ctx, "later", hoursFromNow(72))
	none := createApplication(t, h, ctx, "none", nil)
	sooner := createApplication(t, h, ctx, "sooner", hoursFromNow(5))
	if _, err := h.UpdateApplication(ctx, &pb.UpdateApplicationRequest{
		Id: later.Id, Status: strp(model.StatusInProgress),
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	lr, err := h.ListApplications(ctx, &pb.ListApplicationsRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var ids []string
	for _, a := range lr.Applications {
		ids = append(ids, a.Id)
	}
	want := []string{sooner.Id, later.Id, none.Id}
	if fmt.Sprint(ids) != fmt.Sprint(want) {
		t.Errorf("order: got %v want %v (deadline asc, none last)", ids, want)
	}

	lr, err = h.ListApplications(ctx, &pb.ListApplicationsRequest{Status: model.StatusInProgress})
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(lr.Applications) != 1 || lr.Applications[0].Id != later.Id {
		t.Errorf("status filter: got %d applications", len(lr.Applications))
	}
}

func TestUpdateApplicationPartial(t *testing.T) {
	h, _, _, spy := setup(t)
	uid, _ := registerUser(t, h)
	ctx := authedCtx(uid)

	a := createApplication(t, h, ctx, "Frontend", hoursFromNow(30))

	ur, err := h.UpdateApplication(ctx, &pb.UpdateApplicationRequest{Id: a.Id, Notes: strp("")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	u := ur.Application
	if u.Title != "Frontend" || u.Type != "Internship" || u.Notes != "" {
		t.Errorf("only notes should change: %+v", u)
	}
	if !u.Deadline.AsTime().Equal(a.Deadline.AsTime()) {
		t.Error("deadline changed without being sent")
	}

	moved := hoursFromNow(100)
	ur, err = h.UpdateApplication(ctx, &pb.UpdateApplicationRequest{
		Id: a.Id, Title: strp("Frontend II"), Deadline: timestamppb.New(*moved),
	})
	if err != nil {
		t.Fatalf("update deadline: %v", err)
	}
	if ur.Application.Title != "Frontend II" {
		t.Errorf("title not updated: %s", ur.Application.Title)
	}
	if got, ok := spy.deadline(a.Id); !ok || !got.Equal(*moved) {
		t.Error("reminders not rescheduled to the new deadline")
	}

	ur, err = h.UpdateApplication(ctx, &pb.UpdateApplicationRequest{Id: a.Id, ClearDeadline: true})
	if err != nil {
		t.Fatalf("clear deadline: %v", err)
	}
	if ur.Application.Deadline != nil {
		t.Error("deadline not cleared")
	}
	if _, ok := spy.deadline(a.Id); ok {
		t.Error("clearing the deadline must cancel reminders")
	}

	_, err = h.UpdateApplication(ctx, &pb.UpdateApplicationRequest{Id: a.Id, Title: strp("  ")})
	if code(err) != codes.InvalidArgument {
		t.Errorf("blank title: expected InvalidArgument, got %v", err)
	}
}

func TestDeleteApplication(t *testing.T) {
	h, _, _, spy := setup(t)
	uid, _ := registerUser(t, h)
	ctx := authedCtx(uid)

	a := createApplication(t, h, ctx, "ML Engineer", hoursFromNow(10))
	if _, err := h.DeleteApplication(ctx, &pb.IDRequest{Id: a.Id}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if spy.cancelled[a.Id] != 1 {
		t.Error("delete must cancel reminders")
	}

	_, err := h.GetApplication(ctx, &pb.IDRequest{Id: a.Id})
	if code(err) != codes.NotFound {
		t.Errorf("expected NotFound after delete, got %v", err)
	}
	_, err = h.DeleteApplication(ctx, &pb.IDRequest{Id: a.Id})
	if code(err) != codes.NotFound {
		t.Errorf("second delete: expected NotFound, got %v", err)
	}
}

func TestApplicationStats(t *testing.T) {
	h, _, _, _ := setup(t)
	uid, _ := registerUser(t, h)
	ctx := authedCtx(uid)

	createApplication(t, h, ctx, "a", hoursFromNow(5))
	createApplication(t, h, ctx, "b", nil)
	c := createApplication(t, h, ctx, "c", hoursFromNow(50))
	h.UpdateApplication(ctx, &pb.UpdateApplicationRequest{Id: c.Id, Status: strp(model.StatusRejected)})

	sr, err := h.ApplicationStats(ctx, &pb.Empty{})
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if sr.Total != 3 || sr.Upcoming != 2 {
		t.Errorf("total=%d upcoming=%d, want 3 and 2", sr.Total, sr.Upcoming)
	}
	counts := map[string]int64{}
	for _, sc := range sr.ByStatus {
		counts[sc.Status] = sc.Count
	}
	if counts[model.StatusNotStarted] != 2 || counts[model.StatusRejected] != 1 {
		t.Errorf("by status: %v", counts)
	}
}

// ----- IDOR / ownership -----

func TestOwnership(t *testing.T) {
	h, _, _, spy := setup(t)
	uid1, _ := registerUser(t, h)
	uid2, _ := registerUser(t, h)
	ctx1 := authedCtx(uid1)
	ctx2 := authedCtx(uid2)

	a := createApplication(t, h, ctx1, "mine", hoursFromNow(40))

	// user2 cant see or touch user1's application
	if _, err := h.GetApplication(ctx2, &pb.IDRequest{Id: a.Id}); code(err) != codes.NotFound {
		t.Errorf("get: expected NotFound (IDOR), got %v", err)
	}
	if _, err := h.UpdateApplication(ctx2, &pb.UpdateApplicationRequest{Id: a.Id, Title: strp("yours")}); code(err) != codes.NotFound {
		t.Errorf("update: expected NotFound (IDOR), got %v", err)
	}
	if _, err := h.DeleteApplication(ctx2, &pb.IDRequest{Id: a.Id}); code(err) != codes.NotFound {
		t.Errorf("delete: expected NotFound (IDOR), got %v", err)
	}
	if spy.cancelled[a.Id] != 0 {
		t.Error("foreign delete must not cancel reminders")
	}

	lr, err := h.ListApplications(ctx2, &pb.ListApplicationsRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, x := range lr.Applications {
		if x.UserId == uid1 {
			t.Error("user2 can see user1's application in list")
		}
	}
}

// ----- tokens -----

func TestRefreshTokenGeneration(t *testing.T) {
	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(raw) != 64 { // 32 bytes hex = 64 chars
		t.Errorf("expected 64 char raw token, got %d", len(raw))
	}
	if len(hash) != 64 {
		t.Errorf("expected 64 char hash, got %d", len(hash))
	}
	if auth.HashRefreshToken(raw) != hash {
		t.Error("hash mismatch")
	}
}

func TestAccessTokenExpiry(t *testing.T) {
	tok, err := auth.MakeToken("test-uid", "secret", 0)
	if err != nil {
		t.Fatalf("make token: %v", err)
	}
	claims, err := auth.ParseToken(tok, "secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != "test-uid" {
		t.Errorf("uid mismatch: %s", claims.UserID)
	}

	// verify expiry is ~15 min from now
	diff := time.Until(claims.ExpiresAt.Time)
	if diff < 14*time.Minute || diff > 16*time.Minute {
		t.Errorf("expected ~15min expiry, got %v", diff)
	}
}

func TestAlgorithmConfusion(t *testing.T) {
	tok, _ := auth.MakeToken("uid", "secret", time.Minute)
	if _, err := auth.ParseToken(tok, "secret"); err != nil {
		t.Fatalf("valid token failed: %v", err)
	}
	if _, err := auth.ParseToken(tok, "wrong-secret"); err == nil {
		t.Fatal("expected error for wrong secret")
	}
	if _, err := auth.ParseToken("not.a.token", "secret"); err == nil {
		t.Fatal("expected error for garbage token")
	}
}
