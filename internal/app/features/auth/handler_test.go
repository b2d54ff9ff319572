package auth_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/trainhub/internal/app/features/auth"
	"github.com/dalemusser/trainhub/internal/app/system/token"
	"github.com/dalemusser/trainhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// captureMailer records OTP sends instead of talking to SMTP.
type captureMailer struct {
	to   []string
	code []string
}

func (m *captureMailer) SendOTP(to, code string) error {
	m.to = append(m.to, to)
	m.code = append(m.code, code)
	return nil
}

func newTestHandler(t *testing.T) (*auth.Handler, *captureMailer, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	tokens, err := token.NewManager("test-secret-key", time.Hour, logger)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	mail := &captureMailer{}
	return auth.NewHandler(db, tokens, mail, 10*time.Minute, logger), mail, db
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleSignup(t *testing.T) {
	h, mail, _ := newTestHandler(t)

	rec := postJSON(t, h.HandleSignup,
		`{"full_name":"Sam Cole","email":"sam@test.com","password":"supersecret"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: got %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	if len(mail.code) != 1 || mail.to[0] != "sam@test.com" {
		t.Fatalf("expected one OTP mail to sam@test.com, got %v", mail.to)
	}
	if len(mail.code[0]) != 6 {
		t.Errorf("OTP length: got %d, want 6", len(mail.code[0]))
	}
}

func TestHandleSignup_ShortPassword(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := postJSON(t, h.HandleSignup,
		`{"full_name":"Sam","email":"sam@test.com","password":"short"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("short password: got %d, want 400", rec.Code)
	}
}

func TestHandleSignup_UnverifiedResend(t *testing.T) {
	h, mail, _ := newTestHandler(t)

	body := `{"full_name":"Sam Cole","email":"sam@test.com","password":"supersecret"}`
	if rec := postJSON(t, h.HandleSignup, body); rec.Code != http.StatusCreated {
		t.Fatalf("first signup: got %d", rec.Code)
	}

	// Signing up again before verifying re-sends a code instead of
	// conflicting.
	rec := postJSON(t, h.HandleSignup, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("repeat signup: got %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if len(mail.code) != 2 {
		t.Errorf("OTP mails sent: got %d, want 2", len(mail.code))
	}
}

func TestSignupVerifyLoginFlow(t *testing.T) {
	h, mail, _ := newTestHandler(t)

	if rec := postJSON(t, h.HandleSignup,
		`{"full_name":"Sam Cole","email":"sam@test.com","password":"supersecret"}`); rec.Code != http.StatusCreated {
		t.Fatalf("signup: got %d", rec.Code)
	}

	// Login before verification is forbidden.
	rec := postJSON(t, h.HandleLogin, `{"email":"sam@test.com","password":"supersecret"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("unverified login: got %d, want 403", rec.Code)
	}

	// Wrong code is rejected.
	wrongCode := "000000"
	if mail.code[0] == wrongCode {
		wrongCode = "000001"
	}
	rec = postJSON(t, h.HandleVerifyOTP,
		fmt.Sprintf(`{"email":"sam@test.com","code":"%s"}`, wrongCode))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong code: got %d, want 401", rec.Code)
	}

	// Correct code verifies and returns a token.
	rec = postJSON(t, h.HandleVerifyOTP,
		fmt.Sprintf(`{"email":"sam@test.com","code":"%s"}`, mail.code[0]))
	if rec.Code != http.StatusOK {
		t.Fatalf("verify: got %d (body %s)", rec.Code, rec.Body.String())
	}
	var verifyBody struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &verifyBody); err != nil || verifyBody.Token == "" {
		t.Fatalf("verify response missing token: %s", rec.Body.String())
	}

	// Login now succeeds.
	rec = postJSON(t, h.HandleLogin, `{"email":"sam@test.com","password":"supersecret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: got %d (body %s)", rec.Code, rec.Body.String())
	}

	// Wrong password stays a 401.
	rec = postJSON(t, h.HandleLogin, `{"email":"sam@test.com","password":"wrongwrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password login: got %d, want 401", rec.Code)
	}
}

func TestHandleLogin_UnknownEmail(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := postJSON(t, h.HandleLogin, `{"email":"nobody@test.com","password":"whatever12"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unknown email: got %d, want 401", rec.Code)
	}
}
