package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foodwise/foodwise/internal/auth"
	"github.com/foodwise/foodwise/internal/handler/dto"
)

func postJSON(t *testing.T, handlerFn http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handlerFn(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp
}

func TestAuthHandler_Register(t *testing.T) {
	h, _ := newTestAuthHandler()

	rec := postJSON(t, h.Register, "/auth/register",
		`{"username":"alice","email":"a@x.com","password":"pw"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.MessageResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message == "" {
		t.Error("expected a confirmation message")
	}
}

func TestAuthHandler_RegisterDuplicate(t *testing.T) {
	h, _ := newTestAuthHandler()

	body := `{"username":"alice","email":"a@x.com","password":"pw"}`
	if rec := postJSON(t, h.Register, "/auth/register", body); rec.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", rec.Code)
	}

	rec := postJSON(t, h.Register, "/auth/register", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != "USERNAME_TAKEN" {
		t.Errorf("unexpected error code: %s", resp.Code)
	}
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	h, _ := newTestAuthHandler()

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"invalid_json", `{not json`, "INVALID_JSON"},
		{"missing_username", `{"email":"a@x.com","password":"pw"}`, "USERNAME_REQUIRED"},
		{"missing_email", `{"username":"alice","password":"pw"}`, "EMAIL_REQUIRED"},
		{"missing_password", `{"username":"alice","email":"a@x.com"}`, "PASSWORD_REQUIRED"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := postJSON(t, h.Register, "/auth/register", test.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}
			if resp := decodeError(t, rec); resp.Code != test.wantCode {
				t.Errorf("expected code %s, got %s", test.wantCode, resp.Code)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	h, tokens := newTestAuthHandler()

	postJSON(t, h.Register, "/auth/register",
		`{"username":"alice","email":"a@x.com","password":"pw"}`)

	rec := postJSON(t, h.Login, "/auth/login", `{"username":"alice","password":"pw"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.TokenPairResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// Both tokens must verify with the right type and carry the username.
	if subject, err := tokens.Validate(resp.AccessToken, auth.TokenTypeAccess); err != nil || subject != "alice" {
		t.Errorf("access token invalid: subject=%q err=%v", subject, err)
	}
	if subject, err := tokens.Validate(resp.RefreshToken, auth.TokenTypeRefresh); err != nil || subject != "alice" {
		t.Errorf("refresh token invalid: subject=%q err=%v", subject, err)
	}
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	h, _ := newTestAuthHandler()

	postJSON(t, h.Register, "/auth/register",
		`{"username":"alice","email":"a@x.com","password":"pw"}`)

	tests := []struct {
		name string
		body string
	}{
		{"wrong_password", `{"username":"alice","password":"wrong"}`},
		{"unknown_username", `{"username":"bob","password":"pw"}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := postJSON(t, h.Login, "/auth/login", test.body)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected status 401, got %d", rec.Code)
			}
			// The two failure modes must be indistinguishable.
			if resp := decodeError(t, rec); resp.Code != "INVALID_CREDENTIALS" {
				t.Errorf("unexpected error code: %s", resp.Code)
			}
		})
	}
}

func TestAuthHandler_RefreshWithoutIdentity(t *testing.T) {
	h, _ := newTestAuthHandler()

	// Refresh reached without the middleware having set an identity.
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	rec := httptest.NewRecorder()
	h.Refresh(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}
