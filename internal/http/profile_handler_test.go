package http

import (
	"net/http"
	"testing"
)

func signupAndLogin(t *testing.T, ts *testServer, name, email string) (string, string) {
	t.Helper()
	body := signupBody()
	body["name"] = name
	body["email"] = email
	signup := performRequest(ts.router, http.MethodPost, "/auth/signup", body)
	if signup.Code != http.StatusCreated {
		t.Fatalf("signup %s: expected 201, got %d", email, signup.Code)
	}
	userID, _ := decodeBody(t, signup)["user"].(map[string]any)["id"].(string)

	login := performRequest(ts.router, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": "Password123!",
	})
	if login.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d", email, login.Code)
	}
	token, _ := decodeBody(t, login)["token"].(string)
	return userID, token
}

func TestProfileHandlerGetProfile_ReturnsOwnProfile(t *testing.T) {
	ts := newTestServer()
	_, token := signupAndLogin(t, ts, "Test User", "test@example.com")
	signupAndLogin(t, ts, "Other User", "other@example.com")

	rec := performRequest(ts.router, http.MethodGet, "/profile", nil, "Authorization", "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["name"] != "Test User" || body["email"] != "test@example.com" {
		t.Fatalf("unexpected profile: %+v", body)
	}
	for _, key := range []string{"firstName", "lastName", "phoneNumber", "about"} {
		v, has := body[key]
		if !has || v != nil {
			t.Fatalf("expected %s to be null, got %v (present=%v)", key, v, has)
		}
	}
	for _, key := range []string{"password", "id", "termsAccepted"} {
		if _, has := body[key]; has {
			t.Fatalf("profile must not include %s", key)
		}
	}
}

func TestProfileHandlerGetProfile_RequiresToken(t *testing.T) {
	ts := newTestServer()

	rec := performRequest(ts.router, http.MethodGet, "/profile", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	rec = performRequest(ts.router, http.MethodGet, "/profile", nil, "Authorization", "Bearer garbage")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestProfileHandlerGetProfile_UserGone(t *testing.T) {
	ts := newTestServer()
	userID, token := signupAndLogin(t, ts, "Test User", "test@example.com")
	ts.repo.delete(userID)

	rec := performRequest(ts.router, http.MethodGet, "/profile", nil, "Authorization", "Bearer "+token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if msg := decodeBody(t, rec)["error"]; msg != "User not found" {
		t.Fatalf("unexpected message: %v", msg)
	}
}

func TestProfileHandlerUpdateProfile_OnlyTouchesCaller(t *testing.T) {
	ts := newTestServer()
	_, token := signupAndLogin(t, ts, "Test User", "test@example.com")
	_, otherToken := signupAndLogin(t, ts, "Other User", "other@example.com")

	rec := performRequest(ts.router, http.MethodPut, "/profile", map[string]string{
		"firstName":   "Ana",
		"lastName":    "Diaz",
		"phoneNumber": "555-0100",
		"about":       "hello",
	}, "Authorization", "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if msg := decodeBody(t, rec)["message"]; msg != "Profile updated successfully" {
		t.Fatalf("unexpected message: %v", msg)
	}

	mine := decodeBody(t, performRequest(ts.router, http.MethodGet, "/profile", nil, "Authorization", "Bearer "+token))
	if mine["firstName"] != "Ana" || mine["about"] != "hello" || mine["email"] != "test@example.com" {
		t.Fatalf("unexpected updated profile: %+v", mine)
	}
	other := decodeBody(t, performRequest(ts.router, http.MethodGet, "/profile", nil, "Authorization", "Bearer "+otherToken))
	if other["firstName"] != nil || other["email"] != "other@example.com" {
		t.Fatalf("other profile must stay untouched: %+v", other)
	}
}

func TestProfileHandlerUpdateProfile_RequiresAllFields(t *testing.T) {
	ts := newTestServer()
	_, token := signupAndLogin(t, ts, "Test User", "test@example.com")

	cases := []any{
		map[string]string{"firstName": "Ana", "lastName": "Diaz", "phoneNumber": "555-0100"},
		map[string]string{"firstName": "", "lastName": "Diaz", "phoneNumber": "555-0100", "about": "x"},
		`{"firstName":`,
	}
	for i, body := range cases {
		rec := performRequest(ts.router, http.MethodPut, "/profile", body, "Authorization", "Bearer "+token)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("case %d: expected status 400, got %d", i, rec.Code)
		}
		if msg := decodeBody(t, rec)["error"]; msg != "All fields are required" {
			t.Fatalf("case %d: unexpected message: %v", i, msg)
		}
	}
}

func TestProfileHandlerUpdateProfile_UserGone(t *testing.T) {
	ts := newTestServer()
	userID, token := signupAndLogin(t, ts, "Test User", "test@example.com")
	ts.repo.delete(userID)

	rec := performRequest(ts.router, http.MethodPut, "/profile", map[string]string{
		"firstName": "a", "lastName": "b", "phoneNumber": "c", "about": "d",
	}, "Authorization", "Bearer "+token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}
