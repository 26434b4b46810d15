//go:build integration

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gamevault/catalog/internal/auth"
)

// SeedAdmin inserts an admin account with a usable credential and returns
// its auth token.
func (env *TestEnv) SeedAdmin(nickname, password string) string {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var adminID int64
	err := env.Pool.QueryRow(ctx,
		"INSERT INTO admins (nickname) VALUES ($1) RETURNING id", nickname).Scan(&adminID)
	if err != nil {
		env.t.Fatalf("SeedAdmin: insert admin: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		env.t.Fatalf("SeedAdmin: hash: %v", err)
	}

	var userID int64
	err = env.Pool.QueryRow(ctx,
		"INSERT INTO app_users (username, password_hash, role, admin_id) VALUES ($1, $2, $3, $4) RETURNING id",
		nickname, string(hash), auth.RoleAdmin, adminID).Scan(&userID)
	if err != nil {
		env.t.Fatalf("SeedAdmin: insert user: %v", err)
	}

	token, err := env.JWTMgr.GenerateToken(userID, nickname, auth.RoleAdmin)
	if err != nil {
		env.t.Fatalf("SeedAdmin: token: %v", err)
	}
	return token
}

// Login authenticates an existing user and returns the auth token.
func (env *TestEnv) Login(username, password string) string {
	env.t.Helper()
	resp := env.POST("/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		env.t.Fatalf("Login: expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		env.t.Fatalf("Login: decode: %v", err)
	}
	return result.Token
}

// GET performs a GET request with optional auth token.
func (env *TestEnv) GET(path, token string) *http.Response {
	return env.do("GET", path, nil, token)
}

// POST performs a POST request with optional auth token.
func (env *TestEnv) POST(path string, body interface{}, token string) *http.Response {
	return env.do("POST", path, body, token)
}

// PUT performs a PUT request with optional auth token.
func (env *TestEnv) PUT(path string, body interface{}, token string) *http.Response {
	return env.do("PUT", path, body, token)
}

// DELETE performs a DELETE request with optional auth token.
func (env *TestEnv) DELETE(path, token string) *http.Response {
	return env.do("DELETE", path, nil, token)
}

func (env *TestEnv) do(method, path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			env.t.Fatalf("%s %s: encode: %v", method, path, err)
		}
	}
	req, err := http.NewRequest(method, env.Server.URL+path, &buf)
	if err != nil {
		env.t.Fatalf("%s %s: new request: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}
