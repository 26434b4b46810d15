//go:build integration

package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// DecodeJSON decodes the response body into out and closes the body.
func DecodeJSON(env *TestEnv, resp *http.Response, out interface{}) {
	env.t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		env.t.Fatalf("decode response body: %v", err)
	}
}

// AssertStatus fails the test if the response status differs from want.
func AssertStatus(env *TestEnv, resp *http.Response, want int) {
	env.t.Helper()
	if resp.StatusCode != want {
		env.t.Fatalf("status: got %d, want %d", resp.StatusCode, want)
	}
}

// AssertErrorCode decodes an error envelope and checks its code field.
func AssertErrorCode(env *TestEnv, resp *http.Response, want string) {
	env.t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	DecodeJSON(env, resp, &body)
	if body.Code != want {
		env.t.Fatalf("error code: got %q, want %q", body.Code, want)
	}
}

// CountOutboxEvents counts outbox rows recorded for an aggregate.
func CountOutboxEvents(env *TestEnv, aggregateType, aggregateID string) int {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var count int
	err := env.Pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM event_outbox WHERE aggregate_type = $1 AND aggregate_id = $2",
		aggregateType, aggregateID).Scan(&count)
	if err != nil {
		env.t.Fatalf("CountOutboxEvents: %v", err)
	}
	return count
}
