//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamevault/catalog/test/integration/testutil"
)

type linkedResource struct {
	ID    int64 `json:"id"`
	Links []struct {
		Rel  string `json:"rel"`
		Href string `json:"href"`
	} `json:"links"`
}

func rels(r linkedResource) map[string]string {
	out := make(map[string]string, len(r.Links))
	for _, l := range r.Links {
		out[l.Rel] = l.Href
	}
	return out
}

func createGame(t *testing.T, env *testutil.TestEnv, token, title, genre string) int64 {
	t.Helper()
	resp := env.POST("/games", map[string]string{
		"title": title, "genre": genre, "description": genre + " game",
	}, token)
	testutil.AssertStatus(env, resp, http.StatusCreated)

	var game linkedResource
	testutil.DecodeJSON(env, resp, &game)
	return game.ID
}

// ─── Game CRUD ──────────────────────────────────────────────────────────────

func TestGameCreate_ReturnsHyperlinks(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.SeedAdmin("root", "rootpass")

	resp := env.POST("/games", map[string]string{
		"title": "Portal", "genre": "Puzzle", "description": "Thinking with portals",
	}, token)
	testutil.AssertStatus(env, resp, http.StatusCreated)

	var game linkedResource
	testutil.DecodeJSON(env, resp, &game)
	require.Positive(t, game.ID)

	links := rels(game)
	assert.Equal(t, fmt.Sprintf("/games/%d", game.ID), links["self"])
	assert.Contains(t, links, "update")
	assert.Contains(t, links, "delete")
	assert.Contains(t, links, "achievements")
	assert.Contains(t, links, "items")
	assert.Equal(t, "/games", links["all-games"])
}

func TestGameCreate_RequiresTitle(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.SeedAdmin("root", "rootpass")

	resp := env.POST("/games", map[string]string{"genre": "Puzzle"}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	testutil.AssertErrorCode(env, resp, "VALIDATION_ERROR")
}

func TestGameCreate_DuplicateTitle(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.SeedAdmin("root", "rootpass")
	createGame(t, env, token, "Portal", "Puzzle")

	resp := env.POST("/games", map[string]string{"title": "Portal", "genre": "Puzzle"}, token)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	testutil.AssertErrorCode(env, resp, "CONFLICT")
}

func TestGameGet_NotFound(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.SeedAdmin("root", "rootpass")

	resp := env.GET("/games/99999", token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	testutil.AssertErrorCode(env, resp, "NOT_FOUND")
}

func TestGameUpdate_PartialMerge(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.SeedAdmin("root", "rootpass")
	id := createGame(t, env, token, "Portal", "Puzzle")

	// Only genre changes; title and description survive the merge.
	resp := env.PUT(fmt.Sprintf("/games/%d", id), map[string]string{
		"genre": "Platformer",
	}, token)
	testutil.AssertStatus(env, resp, http.StatusOK)

	var game struct {
		Title       string `json:"title"`
		Genre       string `json:"genre"`
		Description string `json:"description"`
	}
	testutil.DecodeJSON(env, resp, &game)
	assert.Equal(t, "Portal", game.Title)
	assert.Equal(t, "Platformer", game.Genre)
	assert.Equal(t, "Puzzle game", game.Description)
}

func TestGameDelete_ThenGone(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.SeedAdmin("root", "rootpass")
	id := createGame(t, env, token, "Portal", "Puzzle")

	resp := env.DELETE(fmt.Sprintf("/games/%d", id), token)
	testutil.AssertStatus(env, resp, http.StatusOK)

	var msg struct {
		Message string `json:"message"`
	}
	testutil.DecodeJSON(env, resp, &msg)
	assert.Equal(t, fmt.Sprintf("game %d deleted", id), msg.Message)

	after := env.GET(fmt.Sprintf("/games/%d", id), token)
	defer after.Body.Close()
	assert.Equal(t, http.StatusNotFound, after.StatusCode)
}

func TestGameList_Envelope(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.SeedAdmin("root", "rootpass")
	createGame(t, env, token, "Portal", "Puzzle")
	createGame(t, env, token, "Doom", "Shooter")

	resp := env.GET("/games", token)
	testutil.AssertStatus(env, resp, http.StatusOK)

	var result struct {
		Items []json.RawMessage `json:"items"`
		Links []struct {
			Rel string `json:"rel"`
		} `json:"links"`
	}
	testutil.DecodeJSON(env, resp, &result)
	assert.Len(t, result.Items, 2)
	assert.NotEmpty(t, result.Links)
}

// ─── Authorization ──────────────────────────────────────────────────────────

func TestGames_RequireAuth(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.GET("/games", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGames_PlayerForbidden(t *testing.T) {
	env := testutil.NewTestEnv(t)
	admin := env.SeedAdmin("root", "rootpass")

	reg := env.POST("/players/register", map[string]interface{}{
		"nickname": "ace", "email": "ace@example.com", "level": 1, "experience": 0,
	}, "")
	testutil.AssertStatus(env, reg, http.StatusCreated)
	reg.Body.Close()

	playerToken := env.Login("ace", "password")

	resp := env.POST("/games", map[string]string{"title": "Portal", "genre": "Puzzle"}, playerToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	testutil.AssertErrorCode(env, resp, "FORBIDDEN")

	// The rejected request must not have created anything.
	list := env.GET("/games", admin)
	testutil.AssertStatus(env, list, http.StatusOK)
	var result struct {
		Items []json.RawMessage `json:"items"`
	}
	testutil.DecodeJSON(env, list, &result)
	assert.Empty(t, result.Items)
}

func TestGamesByName_ReadableByPlayer(t *testing.T) {
	env := testutil.NewTestEnv(t)
	admin := env.SeedAdmin("root", "rootpass")
	gameID := createGame(t, env, admin, "Portal", "Puzzle")

	ach := env.POST("/achievements", map[string]interface{}{
		"game_id": gameID, "name": "Lab Rat", "description": "Escape the lab",
	}, admin)
	testutil.AssertStatus(env, ach, http.StatusCreated)
	ach.Body.Close()

	reg := env.POST("/players/register", map[string]interface{}{
		"nickname": "ace", "email": "ace@example.com", "level": 1, "experience": 0,
	}, "")
	testutil.AssertStatus(env, reg, http.StatusCreated)
	reg.Body.Close()
	playerToken := env.Login("ace", "password")

	resp := env.GET("/games/name/Portal/achievements", playerToken)
	testutil.AssertStatus(env, resp, http.StatusOK)

	var achievements []struct {
		Name  string            `json:"name"`
		Links []json.RawMessage `json:"links"`
	}
	testutil.DecodeJSON(env, resp, &achievements)
	require.Len(t, achievements, 1)
	assert.Equal(t, "Lab Rat", achievements[0].Name)
	// Name-scoped lookups return bare representations.
	assert.Empty(t, achievements[0].Links)
}

func TestGamesByName_UnknownGame(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.SeedAdmin("root", "rootpass")

	resp := env.GET("/games/name/Nothing/items", token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	testutil.AssertErrorCode(env, resp, "NOT_FOUND")
}

// ─── Achievements and Items ─────────────────────────────────────────────────

func TestAchievementCreate_UnknownGame(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.SeedAdmin("root", "rootpass")

	resp := env.POST("/achievements", map[string]interface{}{
		"game_id": 424242, "name": "Ghost", "description": "no game",
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	testutil.AssertErrorCode(env, resp, "VALIDATION_ERROR")
}

func TestAchievementUpdate_PartialMerge(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.SeedAdmin("root", "rootpass")
	gameID := createGame(t, env, token, "Portal", "Puzzle")

	createResp := env.POST("/achievements", map[string]interface{}{
		"game_id": gameID, "name": "Lab Rat", "description": "Escape the lab",
	}, token)
	testutil.AssertStatus(env, createResp, http.StatusCreated)
	var created linkedResource
	testutil.DecodeJSON(env, createResp, &created)

	// Only the name changes; description must survive the merge.
	resp := env.PUT(fmt.Sprintf("/achievements/%d", created.ID),
		map[string]string{"name": "Lab Rat Supreme"}, token)
	testutil.AssertStatus(env, resp, http.StatusOK)

	var updated struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	testutil.DecodeJSON(env, resp, &updated)
	assert.Equal(t, "Lab Rat Supreme", updated.Name)
	assert.Equal(t, "Escape the lab", updated.Description)
}

func TestItemCreate_UnderGame(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.SeedAdmin("root", "rootpass")
	gameID := createGame(t, env, token, "Portal", "Puzzle")

	resp := env.POST("/items", map[string]interface{}{
		"game_id": gameID, "name": "Portal Gun", "attributes": "dual-portal",
	}, token)
	testutil.AssertStatus(env, resp, http.StatusCreated)

	var item linkedResource
	testutil.DecodeJSON(env, resp, &item)
	assert.Contains(t, rels(item), "all-items")

	list := env.GET(fmt.Sprintf("/games/%d/items", gameID), token)
	testutil.AssertStatus(env, list, http.StatusOK)
	var result struct {
		Items []json.RawMessage `json:"items"`
	}
	testutil.DecodeJSON(env, list, &result)
	assert.Len(t, result.Items, 1)
}

// ─── Accounts ───────────────────────────────────────────────────────────────

func TestRegister_ThenLogin(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.POST("/players/register", map[string]interface{}{
		"nickname": "ace", "email": "ace@example.com", "level": 3, "experience": 120,
	}, "")
	testutil.AssertStatus(env, resp, http.StatusCreated)

	var player linkedResource
	testutil.DecodeJSON(env, resp, &player)
	require.Positive(t, player.ID)
	assert.Contains(t, rels(player), "games")

	login := env.POST("/auth/login", map[string]string{
		"username": "ace", "password": "password",
	}, "")
	testutil.AssertStatus(env, login, http.StatusOK)

	var tokenResp struct {
		Token    string `json:"token"`
		Role     string `json:"role"`
		Username string `json:"username"`
	}
	testutil.DecodeJSON(env, login, &tokenResp)
	assert.NotEmpty(t, tokenResp.Token)
	assert.Equal(t, "PLAYER", tokenResp.Role)
	assert.Equal(t, "ace", tokenResp.Username)
}

func TestRegister_DuplicateNickname(t *testing.T) {
	env := testutil.NewTestEnv(t)

	body := map[string]interface{}{
		"nickname": "ace", "email": "ace@example.com", "level": 1, "experience": 0,
	}
	first := env.POST("/players/register", body, "")
	testutil.AssertStatus(env, first, http.StatusCreated)
	first.Body.Close()

	second := env.POST("/players/register", body, "")
	assert.Equal(t, http.StatusConflict, second.StatusCode)
	testutil.AssertErrorCode(env, second, "CONFLICT")
}

func TestLogin_WrongPassword(t *testing.T) {
	env := testutil.NewTestEnv(t)

	reg := env.POST("/players/register", map[string]interface{}{
		"nickname": "ace", "email": "ace@example.com", "level": 1, "experience": 0,
	}, "")
	testutil.AssertStatus(env, reg, http.StatusCreated)
	reg.Body.Close()

	resp := env.POST("/auth/login", map[string]string{
		"username": "ace", "password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	testutil.AssertErrorCode(env, resp, "UNAUTHORIZED")
}

func TestAdminCreatesPlayer_CredentialIssued(t *testing.T) {
	env := testutil.NewTestEnv(t)
	admin := env.SeedAdmin("root", "rootpass")

	resp := env.POST("/admins/create-players", map[string]interface{}{
		"nickname": "ace", "email": "ace@example.com", "level": 5, "experience": 900,
	}, admin)
	testutil.AssertStatus(env, resp, http.StatusCreated)

	var player linkedResource
	testutil.DecodeJSON(env, resp, &player)
	require.Positive(t, player.ID)

	// Server-created accounts log in with the placeholder credential.
	token := env.Login("ace", "password")
	assert.NotEmpty(t, token)
}

func TestPlayerDelete_RevokesCredential(t *testing.T) {
	env := testutil.NewTestEnv(t)
	admin := env.SeedAdmin("root", "rootpass")

	create := env.POST("/admins/create-players", map[string]interface{}{
		"nickname": "ace", "email": "ace@example.com", "level": 1, "experience": 0,
	}, admin)
	testutil.AssertStatus(env, create, http.StatusCreated)
	var player linkedResource
	testutil.DecodeJSON(env, create, &player)

	del := env.DELETE(fmt.Sprintf("/admins/players/%d/delete", player.ID), admin)
	testutil.AssertStatus(env, del, http.StatusOK)
	var msg struct {
		Message string `json:"message"`
	}
	testutil.DecodeJSON(env, del, &msg)
	assert.Equal(t, fmt.Sprintf("player %d deleted", player.ID), msg.Message)

	login := env.POST("/auth/login", map[string]string{
		"username": "ace", "password": "password",
	}, "")
	defer login.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, login.StatusCode)
}

func TestAdminAccountLifecycle(t *testing.T) {
	env := testutil.NewTestEnv(t)
	root := env.SeedAdmin("root", "rootpass")

	create := env.POST("/admins/create-admins", map[string]interface{}{
		"nickname": "moderator", "email": "mod@example.com", "level": 0, "experience": 0,
	}, root)
	testutil.AssertStatus(env, create, http.StatusCreated)
	var admin linkedResource
	testutil.DecodeJSON(env, create, &admin)
	assert.Equal(t, "/admins/list", rels(admin)["all-admins"])

	// The new admin's placeholder credential carries the ADMIN role.
	modToken := env.Login("moderator", "password")
	check := env.GET("/games", modToken)
	defer check.Body.Close()
	assert.Equal(t, http.StatusOK, check.StatusCode)

	update := env.PUT(fmt.Sprintf("/admins/%d/update", admin.ID),
		map[string]string{"email": "moderator@example.com"}, root)
	testutil.AssertStatus(env, update, http.StatusOK)
	var updated struct {
		Nickname string `json:"nickname"`
		Email    string `json:"email"`
	}
	testutil.DecodeJSON(env, update, &updated)
	assert.Equal(t, "moderator", updated.Nickname)
	assert.Equal(t, "moderator@example.com", updated.Email)

	del := env.DELETE(fmt.Sprintf("/admins/%d/delete", admin.ID), root)
	testutil.AssertStatus(env, del, http.StatusOK)
	del.Body.Close()

	login := env.POST("/auth/login", map[string]string{
		"username": "moderator", "password": "password",
	}, "")
	defer login.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, login.StatusCode)
}

// ─── Grants ─────────────────────────────────────────────────────────────────

func TestGrantGame_IdempotentAndListed(t *testing.T) {
	env := testutil.NewTestEnv(t)
	admin := env.SeedAdmin("root", "rootpass")
	gameID := createGame(t, env, admin, "Portal", "Puzzle")

	create := env.POST("/admins/create-players", map[string]interface{}{
		"nickname": "ace", "email": "ace@example.com", "level": 1, "experience": 0,
	}, admin)
	testutil.AssertStatus(env, create, http.StatusCreated)
	var player linkedResource
	testutil.DecodeJSON(env, create, &player)

	grantPath := fmt.Sprintf("/admins/players/%d/games/%d", player.ID, gameID)
	first := env.POST(grantPath, nil, admin)
	testutil.AssertStatus(env, first, http.StatusOK)
	first.Body.Close()

	// Granting the same game twice is a no-op, not an error.
	second := env.POST(grantPath, nil, admin)
	testutil.AssertStatus(env, second, http.StatusOK)
	second.Body.Close()

	list := env.GET(fmt.Sprintf("/admins/players/%d/games", player.ID), admin)
	testutil.AssertStatus(env, list, http.StatusOK)
	var result struct {
		Items []struct {
			Title string `json:"title"`
		} `json:"items"`
	}
	testutil.DecodeJSON(env, list, &result)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Portal", result.Items[0].Title)
}

func TestGrantGame_UnknownGame(t *testing.T) {
	env := testutil.NewTestEnv(t)
	admin := env.SeedAdmin("root", "rootpass")

	create := env.POST("/admins/create-players", map[string]interface{}{
		"nickname": "ace", "email": "ace@example.com", "level": 1, "experience": 0,
	}, admin)
	testutil.AssertStatus(env, create, http.StatusCreated)
	var player linkedResource
	testutil.DecodeJSON(env, create, &player)

	resp := env.POST(fmt.Sprintf("/admins/players/%d/games/424242", player.ID), nil, admin)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	testutil.AssertErrorCode(env, resp, "NOT_FOUND")
}

// ─── Outbox ─────────────────────────────────────────────────────────────────

func TestGameLifecycle_RecordsOutboxEvents(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := env.SeedAdmin("root", "rootpass")
	id := createGame(t, env, token, "Portal", "Puzzle")

	update := env.PUT(fmt.Sprintf("/games/%d", id), map[string]string{
		"title": "Portal 2", "genre": "Puzzle",
	}, token)
	testutil.AssertStatus(env, update, http.StatusOK)
	update.Body.Close()

	del := env.DELETE(fmt.Sprintf("/games/%d", id), token)
	testutil.AssertStatus(env, del, http.StatusOK)
	del.Body.Close()

	count := testutil.CountOutboxEvents(env, "game", fmt.Sprintf("%d", id))
	assert.Equal(t, 3, count)
}

func TestRegister_RecordsPlayerEvent(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.POST("/players/register", map[string]interface{}{
		"nickname": "ace", "email": "ace@example.com", "level": 1, "experience": 0,
	}, "")
	testutil.AssertStatus(env, resp, http.StatusCreated)
	var player linkedResource
	testutil.DecodeJSON(env, resp, &player)

	count := testutil.CountOutboxEvents(env, "player", fmt.Sprintf("%d", player.ID))
	assert.Equal(t, 1, count)
}
