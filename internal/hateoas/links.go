// Package hateoas builds the hyperlink sets attached to every resource
// representation. Links are rendered from an explicit route-template table
// keyed by controller and action; no reflection is involved, and no link
// depends on entity state.
package hateoas

import (
	"strconv"
	"strings"
)

// Link is a named relation to another route.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// Params holds the values substituted into a route template.
type Params map[string]string

// routes is the full template table, keyed by "controller.action". Templates
// use {name} placeholders and must stay in sync with the router in
// internal/app.
var routes = map[string]string{
	"games.list":         "/games",
	"games.get":          "/games/{id}",
	"games.create":       "/games",
	"games.update":       "/games/{id}",
	"games.delete":       "/games/{id}",
	"games.achievements": "/games/{id}/achievements",
	"games.items":        "/games/{id}/items",

	"achievements.list":   "/achievements",
	"achievements.get":    "/achievements/{id}",
	"achievements.create": "/achievements",
	"achievements.update": "/achievements/{id}",
	"achievements.delete": "/achievements/{id}",

	"items.list":   "/items",
	"items.get":    "/items/{id}",
	"items.create": "/items",
	"items.update": "/items/{id}",
	"items.delete": "/items/{id}",

	"players.list":         "/admins/players",
	"players.get":          "/admins/players/{id}",
	"players.create":       "/admins/create-players",
	"players.update":       "/admins/players/{id}/update",
	"players.delete":       "/admins/players/{id}/delete",
	"players.games":        "/admins/players/{id}/games",
	"players.achievements": "/admins/players/{id}/achievements",
	"players.items":        "/admins/players/{id}/items",

	"admins.list":   "/admins/list",
	"admins.get":    "/admins/{id}",
	"admins.create": "/admins/create-admins",
	"admins.update": "/admins/{id}/update",
	"admins.delete": "/admins/{id}/delete",
}

// Route renders the template registered for controller.action, substituting
// every {name} placeholder from params. Unknown keys render as an empty
// path, which tests catch early.
func Route(controller, action string, params Params) string {
	tmpl, ok := routes[controller+"."+action]
	if !ok {
		return ""
	}
	for name, value := range params {
		tmpl = strings.ReplaceAll(tmpl, "{"+name+"}", value)
	}
	return tmpl
}

func idParams(id int64) Params {
	return Params{"id": strconv.FormatInt(id, 10)}
}

func link(rel, controller, action string, params Params) Link {
	return Link{Rel: rel, Href: Route(controller, action, params)}
}

// GameLinks is the full relation set for a resolved game.
func GameLinks(id int64) []Link {
	p := idParams(id)
	return []Link{
		link("self", "games", "get", p),
		link("update", "games", "update", p),
		link("delete", "games", "delete", p),
		link("achievements", "games", "achievements", p),
		link("items", "games", "items", p),
		link("all-games", "games", "list", nil),
	}
}

// GameCollectionLinks is the envelope link set for the game collection.
func GameCollectionLinks() []Link {
	return []Link{
		link("self", "games", "list", nil),
		link("create", "games", "create", nil),
	}
}

// GameDeletedLinks points callers back at recovery routes after a delete.
func GameDeletedLinks() []Link {
	return []Link{
		link("all-games", "games", "list", nil),
		link("create", "games", "create", nil),
	}
}

// GameRelatedLinks is the self link for a game's nested collection view
// (action is "achievements" or "items").
func GameRelatedLinks(id int64, action string) []Link {
	return []Link{link("self", "games", action, idParams(id))}
}

// AchievementLinks is the full relation set for a resolved achievement.
func AchievementLinks(id int64) []Link {
	p := idParams(id)
	return []Link{
		link("self", "achievements", "get", p),
		link("update", "achievements", "update", p),
		link("delete", "achievements", "delete", p),
		link("all-achievements", "achievements", "list", nil),
	}
}

func AchievementCollectionLinks() []Link {
	return []Link{
		link("self", "achievements", "list", nil),
		link("create", "achievements", "create", nil),
	}
}

func AchievementDeletedLinks() []Link {
	return []Link{
		link("all-achievements", "achievements", "list", nil),
		link("create", "achievements", "create", nil),
	}
}

// ItemLinks is the full relation set for a resolved item.
func ItemLinks(id int64) []Link {
	p := idParams(id)
	return []Link{
		link("self", "items", "get", p),
		link("update", "items", "update", p),
		link("delete", "items", "delete", p),
		link("all-items", "items", "list", nil),
	}
}

func ItemCollectionLinks() []Link {
	return []Link{
		link("self", "items", "list", nil),
		link("create", "items", "create", nil),
	}
}

func ItemDeletedLinks() []Link {
	return []Link{
		link("all-items", "items", "list", nil),
		link("create", "items", "create", nil),
	}
}

// PlayerLinks is the full relation set for a resolved player, including the
// nested ownership views.
func PlayerLinks(id int64) []Link {
	p := idParams(id)
	return []Link{
		link("self", "players", "get", p),
		link("update", "players", "update", p),
		link("delete", "players", "delete", p),
		link("games", "players", "games", p),
		link("achievements", "players", "achievements", p),
		link("items", "players", "items", p),
		link("all-players", "players", "list", nil),
	}
}

func PlayerCollectionLinks() []Link {
	return []Link{
		link("self", "players", "list", nil),
		link("create", "players", "create", nil),
	}
}

func PlayerDeletedLinks() []Link {
	return []Link{
		link("all-players", "players", "list", nil),
		link("create-player", "players", "create", nil),
	}
}

// PlayerRelatedLinks is the self link for a player's nested collection view
// (action is "games", "achievements" or "items").
func PlayerRelatedLinks(id int64, action string) []Link {
	return []Link{link("self", "players", action, idParams(id))}
}

// AdminLinks is the full relation set for a resolved admin.
func AdminLinks(id int64) []Link {
	p := idParams(id)
	return []Link{
		link("self", "admins", "get", p),
		link("update", "admins", "update", p),
		link("delete", "admins", "delete", p),
		link("all-admins", "admins", "list", nil),
	}
}

func AdminCollectionLinks() []Link {
	return []Link{
		link("self", "admins", "list", nil),
		link("create", "admins", "create", nil),
	}
}

func AdminDeletedLinks() []Link {
	return []Link{
		link("all-admins", "admins", "list", nil),
		link("create-admin", "admins", "create", nil),
	}
}
