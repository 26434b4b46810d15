// Package admin holds the handlers mounted under /admins: player account
// management, admin account management and ownership grants.
package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/gamevault/catalog/internal/auth"
	"github.com/gamevault/catalog/internal/domain"
	"github.com/gamevault/catalog/internal/handler"
	"github.com/gamevault/catalog/internal/hateoas"
	"github.com/gamevault/catalog/internal/repository"
	"github.com/gamevault/catalog/internal/transfer"
	"golang.org/x/crypto/bcrypt"
)

// PlayerAdminHandler handles admin player management.
type PlayerAdminHandler struct {
	db           repository.DBTX
	txer         repository.TxBeginner
	players      repository.PlayerRepository
	users        repository.AppUserRepository
	games        repository.GameRepository
	achievements repository.AchievementRepository
	items        repository.ItemRepository
	outbox       repository.OutboxRepository
}

// NewPlayerAdminHandler creates a new PlayerAdminHandler.
func NewPlayerAdminHandler(db repository.DBTX, txer repository.TxBeginner, players repository.PlayerRepository, users repository.AppUserRepository, games repository.GameRepository, achievements repository.AchievementRepository, items repository.ItemRepository, outbox repository.OutboxRepository) *PlayerAdminHandler {
	return &PlayerAdminHandler{db: db, txer: txer, players: players, users: users, games: games, achievements: achievements, items: items, outbox: outbox}
}

type createAccountRequest struct {
	Nickname   string `json:"nickname"`
	Email      string `json:"email"`
	Level      int    `json:"level"`
	Experience int    `json:"experience"`
}

func (req *createAccountRequest) validate() error {
	if err := domain.ValidateNickname(req.Nickname); err != nil {
		return domain.ErrValidation(err.Error())
	}
	if err := domain.ValidateEmail(req.Email); err != nil {
		return domain.ErrValidation(err.Error())
	}
	if err := domain.ValidateProgress(req.Level, req.Experience); err != nil {
		return domain.ErrValidation(err.Error())
	}
	return nil
}

// updateAccountRequest merges into the stored row: nil fields are left
// untouched.
type updateAccountRequest struct {
	Nickname   *string `json:"nickname"`
	Email      *string `json:"email"`
	Level      *int    `json:"level"`
	Experience *int    `json:"experience"`
}

func (req *updateAccountRequest) validate() error {
	if req.Nickname != nil {
		if err := domain.ValidateNickname(*req.Nickname); err != nil {
			return domain.ErrValidation(err.Error())
		}
	}
	if req.Email != nil {
		if err := domain.ValidateEmail(*req.Email); err != nil {
			return domain.ErrValidation(err.Error())
		}
	}
	if req.Level != nil || req.Experience != nil {
		level, experience := 0, 0
		if req.Level != nil {
			level = *req.Level
		}
		if req.Experience != nil {
			experience = *req.Experience
		}
		if err := domain.ValidateProgress(level, experience); err != nil {
			return domain.ErrValidation(err.Error())
		}
	}
	return nil
}

// placeholderHash hashes the fixed credential issued to server-created
// accounts.
func placeholderHash() (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return "", domain.ErrInternal("hash password", err)
	}
	return string(hash), nil
}

// List handles GET /admins/players.
func (h *PlayerAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.FindAll(r.Context(), h.db)
	if err != nil {
		handler.RespondError(w, domain.ErrInternal("list players", err))
		return
	}

	items := make([]any, 0, len(players))
	for i := range players {
		items = append(items, transfer.PlayerToDTO(&players[i], hateoas.PlayerLinks(players[i].ID)))
	}
	handler.RespondJSON(w, http.StatusOK, transfer.Collection{Items: items, Links: hateoas.PlayerCollectionLinks()})
}

// Get handles GET /admins/players/{id}.
func (h *PlayerAdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	player, err := h.resolve(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, transfer.PlayerToDTO(player, hateoas.PlayerLinks(player.ID)))
}

// Games handles GET /admins/players/{id}/games.
func (h *PlayerAdminHandler) Games(w http.ResponseWriter, r *http.Request) {
	player, err := h.resolve(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	games, err := h.players.ListGames(r.Context(), h.db, player.ID)
	if err != nil {
		handler.RespondError(w, domain.ErrInternal("list player games", err))
		return
	}

	items := make([]any, 0, len(games))
	for i := range games {
		items = append(items, transfer.GameToDTO(&games[i], hateoas.GameLinks(games[i].ID)))
	}
	handler.RespondJSON(w, http.StatusOK, transfer.Collection{Items: items, Links: hateoas.PlayerRelatedLinks(player.ID, "games")})
}

// Achievements handles GET /admins/players/{id}/achievements.
func (h *PlayerAdminHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	player, err := h.resolve(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	achievements, err := h.achievements.ListByPlayer(r.Context(), h.db, player.ID)
	if err != nil {
		handler.RespondError(w, domain.ErrInternal("list player achievements", err))
		return
	}

	items := make([]any, 0, len(achievements))
	for i := range achievements {
		items = append(items, transfer.AchievementToDTO(&achievements[i], hateoas.AchievementLinks(achievements[i].ID)))
	}
	handler.RespondJSON(w, http.StatusOK, transfer.Collection{Items: items, Links: hateoas.PlayerRelatedLinks(player.ID, "achievements")})
}

// Items handles GET /admins/players/{id}/items.
func (h *PlayerAdminHandler) Items(w http.ResponseWriter, r *http.Request) {
	player, err := h.resolve(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	owned, err := h.items.ListByPlayer(r.Context(), h.db, player.ID)
	if err != nil {
		handler.RespondError(w, domain.ErrInternal("list player items", err))
		return
	}

	items := make([]any, 0, len(owned))
	for i := range owned {
		items = append(items, transfer.ItemToDTO(&owned[i], hateoas.ItemLinks(owned[i].ID)))
	}
	handler.RespondJSON(w, http.StatusOK, transfer.Collection{Items: items, Links: hateoas.PlayerRelatedLinks(player.ID, "items")})
}

// Create handles POST /admins/create-players. A credential record with the
// placeholder password is issued alongside the player.
func (h *PlayerAdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.RespondError(w, domain.ErrValidation("malformed request body"))
		return
	}
	if err := req.validate(); err != nil {
		handler.RespondError(w, err)
		return
	}

	hash, err := placeholderHash()
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	var created *domain.Player
	err = handler.RunInTx(r.Context(), h.txer, func(tx pgx.Tx) error {
		var err error
		created, err = h.players.Create(r.Context(), tx, &domain.Player{
			Nickname:   req.Nickname,
			Email:      req.Email,
			Level:      req.Level,
			Experience: req.Experience,
		})
		if err != nil {
			if repository.IsUniqueViolation(err) {
				return domain.ErrConflict("nickname already taken")
			}
			return domain.ErrInternal("create player", err)
		}

		if _, err = h.users.Create(r.Context(), tx, &domain.AppUser{
			Username:     req.Nickname,
			PasswordHash: hash,
			Role:         auth.RolePlayer,
			PlayerID:     &created.ID,
		}); err != nil {
			if repository.IsUniqueViolation(err) {
				return domain.ErrConflict("username already taken")
			}
			return domain.ErrInternal("create credentials", err)
		}
		return h.outbox.Insert(r.Context(), tx, domain.NewCatalogEvent(domain.AggregatePlayer, created.ID, domain.EventCreated, created))
	})
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	handler.RespondJSON(w, http.StatusCreated, transfer.PlayerToDTO(created, hateoas.PlayerLinks(created.ID)))
}

// Update handles PUT /admins/players/{id}/update. Only fields present in the
// payload change; resubmitting the same payload is a no-op.
func (h *PlayerAdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handler.IDParam(r, "id")
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	var req updateAccountRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.RespondError(w, domain.ErrValidation("malformed request body"))
		return
	}
	if err := req.validate(); err != nil {
		handler.RespondError(w, err)
		return
	}

	var updated *domain.Player
	err = handler.RunInTx(r.Context(), h.txer, func(tx pgx.Tx) error {
		existing, err := h.players.FindByID(r.Context(), tx, id)
		if err != nil {
			return domain.ErrInternal("find player", err)
		}
		if existing == nil {
			return domain.ErrNotFound("player", chi.URLParam(r, "id"))
		}

		if req.Nickname != nil {
			existing.Nickname = *req.Nickname
		}
		if req.Email != nil {
			existing.Email = *req.Email
		}
		if req.Level != nil {
			existing.Level = *req.Level
		}
		if req.Experience != nil {
			existing.Experience = *req.Experience
		}

		updated, err = h.players.Update(r.Context(), tx, existing)
		if err != nil {
			if repository.IsUniqueViolation(err) {
				return domain.ErrConflict("nickname already taken")
			}
			return domain.ErrInternal("update player", err)
		}
		return h.outbox.Insert(r.Context(), tx, domain.NewCatalogEvent(domain.AggregatePlayer, updated.ID, domain.EventUpdated, updated))
	})
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, transfer.PlayerToDTO(updated, hateoas.PlayerLinks(updated.ID)))
}

// Delete handles DELETE /admins/players/{id}/delete. The credential record
// is detached and removed first, then the player row. The steps run
// sequentially, not in a transaction; a failure mid-way leaves earlier steps
// in place and surfaces as-is.
func (h *PlayerAdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handler.IDParam(r, "id")
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	existing, err := h.players.FindByID(r.Context(), h.db, id)
	if err != nil {
		handler.RespondError(w, domain.ErrInternal("find player", err))
		return
	}
	if existing == nil {
		handler.RespondError(w, domain.ErrNotFound("player", chi.URLParam(r, "id")))
		return
	}

	user, err := h.users.FindByPlayer(r.Context(), h.db, id)
	if err != nil {
		handler.RespondError(w, domain.ErrInternal("find player credentials", err))
		return
	}
	if user != nil {
		if err := h.users.Detach(r.Context(), h.db, user.ID); err != nil {
			handler.RespondError(w, domain.ErrInternal("detach credentials", err))
			return
		}
		if err := h.users.Delete(r.Context(), h.db, user.ID); err != nil {
			handler.RespondError(w, domain.ErrInternal("delete credentials", err))
			return
		}
	}

	if err := h.players.Delete(r.Context(), h.db, id); err != nil {
		handler.RespondError(w, domain.ErrInternal("delete player", err))
		return
	}
	if err := h.outbox.Insert(r.Context(), h.db, domain.NewCatalogEvent(domain.AggregatePlayer, id, domain.EventDeleted, existing)); err != nil {
		handler.RespondError(w, domain.ErrInternal("record player event", err))
		return
	}

	handler.RespondJSON(w, http.StatusOK, transfer.Message{
		Message: "player " + chi.URLParam(r, "id") + " deleted",
		Links:   hateoas.PlayerDeletedLinks(),
	})
}

// GrantGame handles POST /admins/players/{id}/games/{gameID}.
func (h *PlayerAdminHandler) GrantGame(w http.ResponseWriter, r *http.Request) {
	player, err := h.resolve(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	gameID, err := handler.IDParam(r, "gameID")
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	game, err := h.games.FindByID(r.Context(), h.db, gameID)
	if err != nil {
		handler.RespondError(w, domain.ErrInternal("find game", err))
		return
	}
	if game == nil {
		handler.RespondError(w, domain.ErrNotFound("game", chi.URLParam(r, "gameID")))
		return
	}

	if err := h.players.GrantGame(r.Context(), h.db, player.ID, gameID); err != nil {
		handler.RespondError(w, domain.ErrInternal("grant game", err))
		return
	}
	handler.RespondJSON(w, http.StatusOK, transfer.Message{
		Message: "game " + chi.URLParam(r, "gameID") + " granted to player " + chi.URLParam(r, "id"),
		Links:   hateoas.PlayerRelatedLinks(player.ID, "games"),
	})
}

// GrantAchievement handles POST /admins/players/{id}/achievements/{achievementID}.
func (h *PlayerAdminHandler) GrantAchievement(w http.ResponseWriter, r *http.Request) {
	player, err := h.resolve(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	achievementID, err := handler.IDParam(r, "achievementID")
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	achievement, err := h.achievements.FindByID(r.Context(), h.db, achievementID)
	if err != nil {
		handler.RespondError(w, domain.ErrInternal("find achievement", err))
		return
	}
	if achievement == nil {
		handler.RespondError(w, domain.ErrNotFound("achievement", chi.URLParam(r, "achievementID")))
		return
	}

	if err := h.players.GrantAchievement(r.Context(), h.db, player.ID, achievementID); err != nil {
		handler.RespondError(w, domain.ErrInternal("grant achievement", err))
		return
	}
	handler.RespondJSON(w, http.StatusOK, transfer.Message{
		Message: "achievement " + chi.URLParam(r, "achievementID") + " granted to player " + chi.URLParam(r, "id"),
		Links:   hateoas.PlayerRelatedLinks(player.ID, "achievements"),
	})
}

// GrantItem handles POST /admins/players/{id}/items/{itemID}.
func (h *PlayerAdminHandler) GrantItem(w http.ResponseWriter, r *http.Request) {
	player, err := h.resolve(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	itemID, err := handler.IDParam(r, "itemID")
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	item, err := h.items.FindByID(r.Context(), h.db, itemID)
	if err != nil {
		handler.RespondError(w, domain.ErrInternal("find item", err))
		return
	}
	if item == nil {
		handler.RespondError(w, domain.ErrNotFound("item", chi.URLParam(r, "itemID")))
		return
	}

	if err := h.players.GrantItem(r.Context(), h.db, player.ID, itemID); err != nil {
		handler.RespondError(w, domain.ErrInternal("grant item", err))
		return
	}
	handler.RespondJSON(w, http.StatusOK, transfer.Message{
		Message: "item " + chi.URLParam(r, "itemID") + " granted to player " + chi.URLParam(r, "id"),
		Links:   hateoas.PlayerRelatedLinks(player.ID, "items"),
	})
}

func (h *PlayerAdminHandler) resolve(r *http.Request) (*domain.Player, error) {
	id, err := handler.IDParam(r, "id")
	if err != nil {
		return nil, err
	}
	player, err := h.players.FindByID(r.Context(), h.db, id)
	if err != nil {
		return nil, domain.ErrInternal("find player", err)
	}
	if player == nil {
		return nil, domain.ErrNotFound("player", chi.URLParam(r, "id"))
	}
	return player, nil
}
