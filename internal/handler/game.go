package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/gamevault/catalog/internal/domain"
	"github.com/gamevault/catalog/internal/hateoas"
	"github.com/gamevault/catalog/internal/repository"
	"github.com/gamevault/catalog/internal/transfer"
)

// GameHandler handles the /games endpoints.
type GameHandler struct {
	db           repository.DBTX
	txer         repository.TxBeginner
	games        repository.GameRepository
	achievements repository.AchievementRepository
	items        repository.ItemRepository
	outbox       repository.OutboxRepository
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(db repository.DBTX, txer repository.TxBeginner, games repository.GameRepository, achievements repository.AchievementRepository, items repository.ItemRepository, outbox repository.OutboxRepository) *GameHandler {
	return &GameHandler{db: db, txer: txer, games: games, achievements: achievements, items: items, outbox: outbox}
}

type createGameRequest struct {
	Title       string `json:"title"`
	Genre       string `json:"genre"`
	Description string `json:"description"`
}

func (req *createGameRequest) validate() error {
	if err := domain.ValidateTitle(req.Title); err != nil {
		return domain.ErrValidation(err.Error())
	}
	return nil
}

// updateGameRequest merges into the stored row: nil fields are left
// untouched.
type updateGameRequest struct {
	Title       *string `json:"title"`
	Genre       *string `json:"genre"`
	Description *string `json:"description"`
}

func (req *updateGameRequest) validate() error {
	if req.Title != nil {
		if err := domain.ValidateTitle(*req.Title); err != nil {
			return domain.ErrValidation(err.Error())
		}
	}
	return nil
}

// List handles GET /games.
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.games.FindAll(r.Context(), h.db)
	if err != nil {
		RespondError(w, domain.ErrInternal("list games", err))
		return
	}

	items := make([]any, 0, len(games))
	for i := range games {
		items = append(items, transfer.GameToDTO(&games[i], hateoas.GameLinks(games[i].ID)))
	}
	RespondJSON(w, http.StatusOK, transfer.Collection{Items: items, Links: hateoas.GameCollectionLinks()})
}

// Get handles GET /games/{id}.
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := IDParam(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	game, err := h.games.FindByID(r.Context(), h.db, id)
	if err != nil {
		RespondError(w, domain.ErrInternal("find game", err))
		return
	}
	if game == nil {
		RespondError(w, domain.ErrNotFound("game", chi.URLParam(r, "id")))
		return
	}
	RespondJSON(w, http.StatusOK, transfer.GameToDTO(game, hateoas.GameLinks(game.ID)))
}

// Achievements handles GET /games/{id}/achievements.
func (h *GameHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	game, err := h.resolveByID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	achievements, err := h.achievements.ListByGame(r.Context(), h.db, game.ID)
	if err != nil {
		RespondError(w, domain.ErrInternal("list game achievements", err))
		return
	}

	items := make([]any, 0, len(achievements))
	for i := range achievements {
		items = append(items, transfer.AchievementToDTO(&achievements[i], hateoas.AchievementLinks(achievements[i].ID)))
	}
	RespondJSON(w, http.StatusOK, transfer.Collection{Items: items, Links: hateoas.GameRelatedLinks(game.ID, "achievements")})
}

// Items handles GET /games/{id}/items.
func (h *GameHandler) Items(w http.ResponseWriter, r *http.Request) {
	game, err := h.resolveByID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	owned, err := h.items.ListByGame(r.Context(), h.db, game.ID)
	if err != nil {
		RespondError(w, domain.ErrInternal("list game items", err))
		return
	}

	items := make([]any, 0, len(owned))
	for i := range owned {
		items = append(items, transfer.ItemToDTO(&owned[i], hateoas.ItemLinks(owned[i].ID)))
	}
	RespondJSON(w, http.StatusOK, transfer.Collection{Items: items, Links: hateoas.GameRelatedLinks(game.ID, "items")})
}

// AchievementsByName handles GET /games/name/{name}/achievements. The
// by-name lookups return a bare list without hyperlinks.
func (h *GameHandler) AchievementsByName(w http.ResponseWriter, r *http.Request) {
	game, err := h.resolveByName(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	achievements, err := h.achievements.ListByGame(r.Context(), h.db, game.ID)
	if err != nil {
		RespondError(w, domain.ErrInternal("list game achievements", err))
		return
	}

	dtos := make([]transfer.AchievementDTO, 0, len(achievements))
	for i := range achievements {
		dtos = append(dtos, transfer.AchievementToDTO(&achievements[i], nil))
	}
	RespondJSON(w, http.StatusOK, dtos)
}

// ItemsByName handles GET /games/name/{name}/items.
func (h *GameHandler) ItemsByName(w http.ResponseWriter, r *http.Request) {
	game, err := h.resolveByName(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	owned, err := h.items.ListByGame(r.Context(), h.db, game.ID)
	if err != nil {
		RespondError(w, domain.ErrInternal("list game items", err))
		return
	}

	dtos := make([]transfer.ItemDTO, 0, len(owned))
	for i := range owned {
		dtos = append(dtos, transfer.ItemToDTO(&owned[i], nil))
	}
	RespondJSON(w, http.StatusOK, dtos)
}

// Create handles POST /games.
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("malformed request body"))
		return
	}
	if err := req.validate(); err != nil {
		RespondError(w, err)
		return
	}

	var created *domain.Game
	err := RunInTx(r.Context(), h.txer, func(tx pgx.Tx) error {
		var err error
		created, err = h.games.Create(r.Context(), tx, &domain.Game{
			Title:       req.Title,
			Genre:       req.Genre,
			Description: req.Description,
		})
		if err != nil {
			if repository.IsUniqueViolation(err) {
				return domain.ErrConflict("game title already exists")
			}
			return domain.ErrInternal("create game", err)
		}
		return h.outbox.Insert(r.Context(), tx, domain.NewCatalogEvent(domain.AggregateGame, created.ID, domain.EventCreated, created))
	})
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusCreated, transfer.GameToDTO(created, hateoas.GameLinks(created.ID)))
}

// Update handles PUT /games/{id}. Only fields present in the payload change;
// resubmitting the same payload is a no-op.
func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := IDParam(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	var req updateGameRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("malformed request body"))
		return
	}
	if err := req.validate(); err != nil {
		RespondError(w, err)
		return
	}

	var updated *domain.Game
	err = RunInTx(r.Context(), h.txer, func(tx pgx.Tx) error {
		existing, err := h.games.FindByID(r.Context(), tx, id)
		if err != nil {
			return domain.ErrInternal("find game", err)
		}
		if existing == nil {
			return domain.ErrNotFound("game", chi.URLParam(r, "id"))
		}

		if req.Title != nil {
			existing.Title = *req.Title
		}
		if req.Genre != nil {
			existing.Genre = *req.Genre
		}
		if req.Description != nil {
			existing.Description = *req.Description
		}

		updated, err = h.games.Update(r.Context(), tx, existing)
		if err != nil {
			if repository.IsUniqueViolation(err) {
				return domain.ErrConflict("game title already exists")
			}
			return domain.ErrInternal("update game", err)
		}
		return h.outbox.Insert(r.Context(), tx, domain.NewCatalogEvent(domain.AggregateGame, updated.ID, domain.EventUpdated, updated))
	})
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, transfer.GameToDTO(updated, hateoas.GameLinks(updated.ID)))
}

// Delete handles DELETE /games/{id}. Owned achievements and items go with
// the game via the store's cascade.
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := IDParam(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	err = RunInTx(r.Context(), h.txer, func(tx pgx.Tx) error {
		existing, err := h.games.FindByID(r.Context(), tx, id)
		if err != nil {
			return domain.ErrInternal("find game", err)
		}
		if existing == nil {
			return domain.ErrNotFound("game", chi.URLParam(r, "id"))
		}
		if err := h.games.Delete(r.Context(), tx, id); err != nil {
			return domain.ErrInternal("delete game", err)
		}
		return h.outbox.Insert(r.Context(), tx, domain.NewCatalogEvent(domain.AggregateGame, id, domain.EventDeleted, existing))
	})
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, transfer.Message{
		Message: "game " + chi.URLParam(r, "id") + " deleted",
		Links:   hateoas.GameDeletedLinks(),
	})
}

func (h *GameHandler) resolveByID(r *http.Request) (*domain.Game, error) {
	id, err := IDParam(r, "id")
	if err != nil {
		return nil, err
	}
	game, err := h.games.FindByID(r.Context(), h.db, id)
	if err != nil {
		return nil, domain.ErrInternal("find game", err)
	}
	if game == nil {
		return nil, domain.ErrNotFound("game", chi.URLParam(r, "id"))
	}
	return game, nil
}

func (h *GameHandler) resolveByName(r *http.Request) (*domain.Game, error) {
	name := chi.URLParam(r, "name")
	if name == "" {
		return nil, domain.ErrValidation("game name is required")
	}
	game, err := h.games.FindByTitle(r.Context(), h.db, name)
	if err != nil {
		return nil, domain.ErrInternal("find game by title", err)
	}
	if game == nil {
		return nil, domain.ErrNotFound("game", name)
	}
	return game, nil
}
