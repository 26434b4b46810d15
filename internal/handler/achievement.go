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

// AchievementHandler handles the /achievements endpoints.
type AchievementHandler struct {
	db           repository.DBTX
	txer         repository.TxBeginner
	achievements repository.AchievementRepository
	games        repository.GameRepository
	outbox       repository.OutboxRepository
}

// NewAchievementHandler creates a new AchievementHandler.
func NewAchievementHandler(db repository.DBTX, txer repository.TxBeginner, achievements repository.AchievementRepository, games repository.GameRepository, outbox repository.OutboxRepository) *AchievementHandler {
	return &AchievementHandler{db: db, txer: txer, achievements: achievements, games: games, outbox: outbox}
}

type createAchievementRequest struct {
	GameID      int64  `json:"game_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// updateAchievementRequest merges into the stored row: nil fields are left
// untouched.
type updateAchievementRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// List handles GET /achievements.
func (h *AchievementHandler) List(w http.ResponseWriter, r *http.Request) {
	achievements, err := h.achievements.FindAll(r.Context(), h.db)
	if err != nil {
		RespondError(w, domain.ErrInternal("list achievements", err))
		return
	}

	items := make([]any, 0, len(achievements))
	for i := range achievements {
		items = append(items, transfer.AchievementToDTO(&achievements[i], hateoas.AchievementLinks(achievements[i].ID)))
	}
	RespondJSON(w, http.StatusOK, transfer.Collection{Items: items, Links: hateoas.AchievementCollectionLinks()})
}

// Get handles GET /achievements/{id}.
func (h *AchievementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := IDParam(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	achievement, err := h.achievements.FindByID(r.Context(), h.db, id)
	if err != nil {
		RespondError(w, domain.ErrInternal("find achievement", err))
		return
	}
	if achievement == nil {
		RespondError(w, domain.ErrNotFound("achievement", chi.URLParam(r, "id")))
		return
	}
	RespondJSON(w, http.StatusOK, transfer.AchievementToDTO(achievement, hateoas.AchievementLinks(achievement.ID)))
}

// Create handles POST /achievements. The referenced game must exist.
func (h *AchievementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAchievementRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("malformed request body"))
		return
	}
	if err := domain.ValidateName(req.Name); err != nil {
		RespondError(w, domain.ErrValidation(err.Error()))
		return
	}
	if req.GameID <= 0 {
		RespondError(w, domain.ErrValidation("game_id is required"))
		return
	}

	var created *domain.Achievement
	err := RunInTx(r.Context(), h.txer, func(tx pgx.Tx) error {
		game, err := h.games.FindByID(r.Context(), tx, req.GameID)
		if err != nil {
			return domain.ErrInternal("find game", err)
		}
		if game == nil {
			return domain.ErrValidation("game does not exist")
		}

		created, err = h.achievements.Create(r.Context(), tx, &domain.Achievement{
			GameID:      req.GameID,
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			return domain.ErrInternal("create achievement", err)
		}
		return h.outbox.Insert(r.Context(), tx, domain.NewCatalogEvent(domain.AggregateAchievement, created.ID, domain.EventCreated, created))
	})
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusCreated, transfer.AchievementToDTO(created, hateoas.AchievementLinks(created.ID)))
}

// Update handles PUT /achievements/{id}. Only fields present in the payload
// change; resubmitting the same payload is a no-op.
func (h *AchievementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := IDParam(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	var req updateAchievementRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("malformed request body"))
		return
	}
	if req.Name != nil {
		if err := domain.ValidateName(*req.Name); err != nil {
			RespondError(w, domain.ErrValidation(err.Error()))
			return
		}
	}

	var updated *domain.Achievement
	err = RunInTx(r.Context(), h.txer, func(tx pgx.Tx) error {
		existing, err := h.achievements.FindByID(r.Context(), tx, id)
		if err != nil {
			return domain.ErrInternal("find achievement", err)
		}
		if existing == nil {
			return domain.ErrNotFound("achievement", chi.URLParam(r, "id"))
		}

		if req.Name != nil {
			existing.Name = *req.Name
		}
		if req.Description != nil {
			existing.Description = *req.Description
		}

		updated, err = h.achievements.Update(r.Context(), tx, existing)
		if err != nil {
			return domain.ErrInternal("update achievement", err)
		}
		return h.outbox.Insert(r.Context(), tx, domain.NewCatalogEvent(domain.AggregateAchievement, updated.ID, domain.EventUpdated, updated))
	})
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, transfer.AchievementToDTO(updated, hateoas.AchievementLinks(updated.ID)))
}

// Delete handles DELETE /achievements/{id}.
func (h *AchievementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := IDParam(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	err = RunInTx(r.Context(), h.txer, func(tx pgx.Tx) error {
		existing, err := h.achievements.FindByID(r.Context(), tx, id)
		if err != nil {
			return domain.ErrInternal("find achievement", err)
		}
		if existing == nil {
			return domain.ErrNotFound("achievement", chi.URLParam(r, "id"))
		}
		if err := h.achievements.Delete(r.Context(), tx, id); err != nil {
			return domain.ErrInternal("delete achievement", err)
		}
		return h.outbox.Insert(r.Context(), tx, domain.NewCatalogEvent(domain.AggregateAchievement, id, domain.EventDeleted, existing))
	})
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, transfer.Message{
		Message: "achievement " + chi.URLParam(r, "id") + " deleted",
		Links:   hateoas.AchievementDeletedLinks(),
	})
}
