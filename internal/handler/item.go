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

// ItemHandler handles the /items endpoints.
type ItemHandler struct {
	db     repository.DBTX
	txer   repository.TxBeginner
	items  repository.ItemRepository
	games  repository.GameRepository
	outbox repository.OutboxRepository
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(db repository.DBTX, txer repository.TxBeginner, items repository.ItemRepository, games repository.GameRepository, outbox repository.OutboxRepository) *ItemHandler {
	return &ItemHandler{db: db, txer: txer, items: items, games: games, outbox: outbox}
}

type createItemRequest struct {
	GameID     int64  `json:"game_id"`
	Name       string `json:"name"`
	Attributes string `json:"attributes"`
}

type updateItemRequest struct {
	Name       *string `json:"name"`
	Attributes *string `json:"attributes"`
}

// List handles GET /items.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.items.FindAll(r.Context(), h.db)
	if err != nil {
		RespondError(w, domain.ErrInternal("list items", err))
		return
	}

	items := make([]any, 0, len(all))
	for i := range all {
		items = append(items, transfer.ItemToDTO(&all[i], hateoas.ItemLinks(all[i].ID)))
	}
	RespondJSON(w, http.StatusOK, transfer.Collection{Items: items, Links: hateoas.ItemCollectionLinks()})
}

// Get handles GET /items/{id}.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := IDParam(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	item, err := h.items.FindByID(r.Context(), h.db, id)
	if err != nil {
		RespondError(w, domain.ErrInternal("find item", err))
		return
	}
	if item == nil {
		RespondError(w, domain.ErrNotFound("item", chi.URLParam(r, "id")))
		return
	}
	RespondJSON(w, http.StatusOK, transfer.ItemToDTO(item, hateoas.ItemLinks(item.ID)))
}

// Create handles POST /items. The referenced game must exist.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
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

	var created *domain.Item
	err := RunInTx(r.Context(), h.txer, func(tx pgx.Tx) error {
		game, err := h.games.FindByID(r.Context(), tx, req.GameID)
		if err != nil {
			return domain.ErrInternal("find game", err)
		}
		if game == nil {
			return domain.ErrValidation("game does not exist")
		}

		created, err = h.items.Create(r.Context(), tx, &domain.Item{
			GameID:     req.GameID,
			Name:       req.Name,
			Attributes: req.Attributes,
		})
		if err != nil {
			return domain.ErrInternal("create item", err)
		}
		return h.outbox.Insert(r.Context(), tx, domain.NewCatalogEvent(domain.AggregateItem, created.ID, domain.EventCreated, created))
	})
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusCreated, transfer.ItemToDTO(created, hateoas.ItemLinks(created.ID)))
}

// Update handles PUT /items/{id}. Only fields present in the payload change.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := IDParam(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	var req updateItemRequest
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

	var updated *domain.Item
	err = RunInTx(r.Context(), h.txer, func(tx pgx.Tx) error {
		existing, err := h.items.FindByID(r.Context(), tx, id)
		if err != nil {
			return domain.ErrInternal("find item", err)
		}
		if existing == nil {
			return domain.ErrNotFound("item", chi.URLParam(r, "id"))
		}

		if req.Name != nil {
			existing.Name = *req.Name
		}
		if req.Attributes != nil {
			existing.Attributes = *req.Attributes
		}

		updated, err = h.items.Update(r.Context(), tx, existing)
		if err != nil {
			return domain.ErrInternal("update item", err)
		}
		return h.outbox.Insert(r.Context(), tx, domain.NewCatalogEvent(domain.AggregateItem, updated.ID, domain.EventUpdated, updated))
	})
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, transfer.ItemToDTO(updated, hateoas.ItemLinks(updated.ID)))
}

// Delete handles DELETE /items/{id}.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := IDParam(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	err = RunInTx(r.Context(), h.txer, func(tx pgx.Tx) error {
		existing, err := h.items.FindByID(r.Context(), tx, id)
		if err != nil {
			return domain.ErrInternal("find item", err)
		}
		if existing == nil {
			return domain.ErrNotFound("item", chi.URLParam(r, "id"))
		}
		if err := h.items.Delete(r.Context(), tx, id); err != nil {
			return domain.ErrInternal("delete item", err)
		}
		return h.outbox.Insert(r.Context(), tx, domain.NewCatalogEvent(domain.AggregateItem, id, domain.EventDeleted, existing))
	})
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, transfer.Message{
		Message: "item " + chi.URLParam(r, "id") + " deleted",
		Links:   hateoas.ItemDeletedLinks(),
	})
}
