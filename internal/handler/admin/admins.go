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
)

// AdminAccountHandler handles management of admin accounts themselves.
type AdminAccountHandler struct {
	db     repository.DBTX
	txer   repository.TxBeginner
	admins repository.AdminRepository
	users  repository.AppUserRepository
	outbox repository.OutboxRepository
}

// NewAdminAccountHandler creates a new AdminAccountHandler.
func NewAdminAccountHandler(db repository.DBTX, txer repository.TxBeginner, admins repository.AdminRepository, users repository.AppUserRepository, outbox repository.OutboxRepository) *AdminAccountHandler {
	return &AdminAccountHandler{db: db, txer: txer, admins: admins, users: users, outbox: outbox}
}

// List handles GET /admins/list.
func (h *AdminAccountHandler) List(w http.ResponseWriter, r *http.Request) {
	admins, err := h.admins.FindAll(r.Context(), h.db)
	if err != nil {
		handler.RespondError(w, domain.ErrInternal("list admins", err))
		return
	}

	items := make([]any, 0, len(admins))
	for i := range admins {
		items = append(items, transfer.AdminToDTO(&admins[i], hateoas.AdminLinks(admins[i].ID)))
	}
	handler.RespondJSON(w, http.StatusOK, transfer.Collection{Items: items, Links: hateoas.AdminCollectionLinks()})
}

// Get handles GET /admins/{id}.
func (h *AdminAccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handler.IDParam(r, "id")
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	admin, err := h.admins.FindByID(r.Context(), h.db, id)
	if err != nil {
		handler.RespondError(w, domain.ErrInternal("find admin", err))
		return
	}
	if admin == nil {
		handler.RespondError(w, domain.ErrNotFound("admin", chi.URLParam(r, "id")))
		return
	}
	handler.RespondJSON(w, http.StatusOK, transfer.AdminToDTO(admin, hateoas.AdminLinks(admin.ID)))
}

// Create handles POST /admins/create-admins. A credential record with the
// placeholder password is issued alongside the admin.
func (h *AdminAccountHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var created *domain.Admin
	err = handler.RunInTx(r.Context(), h.txer, func(tx pgx.Tx) error {
		var err error
		created, err = h.admins.Create(r.Context(), tx, &domain.Admin{
			Nickname:   req.Nickname,
			Email:      req.Email,
			Level:      req.Level,
			Experience: req.Experience,
		})
		if err != nil {
			if repository.IsUniqueViolation(err) {
				return domain.ErrConflict("nickname already taken")
			}
			return domain.ErrInternal("create admin", err)
		}

		if _, err = h.users.Create(r.Context(), tx, &domain.AppUser{
			Username:     req.Nickname,
			PasswordHash: hash,
			Role:         auth.RoleAdmin,
			AdminID:      &created.ID,
		}); err != nil {
			if repository.IsUniqueViolation(err) {
				return domain.ErrConflict("username already taken")
			}
			return domain.ErrInternal("create credentials", err)
		}
		return h.outbox.Insert(r.Context(), tx, domain.NewCatalogEvent(domain.AggregateAdmin, created.ID, domain.EventCreated, created))
	})
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	handler.RespondJSON(w, http.StatusCreated, transfer.AdminToDTO(created, hateoas.AdminLinks(created.ID)))
}

// Update handles PUT /admins/{id}/update. Only fields present in the payload
// change.
func (h *AdminAccountHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var updated *domain.Admin
	err = handler.RunInTx(r.Context(), h.txer, func(tx pgx.Tx) error {
		existing, err := h.admins.FindByID(r.Context(), tx, id)
		if err != nil {
			return domain.ErrInternal("find admin", err)
		}
		if existing == nil {
			return domain.ErrNotFound("admin", chi.URLParam(r, "id"))
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

		updated, err = h.admins.Update(r.Context(), tx, existing)
		if err != nil {
			if repository.IsUniqueViolation(err) {
				return domain.ErrConflict("nickname already taken")
			}
			return domain.ErrInternal("update admin", err)
		}
		return h.outbox.Insert(r.Context(), tx, domain.NewCatalogEvent(domain.AggregateAdmin, updated.ID, domain.EventUpdated, updated))
	})
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, transfer.AdminToDTO(updated, hateoas.AdminLinks(updated.ID)))
}

// Delete handles DELETE /admins/{id}/delete. Same sequential cascade as
// player deletion: credentials are detached and removed before the admin
// row.
func (h *AdminAccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handler.IDParam(r, "id")
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	existing, err := h.admins.FindByID(r.Context(), h.db, id)
	if err != nil {
		handler.RespondError(w, domain.ErrInternal("find admin", err))
		return
	}
	if existing == nil {
		handler.RespondError(w, domain.ErrNotFound("admin", chi.URLParam(r, "id")))
		return
	}

	user, err := h.users.FindByAdmin(r.Context(), h.db, id)
	if err != nil {
		handler.RespondError(w, domain.ErrInternal("find admin credentials", err))
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

	if err := h.admins.Delete(r.Context(), h.db, id); err != nil {
		handler.RespondError(w, domain.ErrInternal("delete admin", err))
		return
	}
	if err := h.outbox.Insert(r.Context(), h.db, domain.NewCatalogEvent(domain.AggregateAdmin, id, domain.EventDeleted, existing)); err != nil {
		handler.RespondError(w, domain.ErrInternal("record admin event", err))
		return
	}

	handler.RespondJSON(w, http.StatusOK, transfer.Message{
		Message: "admin " + chi.URLParam(r, "id") + " deleted",
		Links:   hateoas.AdminDeletedLinks(),
	})
}
