package handler

import (
	"net/http"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/gamevault/catalog/internal/auth"
	"github.com/gamevault/catalog/internal/domain"
	"github.com/gamevault/catalog/internal/hateoas"
	"github.com/gamevault/catalog/internal/repository"
	"github.com/gamevault/catalog/internal/transfer"
)

// placeholderPassword is the credential issued to server-created accounts.
// Account holders are expected to change it out of band.
const placeholderPassword = "password"

// AuthHandler handles login and self-service player registration.
type AuthHandler struct {
	db      repository.DBTX
	txer    repository.TxBeginner
	users   repository.AppUserRepository
	players repository.PlayerRepository
	outbox  repository.OutboxRepository
	jwtMgr  *auth.JWTManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db repository.DBTX, txer repository.TxBeginner, users repository.AppUserRepository, players repository.PlayerRepository, outbox repository.OutboxRepository, jwtMgr *auth.JWTManager) *AuthHandler {
	return &AuthHandler{db: db, txer: txer, users: users, players: players, outbox: outbox, jwtMgr: jwtMgr}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Nickname   string `json:"nickname"`
	Email      string `json:"email"`
	Level      int    `json:"level"`
	Experience int    `json:"experience"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("malformed request body"))
		return
	}
	if req.Username == "" || req.Password == "" {
		RespondError(w, domain.ErrValidation("username and password are required"))
		return
	}

	user, err := h.users.FindByUsername(r.Context(), h.db, req.Username)
	if err != nil {
		RespondError(w, domain.ErrInternal("find user", err))
		return
	}
	if user == nil {
		RespondError(w, domain.ErrUnauthorized("invalid credentials"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		RespondError(w, domain.ErrUnauthorized("invalid credentials"))
		return
	}

	token, err := h.jwtMgr.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		RespondError(w, domain.ErrInternal("issue token", err))
		return
	}

	RespondJSON(w, http.StatusOK, transfer.TokenResponse{
		Token:    token,
		Role:     user.Role,
		Username: user.Username,
	})
}

// Register handles POST /players/register. It creates the player row and a
// credential record with the placeholder password, same as admin-driven
// creation.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("malformed request body"))
		return
	}
	if err := domain.ValidateNickname(req.Nickname); err != nil {
		RespondError(w, domain.ErrValidation(err.Error()))
		return
	}
	if err := domain.ValidateEmail(req.Email); err != nil {
		RespondError(w, domain.ErrValidation(err.Error()))
		return
	}
	if err := domain.ValidateProgress(req.Level, req.Experience); err != nil {
		RespondError(w, domain.ErrValidation(err.Error()))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(placeholderPassword), bcrypt.DefaultCost)
	if err != nil {
		RespondError(w, domain.ErrInternal("hash password", err))
		return
	}

	var created *domain.Player
	err = RunInTx(r.Context(), h.txer, func(tx pgx.Tx) error {
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
			PasswordHash: string(hash),
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
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusCreated, transfer.PlayerToDTO(created, hateoas.PlayerLinks(created.ID)))
}
