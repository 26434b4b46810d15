package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/gamevault/catalog/internal/domain"
	"github.com/gamevault/catalog/internal/repository"
)

// IDParam parses the named chi URL parameter as an int64 entity id.
func IDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrValidation("invalid " + name)
	}
	return id, nil
}

// RunInTx executes fn inside a transaction, committing on success. Rollback
// after commit is a no-op.
func RunInTx(ctx context.Context, txer repository.TxBeginner, fn func(tx pgx.Tx) error) error {
	tx, err := txer.Begin(ctx)
	if err != nil {
		return domain.ErrInternal("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.ErrInternal("commit transaction", err)
	}
	return nil
}
