package middlewares

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-auth-service/internal/logger"
)

// TxMiddleware wraps an HTTP handler with a database transaction.
// The transaction commits when the handler answers with a status below 400
// and rolls back otherwise. The response is held back until the outcome is
// known so a failed commit can still turn into a 500.
func TxMiddleware(db *sqlx.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tx, err := db.BeginTxx(r.Context(), nil)
			if err != nil {
				logger.Log.Errorw("failed to begin transaction", "request_id", GetRequestID(r.Context()), "error", err)
				writeInternalError(w)
				return
			}

			defer func() {
				if rec := recover(); rec != nil {
					tx.Rollback()
					panic(rec)
				}
			}()

			ctx := setTxToContext(r.Context(), tx)
			r = r.WithContext(ctx)

			bw := &bufferedWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}
			next.ServeHTTP(bw, r)

			if bw.statusCode >= http.StatusBadRequest {
				if err := tx.Rollback(); err != nil {
					logger.Log.Errorw("failed to rollback transaction", "error", err)
				}
				bw.flush()
				return
			}

			if err := tx.Commit(); err != nil {
				logger.Log.Errorw("failed to commit transaction", "request_id", GetRequestID(r.Context()), "error", err)
				writeInternalError(w)
				return
			}
			bw.flush()
		})
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

// writeInternalError answers 500 with the same {message} body the handlers use.
func writeInternalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(errorResponse{Message: "Internal server error"})
}

// bufferedWriter keeps the status and body until flush.
type bufferedWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (bw *bufferedWriter) WriteHeader(code int) {
	bw.statusCode = code
}

func (bw *bufferedWriter) Write(b []byte) (int, error) {
	return bw.body.Write(b)
}

func (bw *bufferedWriter) flush() {
	bw.ResponseWriter.WriteHeader(bw.statusCode)
	bw.ResponseWriter.Write(bw.body.Bytes())
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

var txKey = contextKey{}

// setTxToContext stores a transaction in the context
func setTxToContext(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetTxFromContext retrieves the transaction from the context. Returns nil if not present.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey).(*sqlx.Tx)
	return tx
}
