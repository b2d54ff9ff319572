// internal/app/system/txn/txn.go

// Package txn runs multi-document write sequences inside a MongoDB
// transaction when the deployment supports one (replica set / sharded),
// and falls back to running the sequence without a transaction on
// standalone servers. Callers get all-or-nothing semantics where the
// store can provide them and the documented best-effort behavior where
// it cannot.
package txn

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// IsNotSupported reports whether err indicates the server cannot run
// multi-document transactions (standalone mongod, DocumentDB in some
// configurations, or session restrictions).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}
	if ce, ok := err.(mongo.CommandError); ok {
		// 20 IllegalOperation (txn numbers need a replica set member),
		// 51 IllegalOperation, 263 OperationNotSupportedInTransaction.
		switch ce.Code {
		case 20, 51, 263:
			return true
		}
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "illegal operation") {
		return true
	}
	if strings.Contains(s, "transaction") && strings.Contains(s, "replica set") {
		return true
	}
	if strings.Contains(s, "session") && strings.Contains(s, "not supported") {
		return true
	}
	if strings.Contains(s, "transaction") && strings.Contains(s, "session") {
		return true
	}
	return false
}

// WithTransaction executes fn inside a session transaction. If the
// deployment does not support transactions, fn runs once more outside a
// transaction and a warning is logged; any mid-sequence failure in that
// mode can leave partial state, which fn's callers accept.
func WithTransaction(ctx context.Context, client *mongo.Client, log *zap.Logger, fn func(ctx context.Context) error) error {
	sess, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			logFallback(log, err)
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		logFallback(log, err)
		return fn(ctx)
	}
	return err
}

func logFallback(log *zap.Logger, err error) {
	if log != nil {
		log.Warn("transactions unsupported by deployment, running without one", zap.Error(err))
	}
}
