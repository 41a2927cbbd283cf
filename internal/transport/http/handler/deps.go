// Package handler holds the gin modules of the API and admin servers.
package handler

import (
	"context"

	"go.uber.org/zap"

	"mhimmo/internal/core/auth"
	"mhimmo/internal/messaging"
	"mhimmo/internal/session"
	"mhimmo/internal/store"
)

// Deps is what every module needs from the running process.
type Deps struct {
	Store    *store.Store
	Messages *messaging.Index
	Creds    *session.Credentials
	JWT      *auth.JWTer
	Log      *zap.Logger
	// Reload refreshes Store from the backend. The admin server runs it
	// before every request; nil keeps the start-up copy.
	Reload func(ctx context.Context) error
}

func (d Deps) logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

// Modules returns every module, ready for router.Registry.Register.
func Modules(d Deps) []any {
	return []any{
		AuthModule{d},
		UserModule{d},
		PropertyModule{d},
		ContractModule{d},
		MessageModule{d},
		TenantModule{d},
		PaymentModule{d},
		DashboardModule{d},
	}
}
