package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mhimmo/internal/domain"
	"mhimmo/internal/transport/http/ez"
)

type PaymentModule struct{ Deps }

type paymentsQ struct {
	Status   domain.PaymentStatus `form:"status"`
	TenantID string               `form:"tenant_id"`
}

func (q paymentsQ) validate() error {
	switch q.Status {
	case "", domain.PaymentPaid, domain.PaymentPending, domain.PaymentLate:
		return nil
	}
	return ez.BadRequest("unknown payment status " + string(q.Status))
}

type paymentsOut struct {
	Payments []domain.Payment `json:"payments"`
	Total    float64          `json:"total"`
}

func newPaymentsOut(ps []domain.Payment) paymentsOut {
	out := paymentsOut{Payments: ps}
	for _, p := range ps {
		out.Total += p.Amount
	}
	return out
}

func (m PaymentModule) MountAPI(_, authed *gin.RouterGroup) {
	// tenants only ever see their own payments
	ez.RegisterAction(authed, ez.Action[paymentsQ, paymentsOut]{
		Method: http.MethodGet,
		Path:   "/payments",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(_ *gin.Context, caller domain.User, in *paymentsQ) (paymentsOut, error) {
			if err := in.validate(); err != nil {
				return paymentsOut{}, err
			}
			tenant := in.TenantID
			if !caller.Role.CanManage() {
				tenant = caller.ID
			}
			return newPaymentsOut(m.Store.PaymentsFiltered(tenant, in.Status)), nil
		},
	})
}

func (m PaymentModule) MountAdmin(admin *gin.RouterGroup) {
	ez.RegisterAction(admin, ez.Action[paymentsQ, paymentsOut]{
		Method: http.MethodGet,
		Path:   "/payments",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(_ *gin.Context, _ domain.User, in *paymentsQ) (paymentsOut, error) {
			if err := in.validate(); err != nil {
				return paymentsOut{}, err
			}
			return newPaymentsOut(m.Store.PaymentsFiltered(in.TenantID, in.Status)), nil
		},
	})
}
