package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mhimmo/internal/domain"
	"mhimmo/internal/transport/http/ez"
)

type ContractModule struct{ Deps }

type createContractIn struct {
	TenantID   string  `json:"tenant_id" binding:"required"`
	PropertyID string  `json:"property_id" binding:"required"`
	StartDate  string  `json:"start_date" binding:"required"`
	EndDate    string  `json:"end_date"`
	Rent       float64 `json:"rent" binding:"gte=0"`
	Deposit    float64 `json:"deposit" binding:"gte=0"`
}

func (in createContractIn) validate() error {
	start, err := time.Parse(domain.DateLayout, in.StartDate)
	if err != nil {
		return ez.BadRequest("start_date must be YYYY-MM-DD")
	}
	if in.EndDate == "" {
		return nil
	}
	end, err := time.Parse(domain.DateLayout, in.EndDate)
	if err != nil {
		return ez.BadRequest("end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return ez.BadRequest("end_date is before start_date")
	}
	return nil
}

type contractOut struct {
	Contract domain.Contract `json:"contract"`
}

type contractsOut struct {
	Contracts []domain.Contract `json:"contracts"`
}

func (m ContractModule) MountAPI(_, authed *gin.RouterGroup) {
	log := m.logger()

	ez.RegisterAction(authed, ez.Action[createContractIn, contractOut]{
		Method: http.MethodPost,
		Path:   "/contracts",
		Binder: ez.BindJSON,
		Auth:   true,
		Log:    log,
		Handler: func(c *gin.Context, caller domain.User, in *createContractIn) (contractOut, error) {
			if err := in.validate(); err != nil {
				return contractOut{}, err
			}
			if t, ok := m.Store.UserByID(in.TenantID); !ok || t.Role != domain.RoleTenant {
				return contractOut{}, ez.BadRequest("tenant_id does not reference a tenant")
			}
			ct, err := m.Store.CreateContract(c.Request.Context(), domain.NewContract{
				TenantID:   in.TenantID,
				PropertyID: in.PropertyID,
				StartDate:  in.StartDate,
				EndDate:    in.EndDate,
				Rent:       in.Rent,
				Deposit:    in.Deposit,
			})
			if err != nil {
				return contractOut{}, err
			}
			log.Info("contract created",
				zap.String("id", ct.ID), zap.String("property", ct.PropertyID), zap.String("by", caller.ID))
			return contractOut{Contract: ct}, nil
		},
	})

	ez.RegisterAction(authed, ez.Action[struct{}, contractsOut]{
		Method: http.MethodGet,
		Path:   "/contracts",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(_ *gin.Context, _ domain.User, _ *struct{}) (contractsOut, error) {
			return contractsOut{Contracts: m.Store.Contracts()}, nil
		},
	})
}
