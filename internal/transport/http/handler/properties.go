package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mhimmo/internal/domain"
	"mhimmo/internal/transport/http/ez"
)

type PropertyModule struct{ Deps }

// createPropertyIn has no status or tenant_id: both are derived.
type createPropertyIn struct {
	Address     string              `json:"address" binding:"required"`
	City        string              `json:"city" binding:"required"`
	PostalCode  string              `json:"postal_code"`
	Type        domain.PropertyType `json:"type" binding:"required"`
	Price       float64             `json:"price" binding:"gte=0"`
	Deposit     float64             `json:"deposit" binding:"gte=0"`
	Surface     float64             `json:"surface" binding:"gte=0"`
	Rooms       int                 `json:"rooms" binding:"gte=0"`
	Description string              `json:"description"`
}

type propertyOut struct {
	Property domain.Property `json:"property"`
}

type propertiesOut struct {
	Properties []domain.Property `json:"properties"`
}

type propertyQ struct {
	Status domain.PropertyStatus `form:"status"`
}

var managers = []domain.Role{domain.RoleOwner, domain.RoleManager}

func (m PropertyModule) MountAPI(_, authed *gin.RouterGroup) {
	ez.RegisterAction(authed, ez.Action[createPropertyIn, propertyOut]{
		Method: http.MethodPost,
		Path:   "/properties",
		Binder: ez.BindJSON,
		Roles:  managers,
		Log:    m.logger(),
		Handler: func(c *gin.Context, _ domain.User, in *createPropertyIn) (propertyOut, error) {
			if !in.Type.Valid() {
				return propertyOut{}, ez.BadRequest("unknown property type " + string(in.Type))
			}
			p, err := m.Store.CreateProperty(c.Request.Context(), domain.NewProperty{
				Address:     in.Address,
				City:        in.City,
				PostalCode:  in.PostalCode,
				Type:        in.Type,
				Price:       in.Price,
				Deposit:     in.Deposit,
				Surface:     in.Surface,
				Rooms:       in.Rooms,
				Description: in.Description,
			})
			if err != nil {
				return propertyOut{}, err
			}
			return propertyOut{Property: p}, nil
		},
	})

	ez.RegisterAction(authed, ez.Action[propertyQ, propertiesOut]{
		Method: http.MethodGet,
		Path:   "/properties",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(_ *gin.Context, _ domain.User, in *propertyQ) (propertiesOut, error) {
			switch in.Status {
			case "":
				return propertiesOut{Properties: m.Store.Properties()}, nil
			case domain.StatusVacant:
				return propertiesOut{Properties: m.Store.VacantProperties()}, nil
			case domain.StatusOccupied:
				all := m.Store.Properties()
				out := make([]domain.Property, 0, len(all))
				for _, p := range all {
					if p.Status == domain.StatusOccupied {
						out = append(out, p)
					}
				}
				return propertiesOut{Properties: out}, nil
			default:
				return propertiesOut{}, ez.BadRequest("unknown status " + string(in.Status))
			}
		},
	})

	ez.RegisterAction(authed, ez.Action[domain.PropertyPatch, propertyOut]{
		Method: http.MethodPatch,
		Path:   "/properties/:id",
		Binder: ez.BindJSON,
		Roles:  managers,
		Log:    m.logger(),
		Handler: func(c *gin.Context, _ domain.User, in *domain.PropertyPatch) (propertyOut, error) {
			if in.Type != nil && !in.Type.Valid() {
				return propertyOut{}, ez.BadRequest("unknown property type " + string(*in.Type))
			}
			p, ok, err := m.Store.UpdateProperty(c.Request.Context(), c.Param("id"), *in)
			if err != nil {
				return propertyOut{}, err
			}
			if !ok {
				return propertyOut{}, ez.NotFound("property not found")
			}
			return propertyOut{Property: p}, nil
		},
	})
}
