package handlers

import (
	"net/http"

	"github.com/slashrage/jalapeno-business/internal/config"
	"github.com/slashrage/jalapeno-business/internal/service"
)

type Handlers struct {
	PostService  service.PostService
	QueryService service.QueryService
	AuthService  service.AuthService
	Cfg          *config.Config
}

func NewHandlers(services *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		PostService:  services.Post,
		QueryService: services.Query,
		AuthService:  services.Auth,
		Cfg:          config,
	}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, map[string]string{"message": "Server is running"})
}
