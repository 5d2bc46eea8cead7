// Package server assembles the HTTP surface of the sales service: request
// logging, panic recovery, CORS, the scoped database connection and the /v1
// API tree.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/podcastflow/podcastflow-pro/internal/common/httpx"
	commonmiddleware "github.com/podcastflow/podcastflow-pro/internal/common/middleware"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/apis"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/auth"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/config"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/server/middleware"
)

const serverVersion = "0.1.0"

type SalesServer struct {
	Router *chi.Mux
}

func CreateNewServer() (*SalesServer, error) {
	s := &SalesServer{}
	s.Router = chi.NewRouter()
	return s, nil
}

func (s *SalesServer) MountHandlers() {
	s.Router.Use(commonmiddleware.RequestLogger)
	s.Router.Use(commonmiddleware.PanicHandler)
	if config.Config().HandleCORS {
		s.Router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{config.Config().CORSAllowedOrigin},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Authorization", "X-Request-ID"},
			AllowCredentials: true,
		}))
	}
	s.Router.Route("/v1", s.mountResourceHandlers)
	s.Router.Get("/version", s.getVersion)
}

func (s *SalesServer) mountResourceHandlers(r chi.Router) {
	r.Use(middleware.LoadScopedDB)
	r.Mount("/auth", auth.Router())
	r.Group(func(gr chi.Router) {
		gr.Use(auth.UserSessionMiddleware)
		gr.Mount("/", apis.Router())
	})
}

type GetVersionRsp struct {
	ServerVersion string `json:"serverVersion"`
	ApiVersion    string `json:"apiVersion"`
}

func (s *SalesServer) getVersion(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("GetVersion")
	rsp := &GetVersionRsp{
		ServerVersion: "PodcastFlow Sales Server: " + serverVersion,
		ApiVersion:    "v1",
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, rsp)
}
