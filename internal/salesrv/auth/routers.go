package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/podcastflow/podcastflow-pro/internal/common/httpx"
)

var sessionHandlers = []httpx.ResponseHandlerParam{
	{
		Method:  http.MethodGet,
		Path:    "/session",
		Handler: getSession,
	},
	{
		Method:  http.MethodPost,
		Path:    "/logout",
		Handler: logout,
	},
}

// Router wires the authentication endpoints. Login is reachable without a
// session; session and logout require one.
func Router() chi.Router {
	router := chi.NewRouter()
	router.Method(http.MethodPost, "/login", httpx.WrapHttpRsp(login))
	router.Group(func(gr chi.Router) {
		gr.Use(UserSessionMiddleware)
		for _, handler := range sessionHandlers {
			gr.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
		}
	})
	return router
}
