package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prasetyowira/qrgen/api/middleware"
	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/domain/generator"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
)

// RouteHandler is the set of UI actions the router exposes
type RouteHandler interface {
	Index(w http.ResponseWriter, r *http.Request)
	GetState(w http.ResponseWriter, r *http.Request)
	UpdateText(w http.ResponseWriter, r *http.Request)
	UpdateColor(w http.ResponseWriter, r *http.Request)
	GenerateCode(w http.ResponseWriter, r *http.Request)
	DownloadCode(w http.ResponseWriter, r *http.Request)
	CopyLink(w http.ResponseWriter, r *http.Request)
	ToggleTheme(w http.ResponseWriter, r *http.Request)
}

// Router represents the application router
type Router struct {
	handler  RouteHandler
	sessions *generator.Sessions
	router   *chi.Mux
}

// NewRouter creates a new router
func NewRouter(handler RouteHandler, sessions *generator.Sessions) *Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger())

	return &Router{
		handler:  handler,
		sessions: sessions,
		router:   r,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() {
	appLogger.Info(constant.MsgSettingUpRoutes, appLogger.LoggerInfo{
		ContextFunction: constant.CtxRouter,
	})

	r.router.Group(func(ui chi.Router) {
		ui.Use(middleware.Session(r.sessions))

		ui.Get(constant.RouteIndex, r.handler.Index)
		ui.Get(constant.RouteState, r.handler.GetState)
		ui.Put(constant.RouteText, r.handler.UpdateText)
		ui.Put(constant.RouteColor, r.handler.UpdateColor)
		ui.Post(constant.RouteGenerate, r.handler.GenerateCode)
		ui.Get(constant.RouteDownload, r.handler.DownloadCode)
		ui.Post(constant.RouteCopy, r.handler.CopyLink)
		ui.Post(constant.RouteTheme, r.handler.ToggleTheme)
	})

	r.router.Get(constant.RouteHealthcheck, func(w http.ResponseWriter, r *http.Request) {
		appLogger.CtxDebug(r.Context(), constant.MsgHealthcheckRequest, appLogger.LoggerInfo{
			ContextFunction: constant.CtxRouter,
		})

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(constant.MsgHealthy))
	})
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
