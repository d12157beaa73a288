package handlers

import (
	"net/http"

	"bounty/internal/api"
	"bounty/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const PathMetrics = "/metrics"

// NewRouters собирает мок-сервер на тех же путях, что и настоящий бэкенд
func NewRouters(uh *UserHandlers, reg *prometheus.Registry, logger *zap.SugaredLogger) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.AccessLog(logger))
	r.Use(middleware.NewMetrics(reg).Middleware)
	r.Handle(PathMetrics, promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods("GET")

	initHandlers(r, uh, logger)

	return r
}

func initHandlers(
	r *mux.Router,
	userHandler *UserHandlers,
	logger *zap.SugaredLogger,
) {
	authRouter := r.NewRoute().Subrouter()
	authRouter.Use(middleware.Auth(userHandler.Backend, logger))
	authRouter.HandleFunc(api.PathBind, userHandler.Bind).Methods("POST")
	authRouter.HandleFunc(api.PathProfile, userHandler.GetProfile).Methods("GET")
	authRouter.HandleFunc(api.PathProfile, userHandler.UpdateProfile).Methods("PUT")
	authRouter.HandleFunc(api.PathRecharge, userHandler.Recharge).Methods("POST")
	authRouter.HandleFunc(api.PathWithdraw, userHandler.Withdraw).Methods("POST")
	authRouter.HandleFunc(api.PathLogs, userHandler.GetLogs).Methods("GET")
	authRouter.HandleFunc(api.PathAvatarUpload, userHandler.UploadAvatar).Methods("POST")

	noAuthRouter := r.NewRoute().Subrouter()
	noAuthRouter.HandleFunc(api.PathLogin, userHandler.Login).Methods("POST")
	noAuthRouter.HandleFunc(api.PathSendCode, userHandler.SendCode).Methods("POST")
}
