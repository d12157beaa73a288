package main

import (
	"flag"
	"net/http"
	"time"

	"bounty/internal/app"
	"bounty/internal/handlers"
	"bounty/internal/mock"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	cfgPath := flag.String("config", app.DefaultConfigPath, "path to the yaml config")
	flag.Parse()

	// init logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	logger := zapLogger.Sugar()
	//	тк функция откладывается буду использовать
	// обертку в анонимную функцию
	defer func() {
		err = zapLogger.Sync()
		if err != nil {
			logger.Warnf("error to sync logger: %v", err)
		}
	}()

	// парсим конфиг
	c, err := app.NewConfig(*cfgPath)
	if err != nil {
		logger.Fatalf("error to parsing config: %v", err)
	}

	// бэкенд в памяти, состояние живет до перезапуска
	b, err := mock.NewBackend(mock.Config{
		Secret:     c.Mock.Secret,
		VerifyCode: c.Mock.VerifyCode,
		LedgerSize: c.Mock.LedgerSize,
	}, logger)
	if err != nil {
		logger.Fatalf("error to init mock backend: %v", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	userHandler := handlers.NewUserHandlers(b, logger)
	r := handlers.NewRouters(userHandler, reg, logger)

	srv := &http.Server{
		Addr:              c.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Infow("starting server",
		"type", "START",
		"addr", c.ServerPort,
	)

	err = srv.ListenAndServe()
	if err != nil {
		logger.Fatalf("cant start server: %v", err)
	}
}
