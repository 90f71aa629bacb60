package main

import (
	"errors"
	"flag"
	exitReload "github.com/MrMelon54/exit-reload"
	"github.com/MrMelon54/rescheduler"
	"github.com/terrarium-earth/odysseus"
	"github.com/terrarium-earth/odysseus/cmd/odysseus-api/routes"
	"github.com/terrarium-earth/odysseus/database"
	"go.uber.org/zap"
	"net/http"
	"path/filepath"
	"sync/atomic"
	"time"
)

func main() {
	var configPath string
	var debug bool

	flag.StringVar(&configPath, "conf", "", "Path to the config file (.yml or .toml)")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.Parse()

	logger := newLogger(debug)
	defer logger.Sync()
	logger.Info("[Main] Starting up Odysseus API")

	var conf = new(atomic.Pointer[Config])
	if err := loadConfig[Config](conf, configPath); err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	var service = new(atomic.Pointer[odysseus.ServiceConfig])
	service.Store(&conf.Load().Service)

	dbPath := conf.Load().Database
	if dbPath == "" {
		dbPath = filepath.Join(filepath.Dir(configPath), "conversions.sqlite3.db")
	}
	db, err := database.Open(dbPath)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              conf.Load().Listen,
		Handler:           routes.Router(database.New(db), service, logger),
		ReadTimeout:       time.Minute,
		ReadHeaderTimeout: time.Minute,
		WriteTimeout:      time.Minute,
		IdleTimeout:       time.Minute,
		MaxHeaderBytes:    5000,
	}
	go func() {
		logger.Info("[HTTP] Listening", zap.String("addr", srv.Addr))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Serve HTTP Error", zap.Error(err))
		}
	}()

	// reload signals arriving during a reload collapse into one extra pass
	reload := rescheduler.NewRescheduler(func() {
		if err := loadConfig[Config](conf, configPath); err != nil {
			logger.Error("Failed to load config", zap.Error(err))
			return
		}
		service.Store(&conf.Load().Service)
		logger.Info("[Main] Reloaded config")
	})

	exitReload.ExitReload("Odysseus API", func() {
		reload.Run()
	}, func() {
		reload.Wait()
		if err := srv.Close(); err != nil {
			logger.Error("Failed to close server", zap.Error(err))
		}
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database", zap.Error(err))
		}
	})
}

func newLogger(debug bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}
