package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"soccer-science/config"
	"soccer-science/dataset"
)

// Server serves the dashboard over one immutable dataset snapshot.
type Server struct {
	cfg        *config.Config
	data       *dataset.Dataset
	log        *logrus.Logger
	httpServer *http.Server
	upgrader   websocket.Upgrader
}

func NewServer(cfg *config.Config, data *dataset.Dataset, log *logrus.Logger) *Server {
	s := &Server{cfg: cfg, data: data, log: log}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.originAllowed,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Router wires every route behind the request log and CORS.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()
	router.Use(s.withRequestLog)

	// Dashboard page and fragments
	router.HandleFunc("/", s.homeHandler).Methods("GET")
	router.HandleFunc("/fragments/teams", s.teamsFragmentHandler).Methods("GET")
	router.HandleFunc("/radar", s.radarPanelHandler).Methods("POST")
	router.HandleFunc("/pair", s.pairPanelHandler).Methods("POST")
	router.HandleFunc("/trend", s.trendPanelHandler).Methods("POST")
	router.HandleFunc("/charts/{kind:[a-z]+}.svg", s.chartHandler).Methods("GET")

	// JSON API
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/teams", s.apiTeamsHandler).Methods("GET")
	api.HandleFunc("/{panel:radar|pair|trend}", s.apiPanelHandler).Methods("GET")

	router.HandleFunc("/ws", s.wsHandler)
	router.Handle("/mcp", s.mcpHandler())
	router.HandleFunc("/health", s.healthHandler).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(router)
}

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Stop is safe to call before Start; Start then returns http.ErrServerClosed.
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.log.Errorf("Server shutdown error: %v", err)
	}
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.Warnf("unknown log level %q, using info", level)
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("❌ %v", err)
	}
	log := newLogger(cfg.LogLevel)

	data, err := loadDataset(context.Background(), cfg, log)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	srv := NewServer(cfg, data, log)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		log.Info("Shutting down")
		srv.Stop()
	}()

	log.Infof("⚽ Soccer Science is running on http://localhost%s", cfg.Addr())
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
