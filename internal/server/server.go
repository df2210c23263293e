package server

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ykhdr/crack-fnv/config"
	"github.com/ykhdr/crack-fnv/internal/hashcrack"
	"github.com/ykhdr/crack-fnv/internal/store/jobstore"
	"github.com/ykhdr/crack-fnv/pkg/messages"
)

// Server exposes the recovery engine over HTTP. Crack requests run as
// asynchronous jobs; results are read back once via the status endpoint.
type Server struct {
	l       zerolog.Logger
	cfg     *config.CrackdConfig
	srv     *http.Server
	service *hashcrack.Service
	jobs    jobstore.Store
}

func NewServer(cfg *config.CrackdConfig, service *hashcrack.Service) *Server {
	return &Server{
		cfg:     cfg,
		service: service,
		jobs:    jobstore.NewStore(),
		l: log.With().
			Str("domain", "server").
			Str("type", "http").
			Logger(),
	}
}

func (s *Server) Start(ctx context.Context) error {
	router := mux.NewRouter()
	router.Use(loggingMiddleware(s.l))
	router.HandleFunc("/api/hash/crack", s.handleHashCrack(ctx)).Methods("POST")
	router.HandleFunc("/api/hash/status", s.handleHashStatus).Methods("GET")
	router.HandleFunc("/api/health", s.handleHealth).Methods("GET")
	s.srv = &http.Server{
		Handler: router,
		Addr:    s.cfg.ServerAddr,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
	s.l.Info().Str("address", s.cfg.ServerAddr).Msg("crackd is running")
	if err := s.srv.ListenAndServe(); err != nil {
		s.l.Error().Err(err).Msg("crackd server failed")
		return errors.Wrap(err, "crackd server failed")
	}
	return nil
}

func (s *Server) Shutdown() error {
	return s.srv.Shutdown(context.Background())
}

func (s *Server) handleHashCrack(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req messages.CrackTaskRequest
		if err := xml.NewDecoder(r.Body).Decode(&req); err != nil {
			s.l.Warn().Err(err).Msg("Invalid request")
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		id := jobstore.Id(uuid.NewString())
		req.RequestId = string(id)
		s.jobs.Save(&jobstore.Info{
			ID:        id,
			Status:    jobstore.StatusNew,
			CreatedAt: time.Now(),
		})
		go s.runJob(ctx, id, &req)

		resp := map[string]string{"requestId": string(id)}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			s.l.Warn().Err(err).Msg("Failed to encode response")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
	}
}

func (s *Server) runJob(ctx context.Context, id jobstore.Id, req *messages.CrackTaskRequest) {
	s.jobs.UpdateStatus(id, jobstore.StatusInProgress, "")
	resp, err := s.service.CrackTask(ctx, req)
	if err != nil {
		s.l.Warn().Err(err).Str("req-id", string(id)).Msg("Job failed")
		s.jobs.UpdateStatus(id, jobstore.StatusError, err.Error())
		return
	}
	info, exists := s.jobs.Get(id)
	if !exists {
		return
	}
	info.Status = jobstore.StatusReady
	info.Response = resp
	s.jobs.Save(info)
}

func (s *Server) handleHashStatus(w http.ResponseWriter, r *http.Request) {
	requestId := r.URL.Query().Get("requestId")
	if requestId == "" {
		http.Error(w, "Missing requestId", http.StatusBadRequest)
		return
	}
	id := jobstore.Id(requestId)
	info, exists := s.jobs.Get(id)
	if !exists {
		http.Error(w, "Request not found", http.StatusNotFound)
		return
	}
	resp := map[string]interface{}{
		"status": info.Status,
		"found":  []messages.FoundMatch{},
	}
	if info.ErrorReason != "" {
		resp["error"] = info.ErrorReason
	}
	if info.Status == jobstore.StatusReady {
		resp["found"] = info.Response.Found
		resp["truncated"] = info.Response.Truncated
		s.jobs.Delete(id)
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.l.Warn().Err(err).Msg("Failed to encode response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		s.l.Warn().Err(err).Msg("Failed to write health response")
	}
}
