package httpapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"github.com/juju/ratelimit"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/hold-token/pkg/repo"
	"github.com/axiomesh/hold-token/pkg/types"
)

// Backend is the node as seen by the API
type Backend interface {
	ApplyTransaction(tx *types.Transaction) (*types.Receipt, error)

	Call(from ethcommon.Address, to ethcommon.Address, data []byte) ([]byte, error)

	GetReceipt(hash ethcommon.Hash) (*types.Receipt, error)

	GetNonce(addr ethcommon.Address) uint64

	CurrentHeader() *types.BlockHeader

	NextHeader() *types.BlockHeader

	Mine() (*types.BlockHeader, error)

	IncreaseTime(seconds uint64) uint64
}

type Server struct {
	config  repo.API
	port    int64
	monitor bool
	backend Backend
	logger  logrus.FieldLogger
	limiter *ratelimit.Bucket

	handler  http.Handler
	server   *http.Server
	listener net.Listener
}

func New(rep *repo.Repo, backend Backend, logger logrus.FieldLogger) *Server {
	s := &Server{
		config:  rep.Config.API,
		port:    rep.Config.Port.API,
		monitor: rep.Config.Monitor.Enable,
		backend: backend,
		logger:  logger,
	}
	if s.config.WriteLimiter.Enable {
		s.limiter = ratelimit.NewBucketWithQuantum(
			s.config.WriteLimiter.Interval.ToDuration(),
			s.config.WriteLimiter.Capacity,
			s.config.WriteLimiter.Quantum,
		)
	}

	router := mux.NewRouter()
	router.Use(s.requestID)
	s.routes(router)
	s.handler = cors.New(cors.Options{
		AllowedOrigins: s.config.CorsAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
	}).Handler(router)
	return s
}

func (s *Server) routes(r *mux.Router) {
	write := r.Methods(http.MethodPost).Subrouter()
	write.Use(s.limit)
	write.HandleFunc("/tx", s.handleSendTransaction)

	r.HandleFunc("/call", s.handleCall).Methods(http.MethodPost)
	r.HandleFunc("/receipt/{hash}", s.handleReceipt).Methods(http.MethodGet)
	r.HandleFunc("/nonce/{addr}", s.handleNonce).Methods(http.MethodGet)
	r.HandleFunc("/header", s.handleHeader).Methods(http.MethodGet)
	r.HandleFunc("/token", s.handleToken).Methods(http.MethodGet)
	r.HandleFunc("/balance/{addr}", s.handleBalance).Methods(http.MethodGet)
	r.HandleFunc("/held/{addr}", s.handleHeld).Methods(http.MethodGet)
	r.HandleFunc("/allowance/{holder}/{spender}", s.handleAllowance).Methods(http.MethodGet)

	if s.config.EnableDev {
		write.HandleFunc("/dev/increase-time", s.handleIncreaseTime)
		write.HandleFunc("/dev/mine", s.handleMine)
	}
	if s.monitor {
		r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Start() error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return errors.Wrap(err, "listen api port failed")
	}
	s.listener = listener
	s.server = &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.config.ReadTimeout.ToDuration(),
		WriteTimeout: s.config.WriteTimeout.ToDuration(),
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.WithField("err", err).Error("API server stopped")
		}
	}()

	s.logger.WithFields(logrus.Fields{
		"addr": listener.Addr().String(),
		"dev":  s.config.EnableDev,
	}).Info("API server started")
	return nil
}

// Addr is the listening address, empty before Start
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "shutdown api server failed")
	}
	s.logger.Info("API server stopped")
	return nil
}
