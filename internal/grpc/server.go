// Package grpc provides a thin, domain-agnostic wrapper over
// google.golang.org/grpc.Server: listen/serve/stop lifecycle plus the
// interceptor hooks, with whatever services actually get registered left
// entirely to the caller (see internal/debugrpc for this module's own
// introspection service).
package grpc

import (
	"context"
	"errors"
	"net"
	"sync"

	"google.golang.org/grpc"
)

// Server wraps a grpc.Server with a managed listen/serve/stop lifecycle.
type Server struct {
	mu sync.RWMutex

	grpcServer *grpc.Server
	config     *ServerConfig
	listener   net.Listener
	running    bool
}

// NewServer creates a new gRPC server with the given configuration. The
// caller registers its own services on the returned Server's underlying
// *grpc.Server (via GetGRPCServer) before calling Start.
func NewServer(cfg *ServerConfig) (*Server, error) {
	if cfg == nil {
		cfg = DefaultServerConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []grpc.ServerOption{
		grpc.MaxRecvMsgSize(cfg.MaxRecvMsgSize),
		grpc.MaxSendMsgSize(cfg.MaxSendMsgSize),
		grpc.UnaryInterceptor(UnaryServerInterceptor()),
		grpc.StreamInterceptor(StreamServerInterceptor()),
	}

	return &Server{
		grpcServer: grpc.NewServer(opts...),
		config:     cfg,
	}, nil
}

// Start starts the gRPC server and begins accepting connections. It blocks
// until the server is stopped or an error occurs.
func (s *Server) Start() error {
	listener, err := s.listen()
	if err != nil {
		return err
	}
	return s.grpcServer.Serve(listener)
}

// StartAsync starts the gRPC server in a goroutine and returns
// immediately. onServeErr, if non-nil, is called with any error Serve
// returns (it always runs in the background goroutine, never on the
// caller's).
func (s *Server) StartAsync(onServeErr func(error)) error {
	listener, err := s.listen()
	if err != nil {
		return err
	}
	go func() {
		if err := s.grpcServer.Serve(listener); err != nil && onServeErr != nil {
			onServeErr(err)
		}
	}()
	return nil
}

func (s *Server) listen() (net.Listener, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil, errors.New("server is already running")
	}
	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return nil, err
	}
	s.listener = listener
	s.running = true
	return listener, nil
}

// Stop gracefully stops the gRPC server, waiting for in-flight RPCs.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.grpcServer.GracefulStop()
	s.running = false
}

// StopNow immediately stops the gRPC server without waiting.
func (s *Server) StopNow() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.grpcServer.Stop()
	s.running = false
}

// IsRunning reports whether the server is currently serving.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Address returns the address the server is listening on, or "" if not
// running.
func (s *Server) Address() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// GetGRPCServer returns the underlying grpc.Server, for service
// registration (grpc.Server.RegisterService / a hand-rolled
// grpc.ServiceDesc).
func (s *Server) GetGRPCServer() *grpc.Server {
	return s.grpcServer
}

// UnaryServerInterceptor is the hook point for request/response logging;
// empty for now, kept so StartAsync's servers always carry the same
// interceptor chain regardless of what gets added here later.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		return handler(ctx, req)
	}
}

// StreamServerInterceptor is the streaming-RPC equivalent of
// UnaryServerInterceptor.
func StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		return handler(srv, ss)
	}
}
