// Package server implements the TCP acceptor and per-connection line
// framing sitting outside the core (spec.md §1 calls this an "external
// collaborator"): its only interaction with the core is handing decoded
// command tuples to a session.Session and writing back response strings.
// Grounded on the teacher's server/server.go and server/connection.go,
// generalized to drive a session.Session instead of a single flat store.
package server

import (
	"net"
	"sync"

	"go.uber.org/zap"

	"typedkv/internal/dispatch"
	"typedkv/internal/engine"
)

// Server manages listener lifecycle and client connection goroutines.
type Server struct {
	addr   string
	engine *engine.Engine
	logger *zap.Logger

	ln           net.Listener
	wg           sync.WaitGroup
	ready        chan struct{}
	shuttingDown chan struct{}
}

// New builds a Server listening on addr and dispatching against eng.
func New(addr string, eng *engine.Engine, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		addr:         addr,
		engine:       eng,
		logger:       logger,
		ready:        make(chan struct{}),
		shuttingDown: make(chan struct{}),
	}
}

// Start begins listening and accepts connections until Stop is called or
// the listener fails. It blocks until the accept loop exits.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.logger.Error("listen failed", zap.String("addr", s.addr), zap.Error(err))
		return err
	}

	s.ln = ln
	close(s.ready)
	s.logger.Info("listening", zap.Stringer("addr", ln.Addr()))

	dispatcher := dispatch.New(s.engine)

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-s.shuttingDown:
				return nil
			default:
				return err
			}
		}

		s.wg.Add(1)
		go func(c net.Conn) {
			defer s.wg.Done()
			s.handleConnection(c, dispatcher)
		}(conn)
	}
}

// Stop stops accepting new connections and waits for every connection
// handler to return. Stop does not close open connections: a handler
// returns only once its client disconnects, a read or write fails, or the
// read deadline passes.
func (s *Server) Stop() {
	<-s.ready
	close(s.shuttingDown)
	if s.ln != nil {
		s.ln.Close()
	}
	s.wg.Wait()
}

// Addr returns the listener's bound address. Only valid after Start has
// signalled readiness.
func (s *Server) Addr() net.Addr {
	<-s.ready
	return s.ln.Addr()
}
