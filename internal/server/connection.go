package server

import (
	"bufio"
	"errors"
	"io"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"typedkv/internal/dispatch"
	"typedkv/internal/protocol"
	"typedkv/internal/session"
)

// Timeouts protect the server from slow or stalled clients. They are
// resource guardrails, not part of the protocol's observable semantics.
const (
	readTimeout  = time.Minute
	writeTimeout = time.Minute
	maxLineSize  = 4 * 1024
)

// handleConnection owns the full lifecycle of a single client connection:
// IO deadlines, line framing, protocol parsing, and handing each command to
// a dedicated Session. Disconnecting mid-transaction simply drops that
// session's queued state (spec.md §5).
func (s *Server) handleConnection(conn net.Conn, dispatcher *dispatch.Dispatcher) {
	connID := uuid.NewString()
	logger := s.logger.With(zap.String("conn", connID), zap.Stringer("remote", conn.RemoteAddr()))
	defer conn.Close()

	sess := session.New(dispatcher)
	reader := bufio.NewReaderSize(conn, maxLineSize)

	for {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		buf, err := reader.ReadSlice('\n')
		if err != nil {
			if errors.Is(err, bufio.ErrBufferFull) {
				logger.Warn("line too long, closing connection")
				return
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				logger.Warn("read timeout, closing connection")
				return
			}
			logger.Warn("read error, closing connection", zap.Error(err))
			return
		}

		line := strings.TrimSpace(string(buf))
		if line == "" {
			continue
		}

		cmd, err := protocol.ParseLine(line)
		if err != nil {
			if !s.writeResponse(conn, logger, "ERR "+err.Error()) {
				return
			}
			continue
		}

		resp := sess.Handle(cmd)
		if !s.writeResponse(conn, logger, resp) {
			return
		}
	}
}

func (s *Server) writeResponse(conn net.Conn, logger *zap.Logger, resp string) bool {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if _, err := io.WriteString(conn, resp+"\n"); err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			logger.Warn("write timeout, closing connection")
			return false
		}
		return false
	}
	return true
}
