package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/1broseidon/frameless/internal/frameless"
)

// Managed is a controller exposed on the control socket.
type Managed struct {
	Role       string
	Controller *frameless.Controller

	policy      frameless.MovePolicy
	moveEnabled atomic.Bool
}

// NewManaged wraps c. policy is the policy used while moves are enabled;
// a disabled window gets frameless.MoveNowhere.
func NewManaged(role string, c *frameless.Controller, policy frameless.MovePolicy, moveEnabled bool) *Managed {
	m := &Managed{Role: role, Controller: c, policy: policy}
	m.SetMoveEnabled(moveEnabled)
	return m
}

// SetMoveEnabled switches between the configured policy and MoveNowhere.
func (m *Managed) SetMoveEnabled(enabled bool) {
	m.moveEnabled.Store(enabled)
	if enabled {
		m.Controller.SetMovePolicy(m.policy)
	} else {
		m.Controller.SetMovePolicy(frameless.MoveNowhere)
	}
}

// MoveEnabled reports whether presses may start a move.
func (m *Managed) MoveEnabled() bool {
	return m.moveEnabled.Load()
}

// Status snapshots the window and its interaction state.
func (m *Managed) Status() WindowStatus {
	win := m.Controller.Window()
	frame := win.FrameRect()
	st := m.Controller.State()
	return WindowStatus{
		ID:            uint32(win.ID()),
		Role:          m.Role,
		X:             frame.X,
		Y:             frame.Y,
		Width:         frame.Width,
		Height:        frame.Height,
		Phase:         st.Phase().String(),
		Direction:     st.Direction.String(),
		ResizeEnabled: m.Controller.ResizeEnabled(),
		MoveEnabled:   m.MoveEnabled(),
		Maximized:     win.IsMaximizedOrFullscreen(),
	}
}

// ServerConfig holds configuration for the control server.
type ServerConfig struct {
	SocketPath string
	// Host names the process in status replies.
	Host    string
	Windows []*Managed
	// Quit is called on QUIT.
	Quit   func()
	Logger *slog.Logger
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	host         string
	windows      []*Managed
	quit         func()
	logger       *slog.Logger
	listener     net.Listener
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(cfg ServerConfig) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		socketPath: cfg.SocketPath,
		host:       cfg.Host,
		windows:    cfg.Windows,
		quit:       cfg.Quit,
		logger:     logger,
		startTime:  time.Now(),
	}
}

// Start begins listening for IPC connections. It fails when another live
// process owns the socket and removes a stale one.
func (s *Server) Start() error {
	if conn, err := net.DialTimeout("unix", s.socketPath, 200*time.Millisecond); err == nil {
		conn.Close()
		return fmt.Errorf("another instance is listening on %s", s.socketPath)
	}
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	go s.acceptLoop()

	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection serves one newline-delimited JSON request.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Warn("failed to marshal response", "error", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send response", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandSetResize:
		return s.handleToggle(req.Payload, func(m *Managed, on bool) {
			m.Controller.SetResizeEnabled(on)
		})
	case CommandSetMove:
		return s.handleToggle(req.Payload, (*Managed).SetMoveEnabled)
	case CommandQuit:
		return s.handleQuit()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleGetStatus() *Response {
	status := StatusData{
		Host:          s.host,
		PID:           os.Getpid(),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		Windows:       make([]WindowStatus, 0, len(s.windows)),
	}
	for _, m := range s.windows {
		status.Windows = append(status.Windows, m.Status())
	}

	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) handleToggle(payload json.RawMessage, apply func(*Managed, bool)) *Response {
	var req TogglePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid toggle payload: %v", err))
	}

	matched := 0
	for _, m := range s.windows {
		if req.Role != "" && m.Role != req.Role {
			continue
		}
		apply(m, req.Enabled)
		matched++
	}
	if matched == 0 {
		return NewErrorResponse(fmt.Sprintf("Unknown window role: %s", req.Role))
	}
	s.logger.Info("IPC toggle applied", "role", req.Role, "enabled", req.Enabled, "windows", matched)

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleQuit() *Response {
	s.logger.Info("IPC: received QUIT")
	if s.quit != nil {
		s.quit()
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
