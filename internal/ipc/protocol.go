package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus CommandType = "GET_STATUS"
	CommandSetResize CommandType = "SET_RESIZE"
	CommandSetMove   CommandType = "SET_MOVE"
	CommandQuit      CommandType = "QUIT"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// WindowStatus is the interaction state of one managed window.
type WindowStatus struct {
	ID            uint32 `json:"id"`
	Role          string `json:"role"`
	X             int    `json:"x"`
	Y             int    `json:"y"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Phase         string `json:"phase"`
	Direction     string `json:"direction"`
	ResizeEnabled bool   `json:"resize_enabled"`
	MoveEnabled   bool   `json:"move_enabled"`
	Maximized     bool   `json:"maximized"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	Host          string         `json:"host"`
	PID           int            `json:"pid"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	Windows       []WindowStatus `json:"windows"`
}

// TogglePayload is the payload of SET_RESIZE and SET_MOVE. An empty Role
// targets every window.
type TogglePayload struct {
	Role    string `json:"role,omitempty"`
	Enabled bool   `json:"enabled"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
