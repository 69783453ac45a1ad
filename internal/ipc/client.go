package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// Client handles IPC communication with a running window host
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the socket at socketPath.
func NewClient(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w (is a frameless window running?)", c.socketPath, err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("host error: %s", resp.Error)
	}

	return &resp, nil
}

// GetStatus retrieves the state of every managed window
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// SetResize toggles edge resizing for role, or for every window when role
// is empty.
func (c *Client) SetResize(role string, enabled bool) error {
	return c.toggle(CommandSetResize, role, enabled)
}

// SetMove toggles moving for role, or for every window when role is empty.
func (c *Client) SetMove(role string, enabled bool) error {
	return c.toggle(CommandSetMove, role, enabled)
}

func (c *Client) toggle(cmd CommandType, role string, enabled bool) error {
	payload, err := json.Marshal(TogglePayload{Role: role, Enabled: enabled})
	if err != nil {
		return fmt.Errorf("failed to marshal toggle payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: cmd, Payload: payload})
	return err
}

// Quit asks the host to close its windows and exit.
func (c *Client) Quit() error {
	_, err := c.sendRequest(&Request{Command: CommandQuit})
	return err
}

// Ping checks if the host is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
