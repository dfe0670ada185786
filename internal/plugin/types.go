// Package plugin discovers and executes text-sink plugins: external
// programs that receive each committed text mutation over stdin as JSON
// and act on it (type it, speak it, forward it).
package plugin

import "encoding/json"

// Manifest describes a plugin's metadata and capabilities.
type Manifest struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Executable   string          `json:"executable"`
	Actions      []string        `json:"actions"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Request is one committed text mutation sent to a plugin for handling.
type Request struct {
	// Action is "append" for committed symbols and words, "space" for
	// the auto-space inserted on hand loss.
	Action string `json:"action"`
	// Text is the exact text appended by this mutation.
	Text string `json:"text"`
	// Transcript is the full accumulated text after the mutation.
	Transcript string          `json:"transcript"`
	Config     json.RawMessage `json:"config,omitempty"`
	Params     json.RawMessage `json:"params,omitempty"`
}

// Response represents the response from a plugin execution.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin represents a discovered plugin with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}
