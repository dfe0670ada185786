// Package main provides a speaker plugin for macOS.
// It speaks each completed word aloud using the system voice, so a
// signed word is vocalized once the hand drops and the auto-space lands.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Request represents the input from the plugin executor.
type Request struct {
	Action     string          `json:"action"`
	Text       string          `json:"text"`
	Transcript string          `json:"transcript"`
	Config     json.RawMessage `json:"config"`
	Params     json.RawMessage `json:"params"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	switch req.Action {
	case "space":
		// A word just finished; speak it.
		if err := speak(lastWord(req.Transcript)); err != nil {
			writeErrorResponse(fmt.Sprintf("speak failed: %v", err))
			return
		}
	case "append":
		// The wave greeting arrives as a whole word; letters are
		// spoken only once their word completes.
		if word := strings.TrimSpace(req.Text); len(word) > 1 {
			if err := speak(word); err != nil {
				writeErrorResponse(fmt.Sprintf("speak failed: %v", err))
				return
			}
		}
	default:
		writeErrorResponse(fmt.Sprintf("unknown action: %s", req.Action))
		return
	}

	writeSuccessResponse()
}

// lastWord returns the final whitespace-delimited word of text.
func lastWord(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// speak vocalizes text with the macOS system voice.
func speak(text string) error {
	if text == "" {
		return nil
	}
	cmd := exec.Command("say", text)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("say: %v (%s)", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func writeSuccessResponse() {
	json.NewEncoder(os.Stdout).Encode(Response{Success: true})
}

func writeErrorResponse(msg string) {
	json.NewEncoder(os.Stdout).Encode(Response{Success: false, Error: msg})
}
