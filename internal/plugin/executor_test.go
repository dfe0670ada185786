package plugin

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// writeTestPlugin drops an executable shell script into a fresh plugin
// directory and returns the Plugin pointing at it.
func writeTestPlugin(t *testing.T, name, script string) *Plugin {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "fingerspell-executor-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(tmpDir)
	})

	scriptPath := filepath.Join(tmpDir, name+".sh")
	if err := os.WriteFile(scriptPath, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	return &Plugin{
		Manifest: Manifest{
			Name:       name,
			Version:    "1.0.0",
			Executable: name + ".sh",
			Actions:    []string{"append", "space"},
		},
		Path:       tmpDir,
		Executable: scriptPath,
	}
}

func TestExecutor_Execute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	plugin := writeTestPlugin(t, "ok-plugin", `#!/bin/sh
cat <<'EOF'
{"success":true,"data":{"message":"typed"}}
EOF
`)

	request := &Request{
		Action:     "append",
		Text:       "D",
		Transcript: "HELD",
	}

	executor := NewExecutor(5000)
	response, err := executor.Execute(plugin, request)
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if !response.Success {
		t.Error("expected success=true, got false")
	}
	if response.Error != "" {
		t.Errorf("expected empty error, got %q", response.Error)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(response.Data, &data); err != nil {
		t.Fatalf("failed to unmarshal response data: %v", err)
	}
	if data["message"] != "typed" {
		t.Errorf("expected message 'typed', got %v", data["message"])
	}
}

func TestExecutor_Execute_ReadsStdin(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	// The script echoes the mutation request back so the test can see
	// exactly what was delivered over stdin.
	plugin := writeTestPlugin(t, "echo-plugin", `#!/bin/sh
INPUT=$(cat)
echo "{\"success\":true,\"data\":{\"received\":$INPUT}}"
`)

	request := &Request{
		Action:     "space",
		Text:       " ",
		Transcript: "HI ",
	}

	executor := NewExecutor(5000)
	response, err := executor.Execute(plugin, request)
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	var data struct {
		Received Request `json:"received"`
	}
	if err := json.Unmarshal(response.Data, &data); err != nil {
		t.Fatalf("failed to unmarshal response data: %v", err)
	}
	if data.Received.Action != "space" || data.Received.Transcript != "HI " {
		t.Errorf("plugin received %+v", data.Received)
	}
}

func TestExecutor_Execute_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}
	if testing.Short() {
		t.Skip("skipping timeout test in short mode")
	}

	plugin := writeTestPlugin(t, "slow-plugin", `#!/bin/sh
sleep 5
echo '{"success":true}'
`)

	executor := NewExecutor(100)
	_, err := executor.Execute(plugin, &Request{Action: "append", Text: "A"})
	if err == nil {
		t.Fatal("expected a timeout error")
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Errorf("error = %v, want a timeout", err)
	}
}

func TestExecutor_Execute_BadOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	plugin := writeTestPlugin(t, "garbage-plugin", `#!/bin/sh
echo "this is not json"
`)

	executor := NewExecutor(5000)
	if _, err := executor.Execute(plugin, &Request{Action: "append", Text: "A"}); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestExecutor_Execute_Failure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	plugin := writeTestPlugin(t, "failing-plugin", `#!/bin/sh
echo "boom" >&2
exit 1
`)

	executor := NewExecutor(5000)
	_, err := executor.Execute(plugin, &Request{Action: "append", Text: "A"})
	if err == nil {
		t.Fatal("expected an execution error")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error = %v, want plugin stderr included", err)
	}
}
