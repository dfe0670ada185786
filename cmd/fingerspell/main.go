package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ayusman/fingerspell/internal/app"
	"github.com/ayusman/fingerspell/internal/server"
	"github.com/ayusman/fingerspell/internal/stabilize"
	"github.com/ayusman/fingerspell/internal/store"
	"github.com/ayusman/fingerspell/internal/tray"
)

const addr = ":8080"

func main() {
	fmt.Println("Fingerspell - Sign Language Fingerspelling Recognition")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".fingerspell")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "fingerspell.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Engine tuning is persisted so retuned values survive restarts.
	engineCfg := stabilize.DefaultConfig()
	settings := st.Settings()
	engineCfg.WindowSize = settings.GetInt(store.SettingWindowSize, engineCfg.WindowSize)
	engineCfg.StableThreshold = settings.GetInt(store.SettingStableThreshold, engineCfg.StableThreshold)

	application := app.New(app.Config{
		Store:     st,
		PluginDir: filepath.Join(dataDir, "plugins"),
		Engine:    engineCfg,
	})

	if err := application.DiscoverPlugins(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	}

	srv := server.New(server.Config{
		StaticDir: findWebDir(),
		Store:     st,
		Camera:    application.Camera(),
		Session:   application,
	})

	go func() {
		fmt.Printf("Starting server on %s\n", addr)
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if err := application.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}
	application.SetEnabled(true)
	defer application.Stop()

	t := tray.New()
	t.OnToggle(application.SetEnabled)
	t.OnClear(application.Clear)
	t.OnOpenUI(func() {
		if err := exec.Command("open", "http://localhost"+addr).Start(); err != nil {
			log.Printf("Failed to open browser: %v", err)
		}
	})
	application.OnCommit(func(_ stabilize.Mutation, text string) {
		t.SetTranscript(text)
	})

	// Blocks until Quit is chosen from the tray menu.
	t.Run()
}

// findWebDir searches for the web directory in common locations.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".fingerspell", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
