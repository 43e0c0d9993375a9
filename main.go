package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"

	"mergeview/logger"
)

type Config struct {
	NsID                   int    `json:"ns_id" toml:"ns_id"`
	TextChangeDebounce     int    `json:"text_change_debounce" toml:"text_change_debounce"` // in milliseconds
	GitDebounce            int    `json:"git_debounce" toml:"git_debounce"`                 // in milliseconds
	WorkDir                string `json:"work_dir" toml:"work_dir"`
	LogLevel               string `json:"log_level" toml:"log_level"` // debug, info, warn, error
	DebugImmediateShutdown bool   `json:"debug_immediate_shutdown" toml:"debug_immediate_shutdown"`
}

type ServerMode string

const (
	ModeDaemon ServerMode = "daemon"
	ModeClient ServerMode = "client"
)

// Setup logger to log to a file in the same directory as the executable.
// Caller must defer logger.Close()
func setupLogger(logLevel string) *logger.FileLogger {
	execPath, err := os.Executable()
	if err != nil {
		log.Fatalf("error getting executable path: %v", err)
	}
	logPath := filepath.Join(filepath.Dir(execPath), "mergeview.log")

	l, err := logger.Open(logPath, logger.ParseLevel(logLevel))
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	log.SetOutput(l)
	return l
}

func getSocketPath() string {
	execPath, err := os.Executable()
	if err != nil {
		log.Fatalf("error getting executable path: %v", err)
	}
	return filepath.Join(filepath.Dir(execPath), "mergeview.sock")
}

func getPidPath() string {
	execPath, err := os.Executable()
	if err != nil {
		log.Fatalf("error getting executable path: %v", err)
	}
	return filepath.Join(filepath.Dir(execPath), "mergeview.pid")
}

func isDaemonRunning() (bool, int) {
	data, err := os.ReadFile(getPidPath())
	if err != nil {
		return false, 0
	}

	pid, err := strconv.Atoi(string(data))
	if err != nil {
		return false, 0
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false, 0
	}

	// On Unix, Signal(0) checks if process exists
	err = process.Signal(syscall.Signal(0))
	return err == nil, pid
}

func configFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mergeview", "config.toml")
}

// loadConfig reads the optional TOML config file, then overlays the
// MERGEVIEW_CONFIG env JSON the editor side sets per session.
func loadConfig() Config {
	var config Config

	if path := configFilePath(); path != "" {
		if _, err := toml.DecodeFile(path, &config); err != nil && !os.IsNotExist(err) {
			log.Fatalf("invalid config file %s: %v", path, err)
		}
	}

	if env := os.Getenv("MERGEVIEW_CONFIG"); env != "" {
		if err := json.Unmarshal([]byte(env), &config); err != nil {
			log.Fatalf("invalid config: %v", err)
		}
	}

	log.Printf("config: %+v", config)
	return config
}

func (c Config) textChangeDebounce() time.Duration {
	return time.Duration(c.TextChangeDebounce) * time.Millisecond
}

func (c Config) gitDebounce() time.Duration {
	return time.Duration(c.GitDebounce) * time.Millisecond
}

func runDaemon() {
	config := loadConfig()

	logLevel := config.LogLevel
	if logLevel == "" {
		logLevel = "info"
	}

	l := setupLogger(logLevel)
	defer l.Close()

	daemon, err := NewDaemon(config)
	if err != nil {
		log.Fatalf("error creating daemon: %v", err)
	}

	if err := daemon.Start(); err != nil {
		log.Fatalf("error starting daemon: %v", err)
	}
}

func runClient() {
	client := NewClient()

	if err := client.EnsureDaemonRunning(); err != nil {
		log.Fatalf("error ensuring daemon is running: %v", err)
	}

	if err := client.Connect(); err != nil {
		log.Fatalf("error connecting to daemon: %v", err)
	}
}

func main() {
	var mode ServerMode = ModeClient

	if len(os.Args) > 1 && os.Args[1] == "--daemon" {
		mode = ModeDaemon
	}

	switch mode {
	case ModeDaemon:
		runDaemon()
	case ModeClient:
		runClient()
	}
}
