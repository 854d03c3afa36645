package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
)

// The trainer drives the backend API to benchmark the engine against
// itself: the backend AI plays one side, the trainer plays the other by
// asking /api/suggest and posting the result. Every scoring mechanism
// and difficulty gets the same number of games, alternating who starts.
type trainer struct {
	client       *http.Client
	baseURL      string
	pollInterval time.Duration
	logger       *log.Logger
	gamesPerPair int
	boardSize    int
	gameTimeout  time.Duration
}

type statusResponse struct {
	Progress   string `json:"progress"`
	NextPlayer int    `json:"next_player"`
	Winner     int    `json:"winner"`
	Scores     [2]int `json:"scores"`
	AiThinking bool   `json:"ai_thinking"`
	BoardSize  int    `json:"board_size"`
	Settings   struct {
		FirstPlayer string `json:"first_player"`
	} `json:"settings"`
}

type suggestResponse struct {
	Found bool `json:"found"`
	X     int  `json:"x"`
	Y     int  `json:"y"`
}

type tally struct {
	aiWins      int
	trainerWins int
	draws       int
	timeouts    int
}

func main() {
	logger, closeLog, err := buildLogger(getenv("TRAINER_LOG", "logs/ai-trainer.log"))
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer closeLog()

	t := &trainer{
		client:       &http.Client{Timeout: 10 * time.Second},
		baseURL:      getenv("BACKEND_URL", "http://localhost:8080"),
		pollInterval: time.Duration(getenvInt("POLL_INTERVAL_MS", 100)) * time.Millisecond,
		logger:       logger,
		gamesPerPair: getenvInt("MATCH_GAMES", 10),
		boardSize:    getenvInt("MATCH_BOARD_SIZE", 7),
		gameTimeout:  time.Duration(getenvInt("MATCH_GAME_TIMEOUT_SEC", 120)) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := t.waitForBackend(ctx); err != nil {
		t.logf("backend not reachable: %v", err)
		os.Exit(1)
	}
	if err := t.runMatchups(ctx); err != nil {
		t.logf("matchups aborted: %v", err)
		os.Exit(1)
	}
}

func (t *trainer) runMatchups(ctx context.Context) error {
	mechanisms := []string{"multiplication", "connection", "extension"}
	difficulties := []string{"easy", "hard"}
	for _, mechanism := range mechanisms {
		for _, difficulty := range difficulties {
			result, err := t.runPairing(ctx, mechanism, difficulty)
			if err != nil {
				return err
			}
			t.logf("result scoring=%s difficulty=%s games=%d ai=%d trainer=%d draws=%d timeouts=%d",
				mechanism, difficulty, t.gamesPerPair,
				result.aiWins, result.trainerWins, result.draws, result.timeouts)
		}
	}
	return nil
}

func (t *trainer) runPairing(ctx context.Context, mechanism, difficulty string) (tally, error) {
	var result tally
	for game := 0; game < t.gamesPerPair; game++ {
		firstPlayer := "human"
		if game%2 == 1 {
			firstPlayer = "ai"
		}
		if err := t.startGame(mechanism, difficulty, firstPlayer); err != nil {
			return result, err
		}
		outcome, err := t.playToCompletion(ctx, firstPlayer)
		if err != nil {
			return result, err
		}
		switch outcome {
		case "ai":
			result.aiWins++
		case "trainer":
			result.trainerWins++
		case "draw":
			result.draws++
		default:
			result.timeouts++
		}
	}
	return result, nil
}

func (t *trainer) startGame(mechanism, difficulty, firstPlayer string) error {
	payload := map[string]any{
		"settings": map[string]any{
			"board_size":   t.boardSize,
			"mode":         "vs_ai",
			"first_player": firstPlayer,
			"scoring":      mechanism,
			"difficulty":   difficulty,
		},
	}
	return t.postJSON("/api/start", payload, nil)
}

// playToCompletion polls until the game ends, playing the trainer's
// side whenever the backend is idle and waiting on the "human" turn.
func (t *trainer) playToCompletion(ctx context.Context, firstPlayer string) (string, error) {
	trainerSeat := 1
	if firstPlayer == "ai" {
		trainerSeat = 2
	}
	deadline := time.Now().Add(t.gameTimeout)
	for {
		if time.Now().After(deadline) {
			return "timeout", t.postJSON("/api/stop", map[string]any{}, nil)
		}
		var status statusResponse
		if err := t.getJSON("/api/status", &status); err != nil {
			return "", err
		}
		if status.Progress == "over" {
			switch status.Winner {
			case 0:
				return "draw", nil
			case trainerSeat:
				return "trainer", nil
			default:
				return "ai", nil
			}
		}
		if status.Progress == "playing" && status.NextPlayer == trainerSeat && !status.AiThinking {
			var suggestion suggestResponse
			if err := t.getJSON("/api/suggest", &suggestion); err != nil {
				return "", err
			}
			if suggestion.Found {
				move := map[string]int{"x": suggestion.X, "y": suggestion.Y}
				if err := t.postJSON("/api/move", move, nil); err != nil {
					t.logf("move rejected at (%d,%d): %v", suggestion.X, suggestion.Y, err)
				}
			}
		}
		if !sleepWithContext(ctx, t.pollInterval) {
			return "", ctx.Err()
		}
	}
}

func (t *trainer) waitForBackend(ctx context.Context) error {
	for attempt := 0; attempt < 60; attempt++ {
		if err := t.ping(); err == nil {
			return nil
		}
		if !sleepWithContext(ctx, time.Second) {
			return ctx.Err()
		}
	}
	return fmt.Errorf("timeout after 60s")
}

func (t *trainer) ping() error {
	req, err := http.NewRequest(http.MethodGet, t.baseURL+"/api/ping", nil)
	if err != nil {
		return err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping status %d", resp.StatusCode)
	}
	return nil
}

func (t *trainer) getJSON(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, t.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("GET %s -> %d: %s", path, resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (t *trainer) postJSON(path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, t.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("POST %s -> %d: %s", path, resp.StatusCode, string(respBody))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (t *trainer) logf(format string, args ...any) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	t.logger.Printf("[%s] %s", ts, fmt.Sprintf(format, args...))
}

func buildLogger(path string) (*log.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.New(io.MultiWriter(os.Stdout, f), "", 0)
	return logger, func() { _ = f.Close() }, nil
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var parsed int
	if _, err := fmt.Sscanf(value, "%d", &parsed); err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
