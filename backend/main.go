package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

type StatusResponse struct {
	Settings        GameSettingsDTO   `json:"settings"`
	Config          Config            `json:"config"`
	Board           [][]int           `json:"board"`
	Scores          [2]int            `json:"scores"`
	ScoreHistory    [][2]int          `json:"score_history"`
	Components      [2][][]Move       `json:"components"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	BoardSize       int               `json:"board_size"`
	Progress        string            `json:"progress"`
	History         []historyEntryDTO `json:"history"`
	UndoDepth       int               `json:"undo_depth"`
	AiThinking      bool              `json:"ai_thinking"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type GameSettingsDTO struct {
	BoardSize   int    `json:"board_size"`
	Mode        string `json:"mode"`
	FirstPlayer string `json:"first_player"`
	Scoring     string `json:"scoring"`
	Difficulty  string `json:"difficulty"`
}

type apiMove struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type historyEntryDTO struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Player    int     `json:"player"`
	ElapsedMs float64 `json:"elapsed_ms"`
	IsAi      bool    `json:"is_ai"`
	Scores    [2]int  `json:"scores"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type resetPayload struct {
	BoardSize       int      `json:"board_size"`
	Scores          [2]int   `json:"scores"`
	ScoreHistory    [][2]int `json:"score_history"`
	NextPlayer      int      `json:"next_player"`
	Progress        string   `json:"progress"`
	TurnStartedAtMs int64    `json:"turn_started_at_ms"`
}

type settingsPayload struct {
	Settings GameSettingsDTO `json:"settings"`
	Config   Config          `json:"config"`
}

type suggestResponse struct {
	Found bool `json:"found"`
	X     int  `json:"x"`
	Y     int  `json:"y"`
}

func main() {
	loadConfigFile()
	controller := NewGameController(DefaultGameSettings())
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hub.Run(ctx.Done())
	go func() {
		tickMs := GetConfig().TickMs
		if tickMs <= 0 {
			tickMs = 50
		}
		ticker := time.NewTicker(time.Duration(tickMs) * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if controller.Tick() && hub.HasClients() {
					if entry, ok := controller.LatestHistoryEntry(); ok {
						hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
					}
					hub.broadcastStatus <- controllerStatus(controller)
				}
			}
		}
	}()

	r := newRouter(controller, hub)

	server := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Println("backend listening on :8080")
	select {
	case <-sigCtx.Done():
		log.Printf("[backend] shutdown signal received: %v", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			log.Printf("[backend] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[backend] graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Printf("[backend] forced close failed: %v", closeErr)
		}
	}
	cancel()
}

func newRouter(controller *GameController, hub *Hub) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/start", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings GameSettingsDTO `json:"settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		settings := settingsFromDTO(payload.Settings, DefaultGameSettings())
		controller.StartGame(settings)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- resetFromController(controller)
	})

	r.Post("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		controller.Reset(controller.Settings())
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- resetFromController(controller)
	})

	r.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings *GameSettingsDTO `json:"settings"`
			Config   *Config          `json:"config"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if payload.Config != nil {
			configStore.Update(*payload.Config)
		}
		if payload.Settings != nil {
			settings := settingsFromDTO(*payload.Settings, controller.Settings())
			controller.UpdateSettings(settings, false)
		}
		hub.broadcastSettings <- settingsPayload{
			Settings: settingsToDTO(controller.Settings()),
			Config:   GetConfig(),
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload apiMove
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		applied, errMsg := controller.ApplyHumanMove(Move{X: payload.X, Y: payload.Y})
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		if entry, ok := controller.LatestHistoryEntry(); ok {
			hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
		}
		hub.broadcastStatus <- controllerStatus(controller)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/undo", func(w http.ResponseWriter, r *http.Request) {
		undone := controller.Undo()
		if undone {
			hub.broadcastScores <- scoresFromController(controller)
		}
		hub.broadcastStatus <- controllerStatus(controller)
		writeJSON(w, http.StatusOK, map[string]any{
			"undone":     undone,
			"undo_depth": controller.UndoDepth(),
		})
	})

	r.Get("/api/suggest", func(w http.ResponseWriter, r *http.Request) {
		move, found := controller.SuggestMove()
		writeJSON(w, http.StatusOK, suggestResponse{Found: found, X: move.X, Y: move.Y})
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, w, r)
	})

	return r
}

func serveWS(hub *Hub, controller *GameController, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			return
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})
		case "click":
			var payload apiMove
			if err := json.Unmarshal(msg.Payload, &payload); err == nil {
				controller.OnCellClicked(payload.X, payload.Y)
			}
		}
	}
}

func controllerStatus(controller *GameController) StatusResponse {
	state := controller.State()
	return StatusResponse{
		Settings:        settingsToDTO(controller.Settings()),
		Config:          GetConfig(),
		Board:           boardToSlice(state.Board),
		Scores:          state.Scores,
		ScoreHistory:    controller.ScoreHistory(),
		Components:      componentsForAnnotation(state.Board),
		NextPlayer:      playerToInt(state.ToMove),
		Winner:          winnerFromState(state),
		BoardSize:       state.Board.Width(),
		Progress:        state.Progress.String(),
		History:         historyToDTO(controller.History()),
		UndoDepth:       controller.UndoDepth(),
		AiThinking:      controller.AiThinking(),
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
	}
}

// componentsForAnnotation reuses the one component analyzer for the
// UI's connection highlighting; nothing is cached on either side.
func componentsForAnnotation(board Board) [2][][]Move {
	var out [2][][]Move
	for player := 0; player < 2; player++ {
		components := connectedComponents(board, player)
		out[player] = make([][]Move, 0, len(components))
		for _, component := range components {
			out[player] = append(out[player], component.Cells())
		}
	}
	return out
}

func settingsFromDTO(dto GameSettingsDTO, base GameSettings) GameSettings {
	settings := base
	if dto.BoardSize != 0 {
		settings.BoardSize = clampBoardSize(dto.BoardSize)
	}
	switch dto.Mode {
	case "vs_ai":
		settings.PlayerMode = ModeVsAI
	case "two_player":
		settings.PlayerMode = ModeTwoPlayer
	}
	switch dto.FirstPlayer {
	case "human":
		settings.FirstPlayer = PlayerHuman
	case "ai":
		settings.FirstPlayer = PlayerAI
	}
	if dto.Scoring != "" {
		if mechanism, err := scoringMechanismFromString(dto.Scoring); err == nil {
			settings.Scoring = mechanism
		}
	}
	switch dto.Difficulty {
	case "easy":
		settings.AiDifficulty = DifficultyEasy
	case "hard":
		settings.AiDifficulty = DifficultyHard
	}
	return settings
}

func settingsToDTO(settings GameSettings) GameSettingsDTO {
	mode := "vs_ai"
	if settings.PlayerMode == ModeTwoPlayer {
		mode = "two_player"
	}
	firstPlayer := "human"
	if settings.FirstPlayer == PlayerAI {
		firstPlayer = "ai"
	}
	difficulty := "easy"
	if settings.AiDifficulty == DifficultyHard {
		difficulty = "hard"
	}
	return GameSettingsDTO{
		BoardSize:   settings.BoardSize,
		Mode:        mode,
		FirstPlayer: firstPlayer,
		Scoring:     settings.Scoring.String(),
		Difficulty:  difficulty,
	}
}

func boardToSlice(board Board) [][]int {
	rows := make([][]int, board.Height())
	for y := 0; y < board.Height(); y++ {
		rows[y] = make([]int, board.Width())
		for x := 0; x < board.Width(); x++ {
			if owner, occupied := board.At(Move{X: x, Y: y}); occupied {
				rows[y][x] = playerToInt(owner)
			}
		}
	}
	return rows
}

func playerToInt(player int) int {
	return player + 1
}

// winnerFromState maps a finished game to 1 or 2; 0 means the game is
// still running or ended level.
func winnerFromState(state GameState) int {
	if state.Progress != ProgressOver {
		return 0
	}
	if state.Scores[0] > state.Scores[1] {
		return 1
	}
	if state.Scores[1] > state.Scores[0] {
		return 2
	}
	return 0
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	entries := history.All()
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryToDTO(entry))
	}
	return result
}

func historyEntryToDTO(entry HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		X:         entry.Move.X,
		Y:         entry.Move.Y,
		Player:    playerToInt(entry.Player),
		ElapsedMs: entry.ElapsedMs,
		IsAi:      entry.IsAi,
		Scores:    entry.Scores,
	}
}

func scoresFromController(controller *GameController) scoresPayload {
	state := controller.State()
	return scoresPayload{
		Scores:       state.Scores,
		ScoreHistory: controller.ScoreHistory(),
		NextPlayer:   playerToInt(state.ToMove),
		Progress:     state.Progress.String(),
	}
}

func resetFromController(controller *GameController) resetPayload {
	state := controller.State()
	return resetPayload{
		BoardSize:       state.Board.Width(),
		Scores:          state.Scores,
		ScoreHistory:    controller.ScoreHistory(),
		NextPlayer:      playerToInt(state.ToMove),
		Progress:        state.Progress.String(),
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
