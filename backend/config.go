package main

import (
	"encoding/json"
	"log"
	"os"
	"sync"

	"github.com/adrg/xdg"
)

const configFileName = "cell-extension/config.json"

type Config struct {
	TickMs               int             `json:"tick_ms"`
	AiDepth              int             `json:"ai_depth"`
	AiJitter             float64         `json:"ai_jitter"`
	TerritorialThreshold float64         `json:"territorial_threshold"`
	EndgameScaleStart    float64         `json:"endgame_scale_start"`
	EndgameScaleFactor   float64         `json:"endgame_scale_factor"`
	LogAiMoves           bool            `json:"log_ai_moves"`
	Heuristics           HeuristicConfig `json:"heuristics"`
}

// HeuristicConfig holds the evaluation weights. Tunable via the
// settings endpoint so strategy experiments don't need a rebuild.
type HeuristicConfig struct {
	TerritoryEmpty      float64 `json:"territory_empty"`
	TerritoryOwn        float64 `json:"territory_own"`
	TerritoryOpponent   float64 `json:"territory_opponent"`
	MultAvgOwnSize      float64 `json:"mult_avg_own_size"`
	MultLargestOpponent float64 `json:"mult_largest_opponent"`
	EdgeDifferential    float64 `json:"edge_differential"`
	ExpansionOwn        float64 `json:"expansion_own"`
	ExpansionOpponent   float64 `json:"expansion_opponent"`
	ExpansionWeight     float64 `json:"expansion_weight"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		TickMs: 50,

		// Minimax depth: one engine move plus one reply.
		AiDepth: 2,

		// Tie-break jitter for the territorial heuristic.
		AiJitter: 0.1,

		// Below this occupancy fraction the easy engine spreads
		// influence instead of chasing score.
		TerritorialThreshold: 0.25,

		// Past this occupancy fraction raw score differential starts
		// to dominate positional terms.
		EndgameScaleStart:  0.7,
		EndgameScaleFactor: 2.0,

		LogAiMoves: false,

		Heuristics: HeuristicConfig{
			TerritoryEmpty:      3.0,
			TerritoryOwn:        -2.0,
			TerritoryOpponent:   -1.0,
			MultAvgOwnSize:      0.5,
			MultLargestOpponent: 0.3,
			EdgeDifferential:    0.4,
			ExpansionOwn:        1.0,
			ExpansionOpponent:   0.5,
			ExpansionWeight:     0.25,
		},
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}

// loadConfigFile overlays defaults with an optional JSON file found via
// the XDG config search path. Missing file is not an error.
func loadConfigFile() {
	path, err := xdg.SearchConfigFile(configFileName)
	if err != nil {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[backend] config file %s unreadable: %v", path, err)
		return
	}
	config := DefaultConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		log.Printf("[backend] config file %s invalid: %v", path, err)
		return
	}
	configStore.Update(config)
	log.Printf("[backend] loaded config from %s", path)
}
