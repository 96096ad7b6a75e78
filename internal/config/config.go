package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/park285/draft-chess/internal/draft"
	yaml "gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "DRAFTCHESS_"

var ErrUnknownPiece = errors.New("unknown piece name")

type AppConfig struct {
	Rules       RulesConfig    `yaml:"rules"        envPrefix:"RULES_"`
	Log         LogConfig      `yaml:"log"          envPrefix:"LOG_"`
	Snapshot    SnapshotConfig `yaml:"snapshot"     envPrefix:"SNAPSHOT_"`
	UI          UIConfig       `yaml:"ui"           envPrefix:"UI_"`
	MessagesDir string         `yaml:"messages_dir" env:"MESSAGES_DIR"`
}

// RulesConfig mirrors draft.Rules with names instead of enums.
type RulesConfig struct {
	Values        map[string]int `yaml:"values"          env:"VALUES"`
	LightBudget   int            `yaml:"light_budget"    env:"LIGHT_BUDGET"`
	DarkBudget    int            `yaml:"dark_budget"     env:"DARK_BUDGET"`
	LightBand     BandConfig     `yaml:"light_band"      envPrefix:"LIGHT_BAND_"`
	DarkBand      BandConfig     `yaml:"dark_band"       envPrefix:"DARK_BAND_"`
	LightPawnRank int            `yaml:"light_pawn_rank" env:"LIGHT_PAWN_RANK"`
	DarkPawnRank  int            `yaml:"dark_pawn_rank"  env:"DARK_PAWN_RANK"`
	LightKing     SquareConfig   `yaml:"light_king"      envPrefix:"LIGHT_KING_"`
	DarkKing      SquareConfig   `yaml:"dark_king"       envPrefix:"DARK_KING_"`
}

type BandConfig struct {
	From int `yaml:"from" env:"FROM"`
	To   int `yaml:"to"   env:"TO"`
}

type SquareConfig struct {
	Rank int `yaml:"rank" env:"RANK"`
	File int `yaml:"file" env:"FILE"`
}

type LogConfig struct {
	Level   string `yaml:"level"   env:"LEVEL"`
	Format  string `yaml:"format"  env:"FORMAT"`
	File    string `yaml:"file"    env:"FILE"`
	ToFile  bool   `yaml:"to_file" env:"TO_FILE"`
	Console bool   `yaml:"console" env:"TO_CONSOLE"`
	Caller  bool   `yaml:"caller"  env:"CALLER"`
}

// SnapshotConfig picks the snapshot sink. A non-empty RedisURL publishes to
// Redis instead of writing files under Dir.
type SnapshotConfig struct {
	Dir      string        `yaml:"dir"       env:"DIR"`
	RedisURL string        `yaml:"redis_url" env:"REDIS_URL"`
	TTL      time.Duration `yaml:"ttl"       env:"TTL"`
}

type UIConfig struct {
	Mouse bool `yaml:"mouse" env:"MOUSE"`
}

// Default returns the built-in configuration, equal to draft.DefaultRules.
func Default() *AppConfig {
	rules := draft.DefaultRules()
	values := make(map[string]int, len(rules.Values))
	for k, v := range rules.Values {
		values[k.String()] = v
	}
	return &AppConfig{
		Rules: RulesConfig{
			Values:        values,
			LightBudget:   rules.StartingBudget[draft.Light],
			DarkBudget:    rules.StartingBudget[draft.Dark],
			LightBand:     BandConfig{From: rules.DraftBand[draft.Light].From, To: rules.DraftBand[draft.Light].To},
			DarkBand:      BandConfig{From: rules.DraftBand[draft.Dark].From, To: rules.DraftBand[draft.Dark].To},
			LightPawnRank: rules.PawnStartRank[draft.Light],
			DarkPawnRank:  rules.PawnStartRank[draft.Dark],
			LightKing:     SquareConfig{Rank: rules.KingHome[draft.Light].Rank, File: rules.KingHome[draft.Light].File},
			DarkKing:      SquareConfig{Rank: rules.KingHome[draft.Dark].Rank, File: rules.KingHome[draft.Dark].File},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "legacy",
			File:   "logs/draftchess.log",
			ToFile: true,
		},
		Snapshot: SnapshotConfig{Dir: "snapshots", TTL: 24 * time.Hour},
		UI:       UIConfig{Mouse: true},
	}
}

// Load layers defaults, the optional YAML file at path, then DRAFTCHESS_* env
// overrides, and validates the resulting rules.
func Load(path string) (*AppConfig, error) {
	cfg := Default()

	if p := strings.TrimSpace(path); p != "" {
		raw, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", p, err)
		}
		if err := decodeYAML(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", p, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if _, err := cfg.DraftRules(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeYAML(raw []byte, cfg *AppConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// DraftRules converts the rules section into validated draft.Rules.
func (c *AppConfig) DraftRules() (draft.Rules, error) {
	rc := c.Rules
	rules := draft.DefaultRules()
	for name, v := range rc.Values {
		kind, ok := draft.ParseKind(name)
		if !ok {
			return draft.Rules{}, fmt.Errorf("rules.values %q: %w", name, ErrUnknownPiece)
		}
		rules.Values[kind] = v
	}
	rules.StartingBudget[draft.Light] = rc.LightBudget
	rules.StartingBudget[draft.Dark] = rc.DarkBudget
	rules.DraftBand[draft.Light] = draft.Band{From: rc.LightBand.From, To: rc.LightBand.To}
	rules.DraftBand[draft.Dark] = draft.Band{From: rc.DarkBand.From, To: rc.DarkBand.To}
	rules.PawnStartRank[draft.Light] = rc.LightPawnRank
	rules.PawnStartRank[draft.Dark] = rc.DarkPawnRank
	rules.KingHome[draft.Light] = draft.Sq(rc.LightKing.Rank, rc.LightKing.File)
	rules.KingHome[draft.Dark] = draft.Sq(rc.DarkKing.Rank, rc.DarkKing.File)

	if err := rules.Validate(); err != nil {
		return draft.Rules{}, err
	}
	return rules, nil
}
