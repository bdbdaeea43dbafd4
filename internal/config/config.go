package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"

	"github.com/weaveloop/combat-server-go/internal/combat"
)

// Config is the full server configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Combat  CombatConfig  `mapstructure:"combat"`
}

// ServerConfig configures the tick loop and the websocket listener.
type ServerConfig struct {
	WebSocket WebSocketConfig `mapstructure:"websocket"`
	// TickRate is simulation steps per second.
	TickRate int `mapstructure:"tick_rate"`
}

// WebSocketConfig configures the state-streaming endpoint.
type WebSocketConfig struct {
	Address string `mapstructure:"address"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CombatConfig carries the session tuning plus optional overrides for the
// ability table and the enemy script. Both are static for a session.
type CombatConfig struct {
	GCDLength       float64         `mapstructure:"gcd_length"`
	QueueWindow     float64         `mapstructure:"queue_window"`
	BufferGrace     float64         `mapstructure:"buffer_grace"`
	TargetMaxHealth int             `mapstructure:"target_max_health"`
	Abilities       []AbilityEntry  `mapstructure:"abilities"`
	Timeline        []TimelineEntry `mapstructure:"timeline"`
}

// AbilityEntry overrides the stock profile for one ability.
type AbilityEntry struct {
	ID            string  `mapstructure:"id"`
	Name          string  `mapstructure:"name"`
	TriggersGCD   bool    `mapstructure:"triggers_gcd"`
	CastTime      float64 `mapstructure:"cast_time"`
	Cooldown      float64 `mapstructure:"cooldown"`
	AnimationLock float64 `mapstructure:"animation_lock"`
	BaseDamage    int     `mapstructure:"base_damage"`
}

// TimelineEntry is one scheduled enemy action.
type TimelineEntry struct {
	At       float64 `mapstructure:"at"`
	Effect   string  `mapstructure:"effect"`
	Duration float64 `mapstructure:"duration"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.websocket.address", ":8080")
	v.SetDefault("server.tick_rate", 30)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	tuning := combat.DefaultTuning()
	v.SetDefault("combat.gcd_length", tuning.GCDLength)
	v.SetDefault("combat.queue_window", tuning.QueueWindow)
	v.SetDefault("combat.buffer_grace", tuning.BufferGrace)
	v.SetDefault("combat.target_max_health", combat.DefaultTargetMaxHealth)
}

// Load reads the YAML configuration at path. A missing file is not an error:
// the defaults describe a complete working server.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Tuning converts the combat section into engine tuning constants.
func (c CombatConfig) Tuning() combat.Tuning {
	return combat.Tuning{
		GCDLength:   c.GCDLength,
		QueueWindow: c.QueueWindow,
		BufferGrace: c.BufferGrace,
	}
}

// Catalog builds the ability catalog: the stock table with the configured
// overrides merged in by identifier.
func (c CombatConfig) Catalog() (*combat.Catalog, error) {
	profiles := combat.DefaultProfiles()
	byID := make(map[combat.AbilityID]int, len(profiles))
	for i, p := range profiles {
		byID[p.ID] = i
	}
	for _, entry := range c.Abilities {
		id := combat.AbilityID(entry.ID)
		i, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("ability override for unknown id %q", entry.ID)
		}
		p := combat.Profile{
			ID:            id,
			Name:          entry.Name,
			TriggersGCD:   entry.TriggersGCD,
			CastTime:      entry.CastTime,
			Cooldown:      entry.Cooldown,
			AnimationLock: entry.AnimationLock,
			BaseDamage:    entry.BaseDamage,
		}
		if p.Name == "" {
			p.Name = profiles[i].Name
		}
		profiles[i] = p
	}
	return combat.NewCatalog(profiles)
}

// TimelineEntries converts the configured enemy script. An empty script
// means the stock one.
func (c CombatConfig) TimelineEntries() ([]combat.TimelineEntry, error) {
	entries := make([]combat.TimelineEntry, 0, len(c.Timeline))
	for _, entry := range c.Timeline {
		effect := combat.TimelineEffect(entry.Effect)
		switch effect {
		case combat.TimelineDebuff, combat.TimelineAlert, combat.TimelineEnrage:
		default:
			return nil, fmt.Errorf("unknown timeline effect %q", entry.Effect)
		}
		entries = append(entries, combat.TimelineEntry{
			At:       entry.At,
			Effect:   effect,
			Duration: entry.Duration,
		})
	}
	return entries, nil
}

// SessionConfig assembles the engine-side session configuration.
func (c *Config) SessionConfig() (combat.SessionConfig, error) {
	catalog, err := c.Combat.Catalog()
	if err != nil {
		return combat.SessionConfig{}, err
	}
	timeline, err := c.Combat.TimelineEntries()
	if err != nil {
		return combat.SessionConfig{}, err
	}
	return combat.SessionConfig{
		Catalog:         catalog,
		Timeline:        timeline,
		Tuning:          c.Combat.Tuning(),
		TargetMaxHealth: c.Combat.TargetMaxHealth,
	}, nil
}
