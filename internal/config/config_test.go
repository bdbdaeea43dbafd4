package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weaveloop/combat-server-go/internal/combat"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.WebSocket.Address)
	assert.Equal(t, 30, cfg.Server.TickRate)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 2.5, cfg.Combat.GCDLength)
	assert.Equal(t, 2000, cfg.Combat.TargetMaxHealth)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Server.TickRate)
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  websocket:
    address: ":9090"
  tick_rate: 60
logging:
  level: debug
  format: json
combat:
  gcd_length: 3.0
  target_max_health: 5000
  abilities:
    - id: strike
      name: Heavy Strike
      triggers_gcd: true
      cooldown: 3.0
      animation_lock: 0.6
      base_damage: 150
  timeline:
    - at: 2.0
      effect: alert
      duration: 1.0
    - at: 5.0
      effect: debuff
      duration: 4.0
    - at: 10.0
      effect: enrage
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.WebSocket.Address)
	assert.Equal(t, 60, cfg.Server.TickRate)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 3.0, cfg.Combat.GCDLength)

	sessionCfg, err := cfg.SessionConfig()
	require.NoError(t, err)
	assert.Equal(t, 5000, sessionCfg.TargetMaxHealth)
	assert.Equal(t, 3.0, sessionCfg.Tuning.GCDLength)

	p, ok := sessionCfg.Catalog.Profile(combat.AbilityStrike)
	require.True(t, ok)
	assert.Equal(t, "Heavy Strike", p.Name)
	assert.Equal(t, 150, p.BaseDamage)
	assert.Equal(t, 3.0, p.Cooldown)

	// Untouched abilities keep their stock profiles.
	fireball, ok := sessionCfg.Catalog.Profile(combat.AbilityFireball)
	require.True(t, ok)
	assert.Equal(t, 180, fireball.BaseDamage)

	require.Len(t, sessionCfg.Timeline, 3)
	assert.Equal(t, combat.TimelineEnrage, sessionCfg.Timeline[2].Effect)
}

func TestCatalogRejectsUnknownOverride(t *testing.T) {
	cfg := CombatConfig{Abilities: []AbilityEntry{{ID: "meteor"}}}
	_, err := cfg.Catalog()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown id")
}

func TestTimelineRejectsUnknownEffect(t *testing.T) {
	cfg := CombatConfig{Timeline: []TimelineEntry{{At: 1, Effect: "explode"}}}
	_, err := cfg.TimelineEntries()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown timeline effect")
}
