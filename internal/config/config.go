package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hersh/termtris/internal/game"
	"github.com/spf13/viper"
)

// Keys shared by flags, environment variables and the config file.
const (
	KeyWidth        = "width"
	KeyHeight       = "height"
	KeySeed         = "seed"
	KeyRandomizer   = "randomizer"
	KeySpectateAddr = "spectate_addr"
	KeyLogFile      = "log_file"
	KeyServer       = "server"
)

const (
	RandomizerDice = "dice"
	RandomizerBag  = "bag"

	DefaultWidth  = 10
	DefaultHeight = 20
	DefaultServer = "ws://localhost:8080/ws"

	// The I piece spawns flat from one column left of center to two right
	// of it, and the square spans two rows.
	MinWidth  = 5
	MinHeight = 2

	// Snapshots of the largest board still fit a watcher's read limit.
	MaxWidth  = 100
	MaxHeight = 100

	envPrefix = "TERMTRIS"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Width        int
	Height       int
	Seed         int64
	Randomizer   string
	SpectateAddr string
	LogFile      string
	Server       string
}

// New returns a viper instance with defaults, TERMTRIS_ environment
// variables and the termtris.yaml search path set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyWidth, DefaultWidth)
	v.SetDefault(KeyHeight, DefaultHeight)
	v.SetDefault(KeySeed, 0)
	v.SetDefault(KeyRandomizer, RandomizerDice)
	v.SetDefault(KeySpectateAddr, "")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyServer, DefaultServer)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("termtris")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "termtris"))
	}
	return v
}

// Load reads the config file if there is one and validates the result.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	c := Config{
		Width:        v.GetInt(KeyWidth),
		Height:       v.GetInt(KeyHeight),
		Seed:         v.GetInt64(KeySeed),
		Randomizer:   strings.ToLower(v.GetString(KeyRandomizer)),
		SpectateAddr: v.GetString(KeySpectateAddr),
		LogFile:      v.GetString(KeyLogFile),
		Server:       v.GetString(KeyServer),
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.Width < MinWidth || c.Width > MaxWidth {
		return fmt.Errorf("%w: width %d is outside %d..%d", ErrInvalid, c.Width, MinWidth, MaxWidth)
	}
	if c.Height < MinHeight || c.Height > MaxHeight {
		return fmt.Errorf("%w: height %d is outside %d..%d", ErrInvalid, c.Height, MinHeight, MaxHeight)
	}
	switch c.Randomizer {
	case RandomizerDice, RandomizerBag:
	default:
		return fmt.Errorf("%w: randomizer must be %q or %q, got %q", ErrInvalid, RandomizerDice, RandomizerBag, c.Randomizer)
	}
	return nil
}

// Generator builds the piece source selected by Randomizer.
func (c Config) Generator() game.PieceGenerator {
	if c.Randomizer == RandomizerBag {
		return game.NewBagGenerator(c.Seed)
	}
	return game.NewDiceGenerator(c.Seed)
}
