// Package config loads the modem's YAML configuration file and supplies
// defaults for it. Of the DSP core's fixed constants, only the bridge and
// tone ring capacities are configurable here; sample rate, samples per
// bit, tone amplitude, idle word and FCS parameters stay fixed in the
// mpt1327 package.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/softtsc/mpt1327modem/mpt1327"
)

// Config is the top-level configuration document.
type Config struct {
	Audio   AudioConfig   `yaml:"audio"`
	Channel ChannelConfig `yaml:"channel"`
	PTT     PTTConfig     `yaml:"ptt"`
	Rig     RigConfig     `yaml:"rig"`
	DNSSD   DNSSDConfig   `yaml:"dns_sd"`
}

// AudioConfig sets the audio callback block size. The sound device is
// not configurable: the PortAudio default input and output are used.
type AudioConfig struct {
	FramesPerBuffer int `yaml:"frames_per_buffer"`
}

// ChannelConfig mirrors mpt1327.ChannelConfig, plus the startup state of
// the rx-to-tx bridge.
type ChannelConfig struct {
	BridgeCapacity int  `yaml:"bridge_capacity"`
	ToneCapacity   int  `yaml:"tone_capacity"`
	BridgeEnabled  bool `yaml:"bridge_enabled"`
}

// PTTConfig names the GPIO line used to key the transmitter. Device is
// empty when PTT control is not wired up (e.g. a loopback test rig).
type PTTConfig struct {
	Device     string `yaml:"device"`
	Offset     int    `yaml:"offset"`
	ActiveHigh bool   `yaml:"active_high"`
}

// RigConfig names the Hamlib model and port used to park the radio on
// its control-channel frequency at startup. ModelID is 0 when no rig
// control is configured.
type RigConfig struct {
	ModelID int     `yaml:"model_id"`
	Port    string  `yaml:"port"`
	FreqHz  float64 `yaml:"freq_hz"`
}

// DNSSDConfig controls mDNS/DNS-SD announcement of the modem's control
// surface. Name is empty when announcement is disabled.
type DNSSDConfig struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

// Defaults returns the configuration that reproduces the fixed literals
// baked into the original implementation, with PTT and rig control left
// unconfigured and DNS-SD announcement enabled under the name
// "MPT1327 Modem" on port 0.
func Defaults() Config {
	return Config{
		Audio: AudioConfig{
			FramesPerBuffer: 1024,
		},
		Channel: ChannelConfig{
			BridgeCapacity: mpt1327.DefaultBridgeCapacity,
			ToneCapacity:   mpt1327.DefaultToneCapacity,
			BridgeEnabled:  false,
		},
		PTT: PTTConfig{}, //nolint:exhaustruct
		Rig: RigConfig{}, //nolint:exhaustruct
		DNSSD: DNSSDConfig{
			Name: "MPT1327 Modem",
			Port: 0,
		},
	}
}

// Load reads and parses path, starting from Defaults so a file that
// only sets a handful of keys still produces a complete Config.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// ToChannelConfig converts the channel section into mpt1327.ChannelConfig.
func (c Config) ToChannelConfig() mpt1327.ChannelConfig {
	return mpt1327.ChannelConfig{
		BridgeCapacity: c.Channel.BridgeCapacity,
		ToneCapacity:   c.Channel.ToneCapacity,
	}
}
