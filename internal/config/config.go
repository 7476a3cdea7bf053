package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pce-validator/internal/validator"
)

// Config holds optional defaults loaded from
// ~/.config/pce-validator/config.yaml.
type Config struct {
	DefaultProfile string       `yaml:"default_profile"`
	DefaultRegion  string       `yaml:"default_region"`
	Policy         PolicyConfig `yaml:"policy"`
}

// PolicyConfig overrides the standard validation values. Zero fields
// keep the defaults.
type PolicyConfig struct {
	PrivateRanges   []string `yaml:"private_ranges"`
	InitialPort     int      `yaml:"initial_port"`
	FinalPort       int      `yaml:"final_port"`
	ContainerCPU    int      `yaml:"container_cpu"`
	ContainerMemory int      `yaml:"container_memory"`
	ContainerImage  string   `yaml:"container_image"`
}

// Load reads the config file. Returns zero-value Config if the file doesn't exist.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return &Config{}, nil
	}
	return loadFrom(filepath.Join(home, ".config", "pce-validator", "config.yaml"))
}

func loadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Merge applies CLI flag overrides. Flags take precedence over config defaults.
func (c *Config) Merge(profile, region string) (string, string) {
	p := c.DefaultProfile
	if profile != "" {
		p = profile
	}
	r := c.DefaultRegion
	if region != "" {
		r = region
	}
	return p, r
}

// BuildPolicy merges the config overrides onto the default policy.
func (c *Config) BuildPolicy() (validator.Policy, error) {
	policy := validator.DefaultPolicy()

	if len(c.Policy.PrivateRanges) > 0 {
		ranges := make([]netip.Prefix, 0, len(c.Policy.PrivateRanges))
		for _, raw := range c.Policy.PrivateRanges {
			prefix, err := netip.ParsePrefix(raw)
			if err != nil {
				return validator.Policy{}, fmt.Errorf("parsing private range %q: %w", raw, err)
			}
			ranges = append(ranges, prefix)
		}
		policy.PrivateRanges = ranges
	}
	if c.Policy.InitialPort != 0 {
		policy.InitialPort = c.Policy.InitialPort
	}
	if c.Policy.FinalPort != 0 {
		policy.FinalPort = c.Policy.FinalPort
	}
	if policy.InitialPort > policy.FinalPort {
		return validator.Policy{}, fmt.Errorf("port interval [%d, %d] is inverted",
			policy.InitialPort, policy.FinalPort)
	}
	if c.Policy.ContainerCPU != 0 {
		policy.ContainerCPU = c.Policy.ContainerCPU
	}
	if c.Policy.ContainerMemory != 0 {
		policy.ContainerMemory = c.Policy.ContainerMemory
	}
	if c.Policy.ContainerImage != "" {
		policy.ContainerImage = c.Policy.ContainerImage
	}
	return policy, nil
}
