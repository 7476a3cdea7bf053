package config

import (
	"net/netip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pce-validator/internal/validator"
)

func writeConfig(t *testing.T, content string) *Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	cfg, err := loadFrom(path)
	require.NoError(t, err)
	return cfg
}

func TestLoadFrom_MissingFile(t *testing.T) {
	cfg, err := loadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "", cfg.DefaultProfile)
	assert.Equal(t, "", cfg.DefaultRegion)
}

func TestLoadFrom_ValidFile(t *testing.T) {
	cfg := writeConfig(t, "default_profile: my-profile\ndefault_region: eu-west-1\n")
	assert.Equal(t, "my-profile", cfg.DefaultProfile)
	assert.Equal(t, "eu-west-1", cfg.DefaultRegion)
}

func TestMerge_CLIFlagsTakePrecedence(t *testing.T) {
	cfg := &Config{DefaultProfile: "config-profile", DefaultRegion: "us-east-1"}

	p, r := cfg.Merge("cli-profile", "ap-south-1")
	assert.Equal(t, "cli-profile", p)
	assert.Equal(t, "ap-south-1", r)

	p, r = cfg.Merge("", "")
	assert.Equal(t, "config-profile", p)
	assert.Equal(t, "us-east-1", r)
}

func TestBuildPolicy_Defaults(t *testing.T) {
	policy, err := (&Config{}).BuildPolicy()
	require.NoError(t, err)
	assert.Equal(t, validator.DefaultPolicy(), policy)
}

func TestBuildPolicy_Overrides(t *testing.T) {
	cfg := writeConfig(t, `
policy:
  private_ranges:
    - 10.0.0.0/8
  initial_port: 5000
  final_port: 5100
  container_cpu: 2048
  container_image: example.com/other:1
`)

	policy, err := cfg.BuildPolicy()
	require.NoError(t, err)
	assert.Equal(t, []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}, policy.PrivateRanges)
	assert.Equal(t, 5000, policy.InitialPort)
	assert.Equal(t, 5100, policy.FinalPort)
	assert.Equal(t, 2048, policy.ContainerCPU)
	// untouched fields keep the defaults
	assert.Equal(t, validator.DefaultContainerMemory, policy.ContainerMemory)
	assert.Equal(t, "example.com/other:1", policy.ContainerImage)
}

func TestBuildPolicy_BadRange(t *testing.T) {
	cfg := &Config{Policy: PolicyConfig{PrivateRanges: []string{"not-a-range"}}}
	_, err := cfg.BuildPolicy()
	require.Error(t, err)
}

func TestBuildPolicy_InvertedPorts(t *testing.T) {
	cfg := &Config{Policy: PolicyConfig{InitialPort: 6000, FinalPort: 5000}}
	_, err := cfg.BuildPolicy()
	require.Error(t, err)
}
