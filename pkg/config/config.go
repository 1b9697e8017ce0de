// Package config loads the YAML configuration consumed by
// cmd/warren-node's "host serve" and "node serve" subcommands, mirroring
// the teacher's plain-struct-plus-yaml.Unmarshal loading style from
// cmd/warren/apply.go.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NodeConfig is the node server's on-disk configuration.
type NodeConfig struct {
	Host          string `yaml:"host"`
	Port          uint16 `yaml:"port"`
	Certificate   string `yaml:"certificate"`
	PrivateKey    string `yaml:"private_key"`
	P2PServerAddr string `yaml:"p2p_server_addr"`
	TrustAllCerts bool   `yaml:"trust_all_certs"`

	DBPath          string `yaml:"db_path"`
	MempoolCapacity int    `yaml:"mempool_capacity"`
	MaxMempoolDrain int    `yaml:"max_mempool_drain"`
	MetricsAddr     string `yaml:"metrics_addr"`
}

// RendezvousConfig is the rendezvous server's on-disk configuration.
type RendezvousConfig struct {
	Host        string `yaml:"host"`
	Port        uint16 `yaml:"port"`
	Certificate string `yaml:"certificate"`
	PrivateKey  string `yaml:"private_key"`
}

// LoadNodeConfig reads and parses a NodeConfig from path.
func LoadNodeConfig(path string) (*NodeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := &NodeConfig{
		MempoolCapacity: 100,
		MaxMempoolDrain: 100,
		MetricsAddr:     "127.0.0.1:9090",
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadRendezvousConfig reads and parses a RendezvousConfig from path.
func LoadRendezvousConfig(path string) (*RendezvousConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := &RendezvousConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Addr formats host and port as a dial/listen address.
func (c *NodeConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Addr formats host and port as a dial/listen address.
func (c *RendezvousConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
