/*
Package config loads NodeConfig and RendezvousConfig from YAML files:
host/port/certificate/private_key plus node-specific peer and storage
settings. Loading is a thin os.ReadFile plus yaml.Unmarshal, matching
the teacher's own configuration-file handling.
*/
package config
