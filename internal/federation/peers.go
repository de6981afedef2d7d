package federation

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Peer is a remote pod interested in retraction events
type Peer struct {
	Name     string `yaml:"name"`
	Endpoint string `yaml:"endpoint"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

// peerFile is the embedded YAML document shape
type peerFile struct {
	Peers []Peer `yaml:"peers"`
}

// PeerRegistry holds the known federation peers, loaded from the embedded
// YAML file at startup.
type PeerRegistry struct {
	peers []Peer
	mu    sync.RWMutex
}

// NewPeerRegistry creates a registry from the embedded peers file
func NewPeerRegistry() (*PeerRegistry, error) {
	data, err := configFiles.ReadFile("config/peers.yaml")
	if err != nil {
		return nil, fmt.Errorf("read peers file: %w", err)
	}

	var file peerFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal peers file: %w", err)
	}

	return &PeerRegistry{peers: file.Peers}, nil
}

// Endpoints returns the endpoints of all enabled peers
func (r *PeerRegistry) Endpoints() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	endpoints := make([]string, 0, len(r.peers))
	for _, peer := range r.peers {
		if !peer.Disabled {
			endpoints = append(endpoints, peer.Endpoint)
		}
	}
	return endpoints
}

// Lookup returns the peer with the given name
func (r *PeerRegistry) Lookup(name string) (*Peer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.peers {
		if r.peers[i].Name == name {
			return &r.peers[i], true
		}
	}
	return nil, false
}
