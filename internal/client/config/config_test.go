package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, ".auctionhouse", c.KeyDir)
	assert.Empty(t, c.Username)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}

func TestLoad_FlagsOverrideJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"server_endpoint_addr": "json:1",
		"username":             "alice",
	})

	cfg := load([]string{"-c", path, "-a", "flag:2", "bid"})

	assert.Equal(t, "flag:2", cfg.ServerEndpointAddr)
	assert.Equal(t, "alice", cfg.Username)
	assert.Equal(t, ".auctionhouse", cfg.KeyDir)
}
