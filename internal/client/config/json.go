package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/auctionhouse/internal/flagx"
	"github.com/dmitrijs2005/auctionhouse/internal/timex"
)

// JsonConfig is the on-disk form of Config.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	KeyDir             string         `json:"key_dir"`
	Username           string         `json:"username"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
}

// parseJson overlays values from the file named by -c/-config. Missing
// fields keep their current values. Read or parse errors panic.
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.ConfigPath(args)
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.KeyDir != "" {
		cfg.KeyDir = jc.KeyDir
	}
	if jc.Username != "" {
		cfg.Username = jc.Username
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
