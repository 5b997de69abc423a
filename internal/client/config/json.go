package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mbelov/microblog/internal/flagx"
	"github.com/mbelov/microblog/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so JSON can specify the timeout either as a string
// like "10s" or as integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file. The
// file path comes from the -c/-config flags via flagx.JsonConfigFlags;
// when no path is given nothing is loaded. Read and unmarshal errors
// panic, matching the flag stage.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
}
