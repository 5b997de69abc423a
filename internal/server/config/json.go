package config

import (
	"encoding/json"
	"os"

	"github.com/mbelov/microblog/internal/flagx"
	"github.com/mbelov/microblog/internal/timex"
)

// JsonConfig mirrors Config for JSON unmarshalling. It uses
// timex.Duration for the interval field, which parses both string values
// such as "12h" and integer nanoseconds. After unmarshalling, its fields
// are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	BcryptCost            int            `json:"bcrypt_cost"`
}

// parseJson loads configuration values from an optional JSON file into
// the provided Config.
//
// The file path comes from the -c or -config command-line flags; when
// neither is set, no JSON file is loaded. An unreadable file or invalid
// JSON panics, as a broken explicit config should stop startup.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.TokenValidityDuration = c.TokenValidityDuration.Duration
	config.BcryptCost = c.BcryptCost
}
