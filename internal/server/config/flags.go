package config

import (
	"flag"
	"os"
	"time"

	"github.com/mbelov/microblog/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line
// flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, hours
//	-w int      bcrypt cost for password hashing
//
// Arguments are first filtered with flagx.FilterArgs so this flag set
// never collides with flags owned by other components. The token
// validity is accepted as an integer hour count and converted to a
// time.Duration.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidityDuration := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token_validity_duration (in hours)")

	fs.IntVar(&config.BcryptCost, "w", config.BcryptCost, "bcrypt cost")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidityDuration) * time.Hour
}
