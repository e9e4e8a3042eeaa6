package configs

// Redis holds configuration for the Redis connection. The virtual day, the
// service metrics cache and the moderation verdict cache live here.
type Redis struct {
	// Addr is the host:port of the Redis server.
	Addr string `env:"ADDRESS" envDefault:"localhost:6379"`
	// Password authenticates against the server; empty means no auth.
	Password string `env:"PASSWORD" envDefault:""`
	// DB selects the logical database number.
	DB int `env:"DB" envDefault:"0"`
}
