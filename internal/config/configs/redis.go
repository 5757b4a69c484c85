package configs

// Redis holds connection settings for the redis-backed frequency cap
// store. It is only consulted when the cap store driver is "redis".
type Redis struct {
	// Addr is the host:port of the redis server.
	Addr string `env:"ADDR" envDefault:"localhost:6379"`
	// Password is the optional server password.
	Password string `env:"PASSWORD" envDefault:""`
	// DB selects the redis logical database.
	DB int `env:"DB" envDefault:"0"`
}
