package configs

// CapStore selects the frequency-cap store backend. "memory" keeps records
// for the process lifetime only, "redis" shares them across serving
// instances, "sqlite" persists them to a local file.
type CapStore struct {
	Driver string `env:"DRIVER" envDefault:"memory"`
	// SQLitePath is the database file used by the sqlite driver.
	SQLitePath string `env:"SQLITE_PATH" envDefault:"data/display_records.db"`
}
