package badgerfx

import (
	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	// Path to the BadgerDB data directory
	Dir string
	// Keep all data in memory, Dir is ignored
	InMemory bool
	// Log badger info messages at info level instead of debug
	Verbose bool
}

func (c Config) Build() badger.Options {
	if c.InMemory {
		return badger.DefaultOptions("").WithInMemory(true)
	}

	return badger.DefaultOptions(c.Dir)
}

func (c Config) infoLevel() zapcore.Level {
	if c.Verbose {
		return zapcore.InfoLevel
	}
	return zapcore.DebugLevel
}
