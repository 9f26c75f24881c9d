package config

import (
	"crypto/rand"
	"encoding/hex"

	"go.uber.org/zap"
)

// RootURLRegex is the default base path matched ahead of every route.
const RootURLRegex = "/services/claimshare/1.0"

// RootLogger is the process-wide logger all others derive from.
var RootLogger = newRootLogger()

func newRootLogger() *zap.Logger {
	zcfg := zap.NewProductionConfig()
	zcfg.DisableStacktrace = true
	logger, err := zcfg.Build()
	if err != nil {
		panic(err)
	}
	return logger.With(zap.String("node", RandomID()))
}

// RandomID returns a short random hex identifier, used for session and node
// correlation in logs.
func RandomID() string {
	buf := make([]byte, 8)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
