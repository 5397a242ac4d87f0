package deps

import (
	"time"

	"github.com/krishimitra/leafscan/internal/advisory"
	"github.com/krishimitra/leafscan/internal/inference"
	"github.com/krishimitra/leafscan/internal/logger"
	"github.com/krishimitra/leafscan/internal/state"
	redisstore "github.com/krishimitra/leafscan/internal/store/redis"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Orchestrator   *inference.Orchestrator
	Catalog        *advisory.Catalog
	Connectivity   *state.Connectivity
	Store          *redisstore.Store // nil = diagnosis stats disabled
	MaxUploadBytes int64             // multipart upload cap for /analyze
	ProbeTrigger   chan struct{}     // channel to trigger an on-demand backend probe
}
