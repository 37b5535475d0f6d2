// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"twigwind/config"
	"twigwind/theme"
	"twigwind/utility"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// RunID identifies program invocation in logs and debug report.
	RunID uuid.UUID

	// used by generate subcommand
	Theme     *theme.Theme
	NoDirs    bool
	Overwrite bool
	Verify    bool
	// CodePage is used for non UTF-8 file names in archives, Charset for
	// documents without proper encoding declaration.
	CodePage encoding.Encoding
	Charset  encoding.Encoding

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// NewGenerator returns fresh generator sharing program theme. Theme is built
// from configuration on first use.
func (e *LocalEnv) NewGenerator() *utility.Generator {
	if e.Theme == nil && e.Cfg != nil {
		e.Theme = e.Cfg.Generator.BuildTheme()
	}
	return utility.New(e.Theme, e.Log)
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
