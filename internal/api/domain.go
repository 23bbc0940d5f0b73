package api

import (
	"github.com/sigmacoders/guardian/internal/children"
	"github.com/sigmacoders/guardian/internal/classifier"
	"github.com/sigmacoders/guardian/internal/credentials"
	"github.com/sigmacoders/guardian/internal/enrichment"
	"github.com/sigmacoders/guardian/internal/pipeline"
	"github.com/sigmacoders/guardian/internal/scheduler"
	"github.com/sigmacoders/guardian/internal/scoring"
	"github.com/sigmacoders/guardian/internal/usage"
	"github.com/sigmacoders/guardian/internal/videolog"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Children  children.System
	Usage     usage.System
	VideoLogs videolog.System
	Pipeline  *pipeline.Pipeline
	Scheduler *scheduler.Scheduler
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()
	cfg := runtime.Config

	childSys := children.New(db, runtime.Logger, runtime.Pagination)

	usageSys := usage.New(
		db,
		runtime.Storage,
		childSys,
		usage.DefaultCategorizer(),
		runtime.Logger,
	)

	videoLogSys := videolog.New(db, runtime.Logger, runtime.Pagination)

	creds := credentials.New(db, runtime.Logger)

	scoringClient := scoring.NewClient(&cfg.Scoring, childSys, runtime.Logger)
	classifierClient := classifier.NewClient(&cfg.Classifier, creds, runtime.Logger)
	enricher := enrichment.NewClient(&cfg.YouTube, creds, runtime.Logger)

	pipe := pipeline.New(
		runtime.Lifecycle.Context(),
		classifierClient,
		enricher,
		videoLogSys,
		runtime.Logger,
	)

	sched := scheduler.New(
		runtime.Lifecycle.Context(),
		&cfg.Scheduler,
		usageSys,
		scoringClient,
		childSys,
		runtime.Logger,
	)

	return &Domain{
		Children:  childSys,
		Usage:     usageSys,
		VideoLogs: videoLogSys,
		Pipeline:  pipe,
		Scheduler: sched,
	}
}
