// Command microsim runs the traffic core headlessly: load a config file,
// seed the random source, and call model.Step at a fixed cadence while
// logging periodic one-line summaries (SPEC_FULL §9).
package main

import (
	"context"
	"flag"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/trafficlab/microsim/clock"
	"github.com/trafficlab/microsim/config"
	"github.com/trafficlab/microsim/httpapi"
	"github.com/trafficlab/microsim/model"
	"github.com/trafficlab/microsim/persistence"
	"github.com/trafficlab/microsim/randengine"
)

var (
	configPath = flag.String("config", "", "YAML config file path (required)")
	seed       = flag.Uint64("seed", 1, "seed for the centralized random source")
	steps      = flag.Int("steps", 0, "number of steps to run; 0 means use the config file's steps, <0 means run forever")
	listenAddr = flag.String("http.listen", "", "optional HTTP status/control address, e.g. :8080 (empty disables)")
	mongoURI   = flag.String("mongo.uri", "", "optional mongodb URI to persist the FD history to (empty disables)")

	logLevels = map[string]logrus.Level{
		"trace": logrus.TraceLevel,
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"off":   logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "log level (one of: trace debug info warn error off)")

	log = logrus.WithField("module", "microsim")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}

	if *configPath == "" {
		log.Panic("-config must be specified")
	}
	file, err := config.Load(*configPath)
	if err != nil {
		log.Panicf("config load err: %v", err)
	}
	if err := file.Sim.Validate(); err != nil {
		log.Panicf("invalid simulation config: %v", err)
	}
	log.Infof("loaded config: road_length=%v steps=%v sim=%+v", file.RoadLength, file.Steps, file.Sim)

	numSteps := file.Steps
	if *steps != 0 {
		numSteps = *steps
	}

	rng := randengine.New(*seed)
	m := model.NewModel(file.RoadLength, rng)
	cfg := file.Sim

	var sink persistence.HistorySink = persistence.NoopSink{}
	if *mongoURI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		mongoSink, err := persistence.NewMongoSink(ctx, *mongoURI)
		if err != nil {
			log.Panicf("mongo sink init err: %v", err)
		}
		defer mongoSink.Close(context.Background())
		sink = mongoSink
		log.Infof("persisting fundamental-diagram samples to %s", *mongoURI)
	}

	var mu sync.Mutex

	if *listenAddr != "" {
		server := &http.Server{
			Addr:    *listenAddr,
			Handler: cors.Default().Handler(httpapi.NewHandler(m, &cfg, &mu)),
		}
		go func() {
			log.Infof("http status/control server listening on %s", *listenAddr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Errorf("http server err: %v", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run(ctx, m, &cfg, &mu, sink, numSteps)
}

// run drives Step at the real-time cadence implied by clock.BaseDT,
// logging a summary roughly once a second, until ctx is cancelled or
// numSteps have elapsed (numSteps<0 means run forever). mu also guards the
// optional httpapi handler's access to m, since model.Model is not safe
// for concurrent use (spec §5).
func run(ctx context.Context, m *model.Model, cfg *config.SimulationConfig, mu *sync.Mutex, sink persistence.HistorySink, numSteps int) {
	tickSeconds := clock.BaseDT * float64(time.Second)
	ticker := time.NewTicker(time.Duration(tickSeconds))
	defer ticker.Stop()

	logTimer := 0.0
	for i := 0; numSteps < 0 || i < numSteps; i++ {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return
		case <-ticker.C:
		}
		if cfg.IsPaused {
			continue
		}

		mu.Lock()
		m.Step(*cfg)
		snap := m.Stats()
		sample, sampled := m.LastSample()
		mu.Unlock()
		logTimer += clock.BaseDT * cfg.TimeScale

		if sampled {
			sink.Append(ctx, sample.K, sample.Q)
		}

		if logTimer >= 1.0 {
			logTimer = 0
			log.Infof("count=%d density=%.1fveh/km flow=%.0fveh/h avgSpeed=%.1fkm/h",
				snap.Count, snap.Density, snap.Flow, snap.AvgSpeed)
		}
	}
}
