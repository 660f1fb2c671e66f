// Package persistence provides an optional output-side sink for the
// fundamental-diagram history (spec §4.7): when a host supplies a Mongo
// URI, each aggregated {density, flow} sample is appended to a collection
// for offline analysis, behind a small interface so the core (model)
// package stays storage-agnostic and fully testable without a live Mongo
// instance (SPEC_FULL §10).
package persistence

import (
	"context"
	"time"

	"git.fiblab.net/general/common/v2/mongoutil"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

var log = logrus.WithField("module", "persistence")

// HistorySink receives fundamental-diagram samples as they are aggregated.
// model.Model never depends on this interface directly; the host wires it
// in at the call site (see cmd/microsim).
type HistorySink interface {
	Append(ctx context.Context, density, flow float64)
}

// NoopSink discards every sample; it is the default when no sink is
// configured.
type NoopSink struct{}

func (NoopSink) Append(context.Context, float64, float64) {}

// fdDocument is the BSON shape written to the fd_samples collection.
type fdDocument struct {
	Density   float64   `bson:"density"`
	Flow      float64   `bson:"flow"`
	Timestamp time.Time `bson:"timestamp"`
}

// MongoSink appends every sample to a fd_samples collection in the target
// database, mirroring the teacher's mongoutil.NewClient connection style
// (utils/input/input.go).
type MongoSink struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoSink connects to uri and targets the "microsim" database's
// fd_samples collection.
func NewMongoSink(ctx context.Context, uri string) (*MongoSink, error) {
	client := mongoutil.NewClient(uri)
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return &MongoSink{
		client: client,
		coll:   client.Database("microsim").Collection("fd_samples"),
	}, nil
}

// Append writes one {density, flow} sample. Errors are logged, not
// returned: a dropped history write must never stall the simulation loop.
func (s *MongoSink) Append(ctx context.Context, density, flow float64) {
	_, err := s.coll.InsertOne(ctx, fdDocument{Density: density, Flow: flow, Timestamp: timeNow()})
	if err != nil {
		log.Warnf("fd sample insert failed: %v", err)
	}
}

// Close disconnects the underlying client.
func (s *MongoSink) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// timeNow is a var so tests could substitute it; production always uses
// wall-clock time.
var timeNow = time.Now
