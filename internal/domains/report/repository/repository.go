package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"garagebook/infras/mongo"
	"garagebook/infras/otel"
	"garagebook/internal/domains/report/model"
	"garagebook/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	mongoDriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
	indexTimeout        = 10 * time.Second
)

// History is the report archive. Without MongoDB every method is a no-op.
type History interface {
	Enabled() bool
	Insert(ctx context.Context, report model.Report) error
	Latest(ctx context.Context) (report model.Report, found bool, err error)
	List(ctx context.Context, limit int) ([]model.Report, error)
}

type mongoHistory struct {
	coll *mongoDriver.Collection
	otel otel.Otel
}

func New(conn *mongo.Connection, otel otel.Otel) History {
	if !conn.Enabled() {
		return disabledHistory{}
	}

	history := &mongoHistory{
		coll: conn.Collection(model.CollectionName),
		otel: otel,
	}

	history.ensureIndexes()

	return history
}

func (h *mongoHistory) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	_, err := h.coll.Indexes().CreateOne(ctx, mongoDriver.IndexModel{
		Keys: bson.D{{Key: model.FieldGeneratedAt, Value: -1}},
	})
	if err != nil {
		log.Error().Err(err).Str("collection", model.CollectionName).Msg("failed to create report index")
	}
}

func (h *mongoHistory) Enabled() bool {
	return true
}

func (h *mongoHistory) Insert(ctx context.Context, report model.Report) error {
	ctx, scope := h.otel.NewScope(ctx, constant.OtelMongoScopeName, constant.OtelMongoScopeName+".report.Insert")
	defer scope.End()

	if _, err := h.coll.InsertOne(ctx, report); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to insert report: %w", err)
	}

	return nil
}

func (h *mongoHistory) Latest(ctx context.Context) (report model.Report, found bool, err error) {
	ctx, scope := h.otel.NewScope(ctx, constant.OtelMongoScopeName, constant.OtelMongoScopeName+".report.Latest")
	defer scope.End()

	opts := options.FindOne().SetSort(bson.D{{Key: model.FieldGeneratedAt, Value: -1}})

	err = h.coll.FindOne(ctx, bson.D{}, opts).Decode(&report)
	if errors.Is(err, mongoDriver.ErrNoDocuments) {
		return report, false, nil
	}

	if err != nil {
		scope.TraceError(err)

		return report, false, fmt.Errorf("failed to get latest report: %w", err)
	}

	return report, true, nil
}

func (h *mongoHistory) List(ctx context.Context, limit int) ([]model.Report, error) {
	ctx, scope := h.otel.NewScope(ctx, constant.OtelMongoScopeName, constant.OtelMongoScopeName+".report.List")
	defer scope.End()

	opts := options.Find().
		SetSort(bson.D{{Key: model.FieldGeneratedAt, Value: -1}}).
		SetLimit(int64(NormalizeLimit(limit)))

	cursor, err := h.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer cursor.Close(ctx)

	reports := []model.Report{}
	if err = cursor.All(ctx, &reports); err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to decode reports: %w", err)
	}

	return reports, nil
}

// NormalizeLimit clamps a requested history size into [1, 200], defaulting to 20.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultHistoryLimit
	case limit > maxHistoryLimit:
		return maxHistoryLimit
	default:
		return limit
	}
}

type disabledHistory struct{}

func (disabledHistory) Enabled() bool {
	return false
}

func (disabledHistory) Insert(_ context.Context, _ model.Report) error {
	return nil
}

func (disabledHistory) Latest(_ context.Context) (model.Report, bool, error) {
	return model.Report{}, false, nil
}

func (disabledHistory) List(_ context.Context, _ int) ([]model.Report, error) {
	return []model.Report{}, nil
}
