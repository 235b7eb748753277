package qdrantDB

import (
	"context"
	"errors"
	"fmt"

	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/akolanti/cogcompanion/pkg/logger_i"
	"github.com/qdrant/go-client/qdrant"
)

const (
	payloadText   = "text"
	payloadDomain = "domain"
	payloadSource = "source"
	payloadKey    = "key"
)

type ClientHolder struct {
	QObj       *qdrant.Client
	collection string
	logger     *logger_i.Logger
}

func GetQdrantClient(ctx context.Context, qc config.QdrantConfig) (*ClientHolder, error) {
	if qc.Collection == "" {
		return nil, errors.New("empty collection name")
	}
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:          qc.Host,
		Port:          qc.Port,
		APIKey:        qc.APIKey,
		UseTLS:        qc.UseTLS,
		PoolSize:      uint(config.QdrantPoolSize),
		KeepAliveTime: int(config.QdrantKeepAliveTimeout.Seconds()),
	})
	if err != nil {
		return nil, fmt.Errorf("could not instantiate qdrant client: %w", err)
	}

	logger := logger_i.NewLogger("Qdrant")
	logger.Info("Qdrant client created", "host", qc.Host, "collection", qc.Collection)
	go closeQdrant(ctx, client, logger)

	return &ClientHolder{QObj: client, collection: qc.Collection, logger: logger}, nil
}

func closeQdrant(ctx context.Context, qi *qdrant.Client, logger *logger_i.Logger) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	if err := qi.Close(); err != nil {
		logger.Error("could not close Qdrant", "error", err)
	}
}

func (db *ClientHolder) Exists(ctx context.Context) (bool, error) {
	return db.QObj.CollectionExists(ctx, db.collection)
}

func (db *ClientHolder) Create(ctx context.Context, dimension int) error {
	db.logger.Info("Creating collection", "collection", db.collection, "dimension", dimension)
	return db.QObj.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: db.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dimension),
			Distance: qdrant.Distance_Cosine,
		}),
	})
}

func (db *ClientHolder) Dimension(ctx context.Context) (int, error) {
	info, err := db.QObj.GetCollectionInfo(ctx, db.collection)
	if err != nil {
		return 0, err
	}
	params := info.GetConfig().GetParams().GetVectorsConfig().GetParams()
	if params == nil {
		return 0, fmt.Errorf("collection %q has no single unnamed vector config", db.collection)
	}
	return int(params.GetSize()), nil
}

func (db *ClientHolder) Upsert(ctx context.Context, points []commonModels.IndexedPoint) error {
	if len(points) == 0 {
		return nil
	}
	qdrantPoints := make([]*qdrant.PointStruct, len(points))
	for i, p := range points {
		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(p.Id),
			Vectors: qdrant.NewVectors(p.Vector...),
			Payload: qdrant.NewValueMap(map[string]any{
				payloadText:   p.Content,
				payloadDomain: p.Metadata.Domain,
				payloadSource: p.Metadata.Source,
				payloadKey:    p.Metadata.Key,
			}),
		}
	}

	_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: db.collection,
		Points:         qdrantPoints,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

func (db *ClientHolder) Search(ctx context.Context, vector []float32, k int, threshold float32) ([]commonModels.SearchResult, error) {
	log := db.logger.WithContext(ctx, config.TRACE_ID_KEY)
	result, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: db.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(k)),
		ScoreThreshold: qdrant.PtrOf(threshold),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		log.Error("Error querying Qdrant", "error", err)
		return nil, err
	}

	results := make([]commonModels.SearchResult, 0, len(result))
	for _, hit := range result {
		results = append(results, toResult(hit.GetId(), hit.GetPayload(), hit.GetScore()))
	}
	log.Debug("Found matches", "count", len(results), "threshold", threshold)
	return results, nil
}

func (db *ClientHolder) SearchByDomain(ctx context.Context, domain string, limit int) ([]commonModels.SearchResult, error) {
	points, err := db.QObj.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: db.collection,
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{qdrant.NewMatch(payloadDomain, domain)},
		},
		Limit:       qdrant.PtrOf(uint32(limit)),
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, err
	}
	results := make([]commonModels.SearchResult, 0, len(points))
	for _, p := range points {
		results = append(results, toResult(p.GetId(), p.GetPayload(), 0))
	}
	return results, nil
}

func (db *ClientHolder) Count(ctx context.Context) (uint64, error) {
	return db.QObj.Count(ctx, &qdrant.CountPoints{
		CollectionName: db.collection,
		Exact:          qdrant.PtrOf(true),
	})
}

func toResult(id *qdrant.PointId, payload map[string]*qdrant.Value, score float32) commonModels.SearchResult {
	return commonModels.SearchResult{
		Id:      id.GetNum(),
		Content: payload[payloadText].GetStringValue(),
		Metadata: commonModels.Metadata{
			Domain: payload[payloadDomain].GetStringValue(),
			Source: payload[payloadSource].GetStringValue(),
			Key:    payload[payloadKey].GetStringValue(),
		},
		Similarity: score,
	}
}
