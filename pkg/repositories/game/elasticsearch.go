package game

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/fadedpez/blackjack/pkg/entities"
)

const roundMapping = `{
	"mappings": {
		"properties": {
			"round_id": { "type": "keyword" },
			"completed_at": { "type": "date" },
			"dealer_cards": { "type": "integer" },
			"dealer_score": { "type": "integer" },
			"dealer_busted": { "type": "boolean" },
			"total_payout": { "type": "long" },
			"balance_before": { "type": "long" },
			"balance_after": { "type": "long" },
			"hands": {
				"type": "nested",
				"properties": {
					"hand_index": { "type": "integer" },
					"cards": { "type": "integer" },
					"score": { "type": "integer" },
					"wager": { "type": "long" },
					"payout": { "type": "long" },
					"result": { "type": "keyword" },
					"original": { "type": "boolean" },
					"blackjack": { "type": "boolean" },
					"busted": { "type": "boolean" },
					"has_split": { "type": "boolean" },
					"is_doubled_down": { "type": "boolean" },
					"actions": { "type": "keyword" }
				}
			}
		}
	}
}`

// ElasticsearchConfig holds configuration options for the Elasticsearch repository
type ElasticsearchConfig struct {
	URL         string
	Username    string
	Password    string
	IndexPrefix string
	Refresh     bool // Refresh the index after every write, for tests
}

// DefaultElasticsearchConfig returns a default configuration for Elasticsearch
func DefaultElasticsearchConfig() *ElasticsearchConfig {
	return &ElasticsearchConfig{
		URL:         "http://localhost:9200",
		IndexPrefix: "blackjack",
	}
}

// ElasticsearchRepository decorates a base repository, indexing every saved
// round into Elasticsearch. Reads are served by the base repository.
type ElasticsearchRepository struct {
	baseRepo   Repository
	client     *elasticsearch.Client
	config     *ElasticsearchConfig
	roundIndex string

	mu      sync.Mutex
	pending []*entities.RoundRecord // Rounds whose indexing failed
}

// NewElasticsearchRepository creates a new Elasticsearch repository
func NewElasticsearchRepository(ctx context.Context, baseRepo Repository, config *ElasticsearchConfig) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
	}

	// Add authentication if provided
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	if config.IndexPrefix == "" {
		config.IndexPrefix = "blackjack"
	}

	repo := &ElasticsearchRepository{
		baseRepo:   baseRepo,
		client:     client,
		config:     config,
		roundIndex: config.IndexPrefix + "_rounds",
	}

	if err := repo.initIndices(ctx); err != nil {
		return nil, fmt.Errorf("error initializing indices: %w", err)
	}

	return repo, nil
}

// initIndices creates the round index if it doesn't exist
func (r *ElasticsearchRepository) initIndices(ctx context.Context) error {
	res, err := r.client.Indices.Exists([]string{r.roundIndex}, r.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("error checking if round index exists: %w", err)
	}
	res.Body.Close()

	if res.StatusCode != 404 {
		if res.IsError() {
			return fmt.Errorf("error checking if round index exists: %s", res.String())
		}
		return nil
	}

	req := esapi.IndicesCreateRequest{
		Index: r.roundIndex,
		Body:  bytes.NewReader([]byte(roundMapping)),
	}

	res, err = req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("error creating round index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error creating round index: %s", res.String())
	}

	log.Printf("[ES_REPO] Created index %s", r.roundIndex)
	return nil
}

// IndexRoundRecord indexes a round document keyed by the round ID
func (r *ElasticsearchRepository) IndexRoundRecord(ctx context.Context, record *entities.RoundRecord) error {
	jsonData, err := json.Marshal(newESRound(record))
	if err != nil {
		return fmt.Errorf("error marshaling round record: %w", err)
	}

	opts := []func(*esapi.IndexRequest){
		r.client.Index.WithContext(ctx),
		r.client.Index.WithDocumentID(record.ID),
	}
	if r.config.Refresh {
		opts = append(opts, r.client.Index.WithRefresh("true"))
	}

	res, err := r.client.Index(r.roundIndex, bytes.NewReader(jsonData), opts...)
	if err != nil {
		return fmt.Errorf("error indexing round record: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing round record: %s", res.String())
	}

	return nil
}

// SaveRoundRecord saves to the base repository, then indexes the round.
// Index failures are logged and queued for RetryPending; they do not fail the
// save.
func (r *ElasticsearchRepository) SaveRoundRecord(ctx context.Context, record *entities.RoundRecord) error {
	if err := r.baseRepo.SaveRoundRecord(ctx, record); err != nil {
		return fmt.Errorf("error saving round record to base repository: %w", err)
	}

	if err := r.IndexRoundRecord(ctx, record); err != nil {
		log.Printf("[ES_REPO] Failed to index round %s: %v", record.ID, err)
		r.mu.Lock()
		r.pending = append(r.pending, record)
		r.mu.Unlock()
	}
	return nil
}

// RetryPending indexes the queued rounds again and returns how many made it.
// Rounds that still fail stay queued.
func (r *ElasticsearchRepository) RetryPending(ctx context.Context) (int, error) {
	r.mu.Lock()
	queued := r.pending
	r.pending = nil
	r.mu.Unlock()

	indexed := 0
	var failed []*entities.RoundRecord
	var lastErr error
	for _, record := range queued {
		if err := r.IndexRoundRecord(ctx, record); err != nil {
			failed = append(failed, record)
			lastErr = err
			continue
		}
		indexed++
	}

	if len(failed) > 0 {
		r.mu.Lock()
		r.pending = append(failed, r.pending...)
		r.mu.Unlock()
		return indexed, fmt.Errorf("%d rounds still not indexed: %w", len(failed), lastErr)
	}
	return indexed, nil
}

// PendingCount returns the number of rounds waiting to be indexed
func (r *ElasticsearchRepository) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// GetRecentRounds delegates to the base repository
func (r *ElasticsearchRepository) GetRecentRounds(ctx context.Context, limit int) ([]*entities.RoundRecord, error) {
	return r.baseRepo.GetRecentRounds(ctx, limit)
}

// GetStatistics delegates to the base repository
func (r *ElasticsearchRepository) GetStatistics(ctx context.Context) (*entities.PlayerStatistics, error) {
	return r.baseRepo.GetStatistics(ctx)
}

// Close closes the base repository
func (r *ElasticsearchRepository) Close() error {
	return r.baseRepo.Close()
}

// GetIndexName returns the name of the round index
func (r *ElasticsearchRepository) GetIndexName() string {
	return r.roundIndex
}
