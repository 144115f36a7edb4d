package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/placementcell/go-talent/internal/domain"
)

// ProfileDocument is the search-facing projection of one synced
// platform profile. Recruiters filter candidates on these fields;
// platform metadata stays in Postgres.
type ProfileDocument struct {
	CandidateID    string    `json:"candidate_id"`
	Platform       string    `json:"platform"`
	Username       string    `json:"username"`
	ProfileURL     string    `json:"profile_url"`
	Rating         int       `json:"rating"`
	ProblemsSolved int       `json:"problems_solved"`
	SyncedAt       time.Time `json:"synced_at"`
}

// DocumentFor projects normalized stats into a search document
func DocumentFor(candidateID string, stats *domain.PlatformStats) ProfileDocument {
	return ProfileDocument{
		CandidateID:    candidateID,
		Platform:       string(stats.Platform),
		Username:       stats.Username,
		ProfileURL:     stats.ProfileURL,
		Rating:         stats.Rating,
		ProblemsSolved: stats.ProblemsSolved,
		SyncedAt:       stats.SyncedAt,
	}
}

// ID returns the document identity; one doc per candidate+platform
// pair, so re-indexing overwrites
func (d ProfileDocument) ID() string {
	return d.CandidateID + ":" + d.Platform
}

// ProfileIndexer indexes synced profiles to Elasticsearch
type ProfileIndexer struct {
	client    *elasticsearch.Client
	indexName string
}

// NewProfileIndexer creates a new Elasticsearch profile indexer
func NewProfileIndexer(addresses []string, indexName string) (*ProfileIndexer, error) {
	cfg := elasticsearch.Config{
		Addresses: addresses,
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create es client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("es info: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("es error: %s", res.Status())
	}

	return &ProfileIndexer{
		client:    client,
		indexName: indexName,
	}, nil
}

// EnsureIndex creates the profiles index if it doesn't exist
func (i *ProfileIndexer) EnsureIndex(ctx context.Context) error {
	res, err := i.client.Indices.Exists([]string{i.indexName})
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	res.Body.Close()

	if res.StatusCode == 200 {
		return nil
	}

	mapping := `{
		"mappings": {
			"properties": {
				"candidate_id": {"type": "keyword"},
				"platform": {"type": "keyword"},
				"username": {"type": "keyword"},
				"profile_url": {"type": "keyword"},
				"rating": {"type": "integer"},
				"problems_solved": {"type": "integer"},
				"synced_at": {"type": "date"}
			}
		}
	}`

	res, err = i.client.Indices.Create(
		i.indexName,
		i.client.Indices.Create.WithBody(bytes.NewReader([]byte(mapping))),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("create index error: %s", res.Status())
	}

	return nil
}

// BulkIndex indexes multiple profile documents at once
func (i *ProfileIndexer) BulkIndex(ctx context.Context, docs []ProfileDocument) error {
	if len(docs) == 0 {
		return nil
	}

	var buf bytes.Buffer

	for _, doc := range docs {
		meta := map[string]any{
			"index": map[string]any{
				"_index": i.indexName,
				"_id":    doc.ID(),
			},
		}
		metaBytes, _ := json.Marshal(meta)
		buf.Write(metaBytes)
		buf.WriteByte('\n')

		docBytes, err := json.Marshal(doc)
		if err != nil {
			log.Printf("marshal profile %s: %v", doc.ID(), err)
			continue
		}
		buf.Write(docBytes)
		buf.WriteByte('\n')
	}

	res, err := i.client.Bulk(bytes.NewReader(buf.Bytes()), i.client.Bulk.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("bulk request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk error: %s", res.Status())
	}

	var bulkRes struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				ID     string `json:"_id"`
				Status int    `json:"status"`
				Error  struct {
					Type   string `json:"type"`
					Reason string `json:"reason"`
				} `json:"error"`
			} `json:"index"`
		} `json:"items"`
	}

	if err := json.NewDecoder(res.Body).Decode(&bulkRes); err != nil {
		return fmt.Errorf("parse bulk response: %w", err)
	}

	if bulkRes.Errors {
		for _, item := range bulkRes.Items {
			if item.Index.Status >= 400 {
				log.Printf("bulk index error for %s: %s - %s",
					item.Index.ID, item.Index.Error.Type, item.Index.Error.Reason)
			}
		}
	}

	return nil
}
