package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
)

// tablePartition is the partition key of every dropdeck entity.
const tablePartition = "dropdeck"

// TableStore persists each key as an entity of an Azure Storage table.
// Table properties are limited to 64KiB, which bounds the size of a collection.
type TableStore struct {
	client *aztables.Client
}

// OpenTable connects to table in the storage account of connStr, creating
// the table if it does not exist yet.
func OpenTable(ctx context.Context, connStr, table string) (*TableStore, error) {
	if connStr == "" || table == "" {
		return nil, errors.New("aztables store: missing connection string or table name")
	}
	opts := aztables.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{
				MaxRetries:    3,
				TryTimeout:    time.Minute,
				RetryDelay:    time.Second,
				MaxRetryDelay: 15 * time.Second,
				StatusCodes:   []int{408, 429, 500, 502, 503, 504},
			},
		},
	}
	svc, err := aztables.NewServiceClientFromConnectionString(connStr, &opts)
	if err != nil {
		return nil, fmt.Errorf("table service: %w", err)
	}
	client := svc.NewClient(table)
	if _, err := client.CreateTable(ctx, nil); err != nil && !hasStatus(err, http.StatusConflict) {
		return nil, fmt.Errorf("create table %q: %w", table, err)
	}
	return &TableStore{client: client}, nil
}

// valueEntity is the stored form of a key.
type valueEntity struct {
	aztables.Entity
	Value string `json:"Value"`
}

func (s *TableStore) Get(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.client.GetEntity(ctx, tablePartition, key, nil)
	if hasStatus(err, http.StatusNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get entity %q: %w", key, err)
	}
	var ent valueEntity
	if err := json.Unmarshal(resp.Value, &ent); err != nil {
		return nil, fmt.Errorf("decode entity %q: %w", key, err)
	}
	return []byte(ent.Value), nil
}

func (s *TableStore) Put(ctx context.Context, key string, value []byte) error {
	data, err := json.Marshal(map[string]any{
		"PartitionKey": tablePartition,
		"RowKey":       key,
		"Value":        string(value),
	})
	if err != nil {
		return err
	}
	_, err = s.client.UpsertEntity(ctx, data, &aztables.UpsertEntityOptions{UpdateMode: aztables.UpdateModeReplace})
	if err != nil {
		return fmt.Errorf("upsert entity %q: %w", key, err)
	}
	return nil
}

// Close does nothing, the table client holds no connection.
func (s *TableStore) Close() error { return nil }

// hasStatus reports whether err is an Azure response error with the given HTTP status.
func hasStatus(err error, status int) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == status
}
