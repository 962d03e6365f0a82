package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

/*
S3Store is the durable AgentStore. Each agent lives as one JSON document
in the configured bucket, keyed by agent name. Listing orders by creation
time, newest first.
*/
type S3Store struct {
	client *minio.Client
	bucket string
}

// S3Config carries the object-store connection settings.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewS3Store connects to the object store and ensures the bucket exists.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})

	if err != nil {
		return nil, err
	}

	bucket := cfg.Bucket
	if bucket == "" {
		bucket = "agents"
	}

	exists, err := client.BucketExists(ctx, bucket)

	if err != nil {
		return nil, err
	}

	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	log.Info("durable agent store initialized", "bucket", bucket)

	return &S3Store{client: client, bucket: bucket}, nil
}

func (store *S3Store) Save(
	ctx context.Context, def AgentDefinition, agentID string, status AgentStatus,
) (StoredAgent, error) {
	now := time.Now().UTC()
	item := StoredAgent{
		AgentID:    agentID,
		Definition: def,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if existing, ok, err := store.Get(ctx, def.Name); err == nil && ok {
		item.CreatedAt = existing.CreatedAt
	}

	return item, store.put(ctx, item)
}

func (store *S3Store) Get(
	ctx context.Context, name string,
) (StoredAgent, bool, error) {
	obj, err := store.client.GetObject(ctx, store.bucket, name, minio.GetObjectOptions{})

	if err != nil {
		return StoredAgent{}, false, err
	}

	defer obj.Close()

	data, err := io.ReadAll(obj)

	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return StoredAgent{}, false, nil
		}
		return StoredAgent{}, false, err
	}

	var item StoredAgent

	if err := json.Unmarshal(data, &item); err != nil {
		return StoredAgent{}, false, err
	}

	return item, true, nil
}

func (store *S3Store) UpdateStatus(
	ctx context.Context, name string, status AgentStatus, deployError string,
) error {
	item, ok, err := store.Get(ctx, name)

	if err != nil {
		return err
	}

	if !ok {
		return nil
	}

	item.Status = status
	item.Error = deployError
	item.UpdatedAt = time.Now().UTC()

	return store.put(ctx, item)
}

func (store *S3Store) Delete(
	ctx context.Context, name string,
) (bool, error) {
	if _, ok, err := store.Get(ctx, name); err != nil || !ok {
		return false, err
	}

	if err := store.client.RemoveObject(
		ctx, store.bucket, name, minio.RemoveObjectOptions{},
	); err != nil {
		return false, err
	}

	return true, nil
}

func (store *S3Store) List(
	ctx context.Context, page, pageSize int,
) ([]StoredAgent, int, error) {
	var items []StoredAgent

	for info := range store.client.ListObjects(
		ctx, store.bucket, minio.ListObjectsOptions{},
	) {
		if info.Err != nil {
			return nil, 0, info.Err
		}

		item, ok, err := store.Get(ctx, info.Key)

		if err != nil {
			return nil, 0, err
		}

		if ok {
			items = append(items, item)
		}
	}

	sortByCreatedDesc(items)

	return paginate(items, page, pageSize), len(items), nil
}

func (store *S3Store) put(ctx context.Context, item StoredAgent) error {
	data, err := json.Marshal(item)

	if err != nil {
		return err
	}

	_, err = store.client.PutObject(
		ctx, store.bucket, item.Definition.Name,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)

	return err
}
