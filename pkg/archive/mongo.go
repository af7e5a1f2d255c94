package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

// MongoConfig configures a MongoDB archive.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration // connect and ping timeout
}

// MongoStore keeps entry metadata in a collection and artifact bytes in a
// GridFS bucket named after the collection. Both share the entry id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	bucket *gridfs.Bucket
}

// NewMongoStore connects, pings and ensures the lookup indexes exist.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" || cfg.Database == "" {
		return nil, errs.New(errs.ErrCodeInvalidConfig, "mongo archive needs uri and database")
	}
	if cfg.Collection == "" {
		cfg.Collection = "reports"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.Timeout).
		SetServerSelectionTimeout(cfg.Timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "connect to mongo")
	}
	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "ping mongo")
	}

	db := client.Database(cfg.Database)
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(cfg.Collection))
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "open gridfs bucket")
	}
	s := &MongoStore{client: client, coll: db.Collection(cfg.Collection), bucket: bucket}

	_, err = s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "report_id", Value: 1}}},
		{Keys: bson.D{{Key: "vin", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "create archive indexes")
	}
	return s, nil
}

// Put uploads the bytes to GridFS and then inserts the metadata.
func (s *MongoStore) Put(ctx context.Context, e *Entry, data []byte) error {
	if err := prepare(e, data); err != nil {
		return err
	}
	if err := s.bucket.UploadFromStreamWithID(e.ID, e.FileName, bytes.NewReader(data)); err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "upload artifact %s", e.ID)
	}
	if _, err := s.coll.InsertOne(ctx, e); err != nil {
		_ = s.bucket.Delete(e.ID)
		return errs.Wrap(errs.ErrCodeStorage, err, "insert entry %s", e.ID)
	}
	return nil
}

// Get returns an entry and its bytes.
func (s *MongoStore) Get(ctx context.Context, id string) (*Entry, []byte, error) {
	if err := checkID(id); err != nil {
		return nil, nil, err
	}
	var e Entry
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, errs.Wrap(errs.ErrCodeStorage, err, "find entry %s", id)
	}
	var buf bytes.Buffer
	if _, err := s.bucket.DownloadToStream(id, &buf); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, errs.Wrap(errs.ErrCodeStorage, err, "download artifact %s", id)
	}
	return &e, buf.Bytes(), nil
}

// List returns matching entries, newest first.
func (s *MongoStore) List(ctx context.Context, q Query) ([]Entry, error) {
	filter := bson.M{}
	if q.ReportID != "" {
		filter["report_id"] = q.ReportID
	}
	if q.VIN != "" {
		filter["vin"] = q.VIN
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(q.limit()))
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "list entries")
	}
	var out []Entry
	if err := cur.All(ctx, &out); err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "decode entries")
	}
	return out, nil
}

// Delete removes the metadata and the GridFS file.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "delete entry %s", id)
	}
	if err := s.bucket.Delete(id); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
		return fmt.Errorf("delete artifact %s: %w", id, err)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
