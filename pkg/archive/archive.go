// Package archive keeps generated reports for later retrieval.
//
// Every generated artifact is stored as an [Entry] (metadata) plus its bytes.
// Two backends are provided:
//   - [FileStore]: JSON metadata and artifact files under a directory, for the CLI
//   - [MongoStore]: metadata in a collection and bytes in GridFS, for the server
//
// # Usage
//
//	store, err := archive.NewFileStore(dir)
//	entry := archive.NewEntry(result.Meta, rec.Vehicle, sink.PDF, now)
//	err = store.Put(ctx, entry, pdf)
//
//	entries, err := store.List(ctx, archive.Query{VIN: "JTMHV05J604123456"})
package archive

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/inspectreport/pkg/inspection"
	"github.com/matzehuels/inspectreport/pkg/pipeline"
	"github.com/matzehuels/inspectreport/pkg/report/sink"
)

// Sentinel errors for archive operations.
var (
	// ErrNotFound is returned when an entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID is returned for ids that are not UUIDs.
	ErrInvalidID = errors.New("invalid entry id")
)

// DefaultLimit caps List results when the query sets no limit.
const DefaultLimit = 50

// Entry describes one archived artifact.
type Entry struct {
	ID        string    `json:"id" bson:"_id"`
	ReportID  string    `json:"report_id" bson:"report_id"`
	FileName  string    `json:"file_name" bson:"file_name"`
	Format    string    `json:"format" bson:"format"`
	Vehicle   string    `json:"vehicle" bson:"vehicle"`
	VIN       string    `json:"vin,omitempty" bson:"vin,omitempty"`
	Score     int       `json:"score" bson:"score"`
	Pages     int       `json:"pages" bson:"pages"`
	Degraded  int       `json:"degraded,omitempty" bson:"degraded,omitempty"`
	Size      int64     `json:"size" bson:"size"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewEntry describes an artifact of format f for the report in meta.
func NewEntry(meta pipeline.Meta, v inspection.Vehicle, f sink.Format, now time.Time) *Entry {
	return &Entry{
		ID:        uuid.NewString(),
		ReportID:  meta.ReportID,
		FileName:  meta.ArtifactName(f),
		Format:    string(f),
		Vehicle:   v.Title(),
		VIN:       v.VIN,
		Score:     meta.Score,
		Pages:     meta.Pages,
		Degraded:  len(meta.Degraded),
		CreatedAt: now.UTC(),
	}
}

// Query filters List. Zero fields match everything.
type Query struct {
	ReportID string
	VIN      string
	Limit    int
}

func (q Query) limit() int {
	if q.Limit <= 0 {
		return DefaultLimit
	}
	return q.Limit
}

func (q Query) match(e *Entry) bool {
	return (q.ReportID == "" || e.ReportID == q.ReportID) && (q.VIN == "" || e.VIN == q.VIN)
}

// Store is the interface for archive backends.
type Store interface {
	// Put stores e and its bytes. A missing e.ID is generated; e.Size is set.
	Put(ctx context.Context, e *Entry, data []byte) error

	// Get returns an entry and its bytes, or ErrNotFound.
	Get(ctx context.Context, id string) (*Entry, []byte, error)

	// List returns matching entries, newest first.
	List(ctx context.Context, q Query) ([]Entry, error)

	// Delete removes an entry. Deleting a missing entry is not an error.
	Delete(ctx context.Context, id string) error

	Close() error
}

// checkID rejects ids that are not UUIDs, which also keeps them safe as
// file names.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

func prepare(e *Entry, data []byte) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if err := checkID(e.ID); err != nil {
		return err
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	e.Size = int64(len(data))
	return nil
}
