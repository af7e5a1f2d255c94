package archive

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/inspectreport/pkg/inspection"
	"github.com/matzehuels/inspectreport/pkg/pipeline"
	"github.com/matzehuels/inspectreport/pkg/report"
	"github.com/matzehuels/inspectreport/pkg/report/sink"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

var base = time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

func entry(reportID, vin string, age time.Duration) *Entry {
	meta := pipeline.Meta{ReportID: reportID, FileName: "AIS_Kia_Rio_2022_" + reportID + ".pdf", Score: 80, Pages: 6}
	e := NewEntry(meta, inspection.Vehicle{Make: "Kia", Model: "Rio", Year: "2022", VIN: vin}, sink.PDF, base.Add(-age))
	return e
}

func TestNewEntry(t *testing.T) {
	meta := pipeline.Meta{
		ReportID: "AIS-202604-1234",
		FileName: "AIS_Kia_Rio_2022_AIS-202604-1234.pdf",
		Score:    77,
		Pages:    5,
		Degraded: []report.Degradation{{Section: "Front", Photo: 2, Reason: "too small"}},
	}
	e := NewEntry(meta, inspection.Vehicle{Make: "Kia", Model: "Rio", Year: "2022", VIN: "VIN1"}, sink.PNG, base)
	if _, err := uuid.Parse(e.ID); err != nil {
		t.Errorf("ID %q is not a uuid", e.ID)
	}
	if e.FileName != "AIS_Kia_Rio_2022_AIS-202604-1234.png" || e.Format != "png" {
		t.Errorf("file = %q format = %q", e.FileName, e.Format)
	}
	if e.Vehicle != "2022 Kia Rio" || e.Degraded != 1 || e.Score != 77 {
		t.Errorf("entry = %+v", e)
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()

	older := entry("AIS-202603-1111", "VIN-A", time.Hour)
	newer := entry("AIS-202604-2222", "VIN-A", 0)
	other := entry("AIS-202604-3333", "VIN-B", 30*time.Minute)
	for _, e := range []*Entry{older, newer, other} {
		if err := s.Put(ctx, e, []byte("%PDF-"+e.ReportID)); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	got, data, err := s.Get(ctx, newer.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ReportID != newer.ReportID || !bytes.Equal(data, []byte("%PDF-AIS-202604-2222")) {
		t.Errorf("Get = %+v, %q", got, data)
	}
	if got.Size != int64(len(data)) {
		t.Errorf("Size = %d, want %d", got.Size, len(data))
	}

	all, err := s.List(ctx, Query{})
	if err != nil || len(all) != 3 {
		t.Fatalf("List = %d, %v", len(all), err)
	}
	if all[0].ID != newer.ID || all[2].ID != older.ID {
		t.Error("List should be newest first")
	}

	byVIN, _ := s.List(ctx, Query{VIN: "VIN-A"})
	if len(byVIN) != 2 {
		t.Errorf("VIN filter = %d entries, want 2", len(byVIN))
	}
	byReport, _ := s.List(ctx, Query{ReportID: other.ReportID})
	if len(byReport) != 1 || byReport[0].ID != other.ID {
		t.Errorf("report filter = %+v", byReport)
	}
	limited, _ := s.List(ctx, Query{Limit: 1})
	if len(limited) != 1 {
		t.Errorf("limit = %d entries", len(limited))
	}

	if err := s.Delete(ctx, newer.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, _, err := s.Get(ctx, newer.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, newer.ID); err != nil {
		t.Errorf("second Delete = %v", err)
	}
}

func TestFileStoreRejectsBadIDs(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"", "../etc/passwd", "not-a-uuid"} {
		if _, _, err := s.Get(ctx, id); !errors.Is(err, ErrInvalidID) {
			t.Errorf("Get(%q) = %v, want ErrInvalidID", id, err)
		}
		if err := s.Delete(ctx, id); !errors.Is(err, ErrInvalidID) {
			t.Errorf("Delete(%q) = %v, want ErrInvalidID", id, err)
		}
	}
	if err := s.Put(ctx, &Entry{ID: "../x"}, nil); !errors.Is(err, ErrInvalidID) {
		t.Errorf("Put with bad id = %v", err)
	}
}

func TestFileStoreSkipsCorruptMetadata(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, entry("AIS-202604-4444", "", 0), []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.metaPath(uuid.NewString()), []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	list, err := s.List(ctx, Query{})
	if err != nil || len(list) != 1 {
		t.Errorf("List = %d, %v; want 1 entry", len(list), err)
	}
}

func TestPutAssignsID(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	e := &Entry{ReportID: "AIS-202604-5555"}
	if err := s.Put(context.Background(), e, []byte("abc")); err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(e.ID); err != nil {
		t.Errorf("generated id %q: %v", e.ID, err)
	}
	if e.CreatedAt.IsZero() || e.Size != 3 {
		t.Errorf("entry = %+v", e)
	}
}

func TestMongoStoreConfig(t *testing.T) {
	ctx := context.Background()
	if _, err := NewMongoStore(ctx, MongoConfig{}); !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("empty config err = %v", err)
	}
	_, err := NewMongoStore(ctx, MongoConfig{
		URI:      "mongodb://127.0.0.1:1",
		Database: "test",
		Timeout:  200 * time.Millisecond,
	})
	if !errs.Is(err, errs.ErrCodeStorage) {
		t.Errorf("unreachable server err = %v, want STORAGE_ERROR", err)
	}
}
