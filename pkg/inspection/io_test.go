package inspection

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
	"testing/fstest"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n0000")

func TestPhotoJSON(t *testing.T) {
	inline := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngHeader)
	input := `{
		"vehicle": {"make": "Honda", "model": "Civic", "year": "2021"},
		"sections": [{"id": "front_exterior", "name": "Front", "condition": "Good",
			"photos": ["` + inline + `", "photos/front.jpg", "data:image/png;base64,!!!"]}],
		"checklist": []
	}`

	rec, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	photos := rec.Sections[0].Photos
	if len(photos) != 3 {
		t.Fatalf("photos = %d, want 3", len(photos))
	}
	if !bytes.Equal(photos[0].Data, pngHeader) {
		t.Error("inline photo not decoded")
	}
	if photos[1].Source != "photos/front.jpg" || photos[1].Data != nil {
		t.Errorf("path photo = %+v", photos[1])
	}
	if photos[2].Err() == nil {
		t.Error("malformed data URL should keep its error")
	}

	fsys := fstest.MapFS{"photos/front.jpg": {Data: []byte("jpeg bytes")}}
	if failed := rec.ResolvePhotos(fsys); len(failed) != 0 {
		t.Errorf("ResolvePhotos() = %v", failed)
	}
	if string(rec.Sections[0].Photos[1].Data) != "jpeg bytes" {
		t.Error("path photo not loaded")
	}
}

func TestResolvePhotosFailures(t *testing.T) {
	rec := &Record{Sections: []PhotoSection{{
		ID:     "engine_bay",
		Photos: []Photo{{Source: "missing.jpg"}, {Source: "../outside.jpg"}},
	}}}

	failed := rec.ResolvePhotos(fstest.MapFS{})
	if len(failed) != 2 {
		t.Fatalf("failures = %d, want 2", len(failed))
	}
	for i, p := range rec.Sections[0].Photos {
		if p.Err() == nil || p.Data != nil {
			t.Errorf("photo %d: want unresolved with error", i)
		}
	}
}

func TestWriteRead(t *testing.T) {
	score := 90
	rec := NewRecord(Vehicle{Make: "Kia", Model: "Sportage", Year: "2022", Mileage: 12500})
	rec.Score = &score
	rec.Sections[0].Photos = []Photo{NewPhoto(pngHeader)}

	var buf bytes.Buffer
	if err := Write(&buf, rec); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if *got.Score != 90 || got.Vehicle.Mileage != 12500 {
		t.Errorf("round trip lost fields: %+v", got.Vehicle)
	}
	if !bytes.Equal(got.Sections[0].Photos[0].Data, pngHeader) {
		t.Error("photo payload lost")
	}
	last := got.Checklist[10].Subsections[0].Items
	if done := last[len(last)-1]; done.WarnOptions == nil {
		t.Error("empty warn list must survive encoding")
	}
}
