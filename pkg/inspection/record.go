package inspection

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

// DateLayout is the layout of Vehicle.Date.
const DateLayout = "2006-01-02"

// Condition is the inspector's rating of one photographed section.
type Condition string

// Conditions in descending order of quality.
const (
	Excellent Condition = "Excellent"
	Good      Condition = "Good"
	Fair      Condition = "Fair"
	Poor      Condition = "Poor"
)

// Conditions lists every valid condition, best first.
func Conditions() []Condition {
	return []Condition{Excellent, Good, Fair, Poor}
}

// Valid reports whether c is one of the four known conditions.
func (c Condition) Valid() bool {
	switch c {
	case Excellent, Good, Fair, Poor:
		return true
	}
	return false
}

// Label returns the display label, "Not rated" for an empty condition.
func (c Condition) Label() string {
	if c == "" {
		return "Not rated"
	}
	return string(c)
}

// Vehicle holds the identifying data printed on the cover.
type Vehicle struct {
	Make      string `json:"make"`
	Model     string `json:"model"`
	Year      string `json:"year"`
	VIN       string `json:"vin,omitempty"`
	Mileage   int    `json:"mileage,omitempty"` // kilometres, 0 when unknown
	Inspector string `json:"inspector,omitempty"`
	Date      string `json:"date,omitempty"` // YYYY-MM-DD
}

// InspectionDate parses Date. ok is false when Date is empty or malformed.
func (v Vehicle) InspectionDate() (t time.Time, ok bool) {
	if v.Date == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, v.Date)
	return t, err == nil
}

// Title returns "Year Make Model" with empty parts skipped.
func (v Vehicle) Title() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{v.Year, v.Make, v.Model} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Record is one completed inspection.
type Record struct {
	Vehicle   Vehicle             `json:"vehicle"`
	Sections  []PhotoSection      `json:"sections"`
	Checklist []ChecklistCategory `json:"checklist"`

	// Score is the overall condition score in [0,100]. When nil the caller
	// derives one with a Scorer before rendering.
	Score *int `json:"score,omitempty"`
}

// PhotoSection is one photographed area of the vehicle.
type PhotoSection struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon,omitempty"`
	Condition Condition `json:"condition,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Photos    []Photo   `json:"photos,omitempty"`
}

// Photo is one raster payload. Data holds the encoded image bytes; Source is
// the record-relative path the payload was loaded from, if any.
//
// A photo that could not be loaded keeps a nil Data and reports the reason
// through Err. Such photos are drawn as placeholders rather than failing the
// report.
type Photo struct {
	Data   []byte
	Source string
	err    error
}

// NewPhoto returns an inline photo.
func NewPhoto(data []byte) Photo {
	return Photo{Data: data}
}

// Err returns the reason the payload could not be loaded, or nil.
func (p Photo) Err() error {
	return p.err
}

// MarshalJSON writes a path reference for unresolved file photos and a data
// URL otherwise.
func (p Photo) MarshalJSON() ([]byte, error) {
	if p.Data == nil && p.Source != "" {
		return json.Marshal(p.Source)
	}
	mime := http.DetectContentType(p.Data)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return json.Marshal("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(p.Data))
}

// UnmarshalJSON accepts a data URL or a record-relative file path.
// A malformed data URL is not an error: the photo keeps the reason and is
// later rendered as a placeholder.
func (p *Photo) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("photo must be a string: %w", err)
	}
	*p = Photo{}
	if !strings.HasPrefix(s, "data:") {
		p.Source = s
		return nil
	}
	data, err := decodeDataURL(s)
	if err != nil {
		p.err = err
		return nil
	}
	p.Data = data
	return nil
}

func decodeDataURL(s string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("data URL has no payload")
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("data URL: %w", err)
		}
		return data, nil
	}
	unescaped, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("data URL: %w", err)
	}
	return []byte(unescaped), nil
}

// ResolvePhotos loads every path-referenced photo from fsys. Photos that
// cannot be loaded keep their reason (see Photo.Err) and the failures are
// returned for logging; they never abort loading the record.
func (r *Record) ResolvePhotos(fsys fs.FS) []error {
	var failed []error
	for si := range r.Sections {
		sec := &r.Sections[si]
		for pi := range sec.Photos {
			p := &sec.Photos[pi]
			if p.Data != nil || p.Source == "" {
				continue
			}
			if err := p.load(fsys); err != nil {
				p.err = err
				failed = append(failed, fmt.Errorf("section %s photo %d: %w", sec.ID, pi+1, err))
			}
		}
	}
	return failed
}

func (p *Photo) load(fsys fs.FS) error {
	if err := errs.ValidatePath(p.Source); err != nil {
		return err
	}
	data, err := fs.ReadFile(fsys, p.Source)
	if err != nil {
		return errs.Wrap(errs.ErrCodeFileNotFound, err, "read %s", p.Source)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%s is empty", p.Source)
	}
	p.Data = data
	return nil
}

// PhotoCount returns the number of photos across all sections.
func (r *Record) PhotoCount() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Photos)
	}
	return n
}
