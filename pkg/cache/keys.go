package cache

import (
	"bytes"

	"github.com/matzehuels/inspectreport/pkg/inspection"
	"github.com/matzehuels/inspectreport/pkg/report/style"
)

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey identifies one rendered output of a record.
	ArtifactKey(recordHash string, opts ArtifactKeyOpts) string

	// ScoreKey identifies the score summary of a record.
	ScoreKey(recordHash string) string
}

// ArtifactKeyOpts lists every input besides the record that changes the
// rendered bytes.
type ArtifactKeyOpts struct {
	Format string      `json:"format"`
	Theme  style.Theme `json:"theme"`
	Scale  float64     `json:"scale,omitempty"`
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(recordHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", recordHash, opts)
}

// ScoreKey returns "score:<recordHash>".
func (DefaultKeyer) ScoreKey(recordHash string) string {
	return "score:" + recordHash
}

// RecordHash fingerprints a record by its canonical JSON encoding, photo
// payloads included.
func RecordHash(rec *inspection.Record) (string, error) {
	var buf bytes.Buffer
	if err := inspection.Write(&buf, rec); err != nil {
		return "", err
	}
	return Hash(buf.Bytes()), nil
}
