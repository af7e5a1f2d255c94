package inspection

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

// Read decodes a record from r. Photo paths are left unresolved.
func Read(r io.Reader) (*Record, error) {
	var rec Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidRecord, err, "decode record")
	}
	return &rec, nil
}

// ReadFile reads a record and resolves photo paths relative to the file's
// directory. Photos that cannot be loaded are returned as warnings; they are
// rendered as placeholders.
func ReadFile(path string) (*Record, []error, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "record %s", path)
	}
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rec, err := Read(f)
	if err != nil {
		return nil, nil, err
	}
	warnings := rec.ResolvePhotos(os.DirFS(filepath.Dir(path)))
	return rec, warnings, nil
}

// Write encodes rec as indented JSON.
func Write(w io.Writer, rec *Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// WriteFile writes rec to path.
func WriteFile(path string, rec *Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, rec); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
