package pipeline

import (
	"context"
	"fmt"
	"io"
	"io/fs"

	"github.com/matzehuels/inspectreport/pkg/inspection"
)

// Parse reads a record file and resolves photo paths relative to it.
// Photos that cannot be read are returned as warnings; the report renders
// placeholders for them.
func Parse(ctx context.Context, path string) (*inspection.Record, []error, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return inspection.ReadFile(path)
}

// ParseReader reads a record from r. Photo paths resolve against fsys; a nil
// fsys leaves them unresolved, which renders them as placeholders.
func ParseReader(ctx context.Context, r io.Reader, fsys fs.FS) (*inspection.Record, []error, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	rec, err := inspection.Read(r)
	if err != nil {
		return nil, nil, err
	}
	if fsys == nil {
		return rec, unresolved(rec), nil
	}
	return rec, rec.ResolvePhotos(fsys), nil
}

// unresolved lists path-referenced photos that no filesystem can serve.
func unresolved(rec *inspection.Record) []error {
	var out []error
	for _, sec := range rec.Sections {
		for i, p := range sec.Photos {
			if p.Data == nil && p.Source != "" {
				out = append(out, fmt.Errorf("section %s photo %d: path %q not available", sec.ID, i+1, p.Source))
			}
		}
	}
	return out
}

func countPhotos(rec *inspection.Record) int {
	n := 0
	for _, sec := range rec.Sections {
		n += len(sec.Photos)
	}
	return n
}
