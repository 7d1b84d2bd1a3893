package textquiz

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

// ContentEntryPath is where the content description lives inside an H5P
// package.
const ContentEntryPath = "content/content.json"

// openArchive sniffs the payload before handing it to archive/zip, so that a
// text file renamed to .h5p reports a template problem instead of a generic
// zip error.
func openArchive(template []byte) (*zip.Reader, error) {
	if !mimetype.Detect(template).Is("application/zip") {
		return nil, &TemplateFormatError{Reason: "file is not a zip archive"}
	}
	zr, err := zip.NewReader(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return nil, &ArchiveError{Op: "read", Err: err}
	}
	return zr, nil
}

// readEntry returns the payload of the named entry, reporting whether the
// entry exists at all.
func readEntry(zr *zip.Reader, name string) ([]byte, bool, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, true, &ArchiveError{Op: "read", Err: fmt.Errorf("open %s: %w", name, err)}
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, true, &ArchiveError{Op: "read", Err: fmt.Errorf("read %s: %w", name, err)}
		}
		return data, true, nil
	}
	return nil, false, nil
}

// rewriteArchive copies every entry of zr in its original order into a fresh
// archive, byte for byte, except the entry named replace, whose payload
// becomes the given bytes. Writing to a new buffer means a failure part-way
// through never leaves a half-written archive visible to the caller.
func rewriteArchive(zr *zip.Reader, replace string, payload []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	for _, f := range zr.File {
		data := payload
		if f.Name != replace {
			rc, err := f.Open()
			if err != nil {
				return nil, &ArchiveError{Op: "read", Err: fmt.Errorf("open %s: %w", f.Name, err)}
			}
			data, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return nil, &ArchiveError{Op: "read", Err: fmt.Errorf("read %s: %w", f.Name, err)}
			}
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Comment:  f.Comment,
			Method:   f.Method,
			Modified: f.Modified,
		})
		if err != nil {
			return nil, &ArchiveError{Op: "write", Err: fmt.Errorf("create %s: %w", f.Name, err)}
		}
		if _, err := w.Write(data); err != nil {
			return nil, &ArchiveError{Op: "write", Err: fmt.Errorf("write %s: %w", f.Name, err)}
		}
	}

	if err := zw.Close(); err != nil {
		return nil, &ArchiveError{Op: "write", Err: err}
	}
	return buf.Bytes(), nil
}
