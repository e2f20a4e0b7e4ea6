package vmt

import (
	"fmt"
	"os"
	"path/filepath"
)

// ReadDocument reads and parses a material document from path.
func ReadDocument(path string, opt *ParseOptions) (*Document, error) {
	return DecodeFile(path, opt)
}

// WriteDocument renders a document and writes it to path atomically.
func WriteDocument(path string, d *Document, opt *FormatOptions) error {
	return EncodeFile(path, d, opt)
}

// writeFileAtomic writes data to a temporary file in the destination
// directory and renames it over path, so readers never observe a partial
// document and a failed write leaves the previous file intact.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}
