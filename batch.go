package vmt

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	log "github.com/sirupsen/logrus"
)

// Job is one texture-to-material conversion unit: the destination document
// path, the freshly generated template, and the classification context for
// merging with whatever already exists at that path.
type Job struct {
	OutputPath string                // Destination .vmt path, also the existing document if present
	Generated  *Document             // Generated template document
	Context    ClassificationContext // Classification inputs for the merge
}

// Result reports the outcome of one processed job. Warning carries
// recoverable per-document conditions (e.g. an unparseable existing file
// that was regenerated from scratch); Err is fatal for this document only.
type Result struct {
	Path    string // Destination path
	Warning string // Recoverable condition, empty if none
	Err     error  // Fatal error for this document, nil on success
	Fresh   bool   // No usable existing document; template written as-is
	Skipped bool   // Job skipped by blocklist or exclude pattern
}

// BatchOptions controls the batch driver.
type BatchOptions struct {
	// Workers is the number of concurrent documents (default 4).
	Workers int
	// Blocklist skips jobs whose base file name contains one of these
	// words, case-insensitively.
	Blocklist []string
	// Exclude skips jobs whose output path matches one of these glob
	// patterns ('**' supported).
	Exclude []string
	// Parse configures parsing of existing documents.
	Parse *ParseOptions
	// Format configures serialization of merged documents.
	Format *FormatOptions
	// Logger receives per-document progress and warnings (default
	// standard logger).
	Logger *log.Logger
}

// normalize normalizes the BatchOptions.
func (o *BatchOptions) normalize() BatchOptions {
	out := BatchOptions{}
	if o != nil {
		out = *o
	}
	if out.Workers <= 0 {
		out.Workers = 4
	}
	if out.Logger == nil {
		out.Logger = log.StandardLogger()
	}

	return out
}

// RunBatch processes jobs concurrently, one document per worker task, and
// returns results in job order. Documents are independent: a failing file
// is reported in its Result and never halts the rest of the batch.
func RunBatch(jobs []Job, opt *BatchOptions) []Result {
	bopt := opt.normalize()
	results := make([]Result, len(jobs))

	idx := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < bopt.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				results[i] = processJob(jobs[i], bopt)
			}
		}()
	}

	for i := range jobs {
		idx <- i
	}
	close(idx)
	wg.Wait()

	for _, res := range results {
		switch {
		case res.Err != nil:
			bopt.Logger.WithField("path", res.Path).Errorf("convert failed: %v", res.Err)
		case res.Warning != "":
			bopt.Logger.WithField("path", res.Path).Warn(res.Warning)
		}
	}

	return results
}

// processJob merges one generated document with the existing file at the
// destination and writes the result atomically.
func processJob(job Job, opt BatchOptions) Result {
	res := Result{Path: job.OutputPath}

	base := strings.TrimSuffix(filepath.Base(job.OutputPath), filepath.Ext(job.OutputPath))
	if Blocked(base, opt.Blocklist) {
		res.Skipped = true
		return res
	}
	if Excluded(job.OutputPath, opt.Exclude) {
		res.Skipped = true
		return res
	}

	existing, warn, err := loadExisting(job.OutputPath, opt.Parse)
	if err != nil {
		res.Err = err
		return res
	}
	res.Warning = warn
	res.Fresh = existing == nil

	merged := Merge(existing, job.Generated, job.Context)
	if err := WriteDocument(job.OutputPath, merged, opt.Format); err != nil {
		res.Err = err
		return res
	}

	return res
}

// loadExisting reads and parses the document currently at path. A missing
// file means first-time generation. A malformed or base-less document is
// treated as absent so the batch regenerates it, with the parse failure
// surfaced as a per-file warning rather than an abort.
func loadExisting(path string, opt *ParseOptions) (*Document, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", nil
		}
		return nil, "", err
	}

	doc, err := Parse(data, opt)
	if err != nil {
		if errors.Is(err, ErrMalformed) || errors.Is(err, ErrMissingInclude) {
			return nil, "existing document unusable, regenerating: " + err.Error(), nil
		}
		return nil, "", err
	}

	return doc, "", nil
}

// Blocked reports whether a base file name contains one of the blocklist
// words, case-insensitively.
func Blocked(baseName string, words []string) bool {
	if len(words) == 0 {
		return false
	}

	lower := strings.ToLower(baseName)
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}

	return false
}

// Excluded reports whether a path matches one of the exclude patterns.
func Excluded(path string, patterns []string) bool {
	norm := filepath.ToSlash(path)
	for _, pat := range patterns {
		if pat == "" {
			continue
		}
		if ok, _ := doublestar.Match(pat, norm); ok {
			return true
		}
	}

	return false
}
