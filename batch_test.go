package vmt

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
)

func quietBatchOptions() *BatchOptions {
	logger := log.New()
	logger.SetLevel(log.PanicLevel)
	return &BatchOptions{Logger: logger}
}

func TestRunBatchFresh(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "body.vmt")

	jobs := []Job{{
		OutputPath: path,
		Generated:  NewPatchDocument("body", TemplateOptions{MaterialsPath: "models/crate"}),
		Context:    defaultCtx("body"),
	}}
	results := RunBatch(jobs, quietBatchOptions())

	if len(results) != 1 || results[0].Err != nil || !results[0].Fresh {
		t.Fatalf("unexpected results: %+v", results)
	}

	doc, err := ReadDocument(path, nil)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if v, _ := doc.Replace.Get("$basetexture"); v != "models/crate/body" {
		t.Fatalf("written document wrong: %+v", doc)
	}
}

func TestRunBatchPreservesCustom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "body.vmt")

	existing := NewPatchDocument("body", TemplateOptions{MaterialsPath: "models/crate"})
	existing.Insert.Set("$detailscale", "3") // hand-tuned
	if err := WriteDocument(path, existing, nil); err != nil {
		t.Fatalf("seed: %v", err)
	}

	jobs := []Job{{
		OutputPath: path,
		Generated:  NewPatchDocument("body", TemplateOptions{MaterialsPath: "models/crate", Alpha: BinaryAlpha}),
		Context:    defaultCtx("body"),
	}}
	results := RunBatch(jobs, quietBatchOptions())
	if results[0].Err != nil || results[0].Fresh {
		t.Fatalf("unexpected result: %+v", results[0])
	}

	doc, err := ReadDocument(path, nil)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if v, _ := doc.Insert.Get("$detailscale"); v != "3" {
		t.Fatalf("hand-tuned parameter lost: %+v", doc.Insert.Params())
	}
	if v, _ := doc.Insert.Get("$alphatest"); v != "1" {
		t.Fatalf("new derived parameter missing: %+v", doc.Insert.Params())
	}
}

func TestRunBatchMalformedExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "body.vmt")
	if err := os.WriteFile(path, []byte(`"Shader" { "$key"`), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}

	jobs := []Job{{
		OutputPath: path,
		Generated:  NewPatchDocument("body", TemplateOptions{MaterialsPath: "models/crate"}),
		Context:    defaultCtx("body"),
	}}
	results := RunBatch(jobs, quietBatchOptions())

	res := results[0]
	if res.Err != nil {
		t.Fatalf("malformed existing must not fail the job: %v", res.Err)
	}
	if !res.Fresh || res.Warning == "" {
		t.Fatalf("expected fresh regeneration with warning: %+v", res)
	}

	if _, err := ReadDocument(path, nil); err != nil {
		t.Fatalf("regenerated document unreadable: %v", err)
	}
}

func TestRunBatchSkips(t *testing.T) {
	dir := t.TempDir()

	opt := quietBatchOptions()
	opt.Blocklist = []string{"lod"}
	opt.Exclude = []string{"**/ignored/*.vmt"}

	jobs := []Job{
		{
			OutputPath: filepath.Join(dir, "body_LOD1.vmt"),
			Generated:  NewPatchDocument("body_LOD1", TemplateOptions{MaterialsPath: "m"}),
			Context:    defaultCtx("body_LOD1"),
		},
		{
			OutputPath: filepath.Join(dir, "ignored", "body.vmt"),
			Generated:  NewPatchDocument("body", TemplateOptions{MaterialsPath: "m"}),
			Context:    defaultCtx("body"),
		},
	}
	results := RunBatch(jobs, opt)

	for i, res := range results {
		if !res.Skipped || res.Err != nil {
			t.Fatalf("job %d not skipped: %+v", i, res)
		}
		if _, err := os.Stat(res.Path); !os.IsNotExist(err) {
			t.Fatalf("skipped job %d wrote a file", i)
		}
	}
}

func TestBlocked(t *testing.T) {
	words := []string{"lod", " proxy "}
	tests := []struct {
		name string
		want bool
	}{
		{"body_LOD1", true},
		{"ProxyHelmet", true},
		{"body", false},
	}
	for _, tt := range tests {
		if got := Blocked(tt.name, words); got != tt.want {
			t.Fatalf("Blocked(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	if Blocked("anything", nil) {
		t.Fatalf("empty blocklist must never match")
	}
}

func TestExcluded(t *testing.T) {
	patterns := []string{"**/debug/**", "*.tmp"}
	if !Excluded(filepath.Join("a", "debug", "x.vmt"), patterns) {
		t.Fatalf("directory pattern must match")
	}
	if Excluded("a/materials/x.vmt", patterns) {
		t.Fatalf("unrelated path matched")
	}
}
