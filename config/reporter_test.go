package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, name string) map[string]string {
	t.Helper()

	zr, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	files := make(map[string]string)
	for _, f := range zr.File {
		r, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			t.Fatalf("unable to read %s: %v", f.Name, err)
		}
		files[f.Name] = string(data)
	}
	return files
}

func TestReport_Archive(t *testing.T) {
	tmpDir := t.TempDir()

	conf := ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	stored := filepath.Join(tmpDir, "stored.log")
	if err := os.WriteFile(stored, []byte("log line"), 0644); err != nil {
		t.Fatal(err)
	}
	copied := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(copied, []byte("<p class=\"p-1\"></p>"), 0644); err != nil {
		t.Fatal(err)
	}

	r.Store("final.log", stored)
	r.StoreText("generator/index.txt", "Seen tokens: 1")
	r.StoreText("generator/index.txt", "Seen tokens: 2")
	if err := r.StoreCopy("source/index.html", copied); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}

	// copy is taken at the time of call
	if err := os.WriteFile(copied, []byte("changed"), 0644); err != nil {
		t.Fatal(err)
	}

	if r.Name() != conf.Destination {
		t.Errorf("Name() = %q, want %q", r.Name(), conf.Destination)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readArchive(t, conf.Destination)
	if _, ok := files["MANIFEST"]; !ok {
		t.Error("MANIFEST is missing")
	}
	if files["final.log"] != "log line" {
		t.Errorf("final.log = %q", files["final.log"])
	}
	if files["generator/index.txt"] != "Seen tokens: 1" {
		t.Errorf("generator/index.txt = %q", files["generator/index.txt"])
	}
	versioned := 0
	for name := range files {
		if strings.HasPrefix(name, "generator/index.txt-") {
			versioned++
		}
	}
	if versioned != 1 {
		t.Errorf("expected one versioned dump, got %d", versioned)
	}
	if files["source/index.html"] != `<p class="p-1"></p>` {
		t.Errorf("source/index.html = %q", files["source/index.html"])
	}
}

func TestReportClose_RemovesCopies(t *testing.T) {
	tmpDir := t.TempDir()

	conf := ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	srcDir := filepath.Join(tmpDir, "site")
	if err := os.MkdirAll(filepath.Join(srcDir, "nested"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "nested", "a.html"), []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := r.StoreCopy("site", srcDir); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}

	var copies []string
	for _, e := range r.entries {
		if e.cleanup != "" {
			copies = append(copies, e.cleanup)
		}
	}
	if len(copies) != 1 {
		t.Fatalf("expected one temporary copy, got %d", len(copies))
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := os.Stat(copies[0]); !os.IsNotExist(err) {
		os.RemoveAll(copies[0])
		t.Errorf("temporary copy %s was not removed", copies[0])
	}
	// original must survive
	if _, err := os.Stat(filepath.Join(srcDir, "nested", "a.html")); err != nil {
		t.Errorf("original file removed: %v", err)
	}

	files := readArchive(t, conf.Destination)
	if files["site/nested/a.html"] != "a" {
		t.Errorf("directory copy not archived: %v", files)
	}
}

func TestReport_Nil(t *testing.T) {
	var r *Report
	r.Store("a", "b")
	r.StoreText("a", "b")
	if err := r.StoreCopy("a", "/nonexistent"); err != nil {
		t.Errorf("StoreCopy on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Error("Name on nil report should be empty")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}

func TestReportStore_OverwritePanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("x", "/a")
	r.Store("x", "/a")

	defer func() {
		if recover() == nil {
			t.Error("expected panic when overwriting entry with different path")
		}
	}()
	r.Store("x", "/b")
}
