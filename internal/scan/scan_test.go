package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDirectoryCollectsMediaFiles(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "movie.mkv")
	write(t, dir, "movie.srt")
	write(t, dir, filepath.Join("nested", "clip.mp4"))
	write(t, dir, "notes.txt")
	write(t, dir, "cover.jpg")

	files, err := Directory(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("found %d files, want 3: %+v", len(files), files)
	}

	kinds := map[string]Kind{}
	for _, file := range files {
		kinds[file.Name] = file.Kind
		if file.Size != 1 {
			t.Fatalf("%s size: got %d", file.Name, file.Size)
		}
	}
	if kinds["movie.mkv"] != KindVideo || kinds["clip.mp4"] != KindVideo {
		t.Fatalf("video classification wrong: %v", kinds)
	}
	if kinds["movie.srt"] != KindSubtitle {
		t.Fatalf("subtitle classification wrong: %v", kinds)
	}
}

func TestDirectorySortsByPath(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "b.mkv")
	write(t, dir, "a.mkv")

	files, err := Directory(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	paths := Paths(files)
	if len(paths) != 2 || filepath.Base(paths[0]) != "a.mkv" {
		t.Fatalf("scan order: %v", paths)
	}
}

func TestDirectoryCaseInsensitiveExtensions(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "LOUD.MKV")

	files, err := Directory(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Kind != KindVideo {
		t.Fatalf("uppercase extension missed: %+v", files)
	}
}

func TestDirectoryMissingRoot(t *testing.T) {
	if _, err := Directory(filepath.Join(t.TempDir(), "absent"), nil); err == nil {
		t.Fatal("expected an error for a missing root")
	}
}

func TestDirectorySkipsUnreadableSubdirectories(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	dir := t.TempDir()
	write(t, dir, "ok.mkv")
	sealed := filepath.Join(dir, "sealed")
	write(t, sealed, "hidden.mkv")
	if err := os.Chmod(sealed, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = os.Chmod(sealed, 0o755)
	})

	files, err := Directory(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Name != "ok.mkv" {
		t.Fatalf("unreadable subdirectory not skipped: %+v", files)
	}
}
