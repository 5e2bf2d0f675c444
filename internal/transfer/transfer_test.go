package transfer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestEngine_Run_Copy(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	writeFile(t, filepath.Join(srcDir, "a.bin"), "aaa")
	writeFile(t, filepath.Join(srcDir, "b.bin"), "bbb")

	eng := New(Copy, testLogger())
	eng.Add(filepath.Join(srcDir, "a.bin"), filepath.Join(dstDir, "a.bin"))
	eng.Add(filepath.Join(srcDir, "b.bin"), filepath.Join(dstDir, "b.bin"))

	if err := eng.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if eng.Written() != 2 {
		t.Errorf("Written = %d, want 2", eng.Written())
	}

	// Sources preserved, destinations present
	for _, name := range []string{"a.bin", "b.bin"} {
		if _, err := os.Stat(filepath.Join(srcDir, name)); err != nil {
			t.Errorf("source %s missing: %v", name, err)
		}
		got, err := os.ReadFile(filepath.Join(dstDir, name))
		if err != nil {
			t.Errorf("dest %s: %v", name, err)
		} else if len(got) != 3 {
			t.Errorf("dest %s content = %q", name, got)
		}
	}
}

func TestEngine_Run_Move(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	writeFile(t, filepath.Join(srcDir, "a.bin"), "aaa")

	eng := New(Move, testLogger())
	eng.Add(filepath.Join(srcDir, "a.bin"), filepath.Join(dstDir, "a.bin"))

	if err := eng.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := os.Stat(filepath.Join(srcDir, "a.bin")); !os.IsNotExist(err) {
		t.Error("source should be gone after move")
	}
	if _, err := os.Stat(filepath.Join(dstDir, "a.bin")); err != nil {
		t.Errorf("destination missing: %v", err)
	}
}

func TestEngine_Run_StopsOnError(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	writeFile(t, filepath.Join(srcDir, "a.bin"), "aaa")
	// b.bin intentionally missing
	writeFile(t, filepath.Join(srcDir, "c.bin"), "ccc")

	eng := New(Copy, testLogger())
	eng.Add(filepath.Join(srcDir, "a.bin"), filepath.Join(dstDir, "a.bin"))
	eng.Add(filepath.Join(srcDir, "b.bin"), filepath.Join(dstDir, "b.bin"))
	eng.Add(filepath.Join(srcDir, "c.bin"), filepath.Join(dstDir, "c.bin"))

	err := eng.Run(context.Background())
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if eng.Written() != 1 {
		t.Errorf("Written = %d, want 1", eng.Written())
	}
	if _, statErr := os.Stat(filepath.Join(dstDir, "c.bin")); !os.IsNotExist(statErr) {
		t.Error("c.bin should not have been transferred after failure")
	}
}

func TestEngine_Run_Cancelled(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	writeFile(t, filepath.Join(srcDir, "a.bin"), "aaa")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := New(Copy, testLogger())
	eng.Add(filepath.Join(srcDir, "a.bin"), filepath.Join(dstDir, "a.bin"))

	err := eng.Run(ctx)
	if err != context.Canceled {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
	if eng.Written() != 0 {
		t.Errorf("Written = %d, want 0", eng.Written())
	}
}

func TestEngine_Undo_Copy(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	writeFile(t, filepath.Join(srcDir, "a.bin"), "aaa")

	eng := New(Copy, testLogger())
	eng.Add(filepath.Join(srcDir, "a.bin"), filepath.Join(dstDir, "a.bin"))
	if err := eng.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !eng.Undo() {
		t.Error("Undo = false, want true")
	}
	if _, err := os.Stat(filepath.Join(dstDir, "a.bin")); !os.IsNotExist(err) {
		t.Error("destination should be removed by Undo")
	}
	if _, err := os.Stat(filepath.Join(srcDir, "a.bin")); err != nil {
		t.Errorf("source must survive copy undo: %v", err)
	}
}

func TestEngine_Undo_MoveRestoresSource(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	writeFile(t, filepath.Join(srcDir, "a.bin"), "aaa")

	eng := New(Move, testLogger())
	eng.Add(filepath.Join(srcDir, "a.bin"), filepath.Join(dstDir, "a.bin"))
	if err := eng.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !eng.Undo() {
		t.Error("Undo = false, want true")
	}
	if _, err := os.Stat(filepath.Join(srcDir, "a.bin")); err != nil {
		t.Errorf("source should be restored by move undo: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dstDir, "a.bin")); !os.IsNotExist(err) {
		t.Error("destination should be gone after move undo")
	}
}

func TestCopyFile_DestinationExists(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	writeFile(t, filepath.Join(srcDir, "a.bin"), "aaa")
	writeFile(t, filepath.Join(dstDir, "a.bin"), "old")

	_, err := CopyFile(filepath.Join(srcDir, "a.bin"), filepath.Join(dstDir, "a.bin"))
	if err != ErrDestinationExists {
		t.Errorf("expected ErrDestinationExists, got %v", err)
	}
}

func TestCopyFile_CreatesDirectory(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	writeFile(t, filepath.Join(srcDir, "a.bin"), "content")

	dst := filepath.Join(dstDir, "nested", "bundle.cdmedia", "a.bin")
	size, err := CopyFile(filepath.Join(srcDir, "a.bin"), dst)
	if err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	if size != 7 {
		t.Errorf("size = %d, want 7", size)
	}
}
