package stores

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// newBareRemote creates an empty bare repository and returns its file:// URL.
func newBareRemote(t *testing.T) (string, string) {
	t.Helper()
	requireGit(t)

	dir := filepath.Join(t.TempDir(), "remote.git")
	if out, err := exec.Command("git", "init", "--quiet", "--bare", dir).CombinedOutput(); err != nil {
		t.Fatalf("git init --bare failed: %v: %s", err, out)
	}
	return "file://" + filepath.ToSlash(dir), dir
}

func gitLog(t *testing.T, bareDir, branch string) []string {
	t.Helper()
	out, err := exec.Command("git", "-C", bareDir, "log", "--format=%s", branch).CombinedOutput()
	if err != nil {
		t.Fatalf("git log failed: %v: %s", err, out)
	}
	return strings.Split(strings.TrimSpace(string(out)), "\n")
}

func TestGitAdapterContract(t *testing.T) {
	testAdapterContract(t, func(t *testing.T) Adapter {
		url, _ := newBareRemote(t)
		return NewGitAdapter(GitEntry{URL: url})
	})
}

func TestGitPushToEmptyRemoteCreatesBranch(t *testing.T) {
	url, bareDir := newBareRemote(t)
	adapter := NewGitAdapter(GitEntry{URL: url, Branch: "configs-branch", Path: "team/configs"})

	mustPush(t, adapter, &RdcConfig{ID: "g1", Version: 1}, "prod")

	out, err := exec.Command("git", "-C", bareDir, "show", "configs-branch:team/configs/prod.json").CombinedOutput()
	if err != nil {
		t.Fatalf("Expected prod.json on configs-branch: %v: %s", err, out)
	}
	if !strings.Contains(string(out), `"id": "g1"`) {
		t.Errorf("Unexpected file content: %s", out)
	}
}

func TestGitCommitMessages(t *testing.T) {
	ctx := context.Background()
	url, bareDir := newBareRemote(t)
	adapter := NewGitAdapter(GitEntry{URL: url})

	mustPush(t, adapter, &RdcConfig{ID: "g1", Version: 1}, "prod")
	mustPush(t, adapter, &RdcConfig{ID: "g1", Version: 2}, "prod")
	// Unchanged content produces no commit.
	mustPush(t, adapter, &RdcConfig{ID: "g1", Version: 2}, "prod")

	if result, err := adapter.Delete(ctx, "prod"); err != nil || !result.Success {
		t.Fatalf("Delete = %+v, %v", result, err)
	}

	want := []string{"Delete config prod", "Update config prod v2", "Update config prod v1"}
	got := gitLog(t, bareDir, "main")
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("git log = %q, want %q", got, want)
	}
}

func TestGitListIgnoresNonJSONAndDirectories(t *testing.T) {
	url, bareDir := newBareRemote(t)
	adapter := NewGitAdapter(GitEntry{URL: url})
	mustPush(t, adapter, &RdcConfig{ID: "g1", Version: 1}, "prod")

	work := filepath.Join(t.TempDir(), "work")
	run := func(args ...string) {
		t.Helper()
		if out, err := exec.Command("git", args...).CombinedOutput(); err != nil {
			t.Fatalf("git %v failed: %v: %s", args, err, out)
		}
	}
	run("clone", "--quiet", bareDir, work)
	if err := os.WriteFile(filepath.Join(work, "configs", "README.md"), []byte("docs"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(work, "configs", "nested.json"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(work, "configs", "nested.json", "x.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	run("-C", work, "add", ".")
	run("-C", work, "-c", "user.name=t", "-c", "user.email=t@t", "-c", "commit.gpgsign=false", "commit", "--quiet", "-m", "extra files")
	run("-C", work, "push", "--quiet", "origin", "HEAD:refs/heads/main")

	names, err := adapter.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 1 || names[0] != "prod" {
		t.Fatalf("List = %v, want [prod]", names)
	}
}

func TestGitCleansUpTemporaryClones(t *testing.T) {
	url, _ := newBareRemote(t)
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	adapter := NewGitAdapter(GitEntry{URL: url})
	mustPush(t, adapter, &RdcConfig{ID: "g1", Version: 1}, "prod")
	if _, err := adapter.Pull(context.Background(), "missing"); err != nil {
		t.Fatalf("Pull failed: %v", err)
	}

	entries, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no leftover clone directories, found %d", len(entries))
	}
}

func TestGitUnreachableRemote(t *testing.T) {
	requireGit(t)
	missing := "file://" + filepath.ToSlash(filepath.Join(t.TempDir(), "does-not-exist.git"))
	adapter := NewGitAdapter(GitEntry{URL: missing})

	if adapter.Verify(context.Background()) {
		t.Error("Expected verify to fail for a missing remote")
	}
	if _, err := adapter.Pull(context.Background(), "prod"); err == nil {
		t.Error("Expected a backend error when the remote cannot be cloned")
	}
}

func TestGitVerify(t *testing.T) {
	url, _ := newBareRemote(t)
	if !NewGitAdapter(GitEntry{URL: url}).Verify(context.Background()) {
		t.Error("Expected verify to pass for an existing remote")
	}
}
