package stores

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	logger "github.com/rediacc/rdc/internal/logging"
)

const gitVerifyTimeout = 15 * time.Second

// GitAdapter stores configs as JSON files on a branch of a Git remote.
// Every operation works in a throwaway shallow clone that is removed
// before the operation returns.
type GitAdapter struct {
	entry GitEntry

	Log logger.Logger
}

// NewGitAdapter returns an adapter for entry, filling in the default
// branch, path and commit identity.
func NewGitAdapter(entry GitEntry) *GitAdapter {
	if entry.Branch == "" {
		entry.Branch = defaultGitBranch
	}
	entry.Path = strings.Trim(entry.Path, "/")
	if entry.Path == "" {
		entry.Path = defaultGitPath
	}
	if entry.AuthorName == "" {
		entry.AuthorName = defaultAuthorName
	}
	if entry.AuthorEmail == "" {
		entry.AuthorEmail = defaultAuthorEmail
	}
	return &GitAdapter{entry: entry}
}

// gitRepo runs git commands against one working tree via -C.
type gitRepo struct {
	dir string
}

func runGit(ctx context.Context, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, "git", args...)
	command.Stdout = &stdout
	command.Stderr = &stderr
	command.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	if err := command.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w (stderr: %s)",
			strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

func (r *gitRepo) run(ctx context.Context, args ...string) (string, error) {
	return runGit(ctx, append([]string{"-C", r.dir}, args...)...)
}

// relPath is the slash-separated path of name's document inside the repository.
func (a *GitAdapter) relPath(name string) string {
	return path.Join(a.entry.Path, name+".json")
}

// withClone clones the configured branch into a temporary directory, runs
// fn against it, and removes the directory whatever fn returns.
func (a *GitAdapter) withClone(ctx context.Context, fn func(repo *gitRepo) error) error {
	tempDir, err := os.MkdirTemp("", "rdc-git-*")
	if err != nil {
		return fmt.Errorf("creating clone directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			a.Log.Warnf("Failed to remove temporary clone %s: %v", tempDir, err)
		}
	}()

	repo, err := a.checkout(ctx, filepath.Join(tempDir, "repo"))
	if err != nil {
		return err
	}
	return fn(repo)
}

// checkout shallow-clones the branch. When the branch does not exist yet
// (for example on an empty remote) it initializes a fresh repository with
// the remote configured, so the first push creates the branch.
func (a *GitAdapter) checkout(ctx context.Context, dir string) (*gitRepo, error) {
	repo := &gitRepo{dir: dir}

	_, cloneErr := runGit(ctx, "clone", "--quiet", "--depth", "1", "--single-branch",
		"--branch", a.entry.Branch, a.entry.URL, dir)
	if cloneErr == nil {
		return repo, nil
	}
	a.Log.Debugf("Clone of %s@%s failed, checking remote: %v", a.entry.URL, a.entry.Branch, cloneErr)

	if _, err := runGit(ctx, "ls-remote", "--heads", a.entry.URL); err != nil {
		return nil, fmt.Errorf("cloning %s: %w", a.entry.URL, cloneErr)
	}

	a.Log.Debugf("Remote %s has no branch %s, initializing a new repository", a.entry.URL, a.entry.Branch)
	if err := os.RemoveAll(dir); err != nil {
		return nil, fmt.Errorf("resetting clone directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating clone directory: %w", err)
	}

	steps := [][]string{
		{"init", "--quiet"},
		{"symbolic-ref", "HEAD", "refs/heads/" + a.entry.Branch},
		{"remote", "add", "origin", a.entry.URL},
	}
	for _, step := range steps {
		if _, err := repo.run(ctx, step...); err != nil {
			return nil, err
		}
	}
	return repo, nil
}

// commitAndPush commits staged changes with message and pushes them to the
// configured branch. It reports false when there was nothing to commit.
func (a *GitAdapter) commitAndPush(ctx context.Context, repo *gitRepo, message string) (bool, error) {
	status, err := repo.run(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(status) == "" {
		return false, nil
	}

	if _, err := repo.run(ctx,
		"-c", "user.name="+a.entry.AuthorName,
		"-c", "user.email="+a.entry.AuthorEmail,
		"-c", "commit.gpgsign=false",
		"commit", "--quiet", "-m", message); err != nil {
		return false, err
	}

	if _, err := repo.run(ctx, "push", "--quiet", "origin", "HEAD:refs/heads/"+a.entry.Branch); err != nil {
		return false, err
	}
	return true, nil
}

func (a *GitAdapter) Push(ctx context.Context, config *RdcConfig, name string) (*PushResult, error) {
	if err := validName(name); err != nil {
		return &PushResult{Err: err}, nil
	}
	if err := config.Validate(); err != nil {
		return &PushResult{Err: err}, nil
	}

	var result *PushResult
	err := a.withClone(ctx, func(repo *gitRepo) error {
		relPath := a.relPath(name)
		filePath := filepath.Join(repo.dir, filepath.FromSlash(relPath))

		var remote *RdcConfig
		if data, err := os.ReadFile(filePath); err == nil {
			if remote, err = decodeConfig(data); err != nil {
				a.Log.Debugf("Ignoring unreadable remote config %s: %v", relPath, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading %s: %w", relPath, err)
		}

		result = checkPush(remote, config)
		if !result.Success {
			return nil
		}

		data, err := encodeConfig(config)
		if err != nil {
			return fmt.Errorf("encoding config %s: %w", name, err)
		}
		if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
			return fmt.Errorf("creating %s: %w", a.entry.Path, err)
		}
		if err := os.WriteFile(filePath, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", relPath, err)
		}

		if _, err := repo.run(ctx, "add", "--", relPath); err != nil {
			return err
		}
		pushed, err := a.commitAndPush(ctx, repo, fmt.Sprintf("Update config %s v%d", name, config.Version))
		if err != nil {
			return err
		}
		if !pushed {
			a.Log.Debugf("Config %s v%d is unchanged, nothing to push", name, config.Version)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (a *GitAdapter) Pull(ctx context.Context, name string) (*PullResult, error) {
	if err := validName(name); err != nil {
		return &PullResult{Err: err}, nil
	}

	var result *PullResult
	err := a.withClone(ctx, func(repo *gitRepo) error {
		relPath := a.relPath(name)
		data, err := os.ReadFile(filepath.Join(repo.dir, filepath.FromSlash(relPath)))
		if errors.Is(err, os.ErrNotExist) {
			result = &PullResult{Err: notFound(name)}
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", relPath, err)
		}

		config, err := decodeConfig(data)
		if err != nil {
			result = &PullResult{Err: fmt.Errorf("%s: %w", name, err)}
			return nil
		}
		result = &PullResult{Success: true, Config: config}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (a *GitAdapter) List(ctx context.Context) ([]string, error) {
	names := []string{}
	err := a.withClone(ctx, func(repo *gitRepo) error {
		entries, err := os.ReadDir(filepath.Join(repo.dir, filepath.FromSlash(a.entry.Path)))
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", a.entry.Path, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}

func (a *GitAdapter) Delete(ctx context.Context, name string) (*DeleteResult, error) {
	if err := validName(name); err != nil {
		return &DeleteResult{Err: err}, nil
	}

	var result *DeleteResult
	err := a.withClone(ctx, func(repo *gitRepo) error {
		relPath := a.relPath(name)
		if _, err := os.Stat(filepath.Join(repo.dir, filepath.FromSlash(relPath))); errors.Is(err, os.ErrNotExist) {
			result = &DeleteResult{Err: notFound(name)}
			return nil
		}

		if _, err := repo.run(ctx, "rm", "--quiet", "--", relPath); err != nil {
			return err
		}
		if _, err := a.commitAndPush(ctx, repo, fmt.Sprintf("Delete config %s", name)); err != nil {
			return err
		}
		result = &DeleteResult{Success: true}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Verify checks the remote is reachable with the current credentials.
func (a *GitAdapter) Verify(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, gitVerifyTimeout)
	defer cancel()

	if _, err := runGit(ctx, "ls-remote", "--heads", a.entry.URL); err != nil {
		a.Log.Debugf("Git verify failed for %s: %v", a.entry.URL, err)
		return false
	}
	return true
}
