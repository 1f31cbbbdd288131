// Package gitclient wraps the git binary for fetching firmware
// repositories and listing their release tags.
package gitclient

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/railkit/exinstall/internal/semver"
)

// Config holds the configuration for git execution.
type Config struct {
	// GitPath is the path to the git binary.
	// Default: "git" (searches PATH)
	GitPath string

	// Timeout is the maximum time to wait for a single invocation.
	// Default: 5 minutes
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		GitPath: "git",
		Timeout: 5 * time.Minute,
	}
}

// GitError is returned when a git invocation fails.
type GitError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *GitError) Error() string {
	return fmt.Sprintf("git %s failed (exit %d): %s",
		strings.Join(e.Args, " "), e.ExitCode, strings.TrimSpace(e.Stderr))
}

func (e *GitError) Unwrap() error {
	return e.Err
}

// Client executes git commands. It implements session.RepoClient.
type Client struct {
	config Config
	logger *zap.Logger
}

// NewClient creates a git client with the given configuration.
func NewClient(config Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{config: config, logger: logger}
}

// CloneOrUpdate ensures dir holds a checkout of the repository at url. An
// existing checkout is fetched and fast-forwarded; otherwise the
// repository is cloned. When ref is non-empty that tag or branch is
// checked out afterwards.
func (c *Client) CloneOrUpdate(ctx context.Context, url, dir, ref string) error {
	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		c.logger.Info("updating repository", zap.String("dir", dir))
		if _, err := c.run(ctx, "-C", dir, "fetch", "--tags", "--force", "origin"); err != nil {
			return err
		}
	} else {
		c.logger.Info("cloning repository",
			zap.String("url", url),
			zap.String("dir", dir),
		)
		if _, err := c.run(ctx, "clone", url, dir); err != nil {
			return err
		}
	}

	if ref != "" {
		if _, err := c.run(ctx, "-C", dir, "checkout", ref); err != nil {
			return err
		}
	}
	return nil
}

// ListTags returns the repository's tags, one per entry, unordered.
func (c *Client) ListTags(ctx context.Context, dir string) ([]string, error) {
	stdout, err := c.run(ctx, "-C", dir, "tag", "--list")
	if err != nil {
		return nil, err
	}

	var tags []string
	for _, line := range strings.Split(string(stdout), "\n") {
		if t := strings.TrimSpace(line); t != "" {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

// SortTagsDescending orders tags newest first by their numeric triplet.
// Unparsable tags sort last; ties keep a stable lexical order so repeated
// listings render identically.
func SortTagsDescending(tags []string) {
	sort.SliceStable(tags, func(i, j int) bool {
		vi, vj := semver.Parse(tags[i]), semver.Parse(tags[j])
		if c := vi.Compare(vj); c != 0 {
			return c > 0
		}
		return tags[i] < tags[j]
	})
}

// run executes git with the given arguments and captures stdout.
func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	cmd := exec.CommandContext(timeoutCtx, c.config.GitPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	c.logger.Debug("git invocation complete",
		zap.Strings("args", args),
		zap.Duration("duration", time.Since(start)),
	)

	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return nil, &GitError{
			Args:     args,
			ExitCode: exitCode,
			Stderr:   stderr.String(),
			Err:      err,
		}
	}
	return stdout.Bytes(), nil
}
