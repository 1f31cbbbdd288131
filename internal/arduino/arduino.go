// Package arduino wraps the arduino-cli binary: listing attached boards
// and compiling and uploading firmware sketches. The CLI is treated as a
// black box; everything here shells out and parses its JSON output.
package arduino

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/railkit/exinstall/internal/session"
)

// Config holds the configuration for arduino-cli execution.
type Config struct {
	// CLIPath is the path to the arduino-cli binary.
	// Default: "arduino-cli" (searches PATH)
	CLIPath string

	// Timeout is the maximum time to wait for a single invocation.
	// Compiles can be slow on first run while cores download.
	// Default: 10 minutes
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		CLIPath: "arduino-cli",
		Timeout: 10 * time.Minute,
	}
}

// ExecutionError is returned when an arduino-cli invocation fails.
type ExecutionError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("arduino-cli %s failed (exit %d): %s",
		strings.Join(e.Args, " "), e.ExitCode, strings.TrimSpace(e.Stderr))
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Client executes arduino-cli commands. It implements session.BoardLister.
type Client struct {
	config Config
	logger *zap.Logger
}

// NewClient creates an arduino-cli client with the given configuration.
func NewClient(config Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{config: config, logger: logger}
}

// boardList mirrors the JSON emitted by `arduino-cli board list --format json`.
type boardList struct {
	DetectedPorts []struct {
		Port struct {
			Address string `json:"address"`
			Label   string `json:"label"`
		} `json:"port"`
		MatchingBoards []struct {
			Name string `json:"name"`
			FQBN string `json:"fqbn"`
		} `json:"matching_boards"`
	} `json:"detected_ports"`
}

// ListBoards returns the devices currently attached. Ports with no
// identified board are skipped.
func (c *Client) ListBoards(ctx context.Context) ([]session.Board, error) {
	stdout, err := c.run(ctx, "board", "list", "--format", "json")
	if err != nil {
		return nil, err
	}

	boards, err := parseBoardList(stdout)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("listed boards", zap.Int("count", len(boards)))
	return boards, nil
}

// parseBoardList decodes board-list JSON into boards. Ports with no
// identified board are skipped.
func parseBoardList(data []byte) ([]session.Board, error) {
	var list boardList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parsing board list: %w", err)
	}

	var boards []session.Board
	for _, p := range list.DetectedPorts {
		for _, b := range p.MatchingBoards {
			boards = append(boards, session.Board{
				Name: b.Name,
				FQBN: b.FQBN,
				Port: p.Port.Address,
			})
		}
	}
	return boards, nil
}

// Compile compiles the sketch in sketchDir for the given board.
func (c *Client) Compile(ctx context.Context, sketchDir, fqbn string) error {
	c.logger.Info("compiling sketch",
		zap.String("sketch", sketchDir),
		zap.String("fqbn", fqbn),
	)
	_, err := c.run(ctx, "compile", "--fqbn", fqbn, sketchDir)
	return err
}

// Upload compiles and uploads the sketch to the board on the given port.
func (c *Client) Upload(ctx context.Context, sketchDir, fqbn, port string) error {
	c.logger.Info("uploading sketch",
		zap.String("sketch", sketchDir),
		zap.String("fqbn", fqbn),
		zap.String("port", port),
	)
	_, err := c.run(ctx, "compile", "--upload", "--fqbn", fqbn, "--port", port, sketchDir)
	return err
}

// Version returns the installed arduino-cli version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	stdout, err := c.run(ctx, "version", "--format", "json")
	if err != nil {
		return "", err
	}
	var v struct {
		VersionString string `json:"VersionString"`
	}
	if err := json.Unmarshal(stdout, &v); err != nil {
		return "", fmt.Errorf("parsing version: %w", err)
	}
	return v.VersionString, nil
}

// run executes arduino-cli with the given arguments and captures stdout.
func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	cmd := exec.CommandContext(timeoutCtx, c.config.CLIPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	c.logger.Debug("arduino-cli invocation complete",
		zap.Strings("args", args),
		zap.Duration("duration", time.Since(start)),
		zap.Int("stdout_size", stdout.Len()),
	)

	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return nil, &ExecutionError{
			Args:     args,
			ExitCode: exitCode,
			Stderr:   stderr.String(),
			Err:      err,
		}
	}
	return stdout.Bytes(), nil
}
