// Package main provides the Docker container entrypoint
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

const (
	botBinary = "/app/bin/bot"
	dbBinary  = "/app/bin/db"
)

var ErrUnknownRunType = errors.New("unknown RUN_TYPE")

func main() {
	runType := os.Getenv("RUN_TYPE")

	path, args, err := resolve(runType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: %q\n", err, runType)
		fmt.Fprintf(os.Stderr, "Usage: RUN_TYPE=bot|migrate|check (default bot)\n")
		os.Exit(2)
	}

	cmd := exec.Command(path, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to execute %s: %v\n", filepath.Base(path), err)

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}

		os.Exit(1)
	}
}

// resolve maps RUN_TYPE to the binary and arguments the container runs.
// An empty RUN_TYPE starts the bot.
func resolve(runType string) (string, []string, error) {
	switch runType {
	case "", "bot":
		return botBinary, nil, nil
	case "migrate":
		return dbBinary, []string{"migrate"}, nil
	case "check":
		return dbBinary, []string{"check"}, nil
	default:
		return "", nil, ErrUnknownRunType
	}
}
