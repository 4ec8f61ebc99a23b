package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
)

var (
	version = "dev"

	tradedeskDataDir = defaultDataDir()
	statePath        = filepath.Join(tradedeskDataDir, "state.json")
)

func main() {
	app := cli.NewApp()

	app.Version = version
	app.Name = "tradedesk CLI"
	app.Usage = "Command line interface for the tradedesk daemon"
	app.Commands = append(
		app.Commands,
		&config,
		&propose,
		&trade,
		&trades,
		&sweep,
		&stats,
		&trends,
		&team,
		&webhook,
		&listwebhooks,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tradedesk-cli"
	}
	return filepath.Join(home, ".tradedesk-cli")
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := os.ReadFile(statePath)
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, fmt.Errorf("invalid config state: %w", err)
	}

	return data, nil
}

func setState(data map[string]string) error {
	if err := os.MkdirAll(tradedeskDataDir, 0700); err != nil {
		return err
	}

	currentData, err := getState()
	if err != nil {
		currentData = map[string]string{}
	}

	jsonString, err := json.Marshal(merge(currentData, data))
	if err != nil {
		return err
	}
	if err := os.WriteFile(statePath, jsonString, 0600); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}
	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merge := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			merge[k] = v
		}
	}
	return merge
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[tradedesk] %v\n", err)
	}
	os.Exit(1)
}
