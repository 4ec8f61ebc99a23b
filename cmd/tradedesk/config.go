package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"
)

const (
	serverKey = "server"
	tokenKey  = "token"
	userKey   = "user"
)

var (
	serverFlag = cli.StringFlag{
		Name:  serverKey,
		Usage: "tradedeskd address",
		Value: "http://localhost:8080",
	}

	tokenFlag = cli.StringFlag{
		Name:  tokenKey,
		Usage: "bearer token identifying the acting user",
	}

	userFlag = cli.StringFlag{
		Name:  userKey,
		Usage: "acting user id, only honored by daemons running without auth",
	}
)

var config = cli.Command{
	Name:   "config",
	Usage:  "Print local configuration of the tradedesk CLI",
	Action: configAction,
	Subcommands: []*cli.Command{
		{
			Name:   "set",
			Usage:  "set a <key> <value> in the local state",
			Action: configSetAction,
		},
		{
			Name:   "init",
			Usage:  "initialize the local state with flags",
			Action: configInitAction,
			Flags: []cli.Flag{
				&serverFlag,
				&tokenFlag,
				&userFlag,
			},
		},
	},
}

func configAction(_ *cli.Context) error {
	state, err := getState()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(state))
	for key := range state {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Println(key + ": " + state[key])
	}
	return nil
}

func configInitAction(c *cli.Context) error {
	return setState(map[string]string{
		serverKey: c.String(serverKey),
		tokenKey:  c.String(tokenKey),
		userKey:   c.String(userKey),
	})
}

func configSetAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return errors.New("key and value are missing")
	}

	key := c.Args().Get(0)
	value := c.Args().Get(1)

	if err := setState(map[string]string{key: value}); err != nil {
		return err
	}

	fmt.Printf("%s %s has been set\n", key, value)
	return nil
}
