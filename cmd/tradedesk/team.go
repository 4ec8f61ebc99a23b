package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var team = cli.Command{
	Name:  "team",
	Usage: "show the roster and the budget of a team",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "id",
			Usage:    "the id of the team",
			Required: true,
		},
	},
	Action: getTeamAction,
}

func getTeamAction(ctx *cli.Context) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	body, err := client.do(http.MethodGet, "/v1/teams/"+ctx.String("id"), nil, nil)
	if err != nil {
		return err
	}

	printRespJSON(body)
	return nil
}
