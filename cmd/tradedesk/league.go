package main

import (
	"net/http"
	"strconv"

	"github.com/urfave/cli/v2"
)

var (
	leagueFlag = &cli.StringFlag{
		Name:  "league",
		Usage: "the id of the league",
	}
	teamFlag = &cli.StringFlag{
		Name:  "team",
		Usage: "the id of the team",
	}
)

var trades = cli.Command{
	Name:  "trades",
	Usage: "list the trades of a league or of a team",
	Flags: []cli.Flag{
		leagueFlag,
		teamFlag,
		&cli.StringFlag{
			Name:  "status",
			Usage: "pending, accepted, rejected, cancelled or expired",
		},
		&cli.IntFlag{
			Name:  "page",
			Usage: "the page to list, starting from 1",
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "the max number of trades per page",
		},
	},
	Action: listTradesAction,
}

var sweep = cli.Command{
	Name:   "sweep",
	Usage:  "expire the overdue trades of a league, or of all leagues",
	Flags:  []cli.Flag{leagueFlag},
	Action: sweepAction,
}

var stats = cli.Command{
	Name:   "stats",
	Usage:  "show the trade counters of a league or of a team",
	Flags:  []cli.Flag{leagueFlag, teamFlag},
	Action: statsAction,
}

var trends = cli.Command{
	Name:  "trends",
	Usage: "show the most traded players and the trade activity of a league",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "league",
			Usage:    "the id of the league",
			Required: true,
		},
	},
	Action: trendsAction,
}

func listTradesAction(ctx *cli.Context) error {
	league, team := ctx.String("league"), ctx.String("team")

	var (
		path  string
		query = map[string]string{}
	)
	switch {
	case league != "":
		path = "/v1/leagues/" + league + "/trades"
		if team != "" {
			query["team"] = team
		}
		if status := ctx.String("status"); status != "" {
			query["status"] = status
		}
		if page := ctx.Int("page"); page > 0 {
			query["page"] = strconv.Itoa(page)
		}
		if limit := ctx.Int("limit"); limit > 0 {
			query["limit"] = strconv.Itoa(limit)
		}
	case team != "":
		path = "/v1/teams/" + team + "/trades"
	default:
		return &invalidUsageError{ctx, ctx.Command.Name}
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	body, err := client.do(http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}

	printRespJSON(body)
	return nil
}

func sweepAction(ctx *cli.Context) error {
	path := "/v1/trades/sweep"
	if league := ctx.String("league"); league != "" {
		path = "/v1/leagues/" + league + "/trades/sweep"
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	body, err := client.do(http.MethodPost, path, nil, nil)
	if err != nil {
		return err
	}

	printRespJSON(body)
	return nil
}

func statsAction(ctx *cli.Context) error {
	var path string
	switch {
	case ctx.String("league") != "":
		path = "/v1/leagues/" + ctx.String("league") + "/trades/stats"
	case ctx.String("team") != "":
		path = "/v1/teams/" + ctx.String("team") + "/trades/stats"
	default:
		return &invalidUsageError{ctx, ctx.Command.Name}
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	body, err := client.do(http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}

	printRespJSON(body)
	return nil
}

func trendsAction(ctx *cli.Context) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	body, err := client.do(http.MethodGet, "/v1/leagues/"+ctx.String("league")+"/trends", nil, nil)
	if err != nil {
		return err
	}

	printRespJSON(body)
	return nil
}
