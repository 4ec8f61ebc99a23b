package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var idFlag = &cli.StringFlag{
	Name:     "id",
	Usage:    "the id of the trade",
	Required: true,
}

var propose = cli.Command{
	Name:  "propose",
	Usage: "propose a trade to the owner of another team of the league",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "league",
			Usage:    "the league of both teams",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "from",
			Usage:    "the id of your team",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "to",
			Usage:    "the id of the team receiving the proposal",
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:  "offer",
			Usage: "id of a player of your team to offer, repeat for more",
		},
		&cli.StringSliceFlag{
			Name:  "request",
			Usage: "id of a player of the other team to request, repeat for more",
		},
		&cli.StringFlag{
			Name:  "message",
			Usage: "an optional message for the other owner",
		},
	},
	Action: proposeAction,
}

var trade = cli.Command{
	Name:  "trade",
	Usage: "get, accept, reject or cancel a trade",
	Subcommands: []*cli.Command{
		{
			Name:   "get",
			Usage:  "show a trade",
			Flags:  []cli.Flag{idFlag},
			Action: getTradeAction,
		},
		{
			Name:   "accept",
			Usage:  "accept a trade proposed to your team",
			Flags:  []cli.Flag{idFlag},
			Action: respondAction("accept"),
		},
		{
			Name:  "reject",
			Usage: "reject a trade proposed to your team",
			Flags: []cli.Flag{
				idFlag,
				&cli.StringFlag{
					Name:  "reason",
					Usage: "an optional rejection reason",
				},
			},
			Action: respondAction("reject"),
		},
		{
			Name:   "cancel",
			Usage:  "withdraw a trade you proposed",
			Flags:  []cli.Flag{idFlag},
			Action: cancelTradeAction,
		},
	},
}

func proposeAction(ctx *cli.Context) error {
	offered, requested := ctx.StringSlice("offer"), ctx.StringSlice("request")
	if len(offered) == 0 || len(requested) == 0 {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	body, err := client.do(http.MethodPost, "/v1/trades", nil, map[string]interface{}{
		"leagueId":           ctx.String("league"),
		"initiatorTeamId":    ctx.String("from"),
		"recipientTeamId":    ctx.String("to"),
		"offeredPlayerIds":   offered,
		"requestedPlayerIds": requested,
		"message":            ctx.String("message"),
	})
	if err != nil {
		return err
	}

	printRespJSON(body)
	return nil
}

func getTradeAction(ctx *cli.Context) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	body, err := client.do(http.MethodGet, "/v1/trades/"+ctx.String("id"), nil, nil)
	if err != nil {
		return err
	}

	printRespJSON(body)
	return nil
}

func respondAction(action string) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		client, err := getClient()
		if err != nil {
			return err
		}

		body, err := client.do(
			http.MethodPut, "/v1/trades/"+ctx.String("id")+"/respond", nil,
			map[string]string{
				"action":          action,
				"rejectionReason": ctx.String("reason"),
			},
		)
		if err != nil {
			return err
		}

		printRespJSON(body)
		return nil
	}
}

func cancelTradeAction(ctx *cli.Context) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	body, err := client.do(http.MethodPut, "/v1/trades/"+ctx.String("id")+"/cancel", nil, nil)
	if err != nil {
		return err
	}

	printRespJSON(body)
	return nil
}
