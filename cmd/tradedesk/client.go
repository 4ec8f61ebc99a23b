package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type client struct {
	rc *resty.Client
}

type apiError struct {
	Error string `json:"error"`
}

// getClient returns a REST client for the daemon configured in the local
// state.
func getClient() (*client, error) {
	state, err := getState()
	if err != nil {
		return nil, err
	}
	server, ok := state[serverKey]
	if !ok || server == "" {
		return nil, errors.New("set server with `config set server`")
	}
	return newClient(server, state[tokenKey], state[userKey]), nil
}

func newClient(server, token, userID string) *client {
	rc := resty.New().
		SetBaseURL(server).
		SetTimeout(15*time.Second).
		SetHeader("Content-Type", "application/json")
	if token != "" {
		rc.SetAuthToken(token)
	}
	if userID != "" {
		rc.SetHeader("X-User-Id", userID)
	}
	return &client{rc}
}

func (c *client) do(method, path string, query map[string]string, body interface{}) ([]byte, error) {
	req := c.rc.R().SetQueryParams(query)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("unable to reach tradedeskd: %w", err)
	}
	if resp.IsError() {
		var apiErr apiError
		if err := json.Unmarshal(resp.Body(), &apiErr); err == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("%s (%d)", apiErr.Error, resp.StatusCode())
		}
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode())
	}
	return resp.Body(), nil
}

func printRespJSON(body []byte) {
	if len(body) == 0 {
		return
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "\t"); err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}
	fmt.Println(buf.String())
}
