package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"balance/game"
	"balance/meta"

	"github.com/rs/zerolog/log"
)

// Remote talks to a game started with --rl-interface over HTTP.
type Remote struct {
	address  string
	playerID int
	client   *http.Client
}

type RemoteOption func(r *Remote)

func WithPlayerID(id int) RemoteOption {
	return func(r *Remote) {
		if id > 0 {
			r.playerID = id
		}
	}
}

func WithHTTPClient(client *http.Client) RemoteOption {
	return func(r *Remote) {
		if client != nil {
			r.client = client
		}
	}
}

func NewRemote(address string, options ...RemoteOption) *Remote {
	if address == "" {
		address = meta.DEFAULT_ADDRESS
	}
	r := &Remote{
		address:  strings.TrimRight(address, "/"),
		playerID: meta.PLAYER_ID,
		client:   http.DefaultClient,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *Remote) Reset(ctx context.Context, config string) (*game.State, error) {
	body, err := r.post(ctx, "reset?playerID="+strconv.Itoa(r.playerID), config)
	if err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	return game.ParseState(body)
}

func (r *Remote) Step(ctx context.Context, commands ...game.Command) (*game.State, error) {
	payload, err := encodeCommands(r.playerID, commands)
	if err != nil {
		return nil, fmt.Errorf("step: %w", err)
	}
	body, err := r.post(ctx, "step", payload)
	if err != nil {
		return nil, fmt.Errorf("step: %w", err)
	}
	return game.ParseState(body)
}

func (r *Remote) Evaluate(ctx context.Context, code string) (json.RawMessage, error) {
	body, err := r.post(ctx, "evaluate", code)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	return json.RawMessage(body), nil
}

// encodeCommands writes one "<player>;<json>" line per command, skipping nil commands.
func encodeCommands(playerID int, commands []game.Command) (string, error) {
	lines := make([]string, 0, len(commands))
	for _, cmd := range commands {
		if cmd == nil {
			continue
		}
		data, err := json.Marshal(cmd)
		if err != nil {
			return "", fmt.Errorf("marshal command: %w", err)
		}
		lines = append(lines, strconv.Itoa(playerID)+";"+string(data))
	}
	return strings.Join(lines, "\n"), nil
}

func (r *Remote) post(ctx context.Context, route, payload string) ([]byte, error) {
	url := r.address + "/" + route
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", route, err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", route, err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Warn().Msgf("engine returned status %d for %s", resp.StatusCode, route)
		return nil, fmt.Errorf("engine returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}
	return out, nil
}
