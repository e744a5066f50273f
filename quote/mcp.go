package quote

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"regexp"
	"time"

	"github.com/rs/zerolog"
)

const mcpURL = "https://mcp.alphavantage.co/mcp"

// mcp quotes a ticker with the REALTIME_BULK_QUOTES tool of the Alpha
// Vantage MCP server, through a JSON-RPC "tools/call" request.
//
// The first content of the result carries the quotes either as JSON
//
//	{"type": "json", "json": {"IBM": {"price": 171.24}}}
//
// or as text, that is itself JSON most of the time
//
//	{"type": "text", "text": "{\"IBM\": {\"price\": \"171.24\"}}"}
//
// The server may answer with a Server-Sent Events stream instead of a plain
// JSON body.
type mcp struct {
	cfg Config
	log zerolog.Logger
}

func newMCP(cfg Config, log zerolog.Logger) *mcp {
	if cfg.BaseURL == "" {
		cfg.BaseURL = mcpURL
	}
	return &mcp{cfg: cfg, log: log}
}

func (p *mcp) Name() string          { return AlphaVantageMCP }
func (p *mcp) Pacing() time.Duration { return time.Second }

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      int       `json:"id"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
}

type rpcParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

func (p *mcp) Price(ctx context.Context, ticker string) (float64, bool) {
	addr := p.cfg.BaseURL + "?" + url.Values{"apikey": {p.cfg.APIKey}}.Encode()
	payload := rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params: rpcParams{
			Name:      "REALTIME_BULK_QUOTES",
			Arguments: map[string]any{"symbols": []string{ticker}},
		},
	}
	body, err := jwpost(ctx, p.cfg.Client, addr, payload)
	if err != nil {
		p.log.Debug().Err(err).Str("ticker", ticker).Msg("quote request failed")
		return 0, false
	}
	jobj, err := decodeEnvelope(body)
	if err != nil {
		p.log.Debug().Err(err).Str("ticker", ticker).Msg("cannot parse quote response")
		return 0, false
	}
	price, ok := contentPrice(lookup("$.result.content[0]", jobj), ticker)
	if !ok {
		p.log.Debug().Str("ticker", ticker).Msg("no price in quote")
	}
	return price, ok
}

var errNoEnvelope = errors.New("no JSON-RPC response in body")

// decodeEnvelope decodes a JSON body, or the first JSON "data:" line of an
// event stream.
func decodeEnvelope(body []byte) (any, error) {
	var jobj any
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		err := json.Unmarshal(trimmed, &jobj)
		return jobj, err
	}
	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(nil, 1<<20)
	for scanner.Scan() {
		data, ok := bytes.CutPrefix(scanner.Bytes(), []byte("data:"))
		if !ok {
			continue
		}
		if err := json.Unmarshal(bytes.TrimSpace(data), &jobj); err == nil {
			return jobj, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, errNoEnvelope
}

var firstNumber = regexp.MustCompile(`([0-9]+\.?[0-9]*)`)

// contentPrice reads the price of ticker from a tool result content.
func contentPrice(content any, ticker string) (float64, bool) {
	c, ok := content.(map[string]any)
	if !ok {
		return 0, false
	}
	switch c["type"] {
	case "json":
		return tickerPrice(c["json"], ticker)
	case "text":
		text, ok := c["text"].(string)
		if !ok {
			return 0, false
		}
		var jobj any
		if err := json.Unmarshal([]byte(text), &jobj); err == nil {
			return tickerPrice(jobj, ticker)
		}
		// free text, the first number in it is the price.
		return parsePrice(firstNumber.FindString(text))
	}
	return 0, false
}

// tickerPrice reads jobj[ticker].price.
func tickerPrice(jobj any, ticker string) (float64, bool) {
	quotes, ok := jobj.(map[string]any)
	if !ok {
		return 0, false
	}
	quote, ok := quotes[ticker].(map[string]any)
	if !ok {
		return 0, false
	}
	return parsePrice(quote["price"])
}
