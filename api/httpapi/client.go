package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/axiomesh/hold-token/pkg/types"
)

// Client talks to a node API
type Client struct {
	base string
	http *http.Client
}

func NewClient(base string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "request %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		res := &ErrorResponse{}
		if err := json.NewDecoder(resp.Body).Decode(res); err != nil || res.Error == "" {
			return errors.Errorf("request %s: %s", path, resp.Status)
		}
		return errors.Errorf("request %s: %s", path, res.Error)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) SendTransaction(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, err
	}
	receipt := &types.Receipt{}
	if err := c.do(ctx, http.MethodPost, "/tx", &SendTransactionRequest{Raw: raw}, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (c *Client) Call(ctx context.Context, from ethcommon.Address, data []byte) ([]byte, error) {
	res := &CallResponse{}
	if err := c.do(ctx, http.MethodPost, "/call", &CallRequest{From: from, Data: data}, res); err != nil {
		return nil, err
	}
	return res.Ret, nil
}

func (c *Client) Receipt(ctx context.Context, hash ethcommon.Hash) (*types.Receipt, error) {
	receipt := &types.Receipt{}
	if err := c.do(ctx, http.MethodGet, "/receipt/"+hash.Hex(), nil, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (c *Client) Nonce(ctx context.Context, addr ethcommon.Address) (uint64, error) {
	res := &NonceResponse{}
	if err := c.do(ctx, http.MethodGet, "/nonce/"+addr.Hex(), nil, res); err != nil {
		return 0, err
	}
	return res.Nonce, nil
}

func (c *Client) Header(ctx context.Context) (*types.BlockHeader, error) {
	header := &types.BlockHeader{}
	if err := c.do(ctx, http.MethodGet, "/header", nil, header); err != nil {
		return nil, err
	}
	return header, nil
}

func (c *Client) Token(ctx context.Context) (*TokenResponse, error) {
	res := &TokenResponse{}
	if err := c.do(ctx, http.MethodGet, "/token", nil, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) Balance(ctx context.Context, addr ethcommon.Address) (*BalanceResponse, error) {
	res := &BalanceResponse{}
	if err := c.do(ctx, http.MethodGet, "/balance/"+addr.Hex(), nil, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) Held(ctx context.Context, addr ethcommon.Address) (*HeldResponse, error) {
	res := &HeldResponse{}
	if err := c.do(ctx, http.MethodGet, "/held/"+addr.Hex(), nil, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) Allowance(ctx context.Context, holder, spender ethcommon.Address) (*AllowanceResponse, error) {
	res := &AllowanceResponse{}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/allowance/%s/%s", holder.Hex(), spender.Hex()), nil, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) IncreaseTime(ctx context.Context, seconds uint64) (uint64, error) {
	res := &IncreaseTimeResponse{}
	if err := c.do(ctx, http.MethodPost, "/dev/increase-time", &IncreaseTimeRequest{Seconds: seconds}, res); err != nil {
		return 0, err
	}
	return res.Offset, nil
}

func (c *Client) Mine(ctx context.Context) (*types.BlockHeader, error) {
	header := &types.BlockHeader{}
	if err := c.do(ctx, http.MethodPost, "/dev/mine", nil, header); err != nil {
		return nil, err
	}
	return header, nil
}
