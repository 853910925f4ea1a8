// Package sui is a minimal JSON-RPC client for minting the project
// completion proof on a Sui fullnode.
package sui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"time"
)

// MintModule and MintFunction identify the move call of the deployed
// completion-proof package.
const (
	MintModule   = "task_bomb"
	MintFunction = "mint_project_completion_proof"
)

// maxScore is the u16 ceiling of the on-chain contribution score field.
const maxScore = 65535

type Client struct {
	RPCURL    string
	PackageID string
	Sender    string // gas-paying address configured server-side
	ImageURL  string
	GasBudget uint64
	DryRun    bool

	http *http.Client
}

func NewClient(rpcURL, packageID, sender, imageURL string, gasBudget uint64, dryRun bool) *Client {
	if gasBudget == 0 {
		gasBudget = 10_000_000
	}
	return &Client{
		RPCURL:    rpcURL,
		PackageID: packageID,
		Sender:    sender,
		ImageURL:  imageURL,
		GasBudget: gasBudget,
		DryRun:    dryRun,
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

// MintParams is the contribution summary plus the recipient, exactly
// the payload the move call takes.
type MintParams struct {
	Recipient          string
	ProjectName        string
	CompletedTasks     int
	TotalEstimatedTime int
	TotalActualTime    int
	CompletedAt        time.Time
	ContributionScore  float64
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	Result struct {
		Digest string `json:"digest"`
	} `json:"result"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// MintCompletionProof submits the mint transaction and returns its digest.
// One attempt, no retry; the caller decides what a failure means.
func (c *Client) MintCompletionProof(ctx context.Context, p MintParams) (string, error) {
	if p.Recipient == "" {
		return "", fmt.Errorf("recipient address is empty")
	}

	// DRY-RUN: no network traffic, synthetic digest.
	if c.DryRun || c.PackageID == "" {
		digest := fmt.Sprintf("DRYRUN-%d", time.Now().UnixNano())
		log.Printf("[sui][mint][dry-run] recipient=%s project=%q score=%.1f digest=%s",
			p.Recipient, p.ProjectName, p.ContributionScore, digest)
		return digest, nil
	}

	score := int(math.Round(p.ContributionScore))
	if score > maxScore {
		score = maxScore
	}

	args := []interface{}{
		p.Recipient,
		p.ProjectName,
		p.CompletedTasks,
		p.TotalEstimatedTime,
		p.TotalActualTime,
		p.CompletedAt.UnixMilli(),
		score,
		[]byte(c.ImageURL),
	}

	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "unsafe_moveCall",
		Params: []interface{}{
			c.Sender,
			c.PackageID,
			MintModule,
			MintFunction,
			[]interface{}{}, // no type arguments
			args,
			nil, // node picks the gas object
			fmt.Sprintf("%d", c.GasBudget),
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal mint request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.RPCURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build mint request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	log.Printf("[sui][mint] rpc=%s package=%s recipient=%s", c.RPCURL, c.PackageID, p.Recipient)
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("mint request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mint request failed: status=%d body=%s", resp.StatusCode, string(respBody))
	}

	var result rpcResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("parse mint response: %w", err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("sui rpc error: code=%d message=%s", result.Error.Code, result.Error.Message)
	}
	if result.Result.Digest == "" {
		return "", fmt.Errorf("sui rpc returned no digest: body=%s", string(respBody))
	}

	log.Printf("[sui][mint][ok] digest=%s", result.Result.Digest)
	return result.Result.Digest, nil
}
