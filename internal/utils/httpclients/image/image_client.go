package image

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"glow-server/internal/utils/platformerrors"

	"resty.dev/v3"
)

const requestTimeout = 180 * time.Second

// GenerateRequest is an OpenAI-compatible image generation request body.
type GenerateRequest struct {
	Model          string `json:"model,omitempty"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n,omitempty"`
	Size           string `json:"size,omitempty"`
	ResponseFormat string `json:"response_format,omitempty"`
	User           string `json:"user,omitempty"`
}

// GenerateResponse is an OpenAI-compatible image generation response body.
type GenerateResponse struct {
	Created int64       `json:"created"`
	Data    []ImageData `json:"data"`
}

// ImageData is a single generated image.
type ImageData struct {
	URL           string `json:"url,omitempty"`
	B64JSON       string `json:"b64_json,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

// ImageGenerationClient talks to an OpenAI-compatible image generation
// endpoint. Single attempt per call, no retry.
type ImageGenerationClient struct {
	client  *resty.Client
	baseURL string
	name    string
}

func NewImageGenerationClient(client *resty.Client, name, baseURL string) *ImageGenerationClient {
	return &ImageGenerationClient{
		client:  client,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		name:    name,
	}
}

func (c *ImageGenerationClient) Generate(ctx context.Context, apiKey string, request GenerateRequest) (*GenerateResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req := c.client.R().SetContext(ctx)
	req.SetHeader("Content-Type", "application/json")
	if strings.TrimSpace(apiKey) != "" {
		req.SetHeader("Authorization", fmt.Sprintf("Bearer %s", apiKey))
	}

	var respBody GenerateResponse
	resp, err := req.
		SetBody(request).
		SetResult(&respBody).
		Post(c.baseURL + "/images/generations")
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, "image generation request failed", err, "")
	}
	if resp.IsError() {
		return nil, c.errorFromResponse(ctx, resp, "image generation request failed")
	}
	if len(respBody.Data) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, "image generation returned no images", nil, "")
	}
	return &respBody, nil
}

func (c *ImageGenerationClient) errorFromResponse(ctx context.Context, resp *resty.Response, message string) error {
	if resp == nil || resp.RawResponse == nil || resp.RawResponse.Body == nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, message, nil, "")
	}
	defer resp.RawResponse.Body.Close()
	body, err := io.ReadAll(resp.RawResponse.Body)
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, message, nil, "")
	}
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, message, nil, "")
	}
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, fmt.Sprintf("%s: %s", message, trimmed), nil, "")
}
