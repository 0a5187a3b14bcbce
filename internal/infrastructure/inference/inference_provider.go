// Package inference builds the HTTP clients used to reach the remote chat
// and image generation providers.
package inference

import (
	"glow-server/internal/config"
	httpclients "glow-server/internal/utils/httpclients"
	chatclient "glow-server/internal/utils/httpclients/chat"
	imageclient "glow-server/internal/utils/httpclients/image"
)

type InferenceProvider struct {
	chat  *chatclient.ChatCompletionClient
	image *imageclient.ImageGenerationClient

	chatAPIKey  string
	imageAPIKey string
}

func NewInferenceProvider(cfg *config.Config) *InferenceProvider {
	chatResty := httpclients.NewClient("ChatProviderClient")
	chatResty.SetBaseURL(cfg.ChatProviderBaseURL)
	chatResty.SetTimeout(cfg.HTTPTimeout)

	imageResty := httpclients.NewClient("ImageProviderClient")
	imageResty.SetBaseURL(cfg.ImageProviderBaseURL)
	imageResty.SetTimeout(cfg.HTTPTimeout)

	return &InferenceProvider{
		chat:        chatclient.NewChatCompletionClient(chatResty, "ChatProviderClient", cfg.ChatProviderBaseURL),
		image:       imageclient.NewImageGenerationClient(imageResty, "ImageProviderClient", cfg.ImageProviderBaseURL),
		chatAPIKey:  cfg.ChatProviderAPIKey,
		imageAPIKey: cfg.ImageProviderAPIKey,
	}
}

func (ip *InferenceProvider) ChatClient() *chatclient.ChatCompletionClient {
	return ip.chat
}

func (ip *InferenceProvider) ChatAPIKey() string {
	return ip.chatAPIKey
}

func (ip *InferenceProvider) ImageClient() *imageclient.ImageGenerationClient {
	return ip.image
}

func (ip *InferenceProvider) ImageAPIKey() string {
	return ip.imageAPIKey
}
