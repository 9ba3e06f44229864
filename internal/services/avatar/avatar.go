// Package avatar generates and caches the Gyani mascot image. Generation
// runs at most once per store lifetime under a fixed cache key; any failure
// falls back to a static image so the rest of the application never waits
// on it.
package avatar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/meghamaniyar/credisage101-finscoreai/internal/utils"
)

// CacheKey identifies the mascot image blob in whichever store backs the
// cache. Bumping the suffix invalidates previously generated avatars.
const CacheKey = "finscore_gyani_avatar_v5"

// FallbackURL is the static mascot used when generation fails.
const FallbackURL = "https://api.dicebear.com/7.x/avataaars/svg?seed=GyaniTraditional&clothing=modernTraditional&facialHair=longBeard&top=topBun&mouth=smile&accessories=round"

const mascotPrompt = "A funny and joyful Indian sage mascot named Gyani. He has long white hair " +
	"tied in a high top-knot bun with dark rudraksha beads around the base of the bun. He has a " +
	"long white beard and white tilak lines on his forehead. He is wearing traditional saffron " +
	"(orange) robes, including a dhoti and a shawl draped over his shoulder. He wears cool round " +
	"spectacles (glasses). In one hand, he holds a small golden kamandalu (water pot). 3D " +
	"Pixar-style character design, bright vibrant colors, happy and inspiring expression. Clean " +
	"white background, soft studio lighting, high resolution."

// Store is the cache the generated image persists in across sessions.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}

// Generator produces the mascot image via the Gemini image model.
type Generator struct {
	apiKey  string
	baseURL string
	client  *http.Client
	store   Store
}

// NewGenerator creates a generator backed by the given cache store.
func NewGenerator(apiKey string, store Store) *Generator {
	return &Generator{
		apiKey:  apiKey,
		baseURL: "https://generativelanguage.googleapis.com/v1beta/models",
		client:  &http.Client{Timeout: 30 * time.Second},
		store:   store,
	}
}

// Ensure returns the mascot image, generating and caching it on first call.
// The returned value is either a data URI or the static fallback URL; it is
// never empty and the method never returns an error to the caller's flow.
func (g *Generator) Ensure(ctx context.Context) string {
	if cached, ok, err := g.store.Get(ctx, CacheKey); err == nil && ok {
		return cached
	} else if err != nil {
		utils.GetLogger().Warn("Avatar cache read failed", zap.Error(err))
	}

	image, err := g.generate(ctx)
	if err != nil {
		utils.GetLogger().Warn("Avatar generation failed, using fallback", zap.Error(err))
		return FallbackURL
	}

	if err := g.store.Put(ctx, CacheKey, image); err != nil {
		utils.GetLogger().Warn("Avatar cache write failed", zap.Error(err))
	}
	return image
}

func (g *Generator) generate(ctx context.Context) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("no API key configured")
	}

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": mascotPrompt},
				},
			},
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/gemini-2.5-flash-image:generateContent?key=%s", g.baseURL, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, strings.NewReader(string(jsonBody)))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return parseInlineImage(result)
}

// parseInlineImage extracts the first inline image part as a data URI.
func parseInlineImage(result map[string]interface{}) (string, error) {
	candidates, ok := result["candidates"].([]interface{})
	if !ok || len(candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	candidate, ok := candidates[0].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("malformed candidate")
	}
	content, ok := candidate["content"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("malformed content")
	}
	parts, ok := content["parts"].([]interface{})
	if !ok {
		return "", fmt.Errorf("no parts in content")
	}

	for _, p := range parts {
		part, ok := p.(map[string]interface{})
		if !ok {
			continue
		}
		inline, ok := part["inlineData"].(map[string]interface{})
		if !ok {
			continue
		}
		data, ok := inline["data"].(string)
		if ok && data != "" {
			return "data:image/png;base64," + data, nil
		}
	}
	return "", fmt.Errorf("no inline image in response")
}
