package environment

import (
	"context"
	"strconv"
)

const (
	GoogleAPIKeyEnv        = "GOOGLE_API_KEY"
	GoogleUseVertexAIEnv   = "GOOGLE_GENAI_USE_VERTEXAI"
	GoogleCloudProjectEnv  = "GOOGLE_CLOUD_PROJECT"
	GoogleCloudLocationEnv = "GOOGLE_CLOUD_LOCATION"
)

// UseVertexAI reports whether Gemini should be reached through Vertex AI
// rather than the Gemini API.
func UseVertexAI(ctx context.Context, env Provider) bool {
	value, _ := env.Get(ctx, GoogleUseVertexAIEnv)
	enabled, err := strconv.ParseBool(value)
	return err == nil && enabled
}

// CheckGeminiEnv returns a *RequiredEnvError listing every variable the Gemini
// backend needs but that is unset or empty.
func CheckGeminiEnv(ctx context.Context, env Provider) error {
	required := []string{GoogleAPIKeyEnv}
	if UseVertexAI(ctx, env) {
		required = []string{GoogleCloudProjectEnv, GoogleCloudLocationEnv}
	}

	var missing []string
	for _, name := range required {
		if value, ok := env.Get(ctx, name); !ok || value == "" {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return &RequiredEnvError{Missing: missing}
	}
	return nil
}
