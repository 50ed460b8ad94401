package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

	moodFallbackIdle  = "Rayan está de olho nas suas Guaravitas..."
	moodFallbackError = "O Rayan está sem palavras com tanta dívida."
)

// MoodService generates the cosmetic mood phrase shown above the
// ledger. It is purely advisory: every failure — missing key, network
// error, empty response — collapses into a fixed fallback string, and
// no error ever crosses this boundary.
type MoodService struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewMoodService(apiKey string) *MoodService {
	return &MoodService{
		apiKey:   apiKey,
		endpoint: geminiEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Mood returns a short phrase about the owner's mood given the total
// outstanding amount. Never fails.
func (ms *MoodService) Mood(ctx context.Context, totalOutstanding int) string {
	if ms.apiKey == "" {
		return moodFallbackIdle
	}

	prompt := fmt.Sprintf(`O Rayan é o dono das Guaravitas. No momento, as pessoas devem um total de %d Guaravitas para ele.
Gere uma frase curta e engraçada (em português) sobre o humor do Rayan hoje baseado nessa dívida.
Se a dívida for alta, ele está bravo. Se for baixa, ele está quase perdoando (mas não totalmente).
Mantenha um tom informal e carioca.`, totalOutstanding)

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		log.Printf("❌ Mood marshal error: %v", err)
		return moodFallbackError
	}

	req, err := http.NewRequestWithContext(ctx, "POST", ms.endpoint+"?key="+ms.apiKey, bytes.NewBuffer(body))
	if err != nil {
		log.Printf("❌ Mood request error: %v", err)
		return moodFallbackError
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ms.client.Do(req)
	if err != nil {
		log.Printf("❌ Mood send error: %v", err)
		return moodFallbackError
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("⚠️  Gemini returned status: %d", resp.StatusCode)
		return moodFallbackError
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		log.Printf("❌ Mood decode error: %v", err)
		return moodFallbackError
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return moodFallbackIdle
	}
	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return moodFallbackIdle
	}
	return text
}
