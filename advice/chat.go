package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"debt-planner/domain"
)

const (
	defaultAPIURL  = "https://api.openai.com/v1/chat/completions"
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 5 * time.Second
	maxTokens      = 300

	systemPrompt = "Eres un asesor financiero experto en planes de salida de deudas. Proporcionas explicaciones claras, precisas y motivacionales en español, fáciles de entender y orientadas a que el usuario tome decisiones financieras informadas."
)

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ChatAdvisor asks an OpenAI compatible chat completions endpoint for the
// summary and falls back to Fallback when the call fails. Each Advise call,
// retries included, is bounded by the configured timeout.
type ChatAdvisor struct {
	apiKey   string
	apiURL   string
	model    string
	timeout  time.Duration
	client   *retryablehttp.Client
	fallback Advisor
}

func NewChatAdvisor(opts Options) *ChatAdvisor {
	if opts.APIURL == "" {
		opts.APIURL = defaultAPIURL
	}
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	client := retryablehttp.NewClient()
	client.RetryMax = opts.MaxRetries
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = opts.Timeout
	client.Logger = nil

	return &ChatAdvisor{
		apiKey:   opts.APIKey,
		apiURL:   opts.APIURL,
		model:    opts.Model,
		timeout:  opts.Timeout,
		client:   client,
		fallback: Fallback{},
	}
}

func (a *ChatAdvisor) Advise(ctx context.Context, p domain.DebtProjection) string {
	if len(p.PayoffDetails) == 0 {
		return a.fallback.Advise(ctx, p)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.complete(ctx, buildPrompt(p))
	if err != nil {
		log.Printf("Error calling AI service for debt strategy: %v", err)
		return a.fallback.Advise(ctx, p)
	}
	return text
}

func buildPrompt(p domain.DebtProjection) string {
	var debts strings.Builder
	for _, d := range p.PayoffDetails {
		fmt.Fprintf(&debts, "- %s: intereses $%s, capital $%s, saldada en el mes %d\n",
			d.DebtID, d.InterestPaid.StringFixed(2), d.PrincipalPaid.StringFixed(2), d.MonthsToPayoff)
	}

	horizon := fmt.Sprintf("%d meses (%.1f años)", p.MonthsToPayoff, float64(p.MonthsToPayoff)/12.0)
	if !p.Converges() {
		horizon = fmt.Sprintf("nunca: el plan no termina en %d años con los pagos actuales", maxYears)
	}

	return fmt.Sprintf(`Analiza este plan de salida de deudas y genera una explicación clara, motivacional y educativa.

ESTRATEGIA: %s

RESUMEN FINANCIERO:
- Total de capital a pagar: $%s
- Total de intereses a pagar: $%s
- Tiempo estimado para pagar todo: %s

DEUDAS INCLUIDAS:
%s
INSTRUCCIONES:
1. Explica qué es la estrategia %s y cómo funciona.
2. Sé específico con los números y tiempos.
3. Si el plan no termina, explica por qué y qué puede cambiar el usuario.

Genera una explicación de 3-4 oraciones.`,
		strategyName(p.Strategy),
		p.TotalPrincipalPaid.StringFixed(2), p.TotalInterestPaid.StringFixed(2), horizon,
		debts.String(),
		strategyName(p.Strategy))
}

func (a *ChatAdvisor) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal request")
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, a.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "chat completion request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", errors.Errorf("API error (status %d): %s", resp.StatusCode, string(msg))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errors.Wrap(err, "failed to parse response")
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", errors.New("no response from AI")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
