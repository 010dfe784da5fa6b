package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
	"github.com/tiendastsgt/agencia/internal/config"
	"github.com/tiendastsgt/agencia/internal/modules/model"
	"github.com/tiendastsgt/agencia/internal/modules/repo"
	"github.com/tiendastsgt/agencia/internal/pkg/llmjson"
	"github.com/tiendastsgt/agencia/internal/pkg/tokenizer"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ContentTypePost     = "post"
	ContentTypeStrategy = "strategy"
	ContentTypeAnalysis = "analysis"
)

var ErrInvalidContentType = errors.New("tipo de contenido no válido")

// ContentService generates marketing content for a client with OpenAI and
// persists every result. A reply that fails to parse as JSON degrades to a
// client-specific fallback payload instead of an error.
type ContentService interface {
	Generate(ctx context.Context, in GenerateContentInput) (*model.GeneratedContent, error)
	History(ctx context.Context, in ContentHistoryInput) ([]model.GeneratedContent, error)
}

type contentService struct {
	clients  repo.ClientRepo
	contents repo.ContentRepo
	oai      openai.Client
	cfg      *config.Config
	log      *zap.Logger
}

func NewContentService(clients repo.ClientRepo, contents repo.ContentRepo, oai openai.Client, cfg *config.Config, log *zap.Logger) ContentService {
	return &contentService{
		clients:  clients,
		contents: contents,
		oai:      oai,
		cfg:      cfg,
		log:      log,
	}
}

type GenerateContentInput struct {
	AgencyID     uuid.UUID `json:"agency_id"`
	ClientID     uuid.UUID `json:"client_id"`
	Type         string    `json:"type"`
	Topic        string    `json:"topic"`
	Platform     string    `json:"platform"`
	Tone         string    `json:"tone"`
	CustomPrompt string    `json:"custom_prompt"`
}

type ContentHistoryInput struct {
	AgencyID uuid.UUID `json:"agency_id"`
	ClientID uuid.UUID `json:"client_id"`
	Type     string    `json:"type"`
	Limit    int       `json:"limit"`
}

func (s *contentService) Generate(ctx context.Context, in GenerateContentInput) (*model.GeneratedContent, error) {
	if in.Type != ContentTypePost && in.Type != ContentTypeStrategy && in.Type != ContentTypeAnalysis {
		return nil, ErrInvalidContentType
	}

	client, err := s.clients.GetByID(ctx, in.AgencyID, in.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	if in.Platform == "" {
		in.Platform = "general"
	}
	if in.Tone == "" {
		in.Tone = "profesional"
	}

	systemPrompt, userPrompt := buildPrompts(client, in)

	promptTokens := 0
	if n, err := tokenizer.CountTokens(systemPrompt + userPrompt); err == nil {
		promptTokens = n
	}

	resp, err := s.oai.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.cfg.OpenAI.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		MaxCompletionTokens: openai.Int(2000),
		Temperature:         openai.Float(s.cfg.OpenAI.Temperature),
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai returned no choices")
	}

	status := "real"
	payload, err := llmjson.Extract(resp.Choices[0].Message.Content)
	if err != nil {
		s.log.Warn("model reply did not parse as JSON, using fallback content",
			zap.String("client_id", client.ID.String()),
			zap.Error(err))
		payload = fallbackContent(client)
		status = "fallback"
	}

	payload["client_info"] = map[string]interface{}{
		"id":       client.ID.String(),
		"name":     client.Name,
		"industry": clientIndustry(client),
	}
	payload["generation_timestamp"] = time.Now().UTC().Format(time.RFC3339)
	payload["content_type"] = in.Type
	payload["platform"] = in.Platform

	content := &model.GeneratedContent{
		ClientID:     client.ID,
		ContentType:  in.Type,
		Platform:     in.Platform,
		Topic:        in.Topic,
		Payload:      datatypes.JSONMap(payload),
		Model:        s.cfg.OpenAI.Model,
		PromptTokens: promptTokens,
		Status:       status,
	}
	if err := s.contents.Create(ctx, content); err != nil {
		return nil, err
	}

	s.log.Info("content generated",
		zap.String("client_id", client.ID.String()),
		zap.String("type", in.Type),
		zap.String("status", status))

	return content, nil
}

func (s *contentService) History(ctx context.Context, in ContentHistoryInput) ([]model.GeneratedContent, error) {
	if _, err := s.clients.GetByID(ctx, in.AgencyID, in.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	limit := in.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.contents.ListByClient(ctx, in.ClientID, in.Type, limit)
}

func clientIndustry(c *model.Client) string {
	if c.Industry != "" {
		return c.Industry
	}
	return c.BusinessType
}

func jsonOrEmpty(m datatypes.JSONMap) string {
	if len(m) == 0 {
		return "{}"
	}
	b, err := sonic.MarshalIndent(map[string]interface{}(m), "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

func clientBrief(c *model.Client) string {
	return fmt.Sprintf(`=== INFORMACIÓN DEL CLIENTE ===
Empresa: %s
Industria: %s
Descripción: %s
Propuesta de Valor: %s
Sitio Web: %s
País: %s

=== AUDIENCIA OBJETIVO ===
%s

=== ANÁLISIS DE COMPETENCIA ===
%s

=== PERFILES SOCIALES ===
%s
`,
		c.Name, clientIndustry(c), c.Description, c.UniqueValueProposition,
		c.WebsiteURL, c.Country,
		jsonOrEmpty(c.TargetAudience), jsonOrEmpty(c.Competitors), jsonOrEmpty(c.SocialProfiles))
}

func buildPrompts(c *model.Client, in GenerateContentInput) (string, string) {
	topic := in.Topic
	if topic == "" {
		topic = "el negocio"
	}

	var systemPrompt, task string
	switch in.Type {
	case ContentTypePost:
		systemPrompt = fmt.Sprintf(`Eres un experto en marketing digital especializado en el framework "Hook-Story-Offer".

Generas contenido de alta conversión para redes sociales que:
1. HOOK: Captura atención en los primeros 3 segundos
2. STORY: Conecta emocionalmente con narrativas persuasivas
3. OFFER: Impulsa acción con ofertas irresistibles

IMPORTANTE: Responde ÚNICAMENTE con un JSON válido, sin texto adicional ni formato markdown, con esta estructura:
{
  "hook": "Gancho que para el scroll",
  "story": "Historia que conecta emocionalmente",
  "offer": "Oferta específica con llamada a la acción",
  "content_body": "Contenido final optimizado para %s",
  "hashtags": ["#hashtag1", "#hashtag2", "#hashtag3"],
  "call_to_action": "CTA específico",
  "optimal_posting_time": "Mejor horario para publicar en %s",
  "engagement_prediction": {
    "predicted_engagement_rate": "X%%",
    "expected_reach": "X personas",
    "estimated_likes": "X likes",
    "estimated_comments": "X comentarios"
  },
  "hashtag_suggestions": ["#h1", "#h2", "#h3", "#h4", "#h5"],
  "suggested_media": ["Sugerencia 1", "Sugerencia 2", "Sugerencia 3"]
}`, in.Platform, in.Platform)
		task = fmt.Sprintf(`GENERA un post para %s sobre "%s" con tono %s.

REQUISITOS OBLIGATORIOS:
1. ADAPTA TODO al mercado guatemalteco/centroamericano
2. Usa datos REALES de %s (no inventes información)
3. Incluye referencias específicas a su industria: %s
4. Menciona su propuesta de valor única: %s
5. Usa precios en Quetzales (Q) si mencionas costos
6. Incluye hashtags relevantes para Guatemala/Centroamérica`,
			in.Platform, topic, in.Tone, c.Name, clientIndustry(c), c.UniqueValueProposition)

	case ContentTypeStrategy:
		systemPrompt = `Eres un estratega de marketing digital experto que crea estrategias basadas en datos reales del cliente.

Debes responder ÚNICAMENTE en formato JSON con esta estructura exacta:
{
  "strategy_title": "Título de la estrategia",
  "objectives": ["Objetivo 1", "Objetivo 2", "Objetivo 3"],
  "target_analysis": "Análisis detallado de la audiencia objetivo",
  "competitive_advantage": "Ventaja competitiva específica",
  "tactics": [
    {
      "name": "Táctica 1",
      "description": "Descripción detallada",
      "timeline": "Cronograma",
      "expected_result": "Resultado esperado"
    }
  ],
  "metrics": ["KPI 1", "KPI 2", "KPI 3"],
  "budget_allocation": {
    "content_creation": "30%",
    "paid_advertising": "40%",
    "tools_and_software": "20%",
    "other": "10%"
  },
  "implementation_steps": ["Paso 1", "Paso 2", "Paso 3"]
}`
		task = fmt.Sprintf(`GENERA una estrategia de marketing digital para "%s".

REQUISITOS OBLIGATORIOS:
1. ADAPTA TODO al mercado guatemalteco/centroamericano
2. Usa datos REALES de %s (no inventes información)
3. Incluye tácticas específicas para el mercado local
4. Usa precios en Quetzales (Q) para presupuestos
5. Menciona plataformas populares en Guatemala (Facebook, Instagram, WhatsApp Business)`,
			topic, c.Name)

	case ContentTypeAnalysis:
		systemPrompt = `Eres un analista de mercado experto que realiza análisis profundos basados en datos del cliente.

Debes responder ÚNICAMENTE en formato JSON con esta estructura exacta:
{
  "analysis_title": "Título del análisis",
  "market_overview": "Visión general del mercado",
  "industry_trends": ["Tendencia 1", "Tendencia 2", "Tendencia 3"],
  "competitive_landscape": {
    "main_competitors": ["Competidor 1", "Competidor 2"],
    "competitive_gaps": ["Oportunidad 1", "Oportunidad 2"],
    "market_positioning": "Posicionamiento recomendado"
  },
  "target_audience_insights": {
    "demographics": "Datos demográficos clave",
    "psychographics": "Aspectos psicográficos",
    "pain_points": ["Dolor 1", "Dolor 2", "Dolor 3"],
    "opportunities": ["Oportunidad 1", "Oportunidad 2"]
  },
  "recommendations": [
    {
      "category": "Categoría",
      "recommendation": "Recomendación específica",
      "priority": "Alta/Media/Baja",
      "impact": "Impacto esperado"
    }
  ],
  "key_metrics_to_track": ["Métrica 1", "Métrica 2", "Métrica 3"]
}`
		task = fmt.Sprintf(`REALIZA un análisis de mercado sobre "%s".

REQUISITOS OBLIGATORIOS:
1. ADAPTA TODO al mercado guatemalteco/centroamericano
2. Usa datos REALES de %s (no inventes información)
3. Enfócate en el mercado de %s
4. Proporciona recomendaciones accionables para el contexto local`,
			topic, c.Name, orDefault(c.Country, "Guatemala"))
	}

	userPrompt := clientBrief(c) + "\n=== INSTRUCCIONES ESPECÍFICAS ===\n" + task
	if in.CustomPrompt != "" {
		userPrompt += "\n\nINSTRUCCIONES ADICIONALES: " + in.CustomPrompt
	}
	userPrompt += "\n\nCRÍTICO: Responde ÚNICAMENTE con un JSON válido, sin texto adicional ni formato markdown."

	return systemPrompt, userPrompt
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// fallbackContent builds a client-specific post payload when the model reply
// cannot be parsed. It carries every field the dashboard renders.
func fallbackContent(c *model.Client) map[string]interface{} {
	industry := clientIndustry(c)
	nameTag := "#" + strings.ReplaceAll(c.Name, " ", "")
	industryTag := "#" + strings.ReplaceAll(industry, " ", "")

	return map[string]interface{}{
		"hook":  fmt.Sprintf("Descubre lo que %s tiene para ti", c.Name),
		"story": fmt.Sprintf("En %s, entendemos las necesidades específicas de nuestros clientes. Por eso ofrecemos %s", c.Name, c.UniqueValueProposition),
		"offer": "Conoce más sobre nuestros productos y servicios. ¡Contáctanos hoy!",
		"content_body": fmt.Sprintf("🌟 Descubre lo que %s tiene para ti\n\nEn %s, entendemos las necesidades específicas de nuestros clientes. Por eso ofrecemos %s\n\n✨ Conoce más sobre nuestros productos y servicios. ¡Contáctanos hoy!\n\n%s %s",
			c.Name, c.Name, c.UniqueValueProposition, nameTag, industryTag),
		"hashtags":             []string{nameTag, industryTag, "#CalidadYConfianza"},
		"call_to_action":       "¡Contáctanos para más información!",
		"optimal_posting_time": "18:00 - 20:00",
		"engagement_prediction": map[string]interface{}{
			"predicted_engagement_rate": "8-12%",
			"expected_reach":            "500-800 personas",
			"estimated_likes":           "40-60 likes",
			"estimated_comments":        "5-10 comentarios",
		},
		"hashtag_suggestions": []string{nameTag, industryTag, "#Guatemala", "#CalidadYConfianza", "#MercadoLocal"},
		"suggested_media": []string{
			fmt.Sprintf("Imagen promocional de %s con productos destacados", c.Name),
			"Video testimonial de clientes satisfechos",
			fmt.Sprintf("Infografía con beneficios de %s", c.Name),
		},
		"fallback": true,
	}
}
