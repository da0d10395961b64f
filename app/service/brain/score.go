package brain

import (
	"strings"
	"unicode/utf8"
	"xpresabot/app/service/knowledge"
	"xpresabot/app/util/textnorm"
)

const (
	keyGreeting     = "saludo_inicial"
	keyTrust        = "seguridad_y_confianza"
	keyFreeShipping = "envio_gratis"
)

const (
	greetingScore      = 500
	trustScore         = 100
	intentKeyScore     = 50
	intentContentScore = 10
	tokenKeyScore      = 20
	tokenQuestionScore = 15
	tokenContentScore  = 5

	maxGreetingQueryLen = 15
	minTokenLen         = 3

	// minimum score for a knowledge hit to answer directly, without
	// going through the shipping/price branches first
	directAnswerScore = 50
)

var greetingKeywords = []string{"hola", "buenos dias", "buenas tardes", "buenas noches", "saludos", "que tal"}

var trustKeywords = []string{"seguro", "confiar", "confianza", "estafa", "referencia", "miedo", "real", "verdad"}

type intent struct {
	keywords []string
	target   string
}

var intents = []intent{
	{keywords: []string{"pago", "pagar", "deposito", "transferencia", "mercadopago"}, target: "pago"},
	{keywords: []string{"envio", "mandar", "llega", "entrega", "tiempo", "mensajeria", "tarda", "demora"}, target: "envio"},
	{keywords: []string{"talla", "medida", "centimetro", "grande", "chico", "size"}, target: "talla"},
	{keywords: []string{"pieza", "minimo", "menudeo", "unidad", "individual", "cuanto es lo menos", "1", "2", "3", "4", "5", "6"}, target: "minimo"},
	{keywords: []string{"diseno", "nombre", "numero", "escudo", "patrocinador", "logo", "logotipo", "personalizado"}, target: "personalizacion"},
}

// scoreEntry runs the rule pipeline for one entry against the normalized
// query. The greeting and trust rules decide the entry on their own; the
// intent boosts and the general token pass are additive.
func scoreEntry(cleanQuery string, entry knowledge.Entry) int {
	key := textnorm.Normalize(entry.Key)
	question := textnorm.Normalize(entry.Question)
	content := textnorm.Normalize(entry.Content)

	if containsAny(cleanQuery, greetingKeywords) && utf8.RuneCountInString(cleanQuery) <= maxGreetingQueryLen {
		if key == keyGreeting {
			return greetingScore
		}

		return 0
	}

	if key == keyTrust && containsAny(cleanQuery, trustKeywords) {
		return trustScore
	}

	score := 0

	for _, it := range intents {
		if !containsAny(cleanQuery, it.keywords) {
			continue
		}

		if strings.Contains(key, it.target) || strings.Contains(question, it.target) {
			score += intentKeyScore
		} else if strings.Contains(content, it.target) {
			score += intentContentScore
		}
	}

	for _, word := range strings.Fields(cleanQuery) {
		if utf8.RuneCountInString(word) <= minTokenLen {
			continue
		}

		if strings.Contains(key, word) {
			score += tokenKeyScore
		}
		if strings.Contains(question, word) {
			score += tokenQuestionScore
		}
		if strings.Contains(content, word) {
			score += tokenContentScore
		}
	}

	return score
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}

	return false
}
