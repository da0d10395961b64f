package brain

import (
	"testing"
	"xpresabot/app/service/knowledge"

	"github.com/stretchr/testify/assert"
)

func TestScoreGreetingBoostsOnlyGreetingEntry(t *testing.T) {
	greeting := knowledge.Entry{Key: "saludo_inicial", Content: "¡Hola!"}
	other := knowledge.Entry{Key: "envio_gratis", Content: "El envío es gratis, hola."}

	assert.Equal(t, 500, scoreEntry("hola", greeting))
	// a detected greeting zeroes every other entry even when its text matches
	assert.Equal(t, 0, scoreEntry("hola", other))
}

func TestScoreGreetingLengthLimit(t *testing.T) {
	greeting := knowledge.Entry{Key: "saludo_inicial", Content: "¡Hola!"}

	assert.Equal(t, 500, scoreEntry("buenos dias!", greeting))
	// 15 runes still counts as a bare greeting, 16 does not
	assert.Equal(t, 500, scoreEntry("buenos dias!!!!", greeting))
	assert.Equal(t, 0, scoreEntry("buenos dias!!!!!", greeting))
	assert.Equal(t, 0, scoreEntry("buenos dias, busco uniformes para mi equipo", greeting))
}

func TestScoreTrustShortCircuits(t *testing.T) {
	trust := knowledge.Entry{Key: "seguridad_y_confianza", Content: "Miles de clientes felices."}

	// exactly the trust boost, no token additions on top
	assert.Equal(t, 100, scoreEntry("puedo confiar en ustedes", trust))
	assert.Equal(t, 0, scoreEntry("que colores tienen", trust))
}

func TestScoreIntentsAreAdditive(t *testing.T) {
	entry := knowledge.Entry{Key: "envio_y_pago"}

	// pago intent +50, envio intent +50, tokens "pago" and "envio" in key +20 each
	assert.Equal(t, 140, scoreEntry("pago y envio", entry))
}

func TestScoreIntentContentOnlyIsWeak(t *testing.T) {
	entry := knowledge.Entry{Key: "faq1", Content: "Aceptamos pago con tarjeta."}

	assert.Equal(t, 10, scoreEntry("puedo pagar?", entry))
}

func TestScoreTokenWeights(t *testing.T) {
	entry := knowledge.Entry{
		Key:      "tallas",
		Question: "que tallas tienen",
		Content:  "tallas de s a xxl",
	}

	// talla intent on key +50, token "tallas" in key/question/content +20+15+5
	assert.Equal(t, 90, scoreEntry("tallas", entry))
}

func TestScoreShortTokensIgnored(t *testing.T) {
	entry := knowledge.Entry{Key: "faq", Content: "el de ya"}

	assert.Equal(t, 0, scoreEntry("el de ya", entry))
}

func TestScoreDiacriticsStripped(t *testing.T) {
	entry := knowledge.Entry{Key: "personalizacion", Question: "¿Hacen diseños personalizados?"}

	withAccent := scoreEntry("quiero un diseño personalizado", entry)
	withoutAccent := scoreEntry("quiero un diseno personalizado", entry)

	assert.Equal(t, withAccent, withoutAccent)
	assert.Greater(t, withAccent, 0)
}
