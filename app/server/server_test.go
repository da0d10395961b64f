package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"xpresabot/app/client/envia"
	"xpresabot/app/client/manychat"
	"xpresabot/app/config"
	"xpresabot/app/service/botlog"
	"xpresabot/app/service/conversation"
	"xpresabot/app/service/knowledge"
	"xpresabot/app/service/session"
	"xpresabot/app/service/settings"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, mutate func(cfg *config.Config)) (*Server, *do.Injector) {
	t.Helper()

	cfg := &config.Config{
		Server: config.Server{Addr: ":0"},
		Data:   config.Data{Dir: t.TempDir()},
	}
	if mutate != nil {
		mutate(cfg)
	}

	di := do.New()
	t.Cleanup(func() { _ = di.Shutdown() })

	do.ProvideValue(di, cfg)
	do.Provide(di, settings.New)
	do.Provide(di, knowledge.New)
	do.Provide(di, session.New)
	do.Provide(di, botlog.New)
	do.Provide(di, conversation.New)
	do.Provide(di, manychat.NewClient)
	do.Provide(di, envia.NewClient)

	srv, err := New(di)
	require.NoError(t, err)

	seedServerKnowledge(t, di)

	return srv, di
}

func seedServerKnowledge(t *testing.T, di *do.Injector) {
	t.Helper()

	knowledgeSvc := do.MustInvoke[*knowledge.Service](di)

	require.NoError(t, knowledgeSvc.UpsertEntry(knowledge.Entry{
		Key:     "saludo_inicial",
		Content: "¡Hola! Bienvenido a Xpresa.",
		Active:  true,
	}))
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req
}

func decodeBody[T any](t *testing.T, res *http.Response) T {
	t.Helper()

	defer res.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))

	return out
}

func TestWebhookSendsMessage(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	req := jsonRequest(t, http.MethodPost, "/api/webhooks/manychat", webhookRequest{
		UserID:  "sub1",
		Content: "Hola",
	})

	res, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	body := decodeBody[webhookResponse](t, res)
	assert.Equal(t, "send_message", body.Action)
	assert.Equal(t, "¡Hola! Bienvenido a Xpresa.", body.Message)
}

func TestWebhookSilentReason(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	req := jsonRequest(t, http.MethodPost, "/api/webhooks/manychat", webhookRequest{
		UserID:  "sub1",
		Content: "xyzzy",
	})

	res, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	body := decodeBody[webhookResponse](t, res)
	assert.Equal(t, "none", body.Action)
	assert.Equal(t, "low_confidence_or_repeat", body.Reason)
	assert.Empty(t, body.Message)
}

func TestWebhookBadBody(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/manychat", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	res, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestWebhookStatus(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	res, err := srv.App().Test(jsonRequest(t, http.MethodGet, "/api/webhooks/manychat", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	body := decodeBody[map[string]string](t, res)
	assert.Equal(t, "active", body["status"])
	assert.Equal(t, "manychat_webhook", body["endpoint"])
}

func TestMasterSwitchDisablesWebhook(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	res, err := srv.App().Test(jsonRequest(t, http.MethodPut, "/api/settings/bot", settingsPayload{BotActive: false}), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, err = srv.App().Test(jsonRequest(t, http.MethodPost, "/api/webhooks/manychat", webhookRequest{
		UserID:  "sub1",
		Content: "Hola",
	}), -1)
	require.NoError(t, err)

	body := decodeBody[webhookResponse](t, res)
	assert.Equal(t, "none", body.Action)
	assert.Equal(t, "bot_disabled", body.Reason)

	res, err = srv.App().Test(jsonRequest(t, http.MethodGet, "/api/settings/bot", nil), -1)
	require.NoError(t, err)
	assert.False(t, decodeBody[settingsPayload](t, res).BotActive)
}

func TestKnowledgeCRUD(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	entry := knowledge.Entry{Key: "envio_gratis", Content: "Gratis desde 7 piezas.", Active: true}
	res, err := srv.App().Test(jsonRequest(t, http.MethodPost, "/api/knowledge", entry), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, err = srv.App().Test(jsonRequest(t, http.MethodGet, "/api/knowledge", nil), -1)
	require.NoError(t, err)
	entries := decodeBody[[]knowledge.Entry](t, res)
	assert.Len(t, entries, 2)

	res, err = srv.App().Test(jsonRequest(t, http.MethodDelete, "/api/knowledge/envio_gratis", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	res, err = srv.App().Test(jsonRequest(t, http.MethodDelete, "/api/knowledge/envio_gratis", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestKnowledgeImportFromManyChat(t *testing.T) {
	fields := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fb/page/getBotFields", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"data":[
			{"id":1,"name":"envio_gratis","type":"text","value":"El envío es gratis a partir de 7 piezas."},
			{"id":2,"name":"campo_vacio","type":"text","value":""},
			{"id":3,"name":"minimo_pedido","type":"number","value":7}
		]}`))
	}))
	defer fields.Close()

	srv, di := newTestServer(t, func(cfg *config.Config) {
		cfg.ManyChat = config.ManyChat{Token: "test-token", BaseURL: fields.URL}
	})

	res, err := srv.App().Test(jsonRequest(t, http.MethodPost, "/api/knowledge/import", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	body := decodeBody[importResponse](t, res)
	assert.Equal(t, 2, body.Imported)

	entries, err := do.MustInvoke[*knowledge.Service](di).Entries()
	require.NoError(t, err)
	assert.Len(t, entries, 3) // seeded greeting + two imported
}

func TestManyChatAdminEndpoints(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/fb/page/getFlows":
			_, _ = w.Write([]byte(`{"data":{"flows":[{"id":"f1","name":"Bienvenida","status":"active"}]}}`))
		case "/fb/page/getCustomFields":
			_, _ = w.Write([]byte(`{"data":[{"id":1,"name":"ultimo_producto","type":"text"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer api.Close()

	srv, _ := newTestServer(t, func(cfg *config.Config) {
		cfg.ManyChat = config.ManyChat{Token: "test-token", BaseURL: api.URL}
	})

	res, err := srv.App().Test(jsonRequest(t, http.MethodGet, "/api/manychat/flows", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	flows := decodeBody[[]manychat.Flow](t, res)
	require.Len(t, flows, 1)
	assert.Equal(t, "Bienvenida", flows[0].Name)

	res, err = srv.App().Test(jsonRequest(t, http.MethodGet, "/api/manychat/fields", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	fields := decodeBody[[]manychat.CustomField](t, res)
	require.Len(t, fields, 1)
	assert.Equal(t, "ultimo_producto", fields[0].Name)
}

func TestLogsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	req := jsonRequest(t, http.MethodPost, "/api/webhooks/manychat", webhookRequest{UserID: "sub1", Content: "Hola"})
	res, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, err = srv.App().Test(jsonRequest(t, http.MethodGet, "/api/logs?limit=5", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	records := decodeBody[[]botlog.Record](t, res)
	require.Len(t, records, 1)
	assert.Equal(t, "Hola", records[0].Question)
	assert.Equal(t, "Cerebro: saludo_inicial", records[0].Source)
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	res, err := srv.App().Test(jsonRequest(t, http.MethodGet, "/healthz", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
