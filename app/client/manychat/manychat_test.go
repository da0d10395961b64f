package manychat

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"xpresabot/app/config"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	di := do.New()
	t.Cleanup(func() { _ = di.Shutdown() })

	do.ProvideValue(di, &config.Config{
		ManyChat: config.ManyChat{Token: "test-token", BaseURL: baseURL},
	})

	client, err := NewClient(di)
	require.NoError(t, err)

	return client
}

func TestGetFlows(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fb/page/getFlows", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		fmt.Fprint(w, `{"data":{"flows":[{"id":"f1","name":"Bienvenida","status":"active"}]}}`)
	}))
	defer ts.Close()

	flows, err := newTestClient(t, ts.URL).GetFlows(context.Background())
	require.NoError(t, err)
	require.Len(t, flows, 1)
	assert.Equal(t, "Bienvenida", flows[0].Name)
}

func TestGetCustomFields(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fb/page/getCustomFields", r.URL.Path)

		fmt.Fprint(w, `{"data":[{"id":1,"name":"ultimo_producto","type":"text"}]}`)
	}))
	defer ts.Close()

	fields, err := newTestClient(t, ts.URL).GetCustomFields(context.Background())
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "ultimo_producto", fields[0].Name)
}

func TestBotFieldValuesFlattens(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fb/page/getBotFields", r.URL.Path)

		fmt.Fprint(w, `{"data":[
			{"id":1,"name":"envio_gratis","type":"text","value":"Gratis desde 7 piezas."},
			{"id":2,"name":"minimo","type":"number","value":7},
			{"id":3,"name":"vacio","type":"text","value":""},
			{"id":4,"name":"nulo","type":"text","value":null}
		]}`)
	}))
	defer ts.Close()

	values, err := newTestClient(t, ts.URL).BotFieldValues(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"envio_gratis": "Gratis desde 7 piezas.",
		"minimo":       "7",
	}, values)
}

func TestAPIErrorMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"Invalid token"}`)
	}))
	defer ts.Close()

	_, err := newTestClient(t, ts.URL).GetFlows(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid token")
}

func TestMissingToken(t *testing.T) {
	client := newTestClient(t, "http://localhost:0")
	client.cfg.ManyChat.Token = ""

	_, err := client.GetBotFields(context.Background())
	assert.Error(t, err)
}
