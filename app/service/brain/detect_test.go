package brain

import (
	"testing"
	"xpresabot/app/service/knowledge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectProductByName(t *testing.T) {
	products := testProducts()

	found := detectProduct("me interesa el uniforme futbol", products, nil)

	require.NotNil(t, found)
	assert.Equal(t, "Uniforme Futbol", found.Name)
}

func TestDetectProductBySynonym(t *testing.T) {
	products := testProducts()

	for _, variant := range []string{"basquet", "basket", "baloncesto"} {
		found := detectProduct("uniformes de "+variant, products, nil)

		require.NotNil(t, found, variant)
		assert.Equal(t, "Uniforme Basquetbol", found.Name, variant)
	}
}

func TestDetectProductKeepsContext(t *testing.T) {
	products := testProducts()
	carried := &products[1]

	found := detectProduct("y en azul?", products, carried)

	assert.Same(t, carried, found)
}

func TestDetectProductNoMatchNoContext(t *testing.T) {
	assert.Nil(t, detectProduct("hola", testProducts(), nil))
}

func TestDetectProductSkipsUnnamed(t *testing.T) {
	products := []knowledge.Product{{}, {Name: "Uniforme Futbol"}}

	found := detectProduct("quiero el uniforme futbol", products, nil)

	require.NotNil(t, found)
	assert.Equal(t, "Uniforme Futbol", found.Name)
}
