package brain

import (
	"strings"
	"xpresabot/app/service/knowledge"
	"xpresabot/app/util/textnorm"
)

// Alternate spellings customers actually type for each canonical
// product-name fragment.
var synonyms = map[string][]string{
	"basquetbol": {"basquet", "basket", "basketball", "baloncesto", "basquetball"},
	"futbol":     {"fut", "soccer", "balompie", "fuchito"},
	"beisbol":    {"beis", "baseball", "pelota caliente"},
	"voleibol":   {"voley", "volleyball", "voleybol"},
	"uniforme":   {"traje", "kit", "equipacion", "jersey", "casaca"},
}

// detectProduct resolves which product the query talks about. A product
// named in the query wins over the carried-over context; a bare "uniforme"
// ask with no context defaults to the first futbol product.
func detectProduct(cleanQuery string, products []knowledge.Product, lastContext *knowledge.Product) *knowledge.Product {
	for i := range products {
		if products[i].Name == "" {
			continue
		}

		name := textnorm.Normalize(products[i].Name)
		if strings.Contains(cleanQuery, name) {
			return &products[i]
		}

		for canonical, variants := range synonyms {
			if strings.Contains(name, canonical) && containsAny(cleanQuery, variants) {
				return &products[i]
			}
		}
	}

	if lastContext != nil {
		return lastContext
	}

	if containsAny(cleanQuery, append([]string{"uniforme"}, synonyms["uniforme"]...)) {
		for i := range products {
			if strings.Contains(textnorm.Normalize(products[i].Name), "futbol") {
				return &products[i]
			}
		}
	}

	return nil
}
