package search

// 検索語から属性を抜き出すための固定テーブル。順序が優先度になる
var (
	colorKeywords = []string{
		"black", "white", "red", "blue", "green", "yellow", "purple", "pink",
		"orange", "brown", "gray", "grey", "navy", "maroon", "teal", "coral",
		"beige", "cream", "gold", "silver", "bronze", "transparent", "clear",
	}

	categoryKeywords = []categoryKeyword{
		{"electronics", []string{"phone", "laptop", "computer", "tablet", "headphones", "camera", "tv", "television"}},
		{"clothing", []string{"shirt", "t-shirt", "pants", "jeans", "dress", "skirt", "jacket", "hoodie", "sweater"}},
		{"shoes", []string{"shoes", "sneakers", "boots", "sandals", "heels", "flats"}},
		{"accessories", []string{"bag", "purse", "wallet", "watch", "jewelry", "belt", "scarf"}},
		{"home", []string{"furniture", "sofa", "chair", "table", "bed", "lamp", "mirror"}},
		{"sports", []string{"gym", "fitness", "running", "basketball", "soccer", "tennis", "yoga"}},
	}

	sizeKeywords = []string{"xs", "s", "m", "l", "xl", "xxl", "small", "medium", "large"}

	materialKeywords = []string{"cotton", "polyester", "wool", "silk", "leather", "denim", "linen"}

	brandKeywords = []string{"nike", "adidas", "apple", "samsung", "sony", "lg", "hp", "dell"}

	stopWords = toSet([]string{
		"i", "want", "to", "buy", "a", "an", "the", "and", "or", "but", "in", "on", "at",
		"for", "of", "with", "by", "under", "below", "above", "over", "between", "from",
		"up", "down", "out", "off", "through", "during", "before", "after", "since",
		"until", "while", "where", "why", "how", "what", "when", "who", "which", "that",
		"this", "these", "those", "is", "are", "was", "were", "be", "been", "being",
		"have", "has", "had", "do", "does", "did", "will", "would", "could", "should",
		"may", "might", "can", "must", "shall", "dollar", "dollars", "$",
	})

	//キーワードから除外する属性語
	attributeWords = toSet(concat(colorKeywords, sizeKeywords, materialKeywords, brandKeywords))
)

type categoryKeyword struct {
	name  string
	words []string
}

func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
