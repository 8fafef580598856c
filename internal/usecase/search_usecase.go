package usecase

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/search"
)

type SearchUsecase struct {
	products repo.ProductRepository
}

func NewSearchUsecase(products repo.ProductRepository) *SearchUsecase {
	return &SearchUsecase{products: products}
}

type SearchMetadata struct {
	OriginalQuery  string         `json:"originalQuery"`
	ParsedFilters  search.Filters `json:"parsedFilters"`
	SearchQuery    string         `json:"searchQuery"`
	TotalResults   int            `json:"totalResults"`
	AppliedFilters search.Filters `json:"appliedFilters"`
}

type SearchOutput struct {
	Products       []model.Product `json:"products"`
	SearchMetadata SearchMetadata  `json:"searchMetadata"`
}

// 検索語を分解して公開商品を絞り込む
func (u *SearchUsecase) Search(ctx context.Context, query string) (SearchOutput, error) {
	//空白だけの検索語は条件なしの検索になる
	if query == "" {
		return SearchOutput{}, NewHTTPError(http.StatusBadRequest, "Query is required and must be a string")
	}

	filters := search.ParseQuery(query)

	products, err := u.products.ListActive(ctx)
	if err != nil {
		return SearchOutput{}, internalError(err, "search products")
	}
	matched := search.Filter(filters, products)

	return SearchOutput{
		Products: matched,
		SearchMetadata: SearchMetadata{
			OriginalQuery:  query,
			ParsedFilters:  filters,
			SearchQuery:    search.BuildQuery(filters),
			TotalResults:   len(matched),
			AppliedFilters: filters,
		},
	}, nil
}
