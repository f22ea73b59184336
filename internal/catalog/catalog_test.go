package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"EduCom/internal/catalog"
)

func ids(products []catalog.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func allProducts(t *testing.T) []catalog.Product {
	t.Helper()
	all, err := catalog.NewMemStore().List(context.Background())
	require.NoError(t, err)
	return all
}

func TestMemStore_ListKeepsCatalogOrder(t *testing.T) {
	require.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8"}, ids(allProducts(t)))
}

func TestMemStore_GetReturnsCopy(t *testing.T) {
	s := catalog.NewMemStore()
	ctx := context.Background()

	p, ok, err := s.Get(ctx, "1")
	require.NoError(t, err)
	require.True(t, ok)
	p.Tags[0] = "mutated"

	again, _, _ := s.Get(ctx, "1")
	require.Equal(t, "React", again.Tags[0])

	_, ok, err = s.Get(ctx, "404")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestApply_PriceBuckets(t *testing.T) {
	all := allProducts(t)

	tests := []struct {
		bucket string
		want   []string
	}{
		{catalog.PriceUnder500K, []string{"5", "8"}},
		{catalog.Price500KTo1M, []string{"1", "2", "3", "4", "7"}},
		{catalog.Price1MTo2M, []string{"6"}},
		{catalog.PriceOver2M, []string{}},
		{catalog.All, []string{"1", "2", "3", "4", "5", "6", "7", "8"}},
		{"bogus", []string{"1", "2", "3", "4", "5", "6", "7", "8"}},
	}

	for _, tc := range tests {
		t.Run(tc.bucket, func(t *testing.T) {
			got := catalog.Apply(all, catalog.Filter{PriceRange: tc.bucket})
			require.Equal(t, tc.want, ids(got))
		})
	}
}

func TestApply_500KTo1MIsInclusive(t *testing.T) {
	products := []catalog.Product{
		{ID: "lo", Price: 500_000},
		{ID: "below", Price: 499_999},
		{ID: "hi", Price: 1_000_000},
		{ID: "above", Price: 1_000_001},
	}

	got := catalog.Apply(products, catalog.Filter{PriceRange: catalog.Price500KTo1M})
	require.Equal(t, []string{"lo", "hi"}, ids(got))

	got = catalog.Apply(products, catalog.Filter{PriceRange: catalog.Price1MTo2M})
	require.Equal(t, []string{"above"}, ids(got))
}

func TestApply_CategoryAndLevel(t *testing.T) {
	all := allProducts(t)

	got := catalog.Apply(all, catalog.Filter{Category: "Programming", Level: "Intermediate"})
	require.Equal(t, []string{"1", "4", "7"}, ids(got))

	got = catalog.Apply(all, catalog.Filter{Category: "Data Science", Level: catalog.All, PriceRange: catalog.Price1MTo2M})
	require.Equal(t, []string{"6"}, ids(got))

	got = catalog.Apply(all, catalog.Filter{Category: "Cooking"})
	require.Empty(t, got)
}

func TestSearch_CaseInsensitiveAcrossFields(t *testing.T) {
	all := allProducts(t)

	require.Equal(t, []string{"1"}, ids(catalog.Search(all, "REACT")))
	require.Equal(t, []string{"2", "6"}, ids(catalog.Search(all, "data")))
	require.Equal(t, []string{"5"}, ids(catalog.Search(all, "marketing kỹ thuật")))
	require.Len(t, catalog.Search(all, ""), len(all))
	require.Empty(t, catalog.Search(all, "kubernetes"))
}

func TestSuggest(t *testing.T) {
	all := allProducts(t)

	tests := []struct {
		name      string
		favorites []string
		history   []string
		want      []string
	}{
		{"history and favorites", []string{"1", "3", "5"}, []string{"1", "2", "4", "6"}, []string{"2", "4", "6", "7"}},
		{"history first then defaults", nil, []string{"3"}, []string{"3", "1", "2", "4"}},
		{"defaults only", nil, nil, []string{"1", "2", "4", "6"}},
		{"favorites excluded from defaults", []string{"1", "2"}, nil, []string{"4", "6", "7"}},
		{"unknown history ignored", nil, []string{"999"}, []string{"1", "2", "4", "6"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := catalog.Suggest(all, tc.favorites, tc.history)
			require.Equal(t, tc.want, ids(got.Products))
			require.Equal(t, catalog.SuggestionReason, got.Reason)
		})
	}
}

func TestProject_CatalogOrderDropsUnknown(t *testing.T) {
	got := catalog.Project(allProducts(t), []string{"6", "nope", "2"})
	require.Equal(t, []string{"2", "6"}, ids(got))
}

func TestFormatPrice(t *testing.T) {
	require.Equal(t, "899.000 ₫", catalog.FormatPrice(899000))
	require.Equal(t, "1.299.000 ₫", catalog.FormatPrice(1299000))
	require.Equal(t, "0 ₫", catalog.FormatPrice(0))
	require.Equal(t, "500 ₫", catalog.FormatPrice(500))
}

func TestDiscount(t *testing.T) {
	require.Equal(t, 31, catalog.DiscountPercent(1299000, 899000))
	require.Equal(t, 0, catalog.DiscountPercent(0, 100))

	p := catalog.Product{Price: 899000, OriginalPrice: 1299000}
	require.True(t, p.HasDiscount())
	require.False(t, catalog.Product{Price: 599000}.HasDiscount())
}

type fakeActivity struct {
	favorites map[string][]string
	history   map[string][]string
}

func (f fakeActivity) FavoritesOf(userID string) []string { return f.favorites[userID] }
func (f fakeActivity) HistoryOf(userID string) []string   { return f.history[userID] }

func TestService_SuggestUsesUserActivity(t *testing.T) {
	act := fakeActivity{
		favorites: map[string][]string{"u1": {"1", "3", "5"}},
		history:   map[string][]string{"u1": {"1", "2", "4", "6"}},
	}
	svc := catalog.NewService(catalog.NewMemStore(), act, catalog.Latency{}, zap.NewNop())
	ctx := context.Background()

	got, err := svc.Suggest(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, []string{"2", "4", "6", "7"}, ids(got.Products))

	got, err = svc.Suggest(ctx, "stranger")
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2", "4", "6"}, ids(got.Products))
}

func TestService_QueriesRespectCancellation(t *testing.T) {
	svc := catalog.NewService(catalog.NewMemStore(), nil, catalog.Latency{Search: time.Hour}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Search(ctx, "react")
	require.ErrorIs(t, err, context.Canceled)
}

func TestService_FilterAndGet(t *testing.T) {
	svc := catalog.NewService(catalog.NewMemStore(), nil, catalog.Latency{}, nil)
	ctx := context.Background()

	got, err := svc.Filter(ctx, catalog.Filter{PriceRange: catalog.Price500KTo1M})
	require.NoError(t, err)
	for _, p := range got {
		require.GreaterOrEqual(t, p.Price, int64(500_000))
		require.LessOrEqual(t, p.Price, int64(1_000_000))
	}

	p, ok, err := svc.Get(ctx, "6")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Machine Learning với TensorFlow", p.Name)
}
