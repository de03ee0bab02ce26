package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/app/repositories"
	"github.com/pawmart/pawmart/pkg/event"
)

func TestCreateProductParsesPrices(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(repositories.NewProductRepository(db))

	product, err := svc.Create(ProductInput{
		Name:         "Tough Chew Rope",
		SKU:          "TOY-ROPE-01",
		Price:        "9.99",
		RegularPrice: "12.50",
		Stock:        30,
		Images:       []string{"https://cdn/a.jpg", "https://cdn/b.jpg"},
	})
	require.NoError(t, err)

	assert.Equal(t, "9.99", product.Price.StringFixed(2))
	assert.Equal(t, "12.50", product.RegularPrice.StringFixed(2))
	require.Len(t, product.Images, 2)
	assert.Equal(t, 0, product.Images[0].Position)
	assert.Equal(t, 1, product.Images[1].Position)
}

func TestCreateProductBadPrice(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(repositories.NewProductRepository(db))

	_, err := svc.Create(ProductInput{Name: "X", SKU: "X-1", Price: "nine"})
	assert.Error(t, err)
}

func TestGetUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(repositories.NewProductRepository(db))

	_, err := svc.Get(404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAttachImageAppendsToGallery(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(repositories.NewProductRepository(db))

	product, err := svc.Create(ProductInput{
		Name:   "Ceramic Bowl",
		SKU:    "ACC-BOWL",
		Price:  "14.25",
		Images: []string{"https://cdn/front.jpg"},
	})
	require.NoError(t, err)

	img, err := svc.AttachImage(product.ID, "https://cdn/side.jpg")
	require.NoError(t, err)
	assert.Equal(t, 1, img.Position)

	reloaded, err := svc.Get(product.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Images, 2)
	assert.Equal(t, "https://cdn/front.jpg", reloaded.Images[0].URL)
	assert.Equal(t, "https://cdn/side.jpg", reloaded.Images[1].URL)
}

func TestAddRatingOncePerUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(repositories.NewProductRepository(db))

	user := seedUser(t, db, models.RoleCustomer)
	product := seedProduct(t, db, "5.00", 5)

	first, err := svc.AddRating(product.ID, user.ID, RatingInput{Stars: 4, Review: "Solid"})
	require.NoError(t, err)
	assert.Equal(t, 4, first.Stars)

	_, err = svc.AddRating(product.ID, user.ID, RatingInput{Stars: 5})
	assert.ErrorIs(t, err, ErrAlreadyRated)

	// A different user may still rate.
	other := seedUser(t, db, models.RoleCustomer)
	_, err = svc.AddRating(product.ID, other.ID, RatingInput{Stars: 2})
	assert.NoError(t, err)
}

func TestAverageRating(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(repositories.NewProductRepository(db))

	product := seedProduct(t, db, "5.00", 5)
	for _, stars := range []int{5, 4, 2} {
		user := seedUser(t, db, models.RoleCustomer)
		_, err := svc.AddRating(product.ID, user.ID, RatingInput{Stars: stars})
		require.NoError(t, err)
	}

	reloaded, err := svc.Get(product.ID)
	require.NoError(t, err)
	assert.InDelta(t, 11.0/3.0, reloaded.AverageRating(), 0.001)
}

func TestListFiltersByCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(repositories.NewProductRepository(db))

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ProductInput{
			Name: fmt.Sprintf("Toy %d", i), SKU: fmt.Sprintf("TOY-%d", i),
			Price: "5.00", Category: "toys",
		})
		require.NoError(t, err)
	}
	_, err := svc.Create(ProductInput{Name: "Kibble", SKU: "FOOD-1", Price: "20.00", Category: "food"})
	require.NoError(t, err)

	toys, pagination, err := svc.List(1, 10, "toys")
	require.NoError(t, err)
	assert.Len(t, toys, 3)
	assert.EqualValues(t, 3, pagination.Total)

	all, pagination, err := svc.List(1, 2, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.EqualValues(t, 4, pagination.Total)
	assert.Equal(t, 2, pagination.TotalPages)
}

func TestDeleteProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(repositories.NewProductRepository(db))

	product := seedProduct(t, db, "5.00", 5)
	require.NoError(t, svc.Delete(product.ID))

	_, err := svc.Get(product.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(product.ID), ErrNotFound)
}

func TestUpdateProductFiresEvent(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(repositories.NewProductRepository(db))

	product := seedProduct(t, db, "5.00", 5)

	updated, err := svc.Update(product.ID, ProductInput{
		Name: "Renamed", SKU: product.SKU, Price: "6.50", Stock: 9,
	})
	require.NoError(t, err)
	event.Flush()

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "6.50", updated.Price.StringFixed(2))
	assert.Equal(t, 9, updated.Stock)
}
