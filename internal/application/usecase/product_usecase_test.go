package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artesanica/artesanica-api/internal/application/dto"
	"github.com/artesanica/artesanica-api/internal/application/usecase"
	"github.com/artesanica/artesanica-api/internal/domain"
	"github.com/artesanica/artesanica-api/internal/domain/entity"
)

// fakeProductRepo catálogo en memoria con orden de inserción estable.
type fakeProductRepo struct {
	seq      int
	products map[string]entity.Product
	order    []string
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]entity.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.seq++
	p.ID = fmt.Sprintf("prod-%d", r.seq)
	r.products[p.ID] = *p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for i := offset; i < len(r.order) && len(out) < limit; i++ {
		p := r.products[r.order[i]]
		out = append(out, &p)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.products, id)
	return nil
}

func TestCreate_GeneraSlugDesdeNombre(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	resp, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:         "Jarrón de Cerámica Negra",
		Price:        decimal.RequireFromString("450.00"),
		CountInStock: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "jarron-de-ceramica-negra", resp.Slug,
		"el slug normaliza acentos y mayúsculas")
	assert.NotEmpty(t, resp.ID)
}

func TestCreate_EntradaInvalida(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:  "",
		Price: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateProductRequest{
		Name:  "Rebozo",
		Price: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetByID_NoEncontrado(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	_, err := uc.GetByID(context.Background(), "prod-999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_NombreRegeneraSlug(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	created, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:  "Alebrije",
		Price: decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	nombre := "Alebrije Grande"
	resp, err := uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{
		Name: &nombre,
	})
	require.NoError(t, err)
	assert.Equal(t, "alebrije-grande", resp.Slug)
	assert.True(t, resp.Price.Equal(decimal.NewFromInt(300)), "los campos no enviados no se tocan")
}

func TestDelete_NoEncontrado(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	err := uc.Delete(context.Background(), "prod-999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_Paginacion(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	for i := 1; i <= 5; i++ {
		_, err := uc.Create(context.Background(), dto.CreateProductRequest{
			Name:  fmt.Sprintf("Producto %d", i),
			Price: decimal.NewFromInt(int64(i * 10)),
		})
		require.NoError(t, err)
	}

	resp, err := uc.List(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 2, resp.Page.Limit)
	assert.Equal(t, 2, resp.Page.Offset)
}
