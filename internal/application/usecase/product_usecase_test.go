package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/Almacen-api/pkg/validator"
)

func preq(title string) dto.ProductRequest {
	return dto.ProductRequest{Title: title, UnitOfMeasurement: "UND", MaterialType: "Ferretería"}
}

func TestProduct_CreateRechazaTituloRepetido(t *testing.T) {
	products, _, _, _ := memory.NewStore().Repos()
	uc := usecase.NewProductUseCase(products, validator.New())

	p, err := uc.Create(context.Background(), preq("  Tubería PVC  "))
	require.NoError(t, err)
	assert.Equal(t, "Tubería PVC", p.Title)
	_, err = uuid.Parse(p.ID)
	assert.NoError(t, err)

	// misma cadena con tilde combinada (NFD)
	_, err = uc.Create(context.Background(), preq("Tuberi\u0301a PVC"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(context.Background(), preq("abc"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduct_CreateBulk(t *testing.T) {
	products, _, _, _ := memory.NewStore().Repos()
	uc := usecase.NewProductUseCase(products, validator.New())

	resp, err := uc.CreateBulk(context.Background(), dto.BulkProductRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, -1, resp.Errors[0].Index)

	resp, err = uc.CreateBulk(context.Background(), dto.BulkProductRequest{Products: []dto.ProductRequest{
		preq("Cemento Sol"),
		preq("Cemento Sol"),
		{Title: "Arena gruesa", UnitOfMeasurement: "M3"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TotalCreated)
	assert.Equal(t, 2, resp.TotalFailed)
	require.Len(t, resp.Results, 3)
	assert.NotNil(t, resp.Results[0].Product)
	require.NotNil(t, resp.Results[1].Error)
	assert.Equal(t, "title", resp.Results[1].Error.Field)
	require.NotNil(t, resp.Results[2].Error)
	assert.Equal(t, "materialType", resp.Results[2].Error.Field)
	assert.Equal(t, 2, resp.Results[2].Error.Index)
}

func TestProduct_UpdateYDelete(t *testing.T) {
	store := memory.NewStore()
	products, suppliers, entries, _ := store.Repos()
	uc := usecase.NewProductUseCase(products, validator.New())
	ctx := context.Background()

	a, err := uc.Create(ctx, preq("Cemento Sol"))
	require.NoError(t, err)
	b, err := uc.Create(ctx, preq("Cemento Andino"))
	require.NoError(t, err)

	_, err = uc.Update(ctx, b.ID, preq("Cemento Sol"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	upd, err := uc.Update(ctx, b.ID, preq("Cemento Andino Tipo I"))
	require.NoError(t, err)
	assert.Equal(t, "Cemento Andino Tipo I", upd.Title)

	_, err = uc.Update(ctx, uuid.NewString(), preq("Otro producto"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// un producto con movimientos no se elimina
	now := time.Now().UTC()
	sup := &entity.Supplier{ID: uuid.NewString(), Name: "Prov", RUC: "20123456789", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, suppliers.Create(ctx, sup))
	require.NoError(t, entries.Create(ctx, &entity.Entry{
		ID: uuid.NewString(), ProductID: a.ID, SupplierID: sup.ID,
		Quantity: decimal.NewFromInt(1), Price: decimal.Zero, StartTime: now, CreatedAt: now, UpdatedAt: now,
	}))
	assert.ErrorIs(t, uc.Delete(ctx, a.ID), domain.ErrConflict)

	require.NoError(t, uc.Delete(ctx, b.ID))
	got, err := uc.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, uc.Delete(ctx, "no-uuid"), domain.ErrNotFound)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
}

func TestSupplier_CreateGetList(t *testing.T) {
	_, suppliers, _, _ := memory.NewStore().Repos()
	uc := usecase.NewSupplierUseCase(suppliers, validator.New())
	ctx := context.Background()

	s, err := uc.Create(ctx, dto.SupplierRequest{Name: "Ferretería Central", RUC: "20123456789", District: "Miraflores"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.SupplierRequest{Name: "Otro", RUC: "20123456789"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.SupplierRequest{Name: "Otro", RUC: "2012345678A"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Miraflores", got.District)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
}
