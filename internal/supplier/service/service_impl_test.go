package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	orgdomain "github.com/smallbiznis/procura/internal/organization/domain"
	orgrepository "github.com/smallbiznis/procura/internal/organization/repository"
	orgservice "github.com/smallbiznis/procura/internal/organization/service"
	"github.com/smallbiznis/procura/internal/supplier/domain"
	"github.com/smallbiznis/procura/internal/supplier/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestServices(t *testing.T) (domain.Service, orgdomain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	models := []any{
		&orgdomain.Organization{},
		&orgdomain.OrganizationMember{},
		&orgdomain.Invitation{},
		&domain.Supplier{},
		&domain.SupplierMember{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		t.Fatal(err)
	}

	node, _ := snowflake.NewNode(1)
	orgs := orgservice.NewService(zap.NewNop(), db, orgrepository.NewRepository(db), node)
	suppliers := NewService(zap.NewNop(), db, repository.NewRepository(db), orgs, node)
	return suppliers, orgs, db
}

func addOrgMember(t *testing.T, db *gorm.DB, userUUID, orgUUID string) {
	t.Helper()
	node, _ := snowflake.NewNode(2)
	err := orgrepository.NewRepository(db).AddMember(context.Background(), &orgdomain.OrganizationMember{
		ID:               node.Generate(),
		UserUUID:         userUUID,
		OrganizationUUID: orgUUID,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestCreateRequiresOrgMembership(t *testing.T) {
	suppliers, orgs, _ := newTestServices(t)
	ctx := context.Background()

	org, err := orgs.Create(ctx, "user-1", orgdomain.CreateOrganizationRequest{Name: "Acme"})
	assert.NoError(t, err)

	created, err := suppliers.Create(ctx, "user-1", domain.CreateSupplierRequest{
		Name:             "Widgets Inc",
		OrganizationUUID: org.UUID,
	})
	assert.NoError(t, err)
	assert.Equal(t, "user-1", created.OwnerUUID)

	_, err = suppliers.Create(ctx, "user-2", domain.CreateSupplierRequest{
		Name:             "Intruder Supply",
		OrganizationUUID: org.UUID,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListRequiresBothMemberships(t *testing.T) {
	suppliers, orgs, db := newTestServices(t)
	ctx := context.Background()

	// user-1 owns the org and a supplier; user-2 is an org member but
	// never collaborates on the supplier; user-3 is outside the org.
	org, err := orgs.Create(ctx, "user-1", orgdomain.CreateOrganizationRequest{Name: "Acme"})
	assert.NoError(t, err)
	addOrgMember(t, db, "user-2", org.UUID)

	created, err := suppliers.Create(ctx, "user-1", domain.CreateSupplierRequest{
		Name:             "Widgets Inc",
		OrganizationUUID: org.UUID,
	})
	assert.NoError(t, err)

	visible, err := suppliers.List(ctx, "user-1", org.UUID)
	assert.NoError(t, err)
	if assert.Len(t, visible, 1) {
		assert.Equal(t, created.UUID, visible[0].UUID)
	}

	visible, err = suppliers.List(ctx, "user-2", org.UUID)
	assert.NoError(t, err)
	assert.Empty(t, visible)

	_, err = suppliers.List(ctx, "user-3", org.UUID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetByUUID(t *testing.T) {
	suppliers, orgs, db := newTestServices(t)
	ctx := context.Background()

	org, err := orgs.Create(ctx, "user-1", orgdomain.CreateOrganizationRequest{Name: "Acme"})
	assert.NoError(t, err)
	addOrgMember(t, db, "user-2", org.UUID)

	created, err := suppliers.Create(ctx, "user-1", domain.CreateSupplierRequest{
		Name:             "Widgets Inc",
		OrganizationUUID: org.UUID,
		Data:             []byte(`{"tier":"gold"}`),
	})
	assert.NoError(t, err)

	got, err := suppliers.GetByUUID(ctx, "user-1", org.UUID, created.UUID)
	assert.NoError(t, err)
	assert.Equal(t, created.UUID, got.UUID)
	assert.JSONEq(t, `{"tier":"gold"}`, string(got.Data))

	// user-2 belongs to the org but never collaborated on the supplier,
	// so the fetch behaves as if the record does not exist.
	_, err = suppliers.GetByUUID(ctx, "user-2", org.UUID, created.UUID)
	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)

	_, err = suppliers.GetByUUID(ctx, "user-1", org.UUID, "missing-uuid")
	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)
}
