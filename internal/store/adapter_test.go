package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipt-demo/hr-portal/backend/internal/domain"
)

var testAdmin = SeedAdmin{
	FirstName: "Admin",
	LastName:  "User",
	Email:     "admin@example.com",
	Password:  "Password123!",
}

func newTestAdapter() (*Adapter, *MemoryKV) {
	kv := NewMemoryKV()
	return NewAdapter(kv, "ipt_demo_v1", time.Second, testAdmin, nil), kv
}

func TestAdapter_LoadMissing(t *testing.T) {
	a, _ := newTestAdapter()

	_, err := a.Load()
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestAdapter_SaveLoadRoundTrip(t *testing.T) {
	a, _ := newTestAdapter()

	db := Seed(testAdmin)
	db.Employees = append(db.Employees, domain.Employee{
		ID: domain.NewID(), EmployeeID: "E-1", UserEmail: "admin@example.com",
		Position: "Lead", Department: "HR", HireDate: "2024-01-02",
	})
	db.Requests = append(db.Requests, domain.Request{
		ID: domain.NewID(), EmployeeEmail: "admin@example.com", Type: "Equipment",
		Items:  []domain.RequestItem{{Name: "Pen", Qty: 2}, {Name: "Laptop", Qty: 1}},
		Status: domain.StatusPending, Date: "2024-02-03",
	})

	require.NoError(t, a.Save(db))

	loaded, err := a.Load()
	require.NoError(t, err)
	assert.Equal(t, db, loaded)
}

func TestAdapter_OpenSeedsWhenMissing(t *testing.T) {
	a, kv := newTestAdapter()

	db, err := a.Open()
	require.NoError(t, err)

	require.Len(t, db.Accounts, 1)
	admin := db.Accounts[0]
	assert.Equal(t, "admin@example.com", admin.Email)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.True(t, admin.Verified)

	require.Len(t, db.Departments, 2)
	assert.Equal(t, "Engineering", db.Departments[0].Name)
	assert.Equal(t, "HR", db.Departments[1].Name)
	assert.Empty(t, db.Employees)
	assert.Empty(t, db.Requests)

	// 种子数据已经持久化
	assert.Equal(t, 1, kv.Writes())
	loaded, err := a.Load()
	require.NoError(t, err)
	assert.Equal(t, db, loaded)
}

func TestAdapter_OpenRecoversFromCorruption(t *testing.T) {
	a, kv := newTestAdapter()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "ipt_demo_v1", "{not json"))

	_, err := a.Load()
	assert.True(t, errors.Is(err, domain.ErrStorageCorruption))

	db, err := a.Open()
	require.NoError(t, err)
	assert.Len(t, db.Accounts, 1)

	backup, err := kv.Get(ctx, "ipt_demo_v1"+CorruptSuffix)
	require.NoError(t, err)
	assert.Equal(t, "{not json", backup)
}

func TestAdapter_OpenReseedsUnusableBlob(t *testing.T) {
	for _, blob := range []string{"null", "{}", `{"accounts":null}`} {
		t.Run(blob, func(t *testing.T) {
			a, kv := newTestAdapter()
			ctx := context.Background()
			require.NoError(t, kv.Set(ctx, "ipt_demo_v1", blob))

			_, err := a.Load()
			assert.ErrorIs(t, err, domain.ErrStorageCorruption)

			db, err := a.Open()
			require.NoError(t, err)
			require.Len(t, db.Accounts, 1)
			assert.Equal(t, domain.RoleAdmin, db.Accounts[0].Role)
			assert.Len(t, db.Departments, 2)

			backup, err := kv.Get(ctx, "ipt_demo_v1"+CorruptSuffix)
			require.NoError(t, err)
			assert.Equal(t, blob, backup)
		})
	}
}

func TestAdapter_OpenKeepsExistingData(t *testing.T) {
	a, kv := newTestAdapter()
	legacy := `{"accounts":[{"id":1700000000000,"firstName":"Admin","lastName":"User","email":"old@example.com","password":"Password123!","role":"Admin","verified":true}],` +
		`"departments":[{"id":1,"name":"Engineering","desc":"Software team"}],"employees":[],"requests":[]}`
	require.NoError(t, kv.Set(context.Background(), "ipt_demo_v1", legacy))

	db, err := a.Open()
	require.NoError(t, err)
	assert.Equal(t, "old@example.com", db.Accounts[0].Email)
	assert.Equal(t, domain.ID("1700000000000"), db.Accounts[0].ID)
	assert.Equal(t, domain.ID("1"), db.Departments[0].ID)
}

type failingKV struct{ MemoryKV }

func (f *failingKV) Get(context.Context, string) (string, error) {
	return "", errors.New("connection refused")
}

func TestAdapter_OpenPropagatesBackendErrors(t *testing.T) {
	a := NewAdapter(&failingKV{}, "ipt_demo_v1", time.Second, testAdmin, nil)

	_, err := a.Open()
	assert.EqualError(t, err, "connection refused")
}

func TestAdapter_Slots(t *testing.T) {
	a, _ := newTestAdapter()

	_, err := a.GetSlot("auth_token")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, a.SetSlot("auth_token", "a@x.com"))
	v, err := a.GetSlot("auth_token")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", v)

	require.NoError(t, a.DeleteSlot("auth_token"))
	_, err = a.GetSlot("auth_token")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
