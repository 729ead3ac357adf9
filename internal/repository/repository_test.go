package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipt-demo/hr-portal/backend/internal/domain"
	"github.com/ipt-demo/hr-portal/backend/internal/store"
)

// ── 测试辅助 ──

var testAdmin = store.SeedAdmin{
	FirstName: "Admin",
	LastName:  "User",
	Email:     "admin@example.com",
	Password:  "Password123!",
}

func setupTestRepository(t *testing.T) (*Repository, *store.MemoryKV) {
	t.Helper()

	kv := store.NewMemoryKV()
	adapter := store.NewAdapter(kv, "ipt_demo_v1", time.Second, testAdmin, nil)
	repo, err := Open(adapter, nil)
	require.NoError(t, err)
	repo.SetClock(func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC) })
	return repo, kv
}

func adminOf(t *testing.T, repo *Repository) *domain.Account {
	t.Helper()
	admin, err := repo.AccountByEmail("admin@example.com")
	require.NoError(t, err)
	return admin
}

func newAccount(email, password string) AccountInput {
	return AccountInput{FirstName: "Ann", LastName: "Lee", Email: email, Password: password}
}

// persisted 从存储中重新加载数据，确认修改已经写入
func persisted(t *testing.T, repo *Repository) *domain.Database {
	t.Helper()
	db, err := repo.Adapter().Load()
	require.NoError(t, err)
	return db
}

// ── Account ──

func TestCreateAccount_SelfRegisteredStartsUnverified(t *testing.T) {
	repo, _ := setupTestRepository(t)

	in := newAccount("a@x.com", "secret1")
	in.Role = domain.RoleAdmin
	in.Verified = true
	acc, err := repo.CreateAccount(in, true)
	require.NoError(t, err)

	assert.Equal(t, domain.RoleUser, acc.Role)
	assert.False(t, acc.Verified)
	assert.NotEmpty(t, acc.ID)
	assert.Len(t, persisted(t, repo).Accounts, 2)
}

func TestCreateAccount_AdminCreatedKeepsRoleAndVerified(t *testing.T) {
	repo, _ := setupTestRepository(t)

	in := newAccount("b@x.com", "secret1")
	in.Role = domain.RoleAdmin
	in.Verified = true
	acc, err := repo.CreateAccount(in, false)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, acc.Role)
	assert.True(t, acc.Verified)

	acc, err = repo.CreateAccount(newAccount("c@x.com", "secret1"), false)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, acc.Role)
}

func TestCreateAccount_DuplicateEmail(t *testing.T) {
	repo, kv := setupTestRepository(t)

	_, err := repo.CreateAccount(newAccount("a@x.com", "secret1"), true)
	require.NoError(t, err)
	writes := kv.Writes()

	_, err = repo.CreateAccount(newAccount("a@x.com", "another1"), false)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, writes, kv.Writes())

	// 大小写不同视为不同邮箱
	_, err = repo.CreateAccount(newAccount("A@x.com", "secret1"), true)
	assert.NoError(t, err)
}

func TestCreateAccount_DuplicateEmailCheckedFirst(t *testing.T) {
	repo, _ := setupTestRepository(t)

	// 姓名为空时仍然先报告邮箱重复
	_, err := repo.CreateAccount(AccountInput{Email: " admin@example.com ", Password: "secret1"}, false)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	_, err = repo.CreateAccount(AccountInput{Email: "new@x.com", Password: "123"}, false)
	assert.ErrorIs(t, err, domain.ErrWeakPassword)
}

func TestCreateAccount_PasswordLength(t *testing.T) {
	repo, _ := setupTestRepository(t)

	for _, pw := range []string{"", "a", "12345"} {
		_, err := repo.CreateAccount(newAccount("weak@x.com", pw), true)
		assert.ErrorIs(t, err, domain.ErrWeakPassword, "password %q", pw)
	}

	_, err := repo.CreateAccount(newAccount("ok6@x.com", "123456"), true)
	assert.NoError(t, err)
	_, err = repo.CreateAccount(newAccount("ok7@x.com", "1234567"), true)
	assert.NoError(t, err)
}

func TestCreateAccount_InvalidShape(t *testing.T) {
	repo, _ := setupTestRepository(t)

	_, err := repo.CreateAccount(AccountInput{Email: "a@x.com", Password: "secret1"}, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "firstName")

	_, err = repo.CreateAccount(newAccount("not-an-email", "secret1"), true)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestUpdateAccount_DuplicateEmailChecksOthersOnly(t *testing.T) {
	repo, _ := setupTestRepository(t)
	acc, err := repo.CreateAccount(newAccount("a@x.com", "secret1"), true)
	require.NoError(t, err)

	// 保持原邮箱不算重复
	updated, err := repo.UpdateAccount(acc.ID, AccountUpdate{FirstName: "Ann", LastName: "Smith", Email: "a@x.com", Role: domain.RoleUser, Verified: true})
	require.NoError(t, err)
	assert.Equal(t, "Smith", updated.LastName)
	assert.True(t, updated.Verified)

	_, err = repo.UpdateAccount(acc.ID, AccountUpdate{FirstName: "Ann", LastName: "Lee", Email: "admin@example.com", Role: domain.RoleUser})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	_, err = repo.UpdateAccount("missing", AccountUpdate{FirstName: "A", LastName: "B", Email: "z@x.com", Role: domain.RoleUser})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdateProfile_EmitsPreviousEmail(t *testing.T) {
	repo, _ := setupTestRepository(t)
	acc, err := repo.CreateAccount(newAccount("a@x.com", "secret1"), true)
	require.NoError(t, err)

	var events []Event
	repo.Subscribe(func(ev Event) { events = append(events, ev) })

	_, err = repo.UpdateProfile(acc.ID, ProfileUpdate{FirstName: "Ann", LastName: "Lee", Email: "new@x.com"})
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, Event{Entity: EntityAccount, Op: OpUpdate, ID: string(acc.ID), Email: "new@x.com", PrevEmail: "a@x.com"}, events[0])

	stored, err := repo.AccountByID(acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", stored.Email)
	assert.Equal(t, domain.RoleUser, stored.Role)
}

func TestDeleteAccount_SelfDeleteForbidden(t *testing.T) {
	repo, _ := setupTestRepository(t)
	admin := adminOf(t, repo)
	user, err := repo.CreateAccount(newAccount("a@x.com", "secret1"), true)
	require.NoError(t, err)

	assert.ErrorIs(t, repo.DeleteAccount(admin.ID, admin.ID), domain.ErrSelfDeleteForbidden)
	assert.ErrorIs(t, repo.DeleteAccount(user.ID, user.ID), domain.ErrSelfDeleteForbidden)

	require.NoError(t, repo.DeleteAccount(user.ID, admin.ID))
	assert.Len(t, persisted(t, repo).Accounts, 1)
	assert.ErrorIs(t, repo.DeleteAccount(user.ID, admin.ID), domain.ErrAccountNotFound)
}

func TestResetPassword(t *testing.T) {
	repo, _ := setupTestRepository(t)
	admin := adminOf(t, repo)

	assert.ErrorIs(t, repo.ResetPassword(admin.ID, "12345"), domain.ErrWeakPassword)
	assert.ErrorIs(t, repo.ResetPassword("missing", "123456"), domain.ErrAccountNotFound)

	require.NoError(t, repo.ResetPassword(admin.ID, "123456"))
	assert.Equal(t, "123456", persisted(t, repo).Accounts[0].Password)
}

func TestVerifyAccount(t *testing.T) {
	repo, _ := setupTestRepository(t)
	_, err := repo.CreateAccount(newAccount("a@x.com", "secret1"), true)
	require.NoError(t, err)

	acc, err := repo.VerifyAccount("a@x.com")
	require.NoError(t, err)
	assert.True(t, acc.Verified)

	_, err = repo.VerifyAccount("nobody@x.com")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

// ── Department ──

func TestDepartment_CRUD(t *testing.T) {
	repo, _ := setupTestRepository(t)

	dept, err := repo.CreateDepartment(DepartmentInput{Name: " Ops ", Desc: "Operations"})
	require.NoError(t, err)
	assert.Equal(t, "Ops", dept.Name)
	assert.Equal(t, []string{"Engineering", "HR", "Ops"}, repo.Database().DepartmentNames())

	_, err = repo.CreateDepartment(DepartmentInput{Name: "  "})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	updated, err := repo.UpdateDepartment(dept.ID, DepartmentInput{Name: "Operations", Desc: "Ops team"})
	require.NoError(t, err)
	assert.Equal(t, "Operations", updated.Name)

	_, err = repo.UpdateDepartment("missing", DepartmentInput{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)

	require.NoError(t, repo.DeleteDepartment(dept.ID))
	assert.ErrorIs(t, repo.DeleteDepartment(dept.ID), domain.ErrDepartmentNotFound)
	assert.Len(t, persisted(t, repo).Departments, 2)
}

func TestDeleteDepartment_DoesNotCascade(t *testing.T) {
	repo, _ := setupTestRepository(t)

	dept, err := repo.CreateDepartment(DepartmentInput{Name: "Ops"})
	require.NoError(t, err)
	emp, err := repo.CreateEmployee(EmployeeInput{EmployeeID: "E-1", UserEmail: "admin@example.com", Department: "Ops"})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteDepartment(dept.ID))

	stored, err := repo.EmployeeByID(emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ops", stored.Department)
	assert.NotContains(t, repo.Database().DepartmentNames(), "Ops")
}

// ── Employee ──

func TestEmployee_UnknownUser(t *testing.T) {
	repo, _ := setupTestRepository(t)

	_, err := repo.CreateEmployee(EmployeeInput{EmployeeID: "E-1", UserEmail: "ghost@x.com"})
	assert.ErrorIs(t, err, domain.ErrUnknownUser)

	emp, err := repo.CreateEmployee(EmployeeInput{EmployeeID: "E-1", UserEmail: "admin@example.com", HireDate: "2024-01-31"})
	require.NoError(t, err)

	_, err = repo.UpdateEmployee(emp.ID, EmployeeInput{EmployeeID: "E-1", UserEmail: "ghost@x.com"})
	assert.ErrorIs(t, err, domain.ErrUnknownUser)
}

func TestEmployee_EmptyUserEmail(t *testing.T) {
	repo, _ := setupTestRepository(t)

	_, err := repo.CreateEmployee(EmployeeInput{EmployeeID: "E-1", UserEmail: "  "})
	assert.ErrorIs(t, err, domain.ErrUnknownUser)

	// employeeId 可以为空
	emp, err := repo.CreateEmployee(EmployeeInput{UserEmail: "admin@example.com"})
	require.NoError(t, err)
	assert.Empty(t, emp.EmployeeID)
}

func TestEmployee_DuplicateEmployeeIDAllowed(t *testing.T) {
	repo, _ := setupTestRepository(t)

	_, err := repo.CreateEmployee(EmployeeInput{EmployeeID: "E-1", UserEmail: "admin@example.com"})
	require.NoError(t, err)
	_, err = repo.CreateEmployee(EmployeeInput{EmployeeID: "E-1", UserEmail: "admin@example.com"})
	require.NoError(t, err)
	assert.Len(t, repo.ListEmployees(), 2)
}

func TestEmployee_InvalidHireDate(t *testing.T) {
	repo, _ := setupTestRepository(t)

	_, err := repo.CreateEmployee(EmployeeInput{EmployeeID: "E-1", UserEmail: "admin@example.com", HireDate: "31/01/2024"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestEmployee_DeleteByStableID(t *testing.T) {
	repo, _ := setupTestRepository(t)

	first, err := repo.CreateEmployee(EmployeeInput{EmployeeID: "E-1", UserEmail: "admin@example.com"})
	require.NoError(t, err)
	second, err := repo.CreateEmployee(EmployeeInput{EmployeeID: "E-2", UserEmail: "admin@example.com"})
	require.NoError(t, err)
	third, err := repo.CreateEmployee(EmployeeInput{EmployeeID: "E-3", UserEmail: "admin@example.com"})
	require.NoError(t, err)

	// 先删除前面的记录，后面记录的标识不受影响
	require.NoError(t, repo.DeleteEmployee(first.ID))
	require.NoError(t, repo.DeleteEmployee(third.ID))

	remaining := repo.ListEmployees()
	require.Len(t, remaining, 1)
	assert.Equal(t, second.ID, remaining[0].ID)

	assert.ErrorIs(t, repo.DeleteEmployee(first.ID), domain.ErrEmployeeNotFound)
	_, err = repo.UpdateEmployee(first.ID, EmployeeInput{EmployeeID: "E-1", UserEmail: "admin@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

// ── Request ──

func TestCreateRequest_NoValidItems(t *testing.T) {
	repo, kv := setupTestRepository(t)
	writes := kv.Writes()

	_, err := repo.CreateRequest("admin@example.com", RequestInput{
		Type:  "Equipment",
		Items: []domain.RequestItem{{Name: "", Qty: 1}, {Name: "Pen", Qty: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrNoValidItems)

	_, err = repo.CreateRequest("admin@example.com", RequestInput{Type: "Equipment"})
	assert.ErrorIs(t, err, domain.ErrNoValidItems)

	_, err = repo.CreateRequest("admin@example.com", RequestInput{
		Type:  "",
		Items: []domain.RequestItem{{Name: "", Qty: 1}, {Name: "Pen", Qty: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrNoValidItems)
	assert.Equal(t, writes, kv.Writes())
}

func TestCreateRequest_EmptyTypeAllowed(t *testing.T) {
	repo, _ := setupTestRepository(t)

	req, err := repo.CreateRequest("admin@example.com", RequestInput{
		Type:  "  ",
		Items: []domain.RequestItem{{Name: "Pen", Qty: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "", req.Type)
	assert.Len(t, req.Items, 1)
}

func TestCreateRequest_Pending(t *testing.T) {
	repo, _ := setupTestRepository(t)

	req, err := repo.CreateRequest("admin@example.com", RequestInput{
		Type:  "Equipment",
		Items: []domain.RequestItem{{Name: " Pen ", Qty: 2}, {Name: "   ", Qty: 3}, {Name: "Ink", Qty: -1}},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, req.Status)
	assert.Equal(t, "admin@example.com", req.EmployeeEmail)
	assert.Equal(t, []domain.RequestItem{{Name: "Pen", Qty: 2}}, req.Items)
	assert.Equal(t, "2024-03-15", req.Date)

	assert.Len(t, repo.RequestsFor("admin@example.com"), 1)
	assert.Empty(t, repo.RequestsFor("other@x.com"))
	assert.Len(t, persisted(t, repo).Requests, 1)
}

// ── 持久化与回滚 ──

type failingSetKV struct {
	*store.MemoryKV
	fail bool
}

func (f *failingSetKV) Set(ctx context.Context, key, value string) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.MemoryKV.Set(ctx, key, value)
}

func TestMutate_RollsBackWhenSaveFails(t *testing.T) {
	kv := &failingSetKV{MemoryKV: store.NewMemoryKV()}
	adapter := store.NewAdapter(kv, "ipt_demo_v1", time.Second, testAdmin, nil)
	repo, err := Open(adapter, nil)
	require.NoError(t, err)

	var events int
	repo.Subscribe(func(Event) { events++ })

	kv.fail = true
	_, err = repo.CreateDepartment(DepartmentInput{Name: "Ops"})
	assert.EqualError(t, err, "disk full")
	assert.NotContains(t, repo.Database().DepartmentNames(), "Ops")
	assert.Zero(t, events)
}

func TestDatabase_IsSnapshot(t *testing.T) {
	repo, _ := setupTestRepository(t)

	snap := repo.Database()
	snap.Accounts[0].Email = "hacked@x.com"

	_, err := repo.AccountByEmail("admin@example.com")
	assert.NoError(t, err)
}

func TestReset(t *testing.T) {
	repo, _ := setupTestRepository(t)
	_, err := repo.CreateAccount(newAccount("a@x.com", "secret1"), true)
	require.NoError(t, err)

	var got []Event
	repo.Subscribe(func(ev Event) { got = append(got, ev) })

	require.NoError(t, repo.Reset())
	assert.Len(t, repo.ListAccounts(), 1)
	assert.Len(t, persisted(t, repo).Accounts, 1)
	assert.Equal(t, []Event{{Entity: EntityDatabase, Op: OpReset}}, got)
}
