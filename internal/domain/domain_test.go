package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalAcceptsLegacyNumbers(t *testing.T) {
	var dept Department
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "name": "HR", "desc": "People team"}`), &dept))
	assert.Equal(t, ID("1"), dept.ID)

	var acc Account
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1712345678901, "email": "a@x.com"}`), &acc))
	assert.Equal(t, ID("1712345678901"), acc.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": "abc"}`), &acc))
	assert.Equal(t, ID("abc"), acc.ID)

	assert.Error(t, json.Unmarshal([]byte(`{"id": true}`), &acc))
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestDatabase_CloneIsDeep(t *testing.T) {
	db := NewDatabase()
	db.Accounts = append(db.Accounts, Account{ID: "1", Email: "a@x.com"})
	db.Requests = append(db.Requests, Request{ID: "r", Items: []RequestItem{{Name: "Pen", Qty: 1}}})

	c := db.Clone()
	c.Accounts[0].Email = "changed"
	c.Requests[0].Items[0].Name = "changed"

	assert.Equal(t, "a@x.com", db.Accounts[0].Email)
	assert.Equal(t, "Pen", db.Requests[0].Items[0].Name)
}

func TestDatabase_DepartmentNames(t *testing.T) {
	db := NewDatabase()
	assert.Empty(t, db.DepartmentNames())

	db.Departments = append(db.Departments, Department{ID: "2", Name: "HR"}, Department{ID: "1", Name: "Engineering"})
	assert.Equal(t, []string{"HR", "Engineering"}, db.DepartmentNames())
}

func TestDatabase_Normalize(t *testing.T) {
	var db Database
	require.NoError(t, json.Unmarshal([]byte(`{"accounts": [], "requests": [{"id": 1}]}`), &db))
	db.Normalize()

	assert.NotNil(t, db.Departments)
	assert.NotNil(t, db.Employees)
	assert.NotNil(t, db.Requests[0].Items)
}

func TestRuleError_Classification(t *testing.T) {
	assert.True(t, errors.Is(ErrDuplicateEmail, ErrValidation))
	assert.True(t, errors.Is(ErrEmployeeNotFound, ErrNotFound))
	assert.True(t, errors.Is(ErrSelfDeleteForbidden, ErrAuthorization))
	assert.False(t, errors.Is(ErrWeakPassword, ErrNotFound))
	assert.Equal(t, "Password must be at least 6 characters long.", ErrWeakPassword.Error())
}
