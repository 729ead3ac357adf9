package utils

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var localPart = regexp.MustCompile(`^[a-z]+[0-9]{1,3}$`)

func TestGenerateRandomAccount(t *testing.T) {
	for i := 0; i < 20; i++ {
		acc := GenerateRandomAccount("changeme1", "example.com")

		assert.NotEmpty(t, acc.FirstName)
		assert.NotEmpty(t, acc.LastName)
		assert.True(t, acc.Verified)
		assert.Equal(t, "changeme1", acc.Password)

		local, host, ok := strings.Cut(acc.Email, "@")
		assert.True(t, ok)
		assert.Equal(t, "example.com", host)
		assert.Regexp(t, localPart, local)
	}
}

func TestGenerateEmailLocalPart(t *testing.T) {
	assert.Regexp(t, localPart, GenerateEmailLocalPart("王伟"))
}

func TestGenerateRandomEmployee(t *testing.T) {
	emp := GenerateRandomEmployee("a@x.com", []string{"Engineering"})
	assert.Equal(t, "a@x.com", emp.UserEmail)
	assert.Equal(t, "Engineering", emp.Department)
	assert.Regexp(t, `^EMP-[0-9]{4}$`, emp.EmployeeID)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, emp.HireDate)

	assert.Empty(t, GenerateRandomEmployee("a@x.com", nil).Department)
}

func TestGenerateRandomRequest(t *testing.T) {
	for i := 0; i < 20; i++ {
		req := GenerateRandomRequest()
		assert.Contains(t, requestTypes, req.Type)
		assert.NotEmpty(t, req.Items)
		for _, item := range req.Items {
			assert.GreaterOrEqual(t, item.Qty, 1)
			assert.NotEmpty(t, item.Name)
		}
	}
}

func TestGenerateRandomID(t *testing.T) {
	assert.Regexp(t, `^[A-Z]{3}[0-9]{2}$`, GenerateRandomID(3, 2))
	assert.Len(t, GenerateRandomPassword(12), 12)
}
