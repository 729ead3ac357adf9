package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/ipt-demo/hr-portal/backend/internal/domain"
	"github.com/ipt-demo/hr-portal/backend/internal/repository"
)

// RosterHeaders 是员工名册 CSV 必须包含的列
var RosterHeaders = []string{"employeeId", "email", "firstName", "lastName", "position", "department", "hireDate"}

var ErrMissingColumn = errors.New("roster is missing a required column")

// Result 统计导入过程中新建的记录
type Result struct {
	Accounts    int
	Departments int
	Employees   int
	Skipped     int
}

// ImportEmployees 导入员工名册。
// 邮箱对应的账户不存在时以 password 新建一个已验证的普通账户，部门不存在时一并新建。
// 单行出错只记录日志并跳过，读取或表头错误会中止导入。
func ImportEmployees(r *repository.Repository, in io.Reader, password string) (Result, error) {
	result := Result{}
	reader := csv.NewReader(in)

	// 读取表头
	headers, err := reader.Read()
	if err != nil {
		return result, fmt.Errorf("read roster header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}
	for _, key := range RosterHeaders {
		if !slices.Contains(headers, key) {
			return result, fmt.Errorf("%w: %s", ErrMissingColumn, key)
		}
	}

	departments := r.Database().DepartmentNames()

	line := 1
	for {
		row, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return result, fmt.Errorf("read roster: %w", err)
		}
		line++

		record := make(map[string]string)
		for i, value := range row {
			if i < len(headers) {
				record[headers[i]] = strings.TrimSpace(value)
			}
		}

		if err := importRecord(r, record, password, &departments, &result); err != nil {
			slog.Error("导入员工失败", "line", line, "email", record["email"], "error", err)
			result.Skipped++
		}
	}

	slog.Info("导入员工名册完成", "accounts", result.Accounts, "departments", result.Departments,
		"employees", result.Employees, "skipped", result.Skipped)
	return result, nil
}

func importRecord(r *repository.Repository, record map[string]string, password string, departments *[]string, result *Result) error {
	email := record["email"]

	if _, err := r.AccountByEmail(email); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		// 表示该员工还没有账户，需要新建
		if _, err := r.CreateAccount(repository.AccountInput{
			FirstName: record["firstName"],
			LastName:  record["lastName"],
			Email:     email,
			Password:  password,
			Role:      domain.RoleUser,
			Verified:  true,
		}, false); err != nil {
			return err
		}
		result.Accounts++
	}

	dept := record["department"]
	if dept != "" && !slices.Contains(*departments, dept) {
		if _, err := r.CreateDepartment(repository.DepartmentInput{Name: dept}); err != nil {
			return err
		}
		*departments = append(*departments, dept)
		result.Departments++
	}

	if _, err := r.CreateEmployee(repository.EmployeeInput{
		EmployeeID: record["employeeId"],
		UserEmail:  email,
		Position:   record["position"],
		Department: dept,
		HireDate:   record["hireDate"],
	}); err != nil {
		return err
	}
	result.Employees++

	return nil
}
