package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/mozillazg/go-pinyin"

	"github.com/ipt-demo/hr-portal/backend/internal/domain"
	"github.com/ipt-demo/hr-portal/backend/internal/repository"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

// GenerateRandomChineseName 返回姓和名
func GenerateRandomChineseName() (string, string) {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname, name
}

// 大约每五个账户中有一个管理员
func GenerateRandomRole() domain.Role {
	if rand.Intn(5) == 0 {
		return domain.RoleAdmin
	}
	return domain.RoleUser
}

var digits = "0123456789"

// GenerateEmailLocalPart 取每个字拼音的随机前缀再加上 1~3 位数字
func GenerateEmailLocalPart(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	local := ""

	for _, py := range pinyinArray {
		length := rand.Intn(len(py)) + 1
		local += py[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		local += string(digits[rand.Intn(len(digits))])
	}

	return local
}

// GenerateRandomAccount 生成已验证的账户，邮箱由姓名的拼音推出
func GenerateRandomAccount(password string, emailDomainName string) repository.AccountInput {
	surname, name := GenerateRandomChineseName()
	local := GenerateEmailLocalPart(surname + name)

	return repository.AccountInput{
		FirstName: name,
		LastName:  surname,
		Email:     local + "@" + emailDomainName,
		Password:  password,
		Role:      GenerateRandomRole(),
		Verified:  true,
	}
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	randomPassword := make([]rune, length)
	for i := range randomPassword {
		randomPassword[i] = letters[rand.Intn(len(letters))]
	}
	return string(randomPassword)
}

var upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func GenerateRandomID(letterLength int, digitLength int) string {
	var b strings.Builder
	for i := 0; i < letterLength; i++ {
		b.WriteByte(upperLetters[rand.Intn(len(upperLetters))])
	}
	for i := 0; i < digitLength; i++ {
		b.WriteByte(digits[rand.Intn(len(digits))])
	}
	return b.String()
}

var positions = []string{
	"Software Engineer", "QA Engineer", "HR Specialist", "Recruiter", "Product Manager", "Designer",
}

// GenerateRandomEmployee 为已有账户生成员工记录，入职日期在过去五年内
func GenerateRandomEmployee(email string, departments []string) repository.EmployeeInput {
	department := ""
	if len(departments) > 0 {
		department = departments[rand.Intn(len(departments))]
	}
	hired := time.Now().AddDate(0, 0, -rand.Intn(5*365))

	return repository.EmployeeInput{
		EmployeeID: fmt.Sprintf("EMP-%s", GenerateRandomID(0, 4)),
		UserEmail:  email,
		Position:   positions[rand.Intn(len(positions))],
		Department: department,
		HireDate:   hired.Format("2006-01-02"),
	}
}

var requestTypes = map[string][]string{
	"Equipment": {"Laptop", "Monitor", "Keyboard", "Mouse", "Headset"},
	"Leave":     {"Vacation day", "Sick day"},
	"Resources": {"Pen", "Paper", "Notebook", "Stapler"},
}

// GenerateRandomRequest 生成 1~3 个物品的请求
func GenerateRandomRequest() repository.RequestInput {
	types := make([]string, 0, len(requestTypes))
	for t := range requestTypes {
		types = append(types, t)
	}
	reqType := types[rand.Intn(len(types))]
	names := requestTypes[reqType]

	n := rand.Intn(3) + 1
	items := make([]domain.RequestItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, domain.RequestItem{
			Name: names[rand.Intn(len(names))],
			Qty:  rand.Intn(5) + 1,
		})
	}

	return repository.RequestInput{Type: reqType, Items: items}
}
