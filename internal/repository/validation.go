package repository

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/ipt-demo/hr-portal/backend/internal/domain"
)

type validation struct {
	validate   *validator.Validate
	translator ut.Translator
}

func newValidation() (*validation, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// 提示中使用 json 字段名
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &validation{validate: validate, translator: trans}, nil
}

// Struct 校验输入的格式，失败时返回第一条翻译后的提示，分类为 domain.ErrValidation
func (v *validation) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	return &domain.RuleError{Kind: domain.ErrValidation, Msg: validationErrors[0].Translate(v.translator)}
}
