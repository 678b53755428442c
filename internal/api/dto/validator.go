package dto

import (
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/matinfathi/oo-backend/internal/model"
)

// ==================== 校验器 ====================

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator 返回共享的校验器，gin 绑定与 service 使用同一实例
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.SetTagName("binding")

		v.RegisterCustomTypeFunc(optionalValue[string], Optional[string]{})
		v.RegisterCustomTypeFunc(optionalValue[*string], Optional[*string]{})
		v.RegisterCustomTypeFunc(optionalValue[float64], Optional[float64]{})
		v.RegisterCustomTypeFunc(optionalValue[bool], Optional[bool]{})
		v.RegisterCustomTypeFunc(optionalValue[int64], Optional[int64]{})
		v.RegisterCustomTypeFunc(optionalValue[model.Role], Optional[model.Role]{})
		v.RegisterCustomTypeFunc(optionalValue[model.Currency], Optional[model.Currency]{})

		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			return model.Role(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			return model.Currency(fl.Field().String()).Valid()
		})

		validate = v
	})
	return validate
}

// Validate 校验请求结构体
func Validate(obj interface{}) error {
	return Validator().Struct(obj)
}

// ginValidator 让 gin 的 ShouldBind* 走同一个校验器
type ginValidator struct{}

func (ginValidator) ValidateStruct(obj interface{}) error {
	if obj == nil {
		return nil
	}
	value := reflect.ValueOf(obj)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}
	return Validate(obj)
}

func (ginValidator) Engine() interface{} {
	return Validator()
}

// InstallBinding 替换 gin 默认校验器，路由初始化时调用
func InstallBinding() {
	binding.Validator = ginValidator{}
}
