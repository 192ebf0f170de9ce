package ez

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	resp "go-gin-blog/internal/transport/http/response"
)

var validatorOnce sync.Once

// setupValidator 给 gin 默认校验器注册 notblank，并让错误里的字段名使用 json tag
func setupValidator() {
	validatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		_ = v.RegisterValidation("maxbytes", maxBytes)
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				name, _, _ = strings.Cut(f.Tag.Get("form"), ",")
			}
			return name
		})
	})
}

// maxBytes 按字节计长度（validator 自带的 max 按 rune 计）
func maxBytes(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil || fl.Field().Kind() != reflect.String {
		return false
	}
	return len(fl.Field().String()) <= n
}

type bindErr struct {
	status  int
	message string
	detail  string
}

func (e *bindErr) Error() string { return e.message + ": " + e.detail }

// bindError 字段校验失败 → 400，消息优先取 msg_<规则> tag，其次 msg tag，多个用 ", " 连接
func bindError(in any, err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return &bindErr{status: http.StatusRequestEntityTooLarge, message: resp.MsgBodyTooLarge}
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		detail := "Invalid request body"
		if errors.Is(err, io.EOF) {
			detail = "Request body is required"
		}
		return &bindErr{status: http.StatusBadRequest, message: resp.MsgValidationFailed, detail: detail}
	}

	t := reflect.TypeOf(in)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	msgs := make([]string, 0, len(ves))
	seen := map[string]bool{}
	for _, fe := range ves {
		m := fieldMessage(t, fe)
		if !seen[m] {
			seen[m] = true
			msgs = append(msgs, m)
		}
	}
	return &bindErr{status: http.StatusBadRequest, message: resp.MsgValidationFailed, detail: strings.Join(msgs, ", ")}
}

func fieldMessage(t reflect.Type, fe validator.FieldError) string {
	if t.Kind() == reflect.Struct {
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if m := f.Tag.Get("msg_" + fe.Tag()); m != "" {
				return m
			}
			if m := f.Tag.Get("msg"); m != "" {
				return m
			}
		}
	}
	name := fe.Field()
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	switch fe.Tag() {
	case "required", "notblank":
		return name + " is required"
	case "email":
		return "Valid email is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "maxbytes":
		return fmt.Sprintf("%s must be at most %s bytes", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fe.Param())
	default:
		return name + " is invalid"
	}
}
