package usecase

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"absensi-sekolah/internal/model"

	"github.com/go-playground/validator/v10"
)

var (
	ErrPersonNotFound     = errors.New("siswa/guru tidak ditemukan")
	ErrAttendanceNotFound = errors.New("data absensi tidak ditemukan")
	ErrDuplicateScan      = errors.New("absensi masuk dan pulang hari ini sudah tercatat")
	ErrOnLeave            = errors.New("sedang izin/sakit pada tanggal ini")
	ErrRuleNotFound       = errors.New("aturan absensi tidak ditemukan")
	ErrRuleConflict       = errors.New("aturan absensi bentrok dengan aturan lain di kelas yang sama")
	ErrInvalidCredentials = errors.New("username atau password salah")
)

// ValidationError membawa pesan per field, dikirim sebagai 422.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validasi gagal: " + strings.Join(keys, ", ")
}

// orNil supaya ValidationError kosong tidak menjadi error non-nil.
func (e *ValidationError) orNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Nama field mengikuti tag json agar cocok dengan body request
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("leavetype", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseLeaveType(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := parseClock(fl.Field().String())
		return err == nil
	})
	return v
}

// validateStruct menjalankan validator dan mengubah hasilnya menjadi ValidationError.
func validateStruct(s interface{}) *ValidationError {
	verr := NewValidationError()
	err := validate.Struct(s)
	if err == nil {
		return verr
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add("body", err.Error())
		return verr
	}
	for _, fe := range fieldErrs {
		verr.Add(fieldPath(fe), fieldMessage(fe))
	}
	return verr
}

// fieldPath membuang nama struct paling luar: "ScanInput.data.pin" -> "data.pin".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "wajib diisi"
	case "leavetype":
		return "harus Sakit atau Izin"
	case "ymd":
		return "format tanggal harus YYYY-MM-DD"
	case "clock":
		return "format jam harus HH:MM atau HH:MM:SS"
	case "oneof":
		return "harus salah satu dari: " + fe.Param()
	case "max":
		return "maksimal " + fe.Param() + " karakter"
	case "url":
		return "harus berupa URL"
	default:
		return "tidak valid (" + fe.Tag() + ")"
	}
}
