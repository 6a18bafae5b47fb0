package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFromDB(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantKind    Kind
		wantMessage string
	}{
		{"record not found", gorm.ErrRecordNotFound, KindNotFound, "trip not found"},
		{"wrapped not found", fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), KindNotFound, "trip not found"},
		{"duplicate key", gorm.ErrDuplicatedKey, KindConflict, "trip already exists"},
		{"foreign key", gorm.ErrForeignKeyViolated, KindValidation, "invalid trip"},
		{"canceled", context.Canceled, KindUnavailable, "service temporarily unavailable"},
		{"driver error", errors.New(`pq: relation "trips" does not exist`), KindUnavailable, "service temporarily unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromDB(tt.err, "trip")
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantMessage, got.Message)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestFromDBKeepsClassifiedErrors(t *testing.T) {
	orig := Validation("end date must not be before start date")
	assert.Same(t, orig, FromDB(orig, "trip"))
	assert.Nil(t, FromDB(nil, "trip"))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindForbidden, KindOf(Forbidden("nope")))
	assert.Equal(t, KindNotFound, KindOf(gorm.ErrRecordNotFound))
	assert.Equal(t, KindUnavailable, KindOf(errors.New("boom")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindValidation))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(KindNotFound))
	assert.Equal(t, http.StatusConflict, HTTPStatus(KindConflict))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(KindUnauthorized))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(KindForbidden))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(KindUnavailable))
}

type signupForm struct {
	Email    string `json:"email" validate:"required,email"`
	Code     string `json:"otp" validate:"len=4"`
	Password string `json:"newPassword" validate:"min=8"`
	Seats    int    `json:"numberOfTravelers" validate:"min=1"`
	Status   string `json:"status" validate:"oneof=confirmed cancelled"`
}

func TestFromBinding(t *testing.T) {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	valid := signupForm{Email: "a@b.test", Code: "1234", Password: "long-enough", Seats: 1, Status: "confirmed"}

	tests := []struct {
		name        string
		mutate      func(*signupForm)
		wantMessage string
	}{
		{"missing", func(f *signupForm) { f.Email = "" }, "email is required"},
		{"bad email", func(f *signupForm) { f.Email = "nope" }, "email must be a valid email address"},
		{"length", func(f *signupForm) { f.Code = "12" }, "otp must be 4 characters"},
		{"short string", func(f *signupForm) { f.Password = "short" }, "newPassword must be at least 8 characters"},
		{"small number", func(f *signupForm) { f.Seats = 0 }, "numberOfTravelers must be at least 1"},
		{"oneof", func(f *signupForm) { f.Status = "shipped" }, "status must be one of: confirmed, cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)
			err := v.Struct(form)
			require.Error(t, err)

			got := FromBinding(err)
			assert.Equal(t, KindValidation, got.Kind)
			assert.Equal(t, tt.wantMessage, got.Message)
			assert.NotContains(t, got.Message, "signupForm")
		})
	}

	got := FromBinding(errors.New("invalid character '}' looking for beginning of value"))
	assert.Equal(t, KindValidation, got.Kind)
	assert.Equal(t, "invalid request body", got.Message)
}
