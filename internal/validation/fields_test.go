package validation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingBot/internal/domain"
)

func TestService(t *testing.T) {
	catalog := domain.DefaultCatalog()

	name, err := Service("service_2", catalog)
	require.NoError(t, err)
	assert.Equal(t, "🛢 Замена масла", name)

	_, err = Service("service_99", catalog)
	assert.ErrorIs(t, err, ErrServiceUnknown)
	assert.Equal(t, "service_unknown", Reason(err))
}

func TestFullName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "cyrillic", in: "Сериков Айбек", want: "Сериков Айбек"},
		{name: "latin trimmed", in: "  John Smith ", want: "John Smith"},
		{name: "yo letter", in: "Пётр", want: "Пётр"},
		{name: "two letters", in: "Ян", want: "Ян"},
		{name: "one letter", in: "Я", wantErr: true},
		{name: "digits", in: "Aibek 2", wantErr: true},
		{name: "punctuation", in: "Aibek!", wantErr: true},
		{name: "empty", in: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FullName(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNameInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPhone(t *testing.T) {
	a, err := Phone("+7 777 123 45 67")
	require.NoError(t, err)
	b, err := Phone("87771234567")
	require.NoError(t, err)

	assert.Equal(t, "+77771234567", a)
	assert.Equal(t, a, b)

	c, err := Phone("8 (777) 123-45-67")
	require.NoError(t, err)
	assert.Equal(t, a, c)

	for _, bad := range []string{"123456", "+7 777 123 45 6", "+1 777 123 45 67", "8777123456a", ""} {
		_, err := Phone(bad)
		assert.ErrorIs(t, err, ErrPhoneInvalid, bad)
	}
}

func TestCarMake(t *testing.T) {
	catalog := domain.DefaultCatalog()

	got, err := CarMake("Toyota", catalog)
	require.NoError(t, err)
	assert.Equal(t, "Toyota", got)

	_, err = CarMake("Tesla", catalog)
	assert.ErrorIs(t, err, ErrMakeUnknown)

	got, err = CustomCarMake("  ГАЗ ")
	require.NoError(t, err)
	assert.Equal(t, "ГАЗ", got)

	_, err = CustomCarMake("Z")
	assert.ErrorIs(t, err, ErrMakeTooShort)
}

func TestCarYear(t *testing.T) {
	now := time.Date(2029, time.June, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		in      string
		want    int
		wantErr error
	}{
		{in: "1980", want: 1980},
		{in: " 2015 ", want: 2015},
		{in: "2030", want: 2030},
		{in: "1979", wantErr: ErrYearOutOfRange},
		{in: "2031", wantErr: ErrYearOutOfRange},
		{in: "двадцать", wantErr: ErrYearNotNumber},
		{in: "2015.5", wantErr: ErrYearNotNumber},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := CarYear(tt.in, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCarYear_CeilingFollowsClock(t *testing.T) {
	_, err := CarYear("2030", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrYearOutOfRange)
}

func TestReason(t *testing.T) {
	assert.Equal(t, "phone_invalid", Reason(ErrPhoneInvalid))
	assert.Equal(t, "outside_working_hours", Reason(fmt.Errorf("%w: 09:00-20:00", ErrOutsideWorkingHours)))
	assert.Equal(t, "unknown", Reason(assert.AnError))
}
