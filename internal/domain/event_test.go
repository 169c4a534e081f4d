package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeText(t *testing.T) {
	tests := []struct {
		text string
		kind EventKind
	}{
		{text: "/start", kind: EventMenu},
		{text: "/book", kind: EventStart},
		{text: "/book@shop_bot", kind: EventStart},
		{text: " 📝 Записаться ", kind: EventStart},
		{text: "/cancel", kind: EventCancel},
		{text: "Айбек Сериков", kind: EventText},
		{text: "/unknown", kind: EventText},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			ev := DecodeText(42, tt.text)
			assert.Equal(t, tt.kind, ev.Kind)
			assert.Equal(t, int64(42), ev.UserID)
		})
	}

	assert.Equal(t, "Айбек", DecodeText(1, "  Айбек  ").Text)
}

func TestDecodeCallback(t *testing.T) {
	tests := []struct {
		token string
		kind  EventKind
		value string
	}{
		{token: ServiceToken("service_2"), kind: EventServiceSelected, value: "service_2"},
		{token: MakeToken("Toyota"), kind: EventMakeSelected, value: "Toyota"},
		{token: MakeOtherToken(), kind: EventMakeOther},
		{token: YearToken(2021), kind: EventYearSelected, value: "2021"},
		{token: YearOtherToken(), kind: EventYearOther},
		{token: ConfirmYesToken(), kind: EventConfirmYes},
		{token: ConfirmNoToken(), kind: EventConfirmNo},
		{token: "year:abc", kind: EventUnknown, value: "year:abc"},
		{token: "svc:", kind: EventUnknown, value: "svc:"},
		{token: "garbage", kind: EventUnknown, value: "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			ev := DecodeCallback(5, tt.token)
			assert.Equal(t, tt.kind, ev.Kind)
			assert.Equal(t, tt.value, ev.Value)
			assert.True(t, ev.IsSelection())
		})
	}
}
