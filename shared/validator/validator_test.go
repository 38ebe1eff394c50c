package validator_test

import (
	"strings"
	"tavolo/shared/validator"
	"testing"
)

type bookingPayload struct {
	Date      string `json:"date"       validate:"required,calendardate"`
	TimeSlot  string `json:"time_slot"  validate:"required,clocktime"`
	PartySize int    `json:"party_size" validate:"required,gte=1"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		payload bookingPayload
		wantErr bool
	}{
		{
			name: "valid payload",
			payload: bookingPayload{
				Date:      "2025-06-01",
				TimeSlot:  "19:00",
				PartySize: 2,
			},
			wantErr: false,
		},
		{
			name: "malformed date",
			payload: bookingPayload{
				Date:      "06/01/2025",
				TimeSlot:  "19:00",
				PartySize: 2,
			},
			wantErr: true,
		},
		{
			name: "malformed clock time",
			payload: bookingPayload{
				Date:      "2025-06-01",
				TimeSlot:  "7pm",
				PartySize: 2,
			},
			wantErr: true,
		},
		{
			name: "clock time out of range",
			payload: bookingPayload{
				Date:      "2025-06-01",
				TimeSlot:  "24:30",
				PartySize: 2,
			},
			wantErr: true,
		},
		{
			name: "zero party size",
			payload: bookingPayload{
				Date:     "2025-06-01",
				TimeSlot: "19:00",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.payload)

			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateDecodesBody(t *testing.T) {
	body := strings.NewReader(`{"date":"2025-06-01","time_slot":"19:30","party_size":4}`)

	payload := bookingPayload{}
	if err := validator.Validate(body, &payload); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if payload.TimeSlot != "19:30" {
		t.Errorf("expected time slot 19:30, got %s", payload.TimeSlot)
	}

	if err := validator.Validate(strings.NewReader("{not json"), &bookingPayload{}); err == nil {
		t.Error("expected decode error, got nil")
	}
}
