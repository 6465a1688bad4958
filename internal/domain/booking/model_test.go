package booking_test

import (
	"strings"
	"testing"
	"time"

	"coursebook/internal/domain/booking"
)

// TestBookingValidation tests validation of Booking.
func TestBookingValidation(t *testing.T) {
	tests := []struct {
		name    string
		booking booking.Booking
		wantErr bool
	}{
		{
			name: "valid pending booking",
			booking: booking.Booking{
				ID:           "b1",
				AccountID:    "a1",
				CourseID:     "c1",
				Status:       booking.StatusPending,
				ExtraRequest: "Beginner friendly tools",
			},
			wantErr: false,
		},
		{
			name: "valid confirmed booking without extra",
			booking: booking.Booking{
				ID:        "b2",
				AccountID: "a1",
				CourseID:  "c2",
				Status:    booking.StatusConfirmed,
			},
			wantErr: false,
		},
		{
			name: "missing account",
			booking: booking.Booking{
				ID:       "b1",
				CourseID: "c1",
				Status:   booking.StatusPending,
			},
			wantErr: true,
		},
		{
			name: "missing course",
			booking: booking.Booking{
				ID:        "b1",
				AccountID: "a1",
				Status:    booking.StatusPending,
			},
			wantErr: true,
		},
		{
			name: "invalid status",
			booking: booking.Booking{
				ID:        "b1",
				AccountID: "a1",
				CourseID:  "c1",
				Status:    "waitlisted",
			},
			wantErr: true,
		},
		{
			name: "extra too long",
			booking: booking.Booking{
				ID:           "b1",
				AccountID:    "a1",
				CourseID:     "c1",
				Status:       booking.StatusPending,
				ExtraRequest: strings.Repeat("x", booking.MaxExtraLength+1),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.booking.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestSetExtraRequest tests overwriting the extra request.
func TestSetExtraRequest(t *testing.T) {
	b := booking.Booking{
		ID:           "b1",
		AccountID:    "a1",
		CourseID:     "c1",
		Status:       booking.StatusPending,
		ExtraRequest: "old",
	}

	now := time.Now()
	if err := b.SetExtraRequest("Beginner friendly tools", now); err != nil {
		t.Fatalf("SetExtraRequest() = %v", err)
	}
	if b.ExtraRequest != "Beginner friendly tools" {
		t.Errorf("ExtraRequest = %q", b.ExtraRequest)
	}
	if !b.UpdatedAt.Equal(now) {
		t.Errorf("UpdatedAt = %v, want %v", b.UpdatedAt, now)
	}

	if err := b.SetExtraRequest(strings.Repeat("x", booking.MaxExtraLength+1), now); err != booking.ErrExtraTooLong {
		t.Errorf("SetExtraRequest(too long) = %v, want ErrExtraTooLong", err)
	}
}
