package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{450000, "UGX 450,000"},
		{0, "UGX 0"},
		{999, "UGX 999"},
		{1000, "UGX 1,000"},
		{25000000, "UGX 25,000,000"},
		{-4500, "UGX -4,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Price(tt.amount))
	}
}

func TestPhoneNumber(t *testing.T) {
	assert.Equal(t, "+256 700 123 456", PhoneNumber("256700123456"))
	assert.Equal(t, "+256 772 123 456", PhoneNumber("+256772123456"))
	// Numbers not matching the Ugandan international shape pass through.
	assert.Equal(t, "0700123456", PhoneNumber("0700123456"))
	assert.Equal(t, "12345", PhoneNumber("12345"))
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "Just now"},
		{45 * time.Second, "45s ago"},
		{1 * time.Minute, "1 min ago"},
		{5 * time.Minute, "5 mins ago"},
		{1 * time.Hour, "1 hr ago"},
		{7 * time.Hour, "7 hrs ago"},
		{26 * time.Hour, "1 day ago"},
		{3 * 24 * time.Hour, "3 days ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TimeAgo(now.Add(-tt.ago), now), "duration %s", tt.ago)
	}
}

func TestTimeAgoBeyondAWeek(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	sameYear := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "14 Mar", TimeAgo(sameYear, now))

	lastYear := time.Date(2025, 12, 25, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "25 Dec 2025", TimeAgo(lastYear, now))
}
