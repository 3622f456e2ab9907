package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatTimestamp(t *testing.T) {
	kyiv := time.FixedZone("EET", 2*60*60)
	ts := time.Date(2024, 3, 1, 11, 30, 15, 999_000_000, kyiv)
	require.Equal(t, "2024-03-01T09:30:15Z", FormatTimestamp(ts))
}

func TestNowUTC(t *testing.T) {
	require.Equal(t, time.UTC, NowUTC().Location())
}
