package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcrashlab/ev-accident-predictor/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	processedAt := time.Date(2024, 6, 15, 8, 30, 0, 0, time.UTC)
	event := domain.AuditEvent{
		ID:     "audit-1",
		Region: domain.RegionManhattan,
		Request: domain.PredictionRequest{
			Month:              6,
			Day:                15,
			Hour:               8,
			DayOfWeek:          5,
			VehicleType:        "sedan",
			ZipCode:            10001,
			ContributingFactor: "unsafe speed",
			IsRushHour:         1,
			IsWeekend:          1,
		},
		Label:       1,
		Probability: 0.65,
		RiskFactors: []string{"Accident occurs during rush hour"},
		ProcessedAt: processedAt,
	}

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	assert.Equal(t, []byte("audit-1"), msg.Key)
	// The payload keeps the model's training column names.
	assert.Contains(t, string(msg.Value), `"VEHICLE TYPE CODE 2":"sedan"`)
	assert.Contains(t, string(msg.Value), `"ZIP CODE":10001`)
	assert.Contains(t, string(msg.Value), `"probability":0.65`)

	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "region", msg.Headers[0].Key)
	assert.Equal(t, []byte("Manhattan, NYC"), msg.Headers[0].Value)
	assert.Equal(t, "label", msg.Headers[1].Key)
	assert.Equal(t, []byte("1"), msg.Headers[1].Value)
	assert.Equal(t, "processed_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(processedAt.Format(time.RFC3339)), msg.Headers[2].Value)
}
