package factories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebornlabs/wastelog/internal/models"
)

func TestCreateLogRecordInvariants(t *testing.T) {
	factory := NewLogFactory(models.DefaultCatalog(), 42)

	for i := 0; i < 50; i++ {
		record := factory.CreateLogRecord(30)
		require.NotEmpty(t, record.ID)
		require.NotEmpty(t, record.Items)
		require.NotEmpty(t, record.WasteTypes)

		var sum float64
		for _, item := range record.Items {
			assert.Greater(t, item.Quantity, 0.0)
			sum += item.Weight
		}
		assert.Equal(t, sum, record.TotalWeight)
	}
}

func TestCreateLogRecordClampsDaysBack(t *testing.T) {
	factory := NewLogFactory(models.DefaultCatalog(), 1)

	for _, daysBack := range []int{0, -5} {
		record := factory.CreateLogRecord(daysBack)
		assert.WithinDuration(t, time.Now(), time.UnixMilli(record.Date), 48*time.Hour)
	}
}
