package monitoring

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationRecorder_ObserveOperation(t *testing.T) {
	r := NewOperationRecorder()

	r.ObserveOperation("load", time.Millisecond, nil)
	r.ObserveOperation("finish_order", time.Millisecond, errors.New("rejected"))

	assert.Equal(t, float64(1), testutil.ToFloat64(r.operations.WithLabelValues("load", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.operations.WithLabelValues("finish_order", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.operationTime))
}

func TestOperationRecorder_WriteTextfile(t *testing.T) {
	r := NewOperationRecorder()
	r.ObserveOperation("toggle_favorite", time.Millisecond, nil)

	path := filepath.Join(t.TempDir(), "orderctl.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `composer_operations_total{operation="toggle_favorite",result="success"} 1`)
}
