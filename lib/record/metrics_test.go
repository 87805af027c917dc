package record

import (
	"testing"

	"bullet/lib/codec"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterializationMetrics(t *testing.T) {
	// other tests in the package may decode concurrently, so only lower bounds
	// are checked
	success := testutil.ToFloat64(materializations.WithLabelValues("success"))
	failure := testutil.ToFloat64(materializations.WithLabelValues("failure"))

	data, err := codec.Binary{}.Encode(map[string]any{"a": "b"})
	require.NoError(t, err)
	assert.True(t, FromBytes(nil, data).Materialize())
	assert.False(t, FromBytes(nil, []byte{0xff}).Materialize())

	assert.GreaterOrEqual(t, testutil.ToFloat64(materializations.WithLabelValues("success"))-success, 1.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(materializations.WithLabelValues("failure"))-failure, 1.0)
}
