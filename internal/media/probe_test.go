package media

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	d, err := parseDuration([]byte(`{"format":{"duration":"12.480000"},"streams":[]}`))
	require.NoError(t, err)
	assert.InDelta(t, 12.48, d, 1e-9)

	d, err = parseDuration([]byte(`{"format":{"duration":"N/A"},"streams":[
		{"codec_type":"audio","duration":"99.0"},
		{"codec_type":"video","duration":"7.5"}]}`))
	require.NoError(t, err)
	assert.InDelta(t, 7.5, d, 1e-9)
}

func TestParseDurationErrors(t *testing.T) {
	_, err := parseDuration([]byte(`not json`))
	assert.Error(t, err)

	_, err = parseDuration([]byte(`{"format":{"duration":"0"}}`))
	assert.Error(t, err)
}

func TestProbeDurationCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProber(0).ProbeDuration(ctx, "/does/not/matter.mp4")
	assert.ErrorIs(t, err, context.Canceled)
}
