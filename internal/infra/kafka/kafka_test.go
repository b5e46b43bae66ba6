package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"vidtube-go/internal/model"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

type recordingSink struct {
	indexed []uuid.UUID
	removed []uuid.UUID
}

func (s *recordingSink) IndexVideo(_ context.Context, v *model.Video) error {
	s.indexed = append(s.indexed, v.ID)
	return nil
}

func (s *recordingSink) RemoveVideo(_ context.Context, id uuid.UUID) error {
	s.removed = append(s.removed, id)
	return nil
}

func TestProducerRoundTripsThroughSink(t *testing.T) {
	w := &recordingWriter{}
	p := &Producer{writer: w, topic: "videos.index"}
	ctx := context.Background()

	video := &model.Video{ID: uuid.New(), Title: "hello"}
	require.NoError(t, p.IndexVideo(ctx, video))
	require.NoError(t, p.RemoveVideo(ctx, video.ID))
	require.Len(t, w.msgs, 2)

	for _, msg := range w.msgs {
		assert.Equal(t, "videos.index", msg.Topic)
		assert.Equal(t, video.ID.String(), string(msg.Key))
	}

	sink := &recordingSink{}
	for _, msg := range w.msgs {
		ev, err := DecodeEvent(msg.Value)
		require.NoError(t, err)
		require.NoError(t, Apply(ctx, sink, ev))
	}
	assert.Equal(t, []uuid.UUID{video.ID}, sink.indexed)
	assert.Equal(t, []uuid.UUID{video.ID}, sink.removed)
}

func TestProducerWriteFailure(t *testing.T) {
	p := &Producer{writer: &recordingWriter{err: errors.New("broker down")}, topic: "t"}
	err := p.RemoveVideo(context.Background(), uuid.New())
	assert.ErrorContains(t, err, "broker down")
}

func TestDecodeEventRejectsMalformed(t *testing.T) {
	_, err := DecodeEvent([]byte("{"))
	assert.Error(t, err)

	_, err = DecodeEvent([]byte(`{"op":"delete"}`))
	assert.Error(t, err)

	raw, _ := json.Marshal(VideoIndexEvent{Op: OpUpsert, VideoID: uuid.New()})
	_, err = DecodeEvent(raw)
	assert.Error(t, err)
}

func TestApplyUnknownOp(t *testing.T) {
	err := Apply(context.Background(), &recordingSink{}, &VideoIndexEvent{Op: "rename", VideoID: uuid.New()})
	assert.Error(t, err)
}
