package jobcontext

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBegin_CarriesRunIdentity(t *testing.T) {
	transcriptID := uuid.New()
	ctx := Begin(transcriptID)

	assert.NotEqual(t, uuid.Nil, RunID(ctx))
	assert.Equal(t, transcriptID, TranscriptID(ctx))
	assert.GreaterOrEqual(t, Elapsed(ctx), time.Duration(0))

	// No deadline: the run outlives the originating request.
	_, hasDeadline := ctx.Deadline()
	assert.False(t, hasDeadline)
}

func TestBegin_DistinctRunIDs(t *testing.T) {
	id := uuid.New()
	assert.NotEqual(t, RunID(Begin(id)), RunID(Begin(id)))
}

func TestAccessors_OutsideRun(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, uuid.Nil, RunID(ctx))
	assert.Equal(t, uuid.Nil, TranscriptID(ctx))
	assert.Zero(t, Elapsed(ctx))
	assert.Len(t, Fields(ctx), 2)
}
