package jobstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykhdr/crack-fnv/pkg/messages"
)

func TestSaveGetReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Save(&Info{ID: "j1", Status: StatusNew, CreatedAt: time.Now()})

	info, exists := s.Get("j1")
	require.True(t, exists)
	info.Status = StatusError

	again, exists := s.Get("j1")
	require.True(t, exists)
	assert.Equal(t, StatusNew, again.Status, "mutating a returned copy must not leak into the store")
}

func TestUpdateStatus(t *testing.T) {
	s := NewStore()
	s.Save(&Info{ID: "j1", Status: StatusNew})
	s.UpdateStatus("j1", StatusError, "boom")

	info, exists := s.Get("j1")
	require.True(t, exists)
	assert.Equal(t, StatusError, info.Status)
	assert.Equal(t, "boom", info.ErrorReason)

	// Unknown ids are ignored.
	s.UpdateStatus("missing", StatusReady, "")
	_, exists = s.Get("missing")
	assert.False(t, exists)
}

func TestDelete(t *testing.T) {
	s := NewStore()
	s.Save(&Info{ID: "j1", Status: StatusReady, Response: &messages.CrackTaskResponse{RequestId: "j1"}})
	s.Delete("j1")
	_, exists := s.Get("j1")
	assert.False(t, exists)
}
