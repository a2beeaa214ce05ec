package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskValidate(t *testing.T) {
	tests := []struct {
		name    string
		task    Task
		wantErr bool
	}{
		{name: "valid", task: Task{ID: "1", Type: "announce_event"}, wantErr: false},
		{name: "missing id", task: Task{Type: "announce_event"}, wantErr: true},
		{name: "missing type", task: Task{ID: "1"}, wantErr: true},
		{name: "blank type", task: Task{ID: "1", Type: "   "}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, tt.task.Data)
			}
		})
	}
}

func TestTaskGetString(t *testing.T) {
	task := Task{
		ID:   "1",
		Type: "announce_event",
		Data: map[string]interface{}{
			"event_id": "e1",
			"count":    3,
		},
	}

	assert.Equal(t, "e1", task.GetString("event_id"))
	assert.Equal(t, "", task.GetString("count"), "non-string values read as empty")
	assert.Equal(t, "", task.GetString("missing"))
}
