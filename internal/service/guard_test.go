package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chatflow/client/internal/model"
	"chatflow/client/internal/service"
)

func TestCanMutate(t *testing.T) {
	tests := []struct {
		name    string
		session *model.Session
		want    bool
	}{
		{"ongoing", &model.Session{State: model.StateOngoing}, true},
		{"state omitted", &model.Session{}, false},
		{"archived", &model.Session{State: model.StateArchived}, false},
		{"deleted", &model.Session{State: model.StateDeleted}, false},
		{"no session", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.CanMutate(tt.session))
		})
	}
}
