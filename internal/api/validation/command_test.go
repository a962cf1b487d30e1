package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskcrew/taskcrew/internal/api/validation"
)

func TestValidateCommandRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		req        validation.CommandRequest
		wantFields []string
	}{
		{
			name: "valid with verb",
			req:  validation.CommandRequest{CallerExternalID: "1", Verb: "start"},
		},
		{
			name: "valid with callback token",
			req:  validation.CommandRequest{CallerExternalID: "1", CallbackToken: "promote:2"},
		},
		{
			name:       "missing caller",
			req:        validation.CommandRequest{Verb: "start"},
			wantFields: []string{"callerExternalId"},
		},
		{
			name:       "whitespace caller",
			req:        validation.CommandRequest{CallerExternalID: "   ", Verb: "start"},
			wantFields: []string{"callerExternalId"},
		},
		{
			name:       "neither verb nor token",
			req:        validation.CommandRequest{CallerExternalID: "1"},
			wantFields: []string{"verb"},
		},
		{
			name:       "empty everything",
			req:        validation.CommandRequest{},
			wantFields: []string{"callerExternalId", "verb"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			errs := validation.ValidateCommandRequest(tt.req)

			var fields []string
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}
