package chat

import (
	"testing"

	"github.com/google/uuid"
)

func TestActionRequest_Validate(t *testing.T) {
	valid := ActionRequest{SessionID: uuid.New(), Action: "open the door"}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	missing := ActionRequest{Action: "open the door"}
	if err := missing.Validate(); err == nil {
		t.Error("expected error without session ID")
	}

	empty := ActionRequest{SessionID: uuid.New()}
	if err := empty.Validate(); err == nil {
		t.Error("expected error with empty action")
	}
}
