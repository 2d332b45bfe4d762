package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/GregMSThompson/flowadmin/internal/dto"
	"github.com/GregMSThompson/flowadmin/internal/errs"
)

func TestStructValid(t *testing.T) {
	if err := Struct(dto.SetRoleRequest{UID: "uid-1", Role: "admin"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(dto.SetRoleRequest{Role: "owner"})

	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if !strings.Contains(ve.Message, "uid is required") {
		t.Fatalf("missing uid message: %q", ve.Message)
	}
	if !strings.Contains(ve.Message, "role must be one of: admin user") {
		t.Fatalf("missing role message: %q", ve.Message)
	}
}

func TestStructNestedField(t *testing.T) {
	err := Struct(dto.NotificationRequest{RecipientIDs: []string{""}, Title: "t", Body: "b"})
	if err == nil || !strings.Contains(err.Error(), "recipient_ids[0] is required") {
		t.Fatalf("unexpected error: %v", err)
	}
}
