package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		kind Kind
	}{
		{NotFound("user %s not found", "x"), KindNotFound},
		{Conflict("email already in use"), KindConflict},
		{Validation("bad input"), KindValidation},
		{Provider(errors.New("boom")), KindProvider},
		{Orchestration("failed to create account", nil), KindOrchestration},
		{Inconsistency("account stores are inconsistent", nil), KindInconsistency},
		{errors.New("plain"), KindUnknown},
		{nil, KindUnknown},
	}
	for _, c := range cases {
		if got := KindOf(c.err); got != c.kind {
			t.Errorf("KindOf(%v) = %v, want %v", c.err, got, c.kind)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("context: %w", Conflict("dup"))
	if !IsKind(err, KindConflict) {
		t.Errorf("wrapped conflict not recognized")
	}
}

func TestOrchestrationHidesCause(t *testing.T) {
	cause := errors.New("provider rejected the password")
	err := Orchestration("failed to create account", cause)
	if err.Error() != "failed to create account" {
		t.Errorf("message leaked cause: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Errorf("cause should stay reachable for logging")
	}
}

func TestInconsistencyDistinctFromOrchestration(t *testing.T) {
	if KindOf(Inconsistency("drift", nil)) == KindOf(Orchestration("fail", nil)) {
		t.Error("inconsistency must be distinguishable from orchestration failure")
	}
}
