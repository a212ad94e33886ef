package buffer

import (
	"strings"
	"testing"
)

func TestErrSendStateMessageContainsExpectedPhrase(t *testing.T) {
	if !strings.Contains(ErrSendState.Error(), "Cannot send()") {
		t.Fatalf("ErrSendState message must contain the literal phrase %q, got %q", "Cannot send()", ErrSendState.Error())
	}
}
