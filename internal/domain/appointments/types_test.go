package appointments

import "testing"

func TestCanTransition_ForwardChain(t *testing.T) {
	chain := []Status{StatusScheduled, StatusConfirmed, StatusInProgress, StatusCompleted}

	for i := 0; i < len(chain)-1; i++ {
		if !CanTransition(chain[i], chain[i+1]) {
			t.Fatalf("expected %s -> %s to be legal", chain[i], chain[i+1])
		}
	}

	// No se puede saltar pasos ni volver atrás.
	if CanTransition(StatusScheduled, StatusInProgress) {
		t.Fatalf("expected SCHEDULED -> IN_PROGRESS to be illegal")
	}
	if CanTransition(StatusScheduled, StatusCompleted) {
		t.Fatalf("expected SCHEDULED -> COMPLETED to be illegal")
	}
	if CanTransition(StatusConfirmed, StatusScheduled) {
		t.Fatalf("expected CONFIRMED -> SCHEDULED to be illegal")
	}
	if CanTransition(StatusCompleted, StatusInProgress) {
		t.Fatalf("expected COMPLETED -> IN_PROGRESS to be illegal")
	}
}

func TestCanTransition_Cancel(t *testing.T) {
	tests := []struct {
		from Status
		want bool
	}{
		{StatusScheduled, true},
		{StatusConfirmed, true},
		{StatusInProgress, true},
		{StatusCompleted, false},
		{StatusCancelled, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, StatusCancelled); got != tt.want {
			t.Fatalf("CanTransition(%s, CANCELLED) = %v, want %v", tt.from, got, tt.want)
		}
	}
}

func TestCanTransition_SelfIsIllegal(t *testing.T) {
	for _, s := range []Status{StatusScheduled, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled} {
		if CanTransition(s, s) {
			t.Fatalf("expected %s -> %s to be illegal", s, s)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if _, ok := ParseStatus("CONFIRMED"); !ok {
		t.Fatalf("expected CONFIRMED to parse")
	}
	if _, ok := ParseStatus("confirmed"); ok {
		t.Fatalf("expected lowercase to be rejected before normalization")
	}
	if _, ok := ParseStatus("WAITING"); ok {
		t.Fatalf("expected unknown status to be rejected")
	}
}
