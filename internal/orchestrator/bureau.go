package orchestrator

import (
	"context"
	"strings"
)

// CreditBureau resolves a verified identity and credit score for a PAN.
// The real bureau integration sits behind this interface; the engine ships
// with a deterministic mock.
type CreditBureau interface {
	Verify(ctx context.Context, pan string) (name string, score int, err error)
}

// MockBureau simulates a credit bureau lookup: PANs ending in F or A score
// 780, everything else 680, and the display name is a fixed placeholder.
type MockBureau struct{}

func (MockBureau) Verify(_ context.Context, pan string) (string, int, error) {
	score := 680
	if strings.HasSuffix(pan, "F") || strings.HasSuffix(pan, "A") {
		score = 780
	}
	return "Rahul Sharma", score, nil
}
