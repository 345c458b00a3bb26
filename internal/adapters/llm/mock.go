package llm

import (
	"context"
	"errors"
	"sync"

	"github.com/devgrade/interview-agent/internal/domain"
)

// ScriptedGenerator replays a fixed sequence of replies. Once the script is
// exhausted it keeps returning the last reply, which keeps demo sessions and
// tests going however many turns they take.
type ScriptedGenerator struct {
	mu      sync.Mutex
	replies []string
	next    int
	calls   int
}

func NewScriptedGenerator(replies ...string) *ScriptedGenerator {
	return &ScriptedGenerator{replies: replies}
}

func (g *ScriptedGenerator) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls++
	if len(g.replies) == 0 {
		return "Noted. Could you tell me more about that?", nil
	}
	reply := g.replies[g.next]
	if g.next < len(g.replies)-1 {
		g.next++
	}
	return reply, nil
}

// Calls reports how many times Generate was invoked.
func (g *ScriptedGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// FailingGenerator always errors. Exercises the fallback policies.
type FailingGenerator struct{}

func (FailingGenerator) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	return "", errors.New("text generation backend unavailable")
}
