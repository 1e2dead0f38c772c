// Package prompt renders captured session stubs into a review prompt
// for an external reasoning agent. The agent's behaviour (what to
// consolidate, what to promote) is its own business; the only contract
// here is the stable stub text.
package prompt

import (
	"fmt"
	"strings"

	"learnlog/internal/store"
)

const DefaultBudget = 4000

const header = `You are reviewing auto-captured coding-session summaries for this
project. For each session stub below, decide whether it contains a
durable insight worth consolidating, and propose the consolidated
wording. Keep stubs you cannot judge; never invent details that are
not in a stub.
`

type Generator struct {
	st      *store.Store
	project string
}

func NewGenerator(st *store.Store, project string) *Generator {
	return &Generator{st: st, project: project}
}

type Options struct {
	// Budget is an approximate token budget for the whole prompt.
	// Zero means DefaultBudget.
	Budget int
}

// Generate builds the review prompt from the newest captured sessions,
// adding whole stubs newest-first until the budget is spent. At least
// one stub is always included.
func (g *Generator) Generate(opts Options) (string, error) {
	budget := opts.Budget
	if budget <= 0 {
		budget = DefaultBudget
	}

	sessions, err := g.st.ListSessions(100)
	if err != nil {
		return "", fmt.Errorf("list sessions: %w", err)
	}
	if len(sessions) == 0 {
		return "", fmt.Errorf("no captured sessions — run 'learnlog capture' first")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Session review: %s\n\n", g.project)
	sb.WriteString(header)
	sb.WriteString("\n")

	used := EstimateTokens(sb.String())
	included := 0
	for _, sess := range sessions {
		stub := sess.Stub
		if stub == "" {
			continue
		}
		cost := EstimateTokens(stub) + 2
		if included > 0 && used+cost > budget {
			break
		}
		sb.WriteString(stub)
		sb.WriteString("\n")
		used += cost
		included++
	}

	if included == 0 {
		return "", fmt.Errorf("no captured sessions — run 'learnlog capture' first")
	}
	return sb.String(), nil
}
