package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/allang/companion-memory/internal/logging"
	"github.com/allang/companion-memory/internal/model"
	"github.com/allang/companion-memory/internal/retention"
)

// Context block labels, in the companion's working language.
const (
	contextHeader  = "[기억 컨텍스트]"
	episodesHeader = "- 최근 대화 기억:"
)

// BuildContext renders the profile plus the recent episode window into a
// plain-text block for prompt injection. Output is deterministic: profile
// fields appear in a fixed order, empty fields are omitted entirely, and
// when neither tier contributes a line the result is the empty string. The
// builder holds no state; every call re-reads both stores.
func (m *Manager) BuildContext(ctx context.Context) string {
	var lines []string

	profile := m.store.Profile(ctx)
	lines = append(lines, profileLines(profile)...)

	episodes, err := m.store.RecentEpisodes(ctx, retention.DefaultRecencyDays)
	if err != nil {
		logging.Warnf("memory: reading recent episodes for context failed: %v", err)
		episodes = nil
	}
	if len(episodes) > 0 {
		lines = append(lines, episodesHeader)
		for _, ep := range episodes {
			lines = append(lines, fmt.Sprintf("  · [%s] %s", ep.Date, ep.Summary))
		}
	}

	if len(lines) == 0 {
		return ""
	}
	return contextHeader + "\n" + strings.Join(lines, "\n") + "\n"
}

// profileLines emits one line per populated profile field, in a fixed order.
func profileLines(p model.Profile) []string {
	var lines []string
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, fmt.Sprintf("- %s: %s", label, value))
		}
	}
	join := func(vs []string) string { return strings.Join(vs, ", ") }

	add("사용자 이름", p.Name)
	add("생일", p.Birthday)
	add("좋아하는 것", join(p.Likes))
	add("싫어하는 것", join(p.Dislikes))
	add("가치관/성격", join(p.Values))
	add("관계", join(p.Relationships))
	add("주 업무지", p.OfficeLocation)
	add("거주지", p.HomeLocation)
	add("메모", p.Memo)
	return lines
}
