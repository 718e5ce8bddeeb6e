package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allang/companion-memory/internal/model"
)

func TestBuildContextEmpty(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	assert.Equal(t, "", m.BuildContext(ctx),
		"a fresh subsystem yields no context to inject")
}

func TestBuildContextEmptyAfterReset(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	m.Route(ctx, []model.Record{
		{Category: model.CategoryLongTerm, Key: model.FieldName, Value: "민수"},
		{Category: model.CategoryMidTerm, Value: "ep"},
	})
	require.NotEqual(t, "", m.BuildContext(ctx))

	require.NoError(t, m.Reset(ctx))
	assert.Equal(t, "", m.BuildContext(ctx))
}

func TestBuildContextProfileFieldOrder(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)
	st := m.Store()

	p := model.DefaultProfile()
	p.Name = "민수"
	p.Birthday = "3월 5일"
	p.Likes = []string{"coffee", "hiking"}
	p.HomeLocation = "서울"
	p.Memo = "야근이 잦다"
	require.NoError(t, st.SaveProfile(ctx, p))

	out := m.BuildContext(ctx)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, []string{
		"[기억 컨텍스트]",
		"- 사용자 이름: 민수",
		"- 생일: 3월 5일",
		"- 좋아하는 것: coffee, hiking",
		"- 거주지: 서울",
		"- 메모: 야근이 잦다",
	}, lines, "populated fields only, in fixed order, no placeholders")
}

func TestBuildContextEpisodeSection(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	_, err := m.Store().AppendEpisode(ctx, "제주도 여행 중", "기쁨", 4)
	require.NoError(t, err)

	out := m.BuildContext(ctx)
	assert.Contains(t, out, "- 최근 대화 기억:")
	assert.Contains(t, out, "] 제주도 여행 중")
	assert.True(t, strings.HasPrefix(out, "[기억 컨텍스트]\n"))
}

func TestBuildContextLikesDeduplicated(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)
	st := m.Store()

	// update(likes, coffee) twice then update(likes, tea): a single joined
	// line with no duplication.
	st.UpdateProfile(ctx, model.FieldLikes, "coffee")
	st.UpdateProfile(ctx, model.FieldLikes, "coffee")
	st.UpdateProfile(ctx, model.FieldLikes, "tea")

	out := m.BuildContext(ctx)
	assert.Equal(t, 1, strings.Count(out, "좋아하는 것"))
	assert.Contains(t, out, "- 좋아하는 것: coffee, tea")
}

func TestBuildContextRereadsStores(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	m.Store().UpdateProfile(ctx, model.FieldLikes, "coffee")
	first := m.BuildContext(ctx)

	m.Store().UpdateProfile(ctx, model.FieldLikes, "tea")
	second := m.BuildContext(ctx)

	assert.NotEqual(t, first, second, "builder holds no state between calls")
	assert.Contains(t, second, "tea")
}

func TestBuildContextDegradedStore(t *testing.T) {
	ctx := context.Background()
	m := Open("/dev/null/not-a-dir/memory.db", nil)
	defer m.Close()

	assert.False(t, m.Persistent())
	assert.Equal(t, "", m.BuildContext(ctx),
		"degraded subsystem stays callable and yields empty context")
}
