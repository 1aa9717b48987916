package analyzer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-convo-scout/internal/conversation"
	"go-convo-scout/internal/model"
)

func fixture() []model.Message {
	return []model.Message{
		{Role: model.RoleUser, Text: "Python code for the seat problem"},
		{Role: model.RoleAssistant, Text: "Python code handles the seat list"},
		{Role: model.RoleUser, Text: "Fix the python bug in SQL3 now 42"},
	}
}

func TestCounts(t *testing.T) {
	a := New(fixture())
	assert.Equal(t, RoleCounts{User: 2, Assistant: 1}, a.MessageCount())
	assert.Equal(t, RoleCounts{User: 14, Assistant: 6}, a.WordCount())
	assert.Equal(t, RoleAverages{User: 7, Assistant: 6}, a.AverageWords())
}

func TestCounts_IndependentOfOrder(t *testing.T) {
	msgs := fixture()
	rev := []model.Message{msgs[2], msgs[1], msgs[0]}
	assert.Equal(t, New(msgs).WordCount(), New(rev).WordCount())
	assert.Equal(t, New(msgs).MessageCount(), New(rev).MessageCount())
}

func TestMessageCount_SumsToTotal(t *testing.T) {
	msgs := conversation.Sample()
	mc := New(msgs).MessageCount()
	assert.Equal(t, len(msgs), mc.Total())
	assert.Equal(t, RoleCounts{User: 7, Assistant: 7}, mc)
}

func TestAverageWords_ZeroMessages(t *testing.T) {
	a := New([]model.Message{{Role: model.RoleUser, Text: "one two"}})
	assert.Equal(t, RoleAverages{User: 2, Assistant: 0}, a.AverageWords())
	assert.Equal(t, RoleAverages{}, New(nil).AverageWords())
}

func TestTopKeywords_OrderAndTies(t *testing.T) {
	got := New(fixture()).TopKeywords(4, nil)
	assert.Equal(t, []model.KeywordCount{
		{Word: "python", Count: 3},
		{Word: "code", Count: 2},
		{Word: "seat", Count: 2},
		{Word: "problem", Count: 1},
	}, got)
}

func TestTopKeywords_LengthAndMonotonic(t *testing.T) {
	a := New(conversation.Sample())
	all := a.TopKeywords(1000, StopWords{})
	require.NotEmpty(t, all)
	for k := 0; k <= len(all)+2; k++ {
		got := a.TopKeywords(k, StopWords{})
		assert.Len(t, got, min(k, len(all)))
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, got[i-1].Count, got[i].Count)
		}
	}
}

func TestTopKeywords_FiltersStopWordsAndShortTokens(t *testing.T) {
	msgs := []model.Message{
		{Role: model.RoleUser, Text: "The cat and the dog, an ox: IT is ok. Cat!"},
		{Role: model.RoleAssistant, Text: "which cat would win? GO go go"},
	}
	got := New(msgs).TopKeywords(10, nil)
	stop := DefaultStopWords()
	for _, kw := range got {
		assert.Greater(t, len(kw.Word), 2, kw.Word)
		assert.False(t, stop.Has(kw.Word), kw.Word)
	}
	assert.Equal(t, []model.KeywordCount{{Word: "cat", Count: 3}, {Word: "dog", Count: 1}, {Word: "win", Count: 1}}, got)

	custom := New(msgs).TopKeywords(10, NewStopWords("CAT"))
	assert.Equal(t, "the", custom[0].Word)
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"edge", "case", "don", "t", "hello"}, tokens("edge-case i7 don't café x_y hello 3.9"))
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(fixture()).Report(&buf, 2, nil))
	out := buf.String()
	assert.Contains(t, out, "用户消息：2")
	assert.Contains(t, out, "助手平均每条：6.0")
	assert.Contains(t, out, "1. python：3 次")
	assert.NotContains(t, out, "3. ")
}

func TestTokens_NumericRunesJoinWords(t *testing.T) {
	assert.Equal(t, []string{"plain"}, tokens("abc² half½ plain"))
}
