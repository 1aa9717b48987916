package analyzer

import (
	"fmt"
	"io"
	"strings"
)

// Report 将分析结果以人读格式写出。
func (a *Analyzer) Report(w io.Writer, topN int, stop StopWords) error {
	mc, wc, avg := a.MessageCount(), a.WordCount(), a.AverageWords()
	line := strings.Repeat("=", 60)
	var b strings.Builder
	fmt.Fprintln(&b, line)
	fmt.Fprintln(&b, "对话分析报告")
	fmt.Fprintln(&b, line)
	fmt.Fprintln(&b, "\n消息数：")
	fmt.Fprintf(&b, "   用户消息：%d\n", mc.User)
	fmt.Fprintf(&b, "   助手消息：%d\n", mc.Assistant)
	fmt.Fprintln(&b, "\n词数：")
	fmt.Fprintf(&b, "   用户总词数：%d\n", wc.User)
	fmt.Fprintf(&b, "   助手总词数：%d\n", wc.Assistant)
	fmt.Fprintf(&b, "   用户平均每条：%.1f\n", avg.User)
	fmt.Fprintf(&b, "   助手平均每条：%.1f\n", avg.Assistant)
	fmt.Fprintf(&b, "\n高频关键词 TOP %d：\n", topN)
	for i, kw := range a.TopKeywords(topN, stop) {
		fmt.Fprintf(&b, "   %d. %s：%d 次\n", i+1, kw.Word, kw.Count)
	}
	fmt.Fprintln(&b, "\n"+line)
	_, err := io.WriteString(w, b.String())
	return err
}
