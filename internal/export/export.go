// 包 export 负责结果输出：将匹配帖子写为带缩进的 JSON 文件，并打印人读摘要。
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go-convo-scout/internal/model"
)

// ToJSON 将帖子列表写为 JSON 数组（覆盖写入）。不转义 HTML 字符，非 ASCII 原样保留。
func ToJSON(posts []model.PostRecord, path string) error {
	if posts == nil {
		posts = []model.PostRecord{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(posts); err != nil {
		return fmt.Errorf("encode json to %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// PrintSummary 输出每条帖子的标题、所属 subreddit 与链接。
func PrintSummary(w io.Writer, posts []model.PostRecord, path string) error {
	var b bytes.Buffer
	fmt.Fprintf(&b, "\n已导出 %d 条帖子到 %s\n", len(posts), path)
	fmt.Fprintln(&b, "\n已保存的帖子：")
	for i, p := range posts {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, p.Title)
		fmt.Fprintf(&b, "   Subreddit: r/%s\n", p.Subreddit)
		fmt.Fprintf(&b, "   URL: %s\n", p.URL)
	}
	_, err := w.Write(b.Bytes())
	return err
}

// PrintNoMatches 输出"无匹配"提示。
func PrintNoMatches(w io.Writer) error {
	_, err := fmt.Fprintln(w, "没有找到符合条件的帖子")
	return err
}

// Write 为 ResultWriter 的完整流程：有结果时写文件并打印摘要，否则只打印提示。
// 返回是否写出了文件。
func Write(w io.Writer, posts []model.PostRecord, path string) (bool, error) {
	if len(posts) == 0 {
		return false, PrintNoMatches(w)
	}
	if err := ToJSON(posts, path); err != nil {
		return false, err
	}
	return true, PrintSummary(w, posts, path)
}
