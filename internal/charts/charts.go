// 包 charts 将分析结果渲染为 ECharts HTML 页面（每种图一个文件）。
// 只负责"画出给定的数字"，不做任何计算。
package charts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"go-convo-scout/internal/analyzer"
	"go-convo-scout/internal/model"
)

const (
	colorUser      = "#3498db"
	colorAssistant = "#e74c3c"
	colorKeyword   = "#2ecc71"
)

// 输出文件名。
const (
	FileMessageVolume = "message_volume.html"
	FileWordCount     = "word_count.html"
	FileKeywords      = "keywords.html"
	FileAverageLength = "average_length.html"
)

var roleLabels = []string{"用户", "助手"}

// Input 为渲染所需的全部聚合值。
type Input struct {
	Messages analyzer.RoleCounts
	Words    analyzer.RoleCounts
	Averages analyzer.RoleAverages
	Keywords []model.KeywordCount
}

// Render 在 dir 下写出四个图表文件，返回写出的路径（顺序固定）。
func Render(dir string, in Input) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create charts dir %s: %w", dir, err)
	}
	pages := []struct {
		name   string
		charts []components.Charter
	}{
		{FileMessageVolume, []components.Charter{messageBar(in.Messages), messagePie(in.Messages)}},
		{FileWordCount, []components.Charter{wordBar(in.Words)}},
		{FileKeywords, []components.Charter{keywordBar(in.Keywords)}},
		{FileAverageLength, []components.Charter{averageBar(in.Averages)}},
	}
	paths := make([]string, 0, len(pages))
	for _, p := range pages {
		path := filepath.Join(dir, p.name)
		if err := writePage(path, p.charts...); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writePage(path string, cs ...components.Charter) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	page := components.NewPage()
	page.AddCharts(cs...)
	if err := page.Render(f); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}

func roleBar(title, yName string, user, assistant float64) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)
	bar.SetXAxis(roleLabels).AddSeries(yName, []opts.BarData{
		{Value: user, ItemStyle: &opts.ItemStyle{Color: colorUser}},
		{Value: assistant, ItemStyle: &opts.ItemStyle{Color: colorAssistant}},
	}, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}))
	return bar
}

func messageBar(c analyzer.RoleCounts) *charts.Bar {
	return roleBar("消息数：用户 vs 助手", "消息数", float64(c.User), float64(c.Assistant))
}

func messagePie(c analyzer.RoleCounts) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "消息分布"}))
	pie.AddSeries("消息分布", []opts.PieData{
		{Name: roleLabels[0], Value: c.User, ItemStyle: &opts.ItemStyle{Color: colorUser}},
		{Name: roleLabels[1], Value: c.Assistant, ItemStyle: &opts.ItemStyle{Color: colorAssistant}},
	}, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}))
	return pie
}

func wordBar(c analyzer.RoleCounts) *charts.Bar {
	return roleBar("总词数：用户 vs 助手", "总词数", float64(c.User), float64(c.Assistant))
}

func averageBar(a analyzer.RoleAverages) *charts.Bar {
	return roleBar("平均每条消息词数", "平均词数", round1(a.User), round1(a.Assistant))
}

// keywordBar 为横向条形图；ECharts 类目轴自下而上排列，所以倒序填充让最高频在顶部。
func keywordBar(kws []model.KeywordCount) *charts.Bar {
	words := make([]string, len(kws))
	data := make([]opts.BarData, len(kws))
	for i, kw := range kws {
		j := len(kws) - 1 - i
		words[j] = kw.Word
		data[j] = opts.BarData{Value: kw.Count}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("出现最多的 %d 个关键词", len(kws))}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)
	bar.SetXAxis(words).AddSeries("次数", data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: colorKeyword}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "right"}),
	)
	bar.XYReversal()
	return bar
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
