// 包 logx 是对标准库 slog 的薄封装：
// - 支持级别/格式/语言/颜色配置，输出目标可替换（便于测试捕获）
// - 提供 pretty 输出（[调试]/[信息]/[警告]/[错误] 或英文标签）
// - 通过 Debugf/Infof/Warnf/Errorf 暴露，业务代码不直接依赖 slog
package logx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// levelOff 高于任何实际级别，用于静默。
const levelOff slog.Level = 100

// Options 为日志初始化参数，零值等价于 info/pretty/zh-CN/auto 输出到 stdout。
type Options struct {
	Level  string
	Format string // pretty|json|text
	Locale string // zh-CN|en
	Color  string // auto|always|never
	Writer io.Writer
}

// Init 按配置初始化全局日志器。
func Init(o Options) {
	w := o.Writer
	if w == nil {
		w = os.Stdout
	}
	lv := parseLevel(o.Level)
	opts := &slog.HandlerOptions{Level: lv}
	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(o.Format)) {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	case "text":
		h = slog.NewTextHandler(w, opts)
	default:
		h = NewPrettyHandler(w, lv, o.Locale, o.Color)
	}
	slog.SetDefault(slog.New(h))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none", "silent", "off":
		return levelOff
	default:
		return slog.LevelInfo
	}
}

func Debugf(format string, v ...any) { slog.Debug(fmt.Sprintf(format, v...)) }
func Infof(format string, v ...any)  { slog.Info(fmt.Sprintf(format, v...)) }
func Warnf(format string, v ...any)  { slog.Warn(fmt.Sprintf(format, v...)) }
func Errorf(format string, v ...any) { slog.Error(fmt.Sprintf(format, v...)) }

// PrettyHandler：面向人读的单行输出，可选彩色。
type PrettyHandler struct {
	w      io.Writer
	level  slog.Level
	labels map[slog.Level]string
	color  bool
	mu     *sync.Mutex
	attrs  []slog.Attr
	prefix string // 分组前缀，形如 "a.b."
}

var (
	zhLabels = map[slog.Level]string{
		slog.LevelDebug: "[调试]",
		slog.LevelInfo:  "[信息]",
		slog.LevelWarn:  "[警告]",
		slog.LevelError: "[错误]",
	}
	enLabels = map[slog.Level]string{
		slog.LevelDebug: "[DEBUG]",
		slog.LevelInfo:  "[INFO]",
		slog.LevelWarn:  "[WARN]",
		slog.LevelError: "[ERROR]",
	}
	levelColors = map[slog.Level]string{
		slog.LevelDebug: "90",
		slog.LevelInfo:  "36",
		slog.LevelWarn:  "33",
		slog.LevelError: "31",
	}
)

// NewPrettyHandler 创建 pretty Handler；locale 以 zh 开头（或为空）时使用中文标签。
func NewPrettyHandler(w io.Writer, lv slog.Level, locale, colorMode string) *PrettyHandler {
	if w == nil {
		w = os.Stdout
	}
	labels := zhLabels
	if l := strings.ToLower(strings.TrimSpace(locale)); l != "" && !strings.HasPrefix(l, "zh") {
		labels = enLabels
	}
	return &PrettyHandler{
		w:      w,
		level:  lv,
		labels: labels,
		color:  shouldColor(w, colorMode),
		mu:     &sync.Mutex{},
	}
}

func (h *PrettyHandler) Enabled(_ context.Context, l slog.Level) bool {
	return h.level < levelOff && l >= h.level
}

// Handle 输出：时间 + 等级 + 消息 + 展平的 k=v 属性。
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	buf.WriteString(ts.Format("2006-01-02 15:04:05"))
	buf.WriteByte(' ')
	buf.WriteString(h.label(r.Level))
	buf.WriteByte(' ')
	buf.WriteString(r.Message)
	for _, a := range h.attrs {
		writeAttr(&buf, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&buf, h.prefix, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cp := *h
	cp.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	cp.attrs = append(cp.attrs, h.attrs...)
	for _, a := range attrs {
		cp.attrs = append(cp.attrs, slog.Attr{Key: h.prefix + a.Key, Value: a.Value})
	}
	return &cp
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	cp := *h
	cp.prefix = h.prefix + name + "."
	return &cp
}

func (h *PrettyHandler) label(l slog.Level) string {
	s, ok := h.labels[l]
	if !ok {
		s = fmt.Sprintf("[L%d]", l)
	}
	if !h.color {
		return s
	}
	code, ok := levelColors[l]
	if !ok {
		code = "0"
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

func writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, g := range a.Value.Group() {
			writeAttr(buf, prefix+a.Key+".", g)
		}
		return
	}
	buf.WriteByte(' ')
	buf.WriteString(prefix)
	buf.WriteString(a.Key)
	buf.WriteByte('=')
	buf.WriteString(a.Value.String())
}

// shouldColor 判断是否启用颜色：遵循 LOG_COLOR 与 NO_COLOR。
func shouldColor(w io.Writer, mode string) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		return true
	case "auto", "":
		f, ok := w.(*os.File)
		if !ok {
			return false
		}
		fi, err := f.Stat()
		return err == nil && fi.Mode()&os.ModeCharDevice != 0
	default:
		return false
	}
}
