package widget

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/zhouzirui/flight-insights/backend/internal/model/chat"
)

// TerminalView renders the transcript as chat bubbles in a terminal: user
// lines right-aligned in blue, bot lines left-aligned in green. Output is
// buffered until ScrollToBottom. It is safe for concurrent use.
type TerminalView struct {
	mu    sync.Mutex
	out   *bufio.Writer
	width int
	user  *color.Color
	bot   *color.Color
}

// NewTerminalView writes to w using a line width of width columns.
func NewTerminalView(w io.Writer, width int, noColor bool) *TerminalView {
	if width <= 0 {
		width = 80
	}

	user := color.New(color.FgBlue, color.Bold)
	bot := color.New(color.FgGreen)
	if noColor {
		user.DisableColor()
		bot.DisableColor()
	}

	return &TerminalView{out: bufio.NewWriter(w), width: width, user: user, bot: bot}
}

// Append implements View.
func (v *TerminalView) Append(message chat.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, line := range strings.Split(message.Text, "\n") {
		if message.Origin == chat.OriginUser {
			pad := v.width - utf8.RuneCountInString(line)
			if pad > 0 {
				line = strings.Repeat(" ", pad) + line
			}
			fmt.Fprintln(v.out, v.user.Sprint(line))
			continue
		}
		fmt.Fprintln(v.out, v.bot.Sprint(line))
	}
}

// ScrollToBottom flushes pending output so the newest message is visible.
func (v *TerminalView) ScrollToBottom() {
	v.mu.Lock()
	defer v.mu.Unlock()

	_ = v.out.Flush()
}
