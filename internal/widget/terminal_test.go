package widget

import (
	"bytes"
	"testing"

	"github.com/zhouzirui/flight-insights/backend/internal/model/chat"
)

func TestTerminalViewAlignment(t *testing.T) {
	var buf bytes.Buffer
	view := NewTerminalView(&buf, 10, true)

	view.Append(chat.Message{Origin: chat.OriginUser, Text: "hi"})
	view.Append(chat.Message{Origin: chat.OriginBot, Text: "hello\nthere"})

	if buf.Len() != 0 {
		t.Fatal("expected output to stay buffered until scroll")
	}
	view.ScrollToBottom()

	want := "        hi\nhello\nthere\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestTerminalViewLongUserLine(t *testing.T) {
	var buf bytes.Buffer
	view := NewTerminalView(&buf, 4, true)

	view.Append(chat.Message{Origin: chat.OriginUser, Text: "longer than width"})
	view.ScrollToBottom()

	if buf.String() != "longer than width\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
