//go:build !integration

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"aura-assistant/internal/domain/model"
	"aura-assistant/internal/usecase"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"serve", "ask", "chat"} {
		if c, _, err := root.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("missing subcommand %q", name)
		}
	}
	if f := root.PersistentFlags().Lookup("config"); f == nil || f.DefValue != "config.yaml" {
		t.Error("expected --config flag defaulting to config.yaml")
	}
}

func TestPlainText(t *testing.T) {
	in := "Here are a few tracks I found for **'lofi'**: 🎶<br><br>" +
		"1. <a href='https://x/1' target='_blank' class='text-blue-400 hover:underline'><strong>Song</strong> by Tom &amp; Jerry</a><br>"
	got := plainText(in)
	want := "Here are a few tracks I found for 'lofi': 🎶\n\n1. Song by Tom & Jerry (https://x/1)\n"
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

type replyChat struct{ seen []string }

func (r *replyChat) SendMessage(ctx context.Context, conv *model.Conversation, message string) (usecase.Reply, error) {
	r.seen = append(r.seen, message)
	return usecase.Reply{Text: "**ok**"}, nil
}

func TestChatLoop(t *testing.T) {
	nop := zerolog.Nop()
	chat := &replyChat{}
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	var out bytes.Buffer

	err := chatLoop(cmd, chat, usecase.NewSessionManager(&nop), strings.NewReader("hi\nweather in Oslo\nexit\nignored\n"), &out)
	if err != nil {
		t.Fatalf("chatLoop: %v", err)
	}
	if len(chat.seen) != 2 || chat.seen[1] != "weather in Oslo" {
		t.Fatalf("unexpected messages %v", chat.seen)
	}
	if strings.Count(out.String(), "aura> ok") != 2 {
		t.Errorf("unexpected output %q", out.String())
	}
}
