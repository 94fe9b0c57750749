package main

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"aura-assistant/internal/usecase"
)

func newAskCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message>",
		Short: "Send one message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApplication(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer app.Close()

			reply, err := app.chat.SendMessage(cmd.Context(), app.sessions.Current(), strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), plainText(reply.Text))
			return err
		},
	}
}

func newChatCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat interactively on stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApplication(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer app.Close()
			return chatLoop(cmd, app.chat, app.sessions, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// chatLoop reads one message per line until EOF or "exit".
func chatLoop(cmd *cobra.Command, chat usecase.ChatUseCase, sessions *usecase.SessionManager, in io.Reader, out io.Writer) error {
	conv := sessions.Current()
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "you> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}
		reply, _ := chat.SendMessage(cmd.Context(), conv, line)
		fmt.Fprintf(out, "aura> %s\nyou> ", plainText(reply.Text))
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

var (
	anchorRe = regexp.MustCompile(`<a href='([^']*)'[^>]*>(.*?)</a>`)
	tagRe    = regexp.MustCompile(`<[^>]+>`)
)

// plainText turns the HTML-flavoured reply into terminal text.
func plainText(s string) string {
	s = strings.ReplaceAll(s, "<br>", "\n")
	s = anchorRe.ReplaceAllString(s, "$2 ($1)")
	s = tagRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "**", "")
	return strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&#39;", "'", "&#34;", `"`).Replace(s)
}
