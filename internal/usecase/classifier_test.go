//go:build !integration

package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"aura-assistant/internal/domain"
	"aura-assistant/internal/domain/model"
)

func TestClassify_DecodesIntents(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		want  model.Intent
	}{
		{"weather", `{"intent": "get_weather", "city": "Paris"}`, model.WeatherIntent("Paris")},
		{"music fenced", "```json\n{\"intent\": \"get_music\", \"query\": \"happy songs\"}\n```", model.MusicIntent("happy songs")},
		{"bare fence", "```\n{\"intent\": \"chat\"}\n```", model.ChatIntent()},
		{"goodbye", `{"intent":"goodbye"}`, model.GoodbyeIntent()},
		{"chatter around json", `Sure! {"intent": "get_weather", "city": " Oslo "} hope that helps`, model.WeatherIntent("Oslo")},
		{"weather without city", `{"intent": "get_weather"}`, model.WeatherIntent("")},
		{"unrecognised intent", `{"intent": "book_flight"}`, model.UnknownIntent()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ai := &scriptedAI{replies: []string{tc.reply}}
			got := NewIntentClassifier(ai, nopLogger()).Classify(context.Background(), "anything")
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestClassify_FallsBackToChat(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		err   error
	}{
		{"request error", "", errors.New("boom")},
		{"upstream error", "", domain.ErrUpstream},
		{"not json", "I think it's weather", nil},
		{"empty", "   ", nil},
		{"missing intent", `{"city": "Paris"}`, nil},
		{"wrong field type", `{"intent": 3}`, nil},
		{"truncated", `{"intent": "get_weather", "city": "Par`, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ai := &scriptedAI{replies: []string{tc.reply}, errs: []error{tc.err}}
			got := NewIntentClassifier(ai, nopLogger()).Classify(context.Background(), "hello")
			if got != model.ChatIntent() {
				t.Fatalf("expected chat fallback, got %+v", got)
			}
		})
	}
}

func TestClassify_RequestShape(t *testing.T) {
	ai := &scriptedAI{replies: []string{`{"intent":"chat"}`}}
	NewIntentClassifier(ai, nopLogger()).Classify(context.Background(), "who built you?")

	if ai.callCount() != 1 {
		t.Fatalf("expected exactly one request, got %d", ai.callCount())
	}
	call := ai.call(0)
	if len(call.messages) != 1 || call.messages[0].Role != "user" {
		t.Fatalf("expected a single user turn, got %+v", call.messages)
	}
	if !strings.Contains(call.messages[0].Content, `User Message: "who built you?"`) {
		t.Errorf("prompt does not embed the message: %q", call.messages[0].Content)
	}
	for _, intent := range []string{"get_weather", "get_music", "chat", "goodbye"} {
		if !strings.Contains(call.messages[0].Content, intent) {
			t.Errorf("prompt misses intent %q", intent)
		}
	}
	if call.opts.Temperature != 0 || call.opts.TopP != 1 || call.opts.TopK != 1 {
		t.Errorf("unexpected sampling options %+v", call.opts)
	}
}

func TestCleanJSONReply(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
		"x {\"a\":{}} y":          `{"a":{}}`,
		"no braces":               "no braces",
	}
	for in, want := range cases {
		if got := cleanJSONReply(in); got != want {
			t.Errorf("cleanJSONReply(%q) = %q, want %q", in, got, want)
		}
	}
}
