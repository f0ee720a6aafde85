package cmd

import (
	"strings"
	"testing"

	"github.com/ziadkadry99/primer/internal/tutorials"
)

func chapteredTutorial() *tutorials.Tutorial {
	return &tutorials.Tutorial{
		ID:            "3f0c1f8e-0000-4000-8000-000000000001",
		Title:         "Course",
		Description:   "A short course",
		TotalChapters: 2,
		ReadTime:      3,
		Body: tutorials.ChapteredBody{Chapters: []tutorials.Chapter{
			{Title: "Intro", Content: "# Intro\n\nhello", Order: 1, ReadTime: 1},
			{Title: "Setup", Content: "# Setup\n\nsteps", Order: 2, ReadTime: 2},
		}},
	}
}

func TestTutorialMarkdownFlat(t *testing.T) {
	tut := &tutorials.Tutorial{Title: "Hello", Body: tutorials.FlatBody{Content: "# Hello\n\nWorld"}}
	got, err := tutorialMarkdown(tut, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "# Hello\n\nWorld") {
		t.Errorf("unexpected markdown %q", got)
	}

	if _, err := tutorialMarkdown(tut, 1); err == nil {
		t.Error("expected error asking for a chapter of a flat tutorial")
	}
}

func TestTutorialMarkdownTableOfContents(t *testing.T) {
	got, err := tutorialMarkdown(chapteredTutorial(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"# Course", "A short course", "2 chapters, 3 min read", "1. Intro (1 min)", "2. Setup (2 min)"} {
		if !strings.Contains(got, want) {
			t.Errorf("table of contents missing %q:\n%s", want, got)
		}
	}
}

func TestTutorialMarkdownChapter(t *testing.T) {
	tut := chapteredTutorial()

	got, err := tutorialMarkdown(tut, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "hello") || !strings.Contains(got, "Chapter 1 of 2") || !strings.Contains(got, "--chapter 2") {
		t.Errorf("unexpected chapter markdown:\n%s", got)
	}

	last, err := tutorialMarkdown(tut, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(last, "Next:") {
		t.Errorf("last chapter should not link onwards:\n%s", last)
	}

	if _, err := tutorialMarkdown(tut, 7); err == nil {
		t.Error("expected error for a missing chapter")
	}
}

func TestTutorialMarkdownEmpty(t *testing.T) {
	got, err := tutorialMarkdown(&tutorials.Tutorial{Title: "Nothing"}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "no content") {
		t.Errorf("unexpected markdown %q", got)
	}
}
