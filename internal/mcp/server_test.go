package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/primer/internal/db"
	"github.com/ziadkadry99/primer/internal/tutorials"
)

func setupServer(t *testing.T) (*Server, *tutorials.Store) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	store := tutorials.NewStore(database)
	return NewServer(store), store
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"list_tutorials", listTutorialsTool, "list_tutorials"},
		{"get_tutorial", getTutorialTool, "get_tutorial"},
		{"get_chapter", getChapterTool, "get_chapter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv, store := setupServer(t)
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.store != store {
		t.Error("store not set correctly")
	}
}

func TestHandleListTutorials(t *testing.T) {
	srv, store := setupServer(t)
	ctx := context.Background()

	result, err := srv.handleListTutorials(ctx, call(map[string]any{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatal("empty library should not be an error")
	}
	if !strings.Contains(resultText(t, result), "No tutorials found") {
		t.Errorf("unexpected text %q", resultText(t, result))
	}

	if _, _, err := tutorials.Seed(ctx, store); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	result, _ = srv.handleListTutorials(ctx, call(map[string]any{}))
	if text := resultText(t, result); !strings.Contains(text, "Getting Started with First Principles") {
		t.Errorf("expected seeded tutorial in %q", text)
	}

	result, _ = srv.handleListTutorials(ctx, call(map[string]any{"difficulty": "Advanced"}))
	if text := resultText(t, result); !strings.Contains(text, "No tutorials found") {
		t.Errorf("expected filter to exclude beginner tutorial, got %q", text)
	}
}

func TestHandleGetTutorial(t *testing.T) {
	srv, store := setupServer(t)
	ctx := context.Background()
	seeded, _, err := tutorials.Seed(ctx, store)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}

	t.Run("flat tutorial", func(t *testing.T) {
		result, err := srv.handleGetTutorial(ctx, call(map[string]any{"id": seeded.ID}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		if !strings.Contains(resultText(t, result), "## What Are First Principles?") {
			t.Error("expected full markdown content")
		}
	})

	t.Run("missing id", func(t *testing.T) {
		result, _ := srv.handleGetTutorial(ctx, call(map[string]any{}))
		if !result.IsError {
			t.Error("expected error for missing id")
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		result, _ := srv.handleGetTutorial(ctx, call(map[string]any{"id": uuid.New().String()}))
		if !result.IsError {
			t.Error("expected error for unknown id")
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		result, _ := srv.handleGetTutorial(ctx, call(map[string]any{"id": "abc"}))
		if !result.IsError {
			t.Error("expected error for malformed id")
		}
	})
}

func TestHandleGetChapter(t *testing.T) {
	srv, store := setupServer(t)
	ctx := context.Background()

	tut := &tutorials.Tutorial{
		Title:     "Course",
		GitHubURL: "https://github.com/octo/guides/tree/main/course",
		Body: tutorials.ChapteredBody{Chapters: []tutorials.Chapter{
			{Title: "One", Content: "# One\n\nfirst", Order: 1, ReadTime: 1},
			{Title: "Two", Content: "# Two\n\nsecond", Order: 2, ReadTime: 1},
		}},
	}
	if err := store.Create(ctx, tut); err != nil {
		t.Fatalf("Create: %v", err)
	}

	result, err := srv.handleGetChapter(ctx, call(map[string]any{"id": tut.ID, "chapter": float64(2)}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "second") || !strings.Contains(text, "Chapter 2 of 2") {
		t.Errorf("unexpected chapter text %q", text)
	}

	result, _ = srv.handleGetChapter(ctx, call(map[string]any{"id": tut.ID, "chapter": float64(5)}))
	if !result.IsError {
		t.Error("expected error for missing chapter")
	}

	result, _ = srv.handleGetChapter(ctx, call(map[string]any{"id": tut.ID}))
	if !result.IsError {
		t.Error("expected error for missing chapter argument")
	}
}
