package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/primer/internal/tutorials"
)

// handleListTutorials returns a markdown list of stored tutorials.
func (s *Server) handleListTutorials(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 50)
	if limit <= 0 {
		limit = 50
	}
	difficulty := request.GetString("difficulty", "")

	summaries, err := s.store.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing tutorials failed: %v", err)), nil
	}

	var b strings.Builder
	shown := 0
	for _, sum := range summaries {
		if difficulty != "" && string(sum.Difficulty) != difficulty {
			continue
		}
		if shown == limit {
			break
		}
		shown++
		fmt.Fprintf(&b, "- **%s** (id: `%s`)\n", sum.Title, sum.ID)
		var meta []string
		meta = append(meta, string(sum.Difficulty))
		if sum.Author != "" {
			meta = append(meta, "by "+sum.Author)
		}
		if sum.ReadTime > 0 {
			meta = append(meta, fmt.Sprintf("%d min read", sum.ReadTime))
		}
		if sum.TotalChapters > 0 {
			meta = append(meta, fmt.Sprintf("%d chapters", sum.TotalChapters))
		}
		fmt.Fprintf(&b, "  %s\n", strings.Join(meta, " · "))
		if sum.Description != "" {
			fmt.Fprintf(&b, "  %s\n", sum.Description)
		}
	}

	if shown == 0 {
		return mcp.NewToolResultText("No tutorials found. Import one with `primer import <github-url>`."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%d tutorial(s):\n\n%s", shown, b.String())), nil
}

// handleGetTutorial returns a tutorial's content or table of contents.
func (s *Server) handleGetTutorial(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	t, err := s.store.GetByID(ctx, id)
	if err != nil {
		return lookupError(id, err), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.Title)
	if t.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", t.Description)
	}
	fmt.Fprintf(&b, "Source: %s\n", t.GitHubURL)
	if t.Author != "" {
		fmt.Fprintf(&b, "Author: %s\n", t.Author)
	}
	fmt.Fprintf(&b, "Difficulty: %s\n\n", t.Difficulty)

	switch t.Kind() {
	case tutorials.KindFlat:
		b.WriteString("---\n\n")
		b.WriteString(t.Content())
	case tutorials.KindChaptered:
		b.WriteString("## Chapters\n\n")
		for _, ch := range t.Chapters() {
			fmt.Fprintf(&b, "%d. %s (%d min)\n", ch.Order, ch.Title, ch.ReadTime)
		}
		b.WriteString("\nUse get_chapter to read a chapter.\n")
	default:
		b.WriteString("This tutorial has no content.\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}

// handleGetChapter returns the markdown of one chapter.
func (s *Server) handleGetChapter(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}
	n, err := request.RequireInt("chapter")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: chapter"), nil
	}

	t, err := s.store.GetByID(ctx, id)
	if err != nil {
		return lookupError(id, err), nil
	}
	if t.Kind() != tutorials.KindChaptered {
		return mcp.NewToolResultError(fmt.Sprintf("tutorial %q has no chapters; use get_tutorial instead", t.Title)), nil
	}

	nav, ok := t.ChapterAt(n)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("tutorial %q has no chapter %d", t.Title, n)), nil
	}

	footer := fmt.Sprintf("\n\n---\nChapter %d of %d of %q.", nav.Index+1, len(t.Chapters()), t.Title)
	if nav.Next != 0 {
		footer += fmt.Sprintf(" Next: chapter %d.", nav.Next)
	}
	return mcp.NewToolResultText(nav.Chapter.Content + footer), nil
}

func lookupError(id string, err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, tutorials.ErrInvalidID):
		return mcp.NewToolResultError(fmt.Sprintf("%q is not a valid tutorial ID", id))
	case errors.Is(err, tutorials.ErrNotFound):
		return mcp.NewToolResultError(fmt.Sprintf("no tutorial with ID %q", id))
	default:
		return mcp.NewToolResultError(fmt.Sprintf("loading tutorial failed: %v", err))
	}
}
