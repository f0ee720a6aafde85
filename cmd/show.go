package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/primer/internal/tutorials"
)

var (
	showChapter int
	showWidth   int
	showRaw     bool
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Render a tutorial in the terminal",
	Long: `Renders a tutorial's markdown in the terminal.

For a multi-chapter tutorial, shows the table of contents unless --chapter
selects a chapter to read.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		t, err := store.GetByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		doc, err := tutorialMarkdown(t, showChapter)
		if err != nil {
			return err
		}
		if showRaw {
			fmt.Print(doc)
			return nil
		}

		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(showWidth),
		)
		if err != nil {
			return fmt.Errorf("creating renderer: %w", err)
		}
		out, err := r.Render(doc)
		if err != nil {
			return fmt.Errorf("rendering markdown: %w", err)
		}
		fmt.Print(out)
		return nil
	},
}

// tutorialMarkdown returns the markdown shown for t: its content, a chapter
// list, or the chapter numbered chapter when it is non-zero.
func tutorialMarkdown(t *tutorials.Tutorial, chapter int) (string, error) {
	if chapter != 0 {
		if t.Kind() != tutorials.KindChaptered {
			return "", fmt.Errorf("tutorial %q has no chapters", t.Title)
		}
		nav, ok := t.ChapterAt(chapter)
		if !ok {
			return "", fmt.Errorf("tutorial %q has no chapter %d", t.Title, chapter)
		}
		footer := fmt.Sprintf("\n\n---\n\n*Chapter %d of %d.*", nav.Index+1, len(t.Chapters()))
		if nav.Next != 0 {
			footer += fmt.Sprintf(" *Next: `primer show %s --chapter %d`*", t.ID, nav.Next)
		}
		return nav.Chapter.Content + footer + "\n", nil
	}

	var b strings.Builder
	switch t.Kind() {
	case tutorials.KindFlat:
		b.WriteString(t.Content())
	case tutorials.KindChaptered:
		fmt.Fprintf(&b, "# %s\n\n", t.Title)
		if t.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", t.Description)
		}
		fmt.Fprintf(&b, "%d chapters, %d min read\n\n", t.TotalChapters, t.ReadTime)
		for _, ch := range t.Chapters() {
			fmt.Fprintf(&b, "%d. %s (%d min)\n", ch.Order, ch.Title, ch.ReadTime)
		}
	default:
		fmt.Fprintf(&b, "# %s\n\nThis tutorial has no content.\n", t.Title)
	}
	b.WriteString("\n")
	return b.String(), nil
}

func init() {
	showCmd.Flags().IntVar(&showChapter, "chapter", 0, "Chapter number to show")
	showCmd.Flags().IntVar(&showWidth, "width", 100, "Word wrap width")
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print markdown without terminal styling")
	rootCmd.AddCommand(showCmd)
}
