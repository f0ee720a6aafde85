package tutorials

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/ziadkadry99/primer/internal/ghsource"
	"github.com/ziadkadry99/primer/internal/markdown"
)

// unnumbered is the sort key for files without any digits.
const unnumbered = 999

var digitRun = regexp.MustCompile(`\d+`)

// OrganizeChapters orders scanned files into chapters. Files sort by the
// first number in their title (falling back to the file name); files without
// one go last. Equal keys keep scan order. Orders are assigned 1..N.
func OrganizeChapters(files []ghsource.File) []Chapter {
	sorted := make([]ghsource.File, len(files))
	copy(sorted, files)

	sort.SliceStable(sorted, func(i, j int) bool {
		return chapterKey(sorted[i]) < chapterKey(sorted[j])
	})

	chapters := make([]Chapter, len(sorted))
	for i, f := range sorted {
		chapters[i] = Chapter{
			Title:    f.Title,
			Content:  f.Content,
			Order:    i + 1,
			ReadTime: markdown.EstimateReadTime(f.Content),
		}
	}
	return chapters
}

func chapterKey(f ghsource.File) int {
	if n, ok := firstNumber(f.Title); ok {
		return n
	}
	if n, ok := firstNumber(f.Name); ok {
		return n
	}
	return unnumbered
}

func firstNumber(s string) (int, bool) {
	m := digitRun.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		// Longer than an int: sort with the unnumbered files.
		return unnumbered, true
	}
	return n, true
}
