package client

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"mood-journal/internal/model"
)

// Summary 平均值四捨五入到小數一位；Latest 為 date 最新的一筆
type Summary struct {
	Count   int
	Average float64
	Latest  *model.Entry
}

func Summarize(entries []model.Entry) Summary {
	s := Summary{Count: len(entries)}
	if len(entries) == 0 {
		return s
	}
	total := 0
	for i := range entries {
		total += entries[i].Mood
		if s.Latest == nil || entries[i].Date.After(s.Latest.Date) {
			s.Latest = &entries[i]
		}
	}
	s.Average = math.Round(float64(total)/float64(len(entries))*10) / 10
	return s
}

// Chart 依 date 由舊到新畫出每筆 mood 的長條
func Chart(entries []model.Entry, w io.Writer) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no entries yet")
		return err
	}
	sorted := make([]model.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	for _, e := range sorted {
		m := clampMood(e.Mood)
		bar := strings.Repeat("#", m) + strings.Repeat(".", model.MaxMood-m)
		if _, err := fmt.Fprintf(w, "%s |%s| %2d\n", e.Date.Local().Format("2006-01-02"), bar, e.Mood); err != nil {
			return err
		}
	}
	return nil
}

func clampMood(m int) int {
	if m < model.MinMood {
		return model.MinMood
	}
	if m > model.MaxMood {
		return model.MaxMood
	}
	return m
}
