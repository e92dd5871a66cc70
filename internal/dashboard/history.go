package dashboard

import (
	"math"

	"weather-dashboard/internal/weather"
)

// DefaultHistoryLimit caps the rolling temperature history window.
const DefaultHistoryLimit = 7

// HistoryEntry is one recorded day of observed temperature.
type HistoryEntry struct {
	Date  string `json:"date"`
	Temp  int    `json:"temp"`
	Rainy bool   `json:"rainy"`
}

// HistorySummary aggregates the current history window.
type HistorySummary struct {
	AvgTemp   int `json:"avgTemp"`
	MaxTemp   int `json:"maxTemp"`
	RainyDays int `json:"rainyDays"`
}

// History is a bounded, day-deduplicated rolling window of observed
// temperatures. At most one entry exists per date label; entries keep their
// arrival order and the oldest is evicted once the cap is exceeded.
type History struct {
	entries []HistoryEntry
	limit   int
}

// NewHistory creates a History over previously persisted entries. A limit
// of zero or less falls back to the default cap.
func NewHistory(entries []HistoryEntry, limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{entries: entries, limit: limit}
}

// Record stores today's reading: temperature rounded to the nearest integer,
// rainy when the observation's primary condition group is "Rain". An entry
// for an existing date label is replaced in place; otherwise the entry is
// appended and the front entry evicted if the window overflows.
func (h *History) Record(obs weather.CurrentObservation, todayLabel string) {
	entry := HistoryEntry{
		Date:  todayLabel,
		Temp:  int(math.Round(obs.Temp)),
		Rainy: obs.Condition == "Rain",
	}

	for i := range h.entries {
		if h.entries[i].Date == todayLabel {
			h.entries[i] = entry
			return
		}
	}

	h.entries = append(h.entries, entry)
	if len(h.entries) > h.limit {
		h.entries = h.entries[1:]
	}
}

// Entries returns a copy of the current window in arrival order.
func (h *History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Summary aggregates the window. ok is false on an empty history, in which
// case no summary is computed.
func (h *History) Summary() (HistorySummary, bool) {
	if len(h.entries) == 0 {
		return HistorySummary{}, false
	}

	sum := 0
	max := h.entries[0].Temp
	rainy := 0
	for _, e := range h.entries {
		sum += e.Temp
		if e.Temp > max {
			max = e.Temp
		}
		if e.Rainy {
			rainy++
		}
	}

	return HistorySummary{
		AvgTemp:   int(math.Round(float64(sum) / float64(len(h.entries)))),
		MaxTemp:   max,
		RainyDays: rainy,
	}, true
}
