package observability

import (
	"sync"
	"sync/atomic"
)

type StatsSnapshot struct {
	UploadsProcessed  uint64            `json:"uploads_processed"`
	LeadsProcessed    uint64            `json:"leads_processed"`
	LeadsPassed       uint64            `json:"leads_passed"`
	SuggestionsMined  uint64            `json:"suggestions_mined"`
	KeywordsAdded     uint64            `json:"keywords_added"`
	ErrorsTotal       uint64            `json:"errors_total"`
	FilterSecondsAvg  float64           `json:"filter_seconds_avg"`
	KeywordAppends    map[string]uint64 `json:"keyword_appends,omitempty"`
	ErrorsByType      map[string]uint64 `json:"errors_by_type,omitempty"`
	ErrorsByComponent map[string]uint64 `json:"errors_by_component,omitempty"`
}

var (
	uploadsProcessed uint64
	leadsProcessed   uint64
	leadsPassed      uint64
	suggestionsMined uint64
	keywordsAdded    uint64
	errorsTotal      uint64

	filterCount uint64
	filterNanos uint64

	statsMu           sync.Mutex
	keywordAppends    = map[string]uint64{}
	errorsByType      = map[string]uint64{}
	errorsByComponent = map[string]uint64{}
)

func IncUploadsProcessed() {
	atomic.AddUint64(&uploadsProcessed, 1)
}

func AddLeadsProcessed(total, passed uint64) {
	atomic.AddUint64(&leadsProcessed, total)
	atomic.AddUint64(&leadsPassed, passed)
}

func AddSuggestionsMined(n uint64) {
	atomic.AddUint64(&suggestionsMined, n)
}

func AddKeywordsAdded(kind string, n uint64) {
	if kind == "" {
		kind = "unknown"
	}
	atomic.AddUint64(&keywordsAdded, n)
	statsMu.Lock()
	keywordAppends[kind] += n
	statsMu.Unlock()
}

func ObserveFilterDuration(seconds float64) {
	if seconds <= 0 {
		return
	}
	atomic.AddUint64(&filterCount, 1)
	atomic.AddUint64(&filterNanos, uint64(seconds*1e9))
}

func IncError(errType, component string) {
	if errType == "" {
		errType = "unknown"
	}
	if component == "" {
		component = "unknown"
	}
	atomic.AddUint64(&errorsTotal, 1)
	statsMu.Lock()
	errorsByType[errType]++
	errorsByComponent[component]++
	statsMu.Unlock()
}

func Snapshot() StatsSnapshot {
	statsMu.Lock()
	appendsCopy := copyMap(keywordAppends)
	errorsTypeCopy := copyMap(errorsByType)
	errorsComponentCopy := copyMap(errorsByComponent)
	statsMu.Unlock()

	count := atomic.LoadUint64(&filterCount)
	avg := 0.0
	if count > 0 {
		avg = float64(atomic.LoadUint64(&filterNanos)) / float64(count) / 1e9
	}

	return StatsSnapshot{
		UploadsProcessed:  atomic.LoadUint64(&uploadsProcessed),
		LeadsProcessed:    atomic.LoadUint64(&leadsProcessed),
		LeadsPassed:       atomic.LoadUint64(&leadsPassed),
		SuggestionsMined:  atomic.LoadUint64(&suggestionsMined),
		KeywordsAdded:     atomic.LoadUint64(&keywordsAdded),
		ErrorsTotal:       atomic.LoadUint64(&errorsTotal),
		FilterSecondsAvg:  avg,
		KeywordAppends:    appendsCopy,
		ErrorsByType:      errorsTypeCopy,
		ErrorsByComponent: errorsComponentCopy,
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	if len(src) == 0 {
		return map[string]uint64{}
	}
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
