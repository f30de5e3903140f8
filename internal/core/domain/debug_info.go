package domain

import "time"

// DebugInfo — замер одного этапа обработки запроса, отдается при ?debug=true
type DebugInfo struct {
	Event     string            `json:"event"`
	Timing    int64             `json:"timing"`
	StartTime time.Time         `json:"-"`
	Options   map[string]string `json:"options,omitempty"`
}

func StartDebug(event string) DebugInfo {
	return DebugInfo{Event: event, StartTime: time.Now()}
}

// Elapse фиксирует длительность в микросекундах
func (d *DebugInfo) Elapse() {
	d.Timing = time.Since(d.StartTime).Microseconds()
}

func (d *DebugInfo) AddOption(key string, value string) {
	if d.Options == nil {
		d.Options = make(map[string]string)
	}
	d.Options[key] = value
}
